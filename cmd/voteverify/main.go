// Command voteverify checks a single inclusion proof from the command
// line, playing the client verifier's role described in spec.md §4.4
// outside of a browser. It reads one JSON document from stdin with the
// shape {"vote_hash": "...", "proof_path": ["..."], "votes_merkle_root":
// "..."} and exits 0 if the proof verifies, 1 otherwise.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/gviras/dao-vote-engine/voteverify"
)

type request struct {
	VoteHash        string   `json:"vote_hash"`
	ProofPath       []string `json:"proof_path"`
	VotesMerkleRoot string   `json:"votes_merkle_root"`
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	var req request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		log.Fatalf("malformed input: %v", err)
	}

	if voteverify.Verify(req.VoteHash, req.ProofPath, req.VotesMerkleRoot) {
		fmt.Println("valid")
		return
	}

	fmt.Println("invalid")
	os.Exit(1)
}
