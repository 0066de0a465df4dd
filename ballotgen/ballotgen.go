// Package ballotgen builds synthetic tally_votes input batches for testing,
// playing the role spec.md assigns to the browser client: derive a voter's
// public key and hybrid-encrypt a chosen plaintext against it. It never
// runs inside the sandboxed guest and never sees a real master secret in
// production use.
package ballotgen

import (
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"

	"github.com/gviras/dao-vote-engine/daokeys"
	"github.com/gviras/dao-vote-engine/hybridenc"
	"github.com/gviras/dao-vote-engine/protocol"
)

// Request describes one ballot to author. An empty Voter mints a fresh
// synthetic voter identifier so callers can generate a batch of distinct
// voters without naming each one.
type Request struct {
	Voter       string
	Vote        string
	TimestampNs uint64
}

// Author derives the voter's keypair from masterSecret and daoAccount,
// hybrid-encrypts req.Vote against the derived public key, and returns the
// resulting BallotInput ready to embed in a tally_votes request.
func Author(masterSecret []byte, daoAccount string, req Request) (protocol.BallotInput, error) {
	voter := req.Voter
	if voter == "" {
		voter = uuid.NewString()
	}

	kp, err := daokeys.Derive(masterSecret, daoAccount, voter)
	if err != nil {
		return protocol.BallotInput{}, fmt.Errorf("ballotgen: derive keys for %q: %w", voter, err)
	}

	ciphertext, err := hybridenc.Encrypt(kp.PubKeyCompressed, []byte(req.Vote))
	if err != nil {
		return protocol.BallotInput{}, fmt.Errorf("ballotgen: encrypt for %q: %w", voter, err)
	}

	return protocol.BallotInput{
		Voter:         voter,
		CiphertextHex: hex.EncodeToString(ciphertext),
		TimestampNs:   req.TimestampNs,
	}, nil
}

// AuthorBatch runs Author over every request, stopping at the first error.
func AuthorBatch(masterSecret []byte, daoAccount string, reqs []Request) ([]protocol.BallotInput, error) {
	out := make([]protocol.BallotInput, 0, len(reqs))
	for _, req := range reqs {
		ballot, err := Author(masterSecret, daoAccount, req)
		if err != nil {
			return nil, err
		}
		out = append(out, ballot)
	}
	return out, nil
}
