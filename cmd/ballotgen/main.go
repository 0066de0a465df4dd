// Command ballotgen authors a single encrypted ballot for testing, playing
// the browser client's role described in spec.md: derive a voter's public
// key from the DAO master secret and hybrid-encrypt a chosen vote against
// it, emitting the resulting ballot record as JSON.
package main

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gviras/dao-vote-engine/ballotgen"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	masterSecretHex := flag.String("secret", "", "DAO master secret, 64 lowercase hex characters")
	daoAccount := flag.String("dao", "", "DAO account identifier")
	voter := flag.String("voter", "", "voter account identifier (random if omitted)")
	vote := flag.String("vote", "yes", `vote plaintext ("yes", "no", or any other string for a dummy ballot)`)
	timestampNs := flag.Uint64("timestamp", 0, "ballot timestamp in nanoseconds")
	flag.Parse()

	if *masterSecretHex == "" || *daoAccount == "" {
		fmt.Fprintln(os.Stderr, "usage: ballotgen -secret <hex> -dao <account> [-voter <account>] [-vote yes|no] [-timestamp <ns>]")
		os.Exit(1)
	}

	masterSecret, err := hex.DecodeString(*masterSecretHex)
	if err != nil {
		log.Fatalf("invalid -secret: %v", err)
	}

	ballot, err := ballotgen.Author(masterSecret, *daoAccount, ballotgen.Request{
		Voter:       *voter,
		Vote:        *vote,
		TimestampNs: *timestampNs,
	})
	if err != nil {
		log.Fatalf("authoring ballot: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ballot); err != nil {
		log.Fatalf("writing ballot: %v", err)
	}
}
