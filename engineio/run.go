// Package engineio wires the stdin/stdout JSON contract, master-secret
// handling, and panic recovery around the tally package's action
// dispatch. It is the ambient layer the teacher's main.go used to spend on
// HTTP routing and storage setup, generalized to a single batch read from
// an io.Reader and a single JSON document written to an io.Writer.
package engineio

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gviras/dao-vote-engine/daokeys"
	"github.com/gviras/dao-vote-engine/protocol"
	"github.com/gviras/dao-vote-engine/tally"
)

// Config controls where the engine reads its master secret from and the
// streams it uses for the single input/output document. EnvName and the
// streams are test/ops conveniences only; none are part of the wire
// contract described in protocol.
type Config struct {
	EnvName string
	Getenv  func(string) (string, bool)
	In      io.Reader
	Out     io.Writer
}

// Run executes exactly one action: read one JSON input document, derive
// the master secret, dispatch through tally.Dispatch, write exactly one
// JSON output document, and report whether the run succeeded. The return
// value is the process exit code the caller should use: 0 on success, 1
// on any fatal error. Run never panics itself; it recovers any panic from
// the dispatch layer and folds it into the same fatal error envelope
// required by spec §7's "unexpected internal errors" category, so a
// library panic can never produce a half-written stdout document.
func Run(cfg Config) (exitCode int) {
	logger := log.New(os.Stderr, "", log.LstdFlags|log.Lshortfile)

	var masterSecret []byte
	defer func() {
		zero(masterSecret)
		if r := recover(); r != nil {
			logger.Printf("recovered panic: %v", r)
			writeOutput(cfg.Out, protocol.Failure("internal error"))
			exitCode = 1
		}
	}()

	masterSecret, err := readMasterSecret(cfg)
	if err != nil {
		logger.Printf("master secret error: %v", err)
		writeOutput(cfg.Out, protocol.Failure(err.Error()))
		return 1
	}

	var in protocol.Input
	if err := json.NewDecoder(cfg.In).Decode(&in); err != nil {
		logger.Printf("input decode error: %v", err)
		writeOutput(cfg.Out, protocol.Failure("malformed input JSON"))
		return 1
	}

	result, err := tally.Dispatch(masterSecret, in)
	if err != nil {
		logger.Printf("dispatch error: %v", err)
		writeOutput(cfg.Out, protocol.Failure(err.Error()))
		return 1
	}

	writeOutput(cfg.Out, protocol.Success(result))
	return 0
}

func readMasterSecret(cfg Config) ([]byte, error) {
	name := cfg.EnvName
	if name == "" {
		name = protocol.EnvMasterSecret
	}

	raw, ok := cfg.Getenv(name)
	if !ok || raw == "" {
		return nil, fmt.Errorf("%s is not set", name)
	}

	secret, err := hex.DecodeString(raw)
	if err != nil {
		zero(secret)
		return nil, fmt.Errorf("%s is not valid hex", name)
	}
	if len(secret) != daokeys.SecretLen {
		zero(secret)
		return nil, fmt.Errorf("%s must decode to %d bytes, got %d", name, daokeys.SecretLen, len(secret))
	}

	return secret, nil
}

func writeOutput(w io.Writer, out protocol.Output) {
	enc := json.NewEncoder(w)
	if err := enc.Encode(out); err != nil {
		log.Printf("failed to write output: %v", err)
	}
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
