package tally

import (
	"encoding/hex"
	"runtime"
	"sync"

	"github.com/gviras/dao-vote-engine/daokeys"
	"github.com/gviras/dao-vote-engine/hybridenc"
	"github.com/gviras/dao-vote-engine/protocol"
)

// decryptedBallot is the outcome of attempting to decrypt one ballot
// record. Plaintext is empty and ok is false for any failure: bad hex,
// truncated ciphertext, or authentication failure. The engine never
// distinguishes these by side channel.
type decryptedBallot struct {
	voter       string
	timestampNs uint64
	plaintext   string
	ok          bool
}

// decryptBatch attempts decryption of every ballot in votes, preserving
// input order in the returned slice. Decryption itself may run over a
// bounded worker pool — per spec §5's explicit license to parallelize
// decrypts across cores — but results are always written back by original
// index, so the per-voter reduction that follows never observes a
// goroutine-scheduling-dependent order. Grounded in the teacher's
// service/queue.go channel/worker-goroutine shape, repurposed from
// registration/vote queuing to ballot decryption.
func decryptBatch(masterSecret []byte, daoAccount string, votes []protocol.BallotInput) []decryptedBallot {
	results := make([]decryptedBallot, len(votes))

	workers := runtime.NumCPU()
	if workers > len(votes) {
		workers = len(votes)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = decryptOne(masterSecret, daoAccount, votes[i])
			}
		}()
	}

	for i := range votes {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

func decryptOne(masterSecret []byte, daoAccount string, v protocol.BallotInput) decryptedBallot {
	out := decryptedBallot{voter: v.Voter, timestampNs: v.TimestampNs}

	ciphertext, err := hex.DecodeString(v.CiphertextHex)
	if err != nil {
		return out
	}

	kp, err := daokeys.Derive(masterSecret, daoAccount, v.Voter)
	if err != nil {
		return out
	}

	plaintext, err := hybridenc.Decrypt(kp.PrivateKey, ciphertext)
	if err != nil {
		return out
	}

	out.plaintext = string(plaintext)
	out.ok = true
	return out
}
