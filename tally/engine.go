// Package tally implements component C of the engine: action dispatch,
// ballot decryption, latest-per-voter reduction with dummy filtering,
// Merkle commitment, and attestation. It is the orchestration layer
// grounded on the teacher's service/voting_service.go and
// service/vote_counting.go shape, generalized from a persistent blockchain
// ledger to a single stateless pass over one batch.
package tally

import (
	"encoding/hex"
	"fmt"

	"github.com/gviras/dao-vote-engine/daokeys"
	"github.com/gviras/dao-vote-engine/merkle"
	"github.com/gviras/dao-vote-engine/protocol"
)

// Dispatch runs the requested action against masterSecret and returns the
// result payload to embed in the success envelope. The only two states
// visible from outside the call are "it returned a result" and "it
// returned an error" — per spec §4.3.4, there is no partial or persisted
// state between invocations.
func Dispatch(masterSecret []byte, in protocol.Input) (interface{}, error) {
	switch in.Action {
	case protocol.ActionDerivePubkey:
		return derivePubkey(masterSecret, in)
	case protocol.ActionTallyVotes:
		return tallyVotes(masterSecret, in)
	default:
		return nil, fmt.Errorf("unknown action: %q", in.Action)
	}
}

func derivePubkey(masterSecret []byte, in protocol.Input) (*protocol.DerivePubkeyResult, error) {
	if in.DAOAccount == "" {
		return nil, fmt.Errorf("missing dao_account")
	}
	if in.UserAccount == "" {
		return nil, fmt.Errorf("missing user_account")
	}

	pub, err := daokeys.DerivePublic(masterSecret, in.DAOAccount, in.UserAccount)
	if err != nil {
		return nil, fmt.Errorf("key derivation failed")
	}

	return &protocol.DerivePubkeyResult{Pubkey: hex.EncodeToString(pub)}, nil
}

func tallyVotes(masterSecret []byte, in protocol.Input) (*protocol.TallyResult, error) {
	if in.DAOAccount == "" {
		return nil, fmt.Errorf("missing dao_account")
	}
	if !in.ProposalIDSet {
		return nil, fmt.Errorf("missing proposal_id")
	}
	if !in.VotesSet {
		return nil, fmt.Errorf("missing votes")
	}

	decrypted := decryptBatch(masterSecret, in.DAOAccount, in.Votes)

	chosen := reduceToLatestCanonicalVote(decrypted)

	var yesCount, noCount uint32
	for _, vote := range chosen {
		switch vote.plaintext {
		case protocol.TokenYes:
			yesCount++
		case protocol.TokenNo:
			noCount++
		}
	}

	leaves := make([]string, len(in.Votes))
	for i, v := range in.Votes {
		leaves[i] = merkle.LeafFingerprint(v.Voter, v.TimestampNs, v.CiphertextHex)
	}

	tree := merkle.Build(leaves)
	root := tree.Root()

	proofs := make([]protocol.MerkleProofEntry, len(in.Votes))
	for i, v := range in.Votes {
		proofs[i] = protocol.MerkleProofEntry{
			Voter:     v.Voter,
			VoteIndex: uint32(i),
			VoteHash:  leaves[i],
			ProofPath: tree.ProofFor(i),
			Timestamp: v.TimestampNs,
		}
	}

	return &protocol.TallyResult{
		ProposalID:      in.ProposalID,
		YesCount:        yesCount,
		NoCount:         noCount,
		TotalVotes:      yesCount + noCount,
		VotesMerkleRoot: root,
		MerkleProofs:    proofs,
		TeeAttestation:  attestation(in.ProposalID, root, yesCount, noCount),
	}, nil
}

// chosenVote is one voter's winning ballot after the latest-wins reduction.
type chosenVote struct {
	plaintext   string
	timestampNs uint64
}

// reduceToLatestCanonicalVote builds voter -> chosen-ballot by scanning the
// decrypt pass in input order. Only records whose plaintext decoded
// successfully and equals exactly one of the two canonical tokens ever
// contribute; everything else (dummies, garbage, authentication failures)
// leaves an existing entry untouched. On a tie the later record replaces
// the earlier only under strict '>' — equal timestamps keep the first
// record seen, matching spec §4.3.2 step 2 and §4.3.3's tie-break rule.
func reduceToLatestCanonicalVote(decrypted []decryptedBallot) map[string]chosenVote {
	chosen := make(map[string]chosenVote)

	for _, d := range decrypted {
		if !d.ok {
			continue
		}
		if d.plaintext != protocol.TokenYes && d.plaintext != protocol.TokenNo {
			continue
		}

		existing, present := chosen[d.voter]
		if !present || d.timestampNs > existing.timestampNs {
			chosen[d.voter] = chosenVote{plaintext: d.plaintext, timestampNs: d.timestampNs}
		}
	}

	return chosen
}
