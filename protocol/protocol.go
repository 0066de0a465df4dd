// Package protocol defines the wire-contract types the engine reads from
// stdin and writes to stdout, and the error-envelope shape every action
// shares. Field names and JSON tags are fixed by the wire contract and must
// not change without breaking the on-chain contract and browser client.
package protocol

import "encoding/json"

// Action names accepted in the top-level "action" field of the input
// document.
const (
	ActionDerivePubkey = "derive_pubkey"
	ActionTallyVotes   = "tally_votes"
)

// Canonical vote tokens. Anything else a ballot decrypts to is a dummy and
// never contributes to the tally.
const (
	TokenYes = "yes"
	TokenNo  = "no"
)

// EnvMasterSecret is the environment variable carrying the 64-hex-character
// DAO master secret.
const EnvMasterSecret = "DAO_MASTER_SECRET"

// Input is the single JSON document the engine reads from stdin. Only the
// fields relevant to the requested Action are required; extra fields are
// ignored.
type Input struct {
	Action      string        `json:"action"`
	DAOAccount  string        `json:"dao_account"`
	UserAccount string        `json:"user_account,omitempty"`
	ProposalID  uint64        `json:"proposal_id,omitempty"`
	Votes       []BallotInput `json:"votes,omitempty"`

	// ProposalIDSet and VotesSet record whether "proposal_id" and "votes"
	// were present in the input document at all, as distinct from present
	// with their Go zero value (0 and an empty/null array respectively).
	// tally_votes treats either key being entirely absent as a fatal
	// missing-required-field error per spec §6; the zero value alone is
	// not enough to tell "omitted" from "proposal_id: 0" or "votes: []".
	ProposalIDSet bool `json:"-"`
	VotesSet      bool `json:"-"`
}

// UnmarshalJSON decodes an Input document and additionally records, via
// ProposalIDSet/VotesSet, which fields were actually present in the raw
// JSON object rather than merely inferring presence from their decoded
// zero values.
func (in *Input) UnmarshalJSON(data []byte) error {
	type rawInput Input
	var decoded rawInput
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	var presence struct {
		ProposalID json.RawMessage `json:"proposal_id"`
		Votes      json.RawMessage `json:"votes"`
	}
	if err := json.Unmarshal(data, &presence); err != nil {
		return err
	}

	*in = Input(decoded)
	in.ProposalIDSet = len(presence.ProposalID) > 0
	in.VotesSet = len(presence.Votes) > 0
	return nil
}

// BallotInput is one submitted ballot record as received from the on-chain
// contract. Nonce is historically carried but ignored: the hybrid scheme's
// nonce lives inside the ciphertext itself.
type BallotInput struct {
	Voter         string `json:"user"`
	CiphertextHex string `json:"encrypted_vote"`
	TimestampNs   uint64 `json:"timestamp"`
	Nonce         string `json:"nonce,omitempty"`
}

// Output is the single JSON document the engine writes to stdout, for
// either action. Exactly one of Result/Error is set.
type Output struct {
	Success bool        `json:"success"`
	Result  interface{} `json:"result"`
	Error   *string     `json:"error"`
}

// DerivePubkeyResult is the "result" payload for action "derive_pubkey".
type DerivePubkeyResult struct {
	Pubkey string `json:"pubkey"`
}

// MerkleProofEntry is one ballot's inclusion proof in a "tally_votes"
// result, in input order.
type MerkleProofEntry struct {
	Voter     string   `json:"voter"`
	VoteIndex uint32   `json:"vote_index"`
	VoteHash  string   `json:"vote_hash"`
	ProofPath []string `json:"proof_path"`
	Timestamp uint64   `json:"timestamp"`
}

// TallyResult is the "result" payload for action "tally_votes".
type TallyResult struct {
	ProposalID      uint64             `json:"proposal_id"`
	YesCount        uint32             `json:"yes_count"`
	NoCount         uint32             `json:"no_count"`
	TotalVotes      uint32             `json:"total_votes"`
	VotesMerkleRoot string             `json:"votes_merkle_root"`
	MerkleProofs    []MerkleProofEntry `json:"merkle_proofs"`
	TeeAttestation  string             `json:"tee_attestation"`
}

// Success builds the Output envelope for a successful action.
func Success(result interface{}) Output {
	return Output{Success: true, Result: result, Error: nil}
}

// Failure builds the Output envelope for a failed action.
func Failure(message string) Output {
	return Output{Success: false, Result: nil, Error: &message}
}
