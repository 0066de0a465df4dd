package tally

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// attestation produces the placeholder attestation string bound to the
// proposal, root, and final counts: "attestation:" + hex(SHA-256(...)).
// The "attestation:" prefix and hex-64 suffix shape are fixed by the wire
// contract so that swapping in real hardware attestation later does not
// force a client upgrade.
func attestation(proposalID uint64, merkleRoot string, yesCount, noCount uint32) string {
	preimage := strconv.FormatUint(proposalID, 10) + ":" +
		merkleRoot + ":" +
		strconv.FormatUint(uint64(yesCount), 10) + ":" +
		strconv.FormatUint(uint64(noCount), 10)

	sum := sha256.Sum256([]byte(preimage))
	return "attestation:" + hex.EncodeToString(sum[:])
}
