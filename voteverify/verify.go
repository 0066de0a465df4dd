// Package voteverify implements the client-side inclusion-proof verifier
// described in spec §4.4. It receives no left/right side flags, so it tries
// both hash orderings at every level; the worst case is O(2^depth), which
// stays tractable because depth is ceil(log2 n).
package voteverify

import (
	"crypto/sha256"
	"encoding/hex"
)

// Verify reports whether leaf is a member of the multiset committed to by
// root, given an ordered sibling path from leaf to (just below) root. It
// re-architects the browser client's async verifier as a pure recursive
// function over byte strings: no timers, no event loop, just a hash.
func Verify(leaf string, proof []string, root string) bool {
	if len(proof) == 0 {
		return leaf == root
	}

	sibling := proof[0]
	rest := proof[1:]

	asLeft := hexConcatHash(leaf, sibling)
	asRight := hexConcatHash(sibling, leaf)

	return Verify(asLeft, rest, root) || Verify(asRight, rest, root)
}

// hexConcatHash hashes the concatenation of the UTF-8 text bytes of a and
// b — not their underlying 32-byte binary digests — per the wire contract.
func hexConcatHash(a, b string) string {
	h := sha256.New()
	h.Write([]byte(a))
	h.Write([]byte(b))
	return hex.EncodeToString(h.Sum(nil))
}
