// Package merkle builds the binary SHA-256 Merkle tree the tally engine
// commits each ballot batch to, and generates per-leaf inclusion proofs.
// The construction rule — pair-duplicate-last-if-odd at every level,
// parent hash over the hex *text* of the children rather than their raw
// bytes — is part of the wire contract and must match the client-side
// verifier in package voteverify exactly.
package merkle

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// EmptyRoot is the Merkle root of a zero-ballot batch: the hex-encoded
// SHA-256 of the empty string.
var EmptyRoot = hex.EncodeToString(sha256Sum(nil))

// LeafFingerprint computes the wire-contract leaf preimage
// SHA-256(utf8(voter) || le64(timestampNs) || utf8(ciphertextHex)) and
// returns it as lowercase hex. voter and ciphertextHex are hashed as raw
// UTF-8 bytes; timestampNs is little-endian encoded as 8 bytes — both
// choices are fixed by the wire contract.
func LeafFingerprint(voter string, timestampNs uint64, ciphertextHex string) string {
	var ts [8]byte
	binary.LittleEndian.PutUint64(ts[:], timestampNs)

	h := sha256.New()
	h.Write([]byte(voter))
	h.Write(ts[:])
	h.Write([]byte(ciphertextHex))
	return hex.EncodeToString(h.Sum(nil))
}

// parentHash computes SHA-256(utf8(left) || utf8(right)) over the hex text
// of the two children, per the wire contract, and returns it as lowercase
// hex.
func parentHash(left, right string) string {
	h := sha256.New()
	h.Write([]byte(left))
	h.Write([]byte(right))
	return hex.EncodeToString(h.Sum(nil))
}

// Tree is a built binary Merkle tree with every intermediate level
// retained, so that proof generation for any leaf is a simple index walk.
type Tree struct {
	// levels[0] is the leaves; levels[len(levels)-1] is the single-node
	// root level.
	levels [][]string
}

// Build constructs the tree over leaves in the given order. Leaves must
// already be lowercase hex fingerprints in batch-input order; Build does
// not sort, dedupe, or otherwise permute them.
func Build(leaves []string) *Tree {
	if len(leaves) == 0 {
		return &Tree{levels: [][]string{{EmptyRoot}}}
	}

	level := append([]string{}, leaves...)
	levels := [][]string{level}

	for len(level) > 1 {
		next := make([]string, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			left := level[i]
			right := left
			if i+1 < len(level) {
				right = level[i+1]
			}
			next = append(next, parentHash(left, right))
		}
		levels = append(levels, next)
		level = next
	}

	return &Tree{levels: levels}
}

// Root returns the lowercase-hex Merkle root.
func (t *Tree) Root() string {
	top := t.levels[len(t.levels)-1]
	return top[0]
}

// ProofFor returns the inclusion proof for the leaf at index i: an ordered
// list of sibling fingerprints from the leaf's level up to (but not
// including) the root.
//
// For a tree built from two or more leaves, ProofFor panics if i is out of
// range for the leaf level, which callers must never trigger for a tree
// built from a batch they control. For an empty or single-leaf tree it
// returns nil for any i.
func (t *Tree) ProofFor(i int) []string {
	if len(t.levels) == 1 {
		// Empty-batch or single-leaf tree: there is no level below the
		// root, so there are no siblings to return.
		return nil
	}

	proof := make([]string, 0, len(t.levels)-1)
	idx := i
	for level := 0; level < len(t.levels)-1; level++ {
		nodes := t.levels[level]
		siblingIdx := idx ^ 1 // flip the last bit: even<->odd neighbor
		if siblingIdx >= len(nodes) {
			siblingIdx = idx
		}
		proof = append(proof, nodes[siblingIdx])
		idx /= 2
	}
	return proof
}

func sha256Sum(b []byte) []byte {
	h := sha256.Sum256(b)
	return h[:]
}
