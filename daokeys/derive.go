// Package daokeys derives per-voter secp256k1 keypairs from a single DAO
// master secret. Keys are never stored: every call recomputes the same
// keypair from (master secret, dao account, user account).
package daokeys

import (
	"crypto/ecdsa"
	"crypto/sha256"
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/hkdf"
)

// SecretLen is the required length, in bytes, of the DAO master secret.
const SecretLen = 32

// PubKeyLen is the length, in bytes, of a compressed secp256k1 public key.
const PubKeyLen = 33

// KeyPair is a deterministically derived voter keypair. PrivateKey is never
// serialized back out of the engine; only PubKeyCompressed leaves the
// process boundary.
type KeyPair struct {
	PrivateKey       *ecdsa.PrivateKey
	PubKeyCompressed []byte
}

// Derive recomputes the secp256k1 keypair for (daoAccount, userAccount) from
// masterSecret. The derivation is pure and deterministic: the same triple of
// inputs always yields the same keypair, and distinct userAccount values
// yield independent scalars with overwhelming probability.
func Derive(masterSecret []byte, daoAccount, userAccount string) (*KeyPair, error) {
	if len(masterSecret) != SecretLen {
		return nil, fmt.Errorf("daokeys: master secret must be %d bytes, got %d", SecretLen, len(masterSecret))
	}

	info := infoString(daoAccount, userAccount)

	for counter := 0; ; counter++ {
		seed, err := expand(masterSecret, infoWithCounter(info, counter))
		if err != nil {
			return nil, fmt.Errorf("daokeys: kdf failed: %w", err)
		}

		priv, err := crypto.ToECDSA(seed)
		zero(seed)
		if err != nil {
			// Scalar was zero or >= curve order; retry with an incremented
			// counter appended to the info string, per the derivation's
			// astronomically-unlikely-but-handled retry step.
			continue
		}

		pub := crypto.CompressPubkey(&priv.PublicKey)
		return &KeyPair{PrivateKey: priv, PubKeyCompressed: pub}, nil
	}
}

// DerivePublic recomputes only the public half of a voter's keypair. Used by
// the "derive_pubkey" action, which never needs the private scalar.
func DerivePublic(masterSecret []byte, daoAccount, userAccount string) ([]byte, error) {
	kp, err := Derive(masterSecret, daoAccount, userAccount)
	if err != nil {
		return nil, err
	}
	return kp.PubKeyCompressed, nil
}

func infoString(daoAccount, userAccount string) string {
	return "user:" + daoAccount + ":" + userAccount
}

// infoWithCounter appends the retry counter as a single trailing byte only
// when it is nonzero, so the zero-th attempt matches the wire-contract info
// string byte-for-byte.
func infoWithCounter(info string, counter int) []byte {
	if counter == 0 {
		return []byte(info)
	}
	return append([]byte(info), byte(counter))
}

func expand(masterSecret, info []byte) ([]byte, error) {
	kdf := hkdf.New(sha256.New, masterSecret, nil, info)
	out := make([]byte, 32)
	if _, err := io.ReadFull(kdf, out); err != nil {
		return nil, err
	}
	return out, nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
