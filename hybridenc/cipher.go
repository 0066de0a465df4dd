// Package hybridenc implements the hybrid-encryption primitive that wraps
// ballots between the voting client and the tally engine: an ephemeral
// secp256k1 key agreement, an HKDF-SHA-256 step that binds the derived AES
// key to the session, and AES-256-GCM as the authenticated symmetric
// cipher. It is grounded on the teacher's encryption/service.go
// EncryptVote/DecryptVote shape, generalized to a real ECDH shared secret
// so decryption under the wrong recipient key fails authentication rather
// than merely returning wrong plaintext.
package hybridenc

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"io"

	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/hkdf"
)

// ErrAuthenticationFailed is returned for any decryption failure: a bad
// authentication tag, a wrong-recipient key, or a truncated ciphertext. The
// caller must not be able to tell these apart by inspecting the error.
var ErrAuthenticationFailed = errors.New("hybridenc: authentication failed")

const (
	ephemeralPubKeyLen = 33
	gcmNonceLen        = 12
	gcmTagLen          = 16
	aesKeyLen          = 32
)

// Encrypt wraps plaintext for the recipient identified by pubKeyCompressed (a
// compressed secp256k1 public key). Each call picks a fresh ephemeral
// keypair and a fresh GCM nonce, so Encrypt is non-deterministic.
func Encrypt(pubKeyCompressed, plaintext []byte) ([]byte, error) {
	recipient, err := crypto.DecompressPubkey(pubKeyCompressed)
	if err != nil {
		return nil, errors.New("hybridenc: invalid recipient public key")
	}

	ephemeral, err := crypto.GenerateKey()
	if err != nil {
		return nil, err
	}
	ephemeralPub := crypto.CompressPubkey(&ephemeral.PublicKey)

	sharedX, _ := crypto.S256().ScalarMult(recipient.X, recipient.Y, ephemeral.D.Bytes())
	aesKey, err := sessionKey(ephemeralPub, pubKeyCompressed, sharedX.Bytes())
	if err != nil {
		return nil, err
	}

	gcm, err := newGCM(aesKey)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcmNonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	sealed := gcm.Seal(nil, nonce, plaintext, nil)

	out := make([]byte, 0, ephemeralPubKeyLen+gcmNonceLen+len(sealed))
	out = append(out, ephemeralPub...)
	out = append(out, nonce...)
	out = append(out, sealed...)
	return out, nil
}

// Decrypt unwraps ciphertext using the recipient's private scalar. Any
// failure — truncated input, bad tag, or a key that was never the intended
// recipient — returns ErrAuthenticationFailed without distinction.
func Decrypt(privateKey *ecdsa.PrivateKey, ciphertext []byte) ([]byte, error) {
	if len(ciphertext) < ephemeralPubKeyLen+gcmNonceLen+gcmTagLen {
		return nil, ErrAuthenticationFailed
	}

	ephemeralPub := ciphertext[:ephemeralPubKeyLen]
	rest := ciphertext[ephemeralPubKeyLen:]
	nonce, sealed := rest[:gcmNonceLen], rest[gcmNonceLen:]

	ephemeral, err := crypto.DecompressPubkey(ephemeralPub)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}

	sharedX, _ := crypto.S256().ScalarMult(ephemeral.X, ephemeral.Y, privateKey.D.Bytes())
	recipientPub := crypto.CompressPubkey(&privateKey.PublicKey)
	aesKey, err := sessionKey(ephemeralPub, recipientPub, sharedX.Bytes())
	if err != nil {
		return nil, ErrAuthenticationFailed
	}

	gcm, err := newGCM(aesKey)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}

	plaintext, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}
	return plaintext, nil
}

// sessionKey binds the AES key to this exact exchange: the ephemeral
// sender key, the recipient key, and the ECDH shared-secret coordinate.
// Matches spec §4.2's "key-derivation step that binds the encryption and
// MAC keys to the session".
func sessionKey(ephemeralPub, recipientPub, sharedSecretX []byte) ([]byte, error) {
	info := append(append([]byte{}, ephemeralPub...), recipientPub...)
	kdf := hkdf.New(sha256.New, sharedSecretX, nil, info)
	key := make([]byte, aesKeyLen)
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, err
	}
	return key, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCMWithTagSize(block, gcmTagLen)
}
