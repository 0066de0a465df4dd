package daokeys

import (
	"bytes"
	"testing"
)

func testSecret() []byte {
	s := make([]byte, SecretLen)
	for i := range s {
		s[i] = byte(i + 1)
	}
	return s
}

func TestDeriveIsDeterministic(t *testing.T) {
	ms := testSecret()

	kp1, err := Derive(ms, "dao.test", "alice")
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	kp2, err := Derive(ms, "dao.test", "alice")
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}

	if !bytes.Equal(kp1.PubKeyCompressed, kp2.PubKeyCompressed) {
		t.Fatalf("derived public keys differ across calls")
	}
	if kp1.PrivateKey.D.Cmp(kp2.PrivateKey.D) != 0 {
		t.Fatalf("derived private scalars differ across calls")
	}
}

func TestDeriveIsolatesUsers(t *testing.T) {
	ms := testSecret()

	alice, err := Derive(ms, "dao.test", "alice")
	if err != nil {
		t.Fatalf("Derive(alice): %v", err)
	}
	bob, err := Derive(ms, "dao.test", "bob")
	if err != nil {
		t.Fatalf("Derive(bob): %v", err)
	}

	if bytes.Equal(alice.PubKeyCompressed, bob.PubKeyCompressed) {
		t.Fatalf("distinct users derived identical public keys")
	}
}

func TestDeriveIsolatesDAOs(t *testing.T) {
	ms := testSecret()

	a, err := Derive(ms, "dao-a", "alice")
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	b, err := Derive(ms, "dao-b", "alice")
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}

	if bytes.Equal(a.PubKeyCompressed, b.PubKeyCompressed) {
		t.Fatalf("same user under distinct DAOs derived identical public keys")
	}
}

func TestDerivePublicMatchesFullDerive(t *testing.T) {
	ms := testSecret()

	full, err := Derive(ms, "dao.test", "alice")
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	pub, err := DerivePublic(ms, "dao.test", "alice")
	if err != nil {
		t.Fatalf("DerivePublic: %v", err)
	}

	if !bytes.Equal(full.PubKeyCompressed, pub) {
		t.Fatalf("DerivePublic disagrees with Derive")
	}
	if len(pub) != PubKeyLen {
		t.Fatalf("compressed public key length = %d, want %d", len(pub), PubKeyLen)
	}
	if pub[0] != 0x02 && pub[0] != 0x03 {
		t.Fatalf("compressed public key prefix = 0x%02x, want 0x02 or 0x03", pub[0])
	}
}

func TestDeriveRejectsWrongSecretLength(t *testing.T) {
	if _, err := Derive([]byte("too short"), "dao.test", "alice"); err == nil {
		t.Fatalf("expected error for undersized master secret")
	}
}
