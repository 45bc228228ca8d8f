package crypto

import (
	"bytes"
	"testing"
)

func testKey(t *testing.T, fill byte) *PrivateKey {
	t.Helper()
	key, err := PrivateKeyFromBytes(bytes.Repeat([]byte{fill}, 32))
	if err != nil {
		t.Fatalf("PrivateKeyFromBytes() error: %v", err)
	}
	return key
}

func TestPrivateKeyFromBytes(t *testing.T) {
	key := testKey(t, 0x11)
	if len(key.PublicKey()) != 33 {
		t.Errorf("PublicKey() length = %d, want 33", len(key.PublicKey()))
	}
	if !bytes.Equal(key.Serialize(), bytes.Repeat([]byte{0x11}, 32)) {
		t.Error("Serialize() should return the original scalar")
	}

	for _, n := range []int{0, 31, 33, 64} {
		if _, err := PrivateKeyFromBytes(make([]byte, n)); err == nil {
			t.Errorf("PrivateKeyFromBytes(%d bytes) should fail", n)
		}
	}
}

func TestSign_Verify(t *testing.T) {
	key := testKey(t, 0x22)
	hash := Hash([]byte("payload"))

	sig, err := key.Sign(hash[:])
	if err != nil {
		t.Fatalf("Sign() error: %v", err)
	}
	if len(sig) != 64 {
		t.Errorf("signature length = %d, want 64", len(sig))
	}
	if !VerifySignature(hash[:], sig, key.PublicKey()) {
		t.Error("valid signature rejected")
	}

	other := Hash([]byte("other"))
	if VerifySignature(other[:], sig, key.PublicKey()) {
		t.Error("signature verified against wrong hash")
	}
	if VerifySignature(hash[:], sig, testKey(t, 0x33).PublicKey()) {
		t.Error("signature verified against wrong key")
	}

	bad := bytes.Clone(sig)
	bad[10] ^= 0xFF
	if VerifySignature(hash[:], bad, key.PublicKey()) {
		t.Error("corrupted signature verified")
	}
}

func TestSign_InvalidHashLength(t *testing.T) {
	if _, err := testKey(t, 0x22).Sign([]byte("short")); err == nil {
		t.Error("Sign() should reject non-32-byte input")
	}
}

func TestVerify_InvalidInputs(t *testing.T) {
	hash := Hash(nil)
	if VerifySignature(hash[:], make([]byte, 64), []byte{0x02}) {
		t.Error("invalid public key accepted")
	}
	if VerifySignature(hash[:], []byte{1, 2, 3}, testKey(t, 0x44).PublicKey()) {
		t.Error("short signature accepted")
	}
}

func TestSignMessage(t *testing.T) {
	key := testKey(t, 0x55)
	msg := []byte("I control this address")

	sig, err := key.SignMessage(msg)
	if err != nil {
		t.Fatalf("SignMessage() error: %v", err)
	}
	if !VerifyMessage(msg, sig, key.PublicKey()) {
		t.Error("VerifyMessage() rejected a valid signature")
	}
	if VerifyMessage([]byte("tampered"), sig, key.PublicKey()) {
		t.Error("VerifyMessage() accepted a different message")
	}
	h := Hash(msg)
	if VerifySignature(h[:], sig, key.PublicKey()) {
		t.Error("message signature must not verify over the bare hash")
	}
}

func TestPrivateKey_Zero(t *testing.T) {
	key := testKey(t, 0x66)
	key.Zero()
	if !bytes.Equal(key.Serialize(), make([]byte, 32)) {
		t.Error("Zero() should clear the scalar")
	}
}

func TestInterfaces(t *testing.T) {
	var _ Signer = testKey(t, 0x77)
	var _ Verifier = SchnorrVerifier{}
}
