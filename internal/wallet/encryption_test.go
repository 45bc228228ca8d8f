package wallet

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

// fastParams returns low-cost Argon2 params for fast tests.
func fastParams() EncryptionParams {
	return EncryptionParams{
		Memory:      64, // 64 KiB (minimal)
		Iterations:  1,
		Parallelism: 1,
	}
}

func TestEncryptDecrypt_Roundtrip(t *testing.T) {
	for _, plaintext := range [][]byte{{}, []byte("compressed master seed"), bytes.Repeat([]byte{0xAB}, 4096)} {
		encrypted, err := Encrypt(plaintext, []byte("strong-password-123"), fastParams())
		if err != nil {
			t.Fatalf("Encrypt() error: %v", err)
		}
		decrypted, err := Decrypt(encrypted, []byte("strong-password-123"))
		if err != nil {
			t.Fatalf("Decrypt() error: %v", err)
		}
		if !bytes.Equal(decrypted, plaintext) {
			t.Errorf("decrypted %d bytes, want %d", len(decrypted), len(plaintext))
		}
	}
}

func TestDecrypt_WrongPassword(t *testing.T) {
	encrypted, err := Encrypt([]byte("secret data"), []byte("correct"), fastParams())
	if err != nil {
		t.Fatalf("Encrypt() error: %v", err)
	}
	if _, err := Decrypt(encrypted, []byte("wrong")); !errors.Is(err, ErrBadPassword) {
		t.Errorf("Decrypt() error = %v, want ErrBadPassword", err)
	}
}

func TestDecrypt_TruncatedData(t *testing.T) {
	if _, err := Decrypt([]byte("too short"), []byte("pass")); err == nil {
		t.Error("Decrypt with truncated data should fail")
	}
}

func TestDecrypt_Tampered(t *testing.T) {
	encrypted, err := Encrypt([]byte("data"), []byte("pass"), fastParams())
	if err != nil {
		t.Fatalf("Encrypt() error: %v", err)
	}

	tests := []struct {
		name   string
		offset int
	}{
		{"salt", 0},
		{"iterations", SaltSize + 4},
		{"nonce", headerSize},
		{"tag", len(encrypted) - 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bad := bytes.Clone(encrypted)
			bad[tt.offset] ^= 0x02
			if _, err := Decrypt(bad, []byte("pass")); !errors.Is(err, ErrBadPassword) {
				t.Errorf("Decrypt() error = %v, want ErrBadPassword", err)
			}
		})
	}
}

func TestDecrypt_RejectsHostileParams(t *testing.T) {
	encrypted, err := Encrypt([]byte("data"), []byte("pass"), fastParams())
	if err != nil {
		t.Fatalf("Encrypt() error: %v", err)
	}
	binary.LittleEndian.PutUint32(encrypted[SaltSize:], 0xFFFFFFFF)
	if _, err := Decrypt(encrypted, []byte("pass")); !errors.Is(err, ErrBadPassword) {
		t.Errorf("Decrypt() error = %v, want ErrBadPassword", err)
	}
}

func TestEncrypt_InvalidParams(t *testing.T) {
	if _, err := Encrypt([]byte("x"), []byte("p"), EncryptionParams{Memory: 64}); err == nil {
		t.Error("Encrypt() should reject zero iterations")
	}
}

func TestEncrypt_DifferentEachTime(t *testing.T) {
	enc1, _ := Encrypt([]byte("same data"), []byte("same pass"), fastParams())
	enc2, _ := Encrypt([]byte("same data"), []byte("same pass"), fastParams())
	if bytes.Equal(enc1, enc2) {
		t.Error("encrypting same data twice should produce different output (random salt/nonce)")
	}
}

func TestEncrypt_OutputFormat(t *testing.T) {
	params := fastParams()
	encrypted, err := Encrypt([]byte("test"), []byte("pass"), params)
	if err != nil {
		t.Fatalf("Encrypt() error: %v", err)
	}
	if want := headerSize + 24 + 4 + 16; len(encrypted) != want {
		t.Errorf("encrypted length = %d, want %d", len(encrypted), want)
	}
	if got := binary.LittleEndian.Uint32(encrypted[SaltSize:]); got != params.Memory {
		t.Errorf("header memory = %d, want %d", got, params.Memory)
	}
	if encrypted[SaltSize+8] != params.Parallelism {
		t.Errorf("header parallelism = %d", encrypted[SaltSize+8])
	}
}

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	if p.Memory != 64*1024 || p.Iterations != 3 || p.Parallelism != 4 {
		t.Errorf("DefaultParams() = %+v", p)
	}
	if err := p.validate(); err != nil {
		t.Errorf("DefaultParams() invalid: %v", err)
	}
}
