package bip39

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"
)

func TestMasterSeed_FromMnemonic(t *testing.T) {
	ms, err := NewMasterSeed(Default(), zeroMnemonic, "TREZOR")
	if err != nil {
		t.Fatalf("NewMasterSeed() error: %v", err)
	}
	if ms.Mnemonic() != zeroMnemonic {
		t.Errorf("Mnemonic() = %q, want %q", ms.Mnemonic(), zeroMnemonic)
	}
	if len(ms.Words()) != 12 {
		t.Errorf("Words() len = %d, want 12", len(ms.Words()))
	}
	if !bytes.Equal(ms.Entropy(), make([]byte, 16)) {
		t.Errorf("Entropy() = %x, want zeros", ms.Entropy())
	}
	want := trezorVectors[0].seed
	if hex.EncodeToString(ms.Seed()) != want {
		t.Errorf("Seed() = %x, want %s", ms.Seed(), want)
	}
	if ms.Passphrase() != "TREZOR" || ms.Language() != English {
		t.Errorf("Passphrase/Language = %q/%s", ms.Passphrase(), ms.Language())
	}
}

func TestMasterSeed_RejectsInvalid(t *testing.T) {
	_, err := NewMasterSeed(Default(), "abandon abandon abandon", "")
	if !errors.Is(err, ErrInvalidMnemonicLength) {
		t.Errorf("error = %v, want ErrInvalidMnemonicLength", err)
	}
}

func TestMasterSeed_BinaryRoundTrip(t *testing.T) {
	for _, lang := range []Language{English, Japanese, French} {
		c, _ := NewCodec(lang)
		entropy := bytes.Repeat([]byte{0xa5}, 20)
		ms, err := MasterSeedFromEntropy(c, entropy, "pässwörd")
		if err != nil {
			t.Fatalf("%s: MasterSeedFromEntropy() error: %v", lang, err)
		}

		for _, compressed := range []bool{true, false} {
			data, err := ms.MarshalBinary(compressed)
			if err != nil {
				t.Fatalf("MarshalBinary(%v) error: %v", compressed, err)
			}
			if data[0] != c.WordList().Type() {
				t.Errorf("type byte = %d, want %d", data[0], c.WordList().Type())
			}
			got, err := UnmarshalMasterSeed(data, compressed)
			if err != nil {
				t.Fatalf("UnmarshalMasterSeed(%v) error: %v", compressed, err)
			}
			if !got.Equal(ms) {
				t.Errorf("%s compressed=%v: seeds differ", lang, compressed)
			}
			if got.Mnemonic() != ms.Mnemonic() {
				t.Errorf("%s compressed=%v: mnemonic = %q, want %q", lang, compressed, got.Mnemonic(), ms.Mnemonic())
			}
			if got.Language() != lang {
				t.Errorf("language = %s, want %s", got.Language(), lang)
			}
		}
	}
}

func TestMasterSeed_CompressedIsSmaller(t *testing.T) {
	ms, err := NewMasterSeed(Default(), zeroMnemonic, "")
	if err != nil {
		t.Fatalf("NewMasterSeed() error: %v", err)
	}
	full, _ := ms.MarshalBinary(false)
	small, _ := ms.MarshalBinary(true)
	// type + len + 16 entropy + len + empty passphrase
	if len(small) != 1+1+16+1 {
		t.Errorf("compressed size = %d, want 19", len(small))
	}
	if len(full) != len(small)+1+SeedSize {
		t.Errorf("full size = %d, want %d", len(full), len(small)+1+SeedSize)
	}
}

func TestUnmarshalMasterSeed_Malformed(t *testing.T) {
	ms, _ := NewMasterSeed(Default(), zeroMnemonic, "")
	full, _ := ms.MarshalBinary(false)
	small, _ := ms.MarshalBinary(true)

	badType := bytes.Clone(small)
	badType[0] = 0xEE

	badEntropyLen := []byte{0, 15}
	badEntropyLen = append(badEntropyLen, make([]byte, 15)...)
	badEntropyLen = append(badEntropyLen, 0)

	oversized := []byte{0, 0xC9} // 201-byte field

	shortSeed := bytes.Clone(small)
	shortSeed = append(shortSeed, 32)
	shortSeed = append(shortSeed, make([]byte, 32)...)

	tests := []struct {
		name       string
		data       []byte
		compressed bool
	}{
		{"empty", nil, true},
		{"unknown type", badType, true},
		{"entropy length", badEntropyLen, true},
		{"oversized field", oversized, true},
		{"truncated compressed", small[:10], true},
		{"truncated full", full[:len(full)-1], false},
		{"seed not 64 bytes", shortSeed, false},
		{"trailing bytes", append(bytes.Clone(small), 0x00), true},
		{"full read as compressed", full, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalMasterSeed(tt.data, tt.compressed)
			if !errors.Is(err, ErrMalformedMasterSeed) {
				t.Errorf("error = %v, want ErrMalformedMasterSeed", err)
			}
		})
	}
}

func TestMasterSeed_Zero(t *testing.T) {
	ms, _ := NewMasterSeed(Default(), zeroMnemonic, "secret")
	other, _ := NewMasterSeed(Default(), zeroMnemonic, "secret")
	if !ms.Equal(other) {
		t.Fatal("identical inputs should produce equal master seeds")
	}
	ms.Zero()
	if ms.Equal(other) {
		t.Error("zeroed master seed should not equal the original")
	}
	if ms.Passphrase() != "" {
		t.Error("Zero() should clear the passphrase")
	}
	if ms.Equal(nil) {
		t.Error("Equal(nil) = true")
	}
}
