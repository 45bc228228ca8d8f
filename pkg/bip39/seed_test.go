package bip39

import (
	"bytes"
	"encoding/hex"
	"errors"
	"sync"
	"testing"

	gobip39 "github.com/tyler-smith/go-bip39"
)

func TestNewSeed_KnownVector(t *testing.T) {
	want := "5eb00bbddcf069084889a8ab9155568165f5c453ccb85e70811aaed6f6da5fc19a5ac40b389cd370d086206dec8aa6c43daea6690f20ad3d8d48b2d2ce9e38e4"
	seed, err := MnemonicToSeed(zeroMnemonic, "")
	if err != nil {
		t.Fatalf("MnemonicToSeed() error: %v", err)
	}
	if len(seed) != SeedSize {
		t.Fatalf("seed length = %d, want %d", len(seed), SeedSize)
	}
	if hex.EncodeToString(seed) != want {
		t.Errorf("seed = %x, want %s", seed, want)
	}
}

func TestNewSeed_Deterministic(t *testing.T) {
	s1 := NewSeed(zeroMnemonic, "test")
	s2 := NewSeed(zeroMnemonic, "test")
	if !bytes.Equal(s1, s2) {
		t.Error("same mnemonic + passphrase should produce same seed")
	}
	if bytes.Equal(s1, NewSeed(zeroMnemonic, "other")) {
		t.Error("different passphrases should produce different seeds")
	}
}

func TestNewSeed_SkipsChecksum(t *testing.T) {
	// Not a valid mnemonic, but stretching works on the literal string.
	bad := "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon"
	if len(NewSeed(bad, "")) != SeedSize {
		t.Error("NewSeed should stretch any string")
	}
	if _, err := MnemonicToSeed(bad, ""); !errors.Is(err, ErrChecksumMismatch) {
		t.Errorf("MnemonicToSeed() error = %v, want ErrChecksumMismatch", err)
	}
}

func TestMnemonicToSeed_Rejects(t *testing.T) {
	tests := []struct {
		mnemonic string
		want     error
	}{
		{"", ErrInvalidMnemonicLength},
		{"not valid words here", ErrInvalidMnemonicLength},
		{"abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon zzzz", ErrUnknownWord},
	}
	for _, tt := range tests {
		if _, err := MnemonicToSeed(tt.mnemonic, ""); !errors.Is(err, tt.want) {
			t.Errorf("MnemonicToSeed(%q) error = %v, want %v", tt.mnemonic, err, tt.want)
		}
	}
}

func TestNewSeed_NFKDPassphrase(t *testing.T) {
	composed := "café"
	decomposed := "café"
	if !bytes.Equal(NewSeed(zeroMnemonic, composed), NewSeed(zeroMnemonic, decomposed)) {
		t.Error("composed and decomposed passphrases should stretch identically")
	}
}

func TestNewSeed_MatchesReference(t *testing.T) {
	for _, pass := range []string{"", "TREZOR", "correct horse battery staple"} {
		m, err := GenerateMnemonic(256)
		if err != nil {
			t.Fatalf("GenerateMnemonic() error: %v", err)
		}
		want := gobip39.NewSeed(m, pass)
		got, err := MnemonicToSeed(m, pass)
		if err != nil {
			t.Fatalf("MnemonicToSeed() error: %v", err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("seed = %x, reference = %x", got, want)
		}
	}
}

func TestNewSeed_Concurrent(t *testing.T) {
	want := NewSeed(zeroMnemonic, "")
	var wg sync.WaitGroup
	errs := make(chan string, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if !bytes.Equal(NewSeed(zeroMnemonic, ""), want) {
				errs <- "concurrent stretch diverged"
			}
		}()
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Error(e)
	}
}
