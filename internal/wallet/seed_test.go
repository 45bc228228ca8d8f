package wallet

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/Klingon-tech/klingnet-mnemonic/pkg/bip39"
)

func TestSeedFromMnemonic_KnownVector(t *testing.T) {
	want := "c55257c360c07c72029aebc1b53c05ed0362ada38ead3e3e9efa3708e53495531f09a6987599d18264c1e1c92f2cf141630c7a3c4ab7c81b2f001698e7463b04"
	seed, err := SeedFromMnemonic(testMnemonic, "TREZOR", bip39.English)
	if err != nil {
		t.Fatalf("SeedFromMnemonic() error: %v", err)
	}
	if hex.EncodeToString(seed) != want {
		t.Errorf("seed = %x, want %s", seed, want)
	}
}

func TestSeedFromMnemonic_PassphraseChanges(t *testing.T) {
	a, _ := SeedFromMnemonic(testMnemonic, "", "")
	b, _ := SeedFromMnemonic(testMnemonic, "x", "")
	if bytes.Equal(a, b) {
		t.Error("different passphrases should produce different seeds")
	}
}

func TestSeedFromMnemonic_Invalid(t *testing.T) {
	if _, err := SeedFromMnemonic("abandon abandon", "", ""); !errors.Is(err, bip39.ErrInvalidMnemonicLength) {
		t.Errorf("error = %v, want ErrInvalidMnemonicLength", err)
	}
	if _, err := SeedFromMnemonic(testMnemonic, "", bip39.Spanish); !errors.Is(err, bip39.ErrUnknownWord) {
		t.Errorf("error = %v, want ErrUnknownWord", err)
	}
}

func TestMasterSeedFromMnemonic(t *testing.T) {
	ms, err := MasterSeedFromMnemonic(testMnemonic, "TREZOR", "")
	if err != nil {
		t.Fatalf("MasterSeedFromMnemonic() error: %v", err)
	}
	seed, _ := SeedFromMnemonic(testMnemonic, "TREZOR", "")
	if !bytes.Equal(ms.Seed(), seed) {
		t.Error("master seed and plain seed differ")
	}
	if ms.Language() != bip39.English {
		t.Errorf("language = %s", ms.Language())
	}
}

func TestSeedFromMnemonic_DetectChecksLengthFirst(t *testing.T) {
	_, err := SeedFromMnemonic("abandon xyzzy", "", "")
	if kind := bip39.Kind(err); kind != "InvalidMnemonicLength" {
		t.Errorf("kind = %q (%v), want InvalidMnemonicLength", kind, err)
	}
}
