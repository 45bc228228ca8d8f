package wallet

import (
	"errors"
	"strings"
	"testing"

	"github.com/Klingon-tech/klingnet-mnemonic/pkg/bip39"
)

func TestGenerateMnemonic(t *testing.T) {
	m, err := GenerateMnemonic(bip39.English, 256)
	if err != nil {
		t.Fatalf("GenerateMnemonic() error: %v", err)
	}
	if n := len(strings.Fields(m)); n != 24 {
		t.Errorf("word count = %d, want 24", n)
	}
	if !ValidateMnemonic(m) {
		t.Error("generated mnemonic should validate")
	}

	if _, err := GenerateMnemonic("klingon", 128); !errors.Is(err, bip39.ErrUnsupportedLanguage) {
		t.Errorf("error = %v, want ErrUnsupportedLanguage", err)
	}
	if _, err := GenerateMnemonic(bip39.English, 100); !errors.Is(err, bip39.ErrInvalidParameter) {
		t.Errorf("error = %v, want ErrInvalidParameter", err)
	}
}

func TestResolveCodec(t *testing.T) {
	ja, err := GenerateMnemonic(bip39.Japanese, 128)
	if err != nil {
		t.Fatalf("GenerateMnemonic() error: %v", err)
	}
	c, err := ResolveCodec("", ja)
	if err != nil {
		t.Fatalf("ResolveCodec() error: %v", err)
	}
	if c.Language() != bip39.Japanese {
		t.Errorf("detected %s, want japanese", c.Language())
	}

	c, err = ResolveCodec(bip39.French, testMnemonic)
	if err != nil {
		t.Fatalf("ResolveCodec() error: %v", err)
	}
	if c.Language() != bip39.French {
		t.Error("explicit language should not be overridden")
	}
}

func TestValidateMnemonic(t *testing.T) {
	tests := []struct {
		name     string
		mnemonic string
		want     bool
	}{
		{"valid english", testMnemonic, true},
		{"bad checksum", strings.Replace(testMnemonic, "about", "abandon", 1), false},
		{"unknown word", "xyz " + testMnemonic[8:], false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		if got := ValidateMnemonic(tt.mnemonic); got != tt.want {
			t.Errorf("%s: ValidateMnemonic() = %v, want %v", tt.name, got, tt.want)
		}
	}
}
