package bip39

import (
	"bytes"
	"errors"
	"testing"
)

func TestNewEntropy(t *testing.T) {
	for _, bits := range []int{128, 160, 192, 224, 256} {
		e, err := NewEntropy(bits)
		if err != nil {
			t.Fatalf("NewEntropy(%d) error: %v", bits, err)
		}
		if len(e) != bits/8 {
			t.Errorf("NewEntropy(%d) len = %d, want %d", bits, len(e), bits/8)
		}
	}

	a, _ := NewEntropy(256)
	b, _ := NewEntropy(256)
	if bytes.Equal(a, b) {
		t.Error("two entropy draws should not be identical")
	}
}

func TestNewEntropy_InvalidBits(t *testing.T) {
	_, err := NewEntropy(100)
	if !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("NewEntropy(100) error = %v, want ErrInvalidParameter", err)
	}
}

func TestWordCountConversions(t *testing.T) {
	pairs := map[int]int{128: 12, 160: 15, 192: 18, 224: 21, 256: 24}
	for bits, words := range pairs {
		got, err := WordCountForBits(bits)
		if err != nil || got != words {
			t.Errorf("WordCountForBits(%d) = %d, %v; want %d", bits, got, err, words)
		}
		back, err := BitsForWordCount(words)
		if err != nil || back != bits {
			t.Errorf("BitsForWordCount(%d) = %d, %v; want %d", words, back, err, bits)
		}
	}
	if _, err := BitsForWordCount(13); !errors.Is(err, ErrInvalidMnemonicLength) {
		t.Errorf("BitsForWordCount(13) error = %v", err)
	}
	if _, err := WordCountForBits(96); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("WordCountForBits(96) error = %v", err)
	}
}
