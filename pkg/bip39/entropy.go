package bip39

import (
	"crypto/rand"
	"fmt"
	"io"
)

// Allowed entropy sizes.
const (
	MinEntropyBits     = 128
	MaxEntropyBits     = 256
	EntropyBitsStep    = 32
	DefaultEntropyBits = MinEntropyBits
)

// ValidEntropyBits reports whether bits is one of 128, 160, 192, 224, 256.
func ValidEntropyBits(bits int) bool {
	return bits >= MinEntropyBits && bits <= MaxEntropyBits && bits%EntropyBitsStep == 0
}

// WordCountForBits returns the mnemonic length produced by bits of entropy.
func WordCountForBits(bits int) (int, error) {
	if !ValidEntropyBits(bits) {
		return 0, fmt.Errorf("%w: entropy bits must be 128, 160, 192, 224 or 256, got %d", ErrInvalidParameter, bits)
	}
	return (bits + bits/32) / bitsPerWord, nil
}

// BitsForWordCount is the inverse of WordCountForBits.
func BitsForWordCount(words int) (int, error) {
	switch words {
	case 12, 15, 18, 21, 24:
		return words * bitsPerWord * 32 / 33, nil
	default:
		return 0, ErrInvalidMnemonicLength
	}
}

// NewEntropy reads bits of entropy from the operating system CSPRNG.
func NewEntropy(bits int) ([]byte, error) {
	return readEntropy(rand.Reader, bits)
}

// readEntropy fills a buffer from r. Any short read is fatal: there is no
// fallback to a weaker source.
func readEntropy(r io.Reader, bits int) ([]byte, error) {
	if !ValidEntropyBits(bits) {
		return nil, fmt.Errorf("%w: entropy bits must be 128, 160, 192, 224 or 256, got %d", ErrInvalidParameter, bits)
	}
	entropy := make([]byte, bits/8)
	if _, err := io.ReadFull(r, entropy); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEntropySourceUnavailable, err)
	}
	return entropy, nil
}
