// Package bip39 implements BIP-39 mnemonic codes: entropy generation,
// entropy/mnemonic encoding with a SHA-256 checksum, mnemonic validation and
// PBKDF2 seed stretching.
//
// All functions are pure given the process-wide word lists and are safe for
// concurrent use.
package bip39

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"

	"github.com/minio/sha256-simd"
)

const bitsPerWord = 11

// Codec encodes and decodes mnemonics against one word list.
type Codec struct {
	words *WordList
	rand  io.Reader
}

// Option configures a Codec.
type Option func(*Codec)

// WithRandom replaces the entropy source. Intended for tests; production
// code keeps the crypto/rand default.
func WithRandom(r io.Reader) Option {
	return func(c *Codec) { c.rand = r }
}

// NewCodec returns a codec for lang ("" means English).
func NewCodec(lang Language, opts ...Option) (*Codec, error) {
	wl, err := WordListFor(lang)
	if err != nil {
		return nil, err
	}
	c := &Codec{words: wl, rand: rand.Reader}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// WordList returns the codec's word list.
func (c *Codec) WordList() *WordList { return c.words }

// Language returns the codec's language.
func (c *Codec) Language() Language { return c.words.lang }

// GenerateMnemonic creates a mnemonic from fresh entropy of the given size.
func (c *Codec) GenerateMnemonic(bits int) (string, error) {
	entropy, err := readEntropy(c.rand, bits)
	if err != nil {
		return "", err
	}
	defer wipe(entropy)
	return c.MnemonicFromEntropy(entropy)
}

// MnemonicFromEntropy encodes entropy as a mnemonic sentence.
func (c *Codec) MnemonicFromEntropy(entropy []byte) (string, error) {
	words, err := c.encode(entropy)
	if err != nil {
		return "", err
	}
	return strings.Join(words, c.words.separator), nil
}

// EntropyFromMnemonic decodes and verifies a mnemonic, returning its entropy.
func (c *Codec) EntropyFromMnemonic(mnemonic string) ([]byte, error) {
	return c.decode(splitWords(mnemonic))
}

// CheckMnemonic returns nil for a valid mnemonic or the specific reason it
// is not valid.
func (c *Codec) CheckMnemonic(mnemonic string) error {
	entropy, err := c.EntropyFromMnemonic(mnemonic)
	wipe(entropy)
	return err
}

// ValidateMnemonic reports whether mnemonic is valid for this word list.
func (c *Codec) ValidateMnemonic(mnemonic string) bool {
	return c.CheckMnemonic(mnemonic) == nil
}

// Normalize collapses whitespace and rejoins words with the list separator.
// It does not validate.
func (c *Codec) Normalize(mnemonic string) string {
	return strings.Join(splitWords(mnemonic), c.words.separator)
}

func (c *Codec) encode(entropy []byte) ([]string, error) {
	bits := len(entropy) * 8
	count, err := WordCountForBits(bits)
	if err != nil {
		return nil, fmt.Errorf("%w: entropy must be 16, 20, 24, 28 or 32 bytes, got %d", ErrInvalidParameter, len(entropy))
	}

	// At most 8 checksum bits, so entropy plus the first hash byte holds
	// every bit the words need.
	buf := make([]byte, len(entropy)+1)
	copy(buf, entropy)
	buf[len(entropy)] = checksumByte(entropy)
	defer wipe(buf)

	words := make([]string, count)
	for i := range words {
		words[i] = c.words.words[readIndex(buf, i*bitsPerWord)]
	}
	return words, nil
}

func (c *Codec) decode(words []string) ([]byte, error) {
	bits, err := BitsForWordCount(len(words))
	if err != nil {
		return nil, fmt.Errorf("%w, got %d", err, len(words))
	}

	buf := make([]byte, (len(words)*bitsPerWord+7)/8)
	for i, w := range words {
		idx, ok := c.words.Index(w)
		if !ok {
			wipe(buf)
			return nil, &UnknownWordError{Word: w, Position: i}
		}
		writeIndex(buf, i*bitsPerWord, idx)
	}

	entLen := bits / 8
	entropy := make([]byte, entLen)
	copy(entropy, buf[:entLen])
	got := buf[entLen] & checksumMask(bits)
	wipe(buf)

	if got != checksumByte(entropy) {
		wipe(entropy)
		return nil, ErrChecksumMismatch
	}
	return entropy, nil
}

// checksumByte returns the leading len(entropy)/4 bits of SHA-256(entropy),
// left aligned, remaining bits zero.
func checksumByte(entropy []byte) byte {
	h := sha256.Sum256(entropy)
	return h[0] & checksumMask(len(entropy)*8)
}

func checksumMask(entropyBits int) byte {
	return byte(0xFF << (8 - entropyBits/32))
}

// readIndex reads the 11-bit big-endian value starting at bit offset.
func readIndex(buf []byte, offset int) int {
	v := 0
	for i := 0; i < bitsPerWord; i++ {
		b := offset + i
		v <<= 1
		if buf[b/8]&(0x80>>(b%8)) != 0 {
			v |= 1
		}
	}
	return v
}

// writeIndex stores idx as 11 big-endian bits at bit offset.
func writeIndex(buf []byte, offset, idx int) {
	for i := 0; i < bitsPerWord; i++ {
		if idx&(0x400>>i) != 0 {
			b := offset + i
			buf[b/8] |= 0x80 >> (b % 8)
		}
	}
}

// splitWords trims and collapses all Unicode whitespace, including the
// ideographic space used by Japanese mnemonics.
func splitWords(mnemonic string) []string {
	return strings.Fields(mnemonic)
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// english is the default codec behind the package-level helpers.
var english = &Codec{words: registry[English], rand: rand.Reader}

// Default returns the shared English codec.
func Default() *Codec { return english }

// GenerateMnemonic creates an English mnemonic from bits of fresh entropy.
func GenerateMnemonic(bits int) (string, error) {
	return english.GenerateMnemonic(bits)
}

// MnemonicFromEntropy encodes entropy as an English mnemonic.
func MnemonicFromEntropy(entropy []byte) (string, error) {
	return english.MnemonicFromEntropy(entropy)
}

// EntropyFromMnemonic decodes an English mnemonic.
func EntropyFromMnemonic(mnemonic string) ([]byte, error) {
	return english.EntropyFromMnemonic(mnemonic)
}

// CheckMnemonic explains why an English mnemonic is invalid, or returns nil.
func CheckMnemonic(mnemonic string) error {
	return english.CheckMnemonic(mnemonic)
}

// ValidateMnemonic reports whether an English mnemonic is valid.
func ValidateMnemonic(mnemonic string) bool {
	return english.ValidateMnemonic(mnemonic)
}
