package bip39

import (
	"bytes"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/btcsuite/btcd/wire"
	"golang.org/x/text/unicode/norm"
)

// maxFieldSize bounds every length-prefixed field of a serialized master seed.
const maxFieldSize = 200

// MasterSeed bundles the entropy behind a mnemonic, the passphrase used to
// stretch it and the resulting 64-byte seed.
//
// Binary form:
//
//	type(1) | varint | entropy | varint | passphrase (UTF-8, NFKD) [| varint | seed]
//
// The compressed form omits the seed, which is recomputed on decode.
type MasterSeed struct {
	words      *WordList
	entropy    []byte
	passphrase string
	seed       []byte
}

// NewMasterSeed validates mnemonic against codec's word list and stretches it.
func NewMasterSeed(codec *Codec, mnemonic, passphrase string) (*MasterSeed, error) {
	entropy, err := codec.EntropyFromMnemonic(mnemonic)
	if err != nil {
		return nil, err
	}
	return &MasterSeed{
		words:      codec.words,
		entropy:    entropy,
		passphrase: norm.NFKD.String(passphrase),
		seed:       NewSeed(codec.Normalize(mnemonic), passphrase),
	}, nil
}

// MasterSeedFromEntropy builds a master seed directly from raw entropy.
func MasterSeedFromEntropy(codec *Codec, entropy []byte, passphrase string) (*MasterSeed, error) {
	mnemonic, err := codec.MnemonicFromEntropy(entropy)
	if err != nil {
		return nil, err
	}
	return NewMasterSeed(codec, mnemonic, passphrase)
}

// Language returns the word list language of the mnemonic.
func (ms *MasterSeed) Language() Language { return ms.words.lang }

// Passphrase returns the NFKD-normalised passphrase.
func (ms *MasterSeed) Passphrase() string { return ms.passphrase }

// Entropy returns a copy of the raw entropy.
func (ms *MasterSeed) Entropy() []byte { return bytes.Clone(ms.entropy) }

// Seed returns a copy of the 64-byte seed.
func (ms *MasterSeed) Seed() []byte { return bytes.Clone(ms.seed) }

// Words returns the mnemonic as a word slice.
func (ms *MasterSeed) Words() []string {
	c := &Codec{words: ms.words, rand: rand.Reader}
	// Entropy length was checked when ms was built.
	words, _ := c.encode(ms.entropy)
	return words
}

// Mnemonic returns the mnemonic sentence.
func (ms *MasterSeed) Mnemonic() string {
	var b bytes.Buffer
	for i, w := range ms.Words() {
		if i > 0 {
			b.WriteString(ms.words.separator)
		}
		b.WriteString(w)
	}
	return b.String()
}

// Equal compares the derived seeds in constant time.
func (ms *MasterSeed) Equal(other *MasterSeed) bool {
	if other == nil {
		return false
	}
	return subtle.ConstantTimeCompare(ms.seed, other.seed) == 1
}

// Zero wipes the entropy and seed.
func (ms *MasterSeed) Zero() {
	wipe(ms.entropy)
	wipe(ms.seed)
	ms.passphrase = ""
}

// MarshalBinary encodes the master seed. See the type comment for layout.
func (ms *MasterSeed) MarshalBinary(compressed bool) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte(ms.words.typ)
	if err := writeField(&buf, ms.entropy); err != nil {
		return nil, err
	}
	if err := writeField(&buf, []byte(ms.passphrase)); err != nil {
		return nil, err
	}
	if !compressed {
		if err := writeField(&buf, ms.seed); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// UnmarshalMasterSeed decodes data produced by MarshalBinary with the same
// compressed flag.
func UnmarshalMasterSeed(data []byte, compressed bool) (*MasterSeed, error) {
	r := bytes.NewReader(data)

	typ, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("%w: missing word list type", ErrMalformedMasterSeed)
	}
	wl, ok := wordListByType(typ)
	if !ok {
		return nil, fmt.Errorf("%w: unknown word list type %d", ErrMalformedMasterSeed, typ)
	}

	entropy, err := readField(r, "entropy")
	if err != nil {
		return nil, err
	}
	if !ValidEntropyBits(len(entropy) * 8) {
		return nil, fmt.Errorf("%w: entropy is %d bytes", ErrMalformedMasterSeed, len(entropy))
	}

	pass, err := readField(r, "passphrase")
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(pass) {
		return nil, fmt.Errorf("%w: passphrase is not UTF-8", ErrMalformedMasterSeed)
	}

	codec := &Codec{words: wl, rand: rand.Reader}
	var ms *MasterSeed
	if compressed {
		ms, err = MasterSeedFromEntropy(codec, entropy, string(pass))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedMasterSeed, err)
		}
	} else {
		seed, err := readField(r, "seed")
		if err != nil {
			return nil, err
		}
		if len(seed) != SeedSize {
			return nil, fmt.Errorf("%w: seed is %d bytes, want %d", ErrMalformedMasterSeed, len(seed), SeedSize)
		}
		ms = &MasterSeed{
			words:      wl,
			entropy:    entropy,
			passphrase: string(pass),
			seed:       seed,
		}
	}

	if r.Len() != 0 {
		ms.Zero()
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrMalformedMasterSeed, r.Len())
	}
	return ms, nil
}

func writeField(w io.Writer, b []byte) error {
	if len(b) > maxFieldSize {
		return fmt.Errorf("%w: field is %d bytes, max %d", ErrInvalidParameter, len(b), maxFieldSize)
	}
	if err := wire.WriteVarInt(w, 0, uint64(len(b))); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}

func readField(r io.Reader, name string) ([]byte, error) {
	n, err := wire.ReadVarInt(r, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %s length: %v", ErrMalformedMasterSeed, name, err)
	}
	if n > maxFieldSize {
		return nil, fmt.Errorf("%w: %s is %d bytes, max %d", ErrMalformedMasterSeed, name, n, maxFieldSize)
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, fmt.Errorf("%w: %s truncated", ErrMalformedMasterSeed, name)
	}
	return b, nil
}
