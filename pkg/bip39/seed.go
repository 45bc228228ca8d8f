package bip39

import (
	"crypto/sha512"

	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/text/unicode/norm"
)

// Seed stretching parameters.
const (
	SeedSize       = 64
	SeedIterations = 2048
	SeedSaltPrefix = "mnemonic"
)

// NewSeed stretches mnemonic and passphrase into a 64-byte seed with
// PBKDF2-HMAC-SHA512. Both inputs are NFKD-normalised; the mnemonic is
// used verbatim otherwise and is NOT checked against any word list.
func NewSeed(mnemonic, passphrase string) []byte {
	password := []byte(norm.NFKD.String(mnemonic))
	salt := []byte(norm.NFKD.String(SeedSaltPrefix + passphrase))
	return pbkdf2.Key(password, salt, SeedIterations, SeedSize, sha512.New)
}

// MnemonicToSeed validates mnemonic and then stretches it. Malformed input
// is rejected before any key derivation work is done.
func (c *Codec) MnemonicToSeed(mnemonic, passphrase string) ([]byte, error) {
	if err := c.CheckMnemonic(mnemonic); err != nil {
		return nil, err
	}
	return NewSeed(c.Normalize(mnemonic), passphrase), nil
}

// MnemonicToSeed validates an English mnemonic and stretches it.
func MnemonicToSeed(mnemonic, passphrase string) ([]byte, error) {
	return english.MnemonicToSeed(mnemonic, passphrase)
}
