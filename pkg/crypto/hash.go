// Package crypto provides the hashing, address and signing primitives used by
// the wallet.
package crypto

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// HashSize is the length of a BLAKE3-256 digest.
const HashSize = 32

// Hash computes a BLAKE3-256 hash of the input data.
func Hash(data []byte) [HashSize]byte {
	return blake3.Sum256(data)
}

// messagePrefix domain-separates signed messages from any other hashed data.
const messagePrefix = "Klingnet Signed Message:\n"

// MessageHash returns the digest that SignMessage signs.
func MessageHash(message []byte) [HashSize]byte {
	h := blake3.New()
	h.Write([]byte(messagePrefix))
	h.Write(message)
	var out [HashSize]byte
	h.Sum(out[:0])
	return out
}

// Fingerprint returns a short hex identifier for a public value such as a
// master public key. It is not reversible to the input.
func Fingerprint(data []byte) string {
	h := Hash(data)
	return hex.EncodeToString(h[:4])
}
