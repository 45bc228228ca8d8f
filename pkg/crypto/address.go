package crypto

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

// AddressSize is the length of an address in bytes.
const AddressSize = 20

// AddressHRP is the bech32 human-readable part of wallet addresses.
const AddressHRP = "kgx"

// Address is a 160-bit public key hash.
type Address [AddressSize]byte

// AddressFromPubKey derives an address from a compressed public key.
// Address = BLAKE3(compressed_pubkey)[:20].
func AddressFromPubKey(pubKey []byte) Address {
	h := Hash(pubKey)
	var addr Address
	copy(addr[:], h[:AddressSize])
	return addr
}

// String returns the bech32 form, e.g. "kgx1...".
func (a Address) String() string {
	conv, err := bech32.ConvertBits(a[:], 8, 5, true)
	if err != nil {
		return AddressHRP + ":" + hex.EncodeToString(a[:])
	}
	s, err := bech32.Encode(AddressHRP, conv)
	if err != nil {
		return AddressHRP + ":" + hex.EncodeToString(a[:])
	}
	return s
}

// Hex returns the raw hex-encoded address.
func (a Address) Hex() string {
	return hex.EncodeToString(a[:])
}

// ParseAddress decodes a bech32 address with the wallet HRP.
func ParseAddress(s string) (Address, error) {
	hrp, data, err := bech32.Decode(s)
	if err != nil {
		return Address{}, fmt.Errorf("invalid bech32 address: %w", err)
	}
	if hrp != AddressHRP {
		return Address{}, fmt.Errorf("address prefix %q, want %q", hrp, AddressHRP)
	}
	raw, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return Address{}, fmt.Errorf("invalid address payload: %w", err)
	}
	if len(raw) != AddressSize {
		return Address{}, fmt.Errorf("address must be %d bytes, got %d", AddressSize, len(raw))
	}
	var a Address
	copy(a[:], raw)
	return a, nil
}
