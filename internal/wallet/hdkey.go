package wallet

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Klingon-tech/klingnet-mnemonic/pkg/crypto"
	"github.com/tyler-smith/go-bip32"
)

// BIP-44 derivation path constants.
// Full path: m/44'/CoinType'/account'/change/index
const (
	// PurposeBIP44 is the BIP-44 purpose field (hardened).
	PurposeBIP44 = bip32.FirstHardenedChild + 44

	// CoinTypeKlingnet is the coin type used for wallet addresses (hardened).
	CoinTypeKlingnet = bip32.FirstHardenedChild + 8888

	// ChangeExternal is for receiving addresses.
	ChangeExternal = 0

	// ChangeInternal is for change addresses.
	ChangeInternal = 1
)

// ErrInvalidPath is returned for malformed derivation paths.
var ErrInvalidPath = errors.New("invalid derivation path")

// HDKey represents a hierarchical deterministic key (BIP-32).
type HDKey struct {
	key *bip32.Key
}

// NewMasterKey creates a master HD key from a 64-byte seed.
func NewMasterKey(seed []byte) (*HDKey, error) {
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("seed must be %d bytes, got %d", SeedSize, len(seed))
	}
	master, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, fmt.Errorf("create master key: %w", err)
	}
	return &HDKey{key: master}, nil
}

// ParseExtendedKey decodes a base58 xprv or xpub.
func ParseExtendedKey(s string) (*HDKey, error) {
	key, err := bip32.B58Deserialize(s)
	if err != nil {
		return nil, fmt.Errorf("parse extended key: %w", err)
	}
	return &HDKey{key: key}, nil
}

// DeriveChild derives a child key at the given index.
// For hardened derivation, add bip32.FirstHardenedChild to the index.
func (k *HDKey) DeriveChild(index uint32) (*HDKey, error) {
	child, err := k.key.NewChildKey(index)
	if err != nil {
		return nil, fmt.Errorf("derive child %d: %w", index, err)
	}
	return &HDKey{key: child}, nil
}

// DerivePath derives a key along a sequence of indices.
func (k *HDKey) DerivePath(indices ...uint32) (*HDKey, error) {
	current := k
	for _, idx := range indices {
		child, err := current.DeriveChild(idx)
		if err != nil {
			return nil, err
		}
		current = child
	}
	return current, nil
}

// DeriveAddress derives the key at m/44'/8888'/account'/change/index.
func (k *HDKey) DeriveAddress(account, change, index uint32) (*HDKey, error) {
	return k.DerivePath(AddressPath(account, change, index)...)
}

// AddressPath returns the BIP-44 indices for an address key.
func AddressPath(account, change, index uint32) []uint32 {
	return []uint32{
		PurposeBIP44,
		CoinTypeKlingnet,
		bip32.FirstHardenedChild + account,
		change,
		index,
	}
}

// AddressIndices splits a BIP-44 address path into account, change and
// index. ok is false for any other path shape.
func AddressIndices(path []uint32) (account, change, index uint32, ok bool) {
	if len(path) != 5 || path[0] != PurposeBIP44 || path[1] != CoinTypeKlingnet {
		return 0, 0, 0, false
	}
	if path[2] < bip32.FirstHardenedChild || path[3] > ChangeInternal || path[4] >= bip32.FirstHardenedChild {
		return 0, 0, 0, false
	}
	return path[2] - bip32.FirstHardenedChild, path[3], path[4], true
}

// ParsePath parses a path such as "m/44'/8888'/0'/0/5". Hardened steps may
// be marked with ', h or H. "m" alone is the master key.
func ParsePath(path string) ([]uint32, error) {
	parts := strings.Split(strings.TrimSpace(path), "/")
	if parts[0] != "m" && parts[0] != "M" {
		return nil, fmt.Errorf("%w: %q must start with m", ErrInvalidPath, path)
	}

	indices := make([]uint32, 0, len(parts)-1)
	for _, p := range parts[1:] {
		hardened := false
		if n := len(p); n > 0 && (p[n-1] == '\'' || p[n-1] == 'h' || p[n-1] == 'H') {
			hardened = true
			p = p[:n-1]
		}
		v, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: bad step %q in %q", ErrInvalidPath, p, path)
		}
		if v >= uint64(bip32.FirstHardenedChild) {
			return nil, fmt.Errorf("%w: step %d out of range", ErrInvalidPath, v)
		}
		idx := uint32(v)
		if hardened {
			idx += bip32.FirstHardenedChild
		}
		indices = append(indices, idx)
	}
	return indices, nil
}

// FormatPath renders indices in the form ParsePath accepts.
func FormatPath(indices []uint32) string {
	var b strings.Builder
	b.WriteString("m")
	for _, idx := range indices {
		b.WriteByte('/')
		if idx >= bip32.FirstHardenedChild {
			b.WriteString(strconv.FormatUint(uint64(idx-bip32.FirstHardenedChild), 10))
			b.WriteByte('\'')
		} else {
			b.WriteString(strconv.FormatUint(uint64(idx), 10))
		}
	}
	return b.String()
}

// PrivateKeyBytes returns the raw 32-byte private key.
// Returns nil if this is a public-only key.
func (k *HDKey) PrivateKeyBytes() []byte {
	if !k.key.IsPrivate {
		return nil
	}
	// bip32 Key.Key is 33 bytes with a leading 0x00 for private keys.
	raw := k.key.Key
	if len(raw) == 33 && raw[0] == 0 {
		return raw[1:]
	}
	// Child scalars with leading zero bytes come back short.
	if len(raw) < 32 {
		padded := make([]byte, 32)
		copy(padded[32-len(raw):], raw)
		return padded
	}
	return raw
}

// PublicKeyBytes returns the compressed 33-byte public key.
func (k *HDKey) PublicKeyBytes() []byte {
	return k.key.PublicKey().Key
}

// Signer returns a crypto.PrivateKey for this HD key.
// Returns error if this is a public-only key.
func (k *HDKey) Signer() (*crypto.PrivateKey, error) {
	priv := k.PrivateKeyBytes()
	if priv == nil {
		return nil, fmt.Errorf("cannot create signer from public key")
	}
	return crypto.PrivateKeyFromBytes(priv)
}

// Address derives the wallet address of this key's public key.
func (k *HDKey) Address() crypto.Address {
	return crypto.AddressFromPubKey(k.PublicKeyBytes())
}

// Fingerprint identifies the key by its public key without revealing it.
// The keystore records the master key fingerprint of every vault.
func (k *HDKey) Fingerprint() string {
	return crypto.Fingerprint(k.PublicKeyBytes())
}

// String returns the base58 extended key (xprv for private keys).
func (k *HDKey) String() string {
	return k.key.B58Serialize()
}

// IsPrivate returns true if this key contains a private key.
func (k *HDKey) IsPrivate() bool {
	return k.key.IsPrivate
}

// Depth returns the derivation depth (0 for master).
func (k *HDKey) Depth() uint8 {
	return k.key.Depth
}

// Neuter returns a public-key-only copy.
func (k *HDKey) Neuter() *HDKey {
	return &HDKey{key: k.key.PublicKey()}
}

// Zero wipes the private key material.
func (k *HDKey) Zero() {
	if k.key.IsPrivate {
		for i := range k.key.Key {
			k.key.Key[i] = 0
		}
	}
	for i := range k.key.ChainCode {
		k.key.ChainCode[i] = 0
	}
}
