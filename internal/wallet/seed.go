package wallet

import (
	"github.com/Klingon-tech/klingnet-mnemonic/pkg/bip39"
)

// SeedSize is the length of a derived seed in bytes (512 bits).
const SeedSize = bip39.SeedSize

// SeedFromMnemonic validates mnemonic and derives its 512-bit seed.
// An empty lang detects the word list.
func SeedFromMnemonic(mnemonic, passphrase string, lang bip39.Language) ([]byte, error) {
	codec, err := ResolveCodec(lang, mnemonic)
	if err != nil {
		return nil, err
	}
	return codec.MnemonicToSeed(mnemonic, passphrase)
}

// MasterSeedFromMnemonic is SeedFromMnemonic keeping the entropy and
// passphrase alongside the seed.
func MasterSeedFromMnemonic(mnemonic, passphrase string, lang bip39.Language) (*bip39.MasterSeed, error) {
	codec, err := ResolveCodec(lang, mnemonic)
	if err != nil {
		return nil, err
	}
	return bip39.NewMasterSeed(codec, mnemonic, passphrase)
}
