// Package wallet keeps BIP-39 master seeds encrypted at rest and derives
// BIP-32 keys from them.
package wallet

import (
	"github.com/Klingon-tech/klingnet-mnemonic/pkg/bip39"
)

// ResolveCodec returns the codec for lang. With an empty lang the language
// is detected from the words of mnemonic; English wins ties.
func ResolveCodec(lang bip39.Language, mnemonic string) (*bip39.Codec, error) {
	if lang == "" && mnemonic != "" {
		detected, err := bip39.DetectLanguage(mnemonic)
		if err != nil {
			return nil, err
		}
		lang = detected
	}
	return bip39.NewCodec(lang)
}

// GenerateMnemonic creates a new mnemonic of the given entropy size in lang.
func GenerateMnemonic(lang bip39.Language, bits int) (string, error) {
	codec, err := bip39.NewCodec(lang)
	if err != nil {
		return "", err
	}
	return codec.GenerateMnemonic(bits)
}

// ValidateMnemonic reports whether mnemonic is valid in any supported language.
func ValidateMnemonic(mnemonic string) bool {
	codec, err := ResolveCodec("", mnemonic)
	if err != nil {
		return false
	}
	return codec.ValidateMnemonic(mnemonic)
}
