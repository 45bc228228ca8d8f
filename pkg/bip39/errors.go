package bip39

import (
	"errors"
	"fmt"
)

// Codec errors.
var (
	ErrInvalidParameter         = errors.New("invalid parameter")
	ErrEntropySourceUnavailable = errors.New("entropy source unavailable")
	ErrInvalidMnemonic          = errors.New("invalid mnemonic")
	ErrInvalidMnemonicLength    = fmt.Errorf("%w: word count must be 12, 15, 18, 21 or 24", ErrInvalidMnemonic)
	ErrUnknownWord              = fmt.Errorf("%w: unknown word", ErrInvalidMnemonic)
	ErrChecksumMismatch         = fmt.Errorf("%w: checksum mismatch", ErrInvalidMnemonic)
	ErrUnsupportedLanguage      = errors.New("unsupported word list language")
	ErrMalformedMasterSeed      = errors.New("malformed master seed")
)

// UnknownWordError reports a word that is not in the active word list.
type UnknownWordError struct {
	Word     string
	Position int // zero-based position in the mnemonic
}

func (e *UnknownWordError) Error() string {
	return fmt.Sprintf("%v: %q at position %d", ErrUnknownWord, e.Word, e.Position)
}

// Unwrap lets errors.Is match ErrUnknownWord and ErrInvalidMnemonic.
func (e *UnknownWordError) Unwrap() error {
	return ErrUnknownWord
}

// Kind returns the short name of a codec error, or "" for foreign errors.
// The RPC layer reports it alongside the message.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidMnemonicLength):
		return "InvalidMnemonicLength"
	case errors.Is(err, ErrUnknownWord):
		return "UnknownWord"
	case errors.Is(err, ErrChecksumMismatch):
		return "ChecksumMismatch"
	case errors.Is(err, ErrEntropySourceUnavailable):
		return "EntropySourceUnavailable"
	case errors.Is(err, ErrInvalidParameter), errors.Is(err, ErrUnsupportedLanguage):
		return "InvalidParameter"
	case errors.Is(err, ErrMalformedMasterSeed):
		return "MalformedMasterSeed"
	default:
		return ""
	}
}
