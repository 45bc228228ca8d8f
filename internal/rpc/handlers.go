package rpc

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/Klingon-tech/klingnet-mnemonic/config"
	"github.com/Klingon-tech/klingnet-mnemonic/internal/wallet"
	"github.com/Klingon-tech/klingnet-mnemonic/pkg/bip39"
)

// codecError maps a bip39 error to a JSON-RPC error. Codec failures carry
// their kind in data; anything else is an internal error.
func codecError(err error) *Error {
	kind := bip39.Kind(err)
	if kind == "" {
		return &Error{Code: CodeInternalError, Message: err.Error()}
	}
	data := ErrorData{Kind: kind}
	var uw *bip39.UnknownWordError
	if errors.As(err, &uw) {
		pos := uw.Position
		data.Position = &pos
		// Words of a secret are not echoed back.
		return &Error{Code: CodeCodecError, Message: fmt.Sprintf("unknown word at position %d", pos), Data: data}
	}
	return &Error{Code: CodeCodecError, Message: err.Error(), Data: data}
}

// codecFor returns the codec for lang. An empty lang detects the language
// from mnemonic, or uses the server default when there is no mnemonic.
func (s *Server) codecFor(lang, mnemonic string) (*bip39.Codec, *Error) {
	if lang == "" && mnemonic == "" {
		lang = string(s.language)
	}
	codec, err := wallet.ResolveCodec(bip39.Language(lang), mnemonic)
	if err != nil {
		return nil, codecError(err)
	}
	return codec, nil
}

func (s *Server) handleDaemonGetInfo(_ *Request) (interface{}, *Error) {
	return &InfoResult{
		Version:         config.Version,
		DefaultLanguage: string(s.language),
		DefaultBits:     s.bits,
		WalletEnabled:   s.keystore != nil,
		Pool:            s.pool.Stats(),
	}, nil
}

func (s *Server) handleMnemonicGenerate(req *Request) (interface{}, *Error) {
	var params GenerateParam
	if err := parseOptionalParams(req, &params); err != nil {
		return nil, err
	}
	if params.Bits == 0 {
		params.Bits = s.bits
	}

	codec, rpcErr := s.codecFor(params.Language, "")
	if rpcErr != nil {
		return nil, rpcErr
	}
	mnemonic, err := codec.GenerateMnemonic(params.Bits)
	if err != nil {
		return nil, codecError(err)
	}
	words, _ := bip39.WordCountForBits(params.Bits)

	return &MnemonicResult{
		Mnemonic: mnemonic,
		Words:    words,
		Language: string(codec.Language()),
	}, nil
}

func (s *Server) handleMnemonicFromEntropy(req *Request) (interface{}, *Error) {
	var params EntropyParam
	if err := parseParams(req, &params); err != nil {
		return nil, err
	}
	entropy, err := hex.DecodeString(params.Entropy)
	if err != nil {
		return nil, &Error{Code: CodeInvalidParams, Message: "entropy must be hex"}
	}
	defer wipe(entropy)

	codec, rpcErr := s.codecFor(params.Language, "")
	if rpcErr != nil {
		return nil, rpcErr
	}
	mnemonic, err := codec.MnemonicFromEntropy(entropy)
	if err != nil {
		return nil, codecError(err)
	}
	words, _ := bip39.WordCountForBits(len(entropy) * 8)

	return &MnemonicResult{
		Mnemonic: mnemonic,
		Words:    words,
		Language: string(codec.Language()),
	}, nil
}

func (s *Server) handleMnemonicToEntropy(req *Request) (interface{}, *Error) {
	var params MnemonicParam
	if err := parseParams(req, &params); err != nil {
		return nil, err
	}
	codec, rpcErr := s.codecFor(params.Language, params.Mnemonic)
	if rpcErr != nil {
		return nil, rpcErr
	}
	entropy, err := codec.EntropyFromMnemonic(params.Mnemonic)
	if err != nil {
		return nil, codecError(err)
	}
	defer wipe(entropy)

	return &EntropyResult{
		Entropy:  hex.EncodeToString(entropy),
		Bits:     len(entropy) * 8,
		Language: string(codec.Language()),
	}, nil
}

func (s *Server) handleMnemonicToSeed(ctx context.Context, req *Request) (interface{}, *Error) {
	var params SeedParam
	if err := parseParams(req, &params); err != nil {
		return nil, err
	}
	codec, rpcErr := s.codecFor(params.Language, params.Mnemonic)
	if rpcErr != nil {
		return nil, rpcErr
	}
	seed, err := s.pool.Derive(ctx, codec, params.Mnemonic, params.Passphrase)
	if err != nil {
		if ctx.Err() != nil {
			return nil, &Error{Code: CodeInternalError, Message: "request cancelled"}
		}
		return nil, codecError(err)
	}
	defer wipe(seed)

	return &SeedResult{Seed: hex.EncodeToString(seed)}, nil
}

func (s *Server) handleMnemonicValidate(req *Request) (interface{}, *Error) {
	var params MnemonicParam
	if err := parseParams(req, &params); err != nil {
		return nil, err
	}

	// A bad language name is a caller error; a mnemonic that matches no
	// list is just invalid.
	if params.Language != "" {
		if _, err := bip39.WordListFor(bip39.Language(params.Language)); err != nil {
			return nil, codecError(err)
		}
	}
	codec, rpcErr := s.codecFor(params.Language, params.Mnemonic)
	if rpcErr == nil {
		rpcErr = checkMnemonic(codec, params.Mnemonic)
	}
	if rpcErr != nil {
		res := &ValidateResult{Reason: rpcErr.Message}
		if data, ok := rpcErr.Data.(ErrorData); ok {
			res.Kind = data.Kind
		}
		return res, nil
	}
	return &ValidateResult{Valid: true, Language: string(codec.Language())}, nil
}

func checkMnemonic(codec *bip39.Codec, mnemonic string) *Error {
	if err := codec.CheckMnemonic(mnemonic); err != nil {
		return codecError(err)
	}
	return nil
}

func (s *Server) handleMnemonicLanguages(_ *Request) (interface{}, *Error) {
	langs := bip39.Languages()
	out := make([]string, len(langs))
	for i, l := range langs {
		out[i] = string(l)
	}
	return &LanguagesResult{Languages: out}, nil
}

func (s *Server) handleMnemonicDecodeMasterSeed(req *Request) (interface{}, *Error) {
	var params MasterSeedParam
	if err := parseParams(req, &params); err != nil {
		return nil, err
	}
	data, err := hex.DecodeString(params.MasterSeed)
	if err != nil {
		return nil, &Error{Code: CodeInvalidParams, Message: "master_seed must be hex"}
	}
	defer wipe(data)

	ms, err := bip39.UnmarshalMasterSeed(data, params.Compressed)
	if err != nil {
		return nil, codecError(err)
	}
	defer ms.Zero()

	seed := ms.Seed()
	defer wipe(seed)
	return &MasterSeedResult{
		Mnemonic:   ms.Mnemonic(),
		Language:   string(ms.Language()),
		Passphrase: ms.Passphrase(),
		Seed:       hex.EncodeToString(seed),
	}, nil
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
