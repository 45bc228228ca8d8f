package rpc

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/Klingon-tech/klingnet-mnemonic/internal/wallet"
	"github.com/Klingon-tech/klingnet-mnemonic/pkg/bip39"
	"github.com/Klingon-tech/klingnet-mnemonic/pkg/crypto"
)

// requireWallet returns an error if the wallet keystore is not enabled.
func (s *Server) requireWallet() *Error {
	if s.keystore == nil {
		return &Error{Code: CodeInternalError, Message: "wallet not enabled (start mnemonicd with --wallet)"}
	}
	return nil
}

// walletError maps keystore errors to JSON-RPC errors.
func walletError(err error) *Error {
	switch {
	case errors.Is(err, wallet.ErrBadPassword):
		return &Error{Code: CodeUnauthorized, Message: "invalid wallet name or password"}
	case errors.Is(err, wallet.ErrWalletNotFound):
		return &Error{Code: CodeNotFound, Message: err.Error()}
	case errors.Is(err, wallet.ErrWalletExists),
		errors.Is(err, wallet.ErrInvalidName),
		errors.Is(err, wallet.ErrInvalidPath):
		return &Error{Code: CodeInvalidParams, Message: err.Error()}
	case bip39.Kind(err) != "":
		return codecError(err)
	default:
		return &Error{Code: CodeInternalError, Message: err.Error()}
	}
}

func (s *Server) handleWalletCreate(ctx context.Context, req *Request) (interface{}, *Error) {
	if err := s.requireWallet(); err != nil {
		return nil, err
	}

	var params WalletCreateParam
	if err := parseParams(req, &params); err != nil {
		return nil, err
	}
	if params.Name == "" || params.Password == "" {
		return nil, &Error{Code: CodeInvalidParams, Message: "name and password are required"}
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

	info, rpcErr := s.storeWallet(ctx, params.Name, params.Password, codec, mnemonic, params.Passphrase)
	if rpcErr != nil {
		return nil, rpcErr
	}
	return &WalletCreateResult{
		Name:        info.Name,
		Mnemonic:    mnemonic,
		Language:    string(info.Language),
		Fingerprint: info.Fingerprint,
		Address:     info.Address,
	}, nil
}

func (s *Server) handleWalletImport(ctx context.Context, req *Request) (interface{}, *Error) {
	if err := s.requireWallet(); err != nil {
		return nil, err
	}

	var params WalletImportParam
	if err := parseParams(req, &params); err != nil {
		return nil, err
	}
	if params.Name == "" || params.Password == "" || params.Mnemonic == "" {
		return nil, &Error{Code: CodeInvalidParams, Message: "name, password, and mnemonic are required"}
	}

	codec, rpcErr := s.codecFor(params.Language, params.Mnemonic)
	if rpcErr != nil {
		return nil, rpcErr
	}
	info, rpcErr := s.storeWallet(ctx, params.Name, params.Password, codec, params.Mnemonic, params.Passphrase)
	if rpcErr != nil {
		return nil, rpcErr
	}
	return &WalletCreateResult{
		Name:        info.Name,
		Language:    string(info.Language),
		Fingerprint: info.Fingerprint,
		Address:     info.Address,
	}, nil
}

// storeWallet stretches mnemonic on the seed pool and encrypts the result
// into the keystore.
func (s *Server) storeWallet(ctx context.Context, name, password string, codec *bip39.Codec, mnemonic, passphrase string) (*wallet.WalletInfo, *Error) {
	ms, err := s.pool.DeriveMasterSeed(ctx, codec, mnemonic, passphrase)
	if err != nil {
		if ctx.Err() != nil {
			return nil, &Error{Code: CodeInternalError, Message: "request cancelled"}
		}
		return nil, codecError(err)
	}
	defer ms.Zero()

	info, err := s.keystore.Create(name, ms, []byte(password))
	if err != nil {
		return nil, walletError(err)
	}
	s.logger.Info().
		Str("wallet", info.Name).
		Str("fingerprint", info.Fingerprint).
		Str("language", string(info.Language)).
		Msg("Wallet stored")
	return info, nil
}

func (s *Server) handleWalletList(_ *Request) (interface{}, *Error) {
	if err := s.requireWallet(); err != nil {
		return nil, err
	}
	wallets, err := s.keystore.List()
	if err != nil {
		return nil, walletError(err)
	}
	if wallets == nil {
		wallets = []wallet.WalletInfo{}
	}
	return &WalletListResult{Wallets: wallets}, nil
}

func (s *Server) handleWalletInfo(req *Request) (interface{}, *Error) {
	if err := s.requireWallet(); err != nil {
		return nil, err
	}
	var params WalletNameParam
	if err := parseParams(req, &params); err != nil {
		return nil, err
	}
	info, err := s.keystore.Info(params.Name)
	if err != nil {
		return nil, walletError(err)
	}
	return info, nil
}

func (s *Server) handleWalletDelete(req *Request) (interface{}, *Error) {
	if err := s.requireWallet(); err != nil {
		return nil, err
	}
	var params WalletAuthParam
	if err := parseParams(req, &params); err != nil {
		return nil, err
	}
	if err := s.keystore.Delete(params.Name, []byte(params.Password)); err != nil {
		return nil, walletError(err)
	}
	s.logger.Info().Str("wallet", params.Name).Msg("Wallet deleted")
	return &DeleteResult{Deleted: true}, nil
}

func (s *Server) handleWalletListAccounts(req *Request) (interface{}, *Error) {
	if err := s.requireWallet(); err != nil {
		return nil, err
	}
	var params WalletNameParam
	if err := parseParams(req, &params); err != nil {
		return nil, err
	}
	accounts, err := s.keystore.ListAccounts(params.Name)
	if err != nil {
		return nil, walletError(err)
	}
	return &AccountsResult{Accounts: accounts}, nil
}

// unlockPath opens wallet name and derives the key at path. An empty path
// selects the first receiving address.
func (s *Server) unlockPath(name, password, path string) (*wallet.HDKey, []uint32, *Error) {
	if path == "" {
		path = wallet.FormatPath(wallet.AddressPath(0, wallet.ChangeExternal, 0))
	}
	indices, err := wallet.ParsePath(path)
	if err != nil {
		return nil, nil, walletError(err)
	}

	master, err := s.keystore.Unlock(name, []byte(password))
	if err != nil {
		s.logger.Debug().Err(err).Str("wallet", name).Msg("wallet unlock failed")
		return nil, nil, walletError(err)
	}

	key, err := master.DerivePath(indices...)
	if err != nil {
		master.Zero()
		return nil, nil, &Error{Code: CodeInternalError, Message: fmt.Sprintf("derive key: %v", err)}
	}
	// Path "m" returns the master itself.
	if key != master {
		master.Zero()
	}
	return key, indices, nil
}

func (s *Server) handleWalletDeriveKey(req *Request) (interface{}, *Error) {
	if err := s.requireWallet(); err != nil {
		return nil, err
	}
	var params WalletDeriveParam
	if err := parseParams(req, &params); err != nil {
		return nil, err
	}

	key, indices, rpcErr := s.unlockPath(params.Name, params.Password, params.Path)
	if rpcErr != nil {
		return nil, rpcErr
	}
	defer key.Zero()

	result := &DeriveKeyResult{
		Path:      wallet.FormatPath(indices),
		PublicKey: hex.EncodeToString(key.PublicKeyBytes()),
		XPub:      key.Neuter().String(),
		Address:   key.Address().String(),
	}

	if params.Save {
		account, change, index, ok := wallet.AddressIndices(indices)
		if !ok {
			return nil, &Error{Code: CodeInvalidParams, Message: "only m/44'/8888'/account'/change/index paths can be saved"}
		}
		err := s.keystore.AddAccount(params.Name, wallet.AccountEntry{
			Account: account,
			Change:  change,
			Index:   index,
			Name:    params.Label,
			Path:    result.Path,
			Address: result.Address,
		})
		if err != nil {
			return nil, walletError(err)
		}
	}
	return result, nil
}

func (s *Server) handleWalletSignMessage(req *Request) (interface{}, *Error) {
	if err := s.requireWallet(); err != nil {
		return nil, err
	}
	var params WalletSignParam
	if err := parseParams(req, &params); err != nil {
		return nil, err
	}
	if params.Message == "" {
		return nil, &Error{Code: CodeInvalidParams, Message: "message is required"}
	}

	key, _, rpcErr := s.unlockPath(params.Name, params.Password, params.Path)
	if rpcErr != nil {
		return nil, rpcErr
	}
	defer key.Zero()

	signer, err := key.Signer()
	if err != nil {
		return nil, &Error{Code: CodeInternalError, Message: err.Error()}
	}
	defer signer.Zero()

	sig, err := signer.SignMessage([]byte(params.Message))
	if err != nil {
		return nil, &Error{Code: CodeInternalError, Message: fmt.Sprintf("sign: %v", err)}
	}
	return &SignResult{
		Signature: hex.EncodeToString(sig),
		PublicKey: hex.EncodeToString(signer.PublicKey()),
		Address:   key.Address().String(),
	}, nil
}

func (s *Server) handleWalletVerifyMessage(req *Request) (interface{}, *Error) {
	var params VerifyMessageParam
	if err := parseParams(req, &params); err != nil {
		return nil, err
	}
	pub, err := hex.DecodeString(params.PublicKey)
	if err != nil {
		return nil, &Error{Code: CodeInvalidParams, Message: "public_key must be hex"}
	}
	sig, err := hex.DecodeString(params.Signature)
	if err != nil {
		return nil, &Error{Code: CodeInvalidParams, Message: "signature must be hex"}
	}

	if params.Address != "" {
		addr, err := crypto.ParseAddress(params.Address)
		if err != nil {
			return nil, &Error{Code: CodeInvalidParams, Message: fmt.Sprintf("invalid address: %v", err)}
		}
		if crypto.AddressFromPubKey(pub) != addr {
			return &VerifyResult{Valid: false}, nil
		}
	}
	return &VerifyResult{Valid: crypto.VerifyMessage([]byte(params.Message), sig, pub)}, nil
}

func (s *Server) handleWalletExportMasterSeed(req *Request) (interface{}, *Error) {
	if err := s.requireWallet(); err != nil {
		return nil, err
	}
	var params WalletExportParam
	if err := parseParams(req, &params); err != nil {
		return nil, err
	}

	ms, err := s.keystore.Load(params.Name, []byte(params.Password))
	if err != nil {
		s.logger.Debug().Err(err).Str("wallet", params.Name).Msg("wallet load failed")
		return nil, walletError(err)
	}
	defer ms.Zero()

	data, err := ms.MarshalBinary(params.Compressed)
	if err != nil {
		return nil, &Error{Code: CodeInternalError, Message: fmt.Sprintf("encode master seed: %v", err)}
	}
	defer wipe(data)

	s.logger.Warn().Str("wallet", params.Name).Msg("Master seed exported")
	return &ExportResult{
		MasterSeed: hex.EncodeToString(data),
		Compressed: params.Compressed,
	}, nil
}
