package rpcclient

import (
	"context"

	"github.com/Klingon-tech/klingnet-mnemonic/internal/rpc"
)

// Info calls daemon_getInfo.
func (c *Client) Info(ctx context.Context) (*rpc.InfoResult, error) {
	var res rpc.InfoResult
	if err := c.CallContext(ctx, "daemon_getInfo", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Generate calls mnemonic_generate. Zero bits and an empty language use
// the daemon defaults.
func (c *Client) Generate(ctx context.Context, bits int, language string) (*rpc.MnemonicResult, error) {
	var res rpc.MnemonicResult
	err := c.CallContext(ctx, "mnemonic_generate", rpc.GenerateParam{Bits: bits, Language: language}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// FromEntropy calls mnemonic_fromEntropy with hex-encoded entropy.
func (c *Client) FromEntropy(ctx context.Context, entropyHex, language string) (*rpc.MnemonicResult, error) {
	var res rpc.MnemonicResult
	err := c.CallContext(ctx, "mnemonic_fromEntropy", rpc.EntropyParam{Entropy: entropyHex, Language: language}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// ToEntropy calls mnemonic_toEntropy.
func (c *Client) ToEntropy(ctx context.Context, mnemonic, language string) (*rpc.EntropyResult, error) {
	var res rpc.EntropyResult
	err := c.CallContext(ctx, "mnemonic_toEntropy", rpc.MnemonicParam{Mnemonic: mnemonic, Language: language}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// ToSeed calls mnemonic_toSeed and returns the hex seed.
func (c *Client) ToSeed(ctx context.Context, mnemonic, passphrase, language string) (string, error) {
	var res rpc.SeedResult
	err := c.CallContext(ctx, "mnemonic_toSeed", rpc.SeedParam{
		Mnemonic:   mnemonic,
		Passphrase: passphrase,
		Language:   language,
	}, &res)
	return res.Seed, err
}

// Validate calls mnemonic_validate.
func (c *Client) Validate(ctx context.Context, mnemonic, language string) (*rpc.ValidateResult, error) {
	var res rpc.ValidateResult
	err := c.CallContext(ctx, "mnemonic_validate", rpc.MnemonicParam{Mnemonic: mnemonic, Language: language}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Languages calls mnemonic_languages.
func (c *Client) Languages(ctx context.Context) ([]string, error) {
	var res rpc.LanguagesResult
	if err := c.CallContext(ctx, "mnemonic_languages", nil, &res); err != nil {
		return nil, err
	}
	return res.Languages, nil
}

// CreateWallet calls wallet_create.
func (c *Client) CreateWallet(ctx context.Context, p rpc.WalletCreateParam) (*rpc.WalletCreateResult, error) {
	var res rpc.WalletCreateResult
	if err := c.CallContext(ctx, "wallet_create", p, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ImportWallet calls wallet_import.
func (c *Client) ImportWallet(ctx context.Context, p rpc.WalletImportParam) (*rpc.WalletCreateResult, error) {
	var res rpc.WalletCreateResult
	if err := c.CallContext(ctx, "wallet_import", p, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ListWallets calls wallet_list.
func (c *Client) ListWallets(ctx context.Context) (*rpc.WalletListResult, error) {
	var res rpc.WalletListResult
	if err := c.CallContext(ctx, "wallet_list", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// DeleteWallet calls wallet_delete.
func (c *Client) DeleteWallet(ctx context.Context, name, password string) error {
	return c.CallContext(ctx, "wallet_delete", rpc.WalletAuthParam{Name: name, Password: password}, nil)
}

// DeriveKey calls wallet_deriveKey.
func (c *Client) DeriveKey(ctx context.Context, p rpc.WalletDeriveParam) (*rpc.DeriveKeyResult, error) {
	var res rpc.DeriveKeyResult
	if err := c.CallContext(ctx, "wallet_deriveKey", p, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// SignMessage calls wallet_signMessage.
func (c *Client) SignMessage(ctx context.Context, p rpc.WalletSignParam) (*rpc.SignResult, error) {
	var res rpc.SignResult
	if err := c.CallContext(ctx, "wallet_signMessage", p, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// VerifyMessage calls wallet_verifyMessage.
func (c *Client) VerifyMessage(ctx context.Context, p rpc.VerifyMessageParam) (bool, error) {
	var res rpc.VerifyResult
	if err := c.CallContext(ctx, "wallet_verifyMessage", p, &res); err != nil {
		return false, err
	}
	return res.Valid, nil
}

// ExportMasterSeed calls wallet_exportMasterSeed and returns the hex encoding.
func (c *Client) ExportMasterSeed(ctx context.Context, name, password string, compressed bool) (string, error) {
	var res rpc.ExportResult
	err := c.CallContext(ctx, "wallet_exportMasterSeed", rpc.WalletExportParam{
		Name:       name,
		Password:   password,
		Compressed: compressed,
	}, &res)
	return res.MasterSeed, err
}
