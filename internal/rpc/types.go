package rpc

import (
	"github.com/Klingon-tech/klingnet-mnemonic/internal/seedpool"
	"github.com/Klingon-tech/klingnet-mnemonic/internal/wallet"
)

// JSON-RPC 2.0 error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
	CodeNotFound       = -32000
	CodeCodecError     = -32001 // data.kind names the codec error
	CodeUnauthorized   = -32002 // wrong wallet password
)

// Request is a JSON-RPC 2.0 request.
type Request struct {
	JSONRPC string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
	ID      interface{} `json:"id"`
}

// Response is a JSON-RPC 2.0 response.
type Response struct {
	JSONRPC string      `json:"jsonrpc"`
	Result  interface{} `json:"result,omitempty"`
	Error   *Error      `json:"error,omitempty"`
	ID      interface{} `json:"id"`
}

// Error is a JSON-RPC 2.0 error object.
type Error struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorData is attached to CodeCodecError responses.
type ErrorData struct {
	Kind     string `json:"kind"`
	Position *int   `json:"position,omitempty"`
}

// ── Param types ─────────────────────────────────────────────────────────

// GenerateParam is used by mnemonic_generate.
type GenerateParam struct {
	Bits     int    `json:"bits,omitempty"`
	Language string `json:"language,omitempty"`
}

// EntropyParam is used by mnemonic_fromEntropy.
type EntropyParam struct {
	Entropy  string `json:"entropy"` // hex
	Language string `json:"language,omitempty"`
}

// MnemonicParam is used by mnemonic_toEntropy and mnemonic_validate.
// An empty language detects the word list.
type MnemonicParam struct {
	Mnemonic string `json:"mnemonic"`
	Language string `json:"language,omitempty"`
}

// SeedParam is used by mnemonic_toSeed.
type SeedParam struct {
	Mnemonic   string `json:"mnemonic"`
	Passphrase string `json:"passphrase,omitempty"`
	Language   string `json:"language,omitempty"`
}

// MasterSeedParam is used by mnemonic_decodeMasterSeed.
type MasterSeedParam struct {
	MasterSeed string `json:"master_seed"` // hex
	Compressed bool   `json:"compressed"`
}

// WalletCreateParam is the parameter for wallet_create.
type WalletCreateParam struct {
	Name       string `json:"name"`
	Password   string `json:"password"`
	Bits       int    `json:"bits,omitempty"`
	Language   string `json:"language,omitempty"`
	Passphrase string `json:"passphrase,omitempty"`
}

// WalletImportParam is the parameter for wallet_import.
type WalletImportParam struct {
	Name       string `json:"name"`
	Password   string `json:"password"`
	Mnemonic   string `json:"mnemonic"`
	Passphrase string `json:"passphrase,omitempty"`
	Language   string `json:"language,omitempty"`
}

// WalletNameParam is used by wallet_info and wallet_listAccounts.
type WalletNameParam struct {
	Name string `json:"name"`
}

// WalletAuthParam is used by wallet_delete.
type WalletAuthParam struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// WalletDeriveParam is the parameter for wallet_deriveKey. Save records the
// derived address as an account of the wallet.
type WalletDeriveParam struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	Path     string `json:"path"`
	Save     bool   `json:"save,omitempty"`
	Label    string `json:"label,omitempty"`
}

// WalletSignParam is the parameter for wallet_signMessage.
type WalletSignParam struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	Path     string `json:"path"`
	Message  string `json:"message"`
}

// VerifyMessageParam is the parameter for wallet_verifyMessage.
type VerifyMessageParam struct {
	PublicKey string `json:"public_key"` // hex
	Message   string `json:"message"`
	Signature string `json:"signature"` // hex
	Address   string `json:"address,omitempty"`
}

// WalletExportParam is the parameter for wallet_exportMasterSeed.
type WalletExportParam struct {
	Name       string `json:"name"`
	Password   string `json:"password"`
	Compressed bool   `json:"compressed"`
}

// ── Result types ────────────────────────────────────────────────────────

// InfoResult is returned by daemon_getInfo.
type InfoResult struct {
	Version         string         `json:"version"`
	DefaultLanguage string         `json:"default_language"`
	DefaultBits     int            `json:"default_bits"`
	WalletEnabled   bool           `json:"wallet_enabled"`
	Pool            seedpool.Stats `json:"pool"`
}

// MnemonicResult is returned by mnemonic_generate and mnemonic_fromEntropy.
type MnemonicResult struct {
	Mnemonic string `json:"mnemonic"`
	Words    int    `json:"words"`
	Language string `json:"language"`
}

// EntropyResult is returned by mnemonic_toEntropy.
type EntropyResult struct {
	Entropy  string `json:"entropy"` // hex
	Bits     int    `json:"bits"`
	Language string `json:"language"`
}

// SeedResult is returned by mnemonic_toSeed.
type SeedResult struct {
	Seed string `json:"seed"` // hex
}

// ValidateResult is returned by mnemonic_validate.
type ValidateResult struct {
	Valid    bool   `json:"valid"`
	Language string `json:"language,omitempty"`
	Reason   string `json:"reason,omitempty"`
	Kind     string `json:"kind,omitempty"`
}

// LanguagesResult is returned by mnemonic_languages.
type LanguagesResult struct {
	Languages []string `json:"languages"`
}

// MasterSeedResult is returned by mnemonic_decodeMasterSeed.
type MasterSeedResult struct {
	Mnemonic   string `json:"mnemonic"`
	Language   string `json:"language"`
	Passphrase string `json:"passphrase"`
	Seed       string `json:"seed"` // hex
}

// WalletCreateResult is returned by wallet_create and wallet_import. The
// mnemonic is only set for wallet_create.
type WalletCreateResult struct {
	Name        string `json:"name"`
	Mnemonic    string `json:"mnemonic,omitempty"`
	Language    string `json:"language"`
	Fingerprint string `json:"fingerprint"`
	Address     string `json:"address"`
}

// WalletListResult is returned by wallet_list.
type WalletListResult struct {
	Wallets []wallet.WalletInfo `json:"wallets"`
}

// AccountsResult is returned by wallet_listAccounts.
type AccountsResult struct {
	Accounts []wallet.AccountEntry `json:"accounts"`
}

// DeleteResult is returned by wallet_delete.
type DeleteResult struct {
	Deleted bool `json:"deleted"`
}

// DeriveKeyResult is returned by wallet_deriveKey.
type DeriveKeyResult struct {
	Path      string `json:"path"`
	PublicKey string `json:"public_key"`
	XPub      string `json:"xpub"`
	Address   string `json:"address"`
}

// SignResult is returned by wallet_signMessage.
type SignResult struct {
	Signature string `json:"signature"`
	PublicKey string `json:"public_key"`
	Address   string `json:"address"`
}

// VerifyResult is returned by wallet_verifyMessage.
type VerifyResult struct {
	Valid bool `json:"valid"`
}

// ExportResult is returned by wallet_exportMasterSeed.
type ExportResult struct {
	MasterSeed string `json:"master_seed"` // hex
	Compressed bool   `json:"compressed"`
}
