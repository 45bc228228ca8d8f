package wallet

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"time"

	klog "github.com/Klingon-tech/klingnet-mnemonic/internal/log"
	"github.com/Klingon-tech/klingnet-mnemonic/internal/storage"
	"github.com/Klingon-tech/klingnet-mnemonic/pkg/bip39"
)

// Keystore errors.
var (
	ErrWalletExists   = errors.New("wallet already exists")
	ErrWalletNotFound = errors.New("wallet not found")
	ErrInvalidName    = errors.New("wallet name must be 1-64 characters of [A-Za-z0-9._-]")
)

const vaultVersion = 1

var namePattern = regexp.MustCompile(`^[A-Za-z0-9._-]{1,64}$`)

// Key layout inside the keystore namespace:
//
//	v/<name>                                 vault record (JSON)
//	a/<name>/<account>/<change>/<index>      account entry (JSON), hex fields
var (
	keystorePrefix = []byte("wallet/")
	vaultPrefix    = "v/"
	accountPrefix  = "a/"
)

// vaultRecord is the stored form of one wallet. The master seed is kept in
// its compressed binary form, encrypted with the wallet password.
type vaultRecord struct {
	Version       int            `json:"version"`
	CreatedAt     time.Time      `json:"created_at"`
	Language      bip39.Language `json:"language"`
	Fingerprint   string         `json:"fingerprint"`
	EncryptedSeed []byte         `json:"encrypted_seed"`
}

// AccountEntry stores metadata for a derived address.
type AccountEntry struct {
	Account uint32 `json:"account"`
	Change  uint32 `json:"change"` // 0=external, 1=internal
	Index   uint32 `json:"index"`
	Name    string `json:"name"`
	Path    string `json:"path"`
	Address string `json:"address"`
}

// WalletInfo is the public metadata of a stored wallet.
type WalletInfo struct {
	Name        string         `json:"name"`
	Language    bip39.Language `json:"language"`
	Fingerprint string         `json:"fingerprint"`
	CreatedAt   time.Time      `json:"created_at"`
	Address     string         `json:"address,omitempty"`
}

// Keystore keeps password-encrypted master seeds in a storage.DB.
type Keystore struct {
	db     *storage.PrefixDB
	params EncryptionParams

	// mu serializes read-modify-write sequences.
	mu sync.Mutex
}

// NewKeystore creates a keystore in db. New vaults are encrypted with params.
func NewKeystore(db storage.DB, params EncryptionParams) *Keystore {
	return &Keystore{
		db:     storage.NewPrefixDB(db, keystorePrefix),
		params: params,
	}
}

func vaultKey(name string) []byte {
	return []byte(vaultPrefix + name)
}

func accountKey(name string, account, change, index uint32) []byte {
	return []byte(fmt.Sprintf("%s%s/%08x/%08x/%08x", accountPrefix, name, account, change, index))
}

func accountsOf(name string) []byte {
	return []byte(accountPrefix + name + "/")
}

func validateName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// Create encrypts ms under password and stores it as wallet name. The first
// receiving address (m/44'/8888'/0'/0/0) is recorded as account "Default".
func (ks *Keystore) Create(name string, ms *bip39.MasterSeed, password []byte) (*WalletInfo, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if len(password) == 0 {
		return nil, fmt.Errorf("password must not be empty")
	}

	seed := ms.Seed()
	master, err := NewMasterKey(seed)
	wipe(seed)
	if err != nil {
		return nil, err
	}
	defer master.Zero()

	first, err := master.DeriveAddress(0, ChangeExternal, 0)
	if err != nil {
		return nil, err
	}
	defer first.Zero()

	plain, err := ms.MarshalBinary(true)
	if err != nil {
		return nil, fmt.Errorf("encode master seed: %w", err)
	}
	encrypted, err := Encrypt(plain, password, ks.params)
	wipe(plain)
	if err != nil {
		return nil, fmt.Errorf("encrypt seed: %w", err)
	}

	rec := vaultRecord{
		Version:       vaultVersion,
		CreatedAt:     time.Now().UTC(),
		Language:      ms.Language(),
		Fingerprint:   master.Fingerprint(),
		EncryptedSeed: encrypted,
	}
	acct := AccountEntry{
		Name:    "Default",
		Path:    FormatPath(AddressPath(0, ChangeExternal, 0)),
		Address: first.Address().String(),
	}

	recData, err := json.Marshal(&rec)
	if err != nil {
		return nil, fmt.Errorf("marshal wallet: %w", err)
	}
	acctData, err := json.Marshal(&acct)
	if err != nil {
		return nil, fmt.Errorf("marshal account: %w", err)
	}

	ks.mu.Lock()
	defer ks.mu.Unlock()

	exists, err := ks.db.Has(vaultKey(name))
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %q", ErrWalletExists, name)
	}

	batch := ks.db.NewBatch()
	if err := batch.Put(vaultKey(name), recData); err != nil {
		return nil, fmt.Errorf("store wallet: %w", err)
	}
	if err := batch.Put(accountKey(name, 0, ChangeExternal, 0), acctData); err != nil {
		return nil, fmt.Errorf("store wallet: %w", err)
	}
	if err := batch.Commit(); err != nil {
		return nil, fmt.Errorf("store wallet: %w", err)
	}
	klog.Wallet.Debug().Str("wallet", name).Str("language", string(rec.Language)).Msg("Vault written")

	return rec.info(name, acct.Address), nil
}

// Load decrypts wallet name and returns its master seed.
// Callers should Zero the result when done.
func (ks *Keystore) Load(name string, password []byte) (*bip39.MasterSeed, error) {
	rec, err := ks.readVault(name)
	if err != nil {
		return nil, err
	}

	plain, err := Decrypt(rec.EncryptedSeed, password)
	if err != nil {
		return nil, err
	}
	defer wipe(plain)

	ms, err := bip39.UnmarshalMasterSeed(plain, true)
	if err != nil {
		return nil, fmt.Errorf("decode master seed: %w", err)
	}
	return ms, nil
}

// Unlock loads wallet name and returns its BIP-32 master key.
func (ks *Keystore) Unlock(name string, password []byte) (*HDKey, error) {
	ms, err := ks.Load(name, password)
	if err != nil {
		return nil, err
	}
	defer ms.Zero()

	seed := ms.Seed()
	defer wipe(seed)
	return NewMasterKey(seed)
}

// Info returns the public metadata of wallet name.
func (ks *Keystore) Info(name string) (*WalletInfo, error) {
	rec, err := ks.readVault(name)
	if err != nil {
		return nil, err
	}
	return rec.info(name, ks.firstAddress(name)), nil
}

// Exists reports whether wallet name is stored.
func (ks *Keystore) Exists(name string) (bool, error) {
	if err := validateName(name); err != nil {
		return false, err
	}
	return ks.db.Has(vaultKey(name))
}

// List returns all wallets ordered by name.
func (ks *Keystore) List() ([]WalletInfo, error) {
	var out []WalletInfo
	err := ks.db.ForEach([]byte(vaultPrefix), func(key, value []byte) error {
		var rec vaultRecord
		if err := json.Unmarshal(value, &rec); err != nil {
			return fmt.Errorf("parse wallet %q: %w", key, err)
		}
		name := string(key[len(vaultPrefix):])
		out = append(out, *rec.info(name, ks.firstAddress(name)))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list wallets: %w", err)
	}
	return out, nil
}

// Delete removes wallet name and its accounts. The password must open the
// vault.
func (ks *Keystore) Delete(name string, password []byte) error {
	ms, err := ks.Load(name, password)
	if err != nil {
		return err
	}
	ms.Zero()

	ks.mu.Lock()
	defer ks.mu.Unlock()

	batch := ks.db.NewBatch()
	if err := batch.Delete(vaultKey(name)); err != nil {
		return fmt.Errorf("delete wallet: %w", err)
	}
	err = ks.db.ForEach(accountsOf(name), func(key, _ []byte) error {
		return batch.Delete(key)
	})
	if err != nil {
		return err
	}
	return batch.Commit()
}

// AddAccount records a derived address. Re-adding the same path with the
// same address is a no-op.
func (ks *Keystore) AddAccount(name string, acct AccountEntry) error {
	ks.mu.Lock()
	defer ks.mu.Unlock()

	if _, err := ks.readVault(name); err != nil {
		return err
	}

	key := accountKey(name, acct.Account, acct.Change, acct.Index)
	existing, err := ks.db.Get(key)
	switch {
	case err == nil:
		var prev AccountEntry
		if jsonErr := json.Unmarshal(existing, &prev); jsonErr == nil && prev.Address == acct.Address {
			return nil
		}
		return fmt.Errorf("account %d/%d/%d already exists with a different address", acct.Account, acct.Change, acct.Index)
	case !errors.Is(err, storage.ErrNotFound):
		return err
	}

	if acct.Path == "" {
		acct.Path = FormatPath(AddressPath(acct.Account, acct.Change, acct.Index))
	}
	data, err := json.Marshal(&acct)
	if err != nil {
		return fmt.Errorf("marshal account: %w", err)
	}
	if err := ks.db.Put(key, data); err != nil {
		return err
	}
	klog.Wallet.Debug().Str("wallet", name).Str("path", acct.Path).Msg("Account recorded")
	return nil
}

// ListAccounts returns the recorded accounts of wallet name ordered by
// account, change and index.
func (ks *Keystore) ListAccounts(name string) ([]AccountEntry, error) {
	if _, err := ks.readVault(name); err != nil {
		return nil, err
	}
	accounts := []AccountEntry{}
	err := ks.db.ForEach(accountsOf(name), func(_, value []byte) error {
		var acct AccountEntry
		if err := json.Unmarshal(value, &acct); err != nil {
			return fmt.Errorf("parse account: %w", err)
		}
		accounts = append(accounts, acct)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

func (ks *Keystore) firstAddress(name string) string {
	data, err := ks.db.Get(accountKey(name, 0, ChangeExternal, 0))
	if err != nil {
		return ""
	}
	var acct AccountEntry
	if json.Unmarshal(data, &acct) != nil {
		return ""
	}
	return acct.Address
}

func (ks *Keystore) readVault(name string) (*vaultRecord, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	data, err := ks.db.Get(vaultKey(name))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: %q", ErrWalletNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("read wallet: %w", err)
	}
	var rec vaultRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse wallet: %w", err)
	}
	if rec.Version != vaultVersion {
		return nil, fmt.Errorf("unsupported wallet version: %d", rec.Version)
	}
	return &rec, nil
}

func (rec *vaultRecord) info(name, address string) *WalletInfo {
	return &WalletInfo{
		Name:        name,
		Language:    rec.Language,
		Fingerprint: rec.Fingerprint,
		CreatedAt:   rec.CreatedAt,
		Address:     address,
	}
}
