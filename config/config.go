// Package config handles daemon configuration.
//
// Settings are layered: built-in defaults, then the .conf file in the data
// directory, then command-line flags.
package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/Klingon-tech/klingnet-mnemonic/pkg/bip39"
)

// Version is reported by --version and daemon_getInfo.
const Version = "0.1.0"

// MaxWorkers caps concurrent seed stretching. Each PBKDF2 run pins a core
// for its whole duration.
const MaxWorkers = 64

// Config holds runtime configuration for mnemonicd.
type Config struct {
	DataDir string `conf:"datadir"`

	RPC      RPCConfig
	Wallet   WalletConfig
	Codec    CodecConfig
	Keystore KeystoreConfig
	Log      LogConfig
}

// RPCConfig holds RPC server settings.
type RPCConfig struct {
	Enabled     bool     `conf:"rpc.enabled"`
	Addr        string   `conf:"rpc.addr"`
	Port        int      `conf:"rpc.port"`
	AllowedIPs  []string `conf:"rpc.allowed"`
	CORSOrigins []string `conf:"rpc.cors"` // "*" allows all.
}

// WalletConfig holds keystore-backed wallet settings.
type WalletConfig struct {
	Enabled bool `conf:"wallet.enabled"`
}

// CodecConfig holds mnemonic codec defaults.
type CodecConfig struct {
	Language    bip39.Language `conf:"codec.language"`
	EntropyBits int            `conf:"codec.entropy_bits"`
	Workers     int            `conf:"codec.workers"`
}

// KeystoreConfig holds Argon2id parameters for newly encrypted vaults.
// Existing vaults keep the parameters they were written with.
type KeystoreConfig struct {
	ArgonMemory     uint32 `conf:"keystore.argon_memory"` // KiB
	ArgonIterations uint32 `conf:"keystore.argon_iterations"`
	ArgonThreads    uint8  `conf:"keystore.argon_threads"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `conf:"log.level"`
	File  string `conf:"log.file"`
	JSON  bool   `conf:"log.json"`
}

// DefaultDataDir returns the platform-specific default data directory.
//
//	Linux:   ~/.klingnet-mnemonic
//	macOS:   ~/Library/Application Support/KlingnetMnemonic
//	Windows: %APPDATA%\KlingnetMnemonic
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".klingnet-mnemonic"
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "KlingnetMnemonic")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "KlingnetMnemonic")
		}
		return filepath.Join(home, "AppData", "Roaming", "KlingnetMnemonic")
	default:
		return filepath.Join(home, ".klingnet-mnemonic")
	}
}

// KeystoreDir returns the badger directory holding encrypted vaults.
func (c *Config) KeystoreDir() string {
	return filepath.Join(c.DataDir, "keystore")
}

// LogsDir returns the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.DataDir, "logs")
}

// ConfigFile returns the config file path.
func (c *Config) ConfigFile() string {
	return filepath.Join(c.DataDir, "mnemonicd.conf")
}
