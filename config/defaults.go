package config

import "github.com/Klingon-tech/klingnet-mnemonic/pkg/bip39"

// Default returns the default daemon configuration.
func Default() *Config {
	return &Config{
		DataDir: DefaultDataDir(),
		RPC: RPCConfig{
			Enabled:    true,
			Addr:       "127.0.0.1",
			Port:       8555,
			AllowedIPs: []string{"127.0.0.1"},
		},
		Wallet: WalletConfig{
			Enabled: true,
		},
		Codec: CodecConfig{
			Language:    bip39.English,
			EntropyBits: bip39.DefaultEntropyBits,
			Workers:     4,
		},
		Keystore: KeystoreConfig{
			ArgonMemory:     64 * 1024,
			ArgonIterations: 3,
			ArgonThreads:    4,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
