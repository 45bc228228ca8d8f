package config

import (
	"fmt"
	"strings"

	klog "github.com/Klingon-tech/klingnet-mnemonic/internal/log"
	"github.com/Klingon-tech/klingnet-mnemonic/pkg/bip39"
)

// Validate checks runtime config for obvious operator mistakes.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if strings.TrimSpace(cfg.DataDir) == "" {
		return fmt.Errorf("datadir must not be empty")
	}
	if cfg.RPC.Port < 0 || cfg.RPC.Port > 65535 {
		return fmt.Errorf("rpc.port must be in range [0, 65535]")
	}

	wl, err := bip39.WordListFor(cfg.Codec.Language)
	if err != nil {
		return fmt.Errorf("codec.language: %w", err)
	}
	cfg.Codec.Language = wl.Language()

	if !bip39.ValidEntropyBits(cfg.Codec.EntropyBits) {
		return fmt.Errorf("codec.entropy_bits must be one of 128, 160, 192, 224, 256")
	}
	if cfg.Codec.Workers < 1 || cfg.Codec.Workers > MaxWorkers {
		return fmt.Errorf("codec.workers must be in range [1, %d]", MaxWorkers)
	}

	if cfg.Keystore.ArgonMemory < 8*1024 {
		return fmt.Errorf("keystore.argon_memory must be at least 8192 KiB")
	}
	if cfg.Keystore.ArgonIterations < 1 {
		return fmt.Errorf("keystore.argon_iterations must be at least 1")
	}
	if cfg.Keystore.ArgonThreads < 1 {
		return fmt.Errorf("keystore.argon_threads must be at least 1")
	}

	if !klog.ValidLevel(cfg.Log.Level) {
		return fmt.Errorf("log.level must be debug, info, warn, or error")
	}
	return nil
}
