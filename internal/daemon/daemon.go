// Package daemon wires the mnemonic codec services into a long-running
// process that can be embedded in any binary.
package daemon

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/Klingon-tech/klingnet-mnemonic/config"
	klog "github.com/Klingon-tech/klingnet-mnemonic/internal/log"
	"github.com/Klingon-tech/klingnet-mnemonic/internal/rpc"
	"github.com/Klingon-tech/klingnet-mnemonic/internal/seedpool"
	"github.com/Klingon-tech/klingnet-mnemonic/internal/storage"
	"github.com/Klingon-tech/klingnet-mnemonic/internal/wallet"
	"github.com/rs/zerolog"
)

// statsInterval is how often pool counters are logged at debug level.
const statsInterval = time.Minute

// Daemon is a fully-initialized mnemonicd instance.
type Daemon struct {
	cfg    *config.Config
	logger zerolog.Logger

	db        storage.DB // nil when the wallet is disabled
	keystore  *wallet.Keystore
	pool      *seedpool.Pool
	rpcServer *rpc.Server

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates and initializes a Daemon: logger, keystore storage, seed pool
// and RPC server. It does NOT start listening; call Start for that.
func New(cfg *config.Config) (*Daemon, error) {
	// ── 1. Init logger ──────────────────────────────────────────────
	logFile := expandHome(cfg.Log.File)
	if logFile == "" {
		logsDir := cfg.LogsDir()
		if err := os.MkdirAll(logsDir, 0700); err != nil {
			return nil, fmt.Errorf("creating logs dir: %w", err)
		}
		logFile = filepath.Join(logsDir, "mnemonicd.log")
	}
	if err := klog.Init(cfg.Log.Level, cfg.Log.JSON, logFile); err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}
	logger := klog.Daemon

	logger.Info().
		Str("version", config.Version).
		Str("datadir", cfg.DataDir).
		Str("language", string(cfg.Codec.Language)).
		Int("entropy_bits", cfg.Codec.EntropyBits).
		Int("workers", cfg.Codec.Workers).
		Msg("Starting mnemonic daemon")

	d := &Daemon{
		cfg:    cfg,
		logger: logger,
		pool:   seedpool.New(cfg.Codec.Workers),
	}

	// ── 2. Keystore ─────────────────────────────────────────────────
	if cfg.Wallet.Enabled {
		db, err := storage.NewBadger(cfg.KeystoreDir())
		if err != nil {
			return nil, fmt.Errorf("open keystore at %s: %w", cfg.KeystoreDir(), err)
		}
		d.db = db
		d.keystore = wallet.NewKeystore(db, wallet.EncryptionParams{
			Memory:      cfg.Keystore.ArgonMemory,
			Iterations:  cfg.Keystore.ArgonIterations,
			Parallelism: cfg.Keystore.ArgonThreads,
		})
		klog.Storage.Info().Str("path", cfg.KeystoreDir()).Msg("Keystore opened")
	}

	// ── 3. RPC server ───────────────────────────────────────────────
	if cfg.RPC.Enabled {
		addr := net.JoinHostPort(cfg.RPC.Addr, strconv.Itoa(cfg.RPC.Port))
		d.rpcServer = rpc.New(addr, d.pool, cfg.RPC)
		d.rpcServer.SetDefaults(cfg.Codec.Language, cfg.Codec.EntropyBits)
		if d.keystore != nil {
			d.rpcServer.SetKeystore(d.keystore)
			logger.Info().Msg("Wallet RPC enabled")
		}
	} else {
		if cfg.Wallet.Enabled {
			logger.Warn().Msg("wallet.enabled is true but RPC is disabled; wallet RPC endpoints unavailable")
		}
		logger.Warn().Msg("RPC disabled by config")
	}

	d.ctx, d.cancel = context.WithCancel(context.Background())
	return d, nil
}

// Start binds the RPC listener and launches background goroutines.
func (d *Daemon) Start() error {
	if d.rpcServer != nil {
		if err := d.rpcServer.Start(); err != nil {
			return err
		}
		d.logger.Info().Str("addr", d.rpcServer.Addr()).Msg("RPC server listening")
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.runStatsLoop(statsInterval)
	}()

	d.logger.Info().
		Bool("rpc", d.rpcServer != nil).
		Bool("wallet", d.keystore != nil).
		Msg("Daemon started successfully")
	return nil
}

// Run starts the daemon and blocks until ctx is done, then stops it.
func (d *Daemon) Run(ctx context.Context) error {
	if err := d.Start(); err != nil {
		d.Stop()
		return err
	}
	<-ctx.Done()
	d.Stop()
	return nil
}

// Stop performs graceful shutdown in reverse order. It is safe to call
// more than once.
func (d *Daemon) Stop() {
	d.cancel()
	d.wg.Wait()

	if d.rpcServer != nil {
		if err := d.rpcServer.Stop(); err != nil {
			d.logger.Warn().Err(err).Msg("RPC shutdown")
		}
		d.rpcServer = nil
	}
	if d.db != nil {
		if err := d.db.Close(); err != nil {
			klog.Storage.Warn().Err(err).Msg("Keystore close")
		}
		d.db = nil
	}

	d.logger.Info().Msg("Goodbye!")
}

// RPCAddr returns the address the RPC server is listening on.
func (d *Daemon) RPCAddr() string {
	if d.rpcServer == nil {
		return ""
	}
	return d.rpcServer.Addr()
}

// Keystore returns the wallet keystore, or nil when the wallet is disabled.
func (d *Daemon) Keystore() *wallet.Keystore {
	return d.keystore
}

// Pool returns the seed derivation pool.
func (d *Daemon) Pool() *seedpool.Pool {
	return d.pool
}

func (d *Daemon) runStatsLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var last uint64
	for {
		select {
		case <-d.ctx.Done():
			return
		case <-ticker.C:
			st := d.pool.Stats()
			if st.Completed == last && st.InFlight == 0 {
				continue
			}
			last = st.Completed
			klog.Seed.Debug().
				Int64("in_flight", st.InFlight).
				Uint64("completed", st.Completed).
				Uint64("failed", st.Failed).
				Msg("Seed pool stats")
		}
	}
}
