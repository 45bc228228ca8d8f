// Package seedpool bounds how many PBKDF2 seed derivations run at once.
package seedpool

import (
	"context"
	"fmt"
	"sync/atomic"

	klog "github.com/Klingon-tech/klingnet-mnemonic/internal/log"
	"github.com/Klingon-tech/klingnet-mnemonic/pkg/bip39"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Pool runs seed stretching on at most Workers goroutines.
type Pool struct {
	sem     *semaphore.Weighted
	workers int

	inFlight  atomic.Int64
	completed atomic.Uint64
	failed    atomic.Uint64
}

// Stats is a snapshot of pool counters.
type Stats struct {
	Workers   int    `json:"workers"`
	InFlight  int64  `json:"in_flight"`
	Completed uint64 `json:"completed"`
	Failed    uint64 `json:"failed"`
}

// Request is one derivation for DeriveAll.
type Request struct {
	Codec      *bip39.Codec
	Mnemonic   string
	Passphrase string
}

// New creates a pool with the given number of workers (minimum 1).
func New(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{
		sem:     semaphore.NewWeighted(int64(workers)),
		workers: workers,
	}
}

// Workers returns the pool size.
func (p *Pool) Workers() int {
	return p.workers
}

// Derive validates mnemonic and stretches it into a 64-byte seed once a
// worker slot is free. Invalid mnemonics fail without waiting for a slot.
func (p *Pool) Derive(ctx context.Context, codec *bip39.Codec, mnemonic, passphrase string) ([]byte, error) {
	if err := codec.CheckMnemonic(mnemonic); err != nil {
		p.failed.Add(1)
		return nil, err
	}
	if err := p.acquire(ctx); err != nil {
		return nil, err
	}
	defer p.release()

	defer klog.Benchmark("seed.derive")()
	seed := bip39.NewSeed(codec.Normalize(mnemonic), passphrase)
	p.completed.Add(1)
	return seed, nil
}

// DeriveMasterSeed is Derive returning the full MasterSeed.
func (p *Pool) DeriveMasterSeed(ctx context.Context, codec *bip39.Codec, mnemonic, passphrase string) (*bip39.MasterSeed, error) {
	if err := codec.CheckMnemonic(mnemonic); err != nil {
		p.failed.Add(1)
		return nil, err
	}
	if err := p.acquire(ctx); err != nil {
		return nil, err
	}
	defer p.release()

	defer klog.Benchmark("seed.master")()
	ms, err := bip39.NewMasterSeed(codec, mnemonic, passphrase)
	if err != nil {
		p.failed.Add(1)
		return nil, err
	}
	p.completed.Add(1)
	return ms, nil
}

// DeriveAll derives every request concurrently, bounded by the pool.
// Results are in request order. The first failure cancels the rest.
func (p *Pool) DeriveAll(ctx context.Context, reqs []Request) ([][]byte, error) {
	out := make([][]byte, len(reqs))
	g, ctx := errgroup.WithContext(ctx)
	for i, r := range reqs {
		g.Go(func() error {
			seed, err := p.Derive(ctx, r.Codec, r.Mnemonic, r.Passphrase)
			if err != nil {
				return fmt.Errorf("request %d: %w", i, err)
			}
			out[i] = seed
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Stats returns the current counters.
func (p *Pool) Stats() Stats {
	return Stats{
		Workers:   p.workers,
		InFlight:  p.inFlight.Load(),
		Completed: p.completed.Load(),
		Failed:    p.failed.Load(),
	}
}

func (p *Pool) acquire(ctx context.Context) error {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		klog.Seed.Debug().Err(err).Msg("Seed derivation abandoned while waiting")
		return err
	}
	p.inFlight.Add(1)
	return nil
}

func (p *Pool) release() {
	p.inFlight.Add(-1)
	p.sem.Release(1)
}
