// Package pool implements a two-asset constant-product liquidity pool:
// reserve bookkeeping, liquidity-share accounting with a protocol fee skim,
// and swap pricing against a one-shot invariant anchor.
package pool

import (
	"context"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/nulln0ne/amm-pool/internal/ledger"
	"github.com/nulln0ne/amm-pool/internal/model"
	"github.com/nulln0ne/amm-pool/internal/storage"
)

// Config carries the collaborators a Pool is constructed with. AssetA,
// AssetB and Shares are the external ledgers of the two traded assets and
// of the pool's own liquidity-share asset; Account is the pool's identity
// on all three.
type Config struct {
	Account common.Address
	Admin   common.Address
	AssetA  ledger.Ledger
	AssetB  ledger.Ledger
	Shares  ledger.Ledger
	Journal storage.Journal
	Logger  *slog.Logger
}

// Pool is the aggregate root. Every public operation runs under a single
// mutual-exclusion guard for its full duration; a second entry while one is
// in flight, including from inside a swap callback, fails with ErrReentrant.
type Pool struct {
	logger  *slog.Logger
	journal storage.Journal

	account common.Address
	assetA  common.Address
	assetB  common.Address
	ledgerA ledger.Ledger
	ledgerB ledger.Ledger
	shares  ledger.Ledger

	mu          sync.Mutex
	admin       common.Address
	reserveA    *big.Int
	reserveB    *big.Int
	totalShares *big.Int
	// anchor is reserveA*reserveB captured at the first empty->non-empty
	// deposit and never recomputed, even when totalShares later cycles
	// through zero. It is the swap-time invariant floor.
	anchor *big.Int
}

// New validates the asset pair and returns a pool with zero reserves and
// shares. Both assets must be backed by a ledger with a non-zero identity,
// and the identities must differ.
func New(cfg Config) (*Pool, error) {
	if cfg.AssetA == nil || cfg.AssetA.Asset() == (common.Address{}) {
		return nil, ErrAssetAIsNotAsset
	}
	if cfg.AssetB == nil || cfg.AssetB.Asset() == (common.Address{}) {
		return nil, ErrAssetBIsNotAsset
	}
	if cfg.AssetA.Asset() == cfg.AssetB.Asset() {
		return nil, ErrIdenticalAssets
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Pool{
		logger:      logger,
		journal:     cfg.Journal,
		account:     cfg.Account,
		admin:       cfg.Admin,
		assetA:      cfg.AssetA.Asset(),
		assetB:      cfg.AssetB.Asset(),
		ledgerA:     cfg.AssetA,
		ledgerB:     cfg.AssetB,
		shares:      cfg.Shares,
		reserveA:    new(big.Int),
		reserveB:    new(big.Int),
		totalShares: new(big.Int),
	}, nil
}

// enter acquires the operation guard without blocking. Rejecting instead of
// waiting is what turns a re-entrant call from a swap callback into an
// error rather than a deadlock.
func (p *Pool) enter() error {
	if !p.mu.TryLock() {
		return ErrReentrant
	}
	return nil
}

// ledgerFor maps a pool asset identity to its ledger, nil otherwise.
func (p *Pool) ledgerFor(asset common.Address) ledger.Ledger {
	switch asset {
	case p.assetA:
		return p.ledgerA
	case p.assetB:
		return p.ledgerB
	}
	return nil
}

// syncReserves rewrites the cached reserves from the live ledger balances
// of the pool account. Callers hold p.mu. Reserves are never incremented in
// place, so they self-heal against any drift.
func (p *Pool) syncReserves() {
	p.reserveA = p.ledgerA.BalanceOf(p.account)
	p.reserveB = p.ledgerB.BalanceOf(p.account)
}

func (p *Pool) record(ctx context.Context, rec model.Record) {
	if p.journal == nil {
		return
	}
	rec.Timestamp = time.Now().Unix()
	if err := p.journal.Record(ctx, rec); err != nil {
		p.logger.Warn("failed to record pool event", "kind", rec.Kind, "err", err)
	}
}

// AssetA returns the identity of the first pool asset.
func (p *Pool) AssetA() common.Address { return p.assetA }

// AssetB returns the identity of the second pool asset.
func (p *Pool) AssetB() common.Address { return p.assetB }

// Account returns the pool's own ledger account.
func (p *Pool) Account() common.Address { return p.account }

// Reserves returns a snapshot of the cached reserves taken under the
// operation guard.
func (p *Pool) Reserves() (reserveA, reserveB *big.Int, err error) {
	if err := p.enter(); err != nil {
		return nil, nil, err
	}
	defer p.mu.Unlock()
	return new(big.Int).Set(p.reserveA), new(big.Int).Set(p.reserveB), nil
}

// TotalShares returns the outstanding liquidity-share supply.
func (p *Pool) TotalShares() (*big.Int, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.mu.Unlock()
	return new(big.Int).Set(p.totalShares), nil
}

// FeeShareBalance returns the shares the pool holds for itself as accrued
// protocol fee, read live from the share ledger.
func (p *Pool) FeeShareBalance() (*big.Int, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.mu.Unlock()
	return p.shares.BalanceOf(p.account), nil
}

// Admin returns the current administrator identity.
func (p *Pool) Admin() (common.Address, error) {
	if err := p.enter(); err != nil {
		return common.Address{}, err
	}
	defer p.mu.Unlock()
	return p.admin, nil
}

// TransferAdmin hands the administrator role to a new identity. Only the
// current administrator may call it.
func (p *Pool) TransferAdmin(caller, next common.Address) error {
	if err := p.enter(); err != nil {
		return err
	}
	defer p.mu.Unlock()
	if caller != p.admin {
		return ErrUnauthorized
	}
	p.admin = next
	return nil
}
