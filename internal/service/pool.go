package service

import (
	"context"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/nulln0ne/amm-pool/internal/ledger"
	"github.com/nulln0ne/amm-pool/internal/pool"
)

// PoolService exposes the pool engine's operations to the HTTP layer and
// hosts the faucet for the in-memory asset ledgers.
type PoolService struct {
	BaseService
	pool  *pool.Pool
	books map[common.Address]*ledger.Book
}

// NewPoolService constructs a PoolService. books are the in-memory ledgers
// the faucet may mint on, keyed by their asset identity.
func NewPoolService(logger *slog.Logger, p *pool.Pool, books ...*ledger.Book) *PoolService {
	byAsset := make(map[common.Address]*ledger.Book, len(books))
	for _, b := range books {
		byAsset[b.Asset()] = b
	}
	return &PoolService{
		BaseService: BaseService{logger: logger},
		pool:        p,
		books:       byAsset,
	}
}

// Snapshot is the read surface of the pool for GET /pool.
type Snapshot struct {
	AssetA          common.Address
	AssetB          common.Address
	ReserveA        *big.Int
	ReserveB        *big.Int
	TotalShares     *big.Int
	FeeShareBalance *big.Int
	Admin           common.Address
}

func (s *PoolService) Snapshot(ctx context.Context) (*Snapshot, error) {
	reserveA, reserveB, err := s.pool.Reserves()
	if err != nil {
		return nil, err
	}
	total, err := s.pool.TotalShares()
	if err != nil {
		return nil, err
	}
	feeBal, err := s.pool.FeeShareBalance()
	if err != nil {
		return nil, err
	}
	admin, err := s.pool.Admin()
	if err != nil {
		return nil, err
	}
	return &Snapshot{
		AssetA:          s.pool.AssetA(),
		AssetB:          s.pool.AssetB(),
		ReserveA:        reserveA,
		ReserveB:        reserveB,
		TotalShares:     total,
		FeeShareBalance: feeBal,
		Admin:           admin,
	}, nil
}

func (s *PoolService) Reserves(ctx context.Context) (*big.Int, *big.Int, error) {
	return s.pool.Reserves()
}

func (s *PoolService) AddLiquidity(ctx context.Context, depositor common.Address, amountAIn, amountBIn *big.Int) (actualA, actualB, minted *big.Int, err error) {
	s.logger.Debug("add liquidity requested", "depositor", depositor.Hex(),
		"amount_a", amountAIn.String(), "amount_b", amountBIn.String())
	return s.pool.AddLiquidity(ctx, depositor, amountAIn, amountBIn)
}

func (s *PoolService) RemoveLiquidity(ctx context.Context, withdrawer common.Address, shares *big.Int) (amountA, amountB *big.Int, err error) {
	s.logger.Debug("remove liquidity requested", "withdrawer", withdrawer.Hex(), "shares", shares.String())
	return s.pool.RemoveLiquidity(ctx, withdrawer, shares)
}

func (s *PoolService) Swap(ctx context.Context, trader common.Address, assetIn, assetOut common.Address, amountIn *big.Int, data []byte) (*big.Int, error) {
	s.logger.Debug("swap requested", "trader", trader.Hex(),
		"asset_in", assetIn.Hex(), "asset_out", assetOut.Hex(), "amount_in", amountIn.String())
	// no callee capability over HTTP; callback data is carried through
	return s.pool.Swap(ctx, trader, assetIn, assetOut, amountIn, data, nil)
}

func (s *PoolService) WithdrawFee(ctx context.Context, caller common.Address) (*big.Int, error) {
	s.logger.Debug("fee withdrawal requested", "caller", caller.Hex())
	return s.pool.WithdrawFee(ctx, caller)
}

// Faucet mints amount of asset to an account on the in-memory ledger, a
// deployment convenience for seeding test balances.
func (s *PoolService) Faucet(ctx context.Context, asset, to common.Address, amount *big.Int) error {
	book, ok := s.books[asset]
	if !ok {
		return ErrUnknownAsset
	}
	s.logger.Debug("faucet mint", "asset", asset.Hex(), "to", to.Hex(), "amount", amount.String())
	return book.Mint(to, amount)
}
