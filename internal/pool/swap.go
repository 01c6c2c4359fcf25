package pool

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/nulln0ne/amm-pool/internal/ledger"
	"github.com/nulln0ne/amm-pool/internal/model"
	"github.com/nulln0ne/amm-pool/pkg/cpmm"
)

// Callee is the capability a trader may implement to react inside a swap.
// PoolCall runs after both asset movements and before the pool re-validates
// the invariant and finalizes reserves. It executes inside the pool's
// operation guard, so calling back into any pool operation fails with
// ErrReentrant. A non-nil error aborts the swap and unwinds both transfers.
type Callee interface {
	PoolCall(ctx context.Context, assetIn, assetOut common.Address, amountIn, amountOut *big.Int, data []byte) error
}

// Swap pulls amountIn of assetIn from the trader and pays out the amount
// that brings the product of the pool's live balances down to exactly the
// invariant anchor. The anchor is the one captured at the first deposit;
// liquidity added or removed since does not move the floor. When data is
// non-empty and a callee is supplied, the callee runs between the transfers
// and the final reserve recompute.
func (p *Pool) Swap(ctx context.Context, trader common.Address, assetIn, assetOut common.Address, amountIn *big.Int, data []byte, callee Callee) (*big.Int, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.mu.Unlock()

	inLedger := p.ledgerFor(assetIn)
	if inLedger == nil {
		return nil, ErrInvalidAssetIn
	}
	outLedger := p.ledgerFor(assetOut)
	if outLedger == nil {
		return nil, ErrInvalidAssetOut
	}
	if assetIn == assetOut {
		return nil, ErrIdenticalAssets
	}
	if amountIn == nil || amountIn.Sign() <= 0 {
		return nil, ErrInsufficientInput
	}

	// no deposit has ever set the floor, so there is nothing to price against
	if p.anchor == nil {
		return nil, ErrInsufficientOutput
	}

	// price from live balances, not the cached reserves
	balIn := inLedger.BalanceOf(p.account)
	balOut := outLedger.BalanceOf(p.account)

	var dst, tmp big.Int
	amountOut := new(big.Int).Set(cpmm.AmountOut(&dst, &tmp, balIn, balOut, amountIn, p.anchor))
	if amountOut.Sign() <= 0 {
		return nil, ErrInsufficientOutput
	}

	// holds by construction; checked before anything moves so a rounding
	// surprise cannot leave the pool in a mutated state
	newBalIn := new(big.Int).Add(balIn, amountIn)
	newBalOut := new(big.Int).Sub(balOut, amountOut)
	if !cpmm.InvariantHolds(newBalIn, newBalOut, p.anchor) {
		return nil, ErrInvariantViolated
	}

	if err := inLedger.TransferFrom(trader, p.account, amountIn); err != nil {
		return nil, fmt.Errorf("pull asset in: %w", err)
	}
	if err := outLedger.Transfer(p.account, trader, amountOut); err != nil {
		if rerr := inLedger.Transfer(p.account, trader, amountIn); rerr != nil {
			p.syncReserves()
			return nil, fmt.Errorf("pay asset out: %v (return asset in: %w)", err, rerr)
		}
		return nil, fmt.Errorf("pay asset out: %w", err)
	}

	if len(data) > 0 && callee != nil {
		if cbErr := callee.PoolCall(ctx, assetIn, assetOut, amountIn, amountOut, data); cbErr != nil {
			unwindErr := p.unwindSwap(trader, inLedger, outLedger, amountIn, amountOut)
			p.syncReserves()
			if unwindErr != nil {
				if !cpmm.InvariantHolds(inLedger.BalanceOf(p.account), outLedger.BalanceOf(p.account), p.anchor) {
					return nil, fmt.Errorf("swap unwind after callback error %q: %v: %w", cbErr, unwindErr, ErrInvariantViolated)
				}
				return nil, fmt.Errorf("swap unwind after callback error %q: %w", cbErr, unwindErr)
			}
			return nil, fmt.Errorf("swap callback: %w", cbErr)
		}
	}

	// re-validated against live balances after the callback had its turn
	if !cpmm.InvariantHolds(inLedger.BalanceOf(p.account), outLedger.BalanceOf(p.account), p.anchor) {
		unwindErr := p.unwindSwap(trader, inLedger, outLedger, amountIn, amountOut)
		p.syncReserves()
		if unwindErr != nil {
			return nil, fmt.Errorf("swap unwind: %v: %w", unwindErr, ErrInvariantViolated)
		}
		return nil, ErrInvariantViolated
	}

	p.syncReserves()

	p.logger.Debug("swap executed",
		"trader", trader.Hex(),
		"asset_in", assetIn.Hex(), "asset_out", assetOut.Hex(),
		"amount_in", amountIn.String(), "amount_out", amountOut.String())
	p.record(ctx, model.Record{
		Kind: model.KindTrade,
		Trade: &model.TradeEvent{
			Trader:    trader.Hex(),
			AssetIn:   assetIn.Hex(),
			AssetOut:  assetOut.Hex(),
			AmountIn:  amountIn.String(),
			AmountOut: amountOut.String(),
		},
	})

	return amountOut, nil
}

// unwindSwap reverses the two legs of an aborted swap: first the payout is
// reclaimed from the trader, then the pulled input is returned. If the
// payout cannot be reclaimed, the callee having moved it elsewhere, the
// input stays with the pool and the returned error carries the ledger
// failure so the caller knows the abort was not clean.
func (p *Pool) unwindSwap(trader common.Address, inLedger, outLedger ledger.Ledger, amountIn, amountOut *big.Int) error {
	if err := outLedger.TransferFrom(trader, p.account, amountOut); err != nil {
		return fmt.Errorf("reclaim asset out: %w", err)
	}
	if err := inLedger.Transfer(p.account, trader, amountIn); err != nil {
		return fmt.Errorf("return asset in: %w", err)
	}
	return nil
}
