package pool

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/nulln0ne/amm-pool/internal/model"
	"github.com/nulln0ne/amm-pool/pkg/cpmm"
)

// AddLiquidity pulls a pair of amounts from the depositor and mints
// liquidity shares for them, minus the 0.3% protocol fee skim the pool
// keeps for itself.
//
// The first deposit into an empty pool is taken exactly as requested and
// mints floor(sqrt(a*b)) shares. Later deposits are trimmed to the pool's
// current ratio: whichever side is over-supplied is silently reduced, and
// only the actual amounts are ever pulled from the depositor.
func (p *Pool) AddLiquidity(ctx context.Context, depositor common.Address, amountAIn, amountBIn *big.Int) (actualA, actualB, minted *big.Int, err error) {
	if err := p.enter(); err != nil {
		return nil, nil, nil, err
	}
	defer p.mu.Unlock()

	if amountAIn == nil || amountAIn.Sign() <= 0 || amountBIn == nil || amountBIn.Sign() <= 0 {
		return nil, nil, nil, ErrInsufficientInput
	}

	first := p.totalShares.Sign() == 0

	var shares *big.Int
	if first {
		shares = cpmm.FirstShares(amountAIn, amountBIn)
		actualA = new(big.Int).Set(amountAIn)
		actualB = new(big.Int).Set(amountBIn)
	} else {
		shares = cpmm.SharesForDeposit(amountAIn, amountBIn, p.reserveA, p.reserveB, p.totalShares)
		actualA = cpmm.AmountForShares(shares, p.reserveA, p.totalShares)
		actualB = cpmm.AmountForShares(shares, p.reserveB, p.totalShares)
	}

	feeShares := cpmm.FeeShares(shares)
	minted = new(big.Int).Sub(shares, feeShares)

	if err := p.ledgerA.TransferFrom(depositor, p.account, actualA); err != nil {
		return nil, nil, nil, fmt.Errorf("pull asset A: %w", err)
	}
	if err := p.ledgerB.TransferFrom(depositor, p.account, actualB); err != nil {
		// put the first leg back; nothing else has moved
		_ = p.ledgerA.Transfer(p.account, depositor, actualA)
		return nil, nil, nil, fmt.Errorf("pull asset B: %w", err)
	}

	if err := p.shares.Mint(depositor, minted); err != nil {
		_ = p.ledgerA.Transfer(p.account, depositor, actualA)
		_ = p.ledgerB.Transfer(p.account, depositor, actualB)
		return nil, nil, nil, fmt.Errorf("mint shares: %w", err)
	}
	if err := p.shares.Mint(p.account, feeShares); err != nil {
		_ = p.shares.Burn(depositor, minted)
		_ = p.ledgerA.Transfer(p.account, depositor, actualA)
		_ = p.ledgerB.Transfer(p.account, depositor, actualB)
		return nil, nil, nil, fmt.Errorf("mint fee shares: %w", err)
	}

	// The anchor is captured exactly once, at the first transition out of
	// the empty state, and is never recomputed afterwards. A pool that is
	// drained and refilled keeps its original anchor.
	if first && p.anchor == nil {
		p.anchor = new(big.Int).Mul(actualA, actualB)
	}

	p.totalShares.Add(p.totalShares, shares)
	p.syncReserves()

	p.logger.Debug("liquidity added",
		"depositor", depositor.Hex(),
		"amount_a", actualA.String(), "amount_b", actualB.String(),
		"shares", minted.String(), "fee_shares", feeShares.String())
	p.record(ctx, model.Record{
		Kind: model.KindDeposit,
		Deposit: &model.DepositEvent{
			Depositor: depositor.Hex(),
			AmountA:   actualA.String(),
			AmountB:   actualB.String(),
			Shares:    minted.String(),
		},
	})

	return actualA, actualB, minted, nil
}

// RemoveLiquidity burns shareAmount from the withdrawer and pays out the
// proportional slice of both reserves. Whether the withdrawer actually
// holds that many shares is the share ledger's concern; an insufficient
// balance surfaces as its burn error.
func (p *Pool) RemoveLiquidity(ctx context.Context, withdrawer common.Address, shareAmount *big.Int) (amountA, amountB *big.Int, err error) {
	if err := p.enter(); err != nil {
		return nil, nil, err
	}
	defer p.mu.Unlock()

	if shareAmount == nil || shareAmount.Sign() <= 0 {
		return nil, nil, ErrInsufficientBurn
	}

	if err := p.shares.Burn(withdrawer, shareAmount); err != nil {
		return nil, nil, fmt.Errorf("burn shares: %w", err)
	}

	amountA = cpmm.AmountForShares(shareAmount, p.reserveA, p.totalShares)
	amountB = cpmm.AmountForShares(shareAmount, p.reserveB, p.totalShares)

	if err := p.ledgerA.Transfer(p.account, withdrawer, amountA); err != nil {
		_ = p.shares.Mint(withdrawer, shareAmount)
		return nil, nil, fmt.Errorf("pay asset A: %w", err)
	}
	if err := p.ledgerB.Transfer(p.account, withdrawer, amountB); err != nil {
		_ = p.ledgerA.TransferFrom(withdrawer, p.account, amountA)
		_ = p.shares.Mint(withdrawer, shareAmount)
		return nil, nil, fmt.Errorf("pay asset B: %w", err)
	}

	p.totalShares.Sub(p.totalShares, shareAmount)
	p.syncReserves()

	p.logger.Debug("liquidity removed",
		"withdrawer", withdrawer.Hex(),
		"amount_a", amountA.String(), "amount_b", amountB.String(),
		"shares", shareAmount.String())
	p.record(ctx, model.Record{
		Kind: model.KindWithdrawal,
		Withdrawal: &model.WithdrawalEvent{
			Withdrawer: withdrawer.Hex(),
			AmountA:    amountA.String(),
			AmountB:    amountB.String(),
			Shares:     shareAmount.String(),
		},
	})

	return amountA, amountB, nil
}

// WithdrawFee transfers the pool's entire self-held share balance to the
// caller. Restricted to the administrator; an empty balance is a zero
// no-op, not an error.
func (p *Pool) WithdrawFee(ctx context.Context, caller common.Address) (*big.Int, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.mu.Unlock()

	if caller != p.admin {
		return nil, ErrUnauthorized
	}

	amount := p.shares.BalanceOf(p.account)
	if amount.Sign() == 0 {
		return amount, nil
	}

	if err := p.shares.Transfer(p.account, caller, amount); err != nil {
		return nil, fmt.Errorf("pay fee shares: %w", err)
	}

	p.logger.Debug("fee withdrawn", "recipient", caller.Hex(), "shares", amount.String())
	p.record(ctx, model.Record{
		Kind: model.KindFeeWithdrawal,
		FeeWithdrawal: &model.FeeWithdrawalEvent{
			Recipient: caller.Hex(),
			Shares:    amount.String(),
		},
	})

	return amount, nil
}
