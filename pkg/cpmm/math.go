// Package cpmm implements the integer math of a two-asset constant-product
// pool: liquidity-share minting, proportional withdrawal amounts, the
// protocol fee skim and the anchored swap pricing formula. All functions
// floor-divide and never mutate their inputs unless documented otherwise.
package cpmm

import "math/big"

// protocol fee on minted shares: 0.3% => 3/1000
var (
	feeNum = big.NewInt(3)
	feeDen = big.NewInt(1000)
)

// FirstShares returns the shares minted for the first deposit into an empty
// pool: floor(sqrt(a*b)).
func FirstShares(a, b *big.Int) *big.Int {
	return new(big.Int).Sqrt(new(big.Int).Mul(a, b))
}

// SharesForDeposit returns the shares minted for a deposit into a non-empty
// pool: min(amountA*total/reserveA, amountB*total/reserveB). The minimum
// keeps a skewed deposit from claiming more than its proportional share.
func SharesForDeposit(amountA, amountB, reserveA, reserveB, total *big.Int) *big.Int {
	byA := new(big.Int).Mul(amountA, total)
	byA.Div(byA, reserveA)
	byB := new(big.Int).Mul(amountB, total)
	byB.Div(byB, reserveB)
	if byB.Cmp(byA) < 0 {
		return byB
	}
	return byA
}

// AmountForShares returns floor(shares*reserve/total), the reserve slice a
// share amount is entitled to. Used both to settle deposits back to the
// pool ratio and to price withdrawals.
func AmountForShares(shares, reserve, total *big.Int) *big.Int {
	out := new(big.Int).Mul(shares, reserve)
	return out.Div(out, total)
}

// FeeShares returns the protocol's cut of freshly minted shares.
func FeeShares(shares *big.Int) *big.Int {
	out := new(big.Int).Mul(shares, feeNum)
	return out.Div(out, feeDen)
}

// AmountOut computes the swap output that brings the post-trade product
// down to exactly k:
//
//	dst = (balOut*(balIn+amountIn) - k) / (balIn+amountIn)
//
// dst and t are caller-supplied scratch integers; the result is dst. The
// result is negative or zero when the pool cannot pay anything out at the
// k floor.
func AmountOut(dst, t *big.Int, balIn, balOut, amountIn, k *big.Int) *big.Int {
	// t = balIn + amountIn
	t.Add(balIn, amountIn)
	// dst = balOut * t - k
	dst.Mul(balOut, t)
	dst.Sub(dst, k)
	// dst = dst / t
	return dst.Div(dst, t)
}

// InvariantHolds reports whether balIn*balOut >= k.
func InvariantHolds(balIn, balOut, k *big.Int) bool {
	return new(big.Int).Mul(balIn, balOut).Cmp(k) >= 0
}
