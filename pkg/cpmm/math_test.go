package cpmm

import (
	"math/big"
	"testing"
)

func TestFirstShares(t *testing.T) {
	// floor(sqrt(100*400)) = 200
	got := FirstShares(big.NewInt(100), big.NewInt(400))
	if got.Cmp(big.NewInt(200)) != 0 {
		t.Fatalf("unexpected first shares: got %s want 200", got)
	}

	// non-square product floors: floor(sqrt(10*10)) = 10, floor(sqrt(10*11)) = 10
	got = FirstShares(big.NewInt(10), big.NewInt(11))
	if got.Cmp(big.NewInt(10)) != 0 {
		t.Fatalf("unexpected first shares: got %s want 10", got)
	}
}

func TestSharesForDeposit_TakesMinimum(t *testing.T) {
	reserveA := big.NewInt(1_000)
	reserveB := big.NewInt(2_000)
	total := big.NewInt(1_000)

	// at-ratio deposit: both sides imply the same share count
	got := SharesForDeposit(big.NewInt(100), big.NewInt(200), reserveA, reserveB, total)
	if got.Cmp(big.NewInt(100)) != 0 {
		t.Fatalf("at-ratio deposit: got %s want 100", got)
	}

	// B over-supplied: A side limits
	got = SharesForDeposit(big.NewInt(100), big.NewInt(999_999), reserveA, reserveB, total)
	if got.Cmp(big.NewInt(100)) != 0 {
		t.Fatalf("skewed deposit: got %s want 100", got)
	}

	// A over-supplied: B side limits
	got = SharesForDeposit(big.NewInt(999_999), big.NewInt(200), reserveA, reserveB, total)
	if got.Cmp(big.NewInt(100)) != 0 {
		t.Fatalf("skewed deposit: got %s want 100", got)
	}
}

func TestAmountForShares(t *testing.T) {
	// 7 of 10 shares against a reserve of 15: floor(7*15/10) = 10
	got := AmountForShares(big.NewInt(7), big.NewInt(15), big.NewInt(10))
	if got.Cmp(big.NewInt(10)) != 0 {
		t.Fatalf("got %s want 10", got)
	}
}

func TestFeeShares(t *testing.T) {
	if got := FeeShares(big.NewInt(1000)); got.Cmp(big.NewInt(3)) != 0 {
		t.Fatalf("got %s want 3", got)
	}
	// below 1/0.003 the skim floors to zero
	if got := FeeShares(big.NewInt(333)); got.Sign() != 0 {
		t.Fatalf("got %s want 0", got)
	}
}

func TestAmountOut(t *testing.T) {
	// reserves 100/100, anchor 10000, swap in 100:
	// (100*200 - 10000)/200 = 50
	var dst, tmp big.Int
	out := AmountOut(&dst, &tmp, big.NewInt(100), big.NewInt(100), big.NewInt(100), big.NewInt(10_000))
	if out.Cmp(big.NewInt(50)) != 0 {
		t.Fatalf("unexpected amount out: got %s want 50", out)
	}

	// post-trade product stays at or above the anchor
	balIn := new(big.Int).Add(big.NewInt(100), big.NewInt(100))
	balOut := new(big.Int).Sub(big.NewInt(100), out)
	if !InvariantHolds(balIn, balOut, big.NewInt(10_000)) {
		t.Fatalf("invariant violated after swap")
	}
}

func TestAmountOut_EmptySide(t *testing.T) {
	// nothing on the out side: result must not be positive
	var dst, tmp big.Int
	out := AmountOut(&dst, &tmp, big.NewInt(100), big.NewInt(0), big.NewInt(10), big.NewInt(10_000))
	if out.Sign() > 0 {
		t.Fatalf("expected non-positive output, got %s", out)
	}
}
