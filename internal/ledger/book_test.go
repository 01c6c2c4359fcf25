package ledger

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

var (
	asset = common.HexToAddress("0x00000000000000000000000000000000000000aa")
	alice = common.HexToAddress("0x0000000000000000000000000000000000000a11")
	bob   = common.HexToAddress("0x0000000000000000000000000000000000000b0b")
)

func TestBook_MintTransferBurn(t *testing.T) {
	t.Parallel()

	b := NewBook(asset)
	if b.Asset() != asset {
		t.Fatalf("unexpected asset: %s", b.Asset().Hex())
	}

	if err := b.Mint(alice, big.NewInt(100)); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := b.Transfer(alice, bob, big.NewInt(40)); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if got := b.BalanceOf(alice); got.Cmp(big.NewInt(60)) != 0 {
		t.Fatalf("alice balance: got %s want 60", got)
	}
	if got := b.BalanceOf(bob); got.Cmp(big.NewInt(40)) != 0 {
		t.Fatalf("bob balance: got %s want 40", got)
	}

	if err := b.Burn(bob, big.NewInt(40)); err != nil {
		t.Fatalf("burn: %v", err)
	}
	if got := b.BalanceOf(bob); got.Sign() != 0 {
		t.Fatalf("bob balance after burn: got %s want 0", got)
	}
}

func TestBook_Overdraft(t *testing.T) {
	t.Parallel()

	b := NewBook(asset)
	_ = b.Mint(alice, big.NewInt(10))

	if err := b.Transfer(alice, bob, big.NewInt(11)); err != ErrInsufficientBalance {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	// failed transfer must not move anything
	if got := b.BalanceOf(alice); got.Cmp(big.NewInt(10)) != 0 {
		t.Fatalf("alice balance changed on failed transfer: %s", got)
	}
	if err := b.Burn(alice, big.NewInt(11)); err != ErrInsufficientBalance {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
}

func TestBook_ZeroAndNegative(t *testing.T) {
	t.Parallel()

	b := NewBook(asset)
	if err := b.Transfer(alice, bob, big.NewInt(0)); err != nil {
		t.Fatalf("zero transfer should be a no-op, got %v", err)
	}
	if err := b.Mint(alice, big.NewInt(-1)); err != ErrNegativeAmount {
		t.Fatalf("expected ErrNegativeAmount, got %v", err)
	}
}

func TestBook_BalanceCopyIsDetached(t *testing.T) {
	t.Parallel()

	b := NewBook(asset)
	_ = b.Mint(alice, big.NewInt(5))

	got := b.BalanceOf(alice)
	got.SetInt64(999)
	if again := b.BalanceOf(alice); again.Cmp(big.NewInt(5)) != 0 {
		t.Fatalf("ledger state mutated through returned balance: %s", again)
	}
}
