package ledger

import (
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// Book is an in-memory Ledger. A zero-amount movement is a no-op; a
// negative amount or an overdraft fails the call without touching state.
type Book struct {
	asset common.Address

	mu       sync.Mutex
	balances map[common.Address]*big.Int
}

// NewBook creates an empty ledger for the given asset identity.
func NewBook(asset common.Address) *Book {
	return &Book{
		asset:    asset,
		balances: make(map[common.Address]*big.Int),
	}
}

func (b *Book) Asset() common.Address {
	return b.asset
}

func (b *Book) BalanceOf(account common.Address) *big.Int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if bal, ok := b.balances[account]; ok {
		return new(big.Int).Set(bal)
	}
	return new(big.Int)
}

func (b *Book) TransferFrom(from, to common.Address, amount *big.Int) error {
	return b.Transfer(from, to, amount)
}

func (b *Book) Transfer(from, to common.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	if amount.Sign() == 0 {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	bal := b.balances[from]
	if bal == nil || bal.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	bal.Sub(bal, amount)
	b.credit(to, amount)
	return nil
}

func (b *Book) Mint(to common.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	if amount.Sign() == 0 {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.credit(to, amount)
	return nil
}

func (b *Book) Burn(from common.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	if amount.Sign() == 0 {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	bal := b.balances[from]
	if bal == nil || bal.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	bal.Sub(bal, amount)
	return nil
}

// credit assumes b.mu is held.
func (b *Book) credit(to common.Address, amount *big.Int) {
	if bal, ok := b.balances[to]; ok {
		bal.Add(bal, amount)
		return
	}
	b.balances[to] = new(big.Int).Set(amount)
}
