// Package ledger defines the balance-tracking contract the pool engine
// consumes for its two traded assets and its own liquidity-share asset,
// plus an in-memory implementation used by the server and tests.
package ledger

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Ledger tracks balances of a single fungible asset. Transfers either fully
// succeed or fail without moving anything; there are no partial transfers.
type Ledger interface {
	// Asset returns the identity of the asset this ledger tracks.
	Asset() common.Address

	// BalanceOf returns the current balance of an account. The returned
	// value is a copy the caller may mutate freely.
	BalanceOf(account common.Address) *big.Int

	// TransferFrom moves amount from one account to another on behalf of
	// the recipient.
	TransferFrom(from, to common.Address, amount *big.Int) error

	// Transfer moves amount between two accounts.
	Transfer(from, to common.Address, amount *big.Int) error

	// Mint credits amount to an account out of thin air.
	Mint(to common.Address, amount *big.Int) error

	// Burn debits amount from an account and destroys it.
	Burn(from common.Address, amount *big.Int) error
}
