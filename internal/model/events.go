// Package model defines the observable event records the pool engine emits.
package model

// Event kinds recorded by the journal.
const (
	KindDeposit       = "deposit"
	KindWithdrawal    = "withdrawal"
	KindTrade         = "trade"
	KindFeeWithdrawal = "fee_withdrawal"
)

// DepositEvent records an addLiquidity mutation. Amounts are the actual
// amounts pulled from the depositor, not the requested ones.
type DepositEvent struct {
	Depositor string `json:"depositor"`
	AmountA   string `json:"amount_a"`
	AmountB   string `json:"amount_b"`
	Shares    string `json:"shares"`
}

// WithdrawalEvent records a removeLiquidity mutation.
type WithdrawalEvent struct {
	Withdrawer string `json:"withdrawer"`
	AmountA    string `json:"amount_a"`
	AmountB    string `json:"amount_b"`
	Shares     string `json:"shares"`
}

// TradeEvent records a swap.
type TradeEvent struct {
	Trader    string `json:"trader"`
	AssetIn   string `json:"asset_in"`
	AssetOut  string `json:"asset_out"`
	AmountIn  string `json:"amount_in"`
	AmountOut string `json:"amount_out"`
}

// FeeWithdrawalEvent records an administrator fee withdrawal.
type FeeWithdrawalEvent struct {
	Recipient string `json:"recipient"`
	Shares    string `json:"shares"`
}

// Record is the journal envelope: one kind tag, a unix timestamp, and
// exactly one populated payload.
type Record struct {
	Kind          string              `json:"kind"`
	Timestamp     int64               `json:"ts"`
	Deposit       *DepositEvent       `json:"deposit,omitempty"`
	Withdrawal    *WithdrawalEvent    `json:"withdrawal,omitempty"`
	Trade         *TradeEvent         `json:"trade,omitempty"`
	FeeWithdrawal *FeeWithdrawalEvent `json:"fee_withdrawal,omitempty"`
}
