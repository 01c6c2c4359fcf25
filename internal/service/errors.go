package service

import "errors"

var (
	// ErrUnknownAsset is returned by the faucet for an asset the service
	// has no ledger for.
	ErrUnknownAsset = errors.New("unknown asset")
)
