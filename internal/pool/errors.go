package pool

import "errors"

var (
	// construction
	ErrAssetAIsNotAsset = errors.New("asset A is not a deployed asset")
	ErrAssetBIsNotAsset = errors.New("asset B is not a deployed asset")

	// swap preconditions
	ErrInvalidAssetIn  = errors.New("asset in is not a pool asset")
	ErrInvalidAssetOut = errors.New("asset out is not a pool asset")
	ErrIdenticalAssets = errors.New("assets are identical")

	ErrInsufficientInput  = errors.New("insufficient input amount")
	ErrInsufficientOutput = errors.New("insufficient output amount")
	ErrInvariantViolated  = errors.New("invariant violated")
	ErrInsufficientBurn   = errors.New("insufficient burn amount")

	ErrUnauthorized = errors.New("caller is not the administrator")
	ErrReentrant    = errors.New("pool operation already in flight")
)
