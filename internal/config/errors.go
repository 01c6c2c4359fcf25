package config

import "errors"

// Required environment variables name the two traded assets, the
// liquidity-share asset and the pool administrator.
var (
	ErrMissingAssetA     = errors.New("missing ASSET_A environment variable")
	ErrMissingAssetB     = errors.New("missing ASSET_B environment variable")
	ErrMissingShareAsset = errors.New("missing SHARE_ASSET environment variable")
	ErrMissingAdmin      = errors.New("missing ADMIN environment variable")
	ErrInvalidAddress    = errors.New("environment variable is not a hex address")
)
