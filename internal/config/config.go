package config

import (
	"os"

	"github.com/ethereum/go-ethereum/common"
)

// defaultPoolAccount is the ledger account the pool holds its reserves
// under when POOL_ACCOUNT is not set.
const defaultPoolAccount = "0x0000000000000000000000000000000000001001"

type Config struct {
	Addr        string
	LogLevel    string
	AssetA      common.Address
	AssetB      common.Address
	ShareAsset  common.Address
	PoolAccount common.Address
	Admin       common.Address
	JournalPath string
	DatabaseURL string
}

func FromEnv() (*Config, error) {
	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":1337"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	assetA, err := requireAddress("ASSET_A", ErrMissingAssetA)
	if err != nil {
		return nil, err
	}
	assetB, err := requireAddress("ASSET_B", ErrMissingAssetB)
	if err != nil {
		return nil, err
	}
	shareAsset, err := requireAddress("SHARE_ASSET", ErrMissingShareAsset)
	if err != nil {
		return nil, err
	}
	admin, err := requireAddress("ADMIN", ErrMissingAdmin)
	if err != nil {
		return nil, err
	}

	poolAccount := os.Getenv("POOL_ACCOUNT")
	if poolAccount == "" {
		poolAccount = defaultPoolAccount
	}
	if !common.IsHexAddress(poolAccount) {
		return nil, ErrInvalidAddress
	}

	journalPath := os.Getenv("JOURNAL_PATH")
	if journalPath == "" {
		journalPath = "./data/events.jsonl"
	}

	cfg := &Config{
		Addr:        addr,
		LogLevel:    logLevel,
		AssetA:      assetA,
		AssetB:      assetB,
		ShareAsset:  shareAsset,
		PoolAccount: common.HexToAddress(poolAccount),
		Admin:       admin,
		JournalPath: journalPath,
		DatabaseURL: os.Getenv("DATABASE_URL"),
	}

	return cfg, nil
}

func requireAddress(key string, missing error) (common.Address, error) {
	v := os.Getenv(key)
	if v == "" {
		return common.Address{}, missing
	}
	if !common.IsHexAddress(v) {
		return common.Address{}, ErrInvalidAddress
	}
	return common.HexToAddress(v), nil
}
