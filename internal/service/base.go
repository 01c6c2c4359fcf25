// Package service wires the pool engine and its ledgers behind the HTTP layer.
package service

import "log/slog"

// BaseService carries the dependencies every service shares.
type BaseService struct {
	logger *slog.Logger
}
