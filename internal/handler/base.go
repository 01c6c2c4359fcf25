// Package handler exposes the pool's operations over HTTP.
package handler

import "log/slog"

// BaseHandler carries the dependencies every pool handler shares.
type BaseHandler struct {
	logger *slog.Logger
}
