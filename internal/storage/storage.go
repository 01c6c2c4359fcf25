// Package storage provides sinks for pool event records.
package storage

import (
	"context"

	"github.com/nulln0ne/amm-pool/internal/model"
)

// Journal is a sink for event records.
type Journal interface {
	Record(ctx context.Context, rec model.Record) error
}
