package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/nulln0ne/amm-pool/internal/ledger"
	"github.com/nulln0ne/amm-pool/internal/pool"
	"github.com/nulln0ne/amm-pool/internal/service"
)

// ErrInvalidRequestBody indicates that the request body could not be parsed
// into the expected structure.
var ErrInvalidRequestBody = fiber.NewError(fiber.StatusBadRequest, "invalid request body")

// ErrAmountRequired is returned when an amount field is missing.
var ErrAmountRequired = fiber.NewError(fiber.StatusBadRequest, "amount is required")

// ErrInvalidAmountFormat is returned when an amount cannot be parsed as a
// base-10 integer.
var ErrInvalidAmountFormat = fiber.NewError(fiber.StatusBadRequest, "invalid amount format")

// ErrAmountNonPositive is returned when an amount is zero or negative.
var ErrAmountNonPositive = fiber.NewError(fiber.StatusBadRequest, "amount must be greater than zero")

// ErrPoolInternal signals a generic server-side failure.
var ErrPoolInternal = fiber.NewError(fiber.StatusInternalServerError, "pool operation failed")

// NewAddressRequired returns a 400 Bad Request for a missing address field.
func NewAddressRequired(field string) error {
	return fiber.NewError(fiber.StatusBadRequest, field+" address is required")
}

// NewInvalidAddress returns a 400 Bad Request for an invalid address format.
func NewInvalidAddress(field string) error {
	return fiber.NewError(fiber.StatusBadRequest, "invalid "+field+" address")
}

// mapPoolError translates engine and ledger sentinels into HTTP errors.
// Unrecognized errors become 500s; the engine never downgrades its own
// failures, so anything else is a server-side defect.
func mapPoolError(err error) error {
	switch {
	case errors.Is(err, pool.ErrInvalidAssetIn),
		errors.Is(err, pool.ErrInvalidAssetOut),
		errors.Is(err, pool.ErrIdenticalAssets),
		errors.Is(err, pool.ErrInsufficientInput),
		errors.Is(err, pool.ErrInsufficientOutput),
		errors.Is(err, pool.ErrInsufficientBurn),
		errors.Is(err, ledger.ErrInsufficientBalance),
		errors.Is(err, service.ErrUnknownAsset):
		return fiber.NewError(fiber.StatusBadRequest, rootMessage(err))
	case errors.Is(err, pool.ErrUnauthorized):
		return fiber.NewError(fiber.StatusForbidden, rootMessage(err))
	case errors.Is(err, pool.ErrReentrant):
		return fiber.NewError(fiber.StatusConflict, rootMessage(err))
	default:
		return nil
	}
}

func rootMessage(err error) string {
	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err.Error()
		}
		err = unwrapped
	}
}
