package handler

import (
	"context"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gofiber/fiber/v3"

	"github.com/nulln0ne/amm-pool/internal/service"
)

type PoolHandler struct {
	BaseHandler
	service *service.PoolService
}

func NewPoolHandler(logger *slog.Logger, svc *service.PoolService) *PoolHandler {
	return &PoolHandler{
		BaseHandler: BaseHandler{
			logger: logger,
		},
		service: svc,
	}
}

type AddLiquidityRequest struct {
	Depositor string `json:"depositor"`
	AmountA   string `json:"amount_a"`
	AmountB   string `json:"amount_b"`
}

type RemoveLiquidityRequest struct {
	Withdrawer string `json:"withdrawer"`
	Shares     string `json:"shares"`
}

type SwapRequest struct {
	Trader   string `json:"trader"`
	AssetIn  string `json:"asset_in"`
	AssetOut string `json:"asset_out"`
	AmountIn string `json:"amount_in"`
	Data     string `json:"data"`
}

type WithdrawFeeRequest struct {
	Caller string `json:"caller"`
}

type FaucetRequest struct {
	Asset  string `json:"asset"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

func (h *PoolHandler) GetPool() fiber.Handler {
	return func(c fiber.Ctx) error {
		snap, err := h.service.Snapshot(context.Background())
		if err != nil {
			return h.handleServiceError(err)
		}
		return c.JSON(fiber.Map{
			"asset_a":           snap.AssetA.Hex(),
			"asset_b":           snap.AssetB.Hex(),
			"reserve_a":         snap.ReserveA.String(),
			"reserve_b":         snap.ReserveB.String(),
			"total_shares":      snap.TotalShares.String(),
			"fee_share_balance": snap.FeeShareBalance.String(),
			"admin":             snap.Admin.Hex(),
		})
	}
}

func (h *PoolHandler) GetReserves() fiber.Handler {
	return func(c fiber.Ctx) error {
		reserveA, reserveB, err := h.service.Reserves(context.Background())
		if err != nil {
			return h.handleServiceError(err)
		}
		return c.JSON(fiber.Map{
			"reserve_a": reserveA.String(),
			"reserve_b": reserveB.String(),
		})
	}
}

func (h *PoolHandler) AddLiquidity() fiber.Handler {
	return func(c fiber.Ctx) error {
		var req AddLiquidityRequest
		if err := c.Bind().Body(&req); err != nil {
			h.logger.Debug("failed to bind request body", "err", err)
			return ErrInvalidRequestBody
		}

		depositor, err := h.parseAddress("depositor", req.Depositor)
		if err != nil {
			return err
		}
		amountA, err := h.parseAmount(req.AmountA)
		if err != nil {
			return err
		}
		amountB, err := h.parseAmount(req.AmountB)
		if err != nil {
			return err
		}

		actualA, actualB, minted, err := h.service.AddLiquidity(context.Background(), depositor, amountA, amountB)
		if err != nil {
			return h.handleServiceError(err)
		}

		h.logger.Debug("liquidity added", "depositor", req.Depositor, "shares", minted.String())
		return c.JSON(fiber.Map{
			"amount_a": actualA.String(),
			"amount_b": actualB.String(),
			"shares":   minted.String(),
		})
	}
}

func (h *PoolHandler) RemoveLiquidity() fiber.Handler {
	return func(c fiber.Ctx) error {
		var req RemoveLiquidityRequest
		if err := c.Bind().Body(&req); err != nil {
			h.logger.Debug("failed to bind request body", "err", err)
			return ErrInvalidRequestBody
		}

		withdrawer, err := h.parseAddress("withdrawer", req.Withdrawer)
		if err != nil {
			return err
		}
		shares, err := h.parseAmount(req.Shares)
		if err != nil {
			return err
		}

		amountA, amountB, err := h.service.RemoveLiquidity(context.Background(), withdrawer, shares)
		if err != nil {
			return h.handleServiceError(err)
		}

		return c.JSON(fiber.Map{
			"amount_a": amountA.String(),
			"amount_b": amountB.String(),
		})
	}
}

func (h *PoolHandler) Swap() fiber.Handler {
	return func(c fiber.Ctx) error {
		var req SwapRequest
		if err := c.Bind().Body(&req); err != nil {
			h.logger.Debug("failed to bind request body", "err", err)
			return ErrInvalidRequestBody
		}

		trader, err := h.parseAddress("trader", req.Trader)
		if err != nil {
			return err
		}
		assetIn, err := h.parseAddress("asset_in", req.AssetIn)
		if err != nil {
			return err
		}
		assetOut, err := h.parseAddress("asset_out", req.AssetOut)
		if err != nil {
			return err
		}
		amountIn, err := h.parseAmount(req.AmountIn)
		if err != nil {
			return err
		}

		amountOut, err := h.service.Swap(context.Background(), trader, assetIn, assetOut, amountIn, []byte(req.Data))
		if err != nil {
			return h.handleServiceError(err)
		}

		h.logger.Debug("swap executed", "trader", req.Trader, "in", amountIn.String(), "out", amountOut.String())
		return c.JSON(fiber.Map{
			"amount_out": amountOut.String(),
		})
	}
}

func (h *PoolHandler) WithdrawFee() fiber.Handler {
	return func(c fiber.Ctx) error {
		var req WithdrawFeeRequest
		if err := c.Bind().Body(&req); err != nil {
			h.logger.Debug("failed to bind request body", "err", err)
			return ErrInvalidRequestBody
		}

		caller, err := h.parseAddress("caller", req.Caller)
		if err != nil {
			return err
		}

		amount, err := h.service.WithdrawFee(context.Background(), caller)
		if err != nil {
			return h.handleServiceError(err)
		}

		return c.JSON(fiber.Map{
			"amount": amount.String(),
		})
	}
}

func (h *PoolHandler) Faucet() fiber.Handler {
	return func(c fiber.Ctx) error {
		var req FaucetRequest
		if err := c.Bind().Body(&req); err != nil {
			h.logger.Debug("failed to bind request body", "err", err)
			return ErrInvalidRequestBody
		}

		asset, err := h.parseAddress("asset", req.Asset)
		if err != nil {
			return err
		}
		to, err := h.parseAddress("to", req.To)
		if err != nil {
			return err
		}
		amount, err := h.parseAmount(req.Amount)
		if err != nil {
			return err
		}

		if err := h.service.Faucet(context.Background(), asset, to, amount); err != nil {
			return h.handleServiceError(err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func (h *PoolHandler) parseAddress(field, value string) (common.Address, error) {
	if value == "" {
		return common.Address{}, NewAddressRequired(field)
	}
	if !common.IsHexAddress(value) {
		return common.Address{}, NewInvalidAddress(field)
	}
	return common.HexToAddress(value), nil
}

func (h *PoolHandler) parseAmount(amountStr string) (*big.Int, error) {
	if amountStr == "" {
		return nil, ErrAmountRequired
	}

	amount, ok := new(big.Int).SetString(amountStr, 10)
	if !ok {
		return nil, ErrInvalidAmountFormat
	}

	if amount.Sign() <= 0 {
		return nil, ErrAmountNonPositive
	}

	return amount, nil
}

func (h *PoolHandler) handleServiceError(err error) error {
	if mapped := mapPoolError(err); mapped != nil {
		return mapped
	}
	h.logger.Error("pool operation failed", "err", err)
	return ErrPoolInternal
}
