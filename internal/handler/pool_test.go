package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gofiber/fiber/v3"

	"github.com/nulln0ne/amm-pool/internal/ledger"
	"github.com/nulln0ne/amm-pool/internal/pool"
	"github.com/nulln0ne/amm-pool/internal/service"
)

var (
	assetA     = common.HexToAddress("0x00000000000000000000000000000000000000aa")
	assetB     = common.HexToAddress("0x00000000000000000000000000000000000000bb")
	shareAsset = common.HexToAddress("0x00000000000000000000000000000000000000cc")
	poolAcct   = common.HexToAddress("0x0000000000000000000000000000000000001001")
	admin      = common.HexToAddress("0x000000000000000000000000000000000000ad00")
	alice      = common.HexToAddress("0x0000000000000000000000000000000000000a11")
)

func newApp(t *testing.T) (*fiber.App, *ledger.Book, *ledger.Book) {
	t.Helper()

	bookA := ledger.NewBook(assetA)
	bookB := ledger.NewBook(assetB)
	shares := ledger.NewBook(shareAsset)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	p, err := pool.New(pool.Config{
		Account: poolAcct,
		Admin:   admin,
		AssetA:  bookA,
		AssetB:  bookB,
		Shares:  shares,
		Logger:  logger,
	})
	if err != nil {
		t.Fatalf("pool.New: %v", err)
	}

	svc := service.NewPoolService(logger, p, bookA, bookB)
	h := NewPoolHandler(logger, svc)

	app := fiber.New()
	app.Get("/pool", h.GetPool())
	app.Get("/reserves", h.GetReserves())
	app.Post("/liquidity/add", h.AddLiquidity())
	app.Post("/liquidity/remove", h.RemoveLiquidity())
	app.Post("/swap", h.Swap())
	app.Post("/fee/withdraw", h.WithdrawFee())
	app.Post("/faucet", h.Faucet())

	return app, bookA, bookB
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]string {
	t.Helper()
	var out map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func TestPoolHandler_FullFlow(t *testing.T) {
	app, _, bookB := newApp(t)

	// seed balances through the faucet
	resp := postJSON(t, app, "/faucet", `{"asset":"`+assetA.Hex()+`","to":"`+alice.Hex()+`","amount":"1000"}`)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("faucet status: %d", resp.StatusCode)
	}
	resp = postJSON(t, app, "/faucet", `{"asset":"`+assetB.Hex()+`","to":"`+alice.Hex()+`","amount":"1000"}`)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("faucet status: %d", resp.StatusCode)
	}

	resp = postJSON(t, app, "/liquidity/add",
		`{"depositor":"`+alice.Hex()+`","amount_a":"100","amount_b":"100"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("add liquidity status: %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["shares"] != "100" {
		t.Fatalf("minted shares: got %s want 100", body["shares"])
	}

	resp = postJSON(t, app, "/swap",
		`{"trader":"`+alice.Hex()+`","asset_in":"`+assetA.Hex()+`","asset_out":"`+assetB.Hex()+`","amount_in":"100"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("swap status: %d", resp.StatusCode)
	}
	body = decodeBody(t, resp)
	if body["amount_out"] != "50" {
		t.Fatalf("amount out: got %s want 50", body["amount_out"])
	}
	if bal := bookB.BalanceOf(alice); bal.Cmp(big.NewInt(950)) != 0 {
		t.Fatalf("alice B balance: got %s want 950", bal)
	}

	req := httptest.NewRequest(http.MethodGet, "/reserves", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("reserves status: %d", resp.StatusCode)
	}
	body = decodeBody(t, resp)
	if body["reserve_a"] != "200" || body["reserve_b"] != "50" {
		t.Fatalf("reserves: got %s/%s want 200/50", body["reserve_a"], body["reserve_b"])
	}
}

func TestPoolHandler_Validation(t *testing.T) {
	app, _, _ := newApp(t)

	// missing depositor
	resp := postJSON(t, app, "/liquidity/add", `{"amount_a":"100","amount_b":"100"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing depositor: got %d want 400", resp.StatusCode)
	}

	// malformed amount
	resp = postJSON(t, app, "/liquidity/add",
		`{"depositor":"`+alice.Hex()+`","amount_a":"abc","amount_b":"100"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("malformed amount: got %d want 400", resp.StatusCode)
	}

	// zero amount
	resp = postJSON(t, app, "/swap",
		`{"trader":"`+alice.Hex()+`","asset_in":"`+assetA.Hex()+`","asset_out":"`+assetB.Hex()+`","amount_in":"0"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("zero amount: got %d want 400", resp.StatusCode)
	}

	// foreign asset is an engine-level rejection surfaced as 400
	resp = postJSON(t, app, "/swap",
		`{"trader":"`+alice.Hex()+`","asset_in":"`+shareAsset.Hex()+`","asset_out":"`+assetB.Hex()+`","amount_in":"10"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("foreign asset in: got %d want 400", resp.StatusCode)
	}
}

func TestPoolHandler_WithdrawFeeAuthorization(t *testing.T) {
	app, _, _ := newApp(t)

	resp := postJSON(t, app, "/fee/withdraw", `{"caller":"`+alice.Hex()+`"}`)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("non-admin withdraw: got %d want 403", resp.StatusCode)
	}

	resp = postJSON(t, app, "/fee/withdraw", `{"caller":"`+admin.Hex()+`"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin withdraw: got %d want 200", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["amount"] != "0" {
		t.Fatalf("empty fee withdraw: got %s want 0", body["amount"])
	}
}
