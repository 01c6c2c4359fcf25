package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/joho/godotenv"

	"github.com/nulln0ne/amm-pool/internal/config"
	"github.com/nulln0ne/amm-pool/internal/handler"
	"github.com/nulln0ne/amm-pool/internal/ledger"
	"github.com/nulln0ne/amm-pool/internal/logging"
	"github.com/nulln0ne/amm-pool/internal/pool"
	"github.com/nulln0ne/amm-pool/internal/service"
	"github.com/nulln0ne/amm-pool/internal/storage"
	"github.com/nulln0ne/amm-pool/internal/storage/postgres"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	logger := logging.NewLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var journal storage.Journal
	var pgJournal *postgres.Journal
	if cfg.DatabaseURL != "" {
		pgJournal, err = postgres.NewJournal(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %w", err)
		}
		if err := pgJournal.EnsureSchema(ctx); err != nil {
			pgJournal.Close()
			return fmt.Errorf("failed to prepare event schema: %w", err)
		}
		journal = pgJournal
	} else {
		journal = storage.NewJsonlJournal(cfg.JournalPath)
	}

	bookA := ledger.NewBook(cfg.AssetA)
	bookB := ledger.NewBook(cfg.AssetB)
	shares := ledger.NewBook(cfg.ShareAsset)

	engine, err := pool.New(pool.Config{
		Account: cfg.PoolAccount,
		Admin:   cfg.Admin,
		AssetA:  bookA,
		AssetB:  bookB,
		Shares:  shares,
		Journal: journal,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("failed to construct pool: %w", err)
	}

	poolService := service.NewPoolService(logger, engine, bookA, bookB)
	poolHandler := handler.NewPoolHandler(logger, poolService)

	app := fiber.New()
	app.Get("/pool", poolHandler.GetPool())
	app.Get("/reserves", poolHandler.GetReserves())
	app.Post("/liquidity/add", poolHandler.AddLiquidity())
	app.Post("/liquidity/remove", poolHandler.RemoveLiquidity())
	app.Post("/swap", poolHandler.Swap())
	app.Post("/fee/withdraw", poolHandler.WithdrawFee())
	app.Post("/faucet", poolHandler.Faucet())

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(cfg.Addr)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			_ = app.Shutdown()
			if pgJournal != nil {
				pgJournal.Close()
			}
			return fmt.Errorf("server error: %w", err)
		}
		if pgJournal != nil {
			pgJournal.Close()
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_ = app.Shutdown()

	if pgJournal != nil {
		pgJournal.Close()
	}

	<-shutdownCtx.Done()
	return nil
}
