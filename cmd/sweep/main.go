package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"fatturo/internal/config"
	"fatturo/internal/logger"
	"fatturo/internal/repository/postgres"
	"fatturo/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("sweep worker exited")
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := logger.Setup(cfg.Log.Level, cfg.Log.Format); err != nil {
		return err
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	invoiceRepo := postgres.NewInvoiceRepo(db)
	clientRepo := postgres.NewClientRepo(db)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, clientRepo, cfg.Sequence)
	sweeper := service.NewOverdueSweeper(invoiceSvc, cfg.Sweep.Interval)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sweeper.Start(ctx)
	return nil
}
