package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/config"
	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/infra"
	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/repository"
	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/router"
	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	// Worker pool for async tasks (receipts, closing emails). Handlers are
	// wired here at the composition root with full access to infrastructure.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	printerCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	printer := infra.NewPrinterClient(cfg.PrinterAgentURL, printerCB)
	mailer := infra.NewMailer(cfg)

	transacaoRepo := repository.NewTransacaoRepository(db)
	usuarioRepo := repository.NewUsuarioRepository(db)

	handlers := map[string]worker.Handler{
		"recibo": worker.NewReciboWorker(transacaoRepo, usuarioRepo, printer, cfg.PDFStoragePath),
		"email":  worker.NewEmailWorker(mailer),
	}
	worker.StartWorkerPool(ctx, rdb, handlers, cfg.WorkerPoolSize)

	r := router.New(cfg, db, rdb, printer)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("g5-distribuidora-api listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
