package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"storefront/internal"
)

func main() {
	configPath := flag.String("config", filepath.Join(internal.GetProjectRoot(), internal.DefaultConfigFile), "Path to the YAML config file")
	flag.Parse()

	cfg, err := internal.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := internal.NewLogger(cfg.Log)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Close()

	if err := run(cfg, logger.Logger); err != nil {
		logger.Error("server stopped", slog.Any("err", err))
		os.Exit(1)
	}
}

func run(cfg internal.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := internal.SetupTracing(cfg.Tracing, os.Stdout)
	if err != nil {
		return err
	}
	defer shutdownTracing(context.Background())

	products := internal.DefaultProducts(cfg.Currency)
	if cfg.CatalogFile != "" {
		if products, err = internal.LoadCatalog(cfg.CatalogFile, cfg.Currency); err != nil {
			return err
		}
	}

	hash, err := internal.ReadCodeHash(internal.GetProjectRoot())
	if err != nil {
		return err
	}

	var receipts internal.ReceiptSink = internal.NewMemoryReceipts(cfg.Receipts.Keep)
	if cfg.Receipts.RedisURL != "" {
		rr, err := internal.NewRedisReceipts(ctx, cfg.Receipts.RedisURL, cfg.Receipts.Key, cfg.Receipts.Keep)
		if err != nil {
			return err
		}
		defer rr.Close()
		receipts = rr
	}

	store := internal.NewStore(products, logger)
	shop := internal.NewShop(store, internal.ShopOptions{
		Currency: cfg.Currency,
		Verifier: internal.NewCodeVerifier(hash),
		Receipts: receipts,
		Logger:   logger,
	})

	var mw []mux.MiddlewareFunc
	if cfg.Tracing.Enabled {
		mw = append(mw, internal.TracingMiddleware(cfg.Tracing.ServiceName))
	}
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           internal.NewAPI(shop, logger).Router(mw...),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		if cfg.TLS.Enabled() {
			if _, err := internal.CheckServingCert(cfg.TLS.CertFile, time.Now()); err != nil {
				errc <- err
				return
			}
			errc <- srv.ListenAndServeTLS(cfg.TLS.CertFile, cfg.TLS.KeyFile)
			return
		}
		errc <- srv.ListenAndServe()
	}()
	logger.Info("server running",
		slog.String("addr", cfg.Addr),
		slog.Int("products", len(products)),
		slog.Bool("tls", cfg.TLS.Enabled()),
		slog.Bool("redis_receipts", cfg.Receipts.RedisURL != ""))

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
