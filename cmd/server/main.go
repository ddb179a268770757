package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/DoyleJ11/hoops-draft-backend/internal/config"
	"github.com/DoyleJ11/hoops-draft-backend/internal/discord"
	"github.com/DoyleJ11/hoops-draft-backend/internal/httpapi"
	"github.com/DoyleJ11/hoops-draft-backend/internal/hub"
	"github.com/DoyleJ11/hoops-draft-backend/internal/random"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
	logger, lerr := zcfg.Build()
	if lerr != nil {
		log.Fatal(lerr)
	}
	defer logger.Sync()

	if err != nil {
		logger.Info("no .env file loaded", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seeds := random.New(cfg.RNGSeed)
	h := hub.NewHub(ctx, func() random.Source { return random.New(seeds.Int63()) }, logger)

	// Build the router *with* the hub injected
	handler := httpapi.SetupRoutes(httpapi.Deps{
		Hub:            h,
		Discord:        discord.NewClient(cfg.DiscordWebhookURL),
		Log:            logger,
		Team1Name:      cfg.Team1Name,
		Team2Name:      cfg.Team2Name,
		AllowedOrigins: cfg.AllowedOrigins,
	})
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: handler}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		h.Inbox() <- hub.ShutdownHub{}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
