package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/mythweaver/internal/clients/dnd5e"
	"github.com/KirkDiggler/mythweaver/internal/clients/opening"
	"github.com/KirkDiggler/mythweaver/internal/config"
	"github.com/KirkDiggler/mythweaver/internal/dice"
	"github.com/KirkDiggler/mythweaver/internal/handlers/discord"
	"github.com/KirkDiggler/mythweaver/internal/logger"
	"github.com/KirkDiggler/mythweaver/internal/metrics"
	"github.com/KirkDiggler/mythweaver/internal/repositories/campaigns"
	"github.com/KirkDiggler/mythweaver/internal/services"
	"github.com/KirkDiggler/mythweaver/internal/services/bestiary"
)

// CR range pulled from the D&D 5e API when the bestiary is enabled
const (
	bestiaryMinCR = 0
	bestiaryMaxCR = 1
)

func main() {
	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.ValidateDiscord(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	zl, err := logger.New(logger.Config{Level: cfg.Log.Level, Encoding: cfg.Log.Encoding})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if envErr != nil {
		zl.Info("No .env file found")
	}
	zl.Info("Starting bot",
		zap.String("app_id", cfg.Discord.AppID),
		zap.String("guild_id", cfg.Discord.GuildID),
		zap.String("store", cfg.Store.Backend))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Fall back to memory when the configured store is unreachable
	opened, err := campaigns.OpenStore(ctx, cfg.Store)
	if err != nil {
		zl.Warn("Falling back to in-memory campaign store", zap.String("backend", cfg.Store.Backend), zap.Error(err))
		opened, _ = campaigns.OpenStore(ctx, config.StoreConfig{Backend: "memory"})
	}
	defer func() {
		if err := opened.Close(); err != nil {
			zl.Error("Failed to close campaign store", zap.Error(err))
		}
	}()

	src := dice.NewSource(time.Now().UnixNano())
	beasts := newBestiary(ctx, zl, src, cfg.Engine.UseDND5EBestiary)

	var openingClient opening.Client = opening.NewPlaceholder()
	if cfg.Opening.URL != "" {
		openingClient, err = opening.New(&opening.Config{BaseURL: cfg.Opening.URL, Timeout: cfg.Opening.Timeout})
		if err != nil {
			zl.Fatal("Failed to create opening client", zap.Error(err))
		}
	}

	provider, err := services.NewProvider(&services.ProviderConfig{
		Engine: cfg.Engine,
		Repository: campaigns.NewRepository(&campaigns.RepositoryConfig{
			Store:   opened.Store,
			Logger:  zl,
			Metrics: m,
		}),
		Opening:  openingClient,
		Bestiary: beasts,
		Source:   src,
		Metrics:  m,
		Logger:   zl,
	})
	if err != nil {
		zl.Fatal("Failed to create services", zap.Error(err))
	}

	handler := discord.NewHandler(&discord.HandlerConfig{
		ServiceProvider: provider,
		LogDisplayLines: cfg.Engine.LogDisplayLines,
		Logger:          zl,
	})

	dg, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		zl.Fatal("Failed to create Discord session", zap.Error(err))
	}
	dg.AddHandler(discord.RecoverMiddleware(zl, "interaction", handler.HandleInteraction))

	if err := dg.Open(); err != nil {
		zl.Fatal("Failed to open Discord connection", zap.Error(err))
	}
	defer func() {
		if err := dg.Close(); err != nil {
			zl.Error("Failed to close Discord connection", zap.Error(err))
		}
	}()

	// Use empty string for global commands, or set a specific guild ID for testing
	if err := handler.RegisterCommands(dg, cfg.Discord.GuildID); err != nil {
		zl.Error("Failed to register commands", zap.Error(err))
		return
	}
	if cfg.Discord.GuildID == "" {
		zl.Info("Registered global commands (may take up to 1 hour to propagate)")
	}

	metricsServer := &http.Server{
		Addr:              cfg.Metrics.Addr,
		Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		zl.Info("Serving metrics", zap.String("addr", cfg.Metrics.Addr))
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return metricsServer.Shutdown(shutdownCtx)
	})

	zl.Info("Bot is now running. Press CTRL-C to exit.")
	if err := g.Wait(); err != nil {
		zl.Error("Shutting down after error", zap.Error(err))
		return
	}
	zl.Info("Shutting down...")
}

// newBestiary builds the enemy pool, optionally refreshed from the D&D 5e API
func newBestiary(ctx context.Context, zl *zap.Logger, src dice.Source, useAPI bool) bestiary.Service {
	if !useAPI {
		return bestiary.NewService(&bestiary.ServiceConfig{Source: src, Logger: zl})
	}

	client, err := dnd5e.New(&dnd5e.Config{
		HttpClient: &http.Client{Timeout: 30 * time.Second},
		Logger:     zl,
	})
	if err != nil {
		zl.Warn("D&D 5e client unavailable, keeping static bestiary", zap.Error(err))
		return bestiary.NewService(&bestiary.ServiceConfig{Source: src, Logger: zl})
	}

	beasts := bestiary.NewService(&bestiary.ServiceConfig{Source: src, DNDClient: client, Logger: zl})
	if err := beasts.LoadFromAPI(ctx, bestiaryMinCR, bestiaryMaxCR); err != nil {
		zl.Warn("Failed to load bestiary, keeping static templates", zap.Error(err))
	}
	return beasts
}
