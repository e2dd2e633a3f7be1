// cmd/discord/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"babble-bot/internal/bot"
	"babble-bot/internal/command"
	"babble-bot/internal/config"
	"babble-bot/internal/cooldown"
	"babble-bot/internal/discord"
	"babble-bot/internal/httpapi"
	"babble-bot/internal/middleware"
	"babble-bot/internal/observability"
	"babble-bot/internal/respond"
	"babble-bot/internal/storage"
	"babble-bot/internal/translate"
	v "babble-bot/internal/version"
	"babble-bot/pkg/cmd"
)

const metricsNamespace = "babble"

func main() {
	if err := run(); err != nil {
		log.Fatal("[ERR] ", err)
	}
}

// run returns once the bot has shut down and history has been flushed.
func run() error {
	log.Printf("[INFO] Starting %v bot...", v.AppName)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.New()

	store := storage.Open(cfg.Paths(), storage.WithRetention(cfg.HistoryRetention))

	if cfg.BackupInterval > 0 {
		scheduler, err := storage.StartBackups(store, cfg.BackupInterval, cfg.BackupKeep)
		if err != nil {
			return err
		}
		defer scheduler.Stop()
	}

	metrics := observability.NewMetrics(metricsNamespace)

	registry := cmd.NewRegistry()
	command.RegisterDefaults(registry,
		middleware.WithRecover(),
		middleware.WithMetrics(metrics),
		middleware.WithCommandLogger(),
	)

	dg, err := discord.New(cfg.DiscordToken)
	if err != nil {
		return err
	}

	handler := bot.NewHandler(
		store,
		dg,
		translate.NewGoogle(cfg.TranslateEndpoint, cfg.TranslateTimeout),
		registry,
		respond.New(respond.WithChance(cfg.BabbleChance)),
		cooldown.New(cfg.Cooldown),
		command.Settings{SourcePath: cfg.BotSourcePath, TargetLang: cfg.TranslateTarget},
		bot.WithMetrics(metrics),
	)
	defer func() {
		if err := handler.Close(); err != nil {
			log.Println("[ERR] Final history save failed:", err)
			return
		}
		log.Println("[DONE] History saved")
	}()

	metrics.TrackGauge(metricsNamespace, "pending_babble_jobs", "Babble replies waiting to be sent.", func() float64 {
		return float64(handler.PendingJobs())
	})

	if cfg.MetricsAddr != "" {
		srv := httpapi.New(store, handler, metrics)
		go func() {
			if err := srv.Run(ctx, cfg.MetricsAddr); err != nil {
				log.Println("[ERR] Metrics server error:", err)
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		if err := dg.Run(ctx, handler); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Printf("[INFO] Received signal %s, shutting down...\n", s)
		cancel()
		<-errCh
	case err, ok := <-errCh:
		cancel()
		if ok && err != nil {
			return fmt.Errorf("discord bot: %w", err)
		}
	}

	log.Println("[INFO] Discord bot exited cleanly")
	return nil
}
