package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"docsum/internal/app"
	"docsum/internal/bot"
	"docsum/internal/config"
	"docsum/internal/database"
	"docsum/internal/download"
	"docsum/internal/scheduler"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	start := time.Now()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.ErrorContext(ctx, "Failed to load .env",
			"error", err)

		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.ErrorContext(ctx, "Failed to load config",
			"error", err)

		return
	}

	log = cfg.NewLogger(os.Stdout)
	slog.SetDefault(log)

	if strings.TrimSpace(cfg.Token) == "" {
		log.ErrorContext(ctx, "TOKEN is required",
			"envVar", "TOKEN")

		return
	}

	db, err := database.New(ctx, cfg.DBPath, log)
	if err != nil {
		log.ErrorContext(ctx, "Failed to initialize db",
			"error", err,
			"dbPath", cfg.DBPath)

		return
	}
	defer func() {
		if err = db.Close(); err != nil {
			log.ErrorContext(ctx, "Failed to close db",
				"error", err,
				"dbPath", cfg.DBPath)
		}
	}()
	log.InfoContext(ctx, "DB is initialized",
		"dbPath", cfg.DBPath)

	p := app.NewPipeline(app.NewSummarizer(ctx, cfg, log), cfg)
	fetcher := download.NewFetcher(cfg.TempDir, cfg.MaxDownloadBytes, log)

	botInst, err := bot.New(cfg.Token, db, p, fetcher, cfg.AllowedUsers, cfg.MaxDownloadBytes, log)
	if err != nil {
		log.ErrorContext(ctx, "Failed to initialize bot",
			"error", err,
			"allowedUsersCount", len(cfg.AllowedUsers))

		return
	}
	log.InfoContext(ctx, "Bot is initialized",
		"allowedUsersCount", len(cfg.AllowedUsers))

	sched := scheduler.New(ctx, cfg.TempDir, download.TempFilePattern, cfg.TempFileTTL, log)

	if err = sched.Start(); err != nil {
		log.ErrorContext(ctx, "Failed to start scheduler",
			"error", err,
			"spec", scheduler.SweepSpec,
			"tempDir", cfg.TempDir)

		return
	}
	defer sched.Stop()
	log.InfoContext(ctx, "Scheduler is started",
		"spec", scheduler.SweepSpec,
		"tempDir", cfg.TempDir,
		"tempFileTTL", cfg.TempFileTTL.String())

	botDone := make(chan struct{})
	go func() {
		defer close(botDone)
		botInst.Start(ctx)
	}()
	log.InfoContext(ctx, "Bot is started",
		"updateTimeoutSeconds", bot.BotUpdateTimeout)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	sig := <-c
	log.InfoContext(ctx, "Shutdown signal is received",
		"signal", sig.String())
	cancel()

	log.InfoContext(ctx, "Exiting...",
		"signal", sig.String(),
		"uptimeSeconds", time.Since(start).Seconds())

	stopAfter(botDone, botInst)
	log.InfoContext(ctx, "Bot is stopped",
		"uptimeSeconds", time.Since(start).Seconds())
}

type stopper interface {
	Stop()
}

// stopAfter waits for the update loop to return before stopping s. In-flight
// updates still use the db and remove their temp files.
func stopAfter(done <-chan struct{}, s stopper) {
	<-done
	s.Stop()
}
