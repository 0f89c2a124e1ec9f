package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"YieldSentinel/internal/chart"
	"YieldSentinel/internal/collector"
	"YieldSentinel/internal/config"
	"YieldSentinel/internal/notifier"
	"YieldSentinel/internal/recorder"
	"YieldSentinel/internal/scheduler"
	"YieldSentinel/internal/screener"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] YieldSentinel starting...")

	// Optional .env for local runs
	if err := godotenv.Load(); err == nil {
		log.Println("[INFO] loaded .env")
	}

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher and pipeline
	fetcher := collector.NewYahooFetcher(cfg.Screen.MarketSuffix, cfg.Screen.MaxWorkers, cfg.Proxy)
	log.Printf("[INFO] data source: %s, %d symbols", fetcher.Name(), len(cfg.Screen.Symbols))
	pipeline := screener.NewPipeline(fetcher, screener.NewHeuristicNormalizer(), cfg.Screen.ChartPeriod)

	// Init Discord notifier and chart renderer
	dn := notifier.NewDiscordNotifier(cfg.Discord.WebhookURL, cfg.Discord.Username, cfg.Proxy)
	cr := chart.NewRenderer()

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, pipeline, cr, dn, rec, cfg.Screen.Symbols, cfg.Screen.Threshold)
	if err := sched.Register(cfg.Schedule.DailyCron); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing screen now")
		go sched.RunNow()
	}

	log.Println("[INFO] YieldSentinel is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] YieldSentinel stopped")
}
