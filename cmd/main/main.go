package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portfolio-observer/src/cache"
	"portfolio-observer/src/classifier"
	"portfolio-observer/src/config"
	"portfolio-observer/src/data_source/sina"
	"portfolio-observer/src/engine"
	"portfolio-observer/src/interfaces"
	"portfolio-observer/src/logger"
	"portfolio-observer/src/network"
	"portfolio-observer/src/server"
	"portfolio-observer/src/storage"
	"portfolio-observer/src/utils"
)

// -----------------------------------------------------------------------------

func main() {

	// Parse command line flags
	configPath := flag.String("config", "config/default.yaml", "path to config file")
	flag.Parse()

	// Load config from YAML file
	conf, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	appLogger := logger.NewLogger(conf.LogLevel, conf.Name)

	// Trading window first: the daily cache stamps dates in its time zone
	window := utils.NewTradingWindow(conf.MConfig, appLogger)

	// Slot backend for the daily terminal-state cache
	slot, err := setupSlot(conf, appLogger)
	if err != nil {
		appLogger.Critical("Failed to init slot store: %v", err)
	}
	defer slot.Close()

	cacheStore := cache.NewDailyCacheStore(slot, appLogger, window.Location())

	// Quote pipeline
	var netMgr interfaces.INetworkManager = network.NewAsyncNetworkManager(conf.MConfig, appLogger)
	var source interfaces.IQuoteSource = sina.NewSinaQuoteSource(conf.MConfig, netMgr, conf.DisplayNames())
	cls := classifier.NewThresholdClassifier(conf.Refresh.ThresholdPolicy)

	eng := engine.NewResolutionEngine(cacheStore, source, cls, appLogger)
	aggregator := engine.NewPortfolioAggregator(conf.MConfig, eng, appLogger)

	// Serving surface
	var srv interfaces.IDataExchanger = server.NewAPIServer(conf.MConfig, appLogger)
	go func() {
		if err := srv.Start(); err != nil {
			appLogger.Error("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	appLogger.Info("Starting observe loop (interval %ds, off-hours policy %s)...",
		conf.Refresh.IntervalSeconds, conf.Refresh.OffHoursPolicy)

	firstRun := true
	for {
		now := time.Now()

		// Under the suspend policy the loop itself skips fetching when the
		// market is closed; the first run always populates a snapshot.
		if firstRun || conf.Refresh.OffHoursPolicy != utils.PolicySuspend || window.IsTradingNow(now) {
			snap, err := aggregator.Observe()
			if err != nil {
				appLogger.Error("Observation run failed: %v", err)
			} else {
				snap.NextWakeSeconds = window.NextWakeDuration(time.Now()).Seconds()
				srv.UpdateSnapshot(snap)
				srv.Broadcast(snap)
			}
		} else {
			appLogger.Info("Market closed, skipping fetch")
		}
		firstRun = false

		wake := window.NextWakeDuration(time.Now())
		appLogger.Info("Next wake in %v", wake)

		select {
		case <-time.After(wake):
		case <-quit:
			appLogger.Info("Shutting down...")
			return
		}
	}
}

// -----------------------------------------------------------------------------

func setupSlot(conf *config.Config, log *logger.Logger) (interfaces.ISlotStore, error) {
	switch conf.Storage.SlotType {
	case "sqlite":
		return storage.NewSQLiteSlot(conf.Storage.SlotPath, log)
	case "postgres":
		return storage.NewPostgresSlot(conf.Storage.DBConnectionString, log)
	default:
		return storage.NewFileSlot(conf.Storage.SlotPath, log), nil
	}
}
