package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/flowdrop/flowdrop-go/api"
	"github.com/flowdrop/flowdrop-go/api/models"
	"github.com/flowdrop/flowdrop-go/api/progresshub"
	"github.com/flowdrop/flowdrop-go/metrics"
	"github.com/flowdrop/flowdrop-go/seed"
	"github.com/flowdrop/flowdrop-go/store"
	"github.com/flowdrop/flowdrop-go/tool"
	"github.com/flowdrop/flowdrop-go/transfer"
	"github.com/flowdrop/flowdrop-go/types"
)

func main() {
	cfg := tool.SetFlags()
	appCfg, err := tool.LoadConfig(cfg.UseConfigPath)
	if err != nil {
		tool.DefaultLogger.Fatalf("%v", err)
	}
	if cfg.UsePort > 0 {
		appCfg.Port = cfg.UsePort
	}
	if cfg.SkipSeed {
		appCfg.Seed = false
	}

	tool.InitLogger()
	switch strings.ToLower(cfg.Log) {
	case "", "dev":
		tool.DefaultLogger.SetLevel(log.DebugLevel)
	case "prod":
		tool.DefaultLogger.SetLevel(log.InfoLevel)
	case "none":
		tool.DefaultLogger.SetLevel(log.FatalLevel)
	default:
		tool.DefaultLogger.Warnf("Unknown log mode %q, using debug level", cfg.Log)
		tool.DefaultLogger.SetLevel(log.DebugLevel)
	}

	var seedFiles []types.FileRecord
	var seedSessions []types.SessionRecord
	if appCfg.Seed {
		if seedFiles, err = seed.Files(); err != nil {
			tool.DefaultLogger.Fatalf("%v", err)
		}
		if seedSessions, err = seed.Sessions(); err != nil {
			tool.DefaultLogger.Fatalf("%v", err)
		}
		tool.DefaultLogger.Infof("Seeded %d files and %d sessions", len(seedFiles), len(seedSessions))
	}

	storeLatency := store.LatencyMs(appCfg.StoreLatencyMinMs, appCfg.StoreLatencyMaxMs)
	files := store.NewFileStore(seedFiles, storeLatency)
	sessions := store.NewSessionStore(seedSessions, storeLatency)

	validator := transfer.NewValidator(appCfg.MaxFileSize, appCfg.AllowedTypes, store.LatencyMs(100, 100))
	simulator := transfer.NewSimulator(files)
	simulator.StepDelayMin = time.Duration(appCfg.StepDelayMinMs) * time.Millisecond
	simulator.StepDelayMax = time.Duration(appCfg.StepDelayMaxMs) * time.Millisecond

	hub := progresshub.New()
	recorder := &metrics.Recorder{Next: hub}
	engine := transfer.NewEngine(files, sessions, validator, simulator, recorder, appCfg.StorageCapacity)

	thumbnails := models.NewThumbnailCache()
	apiServer := api.NewServer(appCfg, engine, hub, thumbnails)
	go func() {
		if err := apiServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			tool.DefaultLogger.Fatalf("API server startup failed: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	tool.DefaultLogger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := apiServer.Stop(shutdownCtx); err != nil {
		tool.DefaultLogger.Errorf("Shutdown error: %v", err)
	}
	engine.Wait()
}
