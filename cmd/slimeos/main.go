package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/SlimeOS/internal/apps"
	"github.com/GriffinCanCode/SlimeOS/internal/debugserver"
	"github.com/GriffinCanCode/SlimeOS/internal/devices"
	"github.com/GriffinCanCode/SlimeOS/internal/infrastructure/config"
	"github.com/GriffinCanCode/SlimeOS/internal/infrastructure/logging"
	"github.com/GriffinCanCode/SlimeOS/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/SlimeOS/internal/kernel"
	"github.com/GriffinCanCode/SlimeOS/internal/settings"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "slimeos: %v\n", err)
		return 2
	}

	logCfg := logging.DefaultConfig()
	if cfg.Logging.Development {
		logCfg = logging.DevelopmentConfig()
	}
	logCfg.Level = cfg.Logging.Level
	logCfg.BufferSize = cfg.Logging.Buffer
	logger, err := logging.New(logCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "slimeos: init logger: %v\n", err)
		return 2
	}
	defer logger.Sync()

	registry := devices.Default()
	profile, err := registry.Get(cfg.Device.Name)
	if err != nil {
		logger.Error("Unknown device profile", zap.Error(err))
		return 2
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := monitoring.NewMetrics(reg)

	store, err := settings.New(cfg.Settings.Path, logger.Named("settings"))
	if err != nil {
		logger.Error("Invalid settings path", zap.String("path", cfg.Settings.Path), zap.Error(err))
		return 2
	}
	if err := store.Load(); err != nil {
		logger.Warn("Failed to load settings, using defaults", zap.Error(err))
	}

	catalog, launcher, err := apps.Builtins()
	if err != nil {
		logger.Error("Failed to build app catalog", zap.Error(err))
		return 2
	}

	k := kernel.New(*cfg, profile,
		kernel.WithLogger(logger),
		kernel.WithMetrics(metrics),
		kernel.WithSettings(store),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := debugserver.Deps{
		Kernel:   k,
		Ring:     logger.Ring(),
		Metrics:  metrics,
		Gatherer: reg,
	}
	if sim, ok := profile.(*devices.Simulator); ok {
		deps.Device = sim
		go func() {
			if err := sim.FeedKeys(ctx, os.Stdin, logger.Named("stdin")); err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("Key input closed", zap.Error(err))
			}
		}()
	}
	if cfg.Debug.Addr != "" {
		srv := debugserver.New(debugserver.DefaultConfig(cfg.Debug.Addr), deps, logger.Logger)
		go func() {
			if err := srv.Run(ctx); err != nil {
				logger.Error("Debug server stopped", zap.Error(err))
			}
		}()
	}

	logger.Info("Booting SlimeOS",
		zap.String("device", profile.Name()),
		zap.Int("apps", catalog.Len()),
		zap.Strings("devices", registry.List()),
	)
	err = k.Boot(ctx, launcher)

	if saveErr := store.Save(); saveErr != nil {
		logger.Error("Failed to save settings", zap.Error(saveErr))
	}

	var driverErr *kernel.DriverInitError
	switch {
	case err == nil, errors.Is(err, context.Canceled):
		logger.Info("Shut down", zap.String("state", k.State().String()))
		return 0
	case errors.As(err, &driverErr):
		logger.Error("Driver initialization failed",
			zap.String("driver", driverErr.Driver),
			zap.String("device", driverErr.Device),
			zap.Error(driverErr.Err),
		)
		return 1
	default:
		logger.Error("Kernel halted", zap.Error(err))
		return 1
	}
}
