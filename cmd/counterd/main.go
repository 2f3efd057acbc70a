package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/alexrttr/qt-table-increment/internal/buildinfo"
	"github.com/alexrttr/qt-table-increment/internal/config"
	"github.com/alexrttr/qt-table-increment/internal/counter"
	"github.com/alexrttr/qt-table-increment/internal/server"
	"github.com/alexrttr/qt-table-increment/internal/utils"
	"github.com/alexrttr/qt-table-increment/storage"
	"github.com/alexrttr/qt-table-increment/storage/file"
	"github.com/alexrttr/qt-table-increment/storage/postgres"
)

func main() {
	buildinfo.PrintBuildInfo()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config := config.NewServerConfig()
	logger := config.Logger

	logger.Infof("Server config: Addr=%s, TickInterval=%s, SampleInterval=%s, FileStoragePath=%q, Restore=%t, DatabaseDSN set=%t",
		config.Addr,
		config.TickInterval,
		config.SampleInterval,
		config.FileStoragePath,
		config.Restore,
		config.DatabaseDsn != "",
	)

	var gateway storage.Gateway
	if config.DatabaseDsn != "" {
		pg, err := postgres.NewGateway(ctx, config.DatabaseDsn)
		if err != nil {
			// persistence stays down but the counters still run
			logger.Errorf("failed to open database: %v", err)
			gateway = storage.Unavailable{Reason: err}
		} else {
			gateway = pg
			defer pg.Close()
		}
	} else {
		gateway = file.NewGateway(config.FileStoragePath)
	}

	store := counter.NewStore()

	if config.Restore {
		var values []int64
		err := utils.WithRetry(ctx, func() error {
			var loadErr error
			values, loadErr = gateway.Load(ctx)
			return loadErr
		})
		if err != nil {
			logger.Errorf("failed to restore counters: %v", err)
		} else {
			store.ReplaceAll(values)
			logger.Infof("restored %d counters", len(values))
		}
	}

	driver := counter.NewDriver(store, config.TickInterval, logger)
	estimator := counter.NewEstimator(store, config.SampleInterval, logger)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		driver.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		estimator.Run(ctx)
	}()

	srv := server.NewServer(store, estimator, gateway, config)
	if err := srv.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Errorf("server stopped: %v", err)
	}

	// the driver must confirm exit before the store goes away with the process
	stop()
	wg.Wait()
	logger.Info("shutdown complete")
}
