package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexrttr/qt-table-increment/internal/buildinfo"
	"github.com/alexrttr/qt-table-increment/internal/client"
	"github.com/alexrttr/qt-table-increment/internal/config"
)

func main() {
	buildinfo.PrintBuildInfo()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.NewWatchConfig()

	if err := run(ctx, client.New(cfg), cfg); err != nil {
		log.Fatal(err)
	}
}

// run polls the counter table on the refresh cadence and the frequency
// readout on the slower rate cadence.
func run(ctx context.Context, cl *client.Client, cfg *config.WatchConfig) error {
	ratio := int(cfg.RateInterval / cfg.RefreshInterval)
	if ratio < 1 {
		ratio = 1
	}

	ticker := time.NewTicker(cfg.RefreshInterval)
	defer ticker.Stop()

	frequency := "-.-- Hz"
	tics := 0

	for {
		select {
		case <-ctx.Done():
			fmt.Println()
			return nil
		case <-ticker.C:
		}
		tics++

		snap, err := cl.Snapshot(ctx)
		if err != nil {
			log.Printf("failed to fetch counters: %v", err)
			continue
		}

		if tics%ratio == 0 {
			rate, ok, err := cl.Rate(ctx)
			if err != nil {
				log.Printf("failed to fetch rate: %v", err)
			} else if ok {
				frequency = rate.Display
			}
		}

		fmt.Printf("\rcounters=%v  frequency: %s   ", snap.Counters, frequency)
	}
}
