package config

import (
	"flag"
	"log"
	"os"
	"strings"
	"time"
)

// WatchConfig holds the configuration settings for the terminal watcher.
type WatchConfig struct {
	ServerAddr      string        // Server address (must include http(s)://)
	RefreshInterval time.Duration // Counter table refresh cadence
	RateInterval    time.Duration // Rate readout refresh cadence
	ClientTimeout   time.Duration // HTTP client timeout
}

// NewWatchConfig creates and returns a new WatchConfig by parsing flags and
// environment variables.
func NewWatchConfig() *WatchConfig {
	cfg := &WatchConfig{}
	flag.StringVar(&cfg.ServerAddr, "a", "http://localhost:8080", "server address (must include http(s)://)")
	flag.DurationVar(&cfg.RefreshInterval, "p", 100*time.Millisecond, "counter refresh interval")
	flag.DurationVar(&cfg.RateInterval, "r", time.Second, "rate refresh interval")
	flag.DurationVar(&cfg.ClientTimeout, "t", 2*time.Second, "client timeout")
	flag.Parse()

	readWatchEnvironment(cfg)

	if !strings.HasPrefix(cfg.ServerAddr, "http://") && !strings.HasPrefix(cfg.ServerAddr, "https://") {
		cfg.ServerAddr = "http://" + cfg.ServerAddr
	}

	return cfg
}

func readWatchEnvironment(cfg *WatchConfig) {
	if addr := os.Getenv("ADDRESS"); addr != "" {
		cfg.ServerAddr = addr
	}

	if refreshEnv := os.Getenv("REFRESH_INTERVAL"); refreshEnv != "" {
		d, err := time.ParseDuration(refreshEnv)
		if err == nil {
			cfg.RefreshInterval = d
		} else {
			log.Printf("invalid REFRESH_INTERVAL env var: %v", err)
		}
	}

	if rateEnv := os.Getenv("RATE_INTERVAL"); rateEnv != "" {
		d, err := time.ParseDuration(rateEnv)
		if err == nil {
			cfg.RateInterval = d
		} else {
			log.Printf("invalid RATE_INTERVAL env var: %v", err)
		}
	}
}
