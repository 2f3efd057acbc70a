// Package config provides application configuration structures and helpers.
package config

import (
	"flag"
	"log"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// ServerConfig holds the configuration settings for the counter server.
type ServerConfig struct {
	Addr            string // HTTP server address
	Logger          *zap.SugaredLogger
	TickInterval    time.Duration // Pause between increment passes
	SampleInterval  time.Duration // Rate estimator sampling cadence
	FileStoragePath string        // Path to the counters file
	DatabaseDsn     string        // Data Source Name for PostgreSQL
	Restore         bool          // Whether to load counters from storage on startup
}

// NewServerConfig creates and returns a new ServerConfig by parsing flags,
// environment variables and an optional JSON config file. Precedence is
// env > flags > JSON > defaults.
func NewServerConfig() *ServerConfig {
	logCfg := zap.NewProductionConfig()
	logCfg.OutputPaths = []string{"stdout", "counterd.log"}
	logger := zap.Must(logCfg.Build())

	// 0) defaults
	cfg := &ServerConfig{
		Addr:            "localhost:8080",
		TickInterval:    time.Millisecond,
		SampleInterval:  time.Second,
		FileStoragePath: "./tmp/counters.json",
		Restore:         true,
	}

	// 1) flags
	var fAddr strFlag
	fAddr.v = cfg.Addr
	var fTick durFlag
	fTick.v = cfg.TickInterval
	var fSample durFlag
	fSample.v = cfg.SampleInterval
	var fFile strFlag
	fFile.v = cfg.FileStoragePath
	var fRestore boolFlag
	fRestore.v = cfg.Restore
	var fDSN strFlag
	var fConf strFlag // -c / -config

	flag.Var(&fAddr, "a", "HTTP server address")
	flag.Var(&fTick, "i", "increment tick interval")
	flag.Var(&fSample, "s", "rate sample interval")
	flag.Var(&fFile, "f", "path to counters file")
	flag.Var(&fRestore, "r", "load counters from storage on startup")
	flag.Var(&fDSN, "d", "DB connection string")
	flag.Var(&fConf, "c", "Path to JSON config file")
	flag.Var(&fConf, "config", "Path to JSON config file (alias)")
	flag.Parse()

	cfg.Addr = fAddr.v
	cfg.TickInterval = fTick.v
	cfg.SampleInterval = fSample.v
	cfg.FileStoragePath = fFile.v
	cfg.Restore = fRestore.v
	cfg.DatabaseDsn = fDSN.v

	// 2) JSON (lowest priority)
	if fConf.v == "" {
		if v := os.Getenv("CONFIG"); v != "" {
			fConf.v = v
		}
	}

	if fConf.v != "" {
		if js, err := loadServerJSON(fConf.v); err == nil {
			if js.Address != nil && !fAddr.set {
				cfg.Addr = *js.Address
			}
			if js.Restore != nil && !fRestore.set {
				cfg.Restore = *js.Restore
			}
			if js.TickInterval != nil && !fTick.set {
				if d, err := time.ParseDuration(*js.TickInterval); err == nil {
					cfg.TickInterval = d
				}
			}
			if js.SampleInterval != nil && !fSample.set {
				if d, err := time.ParseDuration(*js.SampleInterval); err == nil {
					cfg.SampleInterval = d
				}
			}
			if js.StoreFile != nil && !fFile.set {
				cfg.FileStoragePath = *js.StoreFile
			}
			if js.DatabaseDSN != nil && !fDSN.set {
				cfg.DatabaseDsn = *js.DatabaseDSN
			}
		} else {
			log.Printf("failed to load config file %s: %v", fConf.v, err)
		}
	}

	// 3) environment (highest priority)
	readServerEnvironment(cfg)

	cfg.Logger = logger.Sugar()
	return cfg
}

func readServerEnvironment(cfg *ServerConfig) {
	if addr := os.Getenv("ADDRESS"); addr != "" {
		cfg.Addr = addr
	}

	if tickEnv := os.Getenv("TICK_INTERVAL"); tickEnv != "" {
		d, err := time.ParseDuration(tickEnv)
		if err == nil {
			cfg.TickInterval = d
		} else {
			log.Printf("invalid TICK_INTERVAL env var: %v", err)
		}
	}

	if sampleEnv := os.Getenv("SAMPLE_INTERVAL"); sampleEnv != "" {
		d, err := time.ParseDuration(sampleEnv)
		if err == nil {
			cfg.SampleInterval = d
		} else {
			log.Printf("invalid SAMPLE_INTERVAL env var: %v", err)
		}
	}

	if fsp := os.Getenv("FILE_STORAGE_PATH"); fsp != "" {
		cfg.FileStoragePath = fsp
	} else if fsp := os.Getenv("STORE_FILE"); fsp != "" {
		cfg.FileStoragePath = fsp
	}

	if dbDsn := os.Getenv("DATABASE_DSN"); dbDsn != "" {
		cfg.DatabaseDsn = dbDsn
	}

	restoreEnv := os.Getenv("RESTORE")
	if restoreEnv != "" {
		v, err := strconv.ParseBool(restoreEnv)
		if err == nil {
			cfg.Restore = v
		} else {
			log.Printf("invalid RESTORE env var: %v", err)
		}
	}
}
