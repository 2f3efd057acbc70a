package config

import (
	"encoding/json"
	"os"
)

type serverJSON struct {
	Address        *string `json:"address"`
	Restore        *bool   `json:"restore"`
	TickInterval   *string `json:"tick_interval"`   // "1ms"
	SampleInterval *string `json:"sample_interval"` // "1s"
	StoreFile      *string `json:"store_file"`
	DatabaseDSN    *string `json:"database_dsn"`
}

func loadServerJSON(path string) (*serverJSON, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg serverJSON
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
