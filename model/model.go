// Package model contains core data types for the project.
package model

import (
	"fmt"
	"time"
)

// Snapshot is an independent point-in-time copy of the counter collection.
// Element order matches display order; indexes are stable until the next
// add or remove.
type Snapshot struct {
	Counters []int64 `json:"counters"`
}

// Sum returns the aggregate value of all counters in the snapshot.
func (s Snapshot) Sum() int64 {
	var total int64
	for _, v := range s.Counters {
		total += v
	}
	return total
}

// RateReading is one output of the rate estimator: the instantaneous
// increment rate in counts per second and the instant it was observed.
type RateReading struct {
	Rate     float64   `json:"rate"`
	Observed time.Time `json:"observed"`
}

// Display renders the reading the way the presentation layer shows it.
func (r RateReading) Display() string {
	return fmt.Sprintf("%.2f Hz", r.Rate)
}
