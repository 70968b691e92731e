package repository

import "time"

// Snapshot represents a snapshots row.
type Snapshot struct {
	ID           string
	Slot         string
	Stage        string
	LemonSize    int
	SqueezeCount int
	SavedAt      time.Time
}
