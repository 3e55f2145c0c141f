package model

import "time"

// WatchEntry is the last known rating of a watched symbol.
type WatchEntry struct {
	Label     RatingLabel `json:"label"`
	Score     float64     `json:"score"`
	LastClose float64     `json:"last_close"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// WatchState tracks ratings across scans so that changes can be reported.
type WatchState struct {
	Entries   map[string]WatchEntry `json:"entries"`
	ScanCount int                   `json:"scan_count"`
	LastScan  time.Time             `json:"last_scan"`
	UpdatedAt time.Time             `json:"updated_at"`
}
