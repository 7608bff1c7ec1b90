package model

import "time"

// Shared defaults used by both the dashboard and simulator binaries.
const (
	DefaultAPIURL         = "http://127.0.0.1:8000"
	DefaultListenAddr     = "127.0.0.1:8000"
	DefaultRefreshEvery   = 5 * time.Second
	DefaultRequestTimeout = 10 * time.Second
	DefaultRecentLimit    = 10
)
