package ratelimiter

import "time"

// Limiter gates requests per client key. Allow reports whether the request may
// proceed and, when it may not, how long until the window opens again.
type Limiter interface {
	Allow(key string) (bool, time.Duration)
}

// Config carries the limiter settings read from the environment.
type Config struct {
	RequestsPerTimeFrame int
	TimeFrame            time.Duration
	Enabled              bool
}
