package ratelimiter

import (
	"sync"
	"time"
)

type window struct {
	start time.Time
	count int
}

// FixedWindow counts requests per key inside a fixed-length window. Expired
// windows are replaced on the next request and swept periodically so idle
// clients do not accumulate.
type FixedWindow struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	length  time.Duration
}

func NewFixedWindow(limit int, length time.Duration) *FixedWindow {
	fw := &FixedWindow{
		windows: make(map[string]*window),
		limit:   limit,
		length:  length,
	}
	go fw.sweep()
	return fw
}

func (fw *FixedWindow) Allow(key string) (bool, time.Duration) {
	now := time.Now()

	fw.mu.Lock()
	defer fw.mu.Unlock()

	w, ok := fw.windows[key]
	if !ok || now.Sub(w.start) >= fw.length {
		fw.windows[key] = &window{start: now, count: 1}
		return true, 0
	}
	if w.count < fw.limit {
		w.count++
		return true, 0
	}
	return false, w.start.Add(fw.length).Sub(now)
}

func (fw *FixedWindow) sweep() {
	ticker := time.NewTicker(fw.length)
	defer ticker.Stop()
	for range ticker.C {
		now := time.Now()
		fw.mu.Lock()
		for key, w := range fw.windows {
			if now.Sub(w.start) >= fw.length {
				delete(fw.windows, key)
			}
		}
		fw.mu.Unlock()
	}
}
