// Package connectivity exposes network reachability as an edge-emitting
// boolean signal. Subscribers see transitions only, never repeated levels,
// so the sync queue can key its auto-flush off the offline-to-online edge.
package connectivity

import (
	"context"
	"net/http"
	"sync"
	"time"
)

type Monitor struct {
	mu     sync.Mutex
	online bool
	subs   []chan bool
}

func NewMonitor(online bool) *Monitor {
	return &Monitor{online: online}
}

// Online returns the current level.
func (m *Monitor) Online() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

// Set records a reachability observation. Subscribers are notified only
// when the level actually changes. A subscriber that has fallen behind
// misses intermediate edges rather than blocking the monitor; the level
// it eventually reads is still current.
func (m *Monitor) Set(online bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if online == m.online {
		return
	}
	m.online = online
	for _, ch := range m.subs {
		select {
		case ch <- online:
		default:
		}
	}
}

// Subscribe returns a channel carrying future transitions.
func (m *Monitor) Subscribe() <-chan bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch := make(chan bool, 4)
	m.subs = append(m.subs, ch)
	return ch
}

// Probe drives the monitor from periodic reachability checks against url
// until ctx is cancelled. Any 2xx-5xx response counts as reachable; only a
// transport error means offline.
func (m *Monitor) Probe(ctx context.Context, url string, interval time.Duration) {
	client := &http.Client{Timeout: interval}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		m.Set(m.check(ctx, client, url))
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (m *Monitor) check(ctx context.Context, client *http.Client, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false
	}
	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return true
}
