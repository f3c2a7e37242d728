// Package chat polls a match's conversation at a fixed interval for as
// long as the chat view is open. Polling is the stand-in for push
// delivery; the reads are idempotent, so stopping only has to prevent
// future polls, never cancel one in flight.
package chat

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/sprintnotes/sprintnotes/models"
)

// FetchFunc retrieves the current conversation.
type FetchFunc func(ctx context.Context) ([]models.Message, error)

type Poller struct {
	interval time.Duration
	fetch    FetchFunc
	onBatch  func([]models.Message)

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewPoller(interval time.Duration, fetch FetchFunc, onBatch func([]models.Message)) *Poller {
	return &Poller{interval: interval, fetch: fetch, onBatch: onBatch}
}

// Start begins polling immediately and then on every tick. Calling Start
// on a running poller is a no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	go p.loop(ctx, p.done)
}

// Stop halts future polls and waits for the loop to exit. Safe to call on
// a stopped poller.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (p *Poller) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		p.poll(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	msgs, err := p.fetch(ctx)
	if err != nil {
		if ctx.Err() == nil {
			log.Printf("chat: poll: %v", err)
		}
		return
	}
	if p.onBatch != nil {
		p.onBatch(msgs)
	}
}
