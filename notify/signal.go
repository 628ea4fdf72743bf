package notify

import (
	"context"
	"sync"
)

// Signal announces that a mutation finished. Subscribers (list controllers)
// answer every firing with exactly one reload.
type Signal struct {
	mu   sync.Mutex
	subs []func(context.Context)
}

func NewSignal() *Signal {
	return &Signal{}
}

// Subscribe registers fn; it runs synchronously on every Fire.
func (s *Signal) Subscribe(fn func(context.Context)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Fire runs every subscriber once, in subscription order. A nil Signal is a
// no-op so mutations can run without a listening screen.
func (s *Signal) Fire(ctx context.Context) {
	if s == nil {
		return
	}
	s.mu.Lock()
	subs := make([]func(context.Context), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(ctx)
	}
}
