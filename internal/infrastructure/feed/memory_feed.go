package feed

import (
	"context"
	"sync"

	"motorhub.backend/internal/domain/entities"
)

// MemoryFeed is an in-process change feed for single-instance deployments
// without redis. Slow subscribers drop events rather than block writers;
// any later event still triggers a full reload.
type MemoryFeed struct {
	mu   sync.Mutex
	subs map[entities.Collection]map[chan entities.ChangeEvent]struct{}
}

// NewMemoryFeed creates an empty in-process feed
func NewMemoryFeed() *MemoryFeed {
	return &MemoryFeed{subs: make(map[entities.Collection]map[chan entities.ChangeEvent]struct{})}
}

// Publish delivers the event to every current subscriber of the collection
func (f *MemoryFeed) Publish(_ context.Context, event entities.ChangeEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subs[event.Collection] {
		select {
		case ch <- event:
		default:
		}
	}
	return nil
}

// Changes registers a subscriber until ctx is done
func (f *MemoryFeed) Changes(ctx context.Context, collection entities.Collection) (<-chan entities.ChangeEvent, error) {
	ch := make(chan entities.ChangeEvent, 16)

	f.mu.Lock()
	if f.subs[collection] == nil {
		f.subs[collection] = make(map[chan entities.ChangeEvent]struct{})
	}
	f.subs[collection][ch] = struct{}{}
	f.mu.Unlock()

	go func() {
		<-ctx.Done()
		f.mu.Lock()
		delete(f.subs[collection], ch)
		close(ch)
		f.mu.Unlock()
	}()
	return ch, nil
}
