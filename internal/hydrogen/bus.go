package hydrogen

import (
	"context"
	"sync"
)

// AllSites subscribes a handler to every site.
const AllSites = "*"

type Handler func(Signal)

// Bus carries signals between sites.
type Bus interface {
	Publish(ctx context.Context, sig Signal) error
	Subscribe(site string, h Handler) (unsubscribe func())
}

// MemoryBus dispatches synchronously on the publishing goroutine.
type MemoryBus struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[string]map[int]Handler
}

func NewMemoryBus() *MemoryBus {
	return &MemoryBus{handlers: make(map[string]map[int]Handler)}
}

func (b *MemoryBus) Subscribe(site string, h Handler) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	if b.handlers[site] == nil {
		b.handlers[site] = make(map[int]Handler)
	}
	b.handlers[site][id] = h
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if hs, ok := b.handlers[site]; ok {
			delete(hs, id)
			if len(hs) == 0 {
				delete(b.handlers, site)
			}
		}
	}
}

func (b *MemoryBus) Publish(ctx context.Context, sig Signal) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, h := range b.snapshot(sig.Site) {
		h(sig)
	}
	return nil
}

// snapshot copies matching handlers so they run without the lock held.
func (b *MemoryBus) snapshot(site string) []Handler {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Handler, 0, len(b.handlers[site])+len(b.handlers[AllSites]))
	for _, h := range b.handlers[site] {
		out = append(out, h)
	}
	if site != AllSites {
		for _, h := range b.handlers[AllSites] {
			out = append(out, h)
		}
	}
	return out
}
