package hydrogen

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"
)

var ErrInvalidPrice = errors.New("price must be > 0")

// Broadcast is the outcome of one PriceBroadcaster.Broadcast call.
type Broadcast struct {
	Origin   Signal     `json:"origin"`
	Cascaded []Signal   `json:"cascaded"`
	Cascade  bool       `json:"cascade"`
	Report   SyncReport `json:"report"`
}

// PriceBroadcaster turns site price changes into queued signals. A change of
// at least the cascade threshold also signals every registered target.
type PriceBroadcaster struct {
	mu        sync.Mutex
	threshold float64
	targets   []string
	last      map[string]float64
	hs        *HydrogenSync

	now func() time.Time
}

func NewPriceBroadcaster(hs *HydrogenSync, cascadeThreshold float64) *PriceBroadcaster {
	return &PriceBroadcaster{
		threshold: cascadeThreshold,
		last:      make(map[string]float64),
		hs:        hs,
		now:       time.Now,
	}
}

// Register adds targets; duplicates and empty names are ignored.
func (b *PriceBroadcaster) Register(sites ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, s := range sites {
		if s == "" || b.hasTarget(s) {
			continue
		}
		b.targets = append(b.targets, s)
	}
}

func (b *PriceBroadcaster) hasTarget(site string) bool {
	for _, t := range b.targets {
		if t == site {
			return true
		}
	}
	return false
}

func (b *PriceBroadcaster) Targets() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.targets...)
}

// Broadcast queues a signal for site, plus a cascade for each other target
// when the change is large enough, then flushes the queue.
func (b *PriceBroadcaster) Broadcast(ctx context.Context, site string, price float64) (*Broadcast, error) {
	if !(price > 0) || math.IsInf(price, 0) {
		return nil, ErrInvalidPrice
	}

	b.mu.Lock()
	prev := b.last[site]
	b.last[site] = price
	change := 0.0
	if prev > 0 {
		change = (price - prev) / prev
	}
	at := b.now()
	out := &Broadcast{Origin: newSignal(KindPriceUpdate, site, price, prev, change*100, at)}
	if prev > 0 && math.Abs(change) > b.threshold {
		out.Cascade = true
		for _, t := range b.targets {
			if t == site {
				continue
			}
			out.Cascaded = append(out.Cascaded, newSignal(KindCascade, t, price, prev, change*100, at))
		}
	}
	b.mu.Unlock()

	b.hs.Enqueue(out.Origin)
	for _, sig := range out.Cascaded {
		b.hs.Enqueue(sig)
	}
	rep, err := b.hs.Flush(ctx)
	out.Report = rep
	return out, err
}
