package hydrogen

import (
	"fmt"
	"sort"
	"sync"

	lru "github.com/hashicorp/golang-lru"
)

// Receipt records what a receiver did with one signal.
type Receipt struct {
	SignalID      string  `json:"signal_id"`
	Site          string  `json:"site"`
	Price         float64 `json:"price"`
	PreviousPrice float64 `json:"previous_price"`
	Accepted      bool    `json:"accepted"`
}

// PriceReceiver keeps the last accepted price per site, evicting the least
// recently touched site once size is reached.
type PriceReceiver struct {
	mu    sync.Mutex
	cache *lru.Cache
}

func NewPriceReceiver(size int) (*PriceReceiver, error) {
	if size < 1 {
		size = 1
	}
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("receiver cache: %w", err)
	}
	return &PriceReceiver{cache: cache}, nil
}

// Receive stores sig.Price for sig.Site. Non-positive prices are reported
// but not stored.
func (r *PriceReceiver) Receive(sig Signal) Receipt {
	r.mu.Lock()
	defer r.mu.Unlock()

	rc := Receipt{SignalID: sig.ID.String(), Site: sig.Site, Price: sig.Price}
	if v, ok := r.cache.Get(sig.Site); ok {
		rc.PreviousPrice = v.(float64)
	}
	if !(sig.Price > 0) || sig.Site == "" {
		return rc
	}
	r.cache.Add(sig.Site, sig.Price)
	rc.Accepted = true
	return rc
}

// Handle adapts Receive to a bus Handler.
func (r *PriceReceiver) Handle(sig Signal) { r.Receive(sig) }

func (r *PriceReceiver) Lookup(site string) (float64, bool) {
	v, ok := r.cache.Peek(site)
	if !ok {
		return 0, false
	}
	return v.(float64), true
}

func (r *PriceReceiver) Sites() []string {
	keys := r.cache.Keys()
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k.(string))
	}
	sort.Strings(out)
	return out
}
