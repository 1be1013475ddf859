package hydrogen

import (
	"context"
	"log/slog"
	"sync"
)

// SyncReport summarizes one Flush.
type SyncReport struct {
	Delivered int `json:"delivered"`
	Failed    int `json:"failed"`
	Dropped   int `json:"dropped"`
	Pending   int `json:"pending"`
}

// HydrogenSync is a bounded FIFO of signals waiting to be published.
// A full queue drops its oldest entry.
type HydrogenSync struct {
	mu       sync.Mutex
	bus      Bus
	queue    []Signal
	maxQueue int
	dropped  int
}

func NewHydrogenSync(bus Bus, maxQueue int) *HydrogenSync {
	// ensure minimum capacity of 1
	if maxQueue < 1 {
		maxQueue = 1
	}
	return &HydrogenSync{bus: bus, maxQueue: maxQueue}
}

// Enqueue appends sig and reports whether an older signal was dropped.
func (s *HydrogenSync) Enqueue(sig Signal) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	dropped := false
	if len(s.queue) >= s.maxQueue {
		s.queue = s.queue[1:]
		s.dropped++
		dropped = true
	}
	s.queue = append(s.queue, sig)
	return dropped
}

func (s *HydrogenSync) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

func (s *HydrogenSync) PendingSignals() []Signal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Signal(nil), s.queue...)
}

// Flush publishes queued signals in order. On the first publish error it
// stops; the failed signal and everything behind it stay queued. Dropped
// counts evictions since the previous Flush.
func (s *HydrogenSync) Flush(ctx context.Context) (SyncReport, error) {
	s.mu.Lock()
	batch := s.queue
	s.queue = nil
	rep := SyncReport{Dropped: s.dropped}
	s.dropped = 0
	s.mu.Unlock()

	for i, sig := range batch {
		if err := s.bus.Publish(ctx, sig); err != nil {
			rep.Failed = 1
			s.requeue(batch[i:])
			rep.Pending = s.Pending()
			slog.Warn("HydrogenSync: publish failed", "site", sig.Site, "signal", sig.ID, "error", err)
			return rep, err
		}
		rep.Delivered++
	}
	rep.Pending = s.Pending()
	return rep, nil
}

// requeue puts rest back at the head, ahead of anything enqueued meanwhile,
// then trims to capacity from the front.
func (s *HydrogenSync) requeue(rest []Signal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := make([]Signal, 0, len(rest)+len(s.queue))
	q = append(q, rest...)
	q = append(q, s.queue...)
	if over := len(q) - s.maxQueue; over > 0 {
		q = q[over:]
		s.dropped += over
	}
	s.queue = q
}
