package hydrogen

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// RedisBus publishes signals as JSON on one Redis channel. Messages read
// by Listen are fanned out to handlers registered with Subscribe.
type RedisBus struct {
	client  *redis.Client
	channel string
	local   *MemoryBus
}

func NewRedisBus(client *redis.Client, channel string) *RedisBus {
	return &RedisBus{client: client, channel: channel, local: NewMemoryBus()}
}

func (b *RedisBus) Publish(ctx context.Context, sig Signal) error {
	payload, err := json.Marshal(sig)
	if err != nil {
		return fmt.Errorf("encode signal: %w", err)
	}
	if err := b.client.Publish(ctx, b.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", b.channel, err)
	}
	return nil
}

func (b *RedisBus) Subscribe(site string, h Handler) func() {
	return b.local.Subscribe(site, h)
}

// Listen blocks until ctx is done. ready, if non-nil, is closed once the
// channel subscription is confirmed.
func (b *RedisBus) Listen(ctx context.Context, ready chan<- struct{}) error {
	pubsub := b.client.Subscribe(ctx, b.channel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", b.channel, err)
	}
	if ready != nil {
		close(ready)
	}

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var sig Signal
			if err := json.Unmarshal([]byte(msg.Payload), &sig); err != nil {
				slog.Warn("RedisBus: dropping malformed signal", "channel", msg.Channel, "error", err)
				continue
			}
			if err := b.local.Publish(context.Background(), sig); err != nil {
				slog.Warn("RedisBus: local delivery failed", "site", sig.Site, "error", err)
			}
		}
	}
}
