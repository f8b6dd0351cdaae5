package events

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// ChannelBalanceUpdated is the Redis pub/sub channel clients subscribe to for
// balance refreshes. Delivery is best-effort; every balance-mutating endpoint
// also returns the new balance in its response body, so a missed event only
// delays the refresh.
const ChannelBalanceUpdated = "amora:balance.updated"

// BalanceUpdated is the payload published after any balance mutation.
type BalanceUpdated struct {
	UserID     uuid.UUID `json:"user_id"`
	NewBalance float64   `json:"new_balance"`
	Reason     string    `json:"reason"`
	Reference  string    `json:"reference,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher pushes domain events to subscribers.
type Publisher interface {
	PublishBalanceUpdated(ctx context.Context, event BalanceUpdated)
}

// RedisPublisher publishes events on Redis pub/sub channels.
type RedisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher creates a new Redis publisher
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

// PublishBalanceUpdated publishes a balance change. Publish failures are
// logged, never propagated: the ledger mutation has already committed.
func (p *RedisPublisher) PublishBalanceUpdated(ctx context.Context, event BalanceUpdated) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("events: marshal balance event: %v", err)
		return
	}

	if err := p.client.Publish(ctx, ChannelBalanceUpdated, payload).Err(); err != nil {
		log.Printf("events: publish balance event: %v", err)
	}
}

// NoopPublisher discards events; used in tests.
type NoopPublisher struct{}

// PublishBalanceUpdated implements Publisher.
func (NoopPublisher) PublishBalanceUpdated(ctx context.Context, event BalanceUpdated) {}
