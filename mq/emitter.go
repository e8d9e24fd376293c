package mq

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"
)

const channel = "cache-events"

// Index describes a dashboard mutation the public site cache cares about.
type Index struct {
	EntityType string `json:"entity_type"`
	Method     string `json:"method"`
	EntityId   string `json:"entity_id"`
}

// Emitter publishes cache-invalidation events over Redis pub/sub.
type Emitter struct {
	conn *redis.Client
}

func NewEmitter(conn *redis.Client) *Emitter {
	return &Emitter{conn: conn}
}

// Emit publishes the event. Fire-and-forget: failures are logged, never
// surfaced to the caller.
func (e *Emitter) Emit(ctx context.Context, eventName string, content Index) {
	if e == nil || e.conn == nil {
		return
	}

	data, err := json.Marshal(content)
	if err != nil {
		log.Printf("[Emit] Failed to marshal event content: %v", err)
		return
	}

	if err := e.conn.Publish(ctx, channel, data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish %s event to Redis: %v", eventName, err)
	}
}
