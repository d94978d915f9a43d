package mq

import (
	"context"
	"encoding/json"
	"log"

	"evenza/rdx"
)

// Channel is the Redis pub/sub channel entity changes are published on.
const Channel = "entity-events"

// Index represents an entity change message published to the event channel.
type Index struct {
	EntityType string `json:"entity_type"`
	Method     string `json:"method"`
	EntityId   string `json:"entity_id"`
	ItemType   string `json:"item_type,omitempty"`
	ItemId     string `json:"item_id,omitempty"`
}

// Emit publishes an entity change to Redis. Failures are logged, never fatal:
// the primary write has already happened by the time Emit runs.
func Emit(ctx context.Context, eventName string, content Index) {
	data, err := json.Marshal(content)
	if err != nil {
		log.Printf("[Emit] failed to marshal %s: %v", eventName, err)
		return
	}
	if err := rdx.RdxPublish(ctx, Channel, data); err != nil {
		log.Printf("[Emit] failed to publish %s: %v", eventName, err)
	}
}

// StartInvalidationWorker consumes entity events and drops stale cache entries
// so public listing reads see fresh data after edits.
func StartInvalidationWorker() {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, Channel)
	ch := sub.Channel()

	log.Println("[InvalidationWorker] listening for entity events")
	for msg := range ch {
		var event Index
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("[InvalidationWorker] bad payload: %v", err)
			continue
		}
		switch event.EntityType {
		case "event":
			rdx.RdxDel("public:events")
			rdx.RdxDel("event:" + event.EntityId)
		case "listing":
			rdx.RdxDel("public:events")
		}
	}
}
