package events

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	pubsub "cloud.google.com/go/pubsub/v2"

	"github.com/angelmondragon/packfinderz-promotions/pkg/logger"
)

const (
	EventPromotionCreated = "promotion.created"
	EventPromotionUpdated = "promotion.updated"
	EventPromotionDeleted = "promotion.deleted"
)

var knownEvents = map[string]struct{}{
	EventPromotionCreated: {},
	EventPromotionUpdated: {},
	EventPromotionDeleted: {},
}

type invalidator interface {
	Invalidate(ctx context.Context, merchantID string) error
}

// Consumer drops cached snapshots when the admin service reports a promotion change.
type Consumer struct {
	cache        invalidator
	subscription *pubsub.Subscriber
	logg         *logger.Logger
}

// NewConsumer constructs a consumer that watches the provided subscription.
func NewConsumer(cache invalidator, subscription *pubsub.Subscriber, logg *logger.Logger) (*Consumer, error) {
	if cache == nil {
		return nil, errors.New("snapshot cache is required")
	}
	if subscription == nil {
		return nil, errors.New("promotion events subscription is required")
	}
	if logg == nil {
		return nil, errors.New("logger is required")
	}
	return &Consumer{cache: cache, subscription: subscription, logg: logg}, nil
}

// Run processes messages until the context is canceled or the subscription errors.
func (c *Consumer) Run(ctx context.Context) error {
	return c.subscription.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		if result := c.process(ctx, msg); result.nack {
			msg.Nack()
			return
		}
		msg.Ack()
	})
}

type processResult struct {
	ack  bool
	nack bool
}

type changeEvent struct {
	EventType   string `json:"event_type"`
	MerchantID  string `json:"merchant_id"`
	PromotionID string `json:"promotion_id"`
}

func (c *Consumer) process(ctx context.Context, msg *pubsub.Message) processResult {
	event, decodeErr := parseEvent(msg)
	logCtx := c.logg.WithFields(ctx, map[string]any{
		"message_id":   msg.ID,
		"event_type":   event.EventType,
		"merchant_id":  event.MerchantID,
		"promotion_id": event.PromotionID,
	})

	if decodeErr != nil {
		c.logg.Error(logCtx, "failed to decode promotion event", decodeErr)
		return processResult{ack: true}
	}
	if _, ok := knownEvents[event.EventType]; !ok {
		c.logg.Info(logCtx, "skipping unrelated event")
		return processResult{ack: true}
	}
	if event.MerchantID == "" {
		c.logg.Warn(logCtx, "promotion event missing merchant id")
		return processResult{ack: true}
	}

	if err := c.cache.Invalidate(logCtx, event.MerchantID); err != nil {
		c.logg.Error(logCtx, "failed to invalidate promotion snapshot", err)
		return processResult{nack: true}
	}
	c.logg.Info(logCtx, "promotion snapshot invalidated")
	return processResult{ack: true}
}

// parseEvent reads attributes first and fills gaps from the JSON body. A body
// is optional when the attributes carry everything.
func parseEvent(msg *pubsub.Message) (changeEvent, error) {
	event := changeEvent{
		EventType:   strings.TrimSpace(msg.Attributes["event_type"]),
		MerchantID:  strings.TrimSpace(msg.Attributes["merchant_id"]),
		PromotionID: strings.TrimSpace(msg.Attributes["promotion_id"]),
	}
	if len(msg.Data) == 0 || (event.EventType != "" && event.MerchantID != "") {
		return event, nil
	}

	var body changeEvent
	if err := json.Unmarshal(msg.Data, &body); err != nil {
		return event, err
	}
	if event.EventType == "" {
		event.EventType = strings.TrimSpace(body.EventType)
	}
	if event.MerchantID == "" {
		event.MerchantID = strings.TrimSpace(body.MerchantID)
	}
	if event.PromotionID == "" {
		event.PromotionID = strings.TrimSpace(body.PromotionID)
	}
	return event, nil
}
