package pubsub

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/angelmondragon/packfinderz-promotions/pkg/config"
)

func TestSubscriptionResourceName(t *testing.T) {
	cases := []struct {
		name      string
		projectID string
		sub       string
		want      string
	}{
		{name: "bare id", projectID: "proj", sub: "promotion-events", want: "projects/proj/subscriptions/promotion-events"},
		{name: "trims", projectID: " proj ", sub: " promotion-events ", want: "projects/proj/subscriptions/promotion-events"},
		{name: "full name passes through", projectID: "other", sub: "projects/proj/subscriptions/x", want: "projects/proj/subscriptions/x"},
		{name: "empty subscription", projectID: "proj", sub: "", want: ""},
		{name: "missing project", projectID: "", sub: "promotion-events", want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, subscriptionResourceName(tc.projectID, tc.sub))
		})
	}
}

func TestNewClientRequiresProject(t *testing.T) {
	_, err := NewClient(context.Background(), config.GCPConfig{}, config.PubSubConfig{}, nil)
	assert.ErrorIs(t, err, errProjectIDRequired)
}

func TestNilClient(t *testing.T) {
	var c *Client
	assert.Nil(t, c.PromotionEventsSubscription())
	assert.Error(t, c.Ping(context.Background()))
	assert.NoError(t, c.Close())
}
