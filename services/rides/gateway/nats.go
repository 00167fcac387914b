package gateway

import (
	"context"
	"encoding/json"

	"github.com/camride/camride/internal/pkg/constants"
	"github.com/camride/camride/internal/pkg/models"
	natspkg "github.com/camride/camride/internal/pkg/nats"
)

// RideGW publishes ride lifecycle events to NATS
type RideGW struct {
	client *natspkg.Client
}

// NewRideGW creates a new ride gateway instance
func NewRideGW(client *natspkg.Client) *RideGW {
	return &RideGW{
		client: client,
	}
}

// PublishRideBooked publishes a ride booked event to NATS
func (g *RideGW) PublishRideBooked(ctx context.Context, event *models.RideEvent) error {
	return g.publish(constants.SubjectRideBooked, event)
}

// PublishRideAccepted publishes a ride accepted event to NATS
func (g *RideGW) PublishRideAccepted(ctx context.Context, event *models.RideEvent) error {
	return g.publish(constants.SubjectRideAccepted, event)
}

// PublishRideStarted publishes a ride started event to NATS
func (g *RideGW) PublishRideStarted(ctx context.Context, event *models.RideEvent) error {
	return g.publish(constants.SubjectRideStarted, event)
}

// PublishRideCompleted publishes a ride completed event to NATS
func (g *RideGW) PublishRideCompleted(ctx context.Context, event *models.RideEvent) error {
	return g.publish(constants.SubjectRideCompleted, event)
}

// PublishRideCancelled publishes a ride cancelled event to NATS
func (g *RideGW) PublishRideCancelled(ctx context.Context, event *models.RideEvent) error {
	return g.publish(constants.SubjectRideCancelled, event)
}

func (g *RideGW) publish(subject string, event *models.RideEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return g.client.Publish(subject, data)
}
