package rides

import (
	"context"

	"github.com/camride/camride/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/camride/camride/services/rides RideGW

// RideGW defines the ride gateways interface. Publishes are
// best-effort; a failed publish never fails the transition.
type RideGW interface {
	PublishRideBooked(ctx context.Context, event *models.RideEvent) error
	PublishRideAccepted(ctx context.Context, event *models.RideEvent) error
	PublishRideStarted(ctx context.Context, event *models.RideEvent) error
	PublishRideCompleted(ctx context.Context, event *models.RideEvent) error
	PublishRideCancelled(ctx context.Context, event *models.RideEvent) error
}
