package interfaces

import (
	"context"

	"myfabric/domain"
)

// Fabric is the surface the HTTP admin API needs: discovery queries and message sending.
// Implemented by service.Fabric.
//
//go:generate moq -stub -out mock/fabric.go -pkg mock . Fabric
type Fabric interface {
	// FindService returns the service entry when the service has at least one live instance.
	// Returns (entry, nil), (zero, entity_not_found) or (zero, internal_server_error).
	FindService(ctx context.Context, name string) (domain.ServiceEntry, error)

	// GetServices returns every service with at least one live instance, ordered by name.
	GetServices(ctx context.Context) ([]domain.ServiceEntry, error)

	// GetServicePresence returns the live instances of a service; empty when none is live.
	// Returns entity_not_found when the service was never registered.
	GetServicePresence(ctx context.Context, name string) ([]domain.PresenceRecord, error)

	// GetServiceNodes returns the records of every live instance of every service.
	GetServiceNodes(ctx context.Context) ([]domain.PresenceRecord, error)

	// CreateMessage returns a new envelope with fresh mid, timestamp and version overlaid by fields.
	CreateMessage(fields domain.Envelope) domain.Envelope

	// SendMessage publishes env to the channel selected by its "to" address.
	// Returns invalid_address before publishing, unreachable_instance for a direct send nobody received,
	// internal_server_error on transport failure.
	SendMessage(ctx context.Context, env domain.Envelope) (domain.SendResult, error)
}
