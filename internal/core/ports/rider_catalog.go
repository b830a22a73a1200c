package ports

import "context"

// Rider is the reference entity owned by the external rider service.
// The tracking core consults riders, it never mutates them.
type Rider struct {
	ID    string
	Name  string
	Phone string
	Email string
	State string
}

// RiderCatalog is the synchronous lookup port to the rider collaborator.
// Implementations must apply an explicit timeout and surface expiry as a
// dependency-unavailable error; a missing rider is an object-not-found error.
type RiderCatalog interface {
	GetRider(ctx context.Context, riderID string) (Rider, error)
}
