package health

import "context"

// Pinger checks a realm backend's availability.
type Pinger interface {
	Ping(ctx context.Context) error
}
