package external

import (
	"context"
	"time"
)

// ShipmentDirectory is the read-only view of the delivery system used for period-based remittance.
type ShipmentDirectory interface {
	// FindDeliveredShipments returns the waybills of the client's shipments delivered in [start, end].
	FindDeliveredShipments(ctx context.Context, clientID string, start, end time.Time) ([]string, error)
}

// PartyKind names which directory a display name is resolved from.
type PartyKind string

const (
	PartyHub    PartyKind = "HUB"
	PartyUser   PartyKind = "USER"
	PartyClient PartyKind = "CLIENT"
)

// PartyDirectory resolves display names for hubs, users and clients. Names are denormalized
// for display only; a failed lookup never fails the calling operation.
type PartyDirectory interface {
	ResolveName(ctx context.Context, kind PartyKind, id string) (string, error)
}
