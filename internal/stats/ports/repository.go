package ports

import "context"

// Snapshot aggregates store-wide counters for the admin dashboard. The
// succes_orders key is misspelled but kept as-is, existing clients depend
// on it.
type Snapshot struct {
	TotalUsers   int64 `json:"total_users"`
	BlockedUsers int64 `json:"blocked_users"`
	Books        int64 `json:"books"`
	Payments     int64 `json:"payments"`
	Orders       int64 `json:"orders"`
	PaidOrders   int64 `json:"succes_orders"`
}

// StatsRepository computes the snapshot from the underlying store.
type StatsRepository interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
}
