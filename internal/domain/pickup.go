package domain

import "time"

type PickupStatus string

const (
	PickupStatusRequested PickupStatus = "REQUESTED"
	PickupStatusScheduled PickupStatus = "SCHEDULED"
	PickupStatusCollected PickupStatus = "COLLECTED"
	PickupStatusCompleted PickupStatus = "COMPLETED"
	PickupStatusCancelled PickupStatus = "CANCELLED"
)

// Pickup is a recycling collection. Completion pays the owning account a
// Zoints credit computed from the weighed material; the credit is applied
// exactly once, on the first transition into COMPLETED.
type Pickup struct {
	ID          int64        `json:"id"`
	AccountID   string       `json:"account_id"`
	CollectorID *string      `json:"collector_id,omitempty"`
	Material    string       `json:"material"`
	WeightKg    float64      `json:"weight_kg"`
	Payout      int64        `json:"payout"`
	Status      PickupStatus `json:"status"`
	Address     string       `json:"address"`
	ScheduledOn *time.Time   `json:"scheduled_on,omitempty"`
	CreatedOn   time.Time    `json:"created_on"`
	UpdatedOn   time.Time    `json:"updated_on"`
}
