package events

import "time"

// AccrualEvent is published to the accrual stream after each committed
// purchase. Consumers keep live dashboard counters; the database row is
// the source of truth.
type AccrualEvent struct {
	CustomerID   string    `json:"customer_id"`
	ItemID       int64     `json:"item_id"`
	PointsAdded  uint      `json:"points_added"`
	RewardEarned bool      `json:"reward_earned"`
	OccurredAt   time.Time `json:"occurred_at"`
}
