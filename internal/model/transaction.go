package model

import "time"

// PointTransaction is an append-only accrual record. Rows are never
// updated; they disappear only when their customer is deleted.
type PointTransaction struct {
	ID           int64     `json:"id"            db:"id"            gorm:"primaryKey;autoIncrement;column:id"`
	CustomerID   string    `json:"customer_id"   db:"customer_id"   gorm:"column:customer_id;not null;index"`
	Customer     *Customer `json:"-"                                 gorm:"foreignKey:CustomerID;references:ID;constraint:OnDelete:CASCADE"`
	ItemID       int64     `json:"item_id"       db:"item_id"       gorm:"column:item_id;not null;index"`
	Item         *Item     `json:"-"                                 gorm:"foreignKey:ItemID;references:ID;constraint:OnDelete:CASCADE"`
	PointsAdded  uint      `json:"points_added"  db:"points_added"  gorm:"column:points_added;not null"`
	RewardEarned bool      `json:"reward_earned" db:"reward_earned" gorm:"column:reward_earned;not null;default:false"`
	CreatedAt    time.Time `json:"created_at"    db:"created_at"    gorm:"column:created_at;autoCreateTime"`
}

func (PointTransaction) TableName() string { return "point_transactions" }

// TransactionFilter controls List queries.
type TransactionFilter struct {
	CustomerID *string
	ItemID     *int64
	RewardOnly bool
	From       *time.Time
	To         *time.Time
	Limit      int // default 50
	Offset     int
	Desc       bool // order by created_at
}

// TransactionDetail is a transaction joined with customer and item names,
// used by the admin analytics feed.
type TransactionDetail struct {
	ID           int64     `json:"id"`
	CustomerName string    `json:"customer_name"`
	ItemName     string    `json:"item_name"`
	PointsAdded  uint      `json:"points_added"`
	RewardEarned bool      `json:"reward_earned"`
	CreatedAt    time.Time `json:"created_at"`
}

// ItemCount is an item name with its transaction count, for top-item stats.
type ItemCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// DayCount is a per-day event count, for growth and reward trend charts.
type DayCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}
