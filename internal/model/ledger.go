package model

// ItemPoints is one loyalty ledger entry: the points a customer has
// accumulated toward the next reward for a single item. The stored value
// always stays below the reward threshold; crossing it resets the counter
// to the remainder and credits a reward on the customer.
type ItemPoints struct {
	CustomerID string    `json:"customer_id" db:"customer_id" gorm:"primaryKey;column:customer_id"`
	ItemID     int64     `json:"item_id"     db:"item_id"     gorm:"primaryKey;autoIncrement:false;column:item_id"`
	Customer   *Customer `json:"-"                             gorm:"foreignKey:CustomerID;references:ID;constraint:OnDelete:CASCADE"`
	Item       *Item     `json:"-"                             gorm:"foreignKey:ItemID;references:ID;constraint:OnDelete:CASCADE"`
	Points     uint      `json:"points"      db:"points"      gorm:"column:points;not null;default:0"`
}

func (ItemPoints) TableName() string { return "customer_item_points" }
