package model

type Item struct {
	ID          int64  `json:"id"           db:"id"           gorm:"primaryKey;autoIncrement;column:id"`
	Name        string `json:"name"         db:"name"         gorm:"column:name;not null"`
	Description string `json:"description"  db:"description"  gorm:"column:description"`
	PointsValue uint   `json:"points_value" db:"points_value" gorm:"column:points_value;not null"`
	Price       uint   `json:"price"        db:"price"        gorm:"column:price;not null;default:0"` // informational, cents
	IsActive    bool   `json:"is_active"    db:"is_active"    gorm:"column:is_active;not null;default:true"`
}

func (Item) TableName() string { return "items" }

// ItemUpsertRequest is the input for creating or updating a catalog item.
type ItemUpsertRequest struct {
	Name        string
	Description string
	PointsValue uint
	Price       uint
	IsActive    bool
}

func (p ItemUpsertRequest) Validate() error {
	if p.Name == "" {
		return ValidationError("name is required")
	}
	if p.PointsValue < 1 {
		return ValidationError("points_value must be at least 1")
	}
	return nil
}
