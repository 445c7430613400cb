package model

import (
	"regexp"
	"time"
)

var pinPattern = regexp.MustCompile(`^\d{4}$`)

type Customer struct {
	ID        string    `json:"id"         db:"id"         gorm:"primaryKey;column:id"`
	Name      string    `json:"name"       db:"name"       gorm:"column:name;not null"`
	PIN       string    `json:"-"          db:"pin"        gorm:"column:pin;not null"`
	Rewards   uint      `json:"rewards"    db:"rewards"    gorm:"column:rewards;not null;default:0"`
	QRCode    string    `json:"qr_code"    db:"qr_code"    gorm:"column:qr_code"`
	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"column:created_at;autoCreateTime"`
}

func (Customer) TableName() string { return "customers" }

// CustomerRegisterRequest is the input for registering a new customer.
// The PIN is a legacy self-service lookup credential, kept for card
// compatibility; it is not checked in the staff scanning flow.
type CustomerRegisterRequest struct {
	Name string
	PIN  string
}

func (p CustomerRegisterRequest) Validate() error {
	if p.Name == "" {
		return ValidationError("name is required")
	}
	if p.PIN == "" {
		return ValidationError("pin is required")
	}
	if !pinPattern.MatchString(p.PIN) {
		return ValidationError("pin must be exactly 4 digits")
	}
	return nil
}

// CustomerCard is the customer-facing view of a loyalty card: identity,
// earned rewards and current points per item.
type CustomerCard struct {
	CustomerName string         `json:"customerName"`
	TotalRewards uint           `json:"totalRewards"`
	ItemPoints   map[int64]uint `json:"itemPoints"`
}
