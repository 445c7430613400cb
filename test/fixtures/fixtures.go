package fixtures

import (
	"github.com/pkaveh/loyalty-gateway/internal/model"
)

var (
	TestCustomerAlice = model.Customer{
		ID:   "LC1700000000001",
		Name: "Alice",
		PIN:  "1234",
	}

	TestCustomerBob = model.Customer{
		ID:      "LC1700000000002",
		Name:    "Bob",
		PIN:     "5678",
		Rewards: 3,
	}

	TestItemCoffee = model.Item{
		ID:          1,
		Name:        "Coffee",
		Description: "any size",
		PointsValue: 1,
		Price:       450,
		IsActive:    true,
	}

	TestItemSandwich = model.Item{
		ID:          2,
		Name:        "Sandwich",
		PointsValue: 3,
		Price:       900,
		IsActive:    true,
	}

	TestItemRetired = model.Item{
		ID:          3,
		Name:        "Seasonal Special",
		PointsValue: 5,
		IsActive:    false,
	}
)

func NewTestItem(name string, pointsValue uint, active bool) *model.Item {
	return &model.Item{
		Name:        name,
		PointsValue: pointsValue,
		IsActive:    active,
	}
}

func RegisterRequestValid() model.CustomerRegisterRequest {
	return model.CustomerRegisterRequest{Name: "Alice", PIN: "1234"}
}

func RegisterRequestBadPIN() model.CustomerRegisterRequest {
	return model.CustomerRegisterRequest{Name: "Alice", PIN: "12ab"}
}

var (
	ValidPINs = []string{
		"0000",
		"1234",
		"9999",
	}

	InvalidPINs = []string{
		"",
		"123",
		"12345",
		"abcd",
		"12 4",
	}
)
