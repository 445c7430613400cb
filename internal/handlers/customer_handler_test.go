package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/pkaveh/loyalty-gateway/internal/model"
	"github.com/pkaveh/loyalty-gateway/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) Register(ctx context.Context, p model.CustomerRegisterRequest) (*model.Customer, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *MockCustomerService) GetCard(ctx context.Context, customerID string) (*model.CustomerCard, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CustomerCard), args.Error(1)
}

func (m *MockCustomerService) List(ctx context.Context) ([]*model.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Customer), args.Error(1)
}

func (m *MockCustomerService) Delete(ctx context.Context, customerID string) error {
	args := m.Called(ctx, customerID)
	return args.Error(0)
}

func (m *MockCustomerService) BulkDelete(ctx context.Context, customerIDs []string) (int64, error) {
	args := m.Called(ctx, customerIDs)
	return args.Get(0).(int64), args.Error(1)
}

func TestCustomerHandler_Register(t *testing.T) {
	t.Run("successful registration", func(t *testing.T) {
		svc := new(MockCustomerService)
		handler := NewCustomerHandler(svc)

		bodyBytes, _ := json.Marshal(registerRequest{Name: "Alice", PIN: "1234"})

		svc.On("Register", mock.Anything, model.CustomerRegisterRequest{Name: "Alice", PIN: "1234"}).
			Return(&model.Customer{ID: "LC1700000000000", Name: "Alice", QRCode: "data:image/png;base64,abc"}, nil)

		ctx := setupTestContext("POST", "/customers", bodyBytes)
		handler.Register(ctx)

		assert.Equal(t, 201, ctx.Response.StatusCode())

		var response registerResponse
		require.NoError(t, json.Unmarshal(ctx.Response.Body(), &response))
		assert.True(t, response.Success)
		assert.Equal(t, "LC1700000000000", response.CustomerID)
		assert.Equal(t, "data:image/png;base64,abc", response.QRCode)
		assert.Equal(t, "Customer registered successfully", response.Message)
	})

	t.Run("invalid pin", func(t *testing.T) {
		svc := new(MockCustomerService)
		handler := NewCustomerHandler(svc)

		bodyBytes, _ := json.Marshal(registerRequest{Name: "Alice", PIN: "12"})
		svc.On("Register", mock.Anything, mock.Anything).Return(nil, model.ValidationError("pin must be exactly 4 digits"))

		ctx := setupTestContext("POST", "/customers", bodyBytes)
		handler.Register(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
		assert.Contains(t, string(ctx.Response.Body()), "pin must be exactly 4 digits")
	})

	t.Run("store failure reported generically", func(t *testing.T) {
		svc := new(MockCustomerService)
		handler := NewCustomerHandler(svc)

		bodyBytes, _ := json.Marshal(registerRequest{Name: "Alice", PIN: "1234"})
		svc.On("Register", mock.Anything, mock.Anything).Return(nil, errors.New("pq: connection refused"))

		ctx := setupTestContext("POST", "/customers", bodyBytes)
		handler.Register(ctx)

		assert.Equal(t, 500, ctx.Response.StatusCode())
		assert.Contains(t, string(ctx.Response.Body()), "Internal server error")
		assert.NotContains(t, string(ctx.Response.Body()), "connection refused")
	})
}

func TestCustomerHandler_GetCard(t *testing.T) {
	t.Run("card found", func(t *testing.T) {
		svc := new(MockCustomerService)
		handler := NewCustomerHandler(svc)

		svc.On("GetCard", mock.Anything, "LC1").Return(&model.CustomerCard{
			CustomerName: "Alice",
			TotalRewards: 2,
			ItemPoints:   map[int64]uint{1: 4},
		}, nil)

		ctx := setupTestContext("GET", "/customers/LC1/points", nil)
		ctx.SetUserValue("id", "LC1")
		handler.GetCard(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())

		var card model.CustomerCard
		require.NoError(t, json.Unmarshal(ctx.Response.Body(), &card))
		assert.Equal(t, "Alice", card.CustomerName)
		assert.Equal(t, uint(2), card.TotalRewards)
	})

	t.Run("customer not found", func(t *testing.T) {
		svc := new(MockCustomerService)
		handler := NewCustomerHandler(svc)

		svc.On("GetCard", mock.Anything, "LC404").Return(nil, services.ErrCustomerNotFound)

		ctx := setupTestContext("GET", "/customers/LC404/points", nil)
		ctx.SetUserValue("id", "LC404")
		handler.GetCard(ctx)

		assert.Equal(t, 404, ctx.Response.StatusCode())
	})
}
