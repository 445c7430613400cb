package services

import (
	"context"
	"errors"
	"testing"

	"github.com/pkaveh/loyalty-gateway/internal/events"
	"github.com/pkaveh/loyalty-gateway/internal/model"
	"github.com/pkaveh/loyalty-gateway/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSettingsReader struct {
	mock.Mock
}

func (m *MockSettingsReader) Get(ctx context.Context) (*model.Settings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Settings), args.Error(1)
}

type MockCustomerStore struct {
	mock.Mock
}

func (m *MockCustomerStore) GetByID(ctx context.Context, id string) (*model.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *MockCustomerStore) IncrementRewards(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockItemReader struct {
	mock.Mock
}

func (m *MockItemReader) GetActive(ctx context.Context, id int64) (*model.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Item), args.Error(1)
}

type MockLedgerStore struct {
	mock.Mock
}

func (m *MockLedgerStore) EnsureExists(ctx context.Context, customerID string, itemID int64) error {
	args := m.Called(ctx, customerID, itemID)
	return args.Error(0)
}

func (m *MockLedgerStore) GetForUpdate(ctx context.Context, customerID string, itemID int64) (*model.ItemPoints, error) {
	args := m.Called(ctx, customerID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ItemPoints), args.Error(1)
}

func (m *MockLedgerStore) SetPoints(ctx context.Context, customerID string, itemID int64, points uint) error {
	args := m.Called(ctx, customerID, itemID, points)
	return args.Error(0)
}

func (m *MockLedgerStore) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, mock.Anything)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}

type MockTransactionStore struct {
	mock.Mock
}

func (m *MockTransactionStore) Create(ctx context.Context, txn *model.PointTransaction) (*model.PointTransaction, error) {
	args := m.Called(ctx, txn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PointTransaction), args.Error(1)
}

type MockAccrualPublisher struct {
	mock.Mock
}

func (m *MockAccrualPublisher) PublishAccrual(ctx context.Context, ev events.AccrualEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

type accrualMocks struct {
	settings *MockSettingsReader
	customer *MockCustomerStore
	item     *MockItemReader
	ledger   *MockLedgerStore
	txn      *MockTransactionStore
}

func newAccrualService(publisher AccrualPublisher) (*AccrualService, *accrualMocks) {
	m := &accrualMocks{
		settings: new(MockSettingsReader),
		customer: new(MockCustomerStore),
		item:     new(MockItemReader),
		ledger:   new(MockLedgerStore),
		txn:      new(MockTransactionStore),
	}
	svc := NewAccrualService(m.settings, m.customer, m.item, m.ledger, m.txn, publisher)
	return svc, m
}

func TestAccrualService_RecordPurchase_Validation(t *testing.T) {
	svc, _ := newAccrualService(nil)
	ctx := context.Background()

	result, err := svc.RecordPurchase(ctx, "", 1)
	assert.ErrorIs(t, err, ErrCustomerIDRequired)
	assert.Nil(t, result)

	result, err = svc.RecordPurchase(ctx, "LC1", 0)
	assert.ErrorIs(t, err, ErrItemIDRequired)
	assert.Nil(t, result)
}

func TestAccrualService_RecordPurchase_CustomerNotFound(t *testing.T) {
	svc, m := newAccrualService(nil)
	ctx := context.Background()

	m.ledger.On("WithinTransaction", ctx, mock.Anything).Return(nil)
	m.settings.On("Get", ctx).Return(&model.Settings{PointsForReward: 10}, nil)
	m.customer.On("GetByID", ctx, "LC404").Return(nil, repository.ErrCustomerNotFound)

	result, err := svc.RecordPurchase(ctx, "LC404", 1)
	assert.ErrorIs(t, err, ErrCustomerNotFound)
	assert.Nil(t, result)

	m.ledger.AssertNotCalled(t, "SetPoints", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	m.txn.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAccrualService_RecordPurchase_ItemNotFoundOrInactive(t *testing.T) {
	svc, m := newAccrualService(nil)
	ctx := context.Background()

	m.ledger.On("WithinTransaction", ctx, mock.Anything).Return(nil)
	m.settings.On("Get", ctx).Return(&model.Settings{PointsForReward: 10}, nil)
	m.customer.On("GetByID", ctx, "LC1").Return(&model.Customer{ID: "LC1", Name: "Alice"}, nil)
	m.item.On("GetActive", ctx, int64(7)).Return(nil, repository.ErrItemNotFound)

	result, err := svc.RecordPurchase(ctx, "LC1", 7)
	assert.ErrorIs(t, err, ErrItemNotFound)
	assert.Nil(t, result)

	m.ledger.AssertNotCalled(t, "SetPoints", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	m.txn.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAccrualService_RecordPurchase_NoReward(t *testing.T) {
	svc, m := newAccrualService(nil)
	ctx := context.Background()

	m.ledger.On("WithinTransaction", ctx, mock.Anything).Return(nil)
	m.settings.On("Get", ctx).Return(&model.Settings{PointsForReward: 10}, nil)
	m.customer.On("GetByID", ctx, "LC1").Return(&model.Customer{ID: "LC1", Name: "Alice"}, nil)
	m.item.On("GetActive", ctx, int64(1)).Return(&model.Item{ID: 1, Name: "Coffee", PointsValue: 3, IsActive: true}, nil)
	m.ledger.On("EnsureExists", ctx, "LC1", int64(1)).Return(nil)
	m.ledger.On("GetForUpdate", ctx, "LC1", int64(1)).Return(&model.ItemPoints{CustomerID: "LC1", ItemID: 1, Points: 2}, nil)
	m.ledger.On("SetPoints", ctx, "LC1", int64(1), uint(5)).Return(nil)
	m.txn.On("Create", ctx, mock.MatchedBy(func(txn *model.PointTransaction) bool {
		return txn.CustomerID == "LC1" && txn.ItemID == 1 && txn.PointsAdded == 3 && !txn.RewardEarned
	})).Return(&model.PointTransaction{ID: 1}, nil)

	result, err := svc.RecordPurchase(ctx, "LC1", 1)
	require.NoError(t, err)
	assert.Equal(t, "Coffee", result.ItemName)
	assert.Equal(t, uint(5), result.TotalItemPoints)
	assert.False(t, result.RewardEarned)
	assert.Equal(t, "3 points added for Coffee", result.Message)

	m.customer.AssertNotCalled(t, "IncrementRewards", mock.Anything, mock.Anything)
	m.ledger.AssertExpectations(t)
	m.txn.AssertExpectations(t)
}

func TestAccrualService_RecordPurchase_RewardEarned(t *testing.T) {
	svc, m := newAccrualService(nil)
	ctx := context.Background()

	// 7 existing + 4 crosses the threshold of 10; 1 point carries over.
	m.ledger.On("WithinTransaction", ctx, mock.Anything).Return(nil)
	m.settings.On("Get", ctx).Return(&model.Settings{PointsForReward: 10}, nil)
	m.customer.On("GetByID", ctx, "LC1").Return(&model.Customer{ID: "LC1", Name: "Alice"}, nil)
	m.item.On("GetActive", ctx, int64(2)).Return(&model.Item{ID: 2, Name: "Sandwich", PointsValue: 4, IsActive: true}, nil)
	m.ledger.On("EnsureExists", ctx, "LC1", int64(2)).Return(nil)
	m.ledger.On("GetForUpdate", ctx, "LC1", int64(2)).Return(&model.ItemPoints{CustomerID: "LC1", ItemID: 2, Points: 7}, nil)
	m.customer.On("IncrementRewards", ctx, "LC1").Return(nil)
	m.ledger.On("SetPoints", ctx, "LC1", int64(2), uint(1)).Return(nil)
	m.txn.On("Create", ctx, mock.MatchedBy(func(txn *model.PointTransaction) bool {
		return txn.PointsAdded == 4 && txn.RewardEarned
	})).Return(&model.PointTransaction{ID: 1}, nil)

	result, err := svc.RecordPurchase(ctx, "LC1", 2)
	require.NoError(t, err)
	assert.True(t, result.RewardEarned)
	assert.Equal(t, uint(1), result.TotalItemPoints)
	assert.Equal(t, "4 points added for Sandwich and reward earned!", result.Message)

	m.customer.AssertExpectations(t)
	m.ledger.AssertExpectations(t)
}

func TestAccrualService_RecordPurchase_ExactThreshold(t *testing.T) {
	svc, m := newAccrualService(nil)
	ctx := context.Background()

	m.ledger.On("WithinTransaction", ctx, mock.Anything).Return(nil)
	m.settings.On("Get", ctx).Return(&model.Settings{PointsForReward: 10}, nil)
	m.customer.On("GetByID", ctx, "LC1").Return(&model.Customer{ID: "LC1", Name: "Alice"}, nil)
	m.item.On("GetActive", ctx, int64(1)).Return(&model.Item{ID: 1, Name: "Coffee", PointsValue: 1, IsActive: true}, nil)
	m.ledger.On("EnsureExists", ctx, "LC1", int64(1)).Return(nil)
	m.ledger.On("GetForUpdate", ctx, "LC1", int64(1)).Return(&model.ItemPoints{CustomerID: "LC1", ItemID: 1, Points: 9}, nil)
	m.customer.On("IncrementRewards", ctx, "LC1").Return(nil)
	m.ledger.On("SetPoints", ctx, "LC1", int64(1), uint(0)).Return(nil)
	m.txn.On("Create", ctx, mock.Anything).Return(&model.PointTransaction{ID: 1}, nil)

	result, err := svc.RecordPurchase(ctx, "LC1", 1)
	require.NoError(t, err)
	assert.True(t, result.RewardEarned)
	assert.Equal(t, uint(0), result.TotalItemPoints)
}

func TestAccrualService_RecordPurchase_PublishesEvent(t *testing.T) {
	publisher := new(MockAccrualPublisher)
	svc, m := newAccrualService(publisher)
	ctx := context.Background()

	m.ledger.On("WithinTransaction", ctx, mock.Anything).Return(nil)
	m.settings.On("Get", ctx).Return(&model.Settings{PointsForReward: 10}, nil)
	m.customer.On("GetByID", ctx, "LC1").Return(&model.Customer{ID: "LC1", Name: "Alice"}, nil)
	m.item.On("GetActive", ctx, int64(1)).Return(&model.Item{ID: 1, Name: "Coffee", PointsValue: 3, IsActive: true}, nil)
	m.ledger.On("EnsureExists", ctx, "LC1", int64(1)).Return(nil)
	m.ledger.On("GetForUpdate", ctx, "LC1", int64(1)).Return(&model.ItemPoints{CustomerID: "LC1", ItemID: 1, Points: 0}, nil)
	m.ledger.On("SetPoints", ctx, "LC1", int64(1), uint(3)).Return(nil)
	m.txn.On("Create", ctx, mock.Anything).Return(&model.PointTransaction{ID: 1}, nil)

	// The event carries the item's point value, not the counter remainder.
	publisher.On("PublishAccrual", ctx, mock.MatchedBy(func(ev events.AccrualEvent) bool {
		return ev.CustomerID == "LC1" && ev.ItemID == 1 && ev.PointsAdded == 3 && !ev.RewardEarned
	})).Return(errors.New("redis down"))

	// A failed publish must not fail a committed accrual.
	result, err := svc.RecordPurchase(ctx, "LC1", 1)
	require.NoError(t, err)
	assert.Equal(t, uint(3), result.TotalItemPoints)

	publisher.AssertExpectations(t)
}

func TestAccrualService_RecordPurchase_TransactionError(t *testing.T) {
	svc, m := newAccrualService(nil)
	ctx := context.Background()

	m.ledger.On("WithinTransaction", ctx, mock.Anything).Return(errors.New("deadlock"))

	result, err := svc.RecordPurchase(ctx, "LC1", 1)
	assert.Error(t, err)
	assert.Nil(t, result)
}
