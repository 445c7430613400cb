package services

import (
	"context"
	"testing"
	"time"

	"github.com/pkaveh/loyalty-gateway/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAnalyticsCustomerReader struct {
	mock.Mock
}

func (m *MockAnalyticsCustomerReader) List(ctx context.Context) ([]*model.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Customer), args.Error(1)
}

func (m *MockAnalyticsCustomerReader) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAnalyticsCustomerReader) CreatedSince(ctx context.Context, since time.Time) ([]*model.Customer, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Customer), args.Error(1)
}

type MockAnalyticsLedgerReader struct {
	mock.Mock
}

func (m *MockAnalyticsLedgerReader) ListAll(ctx context.Context) ([]*model.ItemPoints, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.ItemPoints), args.Error(1)
}

func (m *MockAnalyticsLedgerReader) SumPoints(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockAnalyticsTransactionReader struct {
	mock.Mock
}

func (m *MockAnalyticsTransactionReader) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAnalyticsTransactionReader) TopItems(ctx context.Context, limit int) ([]*model.ItemCount, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.ItemCount), args.Error(1)
}

func (m *MockAnalyticsTransactionReader) RecentWithNames(ctx context.Context, limit int) ([]*model.TransactionDetail, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.TransactionDetail), args.Error(1)
}

func (m *MockAnalyticsTransactionReader) RewardsSince(ctx context.Context, since time.Time) ([]*model.PointTransaction, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.PointTransaction), args.Error(1)
}

func TestAnalyticsService_GetStats(t *testing.T) {
	ctx := context.Background()
	customers := new(MockAnalyticsCustomerReader)
	ledger := new(MockAnalyticsLedgerReader)
	txns := new(MockAnalyticsTransactionReader)
	svc := NewAnalyticsService(customers, ledger, txns)

	customers.On("Count", ctx).Return(int64(3), nil)
	ledger.On("SumPoints", ctx).Return(int64(42), nil)
	customers.On("List", ctx).Return([]*model.Customer{
		{ID: "LC1", Rewards: 2},
		{ID: "LC2", Rewards: 0},
		{ID: "LC3", Rewards: 5},
	}, nil)

	stats, err := svc.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalCustomers)
	assert.Equal(t, int64(42), stats.TotalPoints)
	assert.Equal(t, int64(7), stats.TotalRewards)
}

func TestAnalyticsService_GetAnalytics(t *testing.T) {
	ctx := context.Background()
	customers := new(MockAnalyticsCustomerReader)
	ledger := new(MockAnalyticsLedgerReader)
	txns := new(MockAnalyticsTransactionReader)
	svc := NewAnalyticsService(customers, ledger, txns)

	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	customers.On("Count", ctx).Return(int64(2), nil)
	customers.On("List", ctx).Return([]*model.Customer{
		{ID: "LC1", Rewards: 1},
		{ID: "LC2", Rewards: 0},
	}, nil)
	txns.On("Count", ctx).Return(int64(9), nil)
	ledger.On("ListAll", ctx).Return([]*model.ItemPoints{
		{CustomerID: "LC1", ItemID: 1, Points: 4},
		{CustomerID: "LC1", ItemID: 2, Points: 2},
		{CustomerID: "LC2", ItemID: 1, Points: 6},
	}, nil)
	txns.On("TopItems", ctx, 10).Return([]*model.ItemCount{{Name: "Coffee", Count: 5}}, nil)
	txns.On("RecentWithNames", ctx, 20).Return([]*model.TransactionDetail{}, nil)
	customers.On("CreatedSince", ctx, now.Add(-trendWindow)).Return([]*model.Customer{
		{ID: "LC1", CreatedAt: time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)},
		{ID: "LC2", CreatedAt: time.Date(2024, 3, 10, 17, 0, 0, 0, time.UTC)},
	}, nil)
	txns.On("RewardsSince", ctx, now.Add(-trendWindow)).Return([]*model.PointTransaction{
		{ID: 1, RewardEarned: true, CreatedAt: time.Date(2024, 3, 12, 8, 0, 0, 0, time.UTC)},
		{ID: 2, RewardEarned: true, CreatedAt: time.Date(2024, 3, 14, 8, 0, 0, 0, time.UTC)},
		{ID: 3, RewardEarned: true, CreatedAt: time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC)},
	}, nil)

	analytics, err := svc.GetAnalytics(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(2), analytics.TotalCustomers)
	assert.Equal(t, int64(1), analytics.TotalRewards)
	assert.Equal(t, int64(9), analytics.TotalTransactions)
	// (4+2) for LC1 and 6 for LC2, over two customers with entries.
	assert.Equal(t, 6.0, analytics.AveragePointsPerCustomer)

	require.Len(t, analytics.CustomerGrowth, 1)
	assert.Equal(t, "2024-03-10", analytics.CustomerGrowth[0].Date)
	assert.Equal(t, int64(2), analytics.CustomerGrowth[0].Count)

	require.Len(t, analytics.RewardTrends, 2)
	assert.Equal(t, "2024-03-12", analytics.RewardTrends[0].Date)
	assert.Equal(t, int64(1), analytics.RewardTrends[0].Count)
	assert.Equal(t, "2024-03-14", analytics.RewardTrends[1].Date)
	assert.Equal(t, int64(2), analytics.RewardTrends[1].Count)
}

func TestAnalyticsService_AveragePointsPerCustomer_Empty(t *testing.T) {
	ctx := context.Background()
	customers := new(MockAnalyticsCustomerReader)
	ledger := new(MockAnalyticsLedgerReader)
	txns := new(MockAnalyticsTransactionReader)
	svc := NewAnalyticsService(customers, ledger, txns)

	ledger.On("ListAll", ctx).Return([]*model.ItemPoints{}, nil)

	avg, err := svc.averagePointsPerCustomer(ctx)
	require.NoError(t, err)
	assert.Zero(t, avg)
}
