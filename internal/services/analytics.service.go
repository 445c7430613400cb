package services

import (
	"context"
	"sort"
	"time"

	"github.com/pkaveh/loyalty-gateway/internal/model"
)

type AnalyticsCustomerReader interface {
	List(ctx context.Context) ([]*model.Customer, error)
	Count(ctx context.Context) (int64, error)
	CreatedSince(ctx context.Context, since time.Time) ([]*model.Customer, error)
}

type AnalyticsLedgerReader interface {
	ListAll(ctx context.Context) ([]*model.ItemPoints, error)
	SumPoints(ctx context.Context) (int64, error)
}

type AnalyticsTransactionReader interface {
	Count(ctx context.Context) (int64, error)
	TopItems(ctx context.Context, limit int) ([]*model.ItemCount, error)
	RecentWithNames(ctx context.Context, limit int) ([]*model.TransactionDetail, error)
	RewardsSince(ctx context.Context, since time.Time) ([]*model.PointTransaction, error)
}

// Stats is the lightweight dashboard header.
type Stats struct {
	TotalCustomers int64 `json:"totalCustomers"`
	TotalPoints    int64 `json:"totalPoints"`
	TotalRewards   int64 `json:"totalRewards"`
}

// Analytics is the full admin analytics payload.
type Analytics struct {
	TotalCustomers           int64                      `json:"totalCustomers"`
	TotalRewards             int64                      `json:"totalRewards"`
	TotalTransactions        int64                      `json:"totalTransactions"`
	AveragePointsPerCustomer float64                    `json:"averagePointsPerCustomer"`
	TopItems                 []*model.ItemCount         `json:"topItems"`
	RecentTransactions       []*model.TransactionDetail `json:"recentTransactions"`
	CustomerGrowth           []*model.DayCount          `json:"customerGrowth"`
	RewardTrends             []*model.DayCount          `json:"rewardTrends"`
}

const trendWindow = 30 * 24 * time.Hour

type AnalyticsService struct {
	customerRepo AnalyticsCustomerReader
	ledgerRepo   AnalyticsLedgerReader
	txnRepo      AnalyticsTransactionReader
	now          func() time.Time
}

func NewAnalyticsService(customerRepo AnalyticsCustomerReader, ledgerRepo AnalyticsLedgerReader, txnRepo AnalyticsTransactionReader) *AnalyticsService {
	return &AnalyticsService{
		customerRepo: customerRepo,
		ledgerRepo:   ledgerRepo,
		txnRepo:      txnRepo,
		now:          time.Now,
	}
}

func (s *AnalyticsService) GetStats(ctx context.Context) (*Stats, error) {
	total, err := s.customerRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	points, err := s.ledgerRepo.SumPoints(ctx)
	if err != nil {
		return nil, err
	}

	rewards, err := s.sumRewards(ctx)
	if err != nil {
		return nil, err
	}

	return &Stats{
		TotalCustomers: total,
		TotalPoints:    points,
		TotalRewards:   rewards,
	}, nil
}

func (s *AnalyticsService) GetAnalytics(ctx context.Context) (*Analytics, error) {
	since := s.now().Add(-trendWindow)

	totalCustomers, err := s.customerRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	totalRewards, err := s.sumRewards(ctx)
	if err != nil {
		return nil, err
	}

	totalTransactions, err := s.txnRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	avg, err := s.averagePointsPerCustomer(ctx)
	if err != nil {
		return nil, err
	}

	topItems, err := s.txnRepo.TopItems(ctx, 10)
	if err != nil {
		return nil, err
	}

	recent, err := s.txnRepo.RecentWithNames(ctx, 20)
	if err != nil {
		return nil, err
	}

	growth, err := s.customerGrowth(ctx, since)
	if err != nil {
		return nil, err
	}

	trends, err := s.rewardTrends(ctx, since)
	if err != nil {
		return nil, err
	}

	return &Analytics{
		TotalCustomers:           totalCustomers,
		TotalRewards:             totalRewards,
		TotalTransactions:        totalTransactions,
		AveragePointsPerCustomer: avg,
		TopItems:                 topItems,
		RecentTransactions:       recent,
		CustomerGrowth:           growth,
		RewardTrends:             trends,
	}, nil
}

func (s *AnalyticsService) sumRewards(ctx context.Context) (int64, error) {
	customers, err := s.customerRepo.List(ctx)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, c := range customers {
		total += int64(c.Rewards)
	}
	return total, nil
}

// averagePointsPerCustomer averages outstanding points over customers that
// have at least one ledger entry, matching the dashboard's definition.
func (s *AnalyticsService) averagePointsPerCustomer(ctx context.Context) (float64, error) {
	entries, err := s.ledgerRepo.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	perCustomer := make(map[string]uint)
	for _, e := range entries {
		perCustomer[e.CustomerID] += e.Points
	}

	if len(perCustomer) == 0 {
		return 0, nil
	}

	var total uint
	for _, p := range perCustomer {
		total += p
	}

	return float64(total) / float64(len(perCustomer)), nil
}

func (s *AnalyticsService) customerGrowth(ctx context.Context, since time.Time) ([]*model.DayCount, error) {
	customers, err := s.customerRepo.CreatedSince(ctx, since)
	if err != nil {
		return nil, err
	}

	buckets := make(map[string]int64)
	for _, c := range customers {
		buckets[c.CreatedAt.UTC().Format("2006-01-02")]++
	}

	return sortedDayCounts(buckets), nil
}

func (s *AnalyticsService) rewardTrends(ctx context.Context, since time.Time) ([]*model.DayCount, error) {
	txns, err := s.txnRepo.RewardsSince(ctx, since)
	if err != nil {
		return nil, err
	}

	buckets := make(map[string]int64)
	for _, t := range txns {
		buckets[t.CreatedAt.UTC().Format("2006-01-02")]++
	}

	return sortedDayCounts(buckets), nil
}

func sortedDayCounts(buckets map[string]int64) []*model.DayCount {
	out := make([]*model.DayCount, 0, len(buckets))
	for date, count := range buckets {
		out = append(out, &model.DayCount{Date: date, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
