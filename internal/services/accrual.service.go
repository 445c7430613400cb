package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pkaveh/loyalty-gateway/internal/events"
	"github.com/pkaveh/loyalty-gateway/internal/model"
	"github.com/pkaveh/loyalty-gateway/internal/repository"
	"github.com/pkaveh/loyalty-gateway/pkg/logger"
	"github.com/pkaveh/loyalty-gateway/pkg/prom"
)

var (
	ErrCustomerIDRequired = errors.New("customer id is required")
	ErrItemIDRequired     = errors.New("item id is required")
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrItemNotFound       = errors.New("item not found or inactive")
)

type SettingsReader interface {
	Get(ctx context.Context) (*model.Settings, error)
}

type CustomerStore interface {
	GetByID(ctx context.Context, id string) (*model.Customer, error)
	IncrementRewards(ctx context.Context, id string) error
}

type ItemReader interface {
	GetActive(ctx context.Context, id int64) (*model.Item, error)
}

type LedgerStore interface {
	EnsureExists(ctx context.Context, customerID string, itemID int64) error
	GetForUpdate(ctx context.Context, customerID string, itemID int64) (*model.ItemPoints, error)
	SetPoints(ctx context.Context, customerID string, itemID int64, points uint) error
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type TransactionStore interface {
	Create(ctx context.Context, txn *model.PointTransaction) (*model.PointTransaction, error)
}

type AccrualPublisher interface {
	PublishAccrual(ctx context.Context, ev events.AccrualEvent) error
}

// AccrualResult is what the scanning UI shows the staff member after a
// purchase is logged.
type AccrualResult struct {
	ItemName        string `json:"itemName"`
	TotalItemPoints uint   `json:"totalItemPoints"`
	RewardEarned    bool   `json:"rewardEarned"`
	Message         string `json:"message"`
}

// AccrualService applies purchase events to the loyalty ledger: it adds an
// item's point value to the customer's counter for that item, issues a
// reward when the counter crosses the configured threshold, and records
// the event for audit and analytics.
type AccrualService struct {
	settingsRepo SettingsReader
	customerRepo CustomerStore
	itemRepo     ItemReader
	ledgerRepo   LedgerStore
	txnRepo      TransactionStore
	publisher    AccrualPublisher
}

func NewAccrualService(settingsRepo SettingsReader, customerRepo CustomerStore, itemRepo ItemReader, ledgerRepo LedgerStore, txnRepo TransactionStore, publisher AccrualPublisher) *AccrualService {
	return &AccrualService{
		settingsRepo: settingsRepo,
		customerRepo: customerRepo,
		itemRepo:     itemRepo,
		ledgerRepo:   ledgerRepo,
		txnRepo:      txnRepo,
		publisher:    publisher,
	}
}

// RecordPurchase logs one purchase of itemID for customerID. The ledger
// update, reward credit and transaction insert run in a single database
// transaction, with the ledger row locked for the duration, so concurrent
// scans for the same customer and item serialize instead of losing points.
//
// A single purchase grants at most one reward: the counter resets to the
// remainder above one threshold and is not re-checked. An item worth more
// than two thresholds would still credit one reward per scan.
func (s *AccrualService) RecordPurchase(ctx context.Context, customerID string, itemID int64) (*AccrualResult, error) {
	if customerID == "" {
		return nil, ErrCustomerIDRequired
	}
	if itemID == 0 {
		return nil, ErrItemIDRequired
	}

	start := time.Now()

	var (
		result      *AccrualResult
		pointsAdded uint
	)
	err := s.ledgerRepo.WithinTransaction(ctx, func(ctx context.Context) error {
		settings, err := s.settingsRepo.Get(ctx)
		if err != nil {
			return fmt.Errorf("load settings: %w", err)
		}
		threshold := settings.PointsForReward

		customer, err := s.customerRepo.GetByID(ctx, customerID)
		if err != nil {
			if errors.Is(err, repository.ErrCustomerNotFound) {
				return ErrCustomerNotFound
			}
			return fmt.Errorf("load customer: %w", err)
		}

		item, err := s.itemRepo.GetActive(ctx, itemID)
		if err != nil {
			if errors.Is(err, repository.ErrItemNotFound) {
				return ErrItemNotFound
			}
			return fmt.Errorf("load item: %w", err)
		}

		if err := s.ledgerRepo.EnsureExists(ctx, customer.ID, item.ID); err != nil {
			return fmt.Errorf("init ledger entry: %w", err)
		}

		entry, err := s.ledgerRepo.GetForUpdate(ctx, customer.ID, item.ID)
		if err != nil {
			return fmt.Errorf("lock ledger entry: %w", err)
		}

		newTotal := entry.Points + item.PointsValue
		rewardEarned := newTotal >= threshold

		stored := newTotal
		if rewardEarned {
			stored = newTotal - threshold
			if err := s.customerRepo.IncrementRewards(ctx, customer.ID); err != nil {
				return fmt.Errorf("credit reward: %w", err)
			}
		}

		if err := s.ledgerRepo.SetPoints(ctx, customer.ID, item.ID, stored); err != nil {
			return fmt.Errorf("store ledger entry: %w", err)
		}

		txn := &model.PointTransaction{
			CustomerID:   customer.ID,
			ItemID:       item.ID,
			PointsAdded:  item.PointsValue,
			RewardEarned: rewardEarned,
		}
		if _, err := s.txnRepo.Create(ctx, txn); err != nil {
			return fmt.Errorf("record transaction: %w", err)
		}
		pointsAdded = item.PointsValue

		msg := fmt.Sprintf("%d points added for %s", item.PointsValue, item.Name)
		if rewardEarned {
			msg = fmt.Sprintf("%d points added for %s and reward earned!", item.PointsValue, item.Name)
		}

		result = &AccrualResult{
			ItemName:        item.Name,
			TotalItemPoints: stored,
			RewardEarned:    rewardEarned,
			Message:         msg,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	prom.ObserveAccrual(time.Since(start), result.RewardEarned)

	// The event stream is advisory (live dashboards); a publish failure
	// must not undo a committed accrual.
	if s.publisher != nil {
		ev := events.AccrualEvent{
			CustomerID:   customerID,
			ItemID:       itemID,
			PointsAdded:  pointsAdded,
			RewardEarned: result.RewardEarned,
			OccurredAt:   time.Now().UTC(),
		}
		if err := s.publisher.PublishAccrual(ctx, ev); err != nil {
			logger.Warn("failed to publish accrual event", "customer_id", customerID, "item_id", itemID, "error", err)
		}
	}

	return result, nil
}
