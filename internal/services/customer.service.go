package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/pkaveh/loyalty-gateway/internal/model"
	"github.com/pkaveh/loyalty-gateway/internal/repository"
)

type CustomerRepository interface {
	Create(ctx context.Context, c *model.Customer) (*model.Customer, error)
	GetByID(ctx context.Context, id string) (*model.Customer, error)
	List(ctx context.Context) ([]*model.Customer, error)
	Delete(ctx context.Context, id string) error
	BulkDelete(ctx context.Context, ids []string) (int64, error)
}

type LedgerReader interface {
	ListByCustomer(ctx context.Context, customerID string) ([]*model.ItemPoints, error)
}

type QRGenerator interface {
	DataURL(content string) (string, error)
}

type CustomerService struct {
	customerRepo CustomerRepository
	ledgerRepo   LedgerReader
	qr           QRGenerator
	now          func() time.Time
}

func NewCustomerService(customerRepo CustomerRepository, ledgerRepo LedgerReader, qr QRGenerator) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		ledgerRepo:   ledgerRepo,
		qr:           qr,
		now:          time.Now,
	}
}

// Register creates a customer with a fresh card token and its QR image.
// The token is the scannable identifier: staff scanners resolve it back to
// the customer on every purchase.
func (s *CustomerService) Register(ctx context.Context, p model.CustomerRegisterRequest) (*model.Customer, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	id := s.newCardToken()

	qrCode := ""
	if s.qr != nil {
		var err error
		qrCode, err = s.qr.DataURL(id)
		if err != nil {
			return nil, fmt.Errorf("generate qr code: %w", err)
		}
	}

	customer := &model.Customer{
		ID:      id,
		Name:    p.Name,
		PIN:     p.PIN,
		Rewards: 0,
		QRCode:  qrCode,
	}

	return s.customerRepo.Create(ctx, customer)
}

// GetCard assembles the customer-facing card view: name, reward count and
// the current counter for every item they have bought.
func (s *CustomerService) GetCard(ctx context.Context, customerID string) (*model.CustomerCard, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	entries, err := s.ledgerRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	itemPoints := make(map[int64]uint, len(entries))
	for _, e := range entries {
		itemPoints[e.ItemID] = e.Points
	}

	return &model.CustomerCard{
		CustomerName: customer.Name,
		TotalRewards: customer.Rewards,
		ItemPoints:   itemPoints,
	}, nil
}

func (s *CustomerService) List(ctx context.Context) ([]*model.Customer, error) {
	return s.customerRepo.List(ctx)
}

func (s *CustomerService) Delete(ctx context.Context, customerID string) error {
	err := s.customerRepo.Delete(ctx, customerID)
	if errors.Is(err, repository.ErrCustomerNotFound) {
		return ErrCustomerNotFound
	}
	return err
}

func (s *CustomerService) BulkDelete(ctx context.Context, customerIDs []string) (int64, error) {
	return s.customerRepo.BulkDelete(ctx, customerIDs)
}

// newCardToken mints the opaque customer identifier encoded in the QR
// code. The millisecond timestamp keeps tokens short enough to type by
// hand in the manual-entry fallback.
func (s *CustomerService) newCardToken() string {
	return "LC" + strconv.FormatInt(s.now().UnixMilli(), 10)
}
