package test

import (
	"context"

	"github.com/domainmart/domainmart/internal/domain/model"
)

// OrderRepositoryStub implements repository.OrderRepository with
// overridable functions per method.
type OrderRepositoryStub struct {
	GetByIDFn              func(ctx context.Context, orderID string) (*model.Order, error)
	UpdatePaymentStatusFn  func(ctx context.Context, orderID string, status model.PaymentStatus) error
	SetPaymentReferenceFn  func(ctx context.Context, orderID, reference string) error
	SelectPendingBatchFn   func(ctx context.Context, limit int) ([]model.Order, error)
	SelectConfirmedBatchFn func(ctx context.Context, limit int) ([]model.Order, error)
	MarkCompletedFn        func(ctx context.Context, orderID string) error
}

func (s *OrderRepositoryStub) GetByID(ctx context.Context, orderID string) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, orderID)
	}
	return nil, nil
}

func (s *OrderRepositoryStub) UpdatePaymentStatus(ctx context.Context, orderID string, status model.PaymentStatus) error {
	if s.UpdatePaymentStatusFn != nil {
		return s.UpdatePaymentStatusFn(ctx, orderID, status)
	}
	return nil
}

func (s *OrderRepositoryStub) SetPaymentReference(ctx context.Context, orderID, reference string) error {
	if s.SetPaymentReferenceFn != nil {
		return s.SetPaymentReferenceFn(ctx, orderID, reference)
	}
	return nil
}

func (s *OrderRepositoryStub) SelectPendingBatch(ctx context.Context, limit int) ([]model.Order, error) {
	if s.SelectPendingBatchFn != nil {
		return s.SelectPendingBatchFn(ctx, limit)
	}
	return nil, nil
}

func (s *OrderRepositoryStub) SelectConfirmedBatch(ctx context.Context, limit int) ([]model.Order, error) {
	if s.SelectConfirmedBatchFn != nil {
		return s.SelectConfirmedBatchFn(ctx, limit)
	}
	return nil, nil
}

func (s *OrderRepositoryStub) MarkCompleted(ctx context.Context, orderID string) error {
	if s.MarkCompletedFn != nil {
		return s.MarkCompletedFn(ctx, orderID)
	}
	return nil
}

// DomainRepositoryStub implements repository.DomainRepository with
// overridable functions per method.
type DomainRepositoryStub struct {
	GetByNameFn   func(ctx context.Context, domainName string, telegramID int64) (*model.RegisteredDomain, error)
	SaveFn        func(ctx context.Context, domain *model.RegisteredDomain) (*model.RegisteredDomain, error)
	ListByOwnerFn func(ctx context.Context, telegramID int64) ([]model.RegisteredDomain, error)
}

func (s *DomainRepositoryStub) GetByName(ctx context.Context, domainName string, telegramID int64) (*model.RegisteredDomain, error) {
	if s.GetByNameFn != nil {
		return s.GetByNameFn(ctx, domainName, telegramID)
	}
	return nil, nil
}

func (s *DomainRepositoryStub) Save(ctx context.Context, domain *model.RegisteredDomain) (*model.RegisteredDomain, error) {
	if s.SaveFn != nil {
		return s.SaveFn(ctx, domain)
	}
	return domain, nil
}

func (s *DomainRepositoryStub) ListByOwner(ctx context.Context, telegramID int64) ([]model.RegisteredDomain, error) {
	if s.ListByOwnerFn != nil {
		return s.ListByOwnerFn(ctx, telegramID)
	}
	return nil, nil
}

// WalletRepositoryStub implements repository.WalletRepository with
// overridable functions per method.
type WalletRepositoryStub struct {
	GetFn           func(ctx context.Context, telegramID int64) (*model.Wallet, error)
	CreditFn        func(ctx context.Context, telegramID int64, amountUSD float64, orderID string) error
	DebitForOrderFn func(ctx context.Context, telegramID int64, orderID string, amountUSD float64) error
	EntriesFn       func(ctx context.Context, telegramID int64) ([]model.WalletEntry, error)
}

func (s *WalletRepositoryStub) Get(ctx context.Context, telegramID int64) (*model.Wallet, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, telegramID)
	}
	return nil, nil
}

func (s *WalletRepositoryStub) Credit(ctx context.Context, telegramID int64, amountUSD float64, orderID string) error {
	if s.CreditFn != nil {
		return s.CreditFn(ctx, telegramID, amountUSD, orderID)
	}
	return nil
}

func (s *WalletRepositoryStub) DebitForOrder(ctx context.Context, telegramID int64, orderID string, amountUSD float64) error {
	if s.DebitForOrderFn != nil {
		return s.DebitForOrderFn(ctx, telegramID, orderID, amountUSD)
	}
	return nil
}

func (s *WalletRepositoryStub) Entries(ctx context.Context, telegramID int64) ([]model.WalletEntry, error) {
	if s.EntriesFn != nil {
		return s.EntriesFn(ctx, telegramID)
	}
	return nil, nil
}
