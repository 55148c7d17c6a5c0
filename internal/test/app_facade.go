package test

import (
	"context"

	"github.com/domainmart/domainmart/internal/domain/model"
)

// AppFacadeStub implements the aggregated handler facade with overridable
// functions per method.
type AppFacadeStub struct {
	OrderFn          func(ctx context.Context, orderID string) (*model.Order, error)
	CreatePaymentFn  func(ctx context.Context, orderID, coin string) (*model.Payment, error)
	ConfirmPaymentFn func(ctx context.Context, orderID string, receivedUSD float64) error
	DomainsFn        func(ctx context.Context, telegramID int64) ([]model.RegisteredDomain, error)
	BalanceFn        func(ctx context.Context, telegramID int64) (*model.Wallet, error)
	WalletEntriesFn  func(ctx context.Context, telegramID int64) ([]model.WalletEntry, error)
	TopUpFn          func(ctx context.Context, telegramID int64, amountUSD float64, orderID string) error
	PayOrderFn       func(ctx context.Context, telegramID int64, orderID string) error
	RunFn            func(ctx context.Context, orderID string) (model.RegistrationResult, error)
	HealthFn         func(ctx context.Context) error
}

func (s *AppFacadeStub) Order(ctx context.Context, orderID string) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, orderID)
	}
	return &model.Order{ID: orderID}, nil
}

func (s *AppFacadeStub) CreatePayment(ctx context.Context, orderID, coin string) (*model.Payment, error) {
	if s.CreatePaymentFn != nil {
		return s.CreatePaymentFn(ctx, orderID, coin)
	}
	return &model.Payment{OrderID: orderID, Reference: "ref-1"}, nil
}

func (s *AppFacadeStub) ConfirmPayment(ctx context.Context, orderID string, receivedUSD float64) error {
	if s.ConfirmPaymentFn != nil {
		return s.ConfirmPaymentFn(ctx, orderID, receivedUSD)
	}
	return nil
}

func (s *AppFacadeStub) Domains(ctx context.Context, telegramID int64) ([]model.RegisteredDomain, error) {
	if s.DomainsFn != nil {
		return s.DomainsFn(ctx, telegramID)
	}
	return nil, nil
}

func (s *AppFacadeStub) Balance(ctx context.Context, telegramID int64) (*model.Wallet, error) {
	if s.BalanceFn != nil {
		return s.BalanceFn(ctx, telegramID)
	}
	return &model.Wallet{TelegramID: telegramID}, nil
}

func (s *AppFacadeStub) WalletEntries(ctx context.Context, telegramID int64) ([]model.WalletEntry, error) {
	if s.WalletEntriesFn != nil {
		return s.WalletEntriesFn(ctx, telegramID)
	}
	return nil, nil
}

func (s *AppFacadeStub) TopUp(ctx context.Context, telegramID int64, amountUSD float64, orderID string) error {
	if s.TopUpFn != nil {
		return s.TopUpFn(ctx, telegramID, amountUSD, orderID)
	}
	return nil
}

func (s *AppFacadeStub) PayOrder(ctx context.Context, telegramID int64, orderID string) error {
	if s.PayOrderFn != nil {
		return s.PayOrderFn(ctx, telegramID, orderID)
	}
	return nil
}

func (s *AppFacadeStub) RunRegistration(ctx context.Context, orderID string) (model.RegistrationResult, error) {
	if s.RunFn != nil {
		return s.RunFn(ctx, orderID)
	}
	return model.RegistrationResult{Success: true}, nil
}

func (s *AppFacadeStub) HealthCheck(ctx context.Context) error {
	if s.HealthFn != nil {
		return s.HealthFn(ctx)
	}
	return nil
}
