package handlers

import (
	"context"

	"github.com/domainmart/domainmart/internal/domain/model"
)

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	Order(ctx context.Context, orderID string) (*model.Order, error)
	CreatePayment(ctx context.Context, orderID, coin string) (*model.Payment, error)
	ConfirmPayment(ctx context.Context, orderID string, receivedUSD float64) error
}

// DomainFacade exposes registered domain queries.
type DomainFacade interface {
	Domains(ctx context.Context, telegramID int64) ([]model.RegisteredDomain, error)
}

// WalletFacade provides prepaid balance operations.
type WalletFacade interface {
	Balance(ctx context.Context, telegramID int64) (*model.Wallet, error)
	WalletEntries(ctx context.Context, telegramID int64) ([]model.WalletEntry, error)
	TopUp(ctx context.Context, telegramID int64, amountUSD float64, orderID string) error
	PayOrder(ctx context.Context, telegramID int64, orderID string) error
}

// RegistrationRunner triggers a registration pipeline run.
type RegistrationRunner interface {
	RunRegistration(ctx context.Context, orderID string) (model.RegistrationResult, error)
}

// HealthFacade reports readiness of the backing store.
type HealthFacade interface {
	HealthCheck(ctx context.Context) error
}

// DomainmartFacade aggregates the full set of operations used across handlers.
type DomainmartFacade interface {
	OrderFacade
	DomainFacade
	WalletFacade
	RegistrationRunner
	HealthFacade
}
