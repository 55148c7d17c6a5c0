package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/domainmart/domainmart/internal/adapter/events"
	"github.com/domainmart/domainmart/internal/domain/model"
	"github.com/domainmart/domainmart/internal/domain/repository"
	"github.com/domainmart/domainmart/internal/locker"
	"github.com/domainmart/domainmart/internal/usecase"
	"github.com/domainmart/domainmart/internal/worker"
)

// registrationLockTTL bounds how long a crashed run can hold the lock.
const registrationLockTTL = 10 * time.Minute

const registrationLockPrefix = "registration:"

// HealthChecker reports readiness of the backing store.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// DomainmartFacade aggregates the use case layer behind the interfaces the
// HTTP handlers and the worker consume.
type DomainmartFacade struct {
	orders       *usecase.OrderUseCase
	wallets      *usecase.WalletUseCase
	registration *usecase.RegistrationUseCase
	domains      repository.DomainRepository
	locks        locker.Locker
	publisher    events.Publisher
	health       HealthChecker
	logger       *slog.Logger
}

func NewDomainmartFacade(
	orders *usecase.OrderUseCase,
	wallets *usecase.WalletUseCase,
	registration *usecase.RegistrationUseCase,
	domains repository.DomainRepository,
	locks locker.Locker,
	publisher events.Publisher,
	health HealthChecker,
	logger *slog.Logger,
) *DomainmartFacade {
	return &DomainmartFacade{
		orders:       orders,
		wallets:      wallets,
		registration: registration,
		domains:      domains,
		locks:        locks,
		publisher:    publisher,
		health:       health,
		logger:       logger,
	}
}

func (f *DomainmartFacade) Order(ctx context.Context, orderID string) (*model.Order, error) {
	return f.orders.Get(ctx, orderID)
}

func (f *DomainmartFacade) CreatePayment(ctx context.Context, orderID, coin string) (*model.Payment, error) {
	return f.orders.CreatePayment(ctx, orderID, coin)
}

func (f *DomainmartFacade) CheckPayment(ctx context.Context, order *model.Order) (*model.Payment, error) {
	return f.orders.CheckPayment(ctx, order)
}

func (f *DomainmartFacade) ConfirmPayment(ctx context.Context, orderID string, receivedUSD float64) error {
	return f.orders.ConfirmPayment(ctx, orderID, receivedUSD)
}

func (f *DomainmartFacade) OrdersAwaitingPayment(ctx context.Context, limit int) ([]model.Order, error) {
	return f.orders.OrdersAwaitingPayment(ctx, limit)
}

func (f *DomainmartFacade) OrdersAwaitingRegistration(ctx context.Context, limit int) ([]model.Order, error) {
	return f.orders.OrdersAwaitingRegistration(ctx, limit)
}

// RunRegistration executes the registration pipeline under a per-order lock
// and publishes the outcome. Concurrent runs for the same order are rejected
// with worker.ErrRegistrationInProgress.
func (f *DomainmartFacade) RunRegistration(ctx context.Context, orderID string) (model.RegistrationResult, error) {
	key := registrationLockPrefix + orderID
	acquired, err := f.locks.Acquire(ctx, key, registrationLockTTL)
	if err != nil {
		return model.RegistrationResult{}, err
	}
	if !acquired {
		return model.RegistrationResult{}, worker.ErrRegistrationInProgress
	}
	defer func() {
		if err := f.locks.Release(context.WithoutCancel(ctx), key); err != nil {
			f.logger.Warn("registration lock release failed",
				slog.String("order_id", orderID), slog.String("error", err.Error()))
		}
	}()

	result := f.registration.Run(ctx, orderID)

	if err := f.publisher.PublishRegistrationResult(ctx, orderID, result); err != nil {
		f.logger.Error("registration event publish failed",
			slog.String("order_id", orderID), slog.String("error", err.Error()))
	}
	return result, nil
}

func (f *DomainmartFacade) Domains(ctx context.Context, telegramID int64) ([]model.RegisteredDomain, error) {
	return f.domains.ListByOwner(ctx, telegramID)
}

func (f *DomainmartFacade) Balance(ctx context.Context, telegramID int64) (*model.Wallet, error) {
	return f.wallets.Balance(ctx, telegramID)
}

func (f *DomainmartFacade) WalletEntries(ctx context.Context, telegramID int64) ([]model.WalletEntry, error) {
	return f.wallets.Entries(ctx, telegramID)
}

func (f *DomainmartFacade) TopUp(ctx context.Context, telegramID int64, amountUSD float64, orderID string) error {
	return f.wallets.TopUp(ctx, telegramID, amountUSD, orderID)
}

func (f *DomainmartFacade) PayOrder(ctx context.Context, telegramID int64, orderID string) error {
	return f.wallets.PayOrder(ctx, telegramID, orderID)
}

func (f *DomainmartFacade) HealthCheck(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}
