package usecase

import (
	"context"
	"log/slog"

	"github.com/domainmart/domainmart/internal/adapter/payments"
	"github.com/domainmart/domainmart/internal/domain/errors"
	"github.com/domainmart/domainmart/internal/domain/model"
	"github.com/domainmart/domainmart/internal/domain/repository"
)

// OrderUseCase covers order lookup and the payment side of the order
// lifecycle: issuing payment addresses and confirming received amounts.
type OrderUseCase struct {
	orders       repository.OrderRepository
	gateway      payments.Client
	tolerancePct float64
	logger       *slog.Logger
}

func NewOrderUseCase(orders repository.OrderRepository, gateway payments.Client, tolerancePct float64, logger *slog.Logger) *OrderUseCase {
	return &OrderUseCase{
		orders:       orders,
		gateway:      gateway,
		tolerancePct: tolerancePct,
		logger:       logger,
	}
}

func (u *OrderUseCase) Get(ctx context.Context, orderID string) (*model.Order, error) {
	return u.orders.GetByID(ctx, orderID)
}

// CreatePayment requests a payment address from the gateway and attaches the
// returned reference to the order for later reconciliation.
func (u *OrderUseCase) CreatePayment(ctx context.Context, orderID, coin string) (*model.Payment, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.PaymentStatus != model.PaymentStatusPending {
		return nil, errors.ErrOrderInvalid
	}

	payment, err := u.gateway.CreatePayment(ctx, order.ID, order.TotalPriceUSD, coin)
	if err != nil {
		return nil, err
	}
	if err := u.orders.SetPaymentReference(ctx, order.ID, payment.Reference); err != nil {
		return nil, err
	}
	return payment, nil
}

// CheckPayment queries the gateway for the order's payment state. Orders
// without a reference have no payment to check.
func (u *OrderUseCase) CheckPayment(ctx context.Context, order *model.Order) (*model.Payment, error) {
	if order.PaymentReference == "" {
		return nil, payments.ErrPaymentNotFound
	}
	return u.gateway.CheckTransaction(ctx, order.PaymentReference)
}

// ConfirmPayment marks the order paid when the received amount covers the
// order total within the configured underpayment tolerance. Confirming an
// already-confirmed order is a no-op.
func (u *OrderUseCase) ConfirmPayment(ctx context.Context, orderID string, receivedUSD float64) error {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}

	switch order.PaymentStatus {
	case model.PaymentStatusConfirmed, model.PaymentStatusCompleted:
		return nil
	case model.PaymentStatusFailed:
		return errors.ErrOrderInvalid
	}

	required := order.TotalPriceUSD * (1 - u.tolerancePct/100)
	if receivedUSD < required {
		u.logger.Warn("payment below tolerance",
			slog.String("order_id", orderID),
			slog.Float64("received_usd", receivedUSD),
			slog.Float64("required_usd", required))
		return errors.ErrInvalidAmount
	}

	return u.orders.UpdatePaymentStatus(ctx, orderID, model.PaymentStatusConfirmed)
}

// OrdersAwaitingPayment returns a batch of orders still waiting for their
// payment to confirm.
func (u *OrderUseCase) OrdersAwaitingPayment(ctx context.Context, limit int) ([]model.Order, error) {
	return u.orders.SelectPendingBatch(ctx, limit)
}

// OrdersAwaitingRegistration returns a batch of paid orders whose domains
// have not been registered yet.
func (u *OrderUseCase) OrdersAwaitingRegistration(ctx context.Context, limit int) ([]model.Order, error) {
	return u.orders.SelectConfirmedBatch(ctx, limit)
}

func (u *OrderUseCase) MarkCompleted(ctx context.Context, orderID string) error {
	return u.orders.MarkCompleted(ctx, orderID)
}
