package repository

import (
	"context"

	"github.com/domainmart/domainmart/internal/domain/model"
)

// OrderRepository describes persistence operations with purchase orders.
type OrderRepository interface {
	GetByID(ctx context.Context, orderID string) (*model.Order, error)
	UpdatePaymentStatus(ctx context.Context, orderID string, status model.PaymentStatus) error
	SetPaymentReference(ctx context.Context, orderID, reference string) error
	// SelectPendingBatch returns orders awaiting payment confirmation.
	SelectPendingBatch(ctx context.Context, limit int) ([]model.Order, error)
	// SelectConfirmedBatch returns paid orders awaiting registration.
	SelectConfirmedBatch(ctx context.Context, limit int) ([]model.Order, error)
	MarkCompleted(ctx context.Context, orderID string) error
}
