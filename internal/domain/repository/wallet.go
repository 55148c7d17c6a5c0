package repository

import (
	"context"

	"github.com/domainmart/domainmart/internal/domain/model"
)

// WalletRepository describes persistence operations with prepaid balances.
type WalletRepository interface {
	Get(ctx context.Context, telegramID int64) (*model.Wallet, error)
	// Credit tops up the balance, recording a wallet entry.
	Credit(ctx context.Context, telegramID int64, amountUSD float64, orderID string) error
	// DebitForOrder atomically deducts the order price and marks the order's
	// payment confirmed. Fails with ErrInsufficientBalance without writing.
	DebitForOrder(ctx context.Context, telegramID int64, orderID string, amountUSD float64) error
	Entries(ctx context.Context, telegramID int64) ([]model.WalletEntry, error)
}
