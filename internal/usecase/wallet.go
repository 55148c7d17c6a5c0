package usecase

import (
	"context"
	"log/slog"

	"github.com/domainmart/domainmart/internal/domain/errors"
	"github.com/domainmart/domainmart/internal/domain/model"
	"github.com/domainmart/domainmart/internal/domain/repository"
)

// WalletUseCase covers prepaid balances: top-ups, order payments from
// balance, and movement history.
type WalletUseCase struct {
	wallets repository.WalletRepository
	orders  repository.OrderRepository
	logger  *slog.Logger
}

func NewWalletUseCase(wallets repository.WalletRepository, orders repository.OrderRepository, logger *slog.Logger) *WalletUseCase {
	return &WalletUseCase{wallets: wallets, orders: orders, logger: logger}
}

func (u *WalletUseCase) Balance(ctx context.Context, telegramID int64) (*model.Wallet, error) {
	return u.wallets.Get(ctx, telegramID)
}

func (u *WalletUseCase) TopUp(ctx context.Context, telegramID int64, amountUSD float64, orderID string) error {
	if amountUSD <= 0 {
		return errors.ErrInvalidAmount
	}
	return u.wallets.Credit(ctx, telegramID, amountUSD, orderID)
}

// PayOrder settles a pending order from the owner's balance. The debit and
// the payment confirmation happen in one transaction downstream.
func (u *WalletUseCase) PayOrder(ctx context.Context, telegramID int64, orderID string) error {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.TelegramID != telegramID || order.PaymentStatus != model.PaymentStatusPending {
		return errors.ErrOrderInvalid
	}

	if err := u.wallets.DebitForOrder(ctx, telegramID, orderID, order.TotalPriceUSD); err != nil {
		return err
	}
	u.logger.Info("order paid from balance",
		slog.String("order_id", orderID),
		slog.Int64("telegram_id", telegramID),
		slog.Float64("amount_usd", order.TotalPriceUSD))
	return nil
}

func (u *WalletUseCase) Entries(ctx context.Context, telegramID int64) ([]model.WalletEntry, error) {
	return u.wallets.Entries(ctx, telegramID)
}
