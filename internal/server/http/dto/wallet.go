package dto

import "time"

// WalletResponse carries the prepaid balance.
type WalletResponse struct {
	TelegramID int64   `json:"telegram_id"`
	BalanceUSD float64 `json:"balance_usd"`
}

// TopUpRequest credits the balance by the given amount.
type TopUpRequest struct {
	AmountUSD float64 `json:"amount_usd" binding:"required"`
	OrderID   string  `json:"order_id"`
}

// PayOrderRequest settles a pending order from the balance.
type PayOrderRequest struct {
	OrderID string `json:"order_id" binding:"required"`
}

// WalletEntryResponse is one balance movement.
type WalletEntryResponse struct {
	OrderID   string    `json:"order_id,omitempty"`
	AmountUSD float64   `json:"amount_usd"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}
