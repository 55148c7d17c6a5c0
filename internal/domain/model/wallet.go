package model

import "time"

// Wallet aggregates a user's prepaid balance.
type Wallet struct {
	TelegramID int64
	BalanceUSD float64
}

// WalletEntryKind distinguishes balance credits from debits.
type WalletEntryKind string

const (
	WalletEntryCredit WalletEntryKind = "credit"
	WalletEntryDebit  WalletEntryKind = "debit"
)

// WalletEntry is one movement on a wallet, linked to an order when the
// movement paid for one.
type WalletEntry struct {
	ID         int64
	TelegramID int64
	OrderID    string
	AmountUSD  float64
	Kind       WalletEntryKind
	CreatedAt  time.Time
}
