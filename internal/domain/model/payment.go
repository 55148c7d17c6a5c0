package model

// TransactionStatus mirrors the payment gateway's view of a crypto payment.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusConfirmed TransactionStatus = "confirmed"
	TransactionStatusExpired   TransactionStatus = "expired"
)

// Payment encapsulates a crypto payment tracked at the gateway.
type Payment struct {
	OrderID       string
	Reference     string
	Address       string
	ExpectedUSD   float64
	ReceivedUSD   float64
	Confirmations int
	Status        TransactionStatus
}
