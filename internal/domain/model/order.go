package model

import "time"

// NameserverMode describes who authoritatively serves DNS for a domain.
type NameserverMode string

const (
	NameserverModeCloudflare NameserverMode = "cloudflare"
	NameserverModeCustom     NameserverMode = "custom"
	NameserverModeRegistrar  NameserverMode = "registrar"
)

// PaymentStatus describes the payment lifecycle of an order.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusConfirmed PaymentStatus = "confirmed"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// Order describes a user's purchase intent for a domain name.
// CustomNameservers is populated only when NameserverMode is custom.
type Order struct {
	ID                string
	TelegramID        int64
	DomainName        string
	NameserverMode    NameserverMode
	CustomNameservers []string
	Email             string
	PaymentStatus     PaymentStatus
	PaymentReference  string
	TotalPriceUSD     float64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
