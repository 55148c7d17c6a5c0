package model

import "time"

// DomainStatus describes the state of a registered domain.
type DomainStatus string

const (
	DomainStatusActive    DomainStatus = "active"
	DomainStatusSuspended DomainStatus = "suspended"
)

// RegisteredDomain is the durable record of a successfully registered domain.
// CloudflareZoneID must be set whenever NameserverMode is cloudflare; the
// persistence layer refuses writes that violate this.
type RegisteredDomain struct {
	ID                int64
	DomainName        string
	TelegramID        int64
	Status            DomainStatus
	NameserverMode    NameserverMode
	CloudflareZoneID  *string
	ContactHandle     string
	RegistrarDomainID string
	Nameservers       []string
	PricePaid         float64
	CreatedAt         time.Time
	ExpiryDate        time.Time
}
