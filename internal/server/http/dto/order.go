package dto

import "time"

// OrderResponse describes an order as exposed via the API.
type OrderResponse struct {
	ID             string    `json:"id"`
	TelegramID     int64     `json:"telegram_id"`
	DomainName     string    `json:"domain_name"`
	NameserverMode string    `json:"nameserver_mode"`
	PaymentStatus  string    `json:"payment_status"`
	TotalPriceUSD  float64   `json:"total_price_usd"`
	CreatedAt      time.Time `json:"created_at"`
}

// PaymentRequest asks for a payment address in the given coin.
type PaymentRequest struct {
	Coin string `json:"coin" binding:"required"`
}

// PaymentResponse carries the gateway payment details for an order.
type PaymentResponse struct {
	Reference   string  `json:"reference"`
	Address     string  `json:"address"`
	ExpectedUSD float64 `json:"expected_usd"`
	Status      string  `json:"status"`
}

// RegistrationResponse reports the outcome of a registration run.
type RegistrationResponse struct {
	Success           bool     `json:"success"`
	DomainName        string   `json:"domain_name"`
	Nameservers       []string `json:"nameservers,omitempty"`
	RegistrarDomainID string   `json:"registrar_domain_id,omitempty"`
	CloudflareZoneID  string   `json:"cloudflare_zone_id,omitempty"`
	Reason            string   `json:"reason,omitempty"`
	Detail            string   `json:"detail,omitempty"`
}
