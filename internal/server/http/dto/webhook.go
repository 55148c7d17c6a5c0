package dto

// PaymentWebhook is the gateway's callback payload. The raw request body is
// authenticated with an HMAC signature before this is decoded.
type PaymentWebhook struct {
	OrderID       string  `json:"order_id" binding:"required"`
	Reference     string  `json:"reference"`
	ValueUSD      float64 `json:"value_usd"`
	Confirmations int     `json:"confirmations"`
	Status        string  `json:"status" binding:"required"`
}
