package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/domainmart/domainmart/internal/domain/model"
)

// ErrPaymentNotFound indicates the gateway has no payment under the reference.
var ErrPaymentNotFound = errors.New("payment not found at gateway")

// Client exposes crypto payment gateway operations.
type Client interface {
	// CreatePayment opens a payment address for the order at the gateway.
	CreatePayment(ctx context.Context, orderID string, amountUSD float64, coin string) (*model.Payment, error)
	// CheckTransaction reports the current gateway view of the payment.
	CheckTransaction(ctx context.Context, reference string) (*model.Payment, error)
}

// HTTPClient implements Client against a BlockBee-style REST API. Status
// checks run behind a circuit breaker: the gateway is polled frequently and
// an outage must not pile up blocked workers.
type HTTPClient struct {
	baseURL    *url.URL
	apiKey     string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*model.Payment]
	logger     *slog.Logger
}

// paymentPayload mirrors the gateway's JSON representation of a payment.
type paymentPayload struct {
	Reference     string  `json:"uuid"`
	OrderID       string  `json:"order_id"`
	Address       string  `json:"address_in"`
	ValueUSD      float64 `json:"value_coin_convert_usd"`
	ReceivedUSD   float64 `json:"value_received_usd"`
	Confirmations int     `json:"confirmations"`
	Status        string  `json:"status"`
}

// NewHTTPClient creates a gateway client with a bounded request timeout.
func NewHTTPClient(baseURL, apiKey string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse payment gateway url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("payment gateway url must be absolute")
	}

	breaker := gobreaker.NewCircuitBreaker[*model.Payment](gobreaker.Settings{
		Name:    "payment-gateway",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &HTTPClient{
		baseURL: parsed,
		apiKey:  apiKey,
		logger:  logger,
		breaker: breaker,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}, nil
}

// CreatePayment opens a payment at the gateway and returns its address.
func (c *HTTPClient) CreatePayment(ctx context.Context, orderID string, amountUSD float64, coin string) (*model.Payment, error) {
	endpoint := *c.baseURL
	endpoint.Path += "/payments"
	query := endpoint.Query()
	query.Set("apikey", c.apiKey)
	query.Set("order_id", orderID)
	query.Set("value", fmt.Sprintf("%.2f", amountUSD))
	query.Set("coin", coin)
	endpoint.RawQuery = query.Encode()

	payment, err := c.fetch(ctx, endpoint.String())
	if err != nil {
		return nil, err
	}
	payment.OrderID = orderID
	payment.ExpectedUSD = amountUSD
	return payment, nil
}

// CheckTransaction queries payment status through the circuit breaker.
func (c *HTTPClient) CheckTransaction(ctx context.Context, reference string) (*model.Payment, error) {
	return c.breaker.Execute(func() (*model.Payment, error) {
		endpoint := *c.baseURL
		endpoint.Path += "/payments/" + reference
		query := endpoint.Query()
		query.Set("apikey", c.apiKey)
		endpoint.RawQuery = query.Encode()

		return c.fetch(ctx, endpoint.String())
	})
}

func (c *HTTPClient) fetch(ctx context.Context, endpoint string) (*model.Payment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payment gateway request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		var data paymentPayload
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("decode payment gateway response: %w", err)
		}
		return &model.Payment{
			OrderID:       data.OrderID,
			Reference:     data.Reference,
			Address:       data.Address,
			ExpectedUSD:   data.ValueUSD,
			ReceivedUSD:   data.ReceivedUSD,
			Confirmations: data.Confirmations,
			Status:        mapStatus(data.Status),
		}, nil
	case http.StatusNotFound:
		return nil, ErrPaymentNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("payment gateway request failed",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)),
		)
		return nil, fmt.Errorf("payment gateway error: %s", resp.Status)
	}
}

func mapStatus(status string) model.TransactionStatus {
	switch status {
	case "confirmed", "done":
		return model.TransactionStatusConfirmed
	case "expired", "canceled":
		return model.TransactionStatusExpired
	default:
		return model.TransactionStatusPending
	}
}
