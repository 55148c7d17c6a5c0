package dnsprovider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Zone identifies a hosted DNS configuration unit.
type Zone struct {
	ID          string
	Nameservers []string
}

// Record is one DNS record to create inside a zone.
type Record struct {
	Type    string
	Name    string
	Content string
	TTL     int
}

// Client exposes DNS provider operations with explicit outcomes.
type Client interface {
	// CreateOrGetZone is idempotent: an existing zone for the domain is
	// returned instead of creating a duplicate.
	CreateOrGetZone(ctx context.Context, domainName string) (*Zone, error)
	CreateRecord(ctx context.Context, zoneID string, record Record) error
	Nameservers(ctx context.Context, zoneID string) ([]string, error)
}

// HTTPClient implements Client against a Cloudflare-style REST API.
type HTTPClient struct {
	baseURL    *url.URL
	apiToken   string
	httpClient *http.Client
	logger     *slog.Logger
}

// envelope mirrors the provider's response wrapper.
type envelope struct {
	Success bool `json:"success"`
	Errors  []struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
	Result json.RawMessage `json:"result"`
}

type zonePayload struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	NameServers []string `json:"name_servers"`
}

// NewHTTPClient creates a DNS provider client with a bounded request timeout.
func NewHTTPClient(baseURL, apiToken string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse dns provider url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("dns provider url must be absolute")
	}
	return &HTTPClient{
		baseURL:  parsed,
		apiToken: apiToken,
		logger:   logger,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}, nil
}

// CreateOrGetZone finds the zone hosting the domain, creating it on first use.
func (c *HTTPClient) CreateOrGetZone(ctx context.Context, domainName string) (*Zone, error) {
	existing, err := c.findZone(ctx, domainName)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	var created zonePayload
	if err := c.do(ctx, http.MethodPost, "/zones", map[string]any{
		"name":       domainName,
		"jump_start": false,
	}, &created); err != nil {
		return nil, err
	}
	return &Zone{ID: created.ID, Nameservers: created.NameServers}, nil
}

// CreateRecord writes one DNS record into the zone.
func (c *HTTPClient) CreateRecord(ctx context.Context, zoneID string, record Record) error {
	payload := map[string]any{
		"type":    record.Type,
		"name":    record.Name,
		"content": record.Content,
		"ttl":     record.TTL,
	}
	return c.do(ctx, http.MethodPost, "/zones/"+zoneID+"/dns_records", payload, nil)
}

// Nameservers lists the nameservers assigned to the zone.
func (c *HTTPClient) Nameservers(ctx context.Context, zoneID string) ([]string, error) {
	var zone zonePayload
	if err := c.do(ctx, http.MethodGet, "/zones/"+zoneID, nil, &zone); err != nil {
		return nil, err
	}
	return zone.NameServers, nil
}

// findZone looks up a zone by exact name. Idempotent read, retried with
// exponential backoff.
func (c *HTTPClient) findZone(ctx context.Context, domainName string) (*Zone, error) {
	endpoint := "/zones?name=" + url.QueryEscape(domainName)

	var found *Zone
	operation := func() error {
		var zones []zonePayload
		if err := c.do(ctx, http.MethodGet, endpoint, nil, &zones); err != nil {
			return err
		}
		for _, z := range zones {
			if z.Name == domainName {
				found = &Zone{ID: z.ID, Nameservers: z.NameServers}
				return nil
			}
		}
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return found, nil
}

func (c *HTTPClient) do(ctx context.Context, method, apiPath string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(encoded)
	}

	endpoint := c.baseURL.String() + apiPath

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("dns provider request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.logger.Error("dns provider response unparseable",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(raw)),
		)
		return fmt.Errorf("dns provider error: %s", resp.Status)
	}

	if !env.Success {
		detail := "unknown error"
		if len(env.Errors) > 0 {
			detail = env.Errors[0].Message
		}
		c.logger.Error("dns provider request failed",
			slog.Int("status", resp.StatusCode),
			slog.String("detail", detail),
		)
		return fmt.Errorf("dns provider error: %s", detail)
	}

	if out != nil && len(env.Result) > 0 {
		if err := json.Unmarshal(env.Result, out); err != nil {
			return fmt.Errorf("decode dns provider result: %w", err)
		}
	}
	return nil
}
