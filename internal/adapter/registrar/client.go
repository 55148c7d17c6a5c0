package registrar

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// ErrDuplicateDomain is a distinguished outcome, not a failure: the registrar
// reports the domain as already registered. Callers recover via a local or
// registrar-side lookup instead of treating the run as failed.
var ErrDuplicateDomain = errors.New("domain already registered")

// ErrDomainNotFound indicates the registrar has no domain under the queried name.
var ErrDomainNotFound = errors.New("domain not found at registrar")

// ContactRequest carries registrant details for creating a contact handle.
type ContactRequest struct {
	TelegramID int64
	Name       string
	Email      string
}

// RegisterRequest carries everything needed to register one domain.
type RegisterRequest struct {
	Root           string
	TLD            string
	ContactHandle  string
	Nameservers    []string
	TechnicalEmail string
	// AdditionalData holds registry extension fields required by some TLDs.
	AdditionalData map[string]string
}

// Client exposes registrar operations with explicit outcomes.
type Client interface {
	CreateContact(ctx context.Context, req ContactRequest) (string, error)
	// RegisterDomain returns the registrar's domain ID, or ErrDuplicateDomain
	// when the domain already exists there.
	RegisterDomain(ctx context.Context, req RegisterRequest) (string, error)
	// LookupDomain resolves an existing registration's ID by name.
	LookupDomain(ctx context.Context, root, tld string) (string, error)
}

// HTTPClient implements Client against an OpenProvider-style REST API.
type HTTPClient struct {
	baseURL    *url.URL
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// envelope mirrors the registrar response wrapper: a numeric code with zero
// meaning success, a description, and operation-specific data.
type envelope struct {
	Code int             `json:"code"`
	Desc string          `json:"desc"`
	Data json.RawMessage `json:"data"`
}

const duplicateDomainCode = 346

// NewHTTPClient creates a registrar client with a bounded request timeout.
func NewHTTPClient(baseURL, token string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse registrar url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("registrar url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		token:   token,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// CreateContact registers registrant contact details and returns the handle.
func (c *HTTPClient) CreateContact(ctx context.Context, req ContactRequest) (string, error) {
	payload := map[string]any{
		"name":        req.Name,
		"email":       req.Email,
		"external_id": fmt.Sprintf("tg-%d", req.TelegramID),
	}

	var data struct {
		Handle string `json:"handle"`
	}
	if err := c.post(ctx, "/v1beta/customers", payload, &data); err != nil {
		return "", err
	}
	if data.Handle == "" {
		return "", fmt.Errorf("registrar returned empty contact handle")
	}
	return data.Handle, nil
}

// RegisterDomain submits the registration request.
func (c *HTTPClient) RegisterDomain(ctx context.Context, req RegisterRequest) (string, error) {
	nameservers := make([]map[string]string, 0, len(req.Nameservers))
	for _, ns := range req.Nameservers {
		nameservers = append(nameservers, map[string]string{"name": ns})
	}

	payload := map[string]any{
		"domain":          map[string]string{"name": req.Root, "extension": req.TLD},
		"owner_handle":    req.ContactHandle,
		"admin_handle":    req.ContactHandle,
		"tech_handle":     req.ContactHandle,
		"name_servers":    nameservers,
		"technical_email": req.TechnicalEmail,
		"period":          1,
	}
	if len(req.AdditionalData) > 0 {
		payload["additional_data"] = req.AdditionalData
	}

	var data struct {
		ID json.Number `json:"id"`
	}
	if err := c.post(ctx, "/v1beta/domains", payload, &data); err != nil {
		return "", err
	}
	if data.ID.String() == "" {
		return "", fmt.Errorf("registrar returned empty domain id")
	}
	return data.ID.String(), nil
}

// LookupDomain finds an existing registration by full name. The query is
// idempotent, so transient failures are retried with exponential backoff.
func (c *HTTPClient) LookupDomain(ctx context.Context, root, tld string) (string, error) {
	endpoint := *c.baseURL
	endpoint.Path += "/v1beta/domains"
	query := endpoint.Query()
	query.Set("full_name", root+"."+tld)
	endpoint.RawQuery = query.Encode()

	var domainID string
	operation := func() error {
		var data struct {
			Results []struct {
				ID json.Number `json:"id"`
			} `json:"results"`
		}
		if err := c.get(ctx, endpoint.String(), &data); err != nil {
			return err
		}
		if len(data.Results) == 0 {
			return backoff.Permanent(ErrDomainNotFound)
		}
		domainID = data.Results[0].ID.String()
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return "", err
	}
	return domainID, nil
}

func (c *HTTPClient) post(ctx context.Context, apiPath string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	endpoint := *c.baseURL
	endpoint.Path += apiPath

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("registrar request: %w", err)
	}
	defer resp.Body.Close()

	return c.decode(resp, out)
}

func (c *HTTPClient) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("registrar request: %w", err)
	}
	defer resp.Body.Close()

	return c.decode(resp, out)
}

func (c *HTTPClient) decode(resp *http.Response, out any) error {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.logger.Error("registrar response unparseable",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(raw)),
		)
		return fmt.Errorf("registrar error: %s", resp.Status)
	}

	if env.Code == duplicateDomainCode {
		return ErrDuplicateDomain
	}
	if resp.StatusCode != http.StatusOK || env.Code != 0 {
		c.logger.Error("registrar request failed",
			slog.Int("status", resp.StatusCode),
			slog.Int("code", env.Code),
			slog.String("desc", env.Desc),
		)
		return fmt.Errorf("registrar error %d: %s", env.Code, env.Desc)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode registrar data: %w", err)
		}
	}
	return nil
}
