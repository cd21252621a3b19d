// Package api implements the remote budget service over HTTP.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Veraticus/family-budget/internal/common"
	"github.com/Veraticus/family-budget/internal/model"
	"github.com/Veraticus/family-budget/internal/service"
	"github.com/google/uuid"
)

const (
	apiPrefix = "/api/v1"

	// HeaderUserID identifies the acting user. There is no token scheme.
	HeaderUserID = "X-User-ID"
	// HeaderRequestID correlates a request with server logs.
	HeaderRequestID = "X-Request-ID"

	maxResponseBytes = 10 << 20
)

// Config configures the HTTP client.
type Config struct {
	// HTTPClient overrides the default client; Timeout is ignored when set.
	HTTPClient *http.Client
	BaseURL    string
	Timeout    time.Duration
}

// Client talks to the budget backend.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// NewClient creates a client for the backend at cfg.BaseURL.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: api base URL", common.ErrMissingConfig)
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("%w: api base URL: %v", common.ErrInvalidConfig, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("%w: api base URL scheme %q must be http or https", common.ErrInvalidConfig, base.Scheme)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}

	return &Client{baseURL: base, httpClient: httpClient}, nil
}

// Register implements service.RemoteBudgetService.
func (c *Client) Register(ctx context.Context, req service.RegisterRequest) (*model.Registration, error) {
	var out model.Registration
	if err := c.do(ctx, http.MethodPost, "/users", nil, "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListCategories implements service.RemoteBudgetService.
func (c *Client) ListCategories(ctx context.Context, userID string) ([]model.Category, error) {
	var out []model.Category
	if err := c.do(ctx, http.MethodGet, userPath(userID, "categories"), nil, userID, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateCategory implements service.RemoteBudgetService.
func (c *Client) CreateCategory(ctx context.Context, userID string, in service.CategoryInput) (*model.Category, error) {
	var out model.Category
	if err := c.do(ctx, http.MethodPost, userPath(userID, "categories"), nil, userID, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCategory implements service.RemoteBudgetService.
func (c *Client) UpdateCategory(ctx context.Context, userID, categoryID string, in service.CategoryInput) (*model.Category, error) {
	var out model.Category
	path := userPath(userID, "categories", categoryID)
	if err := c.do(ctx, http.MethodPut, path, nil, userID, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ArchiveCategory implements service.RemoteBudgetService.
func (c *Client) ArchiveCategory(ctx context.Context, userID, categoryID string, archived bool) (*model.Category, error) {
	var out model.Category
	body := struct {
		Archived bool `json:"archived"`
	}{Archived: archived}
	path := userPath(userID, "categories", categoryID, "archive")
	if err := c.do(ctx, http.MethodPost, path, nil, userID, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListAccounts implements service.RemoteBudgetService.
func (c *Client) ListAccounts(ctx context.Context, userID string) ([]model.Account, error) {
	var out []model.Account
	if err := c.do(ctx, http.MethodGet, userPath(userID, "accounts"), nil, userID, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateAccount implements service.RemoteBudgetService.
func (c *Client) CreateAccount(ctx context.Context, userID string, in service.AccountInput) (*model.Account, error) {
	var out model.Account
	if err := c.do(ctx, http.MethodPost, userPath(userID, "accounts"), nil, userID, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListMembers implements service.RemoteBudgetService.
func (c *Client) ListMembers(ctx context.Context, userID string) ([]model.FamilyMember, error) {
	var out []model.FamilyMember
	if err := c.do(ctx, http.MethodGet, userPath(userID, "members"), nil, userID, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetSettings implements service.RemoteBudgetService.
func (c *Client) GetSettings(ctx context.Context, userID string) (*model.UserSettingsSummary, error) {
	var out model.UserSettingsSummary
	if err := c.do(ctx, http.MethodGet, userPath(userID, "settings"), nil, userID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateSettings implements service.RemoteBudgetService.
func (c *Client) UpdateSettings(ctx context.Context, userID string, in service.SettingsUpdate) (*model.UserSettingsSummary, error) {
	var out model.UserSettingsSummary
	if err := c.do(ctx, http.MethodPut, userPath(userID, "settings"), nil, userID, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListTransactions implements service.RemoteBudgetService.
func (c *Client) ListTransactions(ctx context.Context, userID string, query service.TransactionQuery) ([]model.Transaction, error) {
	var out []model.Transaction
	path := userPath(userID, "transactions")
	if err := c.do(ctx, http.MethodGet, path, transactionValues(query), userID, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTransaction implements service.RemoteBudgetService.
func (c *Client) CreateTransaction(ctx context.Context, userID string, in service.TransactionInput) (*model.Transaction, error) {
	var out model.Transaction
	if err := c.do(ctx, http.MethodPost, "/transactions", nil, userID, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListPlannedOperations implements service.RemoteBudgetService.
func (c *Client) ListPlannedOperations(ctx context.Context, userID string) (*service.PlannedOperations, error) {
	var out service.PlannedOperations
	if err := c.do(ctx, http.MethodGet, userPath(userID, "planned-operations"), nil, userID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreatePlannedOperation implements service.RemoteBudgetService.
func (c *Client) CreatePlannedOperation(ctx context.Context, userID string, in service.PlannedOperationInput) (*model.PlannedOperation, error) {
	var out model.PlannedOperation
	if err := c.do(ctx, http.MethodPost, userPath(userID, "planned-operations"), nil, userID, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CompletePlannedOperation implements service.RemoteBudgetService.
func (c *Client) CompletePlannedOperation(ctx context.Context, userID, operationID string) (*model.PlannedOperation, error) {
	var out model.PlannedOperation
	path := userPath(userID, "planned-operations", operationID, "complete")
	if err := c.do(ctx, http.MethodPost, path, nil, userID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ReportOverview implements service.RemoteBudgetService.
func (c *Client) ReportOverview(ctx context.Context, userID string, period model.Period) (*model.ReportOverview, error) {
	var out model.ReportOverview
	path := userPath(userID, "reports", "overview")
	if err := c.do(ctx, http.MethodGet, path, periodValues(period), userID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do sends one request and decodes a 2xx JSON response into out.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, userID string, body, out any) error {
	endpoint, err := url.Parse(c.baseURL.String() + apiPrefix + path)
	if err != nil {
		return fmt.Errorf("build url %s %s: %w", method, path, err)
	}
	if len(query) > 0 {
		endpoint.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return fmt.Errorf("create request %s %s: %w", method, path, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set(HeaderUserID, userID)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", common.ErrTransport, method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: read %s %s: %w", common.ErrTransport, method, path, err)
	}

	common.LogDebug("api request", common.Fields{
		"method":     method,
		"path":       path,
		"status":     resp.StatusCode,
		"duration":   time.Since(start),
		"request_id": requestID,
	})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &common.ServerError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       string(data),
		}
	}

	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return fmt.Errorf("%w: %s %s: empty body", common.ErrDecode, method, path)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %s %s: %v", common.ErrDecode, method, path, err)
	}
	return nil
}

// userPath builds /users/{id}/... with escaped segments.
func userPath(userID string, segments ...string) string {
	var b strings.Builder
	b.WriteString("/users/")
	b.WriteString(url.PathEscape(userID))
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

func periodValues(p model.Period) url.Values {
	v := url.Values{}
	if from := p.From(); !from.IsZero() {
		v.Set("start_date", model.NewTimestamp(from).String())
	}
	if until := p.Until(); !until.IsZero() {
		v.Set("end_date", model.NewTimestamp(until).String())
	}
	return v
}

func transactionValues(q service.TransactionQuery) url.Values {
	v := periodValues(q.Period)
	if q.Type != "" {
		v.Set("type", string(q.Type))
	}
	if q.CategoryID != "" {
		v.Set("category_id", q.CategoryID)
	}
	if q.AccountID != "" {
		v.Set("account_id", q.AccountID)
	}
	if q.UserID != "" {
		v.Set("user_id", q.UserID)
	}
	return v
}

var _ service.RemoteBudgetService = (*Client)(nil)
