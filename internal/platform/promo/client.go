// Package promo is the REST client for the remote discount-rule engine. It
// authenticates with a username/password login that yields a session cookie,
// pages through the rule catalog, and submits single-line-item pricing
// requests to the rule tester.
package promo

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"strconv"
	"strings"
	"time"

	"github.com/ykravets/promoaudit/internal/domain"
)

// errProductUnknown is the stable message substituted when the engine's
// response body indicates the product id does not exist in its database.
const errProductUnknown = "product not recognized by remote system"

// Config holds the connection parameters for the engine.
type Config struct {
	// BaseURL is the engine root, e.g. "https://89.105.216.114".
	BaseURL  string
	Username string
	Password string

	// UserAgent is sent on every request; the engine's front end rejects
	// requests without a browser-like agent.
	UserAgent string

	// TerminalID identifies the point-of-sale terminal the tester evaluates
	// rules for.
	TerminalID int

	// PageSize is the catalog page size for /discountRule/list.
	PageSize int

	// InsecureSkipVerify disables TLS certificate verification. The engine
	// commonly sits on a bare IP with a self-signed certificate.
	InsecureSkipVerify bool
}

// Client is the engine REST client. The session cookie obtained by Login is
// held in the client's cookie jar and sent on all subsequent requests.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new engine client. It does not authenticate; call Login
// before any catalog or tester operation.
func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("promo: base URL is required")
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("promo: cookie jar: %w", err)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Jar:       jar,
			Transport: transport,
		},
		logger: logger.With(slog.String("component", "promo")),
	}, nil
}

// Login authenticates against POST /api/login and stores the session cookie
// in the client's jar. A non-200 response or transport failure yields an
// *AuthError; the caller is expected to abort the run.
func (c *Client) Login(ctx context.Context) error {
	body, status, err := c.doPost(ctx, "/api/login", loginRequest{
		Username: c.cfg.Username,
		Password: c.cfg.Password,
	})
	if err != nil {
		return &AuthError{Body: truncate(err.Error())}
	}
	if status != http.StatusOK {
		return &AuthError{StatusCode: status, Body: truncate(string(body))}
	}

	c.logger.InfoContext(ctx, "authenticated", slog.String("user", c.cfg.Username))
	return nil
}

// ListRulesPage fetches one page of the rule catalog at the given offset and
// returns the page plus the total count reported by the engine.
func (c *Client) ListRulesPage(ctx context.Context, offset int) ([]domain.CatalogRule, int, error) {
	req := listRulesRequest{
		Count:  c.cfg.PageSize,
		Offset: offset,
		Sort:   sortSpec{Fields: []sortField{{Field: "name", Asc: true}}},
	}

	body, status, err := c.doPost(ctx, "/discountRule/list", req)
	if err != nil {
		return nil, 0, &TransportError{Op: "list rules", Err: err}
	}
	if status != http.StatusOK {
		return nil, 0, &TransportError{Op: "list rules", StatusCode: status, Body: truncate(string(body))}
	}

	var resp listRulesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, 0, &TransportError{Op: "decode rule list", Err: err}
	}

	return resp.Data, resp.Count, nil
}

// FetchAllRules retrieves the complete rule catalog with offset pagination.
// A failed or empty page ends the loop with whatever was accumulated, so an
// inconsistent total count can never spin forever; page failures degrade to a
// partial catalog and are logged at error level.
func (c *Client) FetchAllRules(ctx context.Context) []domain.CatalogRule {
	var all []domain.CatalogRule
	offset := 0

	for {
		page, total, err := c.ListRulesPage(ctx, offset)
		if err != nil {
			c.logger.ErrorContext(ctx, "rule page fetch failed, catalog may be partial",
				slog.Int("offset", offset),
				slog.String("error", err.Error()),
			)
			break
		}
		if len(page) == 0 {
			break
		}

		all = append(all, page...)
		c.logger.InfoContext(ctx, "fetched rule page",
			slog.Int("accumulated", len(all)),
			slog.Int("total", total),
		)

		if len(all) >= total {
			break
		}
		offset += c.cfg.PageSize
	}

	c.logger.InfoContext(ctx, "rule catalog loaded", slog.Int("rules", len(all)))
	return all
}

// TestDiscount submits one scenario to POST /discountRuleTester/process and
// normalizes the heterogeneous success and error shapes into a single
// EvaluationOutcome. It never returns an error: every failure mode is mapped
// to Success=false with a bounded message.
func (c *Client) TestDiscount(ctx context.Context, productID string, quantity, price float64) domain.EvaluationOutcome {
	req := testerRequest{
		Items: []testerItem{{
			ExtSKU:   extSKU{ID: productID},
			Quantity: quantity,
			Price:    strconv.FormatFloat(price, 'f', -1, 64),
			Coupons:  []string{},
			Amount:   domain.Round2(quantity * price),
		}},
		TerminalID: c.cfg.TerminalID,
		Date:       time.Now().UTC().Format("2006-01-02T15:04:05.000Z"),
	}

	body, status, err := c.doPost(ctx, "/discountRuleTester/process", req)
	if err != nil {
		return domain.EvaluationOutcome{
			ErrorMessage: truncate(fmt.Sprintf("%T: %v", err, err)),
		}
	}

	if status != http.StatusOK {
		text := string(body)
		if strings.Contains(text, "is not present in table") || strings.Contains(text, "ext_sku_group_id") {
			return domain.EvaluationOutcome{ErrorMessage: errProductUnknown}
		}
		c.logger.ErrorContext(ctx, "tester call failed",
			slog.Int("status", status),
			slog.String("product", productID),
		)
		return domain.EvaluationOutcome{ErrorMessage: truncate(text)}
	}

	var resp testerResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return domain.EvaluationOutcome{
			ErrorMessage: truncate(fmt.Sprintf("decode tester response: %v", err)),
		}
	}

	if resp.Error != "" {
		return domain.EvaluationOutcome{ErrorMessage: truncate(resp.Error)}
	}
	if resp.Data == nil {
		return domain.EvaluationOutcome{ErrorMessage: "tester returned null data"}
	}

	discount, ok := coerceFloat(resp.Data.TotalDiscountAmount)
	if !ok {
		c.logger.WarnContext(ctx, "totalDiscountAmount not numeric, defaulting to 0",
			slog.String("product", productID),
			slog.Any("value", resp.Data.TotalDiscountAmount),
		)
		discount = 0
	}

	return domain.EvaluationOutcome{Success: true, ActualDiscount: discount}
}

// Close releases the transport. The short pause lets in-flight connection
// teardown finish before process exit.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
	time.Sleep(250 * time.Millisecond)
}

// doPost sends a JSON POST to path with the browser-like headers the engine
// expects, and returns the raw body and status code.
func (c *Client) doPost(ctx context.Context, path string, payload any) ([]byte, int, error) {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, fmt.Errorf("marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "*/*")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", c.cfg.BaseURL)
	req.Header.Set("Referer", c.cfg.BaseURL+"/")
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("read response: %w", err)
	}

	return body, resp.StatusCode, nil
}

// coerceFloat converts the loosely typed totalDiscountAmount field to a
// float64. Nil is treated as a valid zero.
func coerceFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case nil:
		return 0, true
	case float64:
		return val, true
	case string:
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
