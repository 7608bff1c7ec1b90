// Package compassapi is the HTTP client for the ProjectCompass inquiry
// service. It implements model.API; all higher layers consume that
// interface, never this package directly.
package compassapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/projectcompass/spyglass/internal/fault"
	"github.com/projectcompass/spyglass/internal/model"
)

const maxErrorBody = 1 << 20

// Client talks to one inquiry service instance. Safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
}

// Config holds optional client settings.
type Config struct {
	Timeout time.Duration // per-request; <= 0 uses model.DefaultRequestTimeout
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string, conf ...Config) *Client {
	timeout := model.DefaultRequestTimeout
	if len(conf) > 0 && conf[0].Timeout > 0 {
		timeout = conf[0].Timeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// SystemStatus fetches the service health summary.
func (c *Client) SystemStatus(ctx context.Context) (model.SystemStatus, error) {
	var out model.SystemStatus
	err := c.get(ctx, "/api/system/status", &out)
	return out, err
}

// RecentInquiries fetches the newest inquiries. A non-positive limit
// leaves the count to the service default.
func (c *Client) RecentInquiries(ctx context.Context, limit int) (model.RecentInquiries, error) {
	path := "/api/inquiries/recent"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var out model.RecentInquiries
	err := c.get(ctx, path, &out)
	return out, err
}

// DepartmentStats fetches per-department workload figures.
func (c *Client) DepartmentStats(ctx context.Context) (model.DepartmentStats, error) {
	var out model.DepartmentStats
	err := c.get(ctx, "/api/departments/stats", &out)
	return out, err
}

// CategoryDistribution fetches the inquiry mix by category.
func (c *Client) CategoryDistribution(ctx context.Context) (model.CategoryDistribution, error) {
	var out model.CategoryDistribution
	err := c.get(ctx, "/api/categories/distribution", &out)
	return out, err
}

// SubmitInquiry sends a new inquiry for processing and returns the
// service's receipt.
func (c *Client) SubmitInquiry(ctx context.Context, sub model.InquirySubmission) (model.SubmitReceipt, error) {
	var out model.SubmitReceipt
	err := c.post(ctx, "/api/inquiries/submit", sub, &out)
	return out, err
}

// UpdateCategory patches one category's figures (admin surface).
func (c *Client) UpdateCategory(ctx context.Context, id string, fields map[string]any) (model.UpdateReceipt, error) {
	var out model.UpdateReceipt
	err := c.post(ctx, "/api/stats/categories/"+url.PathEscape(id), fields, &out)
	return out, err
}

// UpdateDepartment patches one department's figures (admin surface).
func (c *Client) UpdateDepartment(ctx context.Context, id string, fields map[string]any) (model.UpdateReceipt, error) {
	var out model.UpdateReceipt
	err := c.post(ctx, "/api/stats/departments/"+url.PathEscape(id), fields, &out)
	return out, err
}

func (c *Client) get(ctx context.Context, path string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("compassapi: build request: %w", err)
	}
	return c.do(req, path, dest)
}

func (c *Client) post(ctx context.Context, path string, body, dest any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("compassapi: marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("compassapi: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, path, dest)
}

func (c *Client) do(req *http.Request, path string, dest any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("compassapi: %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("compassapi: %s: %w", path, statusError(resp))
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("compassapi: decode %s: %w", path, err)
	}
	return nil
}

// statusError turns a non-2xx response into a fault.StatusError,
// keeping the service's structured detail message when the body
// carries one.
func statusError(resp *http.Response) *fault.StatusError {
	se := &fault.StatusError{Code: resp.StatusCode}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return se
	}
	var detail struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &detail); err == nil && detail.Detail != "" {
		se.Detail = detail.Detail
	}
	return se
}
