// Package upstream is the HTTP client for the legacy backend. It decodes
// raw-shape bodies and tolerates the envelope variations the backend has
// used over time (bare arrays, {products: ...}, {usuario: ...} vs {user: ...}).
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dfquintero/sportstore-gateway/internal/adapter"
	"github.com/dfquintero/sportstore-gateway/internal/config"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(cfg *config.Upstream) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// LoginResult carries the raw user record plus the bearer token the backend
// issued; adaptation happens at the service boundary.
type LoginResult struct {
	User  *adapter.RawUser
	Token string
}

func (c *Client) ListProducts(ctx context.Context) ([]*adapter.RawProduct, error) {
	body, err := c.do(ctx, http.MethodGet, "/products", "", nil)
	if err != nil {
		return nil, err
	}

	return decodeProductList(body)
}

func (c *Client) GetProductBySlug(ctx context.Context, slug string) (*adapter.RawProduct, error) {
	body, err := c.do(ctx, http.MethodGet, "/products/slug/"+slug, "", nil)
	if err != nil {
		return nil, err
	}

	return decodeProduct(body)
}

func (c *Client) ListCategories(ctx context.Context) ([]*adapter.RawCategory, error) {
	body, err := c.do(ctx, http.MethodGet, "/categories", "", nil)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Categories []*adapter.RawCategory `json:"categories"`
		Data       []*adapter.RawCategory `json:"data"`
	}

	if isArray(body) {
		var categories []*adapter.RawCategory
		if err := json.Unmarshal(body, &categories); err != nil {
			return nil, fmt.Errorf("decoding category list: %w", err)
		}

		return categories, nil
	}

	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decoding category list: %w", err)
	}

	if envelope.Categories != nil {
		return envelope.Categories, nil
	}

	return envelope.Data, nil
}

func (c *Client) CreateProduct(ctx context.Context, payload ProductPayload) (*adapter.RawProduct, error) {
	body, err := c.do(ctx, http.MethodPost, "/products", "", payload)
	if err != nil {
		return nil, err
	}

	return decodeProduct(body)
}

func (c *Client) UpdateProduct(ctx context.Context, id string, payload ProductPayload) (*adapter.RawProduct, error) {
	body, err := c.do(ctx, http.MethodPut, "/products/"+id, "", payload)
	if err != nil {
		return nil, err
	}

	return decodeProduct(body)
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/products/"+id, "", nil)

	return err
}

func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	payload := map[string]string{"email": email, "password": password}

	body, err := c.do(ctx, http.MethodPost, "/auth/login", "", payload)
	if err != nil {
		return nil, err
	}

	return decodeAuth(body)
}

func (c *Client) Profile(ctx context.Context, token string) (*adapter.RawUser, error) {
	body, err := c.do(ctx, http.MethodGet, "/auth/profile", token, nil)
	if err != nil {
		return nil, err
	}

	result, err := decodeAuth(body)
	if err != nil {
		return nil, err
	}

	return result.User, nil
}

// ProductPayload is the legacy-shape body for admin writes: the inverse
// product conversion plus its variants.
type ProductPayload struct {
	adapter.LegacyProduct

	Variantes []adapter.LegacyVariant `json:"variantes,omitempty"`
}

func (c *Client) do(ctx context.Context, method, path, token string, payload any) ([]byte, error) {
	var reqBody io.Reader

	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshaling %s %s payload: %w", method, path, err)
		}

		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("building %s %s request: %w", method, path, err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s %s response: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode}
	}

	return body, nil
}

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream %s %s returned status %d", e.Method, e.Path, e.StatusCode)
}

func decodeProductList(body []byte) ([]*adapter.RawProduct, error) {
	if isArray(body) {
		var products []*adapter.RawProduct
		if err := json.Unmarshal(body, &products); err != nil {
			return nil, fmt.Errorf("decoding product list: %w", err)
		}

		return products, nil
	}

	var envelope struct {
		Products []*adapter.RawProduct `json:"products"`
		Data     []*adapter.RawProduct `json:"data"`
	}

	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decoding product list: %w", err)
	}

	if envelope.Products != nil {
		return envelope.Products, nil
	}

	return envelope.Data, nil
}

func decodeProduct(body []byte) (*adapter.RawProduct, error) {
	var envelope struct {
		Product *adapter.RawProduct `json:"product"`
	}

	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Product != nil {
		return envelope.Product, nil
	}

	var product adapter.RawProduct
	if err := json.Unmarshal(body, &product); err != nil {
		return nil, fmt.Errorf("decoding product: %w", err)
	}

	return &product, nil
}

// decodeAuth handles the backend's "usuario" vs "user" field divergence.
func decodeAuth(body []byte) (*LoginResult, error) {
	var envelope struct {
		Usuario *adapter.RawUser `json:"usuario"`
		User    *adapter.RawUser `json:"user"`
		Token   string           `json:"token"`
	}

	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decoding auth response: %w", err)
	}

	user := envelope.Usuario
	if user == nil {
		user = envelope.User
	}

	return &LoginResult{User: user, Token: envelope.Token}, nil
}

func isArray(body []byte) bool {
	trimmed := bytes.TrimSpace(body)

	return len(trimmed) > 0 && trimmed[0] == '['
}
