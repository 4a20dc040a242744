package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/skbags/storefront/internal/catalog"
	"github.com/skbags/storefront/pkg/config"
	pkgerrors "github.com/skbags/storefront/pkg/errors"
	"github.com/skbags/storefront/pkg/logger"
	"github.com/skbags/storefront/pkg/types"
)

// Client talks to the remote store API that owns products, orders and admin
// auth. All failures come back as typed errors from the storefront taxonomy.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	probeTimeout time.Duration
	tokens       *TokenStore
	logg         *logger.Logger
}

// NewClient builds a store API client from config.
func NewClient(cfg config.BackendConfig, logg *logger.Logger) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("backend base url is required")
	}
	probe := cfg.ProbeTimeout
	if probe <= 0 {
		probe = 2 * time.Second
	}
	return &Client{
		baseURL:      base,
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		probeTimeout: probe,
		tokens:       NewTokenStore(),
		logg:         logg,
	}, nil
}

// Tokens exposes the bearer token store shared with the admin login flow.
func (c *Client) Tokens() *TokenStore {
	return c.tokens
}

// Products fetches the full catalog.
func (c *Client) Products(ctx context.Context) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := c.doJSON(ctx, http.MethodGet, "/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Product fetches a single product by id.
func (c *Client) Product(ctx context.Context, id types.FlexID) (*catalog.Product, error) {
	var product catalog.Product
	if err := c.doJSON(ctx, http.MethodGet, "/products/"+id.String(), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateOrder submits an order. A nil result with a nil error means the store
// API answered with an empty body; the caller decides what that means.
func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (*OrderResult, error) {
	body, err := c.doRaw(ctx, http.MethodPost, "/orders", req)
	if err != nil {
		return nil, err
	}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	var result OrderResult
	if err := json.Unmarshal(trimmed, &result); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnknown, err, "undecodable order response")
	}
	return &result, nil
}

// Online probes the store API health endpoint with a short timeout. It is the
// connectivity precondition for checkout, not for browsing.
func (c *Client) Online(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, c.probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer drainAndClose(resp.Body)
	return resp.StatusCode < http.StatusInternalServerError
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	raw, err := c.doRaw(ctx, method, path, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeUnknown, err, "undecodable store api response")
	}
	return nil
}

func (c *Client) doRaw(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode request body")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.attachToken(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransport(err)
	}
	defer drainAndClose(resp.Body)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransport(err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, classifyStatus(resp.StatusCode, errorMessage(raw))
	}
	return raw, nil
}

func (c *Client) attachToken(req *http.Request) {
	if token := c.tokens.Get(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func drainAndClose(body io.ReadCloser) {
	io.Copy(io.Discard, body)
	body.Close()
}
