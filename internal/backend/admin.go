package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/skbags/storefront/internal/catalog"
	pkgerrors "github.com/skbags/storefront/pkg/errors"
	"github.com/skbags/storefront/pkg/types"
)

// ProductPayload is the normalized create/update body for admin product
// management: price as a plain number, images always an array.
type ProductPayload struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	Category      string   `json:"category"`
	StockQuantity int      `json:"stock_quantity"`
	Images        []string `json:"images"`
}

// Login exchanges admin credentials for a bearer token. The store API expects
// form-encoded username/password and answers {access_token}.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/admin/login", strings.NewReader(form.Encode()))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build login request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", classifyTransport(err)
	}
	defer drainAndClose(resp.Body)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", classifyTransport(err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return "", classifyStatus(resp.StatusCode, errorMessage(raw))
	}

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeUnknown, err, "undecodable login response")
	}
	if payload.AccessToken == "" {
		return "", pkgerrors.New(pkgerrors.CodeNotAuthorized, "login did not return a token")
	}

	c.tokens.Set(payload.AccessToken)
	return payload.AccessToken, nil
}

// Logout discards the stored token. The store API keeps no session state.
func (c *Client) Logout() {
	c.tokens.Clear()
}

// AdminListOrders fetches every order visible to the authenticated admin.
func (c *Client) AdminListOrders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := c.doJSON(ctx, http.MethodGet, "/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// AdminUpdateOrderStatus moves an order through its upstream lifecycle.
func (c *Client) AdminUpdateOrderStatus(ctx context.Context, id types.FlexID, status string) error {
	body := map[string]string{"status": status}
	return c.doJSON(ctx, http.MethodPut, "/admin/orders/"+id.String()+"/status", body, nil)
}

// AdminCreateProduct forwards a normalized product payload.
func (c *Client) AdminCreateProduct(ctx context.Context, payload ProductPayload) (*catalog.Product, error) {
	var product catalog.Product
	if err := c.doJSON(ctx, http.MethodPost, "/admin/products", payload, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// AdminUpdateProduct forwards a normalized product payload for an existing id.
func (c *Client) AdminUpdateProduct(ctx context.Context, id types.FlexID, payload ProductPayload) (*catalog.Product, error) {
	var product catalog.Product
	if err := c.doJSON(ctx, http.MethodPut, "/admin/products/"+id.String(), payload, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// AdminDeleteProduct removes a product. A foreign-key refusal from the store
// API is rewritten into a message an admin can act on.
func (c *Client) AdminDeleteProduct(ctx context.Context, id types.FlexID) error {
	err := c.doJSON(ctx, http.MethodDelete, "/admin/products/"+id.String(), nil, nil)
	if err == nil {
		return nil
	}
	if typed := pkgerrors.As(err); typed != nil {
		msg := strings.ToLower(typed.Message())
		if strings.Contains(msg, "foreign key") || strings.Contains(msg, "constraint") {
			return pkgerrors.Wrap(typed.Code(), err, "cannot delete product with existing orders")
		}
	}
	return err
}

// uploadEndpoints are tried in order; the store API has historically exposed
// both and deployments differ in which one works.
var uploadEndpoints = []string{"/admin/upload", "/upload-simple"}

// Upload sends a file as multipart form data and returns the public URL the
// store API assigned to it.
func (c *Client) Upload(ctx context.Context, filename string, data io.Reader) (string, error) {
	if c.tokens.Get() == "" {
		return "", pkgerrors.New(pkgerrors.CodeNotAuthorized, "authentication required")
	}

	content, err := io.ReadAll(data)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "read upload content")
	}

	var lastErr error
	for _, endpoint := range uploadEndpoints {
		url, err := c.uploadTo(ctx, endpoint, filename, content)
		if err == nil {
			return url, nil
		}
		lastErr = err
	}
	return "", lastErr
}

func (c *Client) uploadTo(ctx context.Context, endpoint, filename string, content []byte) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build multipart body")
	}
	if _, err := part.Write(content); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write multipart body")
	}
	if err := writer.Close(); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "finish multipart body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, &buf)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build upload request")
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.attachToken(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", classifyTransport(err)
	}
	defer drainAndClose(resp.Body)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", classifyTransport(err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return "", classifyStatus(resp.StatusCode, errorMessage(raw))
	}

	var payload struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeUnknown, err, "undecodable upload response")
	}
	if payload.URL == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnknown, "upload did not return a url")
	}
	return payload.URL, nil
}
