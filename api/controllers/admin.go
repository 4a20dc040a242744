package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/skbags/storefront/api/responses"
	"github.com/skbags/storefront/api/validators"
	"github.com/skbags/storefront/internal/backend"
	"github.com/skbags/storefront/internal/catalog"
	pkgerrors "github.com/skbags/storefront/pkg/errors"
	"github.com/skbags/storefront/pkg/logger"
	"github.com/skbags/storefront/pkg/types"
)

const maxUploadBytes = 10 << 20

type adminLoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AdminLogin exchanges credentials for a store API bearer token.
func AdminLogin(client *backend.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload adminLoginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		token, err := client.Login(r.Context(), payload.Email, payload.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"access_token": token})
	}
}

// AdminLogout drops the stored token.
func AdminLogout(client *backend.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client.Logout()
		responses.WriteSuccess(w, map[string]string{"status": "logged out"})
	}
}

// AdminOrders lists every order known to the store API.
func AdminOrders(client *backend.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orders, err := client.AdminListOrders(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"orders": orders})
	}
}

type orderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// AdminOrderStatus moves an order to a new status.
func AdminOrderStatus(client *backend.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload orderStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id := types.FlexID(chi.URLParam(r, "orderId"))
		if err := client.AdminUpdateOrderStatus(r.Context(), id, payload.Status); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": payload.Status})
	}
}

type adminProductRequest struct {
	Name          string   `json:"name" validate:"required"`
	Description   string   `json:"description"`
	Price         *float64 `json:"price" validate:"required,gte=0"`
	Category      string   `json:"category"`
	StockQuantity int      `json:"stock_quantity" validate:"gte=0"`
	Images        []string `json:"images"`
}

func (p adminProductRequest) toPayload() backend.ProductPayload {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return backend.ProductPayload{
		Name:          p.Name,
		Description:   p.Description,
		Price:         *p.Price,
		Category:      p.Category,
		StockQuantity: p.StockQuantity,
		Images:        images,
	}
}

// refreshCatalog picks up admin edits without waiting for the next scheduled
// refresh. Best effort.
func refreshCatalog(r *http.Request, cache *catalog.Cache) {
	if cache != nil {
		cache.Refresh(r.Context())
	}
}

// AdminProductCreate forwards a new product to the store API.
func AdminProductCreate(client *backend.Client, cache *catalog.Cache, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload adminProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := client.AdminCreateProduct(r.Context(), payload.toPayload())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		refreshCatalog(r, cache)
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// AdminProductUpdate forwards edits for an existing product.
func AdminProductUpdate(client *backend.Client, cache *catalog.Cache, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload adminProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id := types.FlexID(chi.URLParam(r, "productId"))
		product, err := client.AdminUpdateProduct(r.Context(), id, payload.toPayload())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		refreshCatalog(r, cache)
		responses.WriteSuccess(w, product)
	}
}

// AdminProductDelete removes a product from the store API.
func AdminProductDelete(client *backend.Client, cache *catalog.Cache, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.FlexID(chi.URLParam(r, "productId"))
		if err := client.AdminDeleteProduct(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		refreshCatalog(r, cache)
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// AdminUpload relays a product image to the store API and returns the URL it
// was stored under.
func AdminUpload(client *backend.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart body"))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "file field is required"))
			return
		}
		defer file.Close()

		url, err := client.Upload(r.Context(), header.Filename, file)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"url": url})
	}
}
