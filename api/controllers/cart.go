package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/skbags/storefront/api/middleware"
	"github.com/skbags/storefront/api/responses"
	"github.com/skbags/storefront/api/validators"
	"github.com/skbags/storefront/internal/cart"
	"github.com/skbags/storefront/internal/catalog"
	pkgerrors "github.com/skbags/storefront/pkg/errors"
	"github.com/skbags/storefront/pkg/logger"
	"github.com/skbags/storefront/pkg/types"
)

type cartView struct {
	Items   []cart.Item `json:"items"`
	Count   int         `json:"count"`
	Total   string      `json:"total"`
	Deposit string      `json:"deposit"`
}

func viewOf(basket *cart.Store) cartView {
	return cartView{
		Items:   basket.Items(),
		Count:   basket.Count(),
		Total:   basket.Total().StringFixed(2),
		Deposit: basket.Deposit().StringFixed(2),
	}
}

// CartFetch returns the session cart.
func CartFetch(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := middleware.SessionFromContext(r.Context())
		if sess == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session missing"))
			return
		}
		responses.WriteSuccess(w, viewOf(sess.Cart))
	}
}

type addItemRequest struct {
	ProductID types.FlexID `json:"product_id" validate:"required"`
}

// CartAdd puts one unit of a catalog product in the cart. Re-adding bumps the
// existing line's quantity.
func CartAdd(cache *catalog.Cache, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := middleware.SessionFromContext(r.Context())
		if sess == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session missing"))
			return
		}

		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, ok := cache.Get(payload.ProductID)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}

		sess.Cart.Add(product)
		responses.WriteSuccess(w, viewOf(sess.Cart))
	}
}

type updateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// CartUpdateItem sets a line's quantity. Zero or below removes the line.
func CartUpdateItem(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := middleware.SessionFromContext(r.Context())
		if sess == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session missing"))
			return
		}

		var payload updateQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id := types.FlexID(chi.URLParam(r, "productId"))
		sess.Cart.UpdateQuantity(id, *payload.Quantity)
		responses.WriteSuccess(w, viewOf(sess.Cart))
	}
}

// CartRemoveItem drops a line from the cart.
func CartRemoveItem(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := middleware.SessionFromContext(r.Context())
		if sess == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session missing"))
			return
		}

		sess.Cart.Remove(types.FlexID(chi.URLParam(r, "productId")))
		responses.WriteSuccess(w, viewOf(sess.Cart))
	}
}

// CartClear empties the cart.
func CartClear(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := middleware.SessionFromContext(r.Context())
		if sess == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session missing"))
			return
		}

		sess.Cart.Clear()
		responses.WriteSuccess(w, viewOf(sess.Cart))
	}
}
