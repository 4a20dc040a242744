package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/skbags/storefront/api/responses"
	"github.com/skbags/storefront/internal/catalog"
	pkgerrors "github.com/skbags/storefront/pkg/errors"
	"github.com/skbags/storefront/pkg/logger"
	"github.com/skbags/storefront/pkg/types"
)

// ProductList serves the current catalog snapshot.
func ProductList(cache *catalog.Cache, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]any{
			"products": cache.List(),
			"live":     cache.Live(),
		})
	}
}

// ProductGet serves one product from the current snapshot.
func ProductGet(cache *catalog.Cache, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.FlexID(chi.URLParam(r, "productId"))
		product, ok := cache.Get(id)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}
		responses.WriteSuccess(w, product)
	}
}
