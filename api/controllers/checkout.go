package controllers

import (
	"net/http"

	"github.com/skbags/storefront/api/middleware"
	"github.com/skbags/storefront/api/responses"
	"github.com/skbags/storefront/api/validators"
	pkgerrors "github.com/skbags/storefront/pkg/errors"
	"github.com/skbags/storefront/pkg/logger"
	"github.com/skbags/storefront/pkg/types"
)

// customerUpdateRequest deliberately carries no required tags: the form is
// saved as the shopper types, and completeness is checked at submission.
type customerUpdateRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// CheckoutCustomer stores the customer details for the session.
func CheckoutCustomer(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := middleware.SessionFromContext(r.Context())
		if sess == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session missing"))
			return
		}

		var payload customerUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sess.Form.Set(types.CustomerInfo{
			Name:    payload.Name,
			Email:   payload.Email,
			Phone:   payload.Phone,
			Address: payload.Address,
		})
		responses.WriteSuccess(w, sess.Form.Customer())
	}
}

// CheckoutFetch returns the saved customer details.
func CheckoutFetch(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := middleware.SessionFromContext(r.Context())
		if sess == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session missing"))
			return
		}
		responses.WriteSuccess(w, sess.Form.Customer())
	}
}

// CheckoutSubmit places the order for whatever is in the session cart.
func CheckoutSubmit(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := middleware.SessionFromContext(r.Context())
		if sess == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session missing"))
			return
		}

		orderID, err := sess.Submitter.Submit(r.Context(), sess.Cart, sess.Form)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]string{
			"order_id": orderID,
			"message":  "order placed successfully",
		})
	}
}
