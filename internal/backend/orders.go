package backend

import "github.com/skbags/storefront/pkg/types"

// OrderItem is one outbound order line; Price carries the unit price at order
// time so later catalog edits cannot change what was agreed.
type OrderItem struct {
	ProductID types.FlexID `json:"product_id"`
	Quantity  int          `json:"quantity"`
	Price     float64      `json:"price"`
}

// OrderRequest is the POST /orders body. Built fresh at submission time and
// never stored.
type OrderRequest struct {
	CustomerInfo types.CustomerInfo `json:"customer_info"`
	Items        []OrderItem        `json:"items"`
	TotalAmount  float64            `json:"total_amount"`
	Notes        string             `json:"notes"`
}

// OrderResult is the store API's informal answer to order creation. Success
// signalling is inconsistent upstream: some responses carry an id, some a
// success flag, some neither. Interpretation lives in the checkout submitter.
type OrderResult struct {
	ID      types.FlexID `json:"id"`
	Success *bool        `json:"success"`
	Message string       `json:"message"`
}

// Order is an order as reported by the admin listing endpoints.
type Order struct {
	ID           types.FlexID       `json:"id"`
	CustomerInfo types.CustomerInfo `json:"customer_info"`
	Status       string             `json:"status"`
	TotalAmount  float64            `json:"total_amount"`
	Notes        string             `json:"notes"`
	Items        []OrderLine        `json:"items"`
	CreatedAt    string             `json:"created_at"`
	UpdatedAt    string             `json:"updated_at"`
}

// OrderLine is one fulfilled line item inside an admin-listed order.
type OrderLine struct {
	ProductID    types.FlexID `json:"product_id"`
	Quantity     int          `json:"quantity"`
	PricePerUnit float64      `json:"price_per_unit"`
	TotalPrice   float64      `json:"total_price"`
}
