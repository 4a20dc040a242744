package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/skbags/storefront/pkg/types"
)

// Product is a read-only snapshot served by the store API. The storefront
// never mutates products outside the admin proxy.
type Product struct {
	ID            types.FlexID    `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Category      string          `json:"category"`
	StockQuantity int             `json:"stock_quantity"`
	ImageURL      string          `json:"image_url"`
	Images        []string        `json:"images"`
	IsAvailable   bool            `json:"is_available"`
}
