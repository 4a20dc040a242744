package checkout

import (
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	pkgerrors "github.com/skbags/storefront/pkg/errors"
	"github.com/skbags/storefront/pkg/types"
)

var validate = validator.New()

// Form holds the customer details typed into checkout. It survives failed
// submissions so the shopper never re-enters anything, and is reset only
// after a confirmed order.
type Form struct {
	mu       sync.Mutex
	customer types.CustomerInfo
}

func NewForm() *Form {
	return &Form{}
}

// Set replaces the stored customer details.
func (f *Form) Set(customer types.CustomerInfo) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.customer = customer
}

// Customer returns the current details.
func (f *Form) Customer() types.CustomerInfo {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.customer
}

// Reset clears the form back to empty.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.customer = types.CustomerInfo{}
}

// Validate checks that every field is filled in. Whitespace-only values count
// as missing. On failure the typed error carries the offending field names.
func (f *Form) Validate() error {
	f.mu.Lock()
	customer := f.customer
	f.mu.Unlock()

	customer.Name = strings.TrimSpace(customer.Name)
	customer.Email = strings.TrimSpace(customer.Email)
	customer.Phone = strings.TrimSpace(customer.Phone)
	customer.Address = strings.TrimSpace(customer.Address)

	err := validate.Struct(customer)
	if err == nil {
		return nil
	}

	var missing []string
	if fieldErrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range fieldErrs {
			missing = append(missing, strings.ToLower(fe.Field()))
		}
	}
	return pkgerrors.New(pkgerrors.CodeMissingFields, "please fill in all required fields").
		WithDetails(map[string]any{"missing": missing})
}
