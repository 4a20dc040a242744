package types

// CustomerInfo is the contact/address block attached to an order. All four
// fields must be non-empty at submission time; anything deeper (email shape,
// phone format) is left to the store API.
type CustomerInfo struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Address string `json:"address" validate:"required"`
}
