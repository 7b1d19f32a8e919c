package models

// ShippingInfo is the address block captured during checkout. It only reaches
// the confirmed state after every field validation passes at once.
type ShippingInfo struct {
	FullName string `json:"fullName" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Address  string `json:"address" validate:"required,min=5,max=200"`
	City     string `json:"city" validate:"required,min=2,max=100"`
	State    string `json:"state" validate:"required,min=2,max=100"`
	Zip      string `json:"zip" validate:"required,min=3,max=20"`
	Country  string `json:"country" validate:"required,min=2,max=100"`
}
