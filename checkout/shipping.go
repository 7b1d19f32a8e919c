package checkout

import (
	"toyvault/models"
	"toyvault/utils"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// FieldErrors maps a shipping field (JSON name) to its validation message.
// Every failing field is reported, not just the first.
type FieldErrors map[string]string

var fieldMessages = map[string]string{
	"fullName": "Name must be at least 2 characters",
	"email":    "Please enter a valid email address",
	"address":  "Address must be at least 5 characters",
	"city":     "City must be at least 2 characters",
	"state":    "State/Province is required",
	"zip":      "ZIP/Postal code is required",
	"country":  "Country is required",
}

var jsonNames = map[string]string{
	"FullName": "fullName",
	"Email":    "email",
	"Address":  "address",
	"City":     "city",
	"State":    "state",
	"Zip":      "zip",
	"Country":  "country",
}

// ValidateShipping trims every field in place and runs all validations at
// once. A nil return means the info may be confirmed.
func ValidateShipping(info *models.ShippingInfo) FieldErrors {
	utils.TrimAll(&info.FullName, &info.Email, &info.Address, &info.City,
		&info.State, &info.Zip, &info.Country)

	err := validate.Struct(info)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return FieldErrors{"form": "Invalid shipping information"}
	}

	out := FieldErrors{}
	for _, fe := range errs {
		name := jsonNames[fe.StructField()]
		if name == "" {
			name = fe.StructField()
		}
		if _, seen := out[name]; seen {
			continue
		}
		msg := fieldMessages[name]
		if fe.Tag() == "max" {
			msg = "Value is too long"
		}
		if msg == "" {
			msg = "Invalid value"
		}
		out[name] = msg
	}
	return out
}
