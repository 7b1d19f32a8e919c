package checkout

import (
	"strings"
	"testing"

	"toyvault/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validShipping() models.ShippingInfo {
	return models.ShippingInfo{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Address:  "123 Main St",
		City:     "Springfield",
		State:    "IL",
		Zip:      "62704",
		Country:  "USA",
	}
}

func TestValidateShippingAccepted(t *testing.T) {
	info := validShipping()
	assert.Nil(t, ValidateShipping(&info))
}

func TestValidateShippingTrimsBeforeValidating(t *testing.T) {
	info := validShipping()
	info.FullName = "  Jane Doe  "
	info.Email = " jane@example.com "

	require.Nil(t, ValidateShipping(&info))
	assert.Equal(t, "Jane Doe", info.FullName)
	assert.Equal(t, "jane@example.com", info.Email)
}

func TestValidateShippingWhitespaceOnlyNameFails(t *testing.T) {
	info := validShipping()
	info.FullName = "   "

	errs := ValidateShipping(&info)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "fullName")
}

func TestValidateShippingBadEmail(t *testing.T) {
	info := validShipping()
	info.Email = "not-an-email"

	errs := ValidateShipping(&info)
	require.NotNil(t, errs)
	assert.Equal(t, "Please enter a valid email address", errs["email"])
}

func TestValidateShippingReportsAllFailingFields(t *testing.T) {
	info := models.ShippingInfo{
		FullName: "J",
		Email:    "nope",
		Address:  "abc",
		City:     "X",
		State:    "Y",
		Zip:      "12",
		Country:  "Z",
	}

	errs := ValidateShipping(&info)
	require.NotNil(t, errs)
	for _, field := range []string{"fullName", "email", "address", "city", "state", "zip", "country"} {
		assert.Contains(t, errs, field, "expected error for %s", field)
	}
}

func TestValidateShippingMaxLengths(t *testing.T) {
	info := validShipping()
	info.Address = strings.Repeat("a", 201)

	errs := ValidateShipping(&info)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "address")
	assert.Len(t, errs, 1)
}
