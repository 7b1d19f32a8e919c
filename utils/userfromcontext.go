package utils

import (
	"net/http"

	"toyvault/globals"
)

func GetUserIDFromRequest(r *http.Request) string {
	ctx := r.Context()
	requestingUserID, ok := ctx.Value(globals.UserIDKey).(string)
	if !ok || requestingUserID == "" {
		return ""
	}
	return requestingUserID
}

// GetCartIDFromRequest resolves the cart identity for a request: the
// authenticated user if present, otherwise the anonymous cart ID the
// storefront sends in the X-Cart-ID header.
func GetCartIDFromRequest(r *http.Request) string {
	if userID := GetUserIDFromRequest(r); userID != "" {
		return userID
	}
	return r.Header.Get("X-Cart-ID")
}
