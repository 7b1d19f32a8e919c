package models

import "time"

// User is an admin portal account. The storefront itself needs no login.
type User struct {
	UserID       string    `json:"userId" bson:"userid"`
	Username     string    `json:"username" bson:"username"`
	PasswordHash string    `json:"-" bson:"passwordhash"`
	Role         []string  `json:"role" bson:"role"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdat"`
}

// SiteContent is one editable piece of storefront copy (hero banner,
// announcement bar) keyed by slot name.
type SiteContent struct {
	Key       string    `json:"key" bson:"key"`
	Value     string    `json:"value" bson:"value"`
	UpdatedBy string    `json:"updatedBy" bson:"updatedby"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedat"`
}
