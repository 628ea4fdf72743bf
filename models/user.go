package models

import "encoding/json"

// UserSyncRecord is one element of the POST /api/users/syncing body.
type UserSyncRecord struct {
	ID        int             `json:"id"`
	FirstName *string         `json:"first_name"`
	LastName  *string         `json:"last_name"`
	Email     json.RawMessage `json:"email"`
	Phone     json.RawMessage `json:"phone"`
}
