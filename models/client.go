package models

import "encoding/json"

// ClientSyncRecord is one element of the POST /api/clients/syncing body.
// Passthrough fields keep the external JSON verbatim; a nil value is
// omitted so that an absent source field stays absent.
type ClientSyncRecord struct {
	ID          int             `json:"id"`
	ClientName  json.RawMessage `json:"client_name,omitempty"`
	CountryID   json.RawMessage `json:"country_id,omitempty"`
	Description json.RawMessage `json:"description,omitempty"`
	Thumbnail   json.RawMessage `json:"thumbnail,omitempty"`
	Priority    int             `json:"priority"`
	ProjectName json.RawMessage `json:"project_name,omitempty"`
}

// ClientCreateRequest is the body of POST /api/clients/create.
type ClientCreateRequest struct {
	ID          int     `json:"id"`
	ClientName  *string `json:"client_name"`
	CountryID   int     `json:"country_id"`
	Description *string `json:"description"`
	Thumbnail   *string `json:"thumbnail"`
	Priority    int     `json:"priority"`
}

// ClientUpdateRequest is the body of PUT /api/clients/update/{id}. Identity
// fields are owned by the sync source and never sent.
type ClientUpdateRequest struct {
	Priority     int    `json:"priority"`
	Description1 string `json:"description1"`
}

// Country is an entry of the accounts service country lookup.
type Country struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
