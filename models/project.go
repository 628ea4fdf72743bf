package models

import "encoding/json"

// ProjectSyncRecord is one element of the POST /api/projects/syncing body.
// The syncing endpoint expects the source's camel-cased keys.
type ProjectSyncRecord struct {
	ID          json.Number     `json:"id"`
	ClientID    *json.Number    `json:"clientId"`
	ProjectName json.RawMessage `json:"projectName"`
	Description json.RawMessage `json:"description"`
	Priority    json.RawMessage `json:"priority"`
	StartDate   *string         `json:"startdate"`
	Scopes      json.RawMessage `json:"scopes"`
}

// ProjectCreateRequest is the body of POST /api/projects/create.
type ProjectCreateRequest struct {
	ID           int     `json:"id"`
	ClientID     int     `json:"client_id"`
	ProjectName  *string `json:"project_name"`
	Description  *string `json:"description"`
	Description1 *string `json:"description1"`
	Priority     int     `json:"priority"`
}

// ProjectUpdateRequest is the body of PUT /api/projects/update/{id}.
type ProjectUpdateRequest struct {
	Description1 *string `json:"description1"`
	Priority     int     `json:"priority"`
}
