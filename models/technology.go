package models

// TechnologyRequest is the body of POST /api/technologies and
// PUT /api/technologies/{id}. CreatedBy is only sent on create.
type TechnologyRequest struct {
	Name      *string `json:"name"`
	CreatedBy *int    `json:"created_by,omitempty"`
	UpdatedBy int     `json:"updated_by"`
}

// TechnologyMappingRequest replaces the whole technology set of a website.
type TechnologyMappingRequest struct {
	TechnologyIDs []int `json:"technology_ids"`
	CreatedBy     int   `json:"created_by"`
	UpdatedBy     int   `json:"updated_by"`
}
