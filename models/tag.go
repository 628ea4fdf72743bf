package models

// TagCreateRequest is the body of POST /api/tag-mappings. Exactly one of
// WebsiteID and VideoID is set, matching EntityType.
type TagCreateRequest struct {
	EntityType TagEntityType `json:"entity_type"`
	WebsiteID  *int          `json:"website_id,omitempty"`
	VideoID    *int          `json:"video_id,omitempty"`
	TagName    string        `json:"tag_name"`
	CreatedBy  int           `json:"created_by"`
	UpdatedBy  int           `json:"updated_by"`
}

// TagUpdateRequest is the body of PUT /api/tag-mappings/{id}.
type TagUpdateRequest struct {
	TagName   string `json:"tag_name"`
	UpdatedBy int    `json:"updated_by"`
}

// NewTagCreateRequest points the mapping at the parent record of entityType.
func NewTagCreateRequest(entityType TagEntityType, entityID int, name string, userID int) TagCreateRequest {
	req := TagCreateRequest{
		EntityType: entityType,
		TagName:    name,
		CreatedBy:  userID,
		UpdatedBy:  userID,
	}
	id := entityID
	switch entityType {
	case TagEntityWebsite:
		req.WebsiteID = &id
	case TagEntityVideo:
		req.VideoID = &id
	}
	return req
}

// Tag is one mapping row returned by GET /api/tag-mappings/{type}/{id}.
type Tag struct {
	ID      int    `json:"id"`
	TagName string `json:"tag_name"`
}
