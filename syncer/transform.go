package syncer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rpupo63/portfolio-admin/models"
	"github.com/rpupo63/portfolio-admin/normalize"
	"github.com/tidwall/gjson"
)

// Dropped identifies a source entry left out of a batch.
type Dropped struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

func dropped(entry gjson.Result, reason string) Dropped {
	id := entry.Get("id").Raw
	if id == "" {
		id = "undefined"
	}
	return Dropped{ID: id, Reason: reason}
}

// TransformClients maps external clients onto the clients syncing schema.
// country_id is made numeric only when it carries a value; absent, null
// and empty values are passed through untouched.
func TransformClients(raw []gjson.Result) ([]models.ClientSyncRecord, []Dropped) {
	out := make([]models.ClientSyncRecord, 0, len(raw))
	var skipped []Dropped

	for _, entry := range raw {
		if !normalize.Truthy(entry.Get("id")) || !normalize.Truthy(entry.Get("clientName")) {
			skipped = append(skipped, dropped(entry, "missing id or clientName"))
			continue
		}
		id, ok := normalize.ParseInt(entry.Get("id"))
		if !ok {
			skipped = append(skipped, dropped(entry, "id is not an integer"))
			continue
		}

		out = append(out, models.ClientSyncRecord{
			ID:          id,
			ClientName:  normalize.Raw(entry.Get("clientName")),
			CountryID:   countryID(entry.Get("countryId")),
			Description: normalize.Raw(entry.Get("description")),
			Thumbnail:   normalize.Raw(entry.Get("thumbnail")),
			Priority:    0,
			ProjectName: firstProjectName(entry.Get("projects")),
		})
	}
	return out, skipped
}

func countryID(v gjson.Result) json.RawMessage {
	if !v.Exists() || v.Type == gjson.Null || (v.Type == gjson.String && v.Str == "") {
		return normalize.Raw(v)
	}
	n, ok := normalize.Number(v)
	if !ok {
		return json.RawMessage("null")
	}
	return json.RawMessage(normalize.JSONNumber(n))
}

func firstProjectName(projects gjson.Result) json.RawMessage {
	if !projects.IsArray() || len(projects.Array()) == 0 {
		return json.RawMessage("null")
	}
	return normalize.Raw(projects.Array()[0].Get("projectName"))
}

// TransformProjects maps external projects onto the projects syncing
// schema, which keeps the source's camel-cased keys.
func TransformProjects(raw []gjson.Result) ([]models.ProjectSyncRecord, []Dropped) {
	out := make([]models.ProjectSyncRecord, 0, len(raw))
	var skipped []Dropped

	for _, entry := range raw {
		if !normalize.Truthy(entry.Get("id")) || !normalize.Truthy(entry.Get("projectName")) {
			skipped = append(skipped, dropped(entry, "missing id or projectName"))
			continue
		}
		id, ok := normalize.Number(entry.Get("id"))
		if !ok {
			skipped = append(skipped, dropped(entry, "id is not numeric"))
			continue
		}

		out = append(out, models.ProjectSyncRecord{
			ID:          normalize.JSONNumber(id),
			ClientID:    projectClientID(entry.Get("clientId")),
			ProjectName: normalize.Raw(entry.Get("projectName")),
			Description: normalize.RawOrNull(entry.Get("description")),
			Priority:    normalize.RawOr(entry.Get("priority"), "0"),
			StartDate:   ReformatDate(entry.Get("startDate")),
			Scopes:      normalize.RawOr(entry.Get("scopes"), "[]"),
		})
	}
	return out, skipped
}

// projectClientID is nil for null and for values with no numeric reading.
func projectClientID(v gjson.Result) *json.Number {
	if v.Type == gjson.Null && v.Exists() {
		return nil
	}
	n, ok := normalize.Number(v)
	if !ok {
		return nil
	}
	num := normalize.JSONNumber(n)
	return &num
}

// ReformatDate turns a DD-MM-YYYY source date into YYYY-MM-DD, padding day
// and month to two digits. It returns nil unless all three parts are present.
func ReformatDate(v gjson.Result) *string {
	if v.Type != gjson.String || v.Str == "" {
		return nil
	}
	parts := strings.Split(v.Str, "-")
	if len(parts) < 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return nil
	}
	day, month, year := parts[0], parts[1], parts[2]
	formatted := fmt.Sprintf("%s-%s-%s", year, padLeft(month), padLeft(day))
	return &formatted
}

func padLeft(s string) string {
	if len(s) >= 2 {
		return s
	}
	return strings.Repeat("0", 2-len(s)) + s
}

// TransformUsers maps auth-service users onto the users syncing schema.
// The display name splits at the first space: the rest, spaces kept, is
// the last name.
func TransformUsers(raw []gjson.Result) ([]models.UserSyncRecord, []Dropped) {
	out := make([]models.UserSyncRecord, 0, len(raw))
	var skipped []Dropped

	for _, entry := range raw {
		if !normalize.Truthy(entry.Get("id")) {
			skipped = append(skipped, dropped(entry, "missing id"))
			continue
		}
		id, ok := normalize.ParseInt(entry.Get("id"))
		if !ok {
			skipped = append(skipped, dropped(entry, "id is not an integer"))
			continue
		}

		first, last := splitName(entry.Get("name"))
		out = append(out, models.UserSyncRecord{
			ID:        id,
			FirstName: first,
			LastName:  last,
			Email:     normalize.RawOrNull(entry.Get("email")),
			Phone:     normalize.RawOrNull(entry.Get("phone")),
		})
	}
	return out, skipped
}

func splitName(v gjson.Result) (*string, *string) {
	if v.Type != gjson.String || v.Str == "" {
		return nil, nil
	}
	parts := strings.Split(strings.TrimSpace(v.Str), " ")

	var first, last *string
	if parts[0] != "" {
		first = &parts[0]
	}
	if len(parts) > 1 {
		rest := strings.Join(parts[1:], " ")
		last = &rest
	}
	return first, last
}
