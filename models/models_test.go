package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" Clients ")
	require.NoError(t, err)
	assert.Equal(t, KindClients, k)

	_, err = ParseKind("invoices")
	assert.Error(t, err)
}

func TestKindInfo(t *testing.T) {
	tests := []struct {
		kind     Kind
		pageSize int
		filter   string
		listPath string
	}{
		{KindClients, 100, "country_id", "/api/clients/list"},
		{KindProjects, 100, "client_id", "/api/projects/list"},
		{KindUsers, 100, "role", "/api/users/list"},
		{KindTechnologies, 10, "", "/api/technologies"},
		{KindWebsites, 10, "", "/api/websites/list"},
		{KindVideos, 10, "", "/api/videos/list"},
		{KindCreatives, 10, "", "/api/creatives/list"},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			info := tt.kind.Info()
			assert.Equal(t, tt.pageSize, info.PageSize)
			assert.Equal(t, tt.filter, info.FilterParam)
			assert.Equal(t, tt.listPath, info.ListPath)
			assert.Equal(t, tt.kind.String(), info.EnvelopeKey)
		})
	}

	assert.Len(t, AllKinds(), len(kinds))
	assert.Equal(t, "Failed to load clients. Please try again.", KindClients.FetchErrorMessage())
	assert.Equal(t, "Technologies", KindTechnologies.PluralTitle())
}

func TestEnums(t *testing.T) {
	assert.True(t, WebsiteTypeLandingPage.Valid())
	assert.False(t, WebsiteType("BLOG").Valid())
	assert.True(t, VideoFormatSquare.Valid())
	assert.True(t, VideoTypePortrait.Valid())
	assert.False(t, VideoType("SHORT").Valid())
	assert.True(t, CreativeTypeBrochure.Valid())
	assert.True(t, RoleHRHead.Valid())
	assert.False(t, UserRole("ADMIN").Valid())
}

func TestNewTagCreateRequest(t *testing.T) {
	body, err := json.Marshal(NewTagCreateRequest(TagEntityVideo, 9, "reel", 3))
	require.NoError(t, err)
	assert.JSONEq(t, `{"entity_type":"VIDEO","video_id":9,"tag_name":"reel","created_by":3,"updated_by":3}`, string(body))

	body, err = json.Marshal(NewTagCreateRequest(TagEntityWebsite, 4, "shop", 3))
	require.NoError(t, err)
	assert.JSONEq(t, `{"entity_type":"WEBSITE","website_id":4,"tag_name":"shop","created_by":3,"updated_by":3}`, string(body))

	assert.Equal(t, "website", TagEntityWebsite.PathSegment())
	assert.Equal(t, "video_id", TagEntityVideo.ForeignKey())
}

func TestClientSyncRecordOmitsAbsentPassthrough(t *testing.T) {
	rec := ClientSyncRecord{
		ID:         1,
		ClientName: json.RawMessage(`"Acme"`),
		CountryID:  json.RawMessage(`null`),
	}
	body, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"client_name":"Acme","country_id":null,"priority":0}`, string(body))
}

func TestFindColumnMismatches(t *testing.T) {
	cols := modelColumns(SyncRun{})
	assert.Contains(t, cols, "dropped_ids")
	assert.Contains(t, cols, "started_at")

	mismatches := findColumnMismatches([]string{"id", "kind", "legacy_notes"}, cols)
	assert.Equal(t, []string{"legacy_notes"}, mismatches)
}
