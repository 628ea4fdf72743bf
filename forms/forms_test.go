package forms

import (
	"context"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rpupo63/portfolio-admin/errs"
	"github.com/rpupo63/portfolio-admin/models"
	"github.com/rpupo63/portfolio-admin/notify"
	"github.com/rpupo63/portfolio-admin/services"
	"github.com/rpupo63/portfolio-admin/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int {
	return &v
}

type captured struct {
	Method      string
	Path        string
	Auth        string
	JSON        map[string]any
	Fields      map[string][]string
	FileNames   map[string][]string
	ContentType string
}

// newBackend answers every request with status and body and records the
// last request it saw.
func newBackend(t *testing.T, status int, body string) (*services.Gateway, *captured, *int32) {
	t.Helper()
	last := &captured{}
	var calls int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		*last = captured{
			Method:      r.Method,
			Path:        r.URL.Path,
			Auth:        r.Header.Get("Authorization"),
			ContentType: r.Header.Get("Content-Type"),
		}

		mediaType, params, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
		switch mediaType {
		case "application/json":
			raw, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(raw, &last.JSON)
		case "multipart/form-data":
			last.Fields = map[string][]string{}
			last.FileNames = map[string][]string{}
			reader := multipart.NewReader(r.Body, params["boundary"])
			for {
				part, err := reader.NextPart()
				if err != nil {
					break
				}
				data, _ := io.ReadAll(part)
				if part.FileName() != "" {
					last.FileNames[part.FormName()] = append(last.FileNames[part.FormName()], part.FileName())
					continue
				}
				last.Fields[part.FormName()] = append(last.Fields[part.FormName()], string(data))
			}
		}

		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return services.NewGateway(srv.URL), last, &calls
}

func TestClientCreate(t *testing.T) {
	gw, last, _ := newBackend(t, http.StatusCreated, `{}`)
	recorder := &notify.Recorder{}
	signal := notify.NewSignal()
	fired := 0
	signal.Subscribe(func(context.Context) { fired++ })

	c := NewController(gw, session.Session{AccessToken: "tok"}, WithNotifier(recorder), WithSignal(models.KindClients, signal))
	result, err := c.Submit(context.Background(), ClientCreate{
		ID:         intPtr(7),
		ClientName: "  Acme ",
		CountryID:  intPtr(12),
		Thumbnail:  "   ",
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, last.Method)
	assert.Equal(t, "/api/clients/create", last.Path)
	assert.Equal(t, "Bearer tok", last.Auth)
	assert.Equal(t, map[string]any{
		"id": float64(7), "client_name": "Acme", "country_id": float64(12),
		"description": nil, "thumbnail": nil, "priority": float64(0),
	}, last.JSON)
	assert.Equal(t, "Client created successfully!", result.Message)
	assert.Equal(t, 1, fired)
	assert.Equal(t, []notify.Notification{{Level: notify.LevelSuccess, Message: "Client created successfully!"}}, recorder.Drain())
}

func TestClientEditSendsOnlyOwnedFields(t *testing.T) {
	gw, last, _ := newBackend(t, http.StatusOK, `{"message":"Saved"}`)
	c := NewController(gw, session.Session{AccessToken: "tok"}, WithNotifier(&notify.Recorder{}))

	result, err := c.Submit(context.Background(), ClientEdit{ID: 7, Priority: intPtr(3)})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, last.Method)
	assert.Equal(t, "/api/clients/update/7", last.Path)
	assert.Equal(t, map[string]any{"priority": float64(3), "description1": ""}, last.JSON)
	assert.Equal(t, "Saved", result.Message)
}

func TestProjectPayloads(t *testing.T) {
	gw, last, _ := newBackend(t, http.StatusOK, `{}`)
	c := NewController(gw, session.Session{AccessToken: "tok"}, WithNotifier(&notify.Recorder{}))

	_, err := c.Submit(context.Background(), ProjectCreate{ID: intPtr(3), ClientID: intPtr(7), ProjectName: "Site", Description1: " x "})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"id": float64(3), "client_id": float64(7), "project_name": "Site",
		"description": nil, "description1": "x", "priority": float64(0),
	}, last.JSON)

	result, err := c.Submit(context.Background(), ProjectEdit{ID: 3, Priority: intPtr(1)})
	require.NoError(t, err)
	assert.Equal(t, "/api/projects/update/3", last.Path)
	assert.Equal(t, map[string]any{"description1": nil, "priority": float64(1)}, last.JSON)
	assert.Equal(t, "Project updated successfully!", result.Message)
}

func TestTechnologyAuthorship(t *testing.T) {
	gw, last, _ := newBackend(t, http.StatusOK, `{}`)
	c := NewController(gw, session.Session{AccessToken: "tok", UserID: 5}, WithNotifier(&notify.Recorder{}))

	_, err := c.Submit(context.Background(), TechnologyCreate{Name: "Go"})
	require.NoError(t, err)
	assert.Equal(t, "/api/technologies", last.Path)
	assert.Equal(t, map[string]any{"name": "Go", "created_by": float64(5), "updated_by": float64(5)}, last.JSON)

	_, err = c.Submit(context.Background(), TechnologyEdit{ID: 2, Name: "Golang"})
	require.NoError(t, err)
	assert.Equal(t, "/api/technologies/2", last.Path)
	assert.Equal(t, map[string]any{"name": "Golang", "updated_by": float64(5)}, last.JSON)
}

func TestAuthoredSubmitRequiresSessionUser(t *testing.T) {
	gw, _, calls := newBackend(t, http.StatusOK, `{}`)
	recorder := &notify.Recorder{}
	c := NewController(gw, session.Session{AccessToken: "tok"}, WithNotifier(recorder))

	_, err := c.Submit(context.Background(), TechnologyCreate{Name: "Go"})
	require.Error(t, err)
	assert.True(t, errs.IsMissingSessionError(err))
	assert.Zero(t, atomic.LoadInt32(calls))
	assert.Equal(t, []notify.Notification{{Level: notify.LevelError, Message: "User ID not found in session"}}, recorder.Drain())
}

func TestValidationMessages(t *testing.T) {
	png := &services.File{Filename: "a.png", ContentType: "image/png", Content: []byte("x")}
	tests := []struct {
		name    string
		payload Payload
		message string
	}{
		{"client id", ClientCreate{ClientName: "A", CountryID: intPtr(1)}, "ID is required"},
		{"client name", ClientCreate{ID: intPtr(1), ClientName: "  ", CountryID: intPtr(1)}, "Client Name is required"},
		{"country", ClientCreate{ID: intPtr(1), ClientName: "A"}, "Country ID is required"},
		{"client priority", ClientEdit{ID: 1}, "Priority is required"},
		{"project client", ProjectCreate{ID: intPtr(1), ProjectName: "P"}, "Client is required"},
		{"project name", ProjectCreate{ID: intPtr(1), ClientID: intPtr(1)}, "Project Name is required"},
		{"project priority", ProjectEdit{ID: 1}, "Priority is required"},
		{"technology name", TechnologyCreate{}, "Technology Name is required"},
		{"website title", WebsiteForm{ClientID: intPtr(1), URL: "https://a.io", Type: models.WebsiteTypeWebsite}, "Title is required"},
		{"website url", WebsiteForm{ClientID: intPtr(1), Title: "T", Type: models.WebsiteTypeWebsite}, "URL is required"},
		{"website bad url", WebsiteForm{ClientID: intPtr(1), Title: "T", URL: "not a url", Type: models.WebsiteTypeWebsite}, "Must be a valid URL"},
		{"website type", WebsiteForm{ClientID: intPtr(1), Title: "T", URL: "https://a.io"}, "Type is required"},
		{"website bad type", WebsiteForm{ClientID: intPtr(1), Title: "T", URL: "https://a.io", Type: "BLOG"}, "Invalid type"},
		{"website launch date", WebsiteForm{ClientID: intPtr(1), Title: "T", URL: "https://a.io", Type: models.WebsiteTypeWebsite, LaunchDate: "soon"}, "Launch date must be a valid date"},
		{"website thumbnail type", WebsiteForm{ClientID: intPtr(1), Title: "T", URL: "https://a.io", Type: models.WebsiteTypeWebsite,
			Thumbnail: &services.File{Filename: "a.gif", ContentType: "image/gif", Content: []byte("x")}}, "Only JPG, JPEG, PNG, WebP files are allowed"},
		{"video url", VideoForm{ClientID: intPtr(1), Title: "T", Format: models.VideoFormatSquare, Type: models.VideoTypeReel}, "Video URL is required"},
		{"video format", VideoForm{ClientID: intPtr(1), Title: "T", VideoURL: "https://v.io/1", Format: "WIDE", Type: models.VideoTypeReel}, "Invalid format"},
		{"video missing format", VideoForm{ClientID: intPtr(1), Title: "T", VideoURL: "https://v.io/1", Type: models.VideoTypeReel}, "Format is required"},
		{"creative name", CreativeForm{Type: models.CreativeTypeLogo}, "Name is required"},
		{"creative thumbnail size", CreativeForm{Name: "N", Type: models.CreativeTypeLogo,
			Thumbnail: &services.File{ContentType: "image/png", Content: make([]byte, maxImageSize+1)}}, "Thumbnail size must be less than 5MB"},
		{"creative document type", CreativeForm{Name: "N", Type: models.CreativeTypeBrochure, File: png}, "Only PDF, DOC, DOCX files are allowed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payload.Validate()
			require.Error(t, err)
			assert.True(t, errs.IsValidationError(err))
			assert.Equal(t, tt.message, errs.MessageOr(err, ""))
		})
	}
}

func TestOversizedCreativeFileIsRejectedLocally(t *testing.T) {
	gw, _, calls := newBackend(t, http.StatusOK, `{}`)
	c := NewController(gw, session.Session{AccessToken: "tok", UserID: 1}, WithNotifier(&notify.Recorder{}))

	_, err := c.Submit(context.Background(), CreativeForm{
		Name: "Brochure",
		Type: models.CreativeTypeBrochure,
		File: &services.File{Filename: "big.pdf", ContentType: "application/pdf", Content: make([]byte, 11*1024*1024)},
	})
	require.Error(t, err)
	assert.Equal(t, "File size must be less than 10MB", errs.MessageOr(err, ""))
	assert.Zero(t, atomic.LoadInt32(calls))
}

func TestWebsiteMultipart(t *testing.T) {
	gw, last, _ := newBackend(t, http.StatusOK, `{}`)
	c := NewController(gw, session.Session{AccessToken: "tok", UserID: 9}, WithNotifier(&notify.Recorder{}))

	_, err := c.Submit(context.Background(), WebsiteForm{
		ClientID:   intPtr(4),
		Title:      " Shop ",
		URL:        "https://shop.example.com",
		Type:       models.WebsiteTypeLandingPage,
		Thumbnail:  &services.File{Filename: "t.webp", ContentType: "image/webp", Content: []byte("img")},
		LaunchDate: "2024-03-05T10:00:00Z",
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, last.Method)
	assert.Equal(t, "/api/websites", last.Path)
	assert.Equal(t, []string{"Shop"}, last.Fields["title"])
	assert.Equal(t, []string{"LANDING_PAGE"}, last.Fields["type"])
	assert.Equal(t, []string{"2024-03-05"}, last.Fields["launch_date"])
	assert.Equal(t, []string{"9"}, last.Fields["created_by"])
	assert.Equal(t, []string{"9"}, last.Fields["updated_by"])
	assert.NotContains(t, last.Fields, "description")
	assert.Equal(t, []string{"t.webp"}, last.FileNames["thumbnail"])
}

func TestVideoEditOmitsCreatedBy(t *testing.T) {
	gw, last, _ := newBackend(t, http.StatusOK, `{}`)
	c := NewController(gw, session.Session{AccessToken: "tok", UserID: 9}, WithNotifier(&notify.Recorder{}))

	result, err := c.Submit(context.Background(), VideoForm{
		ID: 12, ClientID: intPtr(4), Title: "Reel", VideoURL: "https://v.example.com/1",
		Format: models.VideoFormatPortrait, Type: models.VideoTypeReel, Description: "  cut ",
	})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, last.Method)
	assert.Equal(t, "/api/videos/12", last.Path)
	assert.NotContains(t, last.Fields, "created_by")
	assert.Equal(t, []string{"cut"}, last.Fields["description"])
	assert.Equal(t, "Video updated successfully!", result.Message)
}

func TestCreativeFilesArePostedInOrder(t *testing.T) {
	gw, last, _ := newBackend(t, http.StatusOK, `{}`)
	c := NewController(gw, session.Session{AccessToken: "tok", UserID: 2}, WithNotifier(&notify.Recorder{}))

	_, err := c.Submit(context.Background(), CreativeForm{
		Name:      "Logo",
		Priority:  intPtr(0),
		Type:      models.CreativeTypeLogo,
		File:      &services.File{Filename: "logo.pdf", ContentType: "application/pdf", Content: []byte("%PDF")},
		Thumbnail: &services.File{Filename: "logo.png", ContentType: "image/png", Content: []byte("png")},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"logo.pdf", "logo.png"}, last.FileNames["files"])
	assert.NotContains(t, last.Fields, "priority")
}

func TestSubmitFailureMessages(t *testing.T) {
	t.Run("backend message", func(t *testing.T) {
		gw, _, _ := newBackend(t, http.StatusConflict, `{"message":"Client already exists"}`)
		recorder := &notify.Recorder{}
		c := NewController(gw, session.Session{AccessToken: "tok"}, WithNotifier(recorder))

		_, err := c.Submit(context.Background(), ClientCreate{ID: intPtr(1), ClientName: "A", CountryID: intPtr(1)})
		require.Error(t, err)
		assert.True(t, errs.IsExternalRejectedError(err))
		assert.Equal(t, []notify.Notification{{Level: notify.LevelError, Message: "Client already exists"}}, recorder.Drain())
	})

	t.Run("fallback", func(t *testing.T) {
		gw, _, _ := newBackend(t, http.StatusInternalServerError, `not json`)
		recorder := &notify.Recorder{}
		c := NewController(gw, session.Session{AccessToken: "tok"}, WithNotifier(recorder))

		_, err := c.Submit(context.Background(), ProjectEdit{ID: 1, Priority: intPtr(1)})
		require.Error(t, err)
		assert.Equal(t, "Failed to update project", errs.MessageOr(err, ""))
	})
}

func TestDelete(t *testing.T) {
	gw, last, _ := newBackend(t, http.StatusOK, `{}`)
	signal := notify.NewSignal()
	fired := 0
	signal.Subscribe(func(context.Context) { fired++ })
	c := NewController(gw, session.Session{AccessToken: "tok"}, WithNotifier(&notify.Recorder{}), WithSignal(models.KindCreatives, signal))

	result, err := c.Delete(context.Background(), models.KindCreatives, 8)
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, last.Method)
	assert.Equal(t, "/api/creatives/8", last.Path)
	assert.Equal(t, "Creative deleted successfully!", result.Message)
	assert.Equal(t, 1, fired)

	_, err = c.Delete(context.Background(), models.KindClients, 8)
	assert.True(t, errs.IsBadRequest(err))
}
