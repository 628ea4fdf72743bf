package forms

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rpupo63/portfolio-admin/errs"
	"github.com/rpupo63/portfolio-admin/models"
	"github.com/rpupo63/portfolio-admin/services"
)

// The media forms share one shape for create and edit: a zero ID creates,
// a positive ID updates that record.

func modeOf(id int) Mode {
	if id > 0 {
		return ModeEdit
	}
	return ModeCreate
}

func mediaRequest(base string, id int) (string, string) {
	if id > 0 {
		return http.MethodPut, itemPath(base, id)
	}
	return http.MethodPost, base
}

// stampAuthor appends created_by on create and updated_by always.
func stampAuthor(form *services.MultipartForm, id, userID int) {
	user := strconv.Itoa(userID)
	if id <= 0 {
		form.Add("created_by", user)
	}
	form.Add("updated_by", user)
}

var launchDateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04", "02-01-2006"}

func parseLaunchDate(value string) (string, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range launchDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}

type WebsiteForm struct {
	ID          int                `json:"id"`
	ClientID    *int               `json:"client_id"`
	Title       string             `json:"title"`
	URL         string             `json:"url"`
	Type        models.WebsiteType `json:"type"`
	Description string             `json:"description"`
	Thumbnail   *services.File     `json:"-"`
	LaunchDate  string             `json:"launch_date"`
}

func (WebsiteForm) Kind() models.Kind { return models.KindWebsites }
func (p WebsiteForm) Mode() Mode      { return modeOf(p.ID) }
func (WebsiteForm) authored() bool    { return true }

func (p WebsiteForm) Validate() error {
	if err := requiredInt("client_id", "Client is required", p.ClientID); err != nil {
		return err
	}
	if err := required("title", "Title is required", p.Title); err != nil {
		return err
	}
	if err := required("url", "URL is required", p.URL); err != nil {
		return err
	}
	if err := validURL("url", p.URL); err != nil {
		return err
	}
	if err := required("type", "Type is required", string(p.Type)); err != nil {
		return err
	}
	if !p.Type.Valid() {
		return errs.NewInvalidFieldError("type", "Invalid type")
	}
	if err := imageRule.check("thumbnail", p.Thumbnail); err != nil {
		return err
	}
	if strings.TrimSpace(p.LaunchDate) != "" {
		if _, ok := parseLaunchDate(p.LaunchDate); !ok {
			return errs.NewInvalidFieldError("launch_date", "Launch date must be a valid date")
		}
	}
	return nil
}

func (p WebsiteForm) request(userID int) (string, string, services.RequestOptions) {
	form := services.NewMultipartForm().
		Add("client_id", strconv.Itoa(*p.ClientID)).
		Add("title", strings.TrimSpace(p.Title)).
		Add("url", strings.TrimSpace(p.URL)).
		Add("type", string(p.Type))
	if description := trimmedOrNil(p.Description); description != nil {
		form.Add("description", *description)
	}
	if p.Thumbnail != nil {
		form.AddFile("thumbnail", *p.Thumbnail)
	}
	if date, ok := parseLaunchDate(p.LaunchDate); ok {
		form.Add("launch_date", date)
	}
	stampAuthor(form, p.ID, userID)

	method, path := mediaRequest("/api/websites", p.ID)
	return method, path, services.RequestOptions{Form: form}
}

type VideoForm struct {
	ID          int                `json:"id"`
	ClientID    *int               `json:"client_id"`
	Title       string             `json:"title"`
	VideoURL    string             `json:"video_url"`
	Format      models.VideoFormat `json:"format"`
	Type        models.VideoType   `json:"type"`
	Description string             `json:"description"`
	Thumbnail   *services.File     `json:"-"`
}

func (VideoForm) Kind() models.Kind { return models.KindVideos }
func (p VideoForm) Mode() Mode      { return modeOf(p.ID) }
func (VideoForm) authored() bool    { return true }

func (p VideoForm) Validate() error {
	if err := requiredInt("client_id", "Client is required", p.ClientID); err != nil {
		return err
	}
	if err := required("title", "Title is required", p.Title); err != nil {
		return err
	}
	if err := required("video_url", "Video URL is required", p.VideoURL); err != nil {
		return err
	}
	if err := validURL("video_url", p.VideoURL); err != nil {
		return err
	}
	if err := required("format", "Format is required", string(p.Format)); err != nil {
		return err
	}
	if !p.Format.Valid() {
		return errs.NewInvalidFieldError("format", "Invalid format")
	}
	if err := required("type", "Type is required", string(p.Type)); err != nil {
		return err
	}
	if !p.Type.Valid() {
		return errs.NewInvalidFieldError("type", "Invalid type")
	}
	return imageRule.check("thumbnail", p.Thumbnail)
}

func (p VideoForm) request(userID int) (string, string, services.RequestOptions) {
	form := services.NewMultipartForm().
		Add("client_id", strconv.Itoa(*p.ClientID)).
		Add("title", strings.TrimSpace(p.Title)).
		Add("video_url", strings.TrimSpace(p.VideoURL)).
		Add("format", string(p.Format)).
		Add("type", string(p.Type))
	if description := trimmedOrNil(p.Description); description != nil {
		form.Add("description", *description)
	}
	if p.Thumbnail != nil {
		form.AddFile("thumbnail", *p.Thumbnail)
	}
	stampAuthor(form, p.ID, userID)

	method, path := mediaRequest("/api/videos", p.ID)
	return method, path, services.RequestOptions{Form: form}
}

// CreativeForm uploads the document and its thumbnail as repeated "files"
// parts, document first.
type CreativeForm struct {
	ID          int                 `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Priority    *int                `json:"priority"`
	Type        models.CreativeType `json:"type"`
	File        *services.File      `json:"-"`
	Thumbnail   *services.File      `json:"-"`
}

func (CreativeForm) Kind() models.Kind { return models.KindCreatives }
func (p CreativeForm) Mode() Mode      { return modeOf(p.ID) }
func (CreativeForm) authored() bool    { return true }

func (p CreativeForm) Validate() error {
	if err := required("name", "Name is required", p.Name); err != nil {
		return err
	}
	if err := required("type", "Type is required", string(p.Type)); err != nil {
		return err
	}
	if !p.Type.Valid() {
		return errs.NewInvalidFieldError("type", "Invalid type")
	}
	if err := documentRule.check("file", p.File); err != nil {
		return err
	}
	return thumbnailRule.check("thumbnail", p.Thumbnail)
}

func (p CreativeForm) request(userID int) (string, string, services.RequestOptions) {
	form := services.NewMultipartForm().Add("name", strings.TrimSpace(p.Name))
	if description := trimmedOrNil(p.Description); description != nil {
		form.Add("description", *description)
	}
	if p.Priority != nil && *p.Priority != 0 {
		form.Add("priority", strconv.Itoa(*p.Priority))
	}
	form.Add("type", string(p.Type))
	if p.File != nil {
		form.AddFile("files", *p.File)
	}
	if p.Thumbnail != nil {
		form.AddFile("files", *p.Thumbnail)
	}
	stampAuthor(form, p.ID, userID)

	method, path := mediaRequest("/api/creatives", p.ID)
	return method, path, services.RequestOptions{Form: form}
}
