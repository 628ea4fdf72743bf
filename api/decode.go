package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/rpupo63/portfolio-admin/errs"
	"github.com/rpupo63/portfolio-admin/forms"
	"github.com/rpupo63/portfolio-admin/models"
	"github.com/rpupo63/portfolio-admin/services"
)

const (
	maxRequestBody  = 64 << 20
	maxUploadMemory = 32 << 20
)

func decodeJSON(r *http.Request, payloadType string, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errs.NewMalformedPayloadError(payloadType, err)
	}
	return nil
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}

// decodePayload builds the form payload for kind. id is zero on create and
// the path id on edit.
func decodePayload(r *http.Request, kind models.Kind, id int) (forms.Payload, error) {
	switch kind {
	case models.KindClients:
		if id == 0 {
			p := forms.ClientCreate{}
			err := decodeJSON(r, "client", &p)
			return p, err
		}
		p := forms.ClientEdit{}
		err := decodeJSON(r, "client", &p)
		p.ID = id
		return p, err

	case models.KindProjects:
		if id == 0 {
			p := forms.ProjectCreate{}
			err := decodeJSON(r, "project", &p)
			return p, err
		}
		p := forms.ProjectEdit{}
		err := decodeJSON(r, "project", &p)
		p.ID = id
		return p, err

	case models.KindTechnologies:
		if id == 0 {
			p := forms.TechnologyCreate{}
			err := decodeJSON(r, "technology", &p)
			return p, err
		}
		p := forms.TechnologyEdit{}
		err := decodeJSON(r, "technology", &p)
		p.ID = id
		return p, err

	case models.KindWebsites:
		return decodeWebsite(r, id)
	case models.KindVideos:
		return decodeVideo(r, id)
	case models.KindCreatives:
		return decodeCreative(r, id)
	}
	return nil, errs.NewBadRequestError(fmt.Sprintf("%s are read-only here; sync them from the source system", kind))
}

func decodeWebsite(r *http.Request, id int) (forms.Payload, error) {
	p := forms.WebsiteForm{}
	if !isMultipart(r) {
		err := decodeJSON(r, "website", &p)
		p.ID = id
		return p, err
	}
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return p, errs.NewMalformedPayloadError("website", err)
	}

	var err error
	if p.ClientID, err = formInt(r, "client_id"); err != nil {
		return p, err
	}
	p.ID = id
	p.Title = r.FormValue("title")
	p.URL = r.FormValue("url")
	p.Type = models.WebsiteType(r.FormValue("type"))
	p.Description = r.FormValue("description")
	p.LaunchDate = r.FormValue("launch_date")
	p.Thumbnail, err = formFile(r, "thumbnail")
	return p, err
}

func decodeVideo(r *http.Request, id int) (forms.Payload, error) {
	p := forms.VideoForm{}
	if !isMultipart(r) {
		err := decodeJSON(r, "video", &p)
		p.ID = id
		return p, err
	}
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return p, errs.NewMalformedPayloadError("video", err)
	}

	var err error
	if p.ClientID, err = formInt(r, "client_id"); err != nil {
		return p, err
	}
	p.ID = id
	p.Title = r.FormValue("title")
	p.VideoURL = r.FormValue("video_url")
	p.Format = models.VideoFormat(r.FormValue("format"))
	p.Type = models.VideoType(r.FormValue("type"))
	p.Description = r.FormValue("description")
	p.Thumbnail, err = formFile(r, "thumbnail")
	return p, err
}

func decodeCreative(r *http.Request, id int) (forms.Payload, error) {
	p := forms.CreativeForm{}
	if !isMultipart(r) {
		err := decodeJSON(r, "creative", &p)
		p.ID = id
		return p, err
	}
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return p, errs.NewMalformedPayloadError("creative", err)
	}

	var err error
	if p.Priority, err = formInt(r, "priority"); err != nil {
		return p, err
	}
	p.ID = id
	p.Name = r.FormValue("name")
	p.Description = r.FormValue("description")
	p.Type = models.CreativeType(r.FormValue("type"))
	if p.File, err = formFile(r, "file"); err != nil {
		return p, err
	}
	p.Thumbnail, err = formFile(r, "thumbnail")
	return p, err
}

// formInt reads an optional integer field; blank means unset.
func formInt(r *http.Request, name string) (*int, error) {
	raw := strings.TrimSpace(r.FormValue(name))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, errs.NewInvalidFieldError(name, name+" must be a number")
	}
	return &n, nil
}

// formFile reads an optional upload fully into memory. Size and type rules
// are left to the form so the operator sees the same messages as in the
// dashboard.
func formFile(r *http.Request, name string) (*services.File, error) {
	file, header, err := r.FormFile(name)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.NewMalformedPayloadError(name, err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, errs.NewMalformedPayloadError(name, err)
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(content)
	}
	return &services.File{
		Filename:    header.Filename,
		ContentType: contentType,
		Content:     content,
	}, nil
}
