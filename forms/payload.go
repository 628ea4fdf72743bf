package forms

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/rpupo63/portfolio-admin/errs"
	"github.com/rpupo63/portfolio-admin/models"
	"github.com/rpupo63/portfolio-admin/services"
)

type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// verb is the word used in notifications ("created", "create").
func (m Mode) verb() (past, present string) {
	if m == ModeEdit {
		return "updated", "update"
	}
	return "created", "create"
}

// Payload is one of the explicit create/edit variants below. Validate runs
// without any I/O; request is only called on a valid payload.
type Payload interface {
	Kind() models.Kind
	Mode() Mode
	Validate() error
	authored() bool
	request(userID int) (method, path string, opts services.RequestOptions)
}

func required(field, message, value string) error {
	if strings.TrimSpace(value) == "" {
		return errs.NewMissingRequiredFieldError(field, message)
	}
	return nil
}

func requiredInt(field, message string, value *int) error {
	if value == nil {
		return errs.NewMissingRequiredFieldError(field, message)
	}
	return nil
}

func validID(id int) error {
	if id <= 0 {
		return errs.NewMissingRequiredFieldError("id", "ID is required")
	}
	return nil
}

// validURL accepts absolute http(s) and ftp URLs with a host.
func validURL(field, value string) error {
	u, err := url.ParseRequestURI(strings.TrimSpace(value))
	if err != nil || u.Host == "" {
		return errs.NewInvalidFieldError(field, "Must be a valid URL")
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "ftp":
		return nil
	}
	return errs.NewInvalidFieldError(field, "Must be a valid URL")
}

// trimmedOrNil mirrors value?.trim() || null.
func trimmedOrNil(value string) *string {
	v := strings.TrimSpace(value)
	if v == "" {
		return nil
	}
	return &v
}

func intOr(value *int, def int) int {
	if value == nil {
		return def
	}
	return *value
}

func itemPath(base string, id int) string {
	return base + "/" + strconv.Itoa(id)
}
