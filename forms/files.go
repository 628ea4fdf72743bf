package forms

import (
	"strings"

	"github.com/rpupo63/portfolio-admin/errs"
	"github.com/rpupo63/portfolio-admin/services"
)

const (
	maxImageSize    = 5 * 1024 * 1024
	maxDocumentSize = 10 * 1024 * 1024
)

// fileRule bounds one upload field.
type fileRule struct {
	maxSize     int64
	sizeMessage string
	types       []string
	typeMessage string
}

var (
	imageRule = fileRule{
		maxSize:     maxImageSize,
		sizeMessage: "File size must be less than 5MB",
		types:       []string{"image/jpeg", "image/jpg", "image/png", "image/webp"},
		typeMessage: "Only JPG, JPEG, PNG, WebP files are allowed",
	}
	thumbnailRule = fileRule{
		maxSize:     maxImageSize,
		sizeMessage: "Thumbnail size must be less than 5MB",
		types:       imageRule.types,
		typeMessage: imageRule.typeMessage,
	}
	documentRule = fileRule{
		maxSize:     maxDocumentSize,
		sizeMessage: "File size must be less than 10MB",
		types: []string{
			"application/pdf",
			"application/msword",
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		},
		typeMessage: "Only PDF, DOC, DOCX files are allowed",
	}
)

// check passes an absent file.
func (r fileRule) check(field string, file *services.File) error {
	if file == nil {
		return nil
	}
	if file.Size() > r.maxSize {
		return errs.NewFileTooLargeError(field, r.sizeMessage)
	}
	contentType := strings.ToLower(strings.TrimSpace(file.ContentType))
	for _, t := range r.types {
		if contentType == t {
			return nil
		}
	}
	return errs.NewUnsupportedMediaTypeError(field, r.typeMessage)
}
