package services

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// File is an upload picked in a form.
type File struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Size is the upload size in bytes.
func (f File) Size() int64 {
	return int64(len(f.Content))
}

type formPart struct {
	name  string
	value string
	file  *File
}

// MultipartForm is an ordered multipart/form-data body. Repeated names are
// kept, which the creatives endpoint relies on for its "files" parts.
type MultipartForm struct {
	parts []formPart
}

func NewMultipartForm() *MultipartForm {
	return &MultipartForm{}
}

func (f *MultipartForm) Add(name, value string) *MultipartForm {
	f.parts = append(f.parts, formPart{name: name, value: value})
	return f
}

func (f *MultipartForm) AddFile(name string, file File) *MultipartForm {
	f.parts = append(f.parts, formPart{name: name, file: &file})
	return f
}

// Values returns the text values recorded under name, in order.
func (f *MultipartForm) Values(name string) []string {
	var values []string
	for _, p := range f.parts {
		if p.name == name && p.file == nil {
			values = append(values, p.value)
		}
	}
	return values
}

// Files returns the uploads recorded under name, in order.
func (f *MultipartForm) Files(name string) []File {
	var files []File
	for _, p := range f.parts {
		if p.name == name && p.file != nil {
			files = append(files, *p.file)
		}
	}
	return files
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func (f *MultipartForm) encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, p := range f.parts {
		if p.file == nil {
			if err := w.WriteField(p.name, p.value); err != nil {
				return nil, "", err
			}
			continue
		}

		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(p.name), quoteEscaper.Replace(p.file.Filename)))
		contentType := p.file.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header.Set("Content-Type", contentType)

		part, err := w.CreatePart(header)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(p.file.Content); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
