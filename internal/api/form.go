package api

import (
	"bytes"
	"fmt"
	"mime/multipart"

	"auction-client/internal/models"
)

// Form is a multipart payload. Passing a *Form to Post or Put selects
// multipart encoding; any other payload is sent as JSON.
type Form struct {
	fields []formField
	files  []formFile
}

type formField struct {
	name, value string
}

type formFile struct {
	name   string
	upload models.Upload
}

// NewForm returns an empty multipart payload.
func NewForm() *Form {
	return &Form{}
}

// Set appends a text field. Fields keep insertion order.
func (f *Form) Set(name, value string) *Form {
	f.fields = append(f.fields, formField{name: name, value: value})
	return f
}

// SetIfNotEmpty appends a text field only when value is non-empty.
func (f *Form) SetIfNotEmpty(name, value string) *Form {
	if value != "" {
		f.Set(name, value)
	}
	return f
}

// AttachFile appends a file part.
func (f *Form) AttachFile(name string, upload models.Upload) *Form {
	f.files = append(f.files, formFile{name: name, upload: upload})
	return f
}

// Value returns the first value set for name.
func (f *Form) Value(name string) (string, bool) {
	for _, field := range f.fields {
		if field.name == name {
			return field.value, true
		}
	}
	return "", false
}

// HasFile reports whether a file part named name is attached.
func (f *Form) HasFile(name string) bool {
	for _, file := range f.files {
		if file.name == name {
			return true
		}
	}
	return false
}

// encode writes the multipart body and returns it with its content type,
// which carries the generated boundary.
func (f *Form) encode() (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	for _, field := range f.fields {
		if err := writer.WriteField(field.name, field.value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", field.name, err)
		}
	}
	for _, file := range f.files {
		part, err := writer.CreateFormFile(file.name, file.upload.Filename)
		if err != nil {
			return nil, "", fmt.Errorf("create file part %s: %w", file.name, err)
		}
		if _, err := part.Write(file.upload.Content); err != nil {
			return nil, "", fmt.Errorf("write file part %s: %w", file.name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}

	return buf, writer.FormDataContentType(), nil
}
