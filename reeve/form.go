package reeve

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
)

// Form builds a multipart/form-data request body.
type Form struct {
	fields []formField
}

type formField struct {
	name        string
	value       string
	filename    string
	contentType string
	data        []byte
}

// NewForm creates an empty multipart form.
func NewForm() *Form {
	return &Form{}
}

// AddField appends a plain text field.
func (f *Form) AddField(name, value string) {
	f.fields = append(f.fields, formField{name: name, value: value})
}

// AddFile appends a binary field with an explicit filename and content
// type. The same field name may be used more than once.
func (f *Form) AddFile(name, filename, contentType string, data []byte) {
	f.fields = append(f.fields, formField{
		name:        name,
		filename:    filename,
		contentType: contentType,
		data:        data,
	})
}

func (f *Form) encode() (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	for _, field := range f.fields {
		if field.filename == "" {
			if err := writer.WriteField(field.name, field.value); err != nil {
				return nil, "", err
			}
			continue
		}

		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name=%q; filename=%q`, field.name, field.filename))
		header.Set("Content-Type", field.contentType)

		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(field.data); err != nil {
			return nil, "", err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return buf, writer.FormDataContentType(), nil
}
