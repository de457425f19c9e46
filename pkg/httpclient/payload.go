package httpclient

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/url"

	"github.com/tidwall/gjson"
)

// FormData is a multipart payload. Fields and files keep insertion order.
type FormData struct {
	fields []formField
	files  []formFile
}

type formField struct {
	name  string
	value string
}

type formFile struct {
	field    string
	filename string
	content  []byte
}

func NewFormData() *FormData {
	return &FormData{}
}

func (f *FormData) Append(name, value string) *FormData {
	f.fields = append(f.fields, formField{name: name, value: value})
	return f
}

func (f *FormData) AppendFile(field, filename string, content []byte) *FormData {
	f.files = append(f.files, formFile{field: field, filename: filename, content: content})
	return f
}

// Get returns the first value appended under name.
func (f *FormData) Get(name string) (string, bool) {
	for _, field := range f.fields {
		if field.name == name {
			return field.value, true
		}
	}
	return "", false
}

func (f *FormData) Len() int {
	return len(f.fields) + len(f.files)
}

func (f *FormData) encode() ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, field := range f.fields {
		if err := w.WriteField(field.name, field.value); err != nil {
			return nil, "", err
		}
	}
	for _, file := range f.files {
		part, err := w.CreateFormFile(file.field, file.filename)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(file.content); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

// encodeQuery flattens a payload into query parameters. Maps and structs are
// read through their JSON form; null members are skipped and arrays repeat
// the key.
func encodeQuery(payload any) (url.Values, error) {
	switch p := payload.(type) {
	case nil:
		return url.Values{}, nil
	case url.Values:
		return p, nil
	case map[string]string:
		values := url.Values{}
		for k, v := range p {
			values.Set(k, v)
		}
		return values, nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	parsed := gjson.ParseBytes(raw)
	if parsed.Type == gjson.Null {
		return url.Values{}, nil
	}
	if !parsed.IsObject() {
		return nil, errNotAnObject
	}

	values := url.Values{}
	parsed.ForEach(func(key, value gjson.Result) bool {
		switch {
		case value.Type == gjson.Null:
		case value.IsArray():
			for _, item := range value.Array() {
				values.Add(key.String(), item.String())
			}
		default:
			values.Set(key.String(), value.String())
		}
		return true
	})
	return values, nil
}

// encodeBody returns the bytes to send and the content type they force, if
// any. Bodies are fully buffered so retries can replay them.
func encodeBody(payload any) ([]byte, string, error) {
	switch p := payload.(type) {
	case nil:
		return nil, "", nil
	case *FormData:
		return p.encode()
	case []byte:
		return p, "", nil
	case json.RawMessage:
		return p, "", nil
	case string:
		return []byte(p), "", nil
	case io.Reader:
		b, err := io.ReadAll(p)
		return b, "", err
	}

	b, err := json.Marshal(payload)
	return b, "", err
}
