package config

import (
	"bytes"
	"os"
	"strings"
	"text/template"
)

type templatedLoader struct {
	loader Loader
}

// NewTemplatedLoader expands {{ env "X" }} style templates in string values.
func NewTemplatedLoader(loader Loader) Loader {
	return &templatedLoader{loader: loader}
}

func (t *templatedLoader) Load() (map[string]any, error) {
	raw, err := t.loader.Load()
	if err != nil {
		return nil, err
	}

	processed := make(map[string]any, len(raw))
	for k, v := range raw {
		value, err := t.processValue(k, v)
		if err != nil {
			return nil, err
		}
		processed[k] = value
	}
	return processed, nil
}

func (t *templatedLoader) processValue(key string, v any) (any, error) {
	switch val := v.(type) {
	case string:
		if !strings.Contains(val, "{{") {
			return val, nil
		}
		rendered, err := render(val)
		if err != nil {
			return nil, ErrTemplate.WithDetail("key", key).WithCause(err)
		}
		return rendered, nil
	case map[string]any:
		mapped := make(map[string]any, len(val))
		for k, item := range val {
			processed, err := t.processValue(key+"."+k, item)
			if err != nil {
				return nil, err
			}
			mapped[k] = processed
		}
		return mapped, nil
	case []any:
		result := make([]any, 0, len(val))
		for _, item := range val {
			processed, err := t.processValue(key, item)
			if err != nil {
				return nil, err
			}
			result = append(result, processed)
		}
		return result, nil
	default:
		return val, nil
	}
}

var funcMap = template.FuncMap{
	"default": func(def string, val any) string {
		if s, ok := val.(string); ok && s != "" {
			return s
		}
		return def
	},
	"env":   os.Getenv,
	"upper": strings.ToUpper,
	"lower": strings.ToLower,
}

func render(input string) (string, error) {
	tmpl, err := template.New("config").Funcs(funcMap).Parse(input)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err = tmpl.Execute(&buf, nil); err != nil {
		return "", err
	}
	return buf.String(), nil
}
