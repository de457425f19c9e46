package config

import "github.com/shuldan/underc0de-admin/pkg/errors"

var newConfigCode = errors.WithPrefix("CONFIG")

var (
	ErrNoConfigSource = newConfigCode().New("no valid configuration source found")
	ErrParseFile      = newConfigCode().New("failed to parse {{.format}} file {{.path}}")
	ErrTemplate       = newConfigCode().New("failed to render template in {{.key}}")
	ErrMissingSetting = newConfigCode().New("required setting {{.key}} is not configured")
	ErrInvalidSetting = newConfigCode().New("setting {{.key}} is invalid: {{.reason}}")
)
