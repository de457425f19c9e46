package config

import (
	"os"
	"strconv"
	"strings"
)

type envLoader struct {
	prefix  string
	aliases map[string]string
}

// NewEnvLoader maps PREFIX_A__B=v to a.b. Aliases map raw variable names to
// dotted keys, e.g. VITE_API_BASE_URL to api.base_url.
func NewEnvLoader(prefix string, aliases map[string]string) Loader {
	return &envLoader{prefix: prefix, aliases: aliases}
}

func (l *envLoader) Load() (map[string]any, error) {
	vars := make(map[string]string)
	for _, env := range os.Environ() {
		if key, value, ok := strings.Cut(env, "="); ok {
			vars[key] = value
		}
	}
	values := envToMap(vars, l.prefix, l.aliases)
	if len(values) == 0 {
		return nil, ErrNoConfigSource
	}
	return values, nil
}

func envToMap(vars map[string]string, prefix string, aliases map[string]string) map[string]any {
	values := make(map[string]any)

	for key, value := range vars {
		var configKey string
		switch {
		case aliases[key] != "":
			configKey = aliases[key]
		case prefix != "" && strings.HasPrefix(key, prefix):
			configKey = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(key, prefix)), "__", ".")
		default:
			continue
		}
		setNested(values, configKey, typed(value))
	}

	return values
}

func typed(value string) any {
	if i, err := strconv.Atoi(value); err == nil {
		return i
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	return value
}

func setNested(m map[string]any, key string, value any) {
	keys := strings.Split(key, ".")
	current := m
	for _, k := range keys[:len(keys)-1] {
		next, ok := current[k].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[k] = next
		}
		current = next
	}
	current[keys[len(keys)-1]] = value
}
