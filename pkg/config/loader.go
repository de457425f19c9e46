package config

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

type Loader interface {
	Load() (map[string]any, error)
}

// fileLoader reads the first existing path and decodes it. Missing files are
// skipped; a present but malformed file is an error.
type fileLoader struct {
	format string
	paths  []string
	decode func(data []byte) (map[string]any, error)
}

func (l *fileLoader) Load() (map[string]any, error) {
	for _, path := range l.paths {
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, ErrParseFile.WithDetail("format", l.format).WithDetail("path", path).WithCause(err)
		}

		values, err := l.decode(data)
		if err != nil {
			return nil, ErrParseFile.WithDetail("format", l.format).WithDetail("path", path).WithCause(err)
		}
		return values, nil
	}

	return nil, ErrNoConfigSource
}

func NewYamlLoader(paths ...string) Loader {
	return &fileLoader{format: "yaml", paths: paths, decode: func(data []byte) (map[string]any, error) {
		var values map[string]any
		err := yaml.UnmarshalWithOptions(data, &values, yaml.UseJSONUnmarshaler())
		return values, err
	}}
}

func NewJSONLoader(paths ...string) Loader {
	return &fileLoader{format: "json", paths: paths, decode: func(data []byte) (map[string]any, error) {
		var values map[string]any
		err := json.Unmarshal(data, &values)
		return values, err
	}}
}

// NewDotenvLoader reads KEY=VALUE files. Keys are filtered and nested the same
// way the process environment is.
func NewDotenvLoader(prefix string, aliases map[string]string, paths ...string) Loader {
	return &fileLoader{format: "dotenv", paths: paths, decode: func(data []byte) (map[string]any, error) {
		vars, err := godotenv.UnmarshalBytes(data)
		if err != nil {
			return nil, err
		}
		return envToMap(vars, prefix, aliases), nil
	}}
}

type chainLoader struct {
	loaders []Loader
}

// NewChainLoader merges loaders in order; later sources override earlier ones.
func NewChainLoader(loaders ...Loader) Loader {
	return &chainLoader{loaders: loaders}
}

func (c *chainLoader) Load() (map[string]any, error) {
	final := make(map[string]any)

	for _, loader := range c.loaders {
		values, err := loader.Load()
		if errors.Is(err, ErrNoConfigSource) {
			continue
		}
		if err != nil {
			return nil, err
		}
		mergeMaps(final, values)
	}

	if len(final) == 0 {
		return nil, ErrNoConfigSource
	}

	return final, nil
}

func mergeMaps(dst, src map[string]any) {
	for k, v := range src {
		if vMap, ok := v.(map[string]any); ok {
			if dstMap, ok := dst[k].(map[string]any); ok {
				mergeMaps(dstMap, vMap)
				continue
			}
		}
		dst[k] = v
	}
}
