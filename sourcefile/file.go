package sourcefile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Loader errors.
var (
	// ErrParse is wrapped by every error caused by a file that exists but cannot be decoded.
	ErrParse = errors.New("cascade: parse settings file")

	// ErrUnsupportedFormat is returned for extensions without a parser.
	ErrUnsupportedFormat = errors.New("cascade: unsupported settings file format")
)

// Load reads and parses the file at path into a nested mapping.
// A missing file is not an error and yields an empty mapping, whatever its extension.
// The parser is chosen from the extension: .yml/.yaml, .json, or .toml.
func Load(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return make(map[string]any), nil
		}
		return nil, fmt.Errorf("read settings file %s: %w", path, err)
	}

	format := inferFormat(path)
	if format == "" {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	raw, err := decode(format, data)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrParse, path, err)
	}

	return raw, nil
}

func decode(format string, data []byte) (map[string]any, error) {
	var raw any

	switch format {
	case "yaml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				return make(map[string]any), nil
			}
			return nil, err
		}
		var next any
		if err := dec.Decode(&next); !errors.Is(err, io.EOF) {
			if err != nil {
				return nil, err
			}
			return nil, errors.New("expected a single document")
		}
		if raw == nil {
			return make(map[string]any), nil
		}
	case "json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		if _, err := dec.Token(); !errors.Is(err, io.EOF) {
			return nil, errors.New("unexpected data after top-level value")
		}
	case "toml":
		table := make(map[string]any)
		if err := toml.Unmarshal(data, &table); err != nil {
			return nil, err
		}
		raw = table
	}

	tree, ok := normalizeValue(raw).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("top-level value must be a mapping, got %T", raw)
	}
	return tree, nil
}

// normalizeValue converts YAML's map[any]any nodes into map[string]any so the
// rest of the engine deals with one mapping type. JSON numbers become int64
// when integral and in range, float64 otherwise.
func normalizeValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		for key, child := range v {
			v[key] = normalizeValue(child)
		}
		return v
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, child := range v {
			out[fmt.Sprint(key)] = normalizeValue(child)
		}
		return out
	case []any:
		for i, child := range v {
			v[i] = normalizeValue(child)
		}
		return v
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	default:
		return value
	}
}

func inferFormat(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return "yaml"
	case ".json":
		return "json"
	case ".toml":
		return "toml"
	default:
		return ""
	}
}
