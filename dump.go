package cascade

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/Azhovan/cascade/internal/normalize"
	"github.com/Azhovan/cascade/sourceenv"
)

const redacted = "***redacted***"

// DumpOption configures dump behavior using the functional options pattern.
type DumpOption func(*dumpConfig)

type dumpConfig struct {
	withSources bool
	asJSON      bool
	indent      string
}

// WithSources appends the settings file each leaf came from.
// Ignored for JSON output.
func WithSources() DumpOption {
	return func(cfg *dumpConfig) {
		cfg.withSources = true
	}
}

// AsJSON outputs the tree as nested JSON instead of key: value lines.
func AsJSON() DumpOption {
	return func(cfg *dumpConfig) {
		cfg.asJSON = true
	}
}

// WithIndent sets the indentation for JSON output.
// Default is two spaces ("  ").
func WithIndent(indent string) DumpOption {
	return func(cfg *dumpConfig) {
		cfg.indent = indent
	}
}

// DumpEffective writes the merged settings-file tree with ${NAME} placeholders
// expanded. Keys bound with Secret, and everything beneath them, are written
// as "***redacted***".
func DumpEffective(w io.Writer, s *Settings, opts ...DumpOption) error {
	if s == nil {
		return fmt.Errorf("settings is nil")
	}

	config := dumpConfig{indent: "  "}
	for _, opt := range opts {
		opt(&config)
	}

	secret := make(map[string]bool)
	for key := range s.bindings[SourceSecret] {
		secret[key] = true
	}

	tree := redact(sourceenv.ExpandAll(s.tree, s.process.Environ()), "", secret)

	if config.asJSON {
		return dumpAsJSON(w, tree, config)
	}
	return dumpAsText(w, s, tree.(map[string]any), config)
}

// redact replaces secret paths with the redaction marker.
func redact(value any, path string, secret map[string]bool) any {
	if path != "" && secret[path] {
		return redacted
	}
	m, ok := value.(map[string]any)
	if !ok {
		return value
	}
	for key, child := range m {
		m[key] = redact(child, normalize.JoinKey(path, key), secret)
	}
	return m
}

func dumpAsText(w io.Writer, s *Settings, tree map[string]any, config dumpConfig) error {
	leaves := make(map[string]any)
	flatten("", tree, leaves)

	keys := make([]string, 0, len(leaves))
	for key := range leaves {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		line := fmt.Sprintf("%s: %s", key, formatValue(leaves[key]))
		if config.withSources {
			if source := s.origins[key]; source != "" {
				line += fmt.Sprintf(" (source: %s)", source)
			}
		}
		line += "\n"

		if _, err := io.WriteString(w, line); err != nil {
			return fmt.Errorf("write error: %w", err)
		}
	}

	return nil
}

func dumpAsJSON(w io.Writer, tree any, config dumpConfig) error {
	var data []byte
	var err error
	if config.indent != "" {
		data, err = json.MarshalIndent(tree, "", config.indent)
	} else {
		data, err = json.Marshal(tree)
	}
	if err != nil {
		return fmt.Errorf("json marshal error: %w", err)
	}

	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write error: %w", err)
	}
	return nil
}

// flatten collects leaves by dotted path. Empty mappings are kept as leaves.
func flatten(prefix string, value any, out map[string]any) {
	m, ok := value.(map[string]any)
	if !ok || (len(m) == 0 && prefix != "") {
		out[prefix] = value
		return
	}
	for key, child := range m {
		flatten(normalize.JoinKey(prefix, key), child, out)
	}
}

func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "<nil>"
	case string:
		if v == redacted {
			return v
		}
		return fmt.Sprintf("%q", v)
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = formatValue(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]any:
		return "{}"
	default:
		return fmt.Sprintf("%v", v)
	}
}
