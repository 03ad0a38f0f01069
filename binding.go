package cascade

import (
	"go.uber.org/zap"

	"github.com/Azhovan/cascade/internal/normalize"
)

// CLI binds key to a command-line switch such as "--port". The argument after
// the switch becomes the value.
//
// Without a name, key is read from the settings files as a mapping of
// settings key → switch, and every entry is bound.
func (s *Settings) CLI(key string, name ...string) *Settings {
	return s.bind(SourceCLI, key, name)
}

// Env binds key to an environment variable. Names match case-insensitively.
//
// Without a name, key is read from the settings files as a mapping of
// settings key → variable name, and every entry is bound.
func (s *Settings) Env(key string, name ...string) *Settings {
	return s.bind(SourceEnv, key, name)
}

// Secret binds key to a credential store locator, "service/account" or a bare
// "account" in the "system" service.
//
// Without a name, key is read from the settings files as a mapping of
// settings key → locator, and every entry is bound.
func (s *Settings) Secret(key string, name ...string) *Settings {
	return s.bind(SourceSecret, key, name)
}

// Bindings returns a copy of the table for SourceCLI, SourceEnv or SourceSecret.
func (s *Settings) Bindings(source Source) map[string]string {
	table := s.bindings[source]
	out := make(map[string]string, len(table))
	for key, name := range table {
		out[key] = name
	}
	return out
}

func (s *Settings) bind(source Source, key string, name []string) *Settings {
	table := s.bindings[source]

	if len(name) > 0 {
		table[key] = name[0]
		return s
	}

	value, _, ok := normalize.Walk(s.tree, key)
	if !ok {
		s.logger.Debug("no bindings to import", zap.String("source", string(source)), zap.String("key", key))
		return s
	}

	entries, ok := value.(map[string]any)
	if !ok {
		s.logger.Debug("bindings are not a mapping", zap.String("source", string(source)), zap.String("key", key))
		return s
	}

	imported := 0
	for settingsKey, external := range entries {
		externalName, ok := external.(string)
		if !ok {
			s.logger.Debug("skipping non-string binding", zap.String("source", string(source)), zap.String("key", settingsKey))
			continue
		}
		table[settingsKey] = externalName
		imported++
	}

	s.logger.Debug("imported bindings", zap.String("source", string(source)), zap.String("key", key), zap.Int("count", imported))
	return s
}
