package cascade

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Azhovan/cascade/internal/merge"
	"github.com/Azhovan/cascade/internal/normalize"
	"github.com/Azhovan/cascade/sourceenv"
	"github.com/Azhovan/cascade/sourcefile"
	"github.com/Azhovan/cascade/sourcesecret"
)

// DefaultSharedName is the base name of settings files shared by every program.
const DefaultSharedName = "cascade"

// Settings resolves keys against overrides, the command line, the environment,
// the secret store, and settings files, in that order.
//
// The file tree is loaded once by New and never modified. Bindings must be
// registered before lookups start; Settings does no locking.
type Settings struct {
	origin     string
	dirs       []string
	shared     string
	extensions []string
	overrides  map[string]any
	process    Process
	secrets    SecretStore
	logger     *zap.Logger

	tree     map[string]any
	origins  map[string]string
	searched []string

	bindings map[Source]map[string]string
}

// Option configures New.
type Option func(*Settings)

// WithDirs adds search directories, highest priority first. They rank below the
// origin's directory and above the preferences directory.
func WithDirs(dirs ...string) Option {
	return func(s *Settings) {
		s.dirs = append(s.dirs, dirs...)
	}
}

// WithOverrides sets in-process values that take precedence over every other source.
func WithOverrides(overrides map[string]any) Option {
	return func(s *Settings) {
		for key, value := range overrides {
			s.overrides[key] = value
		}
	}
}

// WithProcess replaces the process the engine reads arguments, environment and platform from.
func WithProcess(p Process) Option {
	return func(s *Settings) {
		s.process = p
	}
}

// WithSecretStore replaces the OS keyring.
func WithSecretStore(store SecretStore) Option {
	return func(s *Settings) {
		s.secrets = store
	}
}

// WithLogger sets the logger. Default: no-op.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Settings) {
		s.logger = logger
	}
}

// WithSharedName changes the base name of shared settings files. Default: "cascade".
func WithSharedName(name string) Option {
	return func(s *Settings) {
		s.shared = name
	}
}

// WithExtensions replaces the searched extensions, highest priority first.
// Default: .yml, .yaml, .json.
func WithExtensions(exts ...string) Option {
	return func(s *Settings) {
		s.extensions = exts
	}
}

// New builds Settings for the program at origin (typically its executable or
// script path). Settings files named after origin's stem, then files named after
// the shared name, are searched in origin's directory, the WithDirs directories,
// and the per-user preferences directory, which is created if missing.
//
// Files that do not exist are skipped. A file that exists but cannot be parsed
// fails construction.
func New(origin string, opts ...Option) (*Settings, error) {
	s := &Settings{
		origin:    origin,
		shared:    DefaultSharedName,
		overrides: make(map[string]any),
		process:   OSProcess(),
		secrets:   sourcesecret.Keyring{},
		logger:    zap.NewNop(),
		bindings: map[Source]map[string]string{
			SourceCLI:    {},
			SourceEnv:    {},
			SourceSecret: {},
		},
	}

	for _, opt := range opts {
		opt(s)
	}

	dirs := append([]string{filepath.Dir(origin)}, s.dirs...)

	pref := sourcefile.PreferencesDir(s.process.Platform(), sourceenv.Getenv(s.process.Environ()), s.shared)
	if pref != "" {
		if err := s.process.MkdirAll(pref); err != nil {
			return nil, fmt.Errorf("create preferences directory %s: %w", pref, err)
		}
		dirs = append(dirs, pref)
	}

	candidates := sourcefile.Candidates(origin, dirs, s.shared, s.extensions)
	layers := make([]merge.Layer, 0, len(candidates))

	for _, candidate := range candidates {
		path := candidate.Path()
		s.searched = append(s.searched, path)

		data, err := sourcefile.Load(path)
		if err != nil {
			return nil, fmt.Errorf("load settings: %w", err)
		}
		if len(data) == 0 {
			continue
		}

		s.logger.Debug("loaded settings file", zap.String("path", path), zap.Int("keys", len(data)))
		layers = append(layers, merge.Layer{Name: path, Data: data})
	}

	s.tree, s.origins = merge.Merge(layers...)
	return s, nil
}

// SearchPaths returns every settings file path that was considered, highest priority first.
func (s *Settings) SearchPaths() []string {
	return append([]string(nil), s.searched...)
}

// Lookup returns the value for key and whether any source had it.
// It panics if key is bound to a malformed secret locator.
func (s *Settings) Lookup(key string) (Value, bool) {
	r, err := s.resolve(key, false)
	if err != nil {
		panic(err)
	}
	return Value{raw: r.value}, r.found
}

// Get returns the value for key, or def when no source has it. def is returned
// verbatim; ${NAME} placeholders in it are not expanded.
// It panics if key is bound to a malformed secret locator.
func (s *Settings) Get(key string, def any) Value {
	v, ok := s.Lookup(key)
	if !ok {
		return Value{raw: def}
	}
	return v
}

// Has reports whether any source has key.
// It panics if key is bound to a malformed secret locator.
func (s *Settings) Has(key string) bool {
	r, err := s.resolve(key, true)
	if err != nil {
		panic(err)
	}
	return r.found
}

// Require returns the value for key. A key no source has returns a *KeyError
// listing the files that were searched; a malformed secret binding returns
// an error matching ErrInvalidLocator.
func (s *Settings) Require(key string) (Value, error) {
	r, err := s.resolve(key, false)
	if err != nil {
		return Value{}, err
	}
	if !r.found {
		return Value{}, &KeyError{Key: key, Searched: s.SearchPaths()}
	}
	return Value{raw: r.value}, nil
}

// MustGet is like Require but panics on error.
func (s *Settings) MustGet(key string) Value {
	v, err := s.Require(key)
	if err != nil {
		panic(err)
	}
	return v
}

// resolution is the outcome of one walk through the sources.
type resolution struct {
	value  any
	found  bool
	source Source
	name   string
}

// resolve walks the sources in precedence order. The first source that has the
// key answers; lower sources are not consulted. With check set, values are not
// materialised.
func (s *Settings) resolve(key string, check bool) (resolution, error) {
	if value, ok := s.overrides[key]; ok {
		return resolution{value: value, found: true, source: SourceOverride, name: key}, nil
	}

	if name, ok := s.bindings[SourceCLI][key]; ok {
		if value, ok := argValue(s.process.Args(), name); ok {
			return resolution{value: value, found: true, source: SourceCLI, name: name}, nil
		}
	}

	environ := s.process.Environ()

	if name, ok := s.bindings[SourceEnv][key]; ok {
		if value, ok := sourceenv.Lookup(environ, name); ok {
			return resolution{value: value, found: true, source: SourceEnv, name: name}, nil
		}
	}

	if locator, ok := s.bindings[SourceSecret][key]; ok {
		service, account, err := sourcesecret.ParseLocator(locator)
		if err != nil {
			return resolution{}, fmt.Errorf("secret binding for %q: %w", key, err)
		}

		secret, err := s.secrets.Get(service, account)
		switch {
		case err == nil:
			return resolution{value: secret, found: true, source: SourceSecret, name: locator}, nil
		case errors.Is(err, ErrSecretNotFound):
			s.logger.Debug("secret not stored", zap.String("key", key), zap.String("locator", locator))
		default:
			s.logger.Debug("secret store lookup failed", zap.String("key", key), zap.String("locator", locator), zap.Error(err))
		}
	}

	value, path, ok := normalize.Walk(s.tree, key)
	if !ok {
		return resolution{}, nil
	}

	r := resolution{found: true, source: SourceFile, name: s.fileFor(path)}
	if !check {
		r.value = sourceenv.ExpandAll(value, environ)
	}
	return r, nil
}

// argValue finds switch name in args (program name excluded) and returns the
// argument after it. Matching ignores case.
func argValue(args []string, name string) (string, bool) {
	if len(args) < 2 {
		return "", false
	}
	rest := args[1:]
	for i := 0; i < len(rest)-1; i++ {
		if strings.EqualFold(rest[i], name) {
			return rest[i+1], true
		}
	}
	return "", false
}

// fileFor returns the highest-priority file that contributed to path.
// For a mapping that is the first searched file holding any leaf beneath it.
func (s *Settings) fileFor(path string) string {
	if name, ok := s.origins[path]; ok {
		return name
	}

	contributors := make(map[string]bool)
	for leaf, name := range s.origins {
		if strings.HasPrefix(leaf, path+".") {
			contributors[name] = true
		}
	}
	for _, searched := range s.searched {
		if contributors[searched] {
			return searched
		}
	}
	return ""
}
