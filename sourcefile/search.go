package sourcefile

import (
	"path/filepath"
	"strings"
)

// DefaultExtensions lists the extensions searched for each base name, highest priority first.
var DefaultExtensions = []string{".yml", ".yaml", ".json"}

// Candidate is one settings file location that may or may not exist.
type Candidate struct {
	Ext  string
	Name string
	Dir  string
}

// Path returns the candidate's full file path.
func (c Candidate) Path() string {
	return filepath.Join(c.Dir, c.Name+c.Ext)
}

// Stem returns the base name of path without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Candidates builds the ordered search list, highest priority first.
//
// The order is name-major: every candidate for the origin's stem comes before
// every candidate for the shared name. Within a name, directories are walked in
// the given order and, within a directory, extensions in the given order.
// An empty exts uses DefaultExtensions.
func Candidates(origin string, dirs []string, shared string, exts []string) []Candidate {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}

	names := []string{Stem(origin), shared}
	out := make([]Candidate, 0, len(names)*len(dirs)*len(exts))

	for _, name := range names {
		for _, dir := range dirs {
			for _, ext := range exts {
				out = append(out, Candidate{Ext: ext, Name: name, Dir: dir})
			}
		}
	}

	return out
}

// Platform identifiers recognised by PreferencesDir. They match runtime.GOOS.
const (
	PlatformDarwin  = "darwin"
	PlatformWindows = "windows"
	PlatformLinux   = "linux"
)

// PreferencesDir returns the per-user preferences directory for platform.
// Unrecognised platforms use the linux layout. An unset HOME or APPDATA yields "".
//
//   - darwin: $HOME/Library/Preferences
//   - windows: %APPDATA%
//   - linux: $HOME/.<shared>
func PreferencesDir(platform string, getenv func(string) string, shared string) string {
	var base string
	var rest []string
	switch strings.ToLower(platform) {
	case PlatformDarwin:
		base, rest = getenv("HOME"), []string{"Library", "Preferences"}
	case PlatformWindows:
		base = getenv("APPDATA")
	default:
		base, rest = getenv("HOME"), []string{"." + shared}
	}
	if base == "" {
		return ""
	}
	return filepath.Join(append([]string{base}, rest...)...)
}
