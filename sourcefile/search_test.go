package sourcefile

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStem(t *testing.T) {
	assert.Equal(t, "report", Stem("/opt/scripts/report.py"))
	assert.Equal(t, "report", Stem("report"))
	assert.Equal(t, "archive.tar", Stem("archive.tar.gz"))
}

func TestCandidates_Order(t *testing.T) {
	dirs := []string{"/scripts", "/shared", "/pref"}
	got := Candidates("/scripts/main.py", dirs, "cascade", nil)

	var paths []string
	for _, c := range got {
		paths = append(paths, c.Path())
	}

	want := []string{
		"/scripts/main.yml", "/scripts/main.yaml", "/scripts/main.json",
		"/shared/main.yml", "/shared/main.yaml", "/shared/main.json",
		"/pref/main.yml", "/pref/main.yaml", "/pref/main.json",
		"/scripts/cascade.yml", "/scripts/cascade.yaml", "/scripts/cascade.json",
		"/shared/cascade.yml", "/shared/cascade.yaml", "/shared/cascade.json",
		"/pref/cascade.yml", "/pref/cascade.yaml", "/pref/cascade.json",
	}
	for i := range want {
		want[i] = filepath.FromSlash(want[i])
	}

	assert.Equal(t, want, paths)
}

func TestCandidates_CustomExtensions(t *testing.T) {
	got := Candidates("tool", []string{"d"}, "shared", []string{".toml", ".json"})
	require.Len(t, got, 4)

	assert.Equal(t, Candidate{Ext: ".toml", Name: "tool", Dir: "d"}, got[0])
	assert.Equal(t, Candidate{Ext: ".json", Name: "tool", Dir: "d"}, got[1])
	assert.Equal(t, Candidate{Ext: ".toml", Name: "shared", Dir: "d"}, got[2])
	assert.Equal(t, Candidate{Ext: ".json", Name: "shared", Dir: "d"}, got[3])
}

func TestPreferencesDir(t *testing.T) {
	env := map[string]string{
		"HOME":    "/home/jane",
		"APPDATA": `C:\Users\jane\AppData\Roaming`,
	}
	getenv := func(name string) string { return env[name] }

	tests := []struct {
		platform string
		expected string
	}{
		{"darwin", filepath.Join("/home/jane", "Library", "Preferences")},
		{"Darwin", filepath.Join("/home/jane", "Library", "Preferences")},
		{"windows", filepath.Join(`C:\Users\jane\AppData\Roaming`)},
		{"linux", filepath.Join("/home/jane", ".cascade")},
		{"plan9", filepath.Join("/home/jane", ".cascade")},
		{"", filepath.Join("/home/jane", ".cascade")},
	}

	for _, tt := range tests {
		t.Run(tt.platform, func(t *testing.T) {
			assert.Equal(t, tt.expected, PreferencesDir(tt.platform, getenv, "cascade"))
		})
	}
}

func TestPreferencesDir_UnsetBase(t *testing.T) {
	getenv := func(string) string { return "" }

	for _, platform := range []string{"darwin", "windows", "linux"} {
		assert.Empty(t, PreferencesDir(platform, getenv, "cascade"), platform)
	}
}
