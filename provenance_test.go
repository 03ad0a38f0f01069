package cascade

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Azhovan/cascade/sourcesecret"
)

func TestProvenance_OverrideAndSecret(t *testing.T) {
	store := sourcesecret.NewMemory(map[string]string{"app/db": "pw"})
	s, err := New(filepath.Join(t.TempDir(), "app"),
		WithProcess(testProcess(t.TempDir())),
		WithSecretStore(store),
		WithOverrides(map[string]any{"mode": "test"}),
	)
	require.NoError(t, err)
	s.Secret("db.password", "app/db").Secret("api.token", "app/token")

	prov, ok := s.Explain("mode")
	require.True(t, ok)
	assert.Equal(t, Provenance{Key: "mode", Source: SourceOverride, Name: "mode"}, prov)

	prov, ok = s.Explain("db.password")
	require.True(t, ok)
	assert.Equal(t, Provenance{Key: "db.password", Source: SourceSecret, Name: "app/db"}, prov)

	_, ok = s.Explain("api.token")
	assert.False(t, ok, "unstored secret with no file value")
}

func TestProvenance_InvalidLocatorPanics(t *testing.T) {
	s, err := New(filepath.Join(t.TempDir(), "app"), WithProcess(testProcess(t.TempDir())))
	require.NoError(t, err)
	s.Secret("token", "/token")

	assert.Panics(t, func() { s.Explain("token") })
}
