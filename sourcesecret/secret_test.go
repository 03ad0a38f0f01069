package sourcesecret

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestParseLocator(t *testing.T) {
	tests := []struct {
		name    string
		locator string
		service string
		account string
		wantErr bool
	}{
		{name: "service and account", locator: "azure/token", service: "azure", account: "token"},
		{name: "bare account uses system", locator: "john", service: "system", account: "john"},
		{name: "only first slash splits", locator: "svc/a/b", service: "svc", account: "a/b"},
		{name: "empty", locator: "", wantErr: true},
		{name: "empty service", locator: "/token", wantErr: true},
		{name: "empty account", locator: "azure/", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, account, err := ParseLocator(tt.locator)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidLocator)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.service, service)
			assert.Equal(t, tt.account, account)
		})
	}
}

func TestKeyring_GetSet(t *testing.T) {
	keyring.MockInit()

	store := Keyring{}

	_, err := store.Get("system", "john")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set("system", "john", "setec astronomy"))

	secret, err := store.Get("system", "john")
	require.NoError(t, err)
	assert.Equal(t, "setec astronomy", secret)
}

func TestMemory(t *testing.T) {
	store := NewMemory(map[string]string{
		"azure/token": "abc",
		"john":        "setec astronomy",
		"/broken":     "ignored",
	})

	secret, err := store.Get("azure", "token")
	require.NoError(t, err)
	assert.Equal(t, "abc", secret)

	secret, err = store.Get(DefaultService, "john")
	require.NoError(t, err)
	assert.Equal(t, "setec astronomy", secret)

	_, err = store.Get("", "broken")
	assert.ErrorIs(t, err, ErrNotFound)

	var zero Memory
	_, err = zero.Get("jira", "token")
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, zero.Set("jira", "token", "xyz"))
	secret, err = zero.Get("jira", "token")
	require.NoError(t, err)
	assert.Equal(t, "xyz", secret)
}
