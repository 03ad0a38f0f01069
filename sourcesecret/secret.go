package sourcesecret

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/zalando/go-keyring"
)

// DefaultService is used for locators that carry no "service/" part.
const DefaultService = "system"

var (
	// ErrNotFound is returned by Get when no secret is stored for (service, account).
	ErrNotFound = errors.New("cascade: secret not found")

	// ErrInvalidLocator is returned for locators that cannot address a secret.
	ErrInvalidLocator = errors.New("cascade: invalid secret locator")
)

// ParseLocator splits "service/account" into its parts.
// A locator without a slash addresses DefaultService.
// Empty locators and locators with an empty service or account are invalid.
func ParseLocator(locator string) (service, account string, err error) {
	service, account, ok := strings.Cut(locator, "/")
	if !ok {
		service, account = DefaultService, locator
	}
	if service == "" || account == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidLocator, locator)
	}
	return service, account, nil
}

// Keyring is the OS credential store (macOS Keychain, Windows Credential
// Manager, Secret Service on Linux).
type Keyring struct{}

// Get returns the stored secret or an error wrapping ErrNotFound.
func (Keyring) Get(service, account string) (string, error) {
	secret, err := keyring.Get(service, account)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", fmt.Errorf("%w: %s/%s", ErrNotFound, service, account)
		}
		return "", fmt.Errorf("keyring get %s/%s: %w", service, account, err)
	}
	return secret, nil
}

// Set stores a secret.
func (Keyring) Set(service, account, value string) error {
	if err := keyring.Set(service, account, value); err != nil {
		return fmt.Errorf("keyring set %s/%s: %w", service, account, err)
	}
	return nil
}

// Memory is an in-process store, useful in tests and for embedding.
// The zero value is ready to use. Safe for concurrent use.
type Memory struct {
	mu      sync.RWMutex
	secrets map[string]string
}

// NewMemory returns a Memory store seeded with "service/account" → secret entries.
func NewMemory(seed map[string]string) *Memory {
	m := &Memory{}
	for locator, value := range seed {
		service, account, err := ParseLocator(locator)
		if err != nil {
			continue
		}
		_ = m.Set(service, account, value)
	}
	return m
}

// Get returns the stored secret or an error wrapping ErrNotFound.
func (m *Memory) Get(service, account string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	secret, ok := m.secrets[service+"/"+account]
	if !ok {
		return "", fmt.Errorf("%w: %s/%s", ErrNotFound, service, account)
	}
	return secret, nil
}

// Set stores a secret.
func (m *Memory) Set(service, account, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.secrets == nil {
		m.secrets = make(map[string]string)
	}
	m.secrets[service+"/"+account] = value
	return nil
}
