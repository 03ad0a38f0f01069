package cascade

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Azhovan/cascade/sourcesecret"
)

var (
	// ErrKeyNotFound is matched by errors for keys no source could answer.
	ErrKeyNotFound = errors.New("cascade: key not found")

	// ErrInvalidLocator is returned for secret bindings that cannot address a secret.
	ErrInvalidLocator = sourcesecret.ErrInvalidLocator

	// ErrSecretNotFound is returned by a SecretStore when nothing is stored.
	ErrSecretNotFound = sourcesecret.ErrNotFound
)

// KeyError reports a key that was required but absent from every source.
type KeyError struct {
	Key      string
	Searched []string // Settings files that were searched, highest priority first
}

// Error formats the missing key together with the files that were searched.
func (e *KeyError) Error() string {
	if len(e.Searched) == 0 {
		return fmt.Sprintf("cascade: key %q not found", e.Key)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "cascade: key %q not found; searched %d files:\n", e.Key, len(e.Searched))
	for _, path := range e.Searched {
		fmt.Fprintf(&b, "  - %s\n", path)
	}
	return strings.TrimRight(b.String(), "\n")
}

// Is makes errors.Is(err, ErrKeyNotFound) match.
func (e *KeyError) Is(target error) bool {
	return target == ErrKeyNotFound
}
