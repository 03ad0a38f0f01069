package cascade

// Source identifies where a resolved value came from.
type Source string

// Sources in precedence order, highest first.
const (
	SourceOverride Source = "override"
	SourceCLI      Source = "cli"
	SourceEnv      Source = "env"
	SourceSecret   Source = "secret"
	SourceFile     Source = "file"
)

// Process exposes the parts of the running process the engine reads.
// Inject a StaticProcess in tests instead of touching os.Args or os.Environ.
type Process interface {
	// Args returns the command line, program name first (like os.Args).
	Args() []string

	// Environ returns "KEY=value" entries (like os.Environ).
	Environ() []string

	// Platform returns an OS identifier such as "darwin", "windows", or "linux".
	Platform() string

	// MkdirAll creates dir and any missing parents. It must be idempotent.
	MkdirAll(dir string) error
}

// SecretStore is a credential store addressed by (service, account).
type SecretStore interface {
	// Get returns the stored secret. A missing secret returns an error matching ErrSecretNotFound.
	Get(service, account string) (string, error)

	// Set stores a secret.
	Set(service, account, value string) error
}
