// Command cascade inspects a program's layered settings and stores the secrets
// its settings files ask for.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/Azhovan/cascade"
	"github.com/Azhovan/cascade/internal/logging"
	"github.com/Azhovan/cascade/sourcesecret"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// secretsKey is the settings mapping of key → locator imported on start.
const secretsKey = "secrets"

// env is what run needs from the outside world.
type env struct {
	stdout    io.Writer
	process   cascade.Process
	store     cascade.SecretStore
	newLogger func(verbose bool) (*zap.Logger, error)
	stdinFd   int
}

func main() {
	e := env{
		stdout:    os.Stdout,
		process:   cascade.OSProcess(),
		store:     sourcesecret.Keyring{},
		newLogger: logging.New,
		stdinFd:   int(os.Stdin.Fd()),
	}
	if err := run(os.Args[1:], e); err != nil {
		fmt.Fprintf(os.Stderr, "cascade: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, e env) error {
	app := kingpin.New("cascade", "Inspect layered settings and store the secrets they reference")
	origin := app.Flag("origin", "Program path whose settings are resolved (default: this executable)").String()
	dirs := app.Flag("dir", "Extra search directory, highest priority first (repeatable)").Short('d').Strings()
	shared := app.Flag("shared", "Base name of shared settings files").Default(cascade.DefaultSharedName).String()
	verbose := app.Flag("verbose", "Log settings resolution to stderr").Short('v').Bool()

	getCmd := app.Command("get", "Print the resolved value of each key")
	getKeys := getCmd.Arg("key", "Dotted settings key").Required().Strings()

	secretsCmd := app.Command("secrets", "Prompt for and store secrets listed under the secrets mapping")

	pathsCmd := app.Command("paths", "List searched settings files, marking the ones that exist")

	dumpCmd := app.Command("dump", "Print the merged settings files with secrets redacted")
	dumpJSON := dumpCmd.Flag("json", "Print nested JSON").Bool()
	dumpSources := dumpCmd.Flag("sources", "Annotate each key with the file it came from").Bool()

	command, err := app.Parse(args)
	if err != nil {
		return err
	}

	logger, err := e.newLogger(*verbose)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	path := *origin
	if path == "" {
		if path, err = os.Executable(); err != nil {
			return fmt.Errorf("locate executable: %w", err)
		}
	}

	s, err := cascade.New(path,
		cascade.WithDirs(*dirs...),
		cascade.WithSharedName(*shared),
		cascade.WithProcess(e.process),
		cascade.WithSecretStore(e.store),
		cascade.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	s.Secret(secretsKey)

	switch command {
	case getCmd.FullCommand():
		return get(e.stdout, s, *getKeys)
	case secretsCmd.FullCommand():
		return importSecrets(e, s)
	case pathsCmd.FullCommand():
		return paths(e.stdout, s)
	case dumpCmd.FullCommand():
		var opts []cascade.DumpOption
		if *dumpJSON {
			opts = append(opts, cascade.AsJSON())
		}
		if *dumpSources {
			opts = append(opts, cascade.WithSources())
		}
		return cascade.DumpEffective(e.stdout, s, opts...)
	}
	return fmt.Errorf("unknown command %q", command)
}

// get prints one line per key. Missing keys print an empty line.
func get(w io.Writer, s *cascade.Settings, keys []string) error {
	for _, key := range keys {
		v, err := s.Require(key)
		if err != nil && !errors.Is(err, cascade.ErrKeyNotFound) {
			return err
		}
		if _, err := fmt.Fprintln(w, v.String()); err != nil {
			return err
		}
	}
	return nil
}

// importSecrets walks the secret bindings in key order and prompts for every
// secret no source can answer yet. An empty answer skips the key.
func importSecrets(e env, s *cascade.Settings) error {
	bindings := s.Bindings(cascade.SourceSecret)
	keys := make([]string, 0, len(bindings))
	for key := range bindings {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		locator := bindings[key]
		fmt.Fprintf(e.stdout, "secret: %s  key: %s\n", key, locator)

		service, account, err := sourcesecret.ParseLocator(locator)
		if err != nil {
			return fmt.Errorf("secret binding for %q: %w", key, err)
		}

		if s.Has(key) {
			fmt.Fprintln(e.stdout, "\tValue set")
			continue
		}

		fmt.Fprint(e.stdout, "\tValue: ")
		value, err := readPassword(e.stdinFd)
		fmt.Fprintln(e.stdout)
		if err != nil {
			return fmt.Errorf("read secret for %q: %w", key, err)
		}

		secret := strings.TrimSpace(string(value))
		if secret == "" {
			continue
		}
		if err := e.store.Set(service, account, secret); err != nil {
			return err
		}
	}
	return nil
}

// paths lists every searched file; "*" marks the ones present on disk.
func paths(w io.Writer, s *cascade.Settings) error {
	for _, path := range s.SearchPaths() {
		mark := " "
		if _, err := os.Stat(path); err == nil {
			mark = "*"
		}
		if _, err := fmt.Fprintf(w, "%s %s\n", mark, path); err != nil {
			return err
		}
	}
	return nil
}
