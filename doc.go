// Package cascade resolves settings from layered sources with a fixed precedence.
//
// Quick Start:
//
//	s, err := cascade.New(os.Args[0], cascade.WithDirs("/etc/myapp"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	s.CLI("port", "--port").Env("smtp.password", "SMTP_PASSWORD").Secret("api.token", "myapp/token")
//
//	port := s.Get("port", 8080)
//
// Precedence, highest first: WithOverrides values, bound command-line switches,
// bound environment variables, bound secret store entries, settings files.
//
// Settings files (.yml, .yaml, .json) named after the program, then files named
// "cascade", are searched in the program's directory, the WithDirs directories,
// and a per-user preferences directory. Files are deep-merged; the closest file
// wins each leaf and farther files fill the gaps. String values may reference
// environment variables as ${NAME}.
//
// See example_test.go for detailed usage.
package cascade
