// Package sourcefile loads settings files and builds the ordered list of places to look for them.
//
// Format is inferred from the extension (.yml, .yaml, .json, .toml). A missing
// file loads as an empty mapping; a file that exists but cannot be parsed is an error.
//
// Example:
//
//	for _, c := range sourcefile.Candidates(origin, dirs, "cascade", nil) {
//	    tree, err := sourcefile.Load(c.Path())
//	    ...
//	}
package sourcefile
