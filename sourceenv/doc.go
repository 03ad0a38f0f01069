// Package sourceenv reads environment variables the way settings lookups need them.
//
// Names always match case-insensitively, both for explicit bindings and for
// ${NAME} placeholders inside string values.
//
// Example:
//
//	sourceenv.Expand("${home}/reports", os.Environ()) // "/home/jane/reports"
package sourceenv
