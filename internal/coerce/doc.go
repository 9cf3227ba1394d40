// Package coerce converts loosely typed input (JSON/YAML decoded values,
// strings, Go numbers) into the Go types the ABI value constructors take.
//
// All functions report success with a boolean instead of an error; callers
// attach path and type context when building their own structured error.
package coerce
