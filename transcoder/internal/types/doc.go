// Package types defines the compiled type structures for value construction.
//
// CompiledType holds the construction rule selected for a Go type together
// with the field and element descriptors it needs. By compiling type metadata
// once, the transcoder avoids repeated reflection lookups while building
// value trees.
//
// # Key Types
//
//   - CompiledType: Cached rule with child descriptors
//   - Kind: Rule discriminator (integer, bytes, record, slice, etc.)
//
// This package is internal to the transcoder.
package types
