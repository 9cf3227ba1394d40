// Package layout provides type-level head/tail layout calculations.
//
// For a compiled Go type it reports whether values of that type are dynamic
// and how many head bytes they occupy, without building a value.
//
// # Layout Rules
//
//   - Integers, addresses, fixed bytes: static, one word
//   - Bytes, strings, slices: dynamic, one offset word
//   - Structs and arrays: dynamic if any member is, otherwise the sum of
//     their members
//   - Records and interfaces: unknown until a value is built
//
// # Usage
//
//	info := calc.Calculate(compiled)
//	// info.Dynamic, info.HeadSize, info.Known
//
// This package is internal to the transcoder.
package layout
