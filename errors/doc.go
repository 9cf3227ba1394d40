// Package errors provides structured error types for the evm-abi module.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: field path, Go/ABI type names, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseBuild, errors.KindTypeMismatch).
//		Path("order", "amount").
//		GoType("string").
//		ABIType("uint256").
//		Detail("cannot convert string to integer").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.TypeMismatch(errors.PhaseCompile, path, "float64", "uint256")
//	err := errors.FixedBytesTooWide(errors.PhaseBuild, path, 40)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
