// Package transcoder builds ABI value trees from ordinary Go values.
//
// Each Go type is resolved once to a construction rule, cached by the
// Compiler, and every value of that type is built with the same rule:
//
//	┌──────────────────────────────────────────────────────────────┐
//	│ Go value ──► Compiler ──► CompiledType ──► Encoder.Build     │
//	│                                   └──► *abi.Value ──► bytes  │
//	└──────────────────────────────────────────────────────────────┘
//
// # Rules
//
// The first matching rule wins:
//
//	Go type                                  Node
//	────────────────────────────────────────────────────────────
//	implements Record                        tuple of ABIFields()
//	*abi.Value                               passed through
//	bool, uintN, intN (>= 0)                 integer
//	uint256.Int, big.Int (0 <= v < 2^256)    integer
//	common.Address                           address
//	[N]byte, N <= 32                         fixed bytes
//	[]byte, string                           dynamic bytes
//	struct                                   tuple of exported fields
//	[N]T                                     tuple
//	[]T                                      list
//	*T                                       rule of T, nil is an error
//	interface                                rule of the dynamic type
//
// Struct fields are encoded in declaration order. The abi struct tag renames
// a field in error paths, and abi:"-" skips it.
//
// # Usage
//
//	enc := transcoder.NewEncoder()
//	calldata, err := enc.Encode(selector, recipient, amount)
//
// # Thread Safety
//
// Compiler and Encoder are safe for concurrent use. Share one Compiler
// between encoders to share the rule cache.
package transcoder
