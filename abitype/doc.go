// Package abitype parses canonical ABI type strings and builds value trees
// from loosely typed data against them.
//
// Types follow the Solidity ABI grammar:
//
//	uint<M> int<M>   8 <= M <= 256, M % 8 == 0 (uint, int alias M = 256)
//	bool address
//	bytes<M>         1 <= M <= 32
//	bytes string
//	T[] T[k]
//	(T1,T2,...)      optionally prefixed by "tuple" and with component names
//	(T1,T2,...)[]    a tuple takes at most one trailing []
//
// Names and whitespace are stripped before the canonical list is handed to
// go-ethereum's accounts/abi selector parser.
//
// Values are typically the output of a JSON or YAML decoder:
//
//	args, _ := abitype.ParseArgs("address to, uint256 amount")
//	v, err := abitype.Build(args, []any{"0x00000000000000000000000000000000000000aa", "1000"})
//	calldata := v.Encode(selector)
package abitype
