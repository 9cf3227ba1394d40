// Package evmabi encodes Go values into the head/tail layout of the Ethereum
// contract ABI.
//
// # Architecture Overview
//
// The module is organized into several packages with distinct responsibilities:
//
//	evmabi/              Module overview
//	├── abi/             Value tree, 32-byte word encoder and head/tail encoding
//	├── transcoder/      Reflect-driven construction from Go values, cached per type
//	├── abitype/         ABI type strings and schema-directed construction
//	├── witabi/          Construction from Component Model WIT types
//	├── guest/           Copies encodings into wazero guest linear memory
//	├── errors/          Structured error types for debugging
//	└── cmd/abienc/      Command line and interactive encoder
//
// # Quick Start
//
// Encode Go values as one argument list:
//
//	type Transfer struct {
//	    To     common.Address
//	    Amount *big.Int
//	}
//
//	data, err := transcoder.Encode(Transfer{To: to, Amount: amount})
//
// Build a value tree by hand and prepend a selector:
//
//	args := abi.NewTuple(abi.NewAddress(to), abi.NewInteger(amount))
//	data := args.Encode(selector)
//
// Encode from a type string and loosely typed data:
//
//	_, args, err := abitype.ParseSignature("transfer(address to, uint256 amount)")
//	v, err := abitype.Build(args, map[string]any{"to": "0x...", "amount": "1000"})
//	data := v.Bytes()
//
// # Layout
//
// Static values are written in place. Dynamic values (bytes, string, lists
// and tuples holding any of these) write a 32-byte offset in the head and
// their content in the tail. Offsets count from the start of the enclosing
// tuple or list body.
//
// # Error Handling
//
// All packages return *errors.Error with phase and kind:
//
//	v, err := transcoder.Build(value)
//	if err != nil {
//	    var abiErr *errors.Error
//	    if errors.As(err, &abiErr) {
//	        fmt.Printf("Phase: %s, Kind: %s, Path: %v\n",
//	            abiErr.Phase, abiErr.Kind, abiErr.Path)
//	    }
//	}
package evmabi
