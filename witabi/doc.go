// Package witabi encodes Component Model values with the Ethereum ABI.
//
// A WIT type descriptor from go.bytecodealliance.org/wit selects the ABI
// shape, so values produced by or destined for a component can be turned
// into calldata without declaring a Go struct per function:
//
//	record transfer { to: list<u8>, amount: u64 }   →   (bytes,uint64)
//
// Type reports the ABI type a WIT type maps to; Build and BuildParams
// construct the value tree.
package witabi
