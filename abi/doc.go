// Package abi implements the Ethereum contract ABI head/tail encoding.
//
// Values are described by an immutable tree of *Value nodes and serialized
// by a single recursive pass:
//
//	┌──────────────────────────────────────────────────────────┐
//	│ Go value ──► [transcoder] ──► *abi.Value ──► Encode(buf) │
//	└──────────────────────────────────────────────────────────┘
//
// # Node Kinds
//
//	Kind            Payload                          Static
//	─────────────────────────────────────────────────────────────
//	integer         32-byte word, left padded        yes
//	fixed_bytes     32-byte word, right padded       yes
//	address         32-byte word, left padded        yes
//	dynamic_bytes   length word + padded data        no
//	list            count word + head + tail         no
//	tuple           head + tail                      iff a child is dynamic
//
// # Head/Tail Layout
//
// A container writes one head entry per child in declaration order: static
// children are inlined, dynamic children are replaced by an offset word.
// The dynamic children follow in the tail, in the same order. Offsets count
// from the start of the container's own region, after a list's count word:
//
//	(uint64, uint32[]) = (0x123, [0x456, 0x789])
//
//	0x00  0000…0123   a
//	0x20  0000…0040   offset of b
//	0x40  0000…0002   len(b)
//	0x60  0000…0456   b[0]
//	0x80  0000…0789   b[1]
//
// # Thread Safety
//
// Encode only reads the tree, so one tree may be encoded from several
// goroutines at once. Append mutates and must not race with Encode.
package abi
