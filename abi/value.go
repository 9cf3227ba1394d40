package abi

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/wippyai/evm-abi/errors"
)

// Value is one node of a value tree.
//
// Leaf nodes (integer, fixed bytes, address, dynamic bytes) hold their
// word-encoded payload, materialized at construction. Container nodes (tuple,
// list) own their children exclusively. A Value is not modified after
// construction except through Append, which must not run concurrently with
// Encode on the same tree.
type Value struct {
	data     []byte
	children []*Value
	kind     Kind
}

// NewInteger returns an integer node. A nil v encodes as zero.
func NewInteger(v *uint256.Int) *Value {
	if v == nil {
		v = new(uint256.Int)
	}
	return &Value{kind: KindInteger, data: AppendInteger(make([]byte, 0, WordSize), v)}
}

// NewUint64 returns an integer node for v.
func NewUint64(v uint64) *Value {
	return &Value{kind: KindInteger, data: AppendUint64(make([]byte, 0, WordSize), v)}
}

// NewBool returns an integer node holding 1 for true and 0 for false.
func NewBool(b bool) *Value {
	if b {
		return NewUint64(1)
	}
	return NewUint64(0)
}

// NewFixedBytes returns a fixed bytes node. It fails when raw is longer than
// one word; the value is never truncated.
func NewFixedBytes(raw []byte) (*Value, error) {
	data, err := AppendFixedBytes(make([]byte, 0, WordSize), raw)
	if err != nil {
		return nil, err
	}
	return &Value{kind: KindFixedBytes, data: data}, nil
}

// NewAddress returns an address node.
func NewAddress(addr common.Address) *Value {
	return &Value{kind: KindAddress, data: AppendAddress(make([]byte, 0, WordSize), addr)}
}

// NewBytes returns a dynamic bytes node. raw is copied.
func NewBytes(raw []byte) *Value {
	return &Value{
		kind: KindDynamicBytes,
		data: AppendDynamicBytes(make([]byte, 0, dynamicBytesSize(len(raw))), raw),
	}
}

// NewString returns a dynamic bytes node holding the UTF-8 bytes of s.
func NewString(s string) *Value {
	return NewBytes([]byte(s))
}

// NewTuple returns a tuple node with the given children in order.
// Children must be non-nil and not shared with another tree.
func NewTuple(children ...*Value) *Value {
	return &Value{kind: KindTuple, children: cloneChildren(children)}
}

// NewList returns a list node. Elements are expected to be of one shape.
func NewList(elems ...*Value) *Value {
	return &Value{kind: KindList, children: cloneChildren(elems)}
}

func cloneChildren(children []*Value) []*Value {
	if len(children) == 0 {
		return nil
	}
	out := make([]*Value, len(children))
	copy(out, children)
	return out
}

// Append adds child to a tuple or list node, typically an argument list
// assembled one parameter at a time. Appending to a leaf node is rejected and
// leaves the node unchanged.
func (v *Value) Append(child *Value) error {
	if !v.kind.IsContainer() {
		return errors.New(errors.PhaseBuild, errors.KindUnsupported).
			Detail("cannot append a child to a %s node", v.kind).
			Build()
	}
	if child == nil {
		return errors.InvalidInput(errors.PhaseBuild, "cannot append a nil child")
	}
	v.children = append(v.children, child)
	return nil
}

// Kind returns the node kind.
func (v *Value) Kind() Kind {
	return v.kind
}

// Len returns the number of children. Leaves have none.
func (v *Value) Len() int {
	return len(v.children)
}

// Child returns the i-th child, or nil when i is out of range.
func (v *Value) Child(i int) *Value {
	if i < 0 || i >= len(v.children) {
		return nil
	}
	return v.children[i]
}
