package abitype

import (
	"strconv"
	"strings"
)

// Kind is the family of a parsed ABI type.
type Kind uint8

const (
	KindUint Kind = iota
	KindInt
	KindBool
	KindAddress
	KindFixedBytes
	KindBytes
	KindString
	KindSlice
	KindArray
	KindTuple
)

var kindNames = [...]string{
	KindUint:       "uint",
	KindInt:        "int",
	KindBool:       "bool",
	KindAddress:    "address",
	KindFixedBytes: "fixed_bytes",
	KindBytes:      "bytes",
	KindString:     "string",
	KindSlice:      "slice",
	KindArray:      "array",
	KindTuple:      "tuple",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Type is a parsed ABI type.
type Type struct {
	// Elem is the element type of T[] and T[k].
	Elem *Type
	// Elems are the components of a tuple, with optional Names.
	Elems []*Type
	Names []string
	Kind  Kind
	// Size is the bit width of integers, the width of bytesN and the length
	// of T[k].
	Size int
}

// String returns the canonical type name, e.g. (uint256,bytes10)[].
func (t *Type) String() string {
	var sb strings.Builder
	t.writeTo(&sb)
	return sb.String()
}

func (t *Type) writeTo(sb *strings.Builder) {
	switch t.Kind {
	case KindUint:
		sb.WriteString("uint")
		sb.WriteString(strconv.Itoa(t.Size))
	case KindInt:
		sb.WriteString("int")
		sb.WriteString(strconv.Itoa(t.Size))
	case KindFixedBytes:
		sb.WriteString("bytes")
		sb.WriteString(strconv.Itoa(t.Size))
	case KindSlice:
		t.Elem.writeTo(sb)
		sb.WriteString("[]")
	case KindArray:
		t.Elem.writeTo(sb)
		sb.WriteByte('[')
		sb.WriteString(strconv.Itoa(t.Size))
		sb.WriteByte(']')
	case KindTuple:
		sb.WriteByte('(')
		for i, e := range t.Elems {
			if i > 0 {
				sb.WriteByte(',')
			}
			e.writeTo(sb)
		}
		sb.WriteByte(')')
	default:
		sb.WriteString(t.Kind.String())
	}
}

// IsDynamic mirrors abi.Value.IsDynamic at the type level.
func (t *Type) IsDynamic() bool {
	switch t.Kind {
	case KindBytes, KindString, KindSlice:
		return true
	case KindArray:
		return t.Size > 0 && t.Elem.IsDynamic()
	case KindTuple:
		for _, e := range t.Elems {
			if e.IsDynamic() {
				return true
			}
		}
	}
	return false
}

// HeadSize is the number of bytes values of t occupy in a parent's head.
func (t *Type) HeadSize() int {
	if t.IsDynamic() {
		return 32
	}
	switch t.Kind {
	case KindArray:
		return t.Size * t.Elem.HeadSize()
	case KindTuple:
		size := 0
		for _, e := range t.Elems {
			size += e.HeadSize()
		}
		return size
	default:
		return 32
	}
}
