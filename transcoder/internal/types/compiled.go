package types

import (
	"reflect"
)

// CompiledType is the construction rule for one Go type, resolved once.
type CompiledType struct {
	GoType reflect.Type
	// Elem is the element of arrays and slices and the target of pointers.
	Elem   *CompiledType
	Fields []Field
	// Len is the array length, or the width of fixed bytes.
	Len  int
	Kind Kind
	// RecordPtr is set when only the pointer type implements the record
	// capability.
	RecordPtr bool
}

type Field struct {
	Type  *CompiledType
	Name  string
	Index int
}

// IsDeferred returns true when the node shape is only known per value:
// records list their own children and interfaces resolve at build time.
// Pointer chains that loop back on themselves are deferred too.
func (ct *CompiledType) IsDeferred() bool {
	seen := make(map[*CompiledType]bool)
	for cur := ct; cur != nil; cur = cur.Elem {
		switch cur.Kind {
		case KindRecord, KindInterface, KindValue:
			return true
		case KindPointer:
			if seen[cur] {
				return true
			}
			seen[cur] = true
		default:
			return false
		}
	}
	return true
}
