package types

// Kind is the construction rule selected for a Go type.
type Kind uint8

const (
	KindBool Kind = iota
	KindUint
	KindInt
	KindUint256
	KindBigInt
	KindAddress
	KindFixedBytes
	KindBytes
	KindString
	KindRecord
	KindStruct
	KindArray
	KindSlice
	KindPointer
	KindInterface
	KindValue
)

var kindNames = [...]string{
	KindBool:       "bool",
	KindUint:       "uint",
	KindInt:        "int",
	KindUint256:    "uint256",
	KindBigInt:     "big_int",
	KindAddress:    "address",
	KindFixedBytes: "fixed_bytes",
	KindBytes:      "bytes",
	KindString:     "string",
	KindRecord:     "record",
	KindStruct:     "struct",
	KindArray:      "array",
	KindSlice:      "slice",
	KindPointer:    "pointer",
	KindInterface:  "interface",
	KindValue:      "value",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsInteger reports whether the rule produces an integer node.
func (k Kind) IsInteger() bool {
	return k <= KindBigInt
}
