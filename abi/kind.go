package abi

// Kind discriminates the node types of a value tree.
type Kind uint8

const (
	KindInteger Kind = iota
	KindFixedBytes
	KindAddress
	KindDynamicBytes
	KindList
	KindTuple
)

var kindNames = [...]string{
	KindInteger:      "integer",
	KindFixedBytes:   "fixed_bytes",
	KindAddress:      "address",
	KindDynamicBytes: "dynamic_bytes",
	KindList:         "list",
	KindTuple:        "tuple",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsLeaf reports whether nodes of this kind carry a materialized payload
// instead of children.
func (k Kind) IsLeaf() bool {
	return k <= KindDynamicBytes
}

// IsContainer reports whether nodes of this kind accept children.
func (k Kind) IsContainer() bool {
	return k == KindList || k == KindTuple
}
