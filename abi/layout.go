package abi

// IsDynamic reports whether the node is referenced through an offset word
// by its parent. Lists and dynamic bytes always are; a tuple is dynamic iff
// one of its children is.
func (v *Value) IsDynamic() bool {
	switch v.kind {
	case KindList, KindDynamicBytes:
		return true
	case KindTuple:
		for _, c := range v.children {
			if c.IsDynamic() {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// HeadSize returns the bytes the node occupies in its parent's head region:
// one word for dynamic nodes and static leaves, the sum of the children for a
// static tuple.
func (v *Value) HeadSize() int {
	if v.IsDynamic() {
		return WordSize
	}
	if v.kind == KindTuple {
		return v.staticTupleSize()
	}
	return WordSize
}

// staticTupleSize sums the head sizes of children already known to be static.
func (v *Value) staticTupleSize() int {
	size := 0
	for _, c := range v.children {
		size += c.HeadSize()
	}
	return size
}

// Size returns the total number of bytes Encode appends for the node.
func (v *Value) Size() int {
	switch v.kind {
	case KindTuple:
		return v.regionSize()
	case KindList:
		return WordSize + v.regionSize()
	default:
		return len(v.data)
	}
}

// regionSize is the head region plus the tail region of a container.
func (v *Value) regionSize() int {
	size := 0
	for _, c := range v.children {
		if c.IsDynamic() {
			size += WordSize + c.Size()
		} else {
			size += c.Size()
		}
	}
	return size
}
