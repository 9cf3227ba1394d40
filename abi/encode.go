package abi

import "slices"

// Encode appends the ABI encoding of v to buf and returns the extended
// buffer. Existing contents of buf (a function selector, for instance) are
// kept; offsets are relative to each container, never to buf.
func (v *Value) Encode(buf []byte) []byte {
	buf = slices.Grow(buf, v.Size())
	return v.encode(buf)
}

// Bytes returns the encoding of v in a new buffer.
func (v *Value) Bytes() []byte {
	return v.Encode(nil)
}

func (v *Value) encode(buf []byte) []byte {
	switch v.kind {
	case KindInteger, KindFixedBytes, KindAddress, KindDynamicBytes:
		return append(buf, v.data...)
	case KindList:
		buf = AppendUint64(buf, uint64(len(v.children)))
	}

	headSize := 0
	for _, c := range v.children {
		headSize += c.HeadSize()
	}

	tail := getTail()
	defer putTail(tail)

	for _, c := range v.children {
		buf = c.encodeHead(buf, headSize+len(*tail))
		*tail = c.encodeTail(*tail)
	}
	return append(buf, *tail...)
}

// encodeHead writes an offset word for dynamic nodes and inlines static ones.
func (v *Value) encodeHead(buf []byte, offset int) []byte {
	if v.IsDynamic() {
		return AppendUint64(buf, uint64(offset))
	}
	return v.encode(buf)
}

// encodeTail writes dynamic nodes; static nodes were inlined in the head.
func (v *Value) encodeTail(buf []byte) []byte {
	if v.IsDynamic() {
		return v.encode(buf)
	}
	return buf
}
