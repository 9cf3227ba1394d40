package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindString(t *testing.T) {
	assert.Equal(t, "fixed_bytes", KindFixedBytes.String())
	assert.Equal(t, "record", KindRecord.String())
	assert.Equal(t, "unknown", Kind(99).String())
}

func TestKindPredicates(t *testing.T) {
	for _, k := range []Kind{KindBool, KindUint, KindInt, KindUint256, KindBigInt} {
		assert.True(t, k.IsInteger(), k.String())
	}
	for _, k := range []Kind{KindAddress, KindFixedBytes, KindBytes, KindString, KindRecord, KindStruct, KindArray, KindSlice, KindPointer, KindInterface, KindValue} {
		assert.False(t, k.IsInteger(), k.String())
	}
}

func TestCompiledTypeIsDeferred(t *testing.T) {
	t.Run("leaf", func(t *testing.T) {
		assert.False(t, (&CompiledType{Kind: KindUint}).IsDeferred())
	})

	t.Run("record", func(t *testing.T) {
		assert.True(t, (&CompiledType{Kind: KindRecord}).IsDeferred())
	})

	t.Run("interface", func(t *testing.T) {
		assert.True(t, (&CompiledType{Kind: KindInterface}).IsDeferred())
	})

	t.Run("pointer_to_struct", func(t *testing.T) {
		ct := &CompiledType{Kind: KindPointer, Elem: &CompiledType{Kind: KindStruct}}
		assert.False(t, ct.IsDeferred())
	})

	t.Run("pointer_to_record", func(t *testing.T) {
		ct := &CompiledType{Kind: KindPointer, Elem: &CompiledType{Kind: KindRecord}}
		assert.True(t, ct.IsDeferred())
	})

	t.Run("self_referencing_pointer", func(t *testing.T) {
		ct := &CompiledType{Kind: KindPointer}
		ct.Elem = ct
		assert.True(t, ct.IsDeferred())
	})

	t.Run("nil_pointer_target", func(t *testing.T) {
		assert.True(t, (&CompiledType{Kind: KindPointer}).IsDeferred())
	})
}
