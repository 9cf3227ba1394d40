package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:   PhaseBuild,
				Kind:    KindTypeMismatch,
				Path:    []string{"order", "maker", "wallet"},
				GoType:  "string",
				ABIType: "address",
				Detail:  "cannot convert",
			},
			contains: []string{"[build]", "type_mismatch", "order.maker.wallet", "Go type string", "ABI type address", " - cannot convert"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseStore,
				Kind:  KindOutOfBounds,
			},
			contains: []string{"[store]", "out_of_bounds"},
		},
		{
			name: "abi type only",
			err: &Error{
				Phase:   PhaseParse,
				Kind:    KindInvalidData,
				ABIType: "uint7",
			},
			contains: []string{"[parse]", "ABI type uint7"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseStore,
				Kind:   KindAllocation,
				Detail: "memory full",
				Cause:  stderrors.New("underlying error"),
			},
			contains: []string{"[store]", "allocation: memory full", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				assert.Contains(t, msg, s)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := stderrors.New("root cause")
	err := &Error{
		Phase: PhaseBuild,
		Kind:  KindInvalidData,
		Cause: cause,
	}

	require.ErrorIs(t, err.Unwrap(), cause)
	require.ErrorIs(t, stderrors.Unwrap(err), cause)
	require.ErrorIs(t, err, cause)
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseBuild,
		Kind:  KindTypeMismatch,
		Path:  []string{"foo"},
	}

	assert.True(t, err.Is(&Error{Phase: PhaseBuild, Kind: KindTypeMismatch}))
	assert.False(t, err.Is(&Error{Phase: PhaseCompile, Kind: KindTypeMismatch}), "different phase")
	assert.False(t, err.Is(&Error{Phase: PhaseBuild, Kind: KindOutOfBounds}), "different kind")
	assert.False(t, err.Is(stderrors.New("plain")))

	var target *Error
	require.ErrorAs(t, error(err), &target)
	assert.Equal(t, []string{"foo"}, target.Path)
}

func TestBuilder(t *testing.T) {
	cause := stderrors.New("root")
	err := New(PhaseBuild, KindTypeMismatch).
		Path("order", "amount").
		GoType("string").
		ABIType("uint256").
		Value(42).
		Cause(cause).
		Detail("expected %s, got %s", "integer", "text").
		Build()

	assert.Equal(t, PhaseBuild, err.Phase)
	assert.Equal(t, KindTypeMismatch, err.Kind)
	assert.Equal(t, []string{"order", "amount"}, err.Path)
	assert.Equal(t, "string", err.GoType)
	assert.Equal(t, "uint256", err.ABIType)
	assert.Equal(t, 42, err.Value)
	assert.ErrorIs(t, err.Cause, cause)
	assert.Equal(t, "expected integer, got text", err.Detail)

	plain := New(PhaseParse, KindInvalidData).Detail("literal detail").Build()
	assert.Equal(t, "literal detail", plain.Detail)
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("TypeMismatch", func(t *testing.T) {
		err := TypeMismatch(PhaseCompile, []string{"field"}, "float64", "uint256")
		assert.Equal(t, KindTypeMismatch, err.Kind)
		assert.Equal(t, "float64", err.GoType)
		assert.Equal(t, "uint256", err.ABIType)
	})

	t.Run("Unsupported", func(t *testing.T) {
		err := Unsupported(PhaseCompile, []string{"m"}, "map types")
		assert.Equal(t, KindUnsupported, err.Kind)
		assert.Equal(t, "map types", err.Detail)
	})

	t.Run("Overflow", func(t *testing.T) {
		err := Overflow(PhaseBuild, []string{"val"}, -1, "uint256")
		assert.Equal(t, KindOverflow, err.Kind)
		assert.Equal(t, -1, err.Value)
		assert.Contains(t, err.Error(), "value -1 overflows uint256")
	})

	t.Run("FixedBytesTooWide", func(t *testing.T) {
		err := FixedBytesTooWide(PhaseCompile, nil, 40)
		assert.Equal(t, KindOverflow, err.Kind)
		assert.Equal(t, "bytes40", err.ABIType)
		assert.Equal(t, 40, err.Value)
	})

	t.Run("NilPointer", func(t *testing.T) {
		err := NilPointer(PhaseBuild, []string{"ptr"}, "*Order")
		assert.Equal(t, KindNilPointer, err.Kind)
		assert.Equal(t, "*Order", err.GoType)
	})

	t.Run("OutOfBounds", func(t *testing.T) {
		err := OutOfBounds(PhaseStore, []string{"mem"}, 10, 5)
		assert.Equal(t, KindOutOfBounds, err.Kind)
		assert.Equal(t, 10, err.Value)
	})

	t.Run("FieldMissing", func(t *testing.T) {
		err := FieldMissing(PhaseBuild, []string{"record"}, "name")
		assert.Equal(t, KindFieldMissing, err.Kind)
		assert.Contains(t, err.Detail, `"name"`)
	})

	t.Run("TooDeep", func(t *testing.T) {
		err := TooDeep(PhaseBuild, []string{"a", "b"}, 64)
		assert.Equal(t, KindTooDeep, err.Kind)
		assert.Contains(t, err.Error(), "nesting depth exceeds 64")
	})

	t.Run("AllocationFailed", func(t *testing.T) {
		err := AllocationFailed(PhaseStore, 1024, 8)
		assert.Equal(t, KindAllocation, err.Kind)
		assert.Contains(t, err.Detail, "1024")
	})

	t.Run("InvalidData", func(t *testing.T) {
		err := InvalidData(PhaseParse, []string{"arg"}, "bad list")
		assert.Equal(t, KindInvalidData, err.Kind)
		assert.Equal(t, []string{"arg"}, err.Path)
		assert.Contains(t, err.Error(), "bad list")
	})

	t.Run("InvalidInput", func(t *testing.T) {
		err := InvalidInput(PhaseBuild, "append on leaf")
		assert.Equal(t, KindInvalidInput, err.Kind)
	})

	t.Run("Wrap", func(t *testing.T) {
		cause := stderrors.New("boom")
		err := Wrap(PhaseStore, KindAllocation, cause, "cabi_realloc")
		assert.ErrorIs(t, err, cause)
	})

	t.Run("ParseFailed", func(t *testing.T) {
		err := ParseFailed("type string", stderrors.New("unexpected ')'"))
		assert.Equal(t, PhaseParse, err.Phase)
		assert.Contains(t, err.Error(), "parse type string")
	})
}

func TestPathHelpers(t *testing.T) {
	base := make([]string, 1, 4)
	base[0] = "order"

	a := AppendPath(base, "maker")
	b := AppendPath(base, "taker")
	assert.Equal(t, []string{"order", "maker"}, a)
	assert.Equal(t, []string{"order", "taker"}, b, "paths must not share a backing array")

	assert.Equal(t, []string{"order", "[3]"}, IndexPath(base, 3))
	assert.Equal(t, []string{"[0]"}, IndexPath(nil, 0))
}
