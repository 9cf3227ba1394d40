package abitype

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/evm-abi/abi"
	"github.com/wippyai/evm-abi/errors"
)

func num(v uint64) string {
	return fmt.Sprintf("%064x", v)
}

func right(raw string) string {
	h := hex.EncodeToString([]byte(raw))
	return h + strings.Repeat("0", 64-len(h))
}

func mustParseArgs(t *testing.T, s string) *Type {
	t.Helper()
	typ, err := ParseArgs(s)
	require.NoError(t, err)
	return typ
}

func encodeHex(t *testing.T, typ *Type, v any) string {
	t.Helper()
	out, err := Build(typ, v)
	require.NoError(t, err)
	return hex.EncodeToString(out.Bytes())
}

func TestBuild_FromJSON(t *testing.T) {
	typ := mustParseArgs(t, "uint256,uint32[],bytes10,bytes")

	var values []any
	dec := jsoniter.ConfigCompatibleWithStandardLibrary.NewDecoder(strings.NewReader(
		`["0x123", [1110, "0x789"], "0x31323334353637383930", "0x48656c6c6f2c20776f726c6421"]`))
	dec.UseNumber()
	require.NoError(t, dec.Decode(&values))

	want := num(0x123) +
		num(0x80) +
		right("1234567890") +
		num(0xe0) +
		num(2) + num(0x456) + num(0x789) +
		num(13) + right("Hello, world!")
	assert.Equal(t, want, encodeHex(t, typ, values))
}

func TestBuild_FromYAML(t *testing.T) {
	typ := mustParseArgs(t, "uint256[][] a, string[] b")

	var values map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(`
a: [[1, 2], [3]]
b: [one, two, three]
`), &values))

	want := strings.Join([]string{
		num(0x40), num(0x140),
		num(2), num(0x40), num(0xa0),
		num(2), num(1), num(2),
		num(1), num(3),
		num(3), num(0x60), num(0xa0), num(0xe0),
		num(3), right("one"),
		num(3), right("two"),
		num(5), right("three"),
	}, "")
	assert.Equal(t, want, encodeHex(t, typ, values))
}

func TestBuild_Leaves(t *testing.T) {
	tests := []struct {
		typ  string
		in   any
		want string
	}{
		{"uint8", 255, num(255)},
		{"uint256", "115792089237316195423570985008687907853269984665640564039457584007913129639935", strings.Repeat("ff", 32)},
		{"int16", json.Number("42"), num(42)},
		{"bool", true, num(1)},
		{"bool", "false", num(0)},
		{"address", "0x00000000000000000000000000000000000000aa", num(0xaa)},
		{"bytes4", "0xdeadbeef", "deadbeef" + strings.Repeat("00", 28)},
		{"bytes4", "0xdead", "dead" + strings.Repeat("00", 30)},
		{"bytes", []byte{1, 2}, num(2) + "0102" + strings.Repeat("00", 30)},
		{"string", "abc", num(3) + right("abc")},
		{"uint64[]", []uint64{1, 2}, num(2) + num(1) + num(2)},
		{"uint64[2]", []any{1, 2}, num(1) + num(2)},
		{"(bool,uint8)", []any{true, 7}, num(1) + num(7)},
	}

	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			typ, err := Parse(tt.typ)
			require.NoError(t, err)
			assert.Equal(t, tt.want, encodeHex(t, typ, tt.in))
		})
	}
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name string
		typ  string
		in   any
		kind errors.Kind
	}{
		{"uint8_overflow", "uint8", 256, errors.KindOverflow},
		{"int8_overflow", "int8", 128, errors.KindOverflow},
		{"negative", "uint256", -1, errors.KindTypeMismatch},
		{"fraction", "uint256", 1.5, errors.KindTypeMismatch},
		{"not_bool", "bool", "yes", errors.KindTypeMismatch},
		{"bad_address", "address", "0x1234", errors.KindTypeMismatch},
		{"fixed_too_long", "bytes2", "0x010203", errors.KindOverflow},
		{"bad_hex", "bytes", "0xzz", errors.KindTypeMismatch},
		{"string_from_number", "string", 5, errors.KindTypeMismatch},
		{"list_from_scalar", "uint8[]", 5, errors.KindTypeMismatch},
		{"array_length", "uint8[3]", []any{1, 2}, errors.KindTypeMismatch},
		{"tuple_arity", "(uint8,uint8)", []any{1}, errors.KindTypeMismatch},
		{"nil", "uint8", nil, errors.KindNilPointer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ, err := Parse(tt.typ)
			require.NoError(t, err)
			_, err = Build(typ, tt.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseBuild, Kind: tt.kind})
		})
	}
}

func TestBuild_NamedTuple(t *testing.T) {
	typ := mustParseArgs(t, "address to, uint256 amount")

	out, err := Build(typ, map[string]any{"amount": "1000", "to": "0x00000000000000000000000000000000000000aa"})
	require.NoError(t, err)
	assert.Equal(t, num(0xaa)+num(1000), hex.EncodeToString(out.Bytes()))

	_, err = Build(typ, map[string]any{"to": "0x00000000000000000000000000000000000000aa"})
	assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseBuild, Kind: errors.KindFieldMissing})

	unnamed := mustParseArgs(t, "address,uint256")
	_, err = Build(unnamed, map[string]any{})
	assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseBuild, Kind: errors.KindTypeMismatch})
}

func TestBuild_ErrorPath(t *testing.T) {
	typ := mustParseArgs(t, "(uint8 x, string[] names) item")

	_, err := Build(typ, []any{[]any{1, []any{"a", 2}}})
	var abiErr *errors.Error
	require.ErrorAs(t, err, &abiErr)
	assert.Equal(t, []string{"item", "names", "[1]"}, abiErr.Path)
}

func TestBuildAt(t *testing.T) {
	typ := mustParseArgs(t, "uint8 x")

	_, err := BuildAt(typ, []any{300}, "param[2]")
	var abiErr *errors.Error
	require.ErrorAs(t, err, &abiErr)
	assert.Equal(t, errors.KindOverflow, abiErr.Kind)
	assert.Equal(t, []string{"param[2]", "x"}, abiErr.Path)
}

func TestSequence(t *testing.T) {
	got, ok := Sequence([]uint32{1, 2})
	require.True(t, ok)
	assert.Equal(t, []any{uint32(1), uint32(2)}, got)

	got, ok = Sequence([2]string{"a", "b"})
	require.True(t, ok)
	assert.Equal(t, []any{"a", "b"}, got)

	_, ok = Sequence([]byte{1, 2})
	assert.False(t, ok, "byte slices encode as bytes")

	_, ok = Sequence("ab")
	assert.False(t, ok)
}

func TestBuild_MatchesTypeLayout(t *testing.T) {
	typ := mustParseArgs(t, "(uint8,bytes),uint256[2],bool")
	v, err := Build(typ, []any{[]any{1, "0x00"}, []any{1, 2}, true})
	require.NoError(t, err)

	assert.Equal(t, abi.KindTuple, v.Kind())
	assert.Equal(t, typ.IsDynamic(), v.IsDynamic())
	for i, elem := range typ.Elems {
		assert.Equal(t, elem.HeadSize(), v.Child(i).HeadSize(), elem.String())
	}
}
