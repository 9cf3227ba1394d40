package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func word(v uint64) string {
	return fmt.Sprintf("%064x", v)
}

func TestFormatWords(t *testing.T) {
	t.Run("aligned", func(t *testing.T) {
		buf := make([]byte, 64)
		buf[31] = 1
		buf[63] = 2
		lines := formatWords(buf, 0)
		require.Len(t, lines, 2)
		assert.Equal(t, "0x0000", lines[0].offset)
		assert.Equal(t, word(1), lines[0].hex)
		assert.Equal(t, "0x0020", lines[1].offset)
		assert.Equal(t, word(2), lines[1].hex)
	})

	t.Run("selector_prefix", func(t *testing.T) {
		buf := append([]byte{0xa9, 0x05, 0x9c, 0xbb}, make([]byte, 32)...)
		lines := formatWords(buf, 4)
		require.Len(t, lines, 2)
		assert.Equal(t, "prefix", lines[0].offset)
		assert.Equal(t, "a9059cbb", lines[0].hex)
		assert.Equal(t, "0x0000", lines[1].offset)
	})

	t.Run("prefix_longer_than_word", func(t *testing.T) {
		prefix := make([]byte, 36)
		prefix[0] = 0xff
		buf := append(prefix, make([]byte, 32)...)
		buf[67] = 7
		lines := formatWords(buf, len(prefix))
		require.Len(t, lines, 2)
		assert.Equal(t, "prefix", lines[0].offset)
		assert.Equal(t, "ff"+strings.Repeat("00", 35), lines[0].hex)
		assert.Equal(t, "0x0000", lines[1].offset)
		assert.Equal(t, word(7), lines[1].hex)
	})

	t.Run("aligned_prefix", func(t *testing.T) {
		buf := make([]byte, 64)
		lines := formatWords(buf, 32)
		require.Len(t, lines, 2)
		assert.Equal(t, "prefix", lines[0].offset)
		assert.Equal(t, "0x0000", lines[1].offset)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, formatWords(nil, 0))
	})
}

func TestSplitTypes(t *testing.T) {
	assert.Equal(t, []string{"u64", "string"}, splitTypes("u64, string"))
	assert.Equal(t, []string{"tuple<u8, u16>", "list<u8>"}, splitTypes("tuple<u8, u16>,list<u8>"))
	assert.Empty(t, splitTypes(" "))
}

func TestDecodePrefix(t *testing.T) {
	b, err := decodePrefix("")
	require.NoError(t, err)
	assert.Nil(t, b)

	b, err = decodePrefix("0xa9059cbb")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xa9, 0x05, 0x9c, 0xbb}, b)

	b, err = decodePrefix("a9059cbb")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xa9, 0x05, 0x9c, 0xbb}, b)

	_, err = decodePrefix("0xzz")
	assert.Error(t, err)
}

func TestDecodeValuesKeepsLargeNumbers(t *testing.T) {
	values, err := decodeValues(`[115792089237316195423570985008687907853269984665640564039457584007913129639935, "a"]`)
	require.NoError(t, err)
	require.Len(t, values, 2)

	v, err := buildFromFlags(options{types: "uint256", values: `[115792089237316195423570985008687907853269984665640564039457584007913129639935]`})
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("ff", 32), fmt.Sprintf("%x", v.Bytes()))

	_, err = decodeValues(`{"not": "an array"}`)
	assert.Error(t, err)
}

func TestBuildFromFlags(t *testing.T) {
	want := word(0x123) + word(0x40) + word(3) + "616263" + strings.Repeat("0", 58)

	tests := []struct {
		name string
		opts options
	}{
		{"signature", options{signature: "f(uint64 a, string b)", values: `[291, "abc"]`}},
		{"types", options{types: "uint64,string", values: `[291, "abc"]`}},
		{"wit", options{witTypes: "u64, string", values: `[291, "abc"]`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := buildFromFlags(tt.opts)
			require.NoError(t, err)
			assert.Equal(t, want, fmt.Sprintf("%x", v.Bytes()))
		})
	}

	t.Run("bad_signature", func(t *testing.T) {
		_, err := buildFromFlags(options{signature: "f(uint7)", values: "[1]"})
		assert.Error(t, err)
	})

	t.Run("bad_wit_type", func(t *testing.T) {
		_, err := buildFromFlags(options{witTypes: "not-a-type<", values: "[1]"})
		assert.Error(t, err)
	})

	t.Run("value_count_mismatch", func(t *testing.T) {
		_, err := buildFromFlags(options{types: "uint256,uint256", values: "[1]"})
		assert.Error(t, err)
	})
}

func TestBuildDemo(t *testing.T) {
	v, err := buildFromFlags(options{demo: true})
	require.NoError(t, err)
	assert.Equal(t, 2, v.Len())
	assert.True(t, v.IsDynamic())
	assert.Equal(t, 3, v.Child(1).Len())
	assert.Zero(t, v.Size()%32)
}

func TestParseJobs(t *testing.T) {
	data := []byte(`
jobs:
  - name: transfer
    signature: transfer(address to, uint256 amount)
    prefix: "0xa9059cbb"
    values:
      to: "0x00000000000000000000000000000000000000aa"
      amount: 1000
  - types: uint256,bool
    values: [7, true]
`)
	jobs, err := parseJobs(data)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "transfer", jobs[0].title())
	assert.Equal(t, "uint256,bool", jobs[1].title())

	v, err := jobs[0].build()
	require.NoError(t, err)
	assert.Equal(t, word(0xaa)+word(1000), fmt.Sprintf("%x", v.Bytes()))

	v, err = jobs[1].build()
	require.NoError(t, err)
	assert.Equal(t, word(7)+word(1), fmt.Sprintf("%x", v.Bytes()))

	t.Run("empty", func(t *testing.T) {
		_, err := parseJobs([]byte("jobs: []"))
		assert.Error(t, err)
	})

	t.Run("no_types", func(t *testing.T) {
		_, err := job{Name: "x"}.build()
		assert.Error(t, err)
	})
}

func TestRun(t *testing.T) {
	t.Run("words", func(t *testing.T) {
		var out bytes.Buffer
		err := run(context.Background(), &out, options{types: "uint256", values: "[5]", prefix: "0x01020304"})
		require.NoError(t, err)
		assert.Equal(t, "prefix  01020304\n0x0000  "+word(5)+"\n", out.String())
	})

	t.Run("raw", func(t *testing.T) {
		var out bytes.Buffer
		err := run(context.Background(), &out, options{types: "bool", values: "[true]", raw: true})
		require.NoError(t, err)
		assert.Equal(t, "0x"+word(1)+"\n", out.String())
	})

	t.Run("job_file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "jobs.yaml")
		require.NoError(t, os.WriteFile(path, []byte("jobs:\n  - name: one\n    types: uint8\n    values: [1]\n"), 0o600))

		var out bytes.Buffer
		require.NoError(t, run(context.Background(), &out, options{jobFile: path, raw: true}))
		assert.Equal(t, "# one\n0x"+word(1)+"\n", out.String())
	})

	t.Run("job_error_names_job", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "jobs.yaml")
		require.NoError(t, os.WriteFile(path, []byte("jobs:\n  - name: broken\n    types: uint8\n    values: [300]\n"), 0o600))

		err := run(context.Background(), &bytes.Buffer{}, options{jobFile: path})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "broken")
	})

	t.Run("missing_wasm", func(t *testing.T) {
		err := run(context.Background(), &bytes.Buffer{}, options{types: "uint8", values: "[1]", wasmFile: filepath.Join(t.TempDir(), "none.wasm")})
		assert.Error(t, err)
	})
}

func TestInteractiveEncode(t *testing.T) {
	m := newInteractiveModel()
	m.inputs[inputSignature].SetValue("transfer(address to, uint256 amount)")
	m.inputs[inputValues].SetValue(`["0x00000000000000000000000000000000000000aa", 1000]`)
	m.inputs[inputPrefix].SetValue("0xa9059cbb")

	msg, ok := m.encode().(encodedMsg)
	require.True(t, ok)
	require.NoError(t, msg.err)
	assert.Equal(t, "(address,uint256)", msg.canon)
	require.Len(t, msg.lines, 3)
	assert.Equal(t, "a9059cbb", msg.lines[0].hex)
	assert.Equal(t, word(0xaa), msg.lines[1].hex)
	assert.Equal(t, word(1000), msg.lines[2].hex)

	model, _ := m.Update(msg)
	assert.Equal(t, stateShowResult, model.(*interactiveModel).state)
	assert.Contains(t, model.View(), word(1000))

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, stateInput, model.(*interactiveModel).state)
}

func TestInteractiveBareArgs(t *testing.T) {
	m := newInteractiveModel()
	m.inputs[inputSignature].SetValue("uint256,(bool,string)")
	m.inputs[inputValues].SetValue(`[1, [true, "x"]]`)

	msg := m.encode().(encodedMsg)
	require.NoError(t, msg.err)
	assert.Equal(t, "(uint256,(bool,string))", msg.canon)

	m.inputs[inputValues].SetValue(`[1]`)
	msg = m.encode().(encodedMsg)
	assert.Error(t, msg.err)
}
