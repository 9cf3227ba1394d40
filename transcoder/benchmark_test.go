package transcoder

import (
	"testing"

	"github.com/wippyai/evm-abi/abi"
)

func BenchmarkEncode_Uint64(b *testing.B) {
	enc := NewEncoder()
	buf := make([]byte, 0, 256)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = enc.Encode(buf[:0], uint64(42))
	}
}

func BenchmarkEncode_String_Small(b *testing.B) {
	enc := NewEncoder()
	buf := make([]byte, 0, 256)
	s := "hello"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = enc.Encode(buf[:0], s)
	}
}

func BenchmarkEncode_String_Large(b *testing.B) {
	enc := NewEncoder()
	buf := make([]byte, 0, 16384)
	s := string(make([]byte, 10000))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = enc.Encode(buf[:0], s)
	}
}

func BenchmarkEncode_Struct(b *testing.B) {
	enc := NewEncoder()
	t1, _, _, _ := fixtures()
	buf := make([]byte, 0, 1024)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = enc.Encode(buf[:0], t1)
	}
}

func BenchmarkEncode_NestedList(b *testing.B) {
	enc := NewEncoder()
	_, _, _, t4 := fixtures()
	list := []test4{t4, t4, t4}
	buf := make([]byte, 0, 8192)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = enc.Encode(buf[:0], t4, list)
	}
}

func BenchmarkBuild_Record(b *testing.B) {
	enc := NewEncoder()
	rec := recordOnValue{X: 7}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = enc.Build(rec)
	}
}

// Encode alone, with the value tree built once up front.
func BenchmarkValueEncode(b *testing.B) {
	_, _, _, t4 := fixtures()
	v, err := NewEncoder().BuildArgs(t4, []test4{t4, t4, t4})
	if err != nil {
		b.Fatal(err)
	}
	buf := make([]byte, 0, v.Size())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf = v.Encode(buf[:0])
	}
}

func BenchmarkValueSize(b *testing.B) {
	v := abi.NewTuple(
		abi.NewList(abi.NewString("a"), abi.NewString("b")),
		abi.NewUint64(1),
	)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = v.Size()
	}
}
