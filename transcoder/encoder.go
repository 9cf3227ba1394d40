package transcoder

import (
	"math/big"
	"reflect"
	"strconv"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"go.uber.org/zap"

	"github.com/wippyai/evm-abi/abi"
	"github.com/wippyai/evm-abi/errors"
	"github.com/wippyai/evm-abi/internal/coerce"
)

// DefaultMaxDepth bounds container nesting when Config.MaxDepth is zero.
const DefaultMaxDepth = 64

type Config struct {
	// Compiler is shared between encoders when set.
	Compiler *Compiler
	// MaxDepth is the deepest container nesting Build accepts.
	MaxDepth int
}

// Encoder turns Go values into *abi.Value trees and encoded bytes.
// It is safe for concurrent use.
type Encoder struct {
	compiler *Compiler
	maxDepth int
}

func NewEncoder() *Encoder {
	return NewEncoderWithConfig(Config{})
}

func NewEncoderWithCompiler(c *Compiler) *Encoder {
	return NewEncoderWithConfig(Config{Compiler: c})
}

func NewEncoderWithConfig(cfg Config) *Encoder {
	if cfg.Compiler == nil {
		cfg.Compiler = NewCompiler()
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	return &Encoder{
		compiler: cfg.Compiler,
		maxDepth: cfg.MaxDepth,
	}
}

// Compiler returns the rule cache backing the encoder.
func (e *Encoder) Compiler() *Compiler {
	return e.compiler
}

// Build converts v to a value tree. Structs, arrays and records become
// tuples, so a struct describes a whole argument list.
func (e *Encoder) Build(v any) (*abi.Value, error) {
	if v == nil {
		return nil, errors.InvalidInput(errors.PhaseBuild, "cannot build a nil value")
	}
	return e.build(reflect.ValueOf(v), nil, 0)
}

// BuildArgs converts each argument and wraps them in a root tuple.
func (e *Encoder) BuildArgs(args ...any) (*abi.Value, error) {
	root := abi.NewTuple()
	for i, arg := range args {
		path := []string{"arg[" + strconv.Itoa(i) + "]"}
		if arg == nil {
			return nil, errors.NilPointer(errors.PhaseBuild, path, "<nil>")
		}
		child, err := e.build(reflect.ValueOf(arg), path, 1)
		if err != nil {
			return nil, err
		}
		if err := root.Append(child); err != nil {
			return nil, err
		}
	}
	return root, nil
}

// Encode appends the encoding of args, as one argument tuple, to buf.
func (e *Encoder) Encode(buf []byte, args ...any) ([]byte, error) {
	root, err := e.BuildArgs(args...)
	if err != nil {
		return buf, err
	}
	out := root.Encode(buf)
	Logger().Debug("encoded arguments",
		zap.Int("args", len(args)),
		zap.Int("bytes", len(out)-len(buf)))
	return out, nil
}

func (e *Encoder) build(rv reflect.Value, path []string, depth int) (*abi.Value, error) {
	ct, err := e.compiler.Compile(rv.Type())
	if err != nil {
		return nil, err
	}
	return e.buildCompiled(ct, rv, path, depth)
}

func (e *Encoder) buildCompiled(ct *CompiledType, rv reflect.Value, path []string, depth int) (*abi.Value, error) {
	switch ct.Kind {
	case KindBool:
		return abi.NewBool(rv.Bool()), nil

	case KindUint:
		return abi.NewUint64(rv.Uint()), nil

	case KindInt:
		n := rv.Int()
		if n < 0 {
			return nil, errors.Overflow(errors.PhaseBuild, path, n, "uint256")
		}
		return abi.NewUint64(uint64(n)), nil

	case KindUint256:
		u := rv.Interface().(uint256.Int)
		return abi.NewInteger(&u), nil

	case KindBigInt:
		b := addressable(rv).Addr().Interface().(*big.Int)
		u, ok := coerce.ToUint256(b)
		if !ok {
			return nil, errors.Overflow(errors.PhaseBuild, path, b.String(), "uint256")
		}
		return abi.NewInteger(u), nil

	case KindAddress:
		return abi.NewAddress(rv.Interface().(common.Address)), nil

	case KindFixedBytes:
		raw := make([]byte, ct.Len)
		for i := range raw {
			raw[i] = byte(rv.Index(i).Uint())
		}
		v, err := abi.NewFixedBytes(raw)
		if err != nil {
			return nil, err
		}
		return v, nil

	case KindBytes:
		return abi.NewBytes(rv.Bytes()), nil

	case KindString:
		return abi.NewString(rv.String()), nil

	case KindRecord:
		return e.buildRecord(ct, rv, path, depth)

	case KindStruct:
		if depth >= e.maxDepth {
			return nil, errors.TooDeep(errors.PhaseBuild, path, e.maxDepth)
		}
		children := make([]*abi.Value, 0, len(ct.Fields))
		for _, f := range ct.Fields {
			child, err := e.buildCompiled(f.Type, rv.Field(f.Index), errors.AppendPath(path, f.Name), depth+1)
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
		return abi.NewTuple(children...), nil

	case KindArray:
		if depth >= e.maxDepth {
			return nil, errors.TooDeep(errors.PhaseBuild, path, e.maxDepth)
		}
		children, err := e.buildElems(ct.Elem, rv, path, depth)
		if err != nil {
			return nil, err
		}
		return abi.NewTuple(children...), nil

	case KindSlice:
		if depth >= e.maxDepth {
			return nil, errors.TooDeep(errors.PhaseBuild, path, e.maxDepth)
		}
		children, err := e.buildElems(ct.Elem, rv, path, depth)
		if err != nil {
			return nil, err
		}
		return abi.NewList(children...), nil

	case KindPointer:
		if rv.IsNil() {
			return nil, errors.NilPointer(errors.PhaseBuild, path, ct.GoType.String())
		}
		return e.buildCompiled(ct.Elem, rv.Elem(), path, depth)

	case KindInterface:
		if rv.IsNil() {
			return nil, errors.NilPointer(errors.PhaseBuild, path, ct.GoType.String())
		}
		return e.build(rv.Elem(), path, depth)

	case KindValue:
		if rv.IsNil() {
			return nil, errors.NilPointer(errors.PhaseBuild, path, ct.GoType.String())
		}
		return rv.Interface().(*abi.Value), nil

	default:
		return nil, errors.Unsupported(errors.PhaseBuild, path, "rule "+ct.Kind.String())
	}
}

func (e *Encoder) buildElems(elem *CompiledType, rv reflect.Value, path []string, depth int) ([]*abi.Value, error) {
	n := rv.Len()
	children := make([]*abi.Value, n)
	for i := 0; i < n; i++ {
		child, err := e.buildCompiled(elem, rv.Index(i), errors.IndexPath(path, i), depth+1)
		if err != nil {
			return nil, err
		}
		children[i] = child
	}
	return children, nil
}

func (e *Encoder) buildRecord(ct *CompiledType, rv reflect.Value, path []string, depth int) (*abi.Value, error) {
	if depth >= e.maxDepth {
		return nil, errors.TooDeep(errors.PhaseBuild, path, e.maxDepth)
	}

	var rec Record
	switch {
	case ct.RecordPtr:
		rec = addressable(rv).Addr().Interface().(Record)
	case (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) && rv.IsNil():
		return nil, errors.NilPointer(errors.PhaseBuild, path, ct.GoType.String())
	default:
		rec = rv.Interface().(Record)
	}

	fields := rec.ABIFields()
	children := make([]*abi.Value, len(fields))
	for i, field := range fields {
		fieldPath := errors.IndexPath(path, i)
		if field == nil {
			return nil, errors.NilPointer(errors.PhaseBuild, fieldPath, "<nil>")
		}
		child, err := e.build(reflect.ValueOf(field), fieldPath, depth+1)
		if err != nil {
			return nil, err
		}
		children[i] = child
	}
	return abi.NewTuple(children...), nil
}

// addressable returns rv itself when it can be addressed, or an addressable
// copy otherwise.
func addressable(rv reflect.Value) reflect.Value {
	if rv.CanAddr() {
		return rv
	}
	cp := reflect.New(rv.Type()).Elem()
	cp.Set(rv)
	return cp
}

var (
	defaultEncoder     *Encoder
	defaultEncoderOnce sync.Once
)

func getDefaultEncoder() *Encoder {
	defaultEncoderOnce.Do(func() {
		defaultEncoder = NewEncoder()
	})
	return defaultEncoder
}

// Build converts v with a shared default encoder.
func Build(v any) (*abi.Value, error) {
	return getDefaultEncoder().Build(v)
}

// Encode encodes args as one argument tuple with a shared default encoder.
func Encode(args ...any) ([]byte, error) {
	return getDefaultEncoder().Encode(nil, args...)
}
