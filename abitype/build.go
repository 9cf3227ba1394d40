package abitype

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/wippyai/evm-abi/abi"
	"github.com/wippyai/evm-abi/errors"
	"github.com/wippyai/evm-abi/internal/coerce"
)

// Build converts loosely typed data, as produced by JSON or YAML decoders,
// into a value tree of shape t.
//
// Integers accept numbers, decimal strings and 0x hex strings and must fit
// the declared width; signed types accept non-negative values only. Byte
// types accept 0x hex strings or byte slices. Lists and tuples accept any
// slice; tuples with named components also accept map[string]any.
func Build(t *Type, v any) (*abi.Value, error) {
	return build(t, v, nil)
}

// BuildAt is Build with errors reported below path.
func BuildAt(t *Type, v any, path ...string) (*abi.Value, error) {
	return build(t, v, path)
}

func build(t *Type, v any, path []string) (*abi.Value, error) {
	if v == nil {
		return nil, errors.NilPointer(errors.PhaseBuild, path, t.String())
	}

	switch t.Kind {
	case KindUint, KindInt:
		u, ok := coerce.ToUint256(v)
		if !ok {
			return nil, mismatch(path, v, t)
		}
		limit := t.Size
		if t.Kind == KindInt {
			limit--
		}
		if u.BitLen() > limit {
			return nil, errors.Overflow(errors.PhaseBuild, path, u.Dec(), t.String())
		}
		return abi.NewInteger(u), nil

	case KindBool:
		b, ok := coerce.ToBool(v)
		if !ok {
			return nil, mismatch(path, v, t)
		}
		return abi.NewBool(b), nil

	case KindAddress:
		addr, ok := coerce.ToAddress(v)
		if !ok {
			return nil, mismatch(path, v, t)
		}
		return abi.NewAddress(addr), nil

	case KindFixedBytes:
		raw, ok := coerce.ToBytes(v)
		if !ok {
			return nil, mismatch(path, v, t)
		}
		if len(raw) > t.Size {
			return nil, errors.Overflow(errors.PhaseBuild, path, len(raw), t.String())
		}
		return abi.NewFixedBytes(raw)

	case KindBytes:
		raw, ok := coerce.ToBytes(v)
		if !ok {
			return nil, mismatch(path, v, t)
		}
		return abi.NewBytes(raw), nil

	case KindString:
		s, ok := coerce.ToText(v)
		if !ok {
			return nil, mismatch(path, v, t)
		}
		return abi.NewString(s), nil

	case KindSlice:
		elems, ok := Sequence(v)
		if !ok {
			return nil, mismatch(path, v, t)
		}
		children, err := buildEach(t.Elem, elems, path)
		if err != nil {
			return nil, err
		}
		return abi.NewList(children...), nil

	case KindArray:
		elems, ok := Sequence(v)
		if !ok {
			return nil, mismatch(path, v, t)
		}
		if len(elems) != t.Size {
			return nil, lengthMismatch(path, t, len(elems))
		}
		children, err := buildEach(t.Elem, elems, path)
		if err != nil {
			return nil, err
		}
		return abi.NewTuple(children...), nil

	case KindTuple:
		return buildTuple(t, v, path)

	default:
		return nil, errors.Unsupported(errors.PhaseBuild, path, "ABI type "+t.Kind.String())
	}
}

func buildTuple(t *Type, v any, path []string) (*abi.Value, error) {
	if fields, ok := v.(map[string]any); ok {
		children := make([]*abi.Value, len(t.Elems))
		for i, elem := range t.Elems {
			name := t.Names[i]
			if name == "" {
				return nil, errors.New(errors.PhaseBuild, errors.KindTypeMismatch).
					Path(path...).
					ABIType(t.String()).
					Detail("component %d has no name to look up", i).
					Build()
			}
			fv, ok := fields[name]
			if !ok {
				return nil, errors.FieldMissing(errors.PhaseBuild, path, name)
			}
			child, err := build(elem, fv, errors.AppendPath(path, name))
			if err != nil {
				return nil, err
			}
			children[i] = child
		}
		return abi.NewTuple(children...), nil
	}

	elems, ok := Sequence(v)
	if !ok {
		return nil, mismatch(path, v, t)
	}
	if len(elems) != len(t.Elems) {
		return nil, lengthMismatch(path, t, len(elems))
	}
	children := make([]*abi.Value, len(elems))
	for i, elem := range t.Elems {
		child, err := build(elem, elems[i], errors.AppendPath(path, componentName(t, i)))
		if err != nil {
			return nil, err
		}
		children[i] = child
	}
	return abi.NewTuple(children...), nil
}

func buildEach(elem *Type, elems []any, path []string) ([]*abi.Value, error) {
	children := make([]*abi.Value, len(elems))
	for i, e := range elems {
		child, err := build(elem, e, errors.IndexPath(path, i))
		if err != nil {
			return nil, err
		}
		children[i] = child
	}
	return children, nil
}

// Sequence flattens []any and typed slices or arrays into []any. Byte
// slices are not sequences.
func Sequence(v any) ([]any, bool) {
	if s, ok := v.([]any); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func componentName(t *Type, i int) string {
	if i < len(t.Names) && t.Names[i] != "" {
		return t.Names[i]
	}
	return strconv.Itoa(i)
}

func mismatch(path []string, v any, t *Type) *errors.Error {
	return errors.TypeMismatch(errors.PhaseBuild, path, fmt.Sprintf("%T", v), t.String())
}

func lengthMismatch(path []string, t *Type, got int) *errors.Error {
	want := t.Size
	if t.Kind == KindTuple {
		want = len(t.Elems)
	}
	return errors.New(errors.PhaseBuild, errors.KindTypeMismatch).
		Path(path...).
		ABIType(t.String()).
		Value(got).
		Detail("expected %d elements, got %d", want, got).
		Build()
}
