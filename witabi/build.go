package witabi

import (
	"fmt"
	"strconv"

	"github.com/holiman/uint256"
	"go.bytecodealliance.org/wit"

	"github.com/wippyai/evm-abi/abi"
	"github.com/wippyai/evm-abi/abitype"
	"github.com/wippyai/evm-abi/errors"
	"github.com/wippyai/evm-abi/internal/coerce"
)

// Build converts v to a value tree shaped by the WIT type t.
//
// Records take map[string]any keyed by field name, or a positional slice.
// Enums take the case name or index. Flags take the set flag names as
// []string, a map[string]bool, or the bit mask itself. Everything else is
// accepted as abitype.Build accepts it for the mapped ABI type.
func Build(t wit.Type, v any) (*abi.Value, error) {
	return buildAt(t, v, nil)
}

// BuildParams builds one value per parameter and wraps them in the root
// argument tuple.
func BuildParams(paramTypes []wit.Type, values []any) (*abi.Value, error) {
	if len(paramTypes) != len(values) {
		return nil, errors.InvalidData(errors.PhaseBuild, nil,
			fmt.Sprintf("parameter count mismatch: expected %d, got %d", len(paramTypes), len(values)))
	}

	root := abi.NewTuple()
	for i, paramType := range paramTypes {
		child, err := buildAt(paramType, values[i], []string{"param[" + strconv.Itoa(i) + "]"})
		if err != nil {
			return nil, err
		}
		if err := root.Append(child); err != nil {
			return nil, err
		}
	}
	return root, nil
}

func buildAt(t wit.Type, v any, path []string) (*abi.Value, error) {
	abiType, err := mapType(t, path)
	if err != nil {
		return nil, err
	}
	lowered, err := lower(t, v, path)
	if err != nil {
		return nil, err
	}
	return abitype.BuildAt(abiType, lowered, path...)
}

// lower replaces enum cases, flag sets and chars inside v with the integers
// they encode as. Other values pass through unchanged.
func lower(t wit.Type, v any, path []string) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch t := t.(type) {
	case wit.Char:
		return lowerChar(v, path)
	case *wit.TypeDef:
		return lowerTypeDef(t, v, path)
	default:
		return v, nil
	}
}

func lowerTypeDef(t *wit.TypeDef, v any, path []string) (any, error) {
	switch kind := t.Kind.(type) {
	case *wit.List:
		if _, ok := kind.Type.(wit.U8); ok {
			return v, nil
		}
		elems, ok := abitype.Sequence(v)
		if !ok {
			return v, nil
		}
		out := make([]any, len(elems))
		for i, e := range elems {
			lowered, err := lower(kind.Type, e, errors.IndexPath(path, i))
			if err != nil {
				return nil, err
			}
			out[i] = lowered
		}
		return out, nil

	case *wit.Record:
		if m, ok := v.(map[string]any); ok {
			out := make(map[string]any, len(m))
			for name, fv := range m {
				out[name] = fv
			}
			for _, field := range kind.Fields {
				fv, ok := m[field.Name]
				if !ok {
					continue
				}
				lowered, err := lower(field.Type, fv, errors.AppendPath(path, field.Name))
				if err != nil {
					return nil, err
				}
				out[field.Name] = lowered
			}
			return out, nil
		}
		fieldTypes := make([]wit.Type, len(kind.Fields))
		names := make([]string, len(kind.Fields))
		for i, field := range kind.Fields {
			fieldTypes[i] = field.Type
			names[i] = field.Name
		}
		return lowerEach(fieldTypes, names, v, path)

	case *wit.Tuple:
		names := make([]string, len(kind.Types))
		for i := range names {
			names[i] = strconv.Itoa(i)
		}
		return lowerEach(kind.Types, names, v, path)

	case *wit.Enum:
		return lowerEnum(kind, v, path)

	case *wit.Flags:
		return lowerFlags(kind, v, path)

	case wit.Type:
		return lower(kind, v, path)

	default:
		return v, nil
	}
}

// lowerEach lowers a positional record or tuple. Shape errors are left to
// the ABI builder.
func lowerEach(types []wit.Type, names []string, v any, path []string) (any, error) {
	elems, ok := abitype.Sequence(v)
	if !ok || len(elems) != len(types) {
		return v, nil
	}
	out := make([]any, len(elems))
	for i, elemType := range types {
		lowered, err := lower(elemType, elems[i], errors.AppendPath(path, names[i]))
		if err != nil {
			return nil, err
		}
		out[i] = lowered
	}
	return out, nil
}

func lowerChar(v any, path []string) (any, error) {
	switch c := v.(type) {
	case rune:
		if c < 0 {
			return nil, errors.Overflow(errors.PhaseBuild, path, c, "char")
		}
		return uint64(c), nil
	case string:
		runes := []rune(c)
		if len(runes) != 1 {
			return nil, errors.TypeMismatch(errors.PhaseBuild, path, "string", "char")
		}
		return uint64(runes[0]), nil
	}

	u, ok := coerce.ToUint256(v)
	if !ok {
		return nil, errors.TypeMismatch(errors.PhaseBuild, path, fmt.Sprintf("%T", v), "char")
	}
	if u.BitLen() > 21 {
		return nil, errors.Overflow(errors.PhaseBuild, path, u.Dec(), "char")
	}
	return u, nil
}

func lowerEnum(e *wit.Enum, v any, path []string) (any, error) {
	if name, ok := v.(string); ok {
		for i, c := range e.Cases {
			if c.Name == name {
				return uint64(i), nil
			}
		}
		return nil, errors.New(errors.PhaseBuild, errors.KindInvalidData).
			Path(path...).
			Value(name).
			Detail("unknown enum case %q", name).
			Build()
	}

	u, ok := coerce.ToUint256(v)
	if !ok {
		return nil, errors.TypeMismatch(errors.PhaseBuild, path, fmt.Sprintf("%T", v), "enum")
	}
	if !u.IsUint64() || u.Uint64() >= uint64(len(e.Cases)) {
		return nil, errors.New(errors.PhaseBuild, errors.KindOutOfBounds).
			Path(path...).
			Value(u.Dec()).
			Detail("enum index %s out of range (%d cases)", u.Dec(), len(e.Cases)).
			Build()
	}
	return u, nil
}

func lowerFlags(f *wit.Flags, v any, path []string) (any, error) {
	mask := new(uint256.Int)
	set := func(name string) error {
		for i, flag := range f.Flags {
			if flag.Name == name {
				mask.Or(mask, new(uint256.Int).Lsh(uint256.NewInt(1), uint(i)))
				return nil
			}
		}
		return errors.New(errors.PhaseBuild, errors.KindInvalidData).
			Path(path...).
			Value(name).
			Detail("unknown flag %q", name).
			Build()
	}

	switch val := v.(type) {
	case []string:
		for _, name := range val {
			if err := set(name); err != nil {
				return nil, err
			}
		}
	case map[string]bool:
		for name, on := range val {
			if !on {
				continue
			}
			if err := set(name); err != nil {
				return nil, err
			}
		}
	case []any:
		for _, item := range val {
			name, ok := item.(string)
			if !ok {
				return nil, errors.TypeMismatch(errors.PhaseBuild, path, fmt.Sprintf("%T", item), "flag name")
			}
			if err := set(name); err != nil {
				return nil, err
			}
		}
	default:
		u, ok := coerce.ToUint256(v)
		if !ok {
			return nil, errors.TypeMismatch(errors.PhaseBuild, path, fmt.Sprintf("%T", v), "flags")
		}
		if u.BitLen() > len(f.Flags) {
			return nil, errors.Overflow(errors.PhaseBuild, path, u.Hex(), "flags")
		}
		mask = u
	}

	return mask, nil
}
