package witabi

import (
	"fmt"
	"strconv"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/evm-abi/abitype"
	"github.com/wippyai/evm-abi/errors"
)

// Type maps a WIT type to the ABI type its values encode as.
//
//	bool               bool
//	u8..u64, s8..s64   uint8..uint64, int8..int64
//	char               uint32
//	string             string
//	list<u8>           bytes
//	list<T>            T[]
//	record, tuple      (T1,T2,...)
//	enum               smallest uintN holding the case index
//	flags              smallest uintN holding one bit per flag
//
// Floats, option, result, variant and resource handles have no ABI form.
func Type(t wit.Type) (*abitype.Type, error) {
	return mapType(t, nil)
}

func mapType(t wit.Type, path []string) (*abitype.Type, error) {
	switch t := t.(type) {
	case wit.Bool:
		return &abitype.Type{Kind: abitype.KindBool}, nil
	case wit.U8:
		return &abitype.Type{Kind: abitype.KindUint, Size: 8}, nil
	case wit.U16:
		return &abitype.Type{Kind: abitype.KindUint, Size: 16}, nil
	case wit.U32, wit.Char:
		return &abitype.Type{Kind: abitype.KindUint, Size: 32}, nil
	case wit.U64:
		return &abitype.Type{Kind: abitype.KindUint, Size: 64}, nil
	case wit.S8:
		return &abitype.Type{Kind: abitype.KindInt, Size: 8}, nil
	case wit.S16:
		return &abitype.Type{Kind: abitype.KindInt, Size: 16}, nil
	case wit.S32:
		return &abitype.Type{Kind: abitype.KindInt, Size: 32}, nil
	case wit.S64:
		return &abitype.Type{Kind: abitype.KindInt, Size: 64}, nil
	case wit.String:
		return &abitype.Type{Kind: abitype.KindString}, nil
	case *wit.TypeDef:
		return mapTypeDef(t, path)
	default:
		return nil, unsupported(path, t)
	}
}

func mapTypeDef(t *wit.TypeDef, path []string) (*abitype.Type, error) {
	switch kind := t.Kind.(type) {
	case *wit.List:
		if _, ok := kind.Type.(wit.U8); ok {
			return &abitype.Type{Kind: abitype.KindBytes}, nil
		}
		elem, err := mapType(kind.Type, errors.AppendPath(path, "[elem]"))
		if err != nil {
			return nil, err
		}
		return &abitype.Type{Kind: abitype.KindSlice, Elem: elem}, nil

	case *wit.Record:
		out := &abitype.Type{Kind: abitype.KindTuple}
		for _, field := range kind.Fields {
			elem, err := mapType(field.Type, errors.AppendPath(path, field.Name))
			if err != nil {
				return nil, err
			}
			out.Elems = append(out.Elems, elem)
			out.Names = append(out.Names, field.Name)
		}
		return out, nil

	case *wit.Tuple:
		out := &abitype.Type{Kind: abitype.KindTuple}
		for i, elemType := range kind.Types {
			elem, err := mapType(elemType, errors.AppendPath(path, strconv.Itoa(i)))
			if err != nil {
				return nil, err
			}
			out.Elems = append(out.Elems, elem)
			out.Names = append(out.Names, "")
		}
		return out, nil

	case *wit.Enum:
		return &abitype.Type{Kind: abitype.KindUint, Size: widthFor(len(kind.Cases) - 1)}, nil

	case *wit.Flags:
		return &abitype.Type{Kind: abitype.KindUint, Size: roundBits(len(kind.Flags))}, nil

	case wit.Type:
		return mapType(kind, path)

	default:
		return nil, unsupported(path, kind)
	}
}

// widthFor returns the smallest multiple of 8 bits holding n.
func widthFor(n int) int {
	bits := 0
	for v := n; v > 0; v >>= 1 {
		bits++
	}
	return roundBits(bits)
}

func roundBits(bits int) int {
	if bits <= 8 {
		return 8
	}
	return (bits + 7) / 8 * 8
}

func unsupported(path []string, t any) *errors.Error {
	return errors.New(errors.PhaseCompile, errors.KindUnsupported).
		Path(path...).
		GoType(fmt.Sprintf("%T", t)).
		Detail("WIT type %T has no ABI encoding", t).
		Build()
}
