package abitype

import (
	"fmt"
	"strings"

	gethabi "github.com/ethereum/go-ethereum/accounts/abi"

	"github.com/wippyai/evm-abi/errors"
)

// MaxNesting bounds tuple and array nesting in type strings.
const MaxNesting = 32

// Parse parses one ABI type such as uint256, bytes32[2] or (address,string)[].
// The aliases uint and int mean uint256 and int256.
//
// Type strings go through the go-ethereum selector grammar, so a tuple can
// carry at most one trailing [] and cannot be empty.
func Parse(s string) (*Type, error) {
	params, err := normalize(s, 0)
	if err != nil {
		return nil, err
	}
	if len(params) != 1 {
		return nil, errors.InvalidData(errors.PhaseParse, nil, fmt.Sprintf("expected one type in %q", s))
	}
	if params[0].name != "" {
		return nil, errors.InvalidData(errors.PhaseParse, nil, fmt.Sprintf("unexpected parameter name in %q", s))
	}
	root, _, err := resolve("f", s, params)
	if err != nil {
		return nil, err
	}
	return root.Elems[0], nil
}

// ParseArgs parses a comma separated argument list, with or without the
// surrounding parentheses, into a root tuple. Parameter names are kept.
func ParseArgs(s string) (*Type, error) {
	list := strings.TrimSpace(s)
	if strings.HasPrefix(list, "(") && strings.HasSuffix(list, ")") && balanced(list) {
		list = list[1 : len(list)-1]
	}
	params, err := normalize(list, 0)
	if err != nil {
		return nil, err
	}
	root, _, err := resolve("f", s, params)
	return root, err
}

// ParseSignature splits name(args) into the function name and its argument
// tuple.
func ParseSignature(sig string) (string, *Type, error) {
	sig = strings.TrimSpace(sig)
	open := strings.IndexByte(sig, '(')
	if open <= 0 || !strings.HasSuffix(sig, ")") {
		return "", nil, errors.New(errors.PhaseParse, errors.KindInvalidData).
			Detail("signature %q has no name(args) form", sig).
			Build()
	}
	params, err := normalize(sig[open+1:len(sig)-1], 0)
	if err != nil {
		return "", nil, err
	}
	root, name, err := resolve(strings.TrimSpace(sig[:open]), sig, params)
	if err != nil {
		return "", nil, err
	}
	return name, root, nil
}

// resolve runs the canonical list through the go-ethereum selector parser
// and type constructor and converts the result into a root tuple.
func resolve(fn, src string, params []param) (*Type, string, error) {
	types := make([]string, len(params))
	for i, p := range params {
		types[i] = p.typ
	}
	sel, err := gethabi.ParseSelector(fn + "(" + strings.Join(types, ",") + ")")
	if err != nil {
		return nil, "", errors.ParseFailed(fmt.Sprintf("%q", src), err)
	}
	if len(sel.Inputs) != len(params) {
		return nil, "", errors.InvalidData(errors.PhaseParse, nil,
			fmt.Sprintf("%q resolved to %d arguments, want %d", src, len(sel.Inputs), len(params)))
	}

	root := &Type{Kind: KindTuple}
	for i, in := range sel.Inputs {
		gt, err := gethabi.NewType(in.Type, in.InternalType, in.Components)
		if err != nil {
			return nil, "", errors.Wrap(errors.PhaseParse, errors.KindUnsupported, err,
				fmt.Sprintf("unsupported ABI type %q", params[i].typ))
		}
		t, err := fromGeth(&gt, params[i])
		if err != nil {
			return nil, "", err
		}
		// the selector grammar is lenient about trailing characters
		if t.String() != params[i].typ {
			return nil, "", errors.New(errors.PhaseParse, errors.KindInvalidData).
				ABIType(params[i].typ).
				Detail("%q is not a canonical ABI type", params[i].typ).
				Build()
		}
		root.Elems = append(root.Elems, t)
		root.Names = append(root.Names, params[i].name)
	}
	return root, sel.Name, nil
}

func fromGeth(gt *gethabi.Type, p param) (*Type, error) {
	switch gt.T {
	case gethabi.IntTy, gethabi.UintTy:
		if gt.Size < 8 || gt.Size > 256 || gt.Size%8 != 0 {
			return nil, errors.New(errors.PhaseParse, errors.KindInvalidData).
				ABIType(gt.String()).
				Detail("integer width must be a multiple of 8 between 8 and 256").
				Build()
		}
		if gt.T == gethabi.IntTy {
			return &Type{Kind: KindInt, Size: gt.Size}, nil
		}
		return &Type{Kind: KindUint, Size: gt.Size}, nil
	case gethabi.BoolTy:
		return &Type{Kind: KindBool}, nil
	case gethabi.AddressTy:
		return &Type{Kind: KindAddress}, nil
	case gethabi.StringTy:
		return &Type{Kind: KindString}, nil
	case gethabi.BytesTy:
		return &Type{Kind: KindBytes}, nil
	case gethabi.FixedBytesTy:
		return &Type{Kind: KindFixedBytes, Size: gt.Size}, nil
	case gethabi.SliceTy, gethabi.ArrayTy:
		elem, err := fromGeth(gt.Elem, p)
		if err != nil {
			return nil, err
		}
		if gt.T == gethabi.SliceTy {
			return &Type{Kind: KindSlice, Elem: elem}, nil
		}
		return &Type{Kind: KindArray, Elem: elem, Size: gt.Size}, nil
	case gethabi.TupleTy:
		if len(gt.TupleElems) != len(p.elems) {
			return nil, errors.InvalidData(errors.PhaseParse, nil,
				fmt.Sprintf("tuple %s has %d components, want %d", gt.String(), len(gt.TupleElems), len(p.elems)))
		}
		t := &Type{Kind: KindTuple}
		for i, e := range gt.TupleElems {
			c, err := fromGeth(e, p.elems[i])
			if err != nil {
				return nil, err
			}
			t.Elems = append(t.Elems, c)
			t.Names = append(t.Names, p.elems[i].name)
		}
		return t, nil
	default:
		return nil, errors.New(errors.PhaseParse, errors.KindUnsupported).
			ABIType(gt.String()).
			Detail("ABI type %s has no value encoding", gt.String()).
			Build()
	}
}

// param is one entry of a type list: the canonical type with names and
// whitespace removed, its name, and the components when it holds a tuple.
type param struct {
	name  string
	typ   string
	elems []param
}

func normalize(list string, depth int) ([]param, error) {
	if depth > MaxNesting {
		return nil, errors.TooDeep(errors.PhaseParse, nil, MaxNesting)
	}
	if strings.TrimSpace(list) == "" {
		return nil, nil
	}
	pieces, err := splitParams(list)
	if err != nil {
		return nil, err
	}

	params := make([]param, 0, len(pieces))
	for _, piece := range pieces {
		if piece == "" {
			return nil, errors.InvalidData(errors.PhaseParse, nil, fmt.Sprintf("empty parameter in %q", list))
		}
		typ, name := splitName(piece)
		if name != "" && !isIdent(name) {
			return nil, errors.InvalidData(errors.PhaseParse, nil, fmt.Sprintf("invalid parameter %q", piece))
		}
		p, err := normalizeType(typ, depth)
		if err != nil {
			return nil, err
		}
		p.name = name
		params = append(params, p)
	}
	return params, nil
}

func normalizeType(s string, depth int) (param, error) {
	if strings.HasPrefix(s, "tuple(") {
		s = s[len("tuple"):]
	}

	if strings.HasPrefix(s, "(") {
		end := closing(s)
		if end < 0 {
			return param{}, errors.InvalidData(errors.PhaseParse, nil, fmt.Sprintf("unbalanced parentheses in %q", s))
		}
		elems, err := normalize(s[1:end], depth+1)
		if err != nil {
			return param{}, err
		}
		var sb strings.Builder
		sb.WriteByte('(')
		for i, e := range elems {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(e.typ)
		}
		sb.WriteByte(')')
		sb.WriteString(strings.Join(strings.Fields(s[end+1:]), ""))
		return param{typ: sb.String(), elems: elems}, nil
	}

	if strings.ContainsAny(s, " \t\r\n") {
		return param{}, errors.InvalidData(errors.PhaseParse, nil, fmt.Sprintf("unexpected whitespace in %q", s))
	}
	base, suffix := s, ""
	if i := strings.IndexByte(s, '['); i >= 0 {
		base, suffix = s[:i], s[i:]
	}
	switch base {
	case "uint":
		base = "uint256"
	case "int":
		base = "int256"
	}
	return param{typ: base + suffix}, nil
}

func splitParams(s string) ([]string, error) {
	var result []string
	var current strings.Builder
	depth := 0

	for _, ch := range s {
		switch ch {
		case '(':
			depth++
			current.WriteRune(ch)
		case ')':
			depth--
			if depth < 0 {
				return nil, errors.InvalidData(errors.PhaseParse, nil, fmt.Sprintf("unbalanced parentheses in %q", s))
			}
			current.WriteRune(ch)
		case ',':
			if depth == 0 {
				result = append(result, strings.TrimSpace(current.String()))
				current.Reset()
			} else {
				current.WriteRune(ch)
			}
		default:
			current.WriteRune(ch)
		}
	}
	if depth != 0 {
		return nil, errors.InvalidData(errors.PhaseParse, nil, fmt.Sprintf("unbalanced parentheses in %q", s))
	}

	return append(result, strings.TrimSpace(current.String())), nil
}

// splitName separates a trailing parameter name from its type.
func splitName(piece string) (typ, name string) {
	depth := 0
	for i := len(piece) - 1; i >= 0; i-- {
		switch c := piece[i]; {
		case c == ')':
			depth++
		case c == '(':
			depth--
		case depth == 0 && (c == ' ' || c == '\t' || c == '\r' || c == '\n'):
			return strings.TrimSpace(piece[:i]), piece[i+1:]
		}
	}
	return piece, ""
}

// closing returns the index of the parenthesis closing s[0], or -1.
func closing(s string) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// balanced reports whether the outer parentheses of s enclose all of it.
func balanced(s string) bool {
	end := closing(s)
	return end == len(s)-1
}

func isIdent(s string) bool {
	if s == "" || !isIdentStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isIdentStart(s[i]) && (s[i] < '0' || s[i] > '9') {
			return false
		}
	}
	return true
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
