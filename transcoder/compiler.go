package transcoder

import (
	"math/big"
	"reflect"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"go.uber.org/zap"

	"github.com/wippyai/evm-abi/abi"
	"github.com/wippyai/evm-abi/errors"
)

var (
	recordType  = reflect.TypeOf((*Record)(nil)).Elem()
	uint256Type = reflect.TypeOf(uint256.Int{})
	bigIntType  = reflect.TypeOf(big.Int{})
	addressType = reflect.TypeOf(common.Address{})
	valueType   = reflect.TypeOf((*abi.Value)(nil))
)

// Compiler selects the construction rule for Go types and caches the result.
// It is safe for concurrent use.
type Compiler struct {
	layout *LayoutCalculator
	cache  sync.Map // reflect.Type -> *CompiledType
}

func NewCompiler() *Compiler {
	return &Compiler{
		layout: NewLayoutCalculator(),
	}
}

// Compile returns the rule for goType, evaluating the rule set on first use.
func (c *Compiler) Compile(goType reflect.Type) (*CompiledType, error) {
	if goType == nil {
		return nil, errors.New(errors.PhaseCompile, errors.KindNilPointer).
			Detail("Go type cannot be nil").
			Build()
	}

	if cached, ok := c.cache.Load(goType); ok {
		return cached.(*CompiledType), nil
	}

	pending := make(map[reflect.Type]*CompiledType)
	ct, err := c.compile(goType, pending, nil)
	if err != nil {
		return nil, err
	}

	// Publish the whole graph so recursive types resolve to shared nodes.
	for t, compiled := range pending {
		c.cache.LoadOrStore(t, compiled)
	}
	Logger().Debug("compiled type",
		zap.Stringer("go_type", goType),
		zap.Stringer("rule", ct.Kind),
		zap.Int("types", len(pending)))

	cached, _ := c.cache.Load(goType)
	return cached.(*CompiledType), nil
}

// Layout reports the type-level head/tail shape of goType.
func (c *Compiler) Layout(goType reflect.Type) (LayoutInfo, error) {
	ct, err := c.Compile(goType)
	if err != nil {
		return LayoutInfo{}, err
	}
	return c.layout.Calculate(ct), nil
}

func (c *Compiler) compile(goType reflect.Type, pending map[reflect.Type]*CompiledType, path []string) (*CompiledType, error) {
	if cached, ok := c.cache.Load(goType); ok {
		return cached.(*CompiledType), nil
	}
	if ct, ok := pending[goType]; ok {
		return ct, nil
	}

	// An explicit field list takes precedence over every structural rule.
	if goType.Implements(recordType) {
		return c.register(pending, &CompiledType{GoType: goType, Kind: KindRecord}), nil
	}
	if goType.Kind() != reflect.Pointer && goType.Kind() != reflect.Interface &&
		reflect.PointerTo(goType).Implements(recordType) {
		return c.register(pending, &CompiledType{GoType: goType, Kind: KindRecord, RecordPtr: true}), nil
	}

	switch goType {
	case valueType:
		return c.register(pending, &CompiledType{GoType: goType, Kind: KindValue}), nil
	case uint256Type:
		return c.register(pending, &CompiledType{GoType: goType, Kind: KindUint256}), nil
	case bigIntType:
		return c.register(pending, &CompiledType{GoType: goType, Kind: KindBigInt}), nil
	case addressType:
		return c.register(pending, &CompiledType{GoType: goType, Kind: KindAddress, Len: common.AddressLength}), nil
	}

	switch goType.Kind() {
	case reflect.Bool:
		return c.register(pending, &CompiledType{GoType: goType, Kind: KindBool}), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return c.register(pending, &CompiledType{GoType: goType, Kind: KindUint}), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return c.register(pending, &CompiledType{GoType: goType, Kind: KindInt}), nil
	case reflect.String:
		return c.register(pending, &CompiledType{GoType: goType, Kind: KindString}), nil
	case reflect.Array:
		return c.compileArray(goType, pending, path)
	case reflect.Slice:
		return c.compileSlice(goType, pending, path)
	case reflect.Struct:
		return c.compileStruct(goType, pending, path)
	case reflect.Pointer:
		return c.compilePointer(goType, pending, path)
	case reflect.Interface:
		return c.register(pending, &CompiledType{GoType: goType, Kind: KindInterface}), nil
	default:
		return nil, errors.New(errors.PhaseCompile, errors.KindUnsupported).
			Path(path...).
			GoType(goType.String()).
			Detail("no encoding rule for %s values", goType.Kind()).
			Build()
	}
}

func (c *Compiler) register(pending map[reflect.Type]*CompiledType, ct *CompiledType) *CompiledType {
	pending[ct.GoType] = ct
	return ct
}

func (c *Compiler) compileArray(goType reflect.Type, pending map[reflect.Type]*CompiledType, path []string) (*CompiledType, error) {
	if goType.Elem().Kind() == reflect.Uint8 {
		if goType.Len() > abi.WordSize {
			return nil, errors.FixedBytesTooWide(errors.PhaseCompile, path, goType.Len())
		}
		return c.register(pending, &CompiledType{GoType: goType, Kind: KindFixedBytes, Len: goType.Len()}), nil
	}

	ct := c.register(pending, &CompiledType{GoType: goType, Kind: KindArray, Len: goType.Len()})
	elem, err := c.compile(goType.Elem(), pending, errors.AppendPath(path, "[elem]"))
	if err != nil {
		return nil, err
	}
	ct.Elem = elem
	return ct, nil
}

func (c *Compiler) compileSlice(goType reflect.Type, pending map[reflect.Type]*CompiledType, path []string) (*CompiledType, error) {
	if goType.Elem().Kind() == reflect.Uint8 {
		return c.register(pending, &CompiledType{GoType: goType, Kind: KindBytes}), nil
	}

	ct := c.register(pending, &CompiledType{GoType: goType, Kind: KindSlice})
	elem, err := c.compile(goType.Elem(), pending, errors.AppendPath(path, "[elem]"))
	if err != nil {
		return nil, err
	}
	ct.Elem = elem
	return ct, nil
}

func (c *Compiler) compilePointer(goType reflect.Type, pending map[reflect.Type]*CompiledType, path []string) (*CompiledType, error) {
	ct := c.register(pending, &CompiledType{GoType: goType, Kind: KindPointer})
	elem, err := c.compile(goType.Elem(), pending, path)
	if err != nil {
		return nil, err
	}
	ct.Elem = elem
	return ct, nil
}

func (c *Compiler) compileStruct(goType reflect.Type, pending map[reflect.Type]*CompiledType, path []string) (*CompiledType, error) {
	ct := c.register(pending, &CompiledType{GoType: goType, Kind: KindStruct})
	fields := make([]CompiledField, 0, goType.NumField())

	for i := 0; i < goType.NumField(); i++ {
		goField := goType.Field(i)
		name, ok := fieldName(goField)
		if !ok {
			continue
		}

		fieldType, err := c.compile(goField.Type, pending, errors.AppendPath(path, name))
		if err != nil {
			return nil, err
		}
		fields = append(fields, CompiledField{
			Type:  fieldType,
			Name:  name,
			Index: i,
		})
	}

	ct.Fields = fields
	return ct, nil
}

// fieldName resolves the encoded name of a struct field: exported fields in
// declaration order, renamed by an abi:"name" tag, skipped by abi:"-".
func fieldName(field reflect.StructField) (string, bool) {
	if !field.IsExported() {
		return "", false
	}
	switch tag := field.Tag.Get("abi"); tag {
	case "-":
		return "", false
	case "":
		return field.Name, true
	default:
		return tag, true
	}
}
