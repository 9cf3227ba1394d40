package layout

import (
	"sync"

	"github.com/wippyai/evm-abi/transcoder/internal/types"
)

// WordSize matches abi.WordSize.
const WordSize = 32

// Info describes how values of a compiled type sit in a parent's head region.
type Info struct {
	// HeadSize is the number of head bytes: one word for dynamic types, the
	// full inlined size for static ones.
	HeadSize int
	Dynamic  bool
	// Known is false when the shape depends on the value (records,
	// interfaces, recursive pointers).
	Known bool
}

type Calculator struct {
	cache map[*types.CompiledType]Info
	mu    sync.Mutex
}

func NewCalculator() *Calculator {
	return &Calculator{
		cache: make(map[*types.CompiledType]Info),
	}
}

func (c *Calculator) Calculate(ct *types.CompiledType) Info {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calculate(ct, make(map[*types.CompiledType]bool))
}

func (c *Calculator) calculate(ct *types.CompiledType, visiting map[*types.CompiledType]bool) Info {
	if cached, ok := c.cache[ct]; ok {
		return cached
	}
	if visiting[ct] {
		return Info{}
	}
	visiting[ct] = true
	defer delete(visiting, ct)

	var info Info

	switch k := ct.Kind; {
	case ct.IsDeferred():
		info = Info{}
	case k.IsInteger(), k == types.KindBool, k == types.KindAddress, k == types.KindFixedBytes:
		info = Info{HeadSize: WordSize, Known: true}
	case k == types.KindBytes, k == types.KindString, k == types.KindSlice:
		info = Info{HeadSize: WordSize, Dynamic: true, Known: true}
	case k == types.KindStruct:
		info = c.calculateStruct(ct, visiting)
	case k == types.KindArray:
		info = c.calculateArray(ct, visiting)
	case k == types.KindPointer:
		info = c.calculate(ct.Elem, visiting)
	default:
		info = Info{}
	}

	if info.Known {
		c.cache[ct] = info
	}
	return info
}

func (c *Calculator) calculateStruct(ct *types.CompiledType, visiting map[*types.CompiledType]bool) Info {
	size := 0
	for _, f := range ct.Fields {
		fieldInfo := c.calculate(f.Type, visiting)
		if !fieldInfo.Known {
			return Info{}
		}
		if fieldInfo.Dynamic {
			return Info{HeadSize: WordSize, Dynamic: true, Known: true}
		}
		size += fieldInfo.HeadSize
	}
	return Info{HeadSize: size, Known: true}
}

func (c *Calculator) calculateArray(ct *types.CompiledType, visiting map[*types.CompiledType]bool) Info {
	if ct.Len == 0 {
		return Info{Known: true}
	}
	elemInfo := c.calculate(ct.Elem, visiting)
	if !elemInfo.Known {
		return Info{}
	}
	if elemInfo.Dynamic {
		return Info{HeadSize: WordSize, Dynamic: true, Known: true}
	}
	return Info{HeadSize: ct.Len * elemInfo.HeadSize, Known: true}
}
