package guest

import (
	"context"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/evm-abi/abi"
	"github.com/wippyai/evm-abi/errors"
)

// ReallocExport is the allocator export looked up by NewModuleSink.
const ReallocExport = "cabi_realloc"

// DefaultAlign is the alignment requested for encoded buffers.
const DefaultAlign = 8

// Region is an encoded buffer placed in guest memory.
type Region struct {
	Ptr uint32
	Len uint32
}

type Config struct {
	// Allocator is optional; without one only StoreAt is available.
	Allocator Allocator
	// Align is the alignment requested from the allocator.
	Align uint32
}

// Sink copies encoded value trees into guest linear memory.
type Sink struct {
	mem   Memory
	alloc Allocator
	align uint32
}

func NewSink(mem Memory) *Sink {
	return NewSinkWithConfig(mem, Config{})
}

func NewSinkWithConfig(mem Memory, cfg Config) *Sink {
	if cfg.Align == 0 {
		cfg.Align = DefaultAlign
	}
	return &Sink{
		mem:   mem,
		alloc: cfg.Allocator,
		align: cfg.Align,
	}
}

// NewModuleSink targets the exported memory of mod, allocating through its
// cabi_realloc export when there is one.
func NewModuleSink(mod api.Module) (*Sink, error) {
	mem := mod.Memory()
	if mem == nil {
		return nil, errors.New(errors.PhaseStore, errors.KindUnsupported).
			Detail("module %q exports no memory", mod.Name()).
			Build()
	}

	cfg := Config{}
	if fn := mod.ExportedFunction(ReallocExport); fn != nil {
		cfg.Allocator = NewWazeroAllocator(fn)
	} else {
		Logger().Debug("module has no allocator export, only fixed offsets are available",
			zap.String("module", mod.Name()))
	}
	return NewSinkWithConfig(NewWazeroMemory(mem), cfg), nil
}

// StoreAt writes the encoding of v at offset and returns its length.
func (s *Sink) StoreAt(offset uint32, v *abi.Value) (uint32, error) {
	if v == nil {
		return 0, errors.InvalidInput(errors.PhaseStore, "cannot store a nil value")
	}
	size := v.Size()
	if uint64(offset)+uint64(size) > uint64(s.mem.Size()) {
		return 0, errors.New(errors.PhaseStore, errors.KindOutOfBounds).
			Value(offset).
			Detail("%d bytes at offset %d exceed memory size %d", size, offset, s.mem.Size()).
			Build()
	}

	buf := v.Encode(make([]byte, 0, size))
	if err := s.mem.Write(offset, buf); err != nil {
		return 0, err
	}
	return uint32(len(buf)), nil
}

// Store allocates a region for the encoding of v and writes it there.
func (s *Sink) Store(ctx context.Context, v *abi.Value) (Region, error) {
	if v == nil {
		return Region{}, errors.InvalidInput(errors.PhaseStore, "cannot store a nil value")
	}
	if s.alloc == nil {
		return Region{}, errors.New(errors.PhaseStore, errors.KindAllocation).
			Detail("no allocator configured").
			Build()
	}

	size := uint32(v.Size())
	ptr, err := s.alloc.Alloc(ctx, size, s.align)
	if err != nil {
		return Region{}, err
	}

	n, err := s.StoreAt(ptr, v)
	if err != nil {
		s.alloc.Free(ctx, ptr, size, s.align)
		return Region{}, err
	}

	Logger().Debug("stored value",
		zap.Uint32("ptr", ptr),
		zap.Uint32("len", n))
	return Region{Ptr: ptr, Len: n}, nil
}

// Free releases a region returned by Store.
func (s *Sink) Free(ctx context.Context, r Region) {
	if s.alloc == nil {
		return
	}
	s.alloc.Free(ctx, r.Ptr, r.Len, s.align)
}

// Load reads a stored region back.
func (s *Sink) Load(r Region) ([]byte, error) {
	data, err := s.mem.Read(r.Ptr, r.Len)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}
