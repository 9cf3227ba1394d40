package guest

import (
	"context"
	"sync"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/evm-abi/errors"
)

// Memory is the guest linear memory encoded buffers are copied into.
type Memory interface {
	Write(offset uint32, data []byte) error
	Read(offset uint32, length uint32) ([]byte, error)
	Size() uint32
}

// Allocator allocates regions of guest memory.
type Allocator interface {
	Alloc(ctx context.Context, size, align uint32) (uint32, error)
	Free(ctx context.Context, ptr, size, align uint32)
}

// WazeroMemory adapts a wazero memory to Memory.
type WazeroMemory struct {
	mem api.Memory
}

func NewWazeroMemory(mem api.Memory) *WazeroMemory {
	return &WazeroMemory{mem: mem}
}

func (m *WazeroMemory) Read(offset uint32, length uint32) ([]byte, error) {
	data, ok := m.mem.Read(offset, length)
	if !ok {
		return nil, errors.New(errors.PhaseStore, errors.KindOutOfBounds).
			Detail("read out of bounds: offset=%d, length=%d", offset, length).
			Build()
	}
	return data, nil
}

func (m *WazeroMemory) Write(offset uint32, data []byte) error {
	if !m.mem.Write(offset, data) {
		return errors.New(errors.PhaseStore, errors.KindOutOfBounds).
			Detail("write out of bounds: offset=%d, length=%d", offset, len(data)).
			Build()
	}
	return nil
}

func (m *WazeroMemory) Size() uint32 {
	return m.mem.Size()
}

// WazeroAllocator allocates through a guest cabi_realloc export with the
// signature (old_ptr, old_size, align, new_size) -> ptr.
type WazeroAllocator struct {
	realloc  api.Function
	stackBuf []uint64
	mu       sync.Mutex
}

func NewWazeroAllocator(realloc api.Function) *WazeroAllocator {
	return &WazeroAllocator{
		realloc:  realloc,
		stackBuf: make([]uint64, 4),
	}
}

func (a *WazeroAllocator) Alloc(ctx context.Context, size, align uint32) (uint32, error) {
	if a.realloc == nil {
		return 0, errors.AllocationFailed(errors.PhaseStore, size, align)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.stackBuf[0] = 0
	a.stackBuf[1] = 0
	a.stackBuf[2] = uint64(align)
	a.stackBuf[3] = uint64(size)
	if err := a.realloc.CallWithStack(ctx, a.stackBuf[:4]); err != nil {
		return 0, errors.Wrap(errors.PhaseStore, errors.KindAllocation, err, "cabi_realloc trapped")
	}
	ptr := uint32(a.stackBuf[0])
	if ptr == 0 && size > 0 {
		return 0, errors.AllocationFailed(errors.PhaseStore, size, align)
	}
	return ptr, nil
}

func (a *WazeroAllocator) Free(ctx context.Context, ptr, size, align uint32) {
	if a.realloc == nil || ptr == 0 {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.stackBuf[0] = uint64(ptr)
	a.stackBuf[1] = uint64(size)
	a.stackBuf[2] = uint64(align)
	a.stackBuf[3] = 0
	if err := a.realloc.CallWithStack(ctx, a.stackBuf[:4]); err != nil {
		Logger().Warn("Free: failed to call cabi_realloc for deallocation",
			zap.Uint32("ptr", ptr),
			zap.Uint32("size", size),
			zap.Error(err))
	}
}
