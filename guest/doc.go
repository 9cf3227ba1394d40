// Package guest places encoded ABI buffers in WebAssembly guest memory.
//
// A Sink wraps a wazero module's exported memory and, when the module
// exports cabi_realloc, allocates exactly Value.Size() bytes for each
// buffer:
//
//	sink, err := guest.NewModuleSink(mod)
//	region, err := sink.Store(ctx, value)
//	// pass region.Ptr, region.Len to a guest export
//	sink.Free(ctx, region)
//
// Without an allocator, StoreAt writes at a caller-chosen offset.
package guest
