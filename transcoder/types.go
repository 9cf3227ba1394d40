package transcoder

import (
	"github.com/wippyai/evm-abi/transcoder/internal/types"
)

type TypeKind = types.Kind

const (
	KindBool       = types.KindBool
	KindUint       = types.KindUint
	KindInt        = types.KindInt
	KindUint256    = types.KindUint256
	KindBigInt     = types.KindBigInt
	KindAddress    = types.KindAddress
	KindFixedBytes = types.KindFixedBytes
	KindBytes      = types.KindBytes
	KindString     = types.KindString
	KindRecord     = types.KindRecord
	KindStruct     = types.KindStruct
	KindArray      = types.KindArray
	KindSlice      = types.KindSlice
	KindPointer    = types.KindPointer
	KindInterface  = types.KindInterface
	KindValue      = types.KindValue
)

type CompiledType = types.CompiledType
type CompiledField = types.Field
