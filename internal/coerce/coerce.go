package coerce

import (
	"encoding/json"
	"math"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

// maxExactFloat is the largest float64 below which every integer is exact.
const maxExactFloat = 1 << 53

// ToUint256 handles JSON/YAML decoded numbers, numeric strings and the
// big integer types. Negative or fractional values are rejected.
func ToUint256(value any) (*uint256.Int, bool) {
	switch v := value.(type) {
	case *uint256.Int:
		if v == nil {
			return nil, false
		}
		return new(uint256.Int).Set(v), true
	case uint256.Int:
		return new(uint256.Int).Set(&v), true
	case *big.Int:
		if v == nil || v.Sign() < 0 {
			return nil, false
		}
		u, overflow := uint256.FromBig(v)
		return u, !overflow
	case big.Int:
		return ToUint256(&v)
	case uint8:
		return uint256.NewInt(uint64(v)), true
	case uint16:
		return uint256.NewInt(uint64(v)), true
	case uint32:
		return uint256.NewInt(uint64(v)), true
	case uint64:
		return uint256.NewInt(v), true
	case uint:
		return uint256.NewInt(uint64(v)), true
	case int8:
		return fromInt64(int64(v))
	case int16:
		return fromInt64(int64(v))
	case int32:
		return fromInt64(int64(v))
	case int64:
		return fromInt64(v)
	case int:
		return fromInt64(int64(v))
	case float64:
		if v >= 0 && v <= maxExactFloat && v == math.Trunc(v) {
			return uint256.NewInt(uint64(v)), true
		}
	case float32:
		return ToUint256(float64(v))
	case json.Number:
		return ToUint256(string(v))
	case string:
		return parseUint256(v)
	}
	return nil, false
}

func fromInt64(v int64) (*uint256.Int, bool) {
	if v < 0 {
		return nil, false
	}
	return uint256.NewInt(uint64(v)), true
}

// parseUint256 accepts decimal and 0x-prefixed hex.
func parseUint256(s string) (*uint256.Int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		digits := strings.TrimLeft(s[2:], "0")
		if digits == "" {
			return new(uint256.Int), len(s) > 2
		}
		u, err := uint256.FromHex("0x" + digits)
		return u, err == nil
	}
	u, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, false
	}
	return u, true
}

// ToBool accepts booleans, "true"/"false" and the integers 0 and 1.
func ToBool(value any) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true":
			return true, true
		case "false":
			return false, true
		}
	}
	if u, ok := ToUint256(value); ok && u.IsUint64() {
		switch u.Uint64() {
		case 0:
			return false, true
		case 1:
			return true, true
		}
	}
	return false, false
}

// ToBytes accepts byte slices and 0x-prefixed hex strings.
func ToBytes(value any) ([]byte, bool) {
	switch v := value.(type) {
	case []byte:
		return v, true
	case string:
		b, err := hexutil.Decode(v)
		return b, err == nil
	case []any:
		out := make([]byte, len(v))
		for i, e := range v {
			u, ok := ToUint256(e)
			if !ok || !u.IsUint64() || u.Uint64() > math.MaxUint8 {
				return nil, false
			}
			out[i] = byte(u.Uint64())
		}
		return out, true
	}
	return nil, false
}

// ToAddress accepts common.Address, 20-byte slices and hex strings.
func ToAddress(value any) (common.Address, bool) {
	switch v := value.(type) {
	case common.Address:
		return v, true
	case *common.Address:
		if v != nil {
			return *v, true
		}
	case [common.AddressLength]byte:
		return common.Address(v), true
	case []byte:
		if len(v) == common.AddressLength {
			return common.BytesToAddress(v), true
		}
	case string:
		if common.IsHexAddress(v) {
			return common.HexToAddress(v), true
		}
	}
	return common.Address{}, false
}

// ToText accepts strings and byte slices.
func ToText(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case []byte:
		return string(v), true
	}
	return "", false
}
