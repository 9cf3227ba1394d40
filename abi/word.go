package abi

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/wippyai/evm-abi/errors"
)

// WordSize is the width of every head slot, length prefix and offset.
const WordSize = 32

var zeroWord [WordSize]byte

// padLen returns the number of zero bytes needed to align n to a word.
// It is 0 when n is already aligned.
func padLen(n int) int {
	return (WordSize - n%WordSize) % WordSize
}

// AppendInteger appends v as a big-endian word, left padded with zeros.
func AppendInteger(buf []byte, v *uint256.Int) []byte {
	word := v.Bytes32()
	return append(buf, word[:]...)
}

// AppendUint64 is AppendInteger for values that fit a machine word.
func AppendUint64(buf []byte, v uint64) []byte {
	buf = append(buf, zeroWord[:WordSize-8]...)
	return binary.BigEndian.AppendUint64(buf, v)
}

// AppendFixedBytes appends raw at the start of a word, right padded with
// zeros. raw must not be longer than one word.
func AppendFixedBytes(buf []byte, raw []byte) ([]byte, error) {
	if len(raw) > WordSize {
		return buf, errors.FixedBytesTooWide(errors.PhaseBuild, nil, len(raw))
	}
	buf = append(buf, raw...)
	return append(buf, zeroWord[:WordSize-len(raw)]...), nil
}

// AppendAddress appends a 20-byte address occupying the low-order bytes of
// a word, like a number. It is not padded like fixed bytes.
func AppendAddress(buf []byte, addr common.Address) []byte {
	buf = append(buf, zeroWord[:WordSize-common.AddressLength]...)
	return append(buf, addr[:]...)
}

// AppendDynamicBytes appends the length word, the raw bytes and zero padding
// up to the next word boundary. No padding word is added when len(raw) is
// already a multiple of WordSize.
func AppendDynamicBytes(buf []byte, raw []byte) []byte {
	buf = AppendUint64(buf, uint64(len(raw)))
	buf = append(buf, raw...)
	return append(buf, zeroWord[:padLen(len(raw))]...)
}

// dynamicBytesSize is the encoded length AppendDynamicBytes produces.
func dynamicBytesSize(n int) int {
	return WordSize + n + padLen(n)
}
