package main

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/wippyai/evm-abi/abi"
	"github.com/wippyai/evm-abi/transcoder"
)

type demoSimple struct {
	A uint64
	B []uint32
	C [10]byte
	D string
}

type demoNested struct {
	A [][]uint256.Int
	B []string
}

type demoBytes struct {
	A []byte
	B common.Address
	C bool
}

type demoAll struct {
	A demoSimple
	B demoNested
	C demoBytes
}

func demoRecord() demoAll {
	return demoAll{
		A: demoSimple{
			A: 0x123,
			B: []uint32{0x456, 0x789},
			C: [10]byte{'1', '2', '3', '4', '5', '6', '7', '8', '9', '0'},
			D: "Hello, world!",
		},
		B: demoNested{
			A: [][]uint256.Int{
				{*uint256.NewInt(1), *uint256.NewInt(2)},
				{*uint256.NewInt(3)},
			},
			B: []string{"one", "two", "three"},
		},
		C: demoBytes{
			A: []byte("1234567890"),
			B: common.Address{0xbb, 0xbb},
			C: true,
		},
	}
}

// buildDemo encodes one demo record followed by a list of three.
func buildDemo() (*abi.Value, error) {
	rec := demoRecord()
	return transcoder.NewEncoder().BuildArgs(rec, []demoAll{rec, rec, rec})
}
