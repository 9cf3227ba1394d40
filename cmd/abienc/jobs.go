package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/evm-abi/abi"
	"github.com/wippyai/evm-abi/abitype"
)

// jobFile is the YAML layout accepted by -f:
//
//	jobs:
//	  - name: transfer
//	    signature: transfer(address to, uint256 amount)
//	    prefix: "0xa9059cbb"
//	    values:
//	      to: "0x00000000000000000000000000000000000000aa"
//	      amount: 1000
type jobFile struct {
	Jobs []job `yaml:"jobs"`
}

type job struct {
	// Values is a sequence, or a mapping keyed by parameter name.
	Values    any    `yaml:"values"`
	Name      string `yaml:"name"`
	Signature string `yaml:"signature"`
	Types     string `yaml:"types"`
	Prefix    string `yaml:"prefix"`
}

func loadJobs(path string) ([]job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read job file: %w", err)
	}
	return parseJobs(data)
}

func parseJobs(data []byte) ([]job, error) {
	var f jobFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse job file: %w", err)
	}
	if len(f.Jobs) == 0 {
		return nil, fmt.Errorf("job file has no jobs")
	}
	return f.Jobs, nil
}

func (j job) title() string {
	switch {
	case j.Name != "":
		return j.Name
	case j.Signature != "":
		return j.Signature
	default:
		return j.Types
	}
}

func (j job) build() (*abi.Value, error) {
	var (
		args *abitype.Type
		err  error
	)
	switch {
	case j.Signature != "":
		_, args, err = abitype.ParseSignature(j.Signature)
	case j.Types != "":
		args, err = abitype.ParseArgs(j.Types)
	default:
		return nil, fmt.Errorf("job needs a signature or types")
	}
	if err != nil {
		return nil, err
	}

	values := j.Values
	if values == nil {
		values = []any{}
	}
	return abitype.Build(args, values)
}
