package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	jsoniter "github.com/json-iterator/go"
	"github.com/tetratelabs/wazero"
	"go.bytecodealliance.org/wit"
	"go.uber.org/zap"

	"github.com/wippyai/evm-abi/abi"
	"github.com/wippyai/evm-abi/abitype"
	"github.com/wippyai/evm-abi/guest"
	"github.com/wippyai/evm-abi/transcoder"
	"github.com/wippyai/evm-abi/witabi"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type options struct {
	signature string
	types     string
	witTypes  string
	values    string
	prefix    string
	jobFile   string
	wasmFile  string
	raw       bool
	demo      bool
}

func main() {
	var (
		opts        options
		verbose     = flag.Bool("v", false, "Verbose logging")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.StringVar(&opts.signature, "sig", "", "Function signature, e.g. transfer(address,uint256)")
	flag.StringVar(&opts.types, "types", "", "Argument types, e.g. uint256,string[]")
	flag.StringVar(&opts.witTypes, "wit", "", "WIT argument types, e.g. u64,string")
	flag.StringVar(&opts.values, "values", "[]", "Argument values as a JSON array")
	flag.StringVar(&opts.prefix, "prefix", "", "Hex bytes written before the encoding (e.g. a selector)")
	flag.StringVar(&opts.jobFile, "f", "", "YAML job file")
	flag.StringVar(&opts.wasmFile, "wasm", "", "Core wasm module to store the encoding in")
	flag.BoolVar(&opts.raw, "raw", false, "Print one hex string instead of 32-byte words")
	flag.BoolVar(&opts.demo, "demo", false, "Encode the built-in demo records")
	flag.Parse()

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err == nil {
			transcoder.SetLogger(logger)
			guest.SetLogger(logger)
			defer func() { _ = logger.Sync() }()
		}
	}

	if *interactive {
		if err := runInteractive(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if opts.signature == "" && opts.types == "" && opts.witTypes == "" && opts.jobFile == "" && !opts.demo {
		fmt.Fprintln(os.Stderr, "Usage: abienc -sig 'f(uint256,string)' -values '[1, \"a\"]' [-prefix 0x...]")
		fmt.Fprintln(os.Stderr, "       abienc -types 'uint256,string' -values '[1, \"a\"]'")
		fmt.Fprintln(os.Stderr, "       abienc -wit 'u64,string' -values '[1, \"a\"]'")
		fmt.Fprintln(os.Stderr, "       abienc -f jobs.yaml")
		fmt.Fprintln(os.Stderr, "       abienc -demo")
		fmt.Fprintln(os.Stderr, "       abienc -i  (interactive mode)")
		os.Exit(1)
	}

	if err := run(context.Background(), os.Stdout, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, w io.Writer, opts options) error {
	r := newRenderer(w)

	if opts.jobFile != "" {
		jobs, err := loadJobs(opts.jobFile)
		if err != nil {
			return err
		}
		for i, job := range jobs {
			v, err := job.build()
			if err != nil {
				return fmt.Errorf("job %d (%s): %w", i, job.title(), err)
			}
			prefix, err := decodePrefix(job.Prefix)
			if err != nil {
				return fmt.Errorf("job %d (%s): %w", i, job.title(), err)
			}
			r.heading(job.title())
			if err := emit(ctx, r, opts, prefix, v); err != nil {
				return err
			}
		}
		return nil
	}

	v, err := buildFromFlags(opts)
	if err != nil {
		return err
	}
	prefix, err := decodePrefix(opts.prefix)
	if err != nil {
		return err
	}
	return emit(ctx, r, opts, prefix, v)
}

func buildFromFlags(opts options) (*abi.Value, error) {
	if opts.demo {
		return buildDemo()
	}

	values, err := decodeValues(opts.values)
	if err != nil {
		return nil, err
	}

	if opts.witTypes != "" {
		var types []wit.Type
		for _, name := range splitTypes(opts.witTypes) {
			t, err := wit.ParseType(name)
			if err != nil {
				return nil, fmt.Errorf("parse WIT type %q: %w", name, err)
			}
			types = append(types, t)
		}
		return witabi.BuildParams(types, values)
	}

	var args *abitype.Type
	if opts.signature != "" {
		_, args, err = abitype.ParseSignature(opts.signature)
	} else {
		args, err = abitype.ParseArgs(opts.types)
	}
	if err != nil {
		return nil, err
	}
	return abitype.Build(args, values)
}

// splitTypes splits a comma separated type list, leaving commas inside
// tuple<...> or list<...> alone.
func splitTypes(s string) []string {
	var (
		result  []string
		current strings.Builder
		depth   int
	)
	for _, ch := range s {
		switch ch {
		case '<', '(':
			depth++
		case '>', ')':
			depth--
		case ',':
			if depth == 0 {
				if str := strings.TrimSpace(current.String()); str != "" {
					result = append(result, str)
				}
				current.Reset()
				continue
			}
		}
		current.WriteRune(ch)
	}
	if str := strings.TrimSpace(current.String()); str != "" {
		result = append(result, str)
	}
	return result
}

func decodeValues(s string) ([]any, error) {
	var values []any
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	if err := dec.Decode(&values); err != nil {
		return nil, fmt.Errorf("parse values: %w", err)
	}
	return values, nil
}

func decodePrefix(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	b, err := hexutil.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("parse prefix: %w", err)
	}
	return b, nil
}

func emit(ctx context.Context, r *renderer, opts options, prefix []byte, v *abi.Value) error {
	buf := v.Encode(prefix)
	if opts.raw {
		r.raw(buf)
	} else {
		r.words(buf, len(prefix))
	}
	if opts.wasmFile == "" {
		return nil
	}
	return storeInModule(ctx, r, opts.wasmFile, v)
}

func storeInModule(ctx context.Context, r *renderer, path string, v *abi.Value) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	mod, err := rt.InstantiateWithConfig(ctx, data, wazero.NewModuleConfig().WithStartFunctions())
	if err != nil {
		return fmt.Errorf("instantiate: %w", err)
	}

	sink, err := guest.NewModuleSink(mod)
	if err != nil {
		return err
	}
	region, err := sink.Store(ctx, v)
	if err != nil {
		return err
	}
	r.note(fmt.Sprintf("stored %d bytes at 0x%x in %s", region.Len, region.Ptr, path))
	return nil
}
