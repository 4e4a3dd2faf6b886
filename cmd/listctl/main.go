package main

import (
	"flag"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	listbridge "github.com/wippyai/list-bridge"
	"github.com/wippyai/list-bridge/bind"
	"github.com/wippyai/list-bridge/marshal"
	"github.com/wippyai/list-bridge/nlist"
	"github.com/wippyai/list-bridge/seq"
	"github.com/wippyai/list-bridge/wrap"
)

// point is the sample composite element type for -elem point.
type point struct {
	X     int64
	Y     int64
	Label string
}

func main() {
	var (
		elemName    = flag.String("elem", "int", "Element type: int, uint, float, bool, bytes, point")
		ops         = flag.String("ops", "", "Operations to run (comma-separated, e.g. append=1,append=2,pop=0,len)")
		quota       = flag.Int("quota", 0, "Allocator quota in units, 0 for unlimited")
		verbose     = flag.Bool("v", false, "Verbose logging")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *verbose {
		log, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		seq.SetLogger(log)
		bind.SetLogger(log)
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(*elemName, *quota); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *ops == "" {
		fmt.Fprintln(os.Stderr, "Usage: listctl -elem <type> -ops <op,op,...>")
		fmt.Fprintln(os.Stderr, "       listctl -elem <type> -i  (interactive mode)")
		fmt.Fprintln(os.Stderr, "Ops: append=V insert=IDX:V get=IDX pop[=IDX] remove=IDX len clear iterate eq=V,V,...")
		os.Exit(1)
	}

	if err := run(*elemName, *ops, *quota); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func elemType(name string) (reflect.Type, error) {
	switch name {
	case "int":
		return reflect.TypeOf(int64(0)), nil
	case "uint":
		return reflect.TypeOf(uint64(0)), nil
	case "float":
		return reflect.TypeOf(float64(0)), nil
	case "bool":
		return reflect.TypeOf(false), nil
	case "bytes":
		return reflect.TypeOf([]byte(nil)), nil
	case "point":
		return reflect.TypeOf(point{}), nil
	}
	return nil, fmt.Errorf("unknown element type %q", name)
}

func newAdapter(elemName string, quota int) (*seq.Adapter, *bind.Bindings, error) {
	t, err := elemType(elemName)
	if err != nil {
		return nil, nil, err
	}

	var alloc listbridge.Allocator
	if quota > 0 {
		alloc = listbridge.NewQuota(quota)
	}

	b, err := bind.Default.Register(t)
	if err != nil {
		return nil, nil, err
	}
	return b.NewAdapter(nlist.New(alloc)), b, nil
}

func run(elemName, opsStr string, quota int) error {
	a, b, err := newAdapter(elemName, quota)
	if err != nil {
		return err
	}

	for _, op := range strings.Split(opsStr, ",") {
		op = strings.TrimSpace(op)
		if op == "" {
			continue
		}
		name, args, err := parseOp(a, op)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		result, err := b.Call(a, name, args...)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if result != nil {
			fmt.Printf("%s -> %s\n", op, formatResult(a, result))
		} else {
			fmt.Printf("%s -> ok\n", op)
		}
	}

	snap, err := a.Snapshot()
	if err != nil {
		return err
	}
	fmt.Printf("sequence: %s\n", formatSnapshot(a, snap))
	return nil
}

// parseOp turns "append=1" or "insert=0:9" into a hook name and arguments.
func parseOp(a *seq.Adapter, op string) (string, []any, error) {
	name, arg, hasArg := strings.Cut(op, "=")
	switch name {
	case "len", "clear", "iterate":
		return name, nil, nil

	case "get":
		idx, err := strconv.Atoi(arg)
		if err != nil {
			return "", nil, fmt.Errorf("bad index %q", arg)
		}
		return "get-item", []any{idx}, nil

	case "pop":
		if !hasArg {
			return "pop", nil, nil
		}
		idx, err := strconv.Atoi(arg)
		if err != nil {
			return "", nil, fmt.Errorf("bad index %q", arg)
		}
		return "pop", []any{idx}, nil

	case "append":
		v, err := parseValue(a, arg)
		if err != nil {
			return "", nil, err
		}
		return "append", []any{v}, nil

	case "insert":
		idxStr, valStr, ok := strings.Cut(arg, ":")
		if !ok {
			return "", nil, fmt.Errorf("insert wants IDX:VALUE, got %q", arg)
		}
		idx, err := strconv.Atoi(idxStr)
		if err != nil {
			return "", nil, fmt.Errorf("bad index %q", idxStr)
		}
		v, err := parseValue(a, valStr)
		if err != nil {
			return "", nil, err
		}
		return "insert", []any{idx, v}, nil

	case "remove":
		// remove addresses by index here; the wrapper is fetched first
		idx, err := strconv.Atoi(arg)
		if err != nil {
			return "", nil, fmt.Errorf("bad index %q", arg)
		}
		w, err := a.Get(idx)
		if err != nil {
			return "", nil, err
		}
		return "remove", []any{w}, nil

	case "eq":
		var other []any
		if arg != "" {
			for _, part := range strings.Split(arg, ";") {
				v, err := parseValue(a, part)
				if err != nil {
					return "", nil, err
				}
				other = append(other, v)
			}
		}
		return "compare", []any{"eq", other}, nil
	}
	return "", nil, fmt.Errorf("unknown op %q", name)
}

// parseValue reads one element literal according to the adapter's element
// type. Composite literals use x:y:label.
func parseValue(a *seq.Adapter, s string) (any, error) {
	switch a.ElemType().GoType.Kind() {
	case reflect.Bool:
		return s == "true" || s == "1", nil
	case reflect.Int64:
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad int %q", s)
		}
		return v, nil
	case reflect.Uint64:
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad uint %q", s)
		}
		return v, nil
	case reflect.Float64:
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("bad float %q", s)
		}
		return v, nil
	case reflect.Slice:
		return s, nil
	case reflect.Struct:
		parts := strings.SplitN(s, ":", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("point wants X:Y:LABEL, got %q", s)
		}
		x, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad x %q", parts[0])
		}
		y, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad y %q", parts[1])
		}
		return map[string]any{"x": x, "y": y, "label": parts[2]}, nil
	}
	return nil, fmt.Errorf("unsupported element type")
}

// copier renders composites for display; CopyOut never allocates native
// storage, so no allocator is involved.
var copier = marshal.New(nil)

func formatResult(a *seq.Adapter, v any) string {
	switch r := v.(type) {
	case *wrap.Wrapper:
		raw, ok := r.Value()
		if !ok {
			return "<stale>"
		}
		out, err := copier.CopyOut(a.ElemType(), raw)
		if err != nil {
			return fmt.Sprintf("%v", raw)
		}
		return fmt.Sprintf("%v", out)
	case *seq.Iterator:
		var items []string
		for {
			item, ok := r.Next()
			if !ok {
				break
			}
			items = append(items, formatResult(a, item))
		}
		return "[" + strings.Join(items, " ") + "]"
	case string:
		return strconv.Quote(r)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func formatSnapshot(a *seq.Adapter, snap []any) string {
	items := make([]string, len(snap))
	for i, v := range snap {
		items[i] = formatResult(a, v)
	}
	return "[" + strings.Join(items, " ") + "]"
}
