package host

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.starlark.net/resolve"
	"go.starlark.net/starlark"

	"dolphin/interpreter-go/pkg/runtime"
)

// NamespaceDict is the name under which a block sees the whole namespace as
// a mutable dict. Assigning keys binds variables, including names that are
// not valid identifiers; popping keys unbinds them.
const NamespaceDict = "vars"

func init() {
	// Blocks are scripts, not modules: allow rebinding globals and top-level
	// if/for/while.
	resolve.AllowGlobalReassign = true
	resolve.AllowRecursion = true
}

// StarlarkRunner executes `py` blocks as Starlark, a Python dialect. Every
// namespace variable is predeclared, and the block's top-level bindings are
// copied back into the namespace when it finishes.
type StarlarkRunner struct {
	Stdout   io.Writer
	Filename string
}

// NewStarlarkRunner returns a runner printing to stdout.
func NewStarlarkRunner(stdout io.Writer) *StarlarkRunner {
	if stdout == nil {
		stdout = os.Stdout
	}
	return &StarlarkRunner{Stdout: stdout, Filename: "<py>"}
}

func (r *StarlarkRunner) newThread(name string) *starlark.Thread {
	return &starlark.Thread{
		Name: name,
		Print: func(_ *starlark.Thread, msg string) {
			fmt.Fprintln(r.Stdout, msg)
		},
	}
}

// Exec runs code with ns visible for reading and writing. The thread is
// cancelled when ctx is done.
func (r *StarlarkRunner) Exec(ctx context.Context, code string, ns runtime.Namespace) error {
	thread := r.newThread(r.Filename)
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			thread.Cancel(ctx.Err().Error())
		case <-done:
		}
	}()

	predeclared := make(starlark.StringDict, len(ns)+1)
	originals := make(map[string]starlark.Value, len(ns))
	dict := starlark.NewDict(len(ns))
	for name, value := range ns {
		sv, err := r.toStarlark(value)
		if err != nil {
			return err
		}
		originals[name] = sv
		if err := dict.SetKey(starlark.String(name), sv); err != nil {
			return err
		}
		if _, builtin := starlark.Universe[name]; builtin || name == NamespaceDict {
			continue
		}
		predeclared[name] = sv
	}
	predeclared[NamespaceDict] = dict

	globals, err := starlark.ExecFile(thread, r.Filename, code, predeclared)
	// Bindings made before a failure are kept.
	if werr := r.writeBack(ns, dict, originals, globals); werr != nil && err == nil {
		return werr
	}
	if err != nil {
		if evalErr, ok := err.(*starlark.EvalError); ok {
			return fmt.Errorf("%s", evalErr.Backtrace())
		}
		return err
	}
	return nil
}

// writeBack applies the namespace dict and then the block's globals to ns.
func (r *StarlarkRunner) writeBack(ns runtime.Namespace, dict *starlark.Dict, originals map[string]starlark.Value, globals starlark.StringDict) error {
	seen := make(map[string]bool, dict.Len())
	for _, item := range dict.Items() {
		key, ok := item[0].(starlark.String)
		if !ok {
			continue
		}
		name := string(key)
		seen[name] = true
		if orig, ok := originals[name].(*starlark.Builtin); ok && orig == item[1] {
			// Untouched native function: keep the original value.
			continue
		}
		value, err := r.fromStarlark(item[1])
		if err != nil {
			return err
		}
		ns[name] = value
	}
	for name := range originals {
		if !seen[name] {
			delete(ns, name)
		}
	}
	for name, sv := range globals {
		value, err := r.fromStarlark(sv)
		if err != nil {
			return err
		}
		ns[name] = value
	}
	return nil
}

func (r *StarlarkRunner) toStarlark(v runtime.Value) (starlark.Value, error) {
	switch x := v.(type) {
	case runtime.IntegerValue:
		return starlark.MakeInt64(x.Val), nil
	case runtime.FloatValue:
		return starlark.Float(x.Val), nil
	case runtime.BoolValue:
		return starlark.Bool(x.Val), nil
	case runtime.StringValue:
		return starlark.String(x.Val), nil
	case runtime.VoidValue:
		return starlark.None, nil
	case *runtime.ListValue:
		elems := make([]starlark.Value, 0, len(x.Elements))
		for _, el := range x.Elements {
			sv, err := r.toStarlark(el)
			if err != nil {
				return nil, err
			}
			elems = append(elems, sv)
		}
		return starlark.NewList(elems), nil
	case *runtime.NativeFunctionValue:
		return starlark.NewBuiltin(x.Name, func(_ *starlark.Thread, _ *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			if len(kwargs) > 0 {
				return nil, fmt.Errorf("%s: keyword arguments are not supported", x.Name)
			}
			in := make([]runtime.Value, 0, len(args))
			for _, arg := range args {
				dv, err := r.fromStarlark(arg)
				if err != nil {
					return nil, err
				}
				in = append(in, dv)
			}
			out, err := x.Call(in)
			if err != nil {
				return nil, err
			}
			return r.toStarlark(out)
		}), nil
	default:
		return nil, fmt.Errorf("cannot pass %s value to host code", v.Kind())
	}
}

func (r *StarlarkRunner) fromStarlark(v starlark.Value) (runtime.Value, error) {
	switch x := v.(type) {
	case starlark.NoneType:
		return runtime.VoidValue{}, nil
	case starlark.Bool:
		return runtime.BoolValue{Val: bool(x)}, nil
	case starlark.Int:
		if n, ok := x.Int64(); ok {
			return runtime.IntegerValue{Val: n}, nil
		}
		return runtime.FloatValue{Val: float64(x.Float())}, nil
	case starlark.Float:
		return runtime.FloatValue{Val: float64(x)}, nil
	case starlark.String:
		return runtime.StringValue{Val: string(x)}, nil
	case *starlark.List:
		return r.fromSequence(x)
	case starlark.Tuple:
		return r.fromSequence(x)
	case starlark.Callable:
		return r.fromCallable(x), nil
	default:
		return runtime.StringValue{Val: v.String()}, nil
	}
}

func (r *StarlarkRunner) fromSequence(seq starlark.Indexable) (runtime.Value, error) {
	elems := make([]runtime.Value, 0, seq.Len())
	for i := 0; i < seq.Len(); i++ {
		dv, err := r.fromStarlark(seq.Index(i))
		if err != nil {
			return nil, err
		}
		elems = append(elems, dv)
	}
	return runtime.NewList(elems...), nil
}

// fromCallable exposes a function defined in a block to dolphin calls. Each
// call runs on a fresh thread.
func (r *StarlarkRunner) fromCallable(fn starlark.Callable) *runtime.NativeFunctionValue {
	return &runtime.NativeFunctionValue{
		Name:  fn.Name(),
		Arity: -1,
		Impl: func(args []runtime.Value) (runtime.Value, error) {
			in := make(starlark.Tuple, 0, len(args))
			for _, arg := range args {
				sv, err := r.toStarlark(arg)
				if err != nil {
					return nil, err
				}
				in = append(in, sv)
			}
			out, err := starlark.Call(r.newThread(fn.Name()), fn, in, nil)
			if err != nil {
				return nil, err
			}
			return r.fromStarlark(out)
		},
	}
}
