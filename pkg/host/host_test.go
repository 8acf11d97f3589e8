package host

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"
	"time"

	"dolphin/interpreter-go/pkg/runtime"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath(runtime.DefaultShell); err != nil {
		t.Skipf("%s not available: %v", runtime.DefaultShell, err)
	}
}

func TestShellRunnerUsesShell(t *testing.T) {
	requireShell(t)
	var out bytes.Buffer
	r := &ShellRunner{Stdout: &out, Stderr: &out}
	if err := r.Run(context.Background(), runtime.DefaultShell, `echo "hello world" | tr a-z A-Z`, nil); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := out.String(); got != "HELLO WORLD\n" {
		t.Fatalf("output = %q", got)
	}
}

func TestShellRunnerReportsExitStatus(t *testing.T) {
	requireShell(t)
	r := &ShellRunner{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	err := r.Run(context.Background(), runtime.DefaultShell, "exit 3", nil)
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *exec.ExitError, got %v", err)
	}
	if exitErr.ExitCode() != 3 {
		t.Fatalf("exit code = %d", exitErr.ExitCode())
	}
}

func TestShellRunnerDirectArgv(t *testing.T) {
	if _, err := exec.LookPath("echo"); err != nil {
		t.Skipf("echo not available: %v", err)
	}
	var out bytes.Buffer
	r := &ShellRunner{Stdout: &out}
	if err := r.Run(context.Background(), "", `echo "a b"`, []string{"echo", `"a b"`}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := out.String(); got != "a b\n" {
		t.Fatalf("output = %q", got)
	}
	if err := r.Run(context.Background(), "", "", nil); err == nil {
		t.Fatalf("expected error for empty argv")
	}
}

func TestTerminalClear(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTerminalWriter(&buf, false).Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("non-interactive clear wrote %q", buf.String())
	}
	if err := NewTerminalWriter(&buf, true).Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if buf.String() != clearSequence {
		t.Fatalf("interactive clear wrote %q", buf.String())
	}
}

func TestStarlarkReadsAndBindsNames(t *testing.T) {
	var out bytes.Buffer
	r := NewStarlarkRunner(&out)
	ns := runtime.Namespace{"x": runtime.IntegerValue{Val: 21}}
	if err := r.Exec(context.Background(), "y = x * 2\nprint('y is', y)", ns); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if ns["y"] != (runtime.IntegerValue{Val: 42}) {
		t.Fatalf("y = %#v", ns["y"])
	}
	if out.String() != "y is 42\n" {
		t.Fatalf("output = %q", out.String())
	}
	if err := r.Exec(context.Background(), "x = x + 1", ns); err != nil {
		t.Fatalf("reassigning a namespace name: %v", err)
	}
	if ns["x"] != (runtime.IntegerValue{Val: 22}) {
		t.Fatalf("x = %#v", ns["x"])
	}
}

func TestStarlarkNamespaceDict(t *testing.T) {
	r := NewStarlarkRunner(&bytes.Buffer{})
	ns := runtime.Namespace{
		"x":    runtime.IntegerValue{Val: 1},
		"gone": runtime.StringValue{Val: "bye"},
		"xs":   runtime.NewList(runtime.IntegerValue{Val: 1}),
	}
	code := strings.Join([]string{
		`vars["x"] = vars["x"] + 1`,
		`vars.pop("gone")`,
		`xs.append(2.5)`,
	}, "\n")
	if err := r.Exec(context.Background(), code, ns); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if ns["x"] != (runtime.IntegerValue{Val: 2}) {
		t.Fatalf("x = %#v", ns["x"])
	}
	if _, ok := ns["gone"]; ok {
		t.Fatalf("gone should have been removed")
	}
	want := runtime.NewList(runtime.IntegerValue{Val: 1}, runtime.FloatValue{Val: 2.5})
	if !runtime.ValuesEqual(ns["xs"], want) {
		t.Fatalf("xs = %s", ns["xs"])
	}
}

func TestStarlarkFunctionsCrossBothWays(t *testing.T) {
	r := NewStarlarkRunner(&bytes.Buffer{})
	shout := &runtime.NativeFunctionValue{Name: "shout", Arity: 1, Impl: func(args []runtime.Value) (runtime.Value, error) {
		return runtime.StringValue{Val: strings.ToUpper(args[0].String()) + "!"}, nil
	}}
	ns := runtime.Namespace{"shout": shout}
	code := "greeting = shout('hi')\ndef double(n):\n    return n * 2\n"
	if err := r.Exec(context.Background(), code, ns); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if ns["greeting"] != (runtime.StringValue{Val: "HI!"}) {
		t.Fatalf("greeting = %#v", ns["greeting"])
	}
	if ns["shout"] != runtime.Value(shout) {
		t.Fatalf("untouched native function should be kept as is")
	}
	double, ok := ns["double"].(*runtime.NativeFunctionValue)
	if !ok {
		t.Fatalf("double = %#v", ns["double"])
	}
	got, err := double.Call([]runtime.Value{runtime.IntegerValue{Val: 4}})
	if err != nil {
		t.Fatalf("double: %v", err)
	}
	if got != (runtime.IntegerValue{Val: 8}) {
		t.Fatalf("double(4) = %#v", got)
	}
}

func TestStarlarkErrors(t *testing.T) {
	r := NewStarlarkRunner(&bytes.Buffer{})
	ns := runtime.Namespace{}
	if err := r.Exec(context.Background(), "z = undefined_name + 1", ns); err == nil {
		t.Fatalf("expected resolve error")
	}
	if err := r.Exec(context.Background(), "fail('boom')", ns); err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected fail() error, got %v", err)
	}
}

func TestStarlarkKeepsBindingsMadeBeforeFailure(t *testing.T) {
	r := NewStarlarkRunner(&bytes.Buffer{})
	ns := runtime.Namespace{"x": runtime.IntegerValue{Val: 1}, "gone": runtime.BoolValue{Val: true}}
	code := strings.Join([]string{
		`vars["x"] = 42`,
		`vars.pop("gone")`,
		`y = "set"`,
		`fail("boom")`,
		`z = 1`,
	}, "\n")
	if err := r.Exec(context.Background(), code, ns); err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected fail() error, got %v", err)
	}
	if ns["x"] != (runtime.IntegerValue{Val: 42}) {
		t.Fatalf("x = %#v", ns["x"])
	}
	if ns["y"] != (runtime.StringValue{Val: "set"}) {
		t.Fatalf("y = %#v", ns["y"])
	}
	if _, ok := ns["gone"]; ok {
		t.Fatalf("gone should have been removed")
	}
	if _, ok := ns["z"]; ok {
		t.Fatalf("z was never reached, got %#v", ns["z"])
	}
}

func TestStarlarkCancellation(t *testing.T) {
	r := NewStarlarkRunner(&bytes.Buffer{})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := r.Exec(ctx, "while True:\n    pass\n", runtime.Namespace{})
	if err == nil {
		t.Fatalf("expected cancellation error")
	}
}
