package typechecker

import (
	"errors"
	"strings"
	"testing"

	"dolphin/interpreter-go/pkg/ast"
	"dolphin/interpreter-go/pkg/parser"
	"dolphin/interpreter-go/pkg/runtime"
)

func mustParse(t *testing.T, src string) []ast.Statement {
	t.Helper()
	stmts, err := parser.ParseProgram(src)
	if err != nil {
		t.Fatalf("ParseProgram(%q): %v", src, err)
	}
	return stmts
}

func TestCheckerInfersKinds(t *testing.T) {
	cases := []struct {
		src  string
		name string
		want runtime.Kind
	}{
		{"var x = 5", "x", runtime.KindInt},
		{"var x = 2.5", "x", runtime.KindFloat},
		{`var x = "hi"`, "x", runtime.KindString},
		{"var x = true", "x", runtime.KindBool},
		{"var x:int = 2+3", "x", runtime.KindInt},
		{`var s:str = "a"+"b"`, "s", runtime.KindString},
		{"var x = 1; var y = x * 4", "y", runtime.KindInt},
		{"var b = 1 < 2", "b", runtime.KindBool},
		{"var c = len(\"abc\")", "c", runtime.KindVoid},
		{"var u = missing", "u", runtime.KindVoid},
		{"var f = float:2.5", "f", runtime.KindFloat},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			c := New()
			env := make(Environment)
			for _, stmt := range mustParse(t, tc.src) {
				if diags := c.CheckStatement(env, stmt); len(diags) != 0 {
					t.Fatalf("unexpected diagnostics: %v", diags)
				}
			}
			got, ok := env.Lookup(tc.name)
			if !ok || got != tc.want {
				t.Fatalf("kind of %s = %s (found=%v), want %s", tc.name, got, ok, tc.want)
			}
		})
	}
}

func TestCheckerRejectsMismatches(t *testing.T) {
	cases := []struct {
		src     string
		snippet string
	}{
		{`var x:int = "a"+"b"`, "declared as int but initializer is str"},
		{`var x = 1 + "a"`, "operands differ: int and str"},
		{`var x = 1 + 2.0`, "operands differ: int and float"},
		{`var x:float = 3`, "declared as float"},
		{`var f = float:2`, "annotation float does not match expression of kind int"},
		{`var x = int:"5"`, "annotation int does not match expression of kind str"},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			err := Check(mustParse(t, tc.src), nil)
			var typeErr *runtime.TypeError
			if !errors.As(err, &typeErr) {
				t.Fatalf("expected TypeError, got %v", err)
			}
			if !strings.Contains(typeErr.Message, tc.snippet) {
				t.Fatalf("message %q missing %q", typeErr.Message, tc.snippet)
			}
		})
	}
}

func TestCheckerSeedsFromContextWithoutMutatingIt(t *testing.T) {
	ctx := runtime.NewEnvironment("")
	ctx.Bind("n", runtime.IntegerValue{Val: 1})

	if err := Check(mustParse(t, "var m:int = n + 1; var k = 4"), ctx); err != nil {
		t.Fatalf("Check: %v", err)
	}
	if _, ok := ctx.TypeOf("m"); ok {
		t.Fatalf("checker must not record kinds in the context")
	}

	err := Check(mustParse(t, `var m:str = n`), ctx)
	if err == nil {
		t.Fatalf("expected mismatch against seeded kind")
	}
}

func TestCheckerIgnoresOtherStatements(t *testing.T) {
	src := `print(int:"x"); sh ls; py x = 1; help; 1 + "a"`
	if diags := New().CheckProgram(mustParse(t, src), nil); len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}
	built := []ast.Statement{
		ast.PrintArgs(ast.Typed(runtime.KindInt, ast.Str("x"))),
		ast.Expr(ast.Bin(ast.Int(1), "+", ast.Str("a"))),
	}
	if diags := New().CheckProgram(built, nil); len(diags) != 0 {
		t.Fatalf("expected no diagnostics for built statements, got %v", diags)
	}
}

func TestCheckerCollectsAllDiagnostics(t *testing.T) {
	stmts := []ast.Statement{
		ast.DefTyped("a", runtime.KindInt, ast.Str("x")),
		ast.Def("b", ast.Bin(ast.Var("a"), "+", ast.Int(1))),
		ast.Def("c", ast.Bin(ast.Flt(1), "+", ast.Int(1))),
	}
	for i, stmt := range stmts {
		ast.SetLine(stmt, i+1)
	}
	diags := New().CheckProgram(stmts, nil)
	if len(diags) != 2 {
		t.Fatalf("expected 2 diagnostics, got %v", diags)
	}
	if diags[0].Node.Line() != 1 || diags[1].Node.Line() != 3 {
		t.Fatalf("unexpected diagnostic lines: %v", diags)
	}
	if !strings.HasPrefix(diags[1].Error(), "line 3: ") {
		t.Fatalf("diagnostic text %q", diags[1].Error())
	}
}

func TestInferredKindRecorded(t *testing.T) {
	expr := ast.Bin(ast.Int(1), "==", ast.Int(2))
	c := New()
	if diags := c.CheckProgram([]ast.Statement{ast.Def("eq", expr)}, nil); len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	kind, ok := c.InferredKind(expr)
	if !ok || kind != runtime.KindBool {
		t.Fatalf("InferredKind = %s (%v), want bool", kind, ok)
	}
}
