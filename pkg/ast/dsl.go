package ast

import "dolphin/interpreter-go/pkg/runtime"

// Literal helpers.

func Int(value int64) *Literal {
	return NewLiteral(runtime.IntegerValue{Val: value})
}

func Flt(value float64) *Literal {
	return NewLiteral(runtime.FloatValue{Val: value})
}

func Str(value string) *Literal {
	return NewLiteral(runtime.StringValue{Val: value})
}

func Bool(value bool) *Literal {
	return NewLiteral(runtime.BoolValue{Val: value})
}

// Expression helpers.

func Var(name string) *VarRef {
	return NewVarRef(name)
}

func Typed(target runtime.Kind, inner Expression) *TypedExpr {
	return NewTypedExpr(target, inner)
}

func Bin(left Expression, operator string, right Expression) *BinOp {
	return NewBinOp(left, operator, right)
}

func CallExpr(callee string, args ...Expression) *Call {
	return NewCall(callee, args)
}

// Statement helpers.

func Def(name string, init Expression) *VarDef {
	return NewVarDef(name, nil, init)
}

func DefTyped(name string, declared runtime.Kind, init Expression) *VarDef {
	return NewVarDef(name, &declared, init)
}

func PrintArgs(args ...Expression) *Print {
	return NewPrint(args, false)
}

func Expr(expr Expression) *ExprStmt {
	return NewExprStmt(expr)
}
