package ast

import "dolphin/interpreter-go/pkg/runtime"

type NodeType string

const (
	NodeLiteral    NodeType = "Literal"
	NodeVarRef     NodeType = "VarRef"
	NodeTypedExpr  NodeType = "TypedExpr"
	NodeBinOp      NodeType = "BinOp"
	NodeCall       NodeType = "Call"
	NodeVarDef     NodeType = "VarDef"
	NodePrint      NodeType = "Print"
	NodeShell      NodeType = "Shell"
	NodeSetShell   NodeType = "SetShell"
	NodePythonExec NodeType = "PythonExec"
	NodeExit       NodeType = "Exit"
	NodeClear      NodeType = "Clear"
	NodeHelp       NodeType = "Help"
	NodeExprStmt   NodeType = "ExprStmt"
)

type Node interface {
	NodeType() NodeType
	Line() int
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
	Pos  int      `json:"line,omitempty"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (n nodeImpl) Line() int          { return n.Pos }
func (nodeImpl) isNode()              {}

func (n *nodeImpl) setLine(line int) { n.Pos = line }

// SetLine records the 1-based source line a node was parsed from.
func SetLine(node Node, line int) {
	if node == nil {
		return
	}
	if setter, ok := node.(interface{ setLine(int) }); ok {
		setter.setLine(line)
	}
}

// Marker interfaces. The unexported methods close both sets to this package.

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// Expressions

type Literal struct {
	nodeImpl
	expressionMarker

	Value runtime.Value `json:"value"`
}

func NewLiteral(value runtime.Value) *Literal {
	return &Literal{nodeImpl: newNodeImpl(NodeLiteral), Value: value}
}

type VarRef struct {
	nodeImpl
	expressionMarker

	Name string `json:"name"`
}

func NewVarRef(name string) *VarRef {
	return &VarRef{nodeImpl: newNodeImpl(NodeVarRef), Name: name}
}

// TypedExpr pairs an inner expression with the kind it is converted to at
// evaluation time.
type TypedExpr struct {
	nodeImpl
	expressionMarker

	Target runtime.Kind `json:"target"`
	Inner  Expression   `json:"inner"`
}

func NewTypedExpr(target runtime.Kind, inner Expression) *TypedExpr {
	return &TypedExpr{nodeImpl: newNodeImpl(NodeTypedExpr), Target: target, Inner: inner}
}

type BinOp struct {
	nodeImpl
	expressionMarker

	Left     Expression `json:"left"`
	Operator string     `json:"operator"`
	Right    Expression `json:"right"`
}

func NewBinOp(left Expression, operator string, right Expression) *BinOp {
	return &BinOp{nodeImpl: newNodeImpl(NodeBinOp), Left: left, Operator: operator, Right: right}
}

type Call struct {
	nodeImpl
	expressionMarker

	Callee    string       `json:"callee"`
	Arguments []Expression `json:"arguments"`
}

func NewCall(callee string, args []Expression) *Call {
	return &Call{nodeImpl: newNodeImpl(NodeCall), Callee: callee, Arguments: args}
}

// Statements

// VarDef binds Name to the value of Init. Declared is nil when the kind is
// inferred.
type VarDef struct {
	nodeImpl
	statementMarker

	Name     string        `json:"name"`
	Declared *runtime.Kind `json:"declared,omitempty"`
	Init     Expression    `json:"init"`
}

func NewVarDef(name string, declared *runtime.Kind, init Expression) *VarDef {
	return &VarDef{nodeImpl: newNodeImpl(NodeVarDef), Name: name, Declared: declared, Init: init}
}

// Print writes its arguments space-joined on one line. Strict prints were
// parsed under the grammar that requires every argument to be a TypedExpr.
type Print struct {
	nodeImpl
	statementMarker

	Arguments []Expression `json:"arguments"`
	Strict    bool         `json:"strict,omitempty"`
}

func NewPrint(args []Expression, strict bool) *Print {
	return &Print{nodeImpl: newNodeImpl(NodePrint), Arguments: args, Strict: strict}
}

// Shell carries the raw command text and its tokenized argv.
type Shell struct {
	nodeImpl
	statementMarker

	Command string   `json:"command"`
	Argv    []string `json:"argv"`
}

func NewShell(command string, argv []string) *Shell {
	return &Shell{nodeImpl: newNodeImpl(NodeShell), Command: command, Argv: argv}
}

type SetShell struct {
	nodeImpl
	statementMarker

	Path string `json:"path"`
}

func NewSetShell(path string) *SetShell {
	return &SetShell{nodeImpl: newNodeImpl(NodeSetShell), Path: path}
}

type PythonExec struct {
	nodeImpl
	statementMarker

	Code string `json:"code"`
}

func NewPythonExec(code string) *PythonExec {
	return &PythonExec{nodeImpl: newNodeImpl(NodePythonExec), Code: code}
}

type Exit struct {
	nodeImpl
	statementMarker
}

func NewExit() *Exit {
	return &Exit{nodeImpl: newNodeImpl(NodeExit)}
}

type Clear struct {
	nodeImpl
	statementMarker
}

func NewClear() *Clear {
	return &Clear{nodeImpl: newNodeImpl(NodeClear)}
}

type Help struct {
	nodeImpl
	statementMarker
}

func NewHelp() *Help {
	return &Help{nodeImpl: newNodeImpl(NodeHelp)}
}

type ExprStmt struct {
	nodeImpl
	statementMarker

	Expression Expression `json:"expression"`
}

func NewExprStmt(expr Expression) *ExprStmt {
	return &ExprStmt{nodeImpl: newNodeImpl(NodeExprStmt), Expression: expr}
}
