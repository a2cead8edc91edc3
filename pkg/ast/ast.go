package ast

import "fmt"

type NodeType string

const (
	NodeIntegerLiteral       NodeType = "IntegerLiteral"
	NodeFloatLiteral         NodeType = "FloatLiteral"
	NodeBooleanLiteral       NodeType = "BooleanLiteral"
	NodeStringLiteral        NodeType = "StringLiteral"
	NodeIdentifier           NodeType = "Identifier"
	NodeTupleLiteral         NodeType = "TupleLiteral"
	NodeUnaryExpression      NodeType = "UnaryExpression"
	NodeBinaryExpression     NodeType = "BinaryExpression"
	NodeLogicalExpression    NodeType = "LogicalExpression"
	NodeIndexExpression      NodeType = "IndexExpression"
	NodeFunctionLiteral      NodeType = "FunctionLiteral"
	NodeCallExpression       NodeType = "CallExpression"
	NodeTypeAnnotation       NodeType = "TypeAnnotation"
	NodeVariableDeclaration  NodeType = "VariableDeclaration"
	NodeAssignmentStatement  NodeType = "AssignmentStatement"
	NodeExpressionStatement  NodeType = "ExpressionStatement"
	NodeBlockStatement       NodeType = "BlockStatement"
	NodeIfStatement          NodeType = "IfStatement"
	NodeLoopStatement        NodeType = "LoopStatement"
	NodeBreakStatement       NodeType = "BreakStatement"
	NodeReturnStatement      NodeType = "ReturnStatement"
	NodeEmptyStatement       NodeType = "EmptyStatement"
)

// Span is a half-open byte-offset range into the original source text,
// attached by the parser that produced the tree.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

type Node interface {
	NodeType() NodeType
	Pos() Span
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
	Span Span     `json:"span"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (n nodeImpl) Pos() Span          { return n.Span }
func (nodeImpl) isNode()              {}

// SetSpan attaches a source span; parsers and decoders call this after
// construction.
func (n *nodeImpl) SetSpan(span Span) { n.Span = span }

// Marker interfaces.

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

// Operators.

type BinaryOp string

const (
	OpAdd                BinaryOp = "+"
	OpSub                BinaryOp = "-"
	OpMul                BinaryOp = "*"
	OpDiv                BinaryOp = "/"
	OpFloorDiv           BinaryOp = "//"
	OpLessThan           BinaryOp = "<"
	OpLessThanOrEqual    BinaryOp = "<="
	OpGreaterThan        BinaryOp = ">"
	OpGreaterThanOrEqual BinaryOp = ">="
	OpStrictEquals       BinaryOp = "=="
)

type UnaryOp string

const (
	OpNeg UnaryOp = "-"
	OpNot UnaryOp = "not"
)

type LogicalOp string

const (
	OpAnd LogicalOp = "and"
	OpOr  LogicalOp = "or"
)

// Expressions.

type Identifier struct {
	nodeImpl
	expressionMarker

	Name string `json:"name"`
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}

type IntegerLiteral struct {
	nodeImpl
	expressionMarker

	Value int64 `json:"value"`
}

func NewIntegerLiteral(value int64) *IntegerLiteral {
	return &IntegerLiteral{nodeImpl: newNodeImpl(NodeIntegerLiteral), Value: value}
}

type FloatLiteral struct {
	nodeImpl
	expressionMarker

	Value float64 `json:"value"`
}

func NewFloatLiteral(value float64) *FloatLiteral {
	return &FloatLiteral{nodeImpl: newNodeImpl(NodeFloatLiteral), Value: value}
}

type BooleanLiteral struct {
	nodeImpl
	expressionMarker

	Value bool `json:"value"`
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

type StringLiteral struct {
	nodeImpl
	expressionMarker

	Value string `json:"value"`
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

type TupleLiteral struct {
	nodeImpl
	expressionMarker

	Elements []Expression `json:"elements"`
}

func NewTupleLiteral(elements []Expression) *TupleLiteral {
	return &TupleLiteral{nodeImpl: newNodeImpl(NodeTupleLiteral), Elements: elements}
}

type UnaryExpression struct {
	nodeImpl
	expressionMarker

	Operator UnaryOp    `json:"operator"`
	Operand  Expression `json:"operand"`
}

func NewUnaryExpression(op UnaryOp, operand Expression) *UnaryExpression {
	return &UnaryExpression{nodeImpl: newNodeImpl(NodeUnaryExpression), Operator: op, Operand: operand}
}

type BinaryExpression struct {
	nodeImpl
	expressionMarker

	Operator BinaryOp   `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func NewBinaryExpression(op BinaryOp, left, right Expression) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression), Operator: op, Left: left, Right: right}
}

// LogicalExpression is kept apart from BinaryExpression because `and`/`or`
// short-circuit: the right operand must not be evaluated eagerly.
type LogicalExpression struct {
	nodeImpl
	expressionMarker

	Operator LogicalOp  `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func NewLogicalExpression(op LogicalOp, left, right Expression) *LogicalExpression {
	return &LogicalExpression{nodeImpl: newNodeImpl(NodeLogicalExpression), Operator: op, Left: left, Right: right}
}

type IndexExpression struct {
	nodeImpl
	expressionMarker

	Object Expression `json:"object"`
	Index  Expression `json:"index"`
}

func NewIndexExpression(object, index Expression) *IndexExpression {
	return &IndexExpression{nodeImpl: newNodeImpl(NodeIndexExpression), Object: object, Index: index}
}

// TypeAnnotation names a declared parameter or return type constraint.
type TypeAnnotation struct {
	nodeImpl

	Name string `json:"name"`
}

func NewTypeAnnotation(name string) *TypeAnnotation {
	return &TypeAnnotation{nodeImpl: newNodeImpl(NodeTypeAnnotation), Name: name}
}

type FunctionParameter struct {
	Name       *Identifier     `json:"name"`
	Constraint *TypeAnnotation `json:"constraint,omitempty"`
}

func NewFunctionParameter(name *Identifier, constraint *TypeAnnotation) *FunctionParameter {
	return &FunctionParameter{Name: name, Constraint: constraint}
}

// FunctionLiteral is the function-definition expression. A named literal
// declares its name in the surrounding scope before the expression itself
// produces the function value, which is what makes direct self-recursion
// possible.
type FunctionLiteral struct {
	nodeImpl
	expressionMarker

	Name       *Identifier          `json:"name,omitempty"`
	Parameters []*FunctionParameter `json:"parameters"`
	ReturnType *TypeAnnotation      `json:"returnType,omitempty"`
	Body       *BlockStatement      `json:"body"`
}

func NewFunctionLiteral(name *Identifier, params []*FunctionParameter, returnType *TypeAnnotation, body *BlockStatement) *FunctionLiteral {
	return &FunctionLiteral{nodeImpl: newNodeImpl(NodeFunctionLiteral), Name: name, Parameters: params, ReturnType: returnType, Body: body}
}

type CallExpression struct {
	nodeImpl
	expressionMarker

	Callee    Expression   `json:"callee"`
	Arguments []Expression `json:"arguments"`
}

func NewCallExpression(callee Expression, args []Expression) *CallExpression {
	return &CallExpression{nodeImpl: newNodeImpl(NodeCallExpression), Callee: callee, Arguments: args}
}

// Statements.

type VariableDeclaration struct {
	nodeImpl
	statementMarker

	Name  *Identifier `json:"name"`
	Value Expression  `json:"value"`
}

func NewVariableDeclaration(name *Identifier, value Expression) *VariableDeclaration {
	return &VariableDeclaration{nodeImpl: newNodeImpl(NodeVariableDeclaration), Name: name, Value: value}
}

type AssignmentStatement struct {
	nodeImpl
	statementMarker

	Target *Identifier `json:"target"`
	Value  Expression  `json:"value"`
}

func NewAssignmentStatement(target *Identifier, value Expression) *AssignmentStatement {
	return &AssignmentStatement{nodeImpl: newNodeImpl(NodeAssignmentStatement), Target: target, Value: value}
}

type ExpressionStatement struct {
	nodeImpl
	statementMarker

	Expr Expression `json:"expression"`
}

func NewExpressionStatement(expr Expression) *ExpressionStatement {
	return &ExpressionStatement{nodeImpl: newNodeImpl(NodeExpressionStatement), Expr: expr}
}

type BlockStatement struct {
	nodeImpl
	statementMarker

	Body []Statement `json:"body"`
}

func NewBlockStatement(body []Statement) *BlockStatement {
	return &BlockStatement{nodeImpl: newNodeImpl(NodeBlockStatement), Body: body}
}

type IfStatement struct {
	nodeImpl
	statementMarker

	Condition Expression      `json:"condition"`
	Then      *BlockStatement `json:"then"`
	Else      *BlockStatement `json:"else,omitempty"`
}

func NewIfStatement(condition Expression, then, els *BlockStatement) *IfStatement {
	return &IfStatement{nodeImpl: newNodeImpl(NodeIfStatement), Condition: condition, Then: then, Else: els}
}

type LoopStatement struct {
	nodeImpl
	statementMarker

	Body *BlockStatement `json:"body"`
}

func NewLoopStatement(body *BlockStatement) *LoopStatement {
	return &LoopStatement{nodeImpl: newNodeImpl(NodeLoopStatement), Body: body}
}

type BreakStatement struct {
	nodeImpl
	statementMarker
}

func NewBreakStatement() *BreakStatement {
	return &BreakStatement{nodeImpl: newNodeImpl(NodeBreakStatement)}
}

type ReturnStatement struct {
	nodeImpl
	statementMarker

	Argument Expression `json:"argument,omitempty"`
}

func NewReturnStatement(argument Expression) *ReturnStatement {
	return &ReturnStatement{nodeImpl: newNodeImpl(NodeReturnStatement), Argument: argument}
}

type EmptyStatement struct {
	nodeImpl
	statementMarker
}

func NewEmptyStatement() *EmptyStatement {
	return &EmptyStatement{nodeImpl: newNodeImpl(NodeEmptyStatement)}
}
