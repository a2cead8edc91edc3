package ast

// Short constructors for building trees by hand, used heavily by the test
// suites. Nodes built this way carry zero spans.

func Id(name string) *Identifier        { return NewIdentifier(name) }
func Int(v int64) *IntegerLiteral       { return NewIntegerLiteral(v) }
func Flt(v float64) *FloatLiteral       { return NewFloatLiteral(v) }
func Bool(v bool) *BooleanLiteral       { return NewBooleanLiteral(v) }
func Str(v string) *StringLiteral       { return NewStringLiteral(v) }
func Tup(elems ...Expression) *TupleLiteral { return NewTupleLiteral(elems) }

func Neg(operand Expression) *UnaryExpression { return NewUnaryExpression(OpNeg, operand) }
func Not(operand Expression) *UnaryExpression { return NewUnaryExpression(OpNot, operand) }

func Bin(op BinaryOp, left, right Expression) *BinaryExpression {
	return NewBinaryExpression(op, left, right)
}

func And(left, right Expression) *LogicalExpression {
	return NewLogicalExpression(OpAnd, left, right)
}

func Or(left, right Expression) *LogicalExpression {
	return NewLogicalExpression(OpOr, left, right)
}

func Index(object, index Expression) *IndexExpression {
	return NewIndexExpression(object, index)
}

func Call(callee Expression, args ...Expression) *CallExpression {
	return NewCallExpression(callee, args)
}

// Fn builds an anonymous function literal with untyped parameters.
func Fn(params []string, body ...Statement) *FunctionLiteral {
	return NewFunctionLiteral(nil, Params(params...), nil, NewBlockStatement(body))
}

// NamedFn builds a named function literal with untyped parameters.
func NamedFn(name string, params []string, body ...Statement) *FunctionLiteral {
	return NewFunctionLiteral(Id(name), Params(params...), nil, NewBlockStatement(body))
}

func Params(names ...string) []*FunctionParameter {
	params := make([]*FunctionParameter, 0, len(names))
	for _, name := range names {
		params = append(params, NewFunctionParameter(Id(name), nil))
	}
	return params
}

func Ty(name string) *TypeAnnotation { return NewTypeAnnotation(name) }

func Decl(name string, value Expression) *VariableDeclaration {
	return NewVariableDeclaration(Id(name), value)
}

func Assign(name string, value Expression) *AssignmentStatement {
	return NewAssignmentStatement(Id(name), value)
}

func ExprStmt(expr Expression) *ExpressionStatement { return NewExpressionStatement(expr) }

func Block(body ...Statement) *BlockStatement { return NewBlockStatement(body) }

func If(cond Expression, then *BlockStatement) *IfStatement {
	return NewIfStatement(cond, then, nil)
}

func IfElse(cond Expression, then, els *BlockStatement) *IfStatement {
	return NewIfStatement(cond, then, els)
}

func Loop(body ...Statement) *LoopStatement { return NewLoopStatement(NewBlockStatement(body)) }

func Brk() *BreakStatement { return NewBreakStatement() }

func Ret(argument Expression) *ReturnStatement { return NewReturnStatement(argument) }

func Empty() *EmptyStatement { return NewEmptyStatement() }
