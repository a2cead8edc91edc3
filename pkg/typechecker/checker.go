// Package typechecker is a non-executing static pass over the balloon
// statement tree. It approximates types flow-sensitively on a three-value
// lattice, mirrors the evaluator's scope discipline exactly, and
// accumulates every reachable issue instead of stopping at the first.
//
// Loop bodies and function bodies are checked exactly once; there is no
// fixed point over iterations or recursion. This is a documented
// limitation of the pass, not an accident.
package typechecker

import (
	"fmt"
	"sort"

	"balloon/interpreter-go/pkg/ast"
	"balloon/interpreter-go/pkg/builtins"
	"balloon/interpreter-go/pkg/runtime"
)

// Issue is one positioned finding. Err is either a runtime error kind
// reused as a static diagnostic, or a MultipleTypesFromBranchWarning.
type Issue struct {
	Err  error
	Span ast.Span
}

func (i Issue) Error() string {
	return fmt.Sprintf("%s: %s", i.Span, i.Err.Error())
}

// IsWarning reports whether the issue is advisory rather than a hard error.
func (i Issue) IsWarning() bool {
	_, ok := i.Err.(MultipleTypesFromBranchWarning)
	return ok
}

// MultipleTypesFromBranchWarning flags a name whose type diverged between
// the two arms of a conditional; the merged type is forced to Any.
type MultipleTypesFromBranchWarning struct {
	Name string
}

func (w MultipleTypesFromBranchWarning) Error() string {
	return fmt.Sprintf("'%s' may have multiple types after this conditional", w.Name)
}

// CheckProgram checks statements against a fresh root scope. An empty
// result means the program checked cleanly; otherwise the complete ordered
// issue list is returned, never a partial one.
func CheckProgram(stmts []ast.Statement) []Issue {
	env := NewTypeEnvironment()
	env.StartScope()
	issues := checkStatements(stmts, env)
	env.EndScope()
	return issues
}

func checkStatements(stmts []ast.Statement, env *TypeEnvironment) []Issue {
	var issues []Issue
	for _, stmt := range stmts {
		issues = append(issues, checkStatement(stmt, env)...)
	}
	return issues
}

func checkStatement(stmt ast.Statement, env *TypeEnvironment) []Issue {
	switch s := stmt.(type) {
	case *ast.VariableDeclaration:
		typ, issues := checkValueType(s.Value, env)
		env.Declare(s.Name.Name, typ)
		return issues

	case *ast.AssignmentStatement:
		typ, issues := checkValueType(s.Value, env)
		if !env.Set(s.Target.Name, typ) {
			issues = append(issues, Issue{Err: runtime.UndeclaredAssignment{Name: s.Target.Name}, Span: s.Target.Pos()})
		}
		return issues

	case *ast.ExpressionStatement:
		_, _, issues := checkExpression(s.Expr, env)
		return issues

	case *ast.BlockStatement:
		env.StartScope()
		issues := checkStatements(s.Body, env)
		env.EndScope()
		return issues

	case *ast.IfStatement:
		if s.Else == nil {
			return checkIfThen(s, env)
		}
		return checkIfThenElse(s, env)

	case *ast.LoopStatement:
		// The evaluator opens one loop-wide scope before iterating; mirror
		// it so scope depths line up. The body is still checked once.
		env.StartScope()
		issues := checkStatement(s.Body, env)
		env.EndScope()
		return issues

	case *ast.BreakStatement, *ast.EmptyStatement:
		return nil

	case *ast.ReturnStatement:
		if s.Argument == nil {
			return nil
		}
		_, issues := checkValueType(s.Argument, env)
		return issues

	default:
		panic(fmt.Sprintf("typechecker: unsupported statement type %s", stmt.NodeType()))
	}
}

// checkIfThen checks a conditional without an else arm directly against the
// live environment: the implicit empty branch preserves every original
// type, so no isolation or merge is needed.
func checkIfThen(s *ast.IfStatement, env *TypeEnvironment) []Issue {
	issues, condVoid := checkCondition(s.Condition, env)
	if condVoid {
		return issues
	}
	return append(issues, checkStatement(s.Then, env)...)
}

// checkIfThenElse checks each arm against an independent clone of the
// incoming environment, then merges: names on which both arms agree keep
// their type, names on which they disagree become Any with a warning.
func checkIfThenElse(s *ast.IfStatement, env *TypeEnvironment) []Issue {
	thenEnv := env.Clone()
	elseEnv := env.Clone()

	issues, condVoid := checkCondition(s.Condition, env)
	if condVoid {
		return issues
	}

	issues = append(issues, checkStatement(s.Then, thenEnv)...)
	issues = append(issues, checkStatement(s.Else, elseEnv)...)

	for _, name := range unionKeys(thenEnv, elseEnv) {
		thenType, okThen := thenEnv.Lookup(name)
		elseType, okElse := elseEnv.Lookup(name)
		if !okThen || !okElse {
			continue
		}
		if thenType != elseType {
			issues = append(issues, Issue{Err: MultipleTypesFromBranchWarning{Name: name}, Span: s.Pos()})
			env.Set(name, TypeAny)
		} else {
			env.Set(name, thenType)
		}
	}
	return issues
}

// checkCondition reports the condition's issues and whether it was void (a
// void condition aborts checking of the conditional's arms).
func checkCondition(cond ast.Expression, env *TypeEnvironment) ([]Issue, bool) {
	_, hasValue, issues := checkExpression(cond, env)
	if len(issues) > 0 {
		return issues, false
	}
	if !hasValue {
		if call, ok := cond.(*ast.CallExpression); ok {
			return []Issue{{Err: runtime.NoneError{Callee: calleeName(call)}, Span: cond.Pos()}}, true
		}
		return nil, true
	}
	return nil, false
}

func unionKeys(a, b *TypeEnvironment) []string {
	seen := make(map[string]struct{})
	for _, name := range a.AllKeys() {
		seen[name] = struct{}{}
	}
	for _, name := range b.AllKeys() {
		seen[name] = struct{}{}
	}
	keys := make([]string, 0, len(seen))
	for name := range seen {
		keys = append(keys, name)
	}
	sort.Strings(keys)
	return keys
}

// checkExpression returns the expression's approximated type, whether it
// produces a value at all, and any issues. When issues are returned the
// type result is meaningless; callers substitute Any so sibling checks can
// proceed.
func checkExpression(expr ast.Expression, env *TypeEnvironment) (Type, bool, []Issue) {
	switch e := expr.(type) {
	case *ast.IntegerLiteral, *ast.FloatLiteral:
		return TypeNumber, true, nil
	case *ast.BooleanLiteral:
		return TypeBool, true, nil
	case *ast.StringLiteral:
		// Strings sit outside the lattice; assume compatible.
		return TypeAny, true, nil

	case *ast.Identifier:
		typ, ok := env.Lookup(e.Name)
		if !ok {
			return TypeAny, true, []Issue{{Err: runtime.ReferenceError{Name: e.Name}, Span: e.Pos()}}
		}
		return typ, true, nil

	case *ast.TupleLiteral:
		var issues []Issue
		for _, el := range e.Elements {
			_, elIssues := checkValueType(el, env)
			issues = append(issues, elIssues...)
		}
		return TypeAny, true, issues

	case *ast.UnaryExpression:
		operandType, issues := checkValueType(e.Operand, env)
		switch e.Operator {
		case ast.OpNot:
			return TypeBool, true, issues
		case ast.OpNeg:
			switch operandType {
			case TypeNumber:
				return TypeNumber, true, issues
			case TypeAny:
				return TypeAny, true, issues
			default:
				issues = append(issues, Issue{Err: runtime.UnaryTypeError{Op: string(e.Operator), Type: operandType.String()}, Span: e.Pos()})
				return TypeAny, true, issues
			}
		default:
			panic(fmt.Sprintf("typechecker: unsupported unary operator %q", e.Operator))
		}

	case *ast.BinaryExpression:
		leftType, issues := checkValueType(e.Left, env)
		rightType, rightIssues := checkValueType(e.Right, env)
		issues = append(issues, rightIssues...)
		resultType, opErr := checkBinaryOperation(e.Operator, leftType, rightType)
		if opErr != nil {
			issues = append(issues, Issue{Err: opErr, Span: e.Pos()})
			return TypeAny, true, issues
		}
		return resultType, true, issues

	case *ast.LogicalExpression:
		_, issues := checkValueType(e.Left, env)
		_, rightIssues := checkValueType(e.Right, env)
		issues = append(issues, rightIssues...)
		return TypeBool, true, issues

	case *ast.IndexExpression:
		_, issues := checkValueType(e.Object, env)
		_, indexIssues := checkValueType(e.Index, env)
		issues = append(issues, indexIssues...)
		return TypeAny, true, issues

	case *ast.FunctionLiteral:
		return checkFunctionLiteral(e, env)

	case *ast.CallExpression:
		return checkCallExpression(e, env)

	default:
		panic(fmt.Sprintf("typechecker: unsupported expression type %s", expr.NodeType()))
	}
}

// checkValueType is the value-required counterpart of checkExpression: a
// failed or void subexpression is given the Any fallback so sibling checks
// still mean something.
func checkValueType(expr ast.Expression, env *TypeEnvironment) (Type, []Issue) {
	typ, hasValue, issues := checkExpression(expr, env)
	if len(issues) > 0 {
		return TypeAny, issues
	}
	if !hasValue {
		if call, ok := expr.(*ast.CallExpression); ok {
			issues = append(issues, Issue{Err: runtime.NoneError{Callee: calleeName(call)}, Span: expr.Pos()})
		}
		return TypeAny, issues
	}
	return typ, nil
}

// checkFunctionLiteral checks the body once, under the same scope shape the
// evaluator builds for a call: one scope for parameters, one for the body,
// plus the block's own.
func checkFunctionLiteral(e *ast.FunctionLiteral, env *TypeEnvironment) (Type, bool, []Issue) {
	if e.Name != nil {
		// Declared before the body is checked, so self-recursion resolves.
		env.Declare(e.Name.Name, TypeAny)
	}
	env.StartScope()
	for _, param := range e.Parameters {
		paramType := TypeAny
		if param.Constraint != nil {
			paramType = constraintType(param.Constraint.Name)
		}
		env.Declare(param.Name.Name, paramType)
	}
	env.StartScope()
	issues := checkStatement(e.Body, env)
	env.EndScope()
	env.EndScope()
	return TypeAny, true, issues
}

// checkCallExpression checks arguments, then classifies the callee. Only
// builtins are checked against a signature; calls through user bindings are
// not checked interprocedurally and approximate to Any.
func checkCallExpression(e *ast.CallExpression, env *TypeEnvironment) (Type, bool, []Issue) {
	var issues []Issue
	for _, arg := range e.Arguments {
		_, argIssues := checkValueType(arg, env)
		issues = append(issues, argIssues...)
	}

	if id, ok := e.Callee.(*ast.Identifier); ok {
		if _, found := env.Lookup(id.Name); found {
			return TypeAny, true, issues
		}
		if builtin, found := builtins.Lookup(id.Name); found {
			if builtin.Void {
				return TypeAny, false, issues
			}
			return TypeAny, true, issues
		}
		issues = append(issues, Issue{Err: runtime.ReferenceError{Name: id.Name}, Span: id.Pos()})
		return TypeAny, true, issues
	}

	_, calleeIssues := checkValueType(e.Callee, env)
	issues = append(issues, calleeIssues...)
	return TypeAny, true, issues
}

func checkBinaryOperation(op ast.BinaryOp, left, right Type) (Type, error) {
	switch op {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpFloorDiv:
		switch {
		case left == TypeNumber && right == TypeNumber:
			return TypeNumber, nil
		case left == TypeAny || right == TypeAny:
			return TypeAny, nil
		default:
			return TypeAny, runtime.BinaryTypeError{Op: string(op), Left: left.String(), Right: right.String()}
		}
	case ast.OpLessThan, ast.OpLessThanOrEqual, ast.OpGreaterThan, ast.OpGreaterThanOrEqual:
		switch {
		case left == TypeNumber && right == TypeNumber:
			return TypeBool, nil
		case left == TypeAny || right == TypeAny:
			return TypeAny, nil
		default:
			return TypeAny, runtime.BinaryTypeError{Op: string(op), Left: left.String(), Right: right.String()}
		}
	case ast.OpStrictEquals:
		return TypeBool, nil
	default:
		panic(fmt.Sprintf("typechecker: unsupported binary operator %q", op))
	}
}

func calleeName(call *ast.CallExpression) string {
	if id, ok := call.Callee.(*ast.Identifier); ok {
		return id.Name
	}
	return ""
}
