// Package interpreter walks the balloon statement tree against an
// environment chain, producing values, propagating break/return signals and
// raising positioned runtime errors. The first error anywhere aborts the
// whole run.
package interpreter

import (
	"fmt"

	"balloon/interpreter-go/pkg/ast"
	"balloon/interpreter-go/pkg/runtime"
)

// Run executes statements in order against env (normally a root environment
// with the builtins installed). The program's result is the last
// statement's result, None for an empty program.
func Run(stmts []ast.Statement, env *runtime.Environment) (runtime.StmtResult, *runtime.PositionedError) {
	return executeStatements(stmts, env)
}

func executeStatements(stmts []ast.Statement, env *runtime.Environment) (runtime.StmtResult, *runtime.PositionedError) {
	last := runtime.NoneResult()
	for _, stmt := range stmts {
		result, err := executeStatement(stmt, env)
		if err != nil {
			return runtime.NoneResult(), err
		}
		last = result
	}
	return last, nil
}

func executeStatement(stmt ast.Statement, env *runtime.Environment) (runtime.StmtResult, *runtime.PositionedError) {
	switch s := stmt.(type) {
	case *ast.VariableDeclaration:
		val, err := evaluateExpressionValue(s.Value, env)
		if err != nil {
			return runtime.NoneResult(), err
		}
		env.Declare(s.Name.Name, val)
		return runtime.NoneResult(), nil

	case *ast.AssignmentStatement:
		val, err := evaluateExpressionValue(s.Value, env)
		if err != nil {
			return runtime.NoneResult(), err
		}
		if !env.Set(s.Target.Name, val) {
			return runtime.NoneResult(), positioned(runtime.UndeclaredAssignment{Name: s.Target.Name}, s.Target.Pos())
		}
		return runtime.NoneResult(), nil

	case *ast.ExpressionStatement:
		val, err := evaluateExpression(s.Expr, env)
		if err != nil {
			return runtime.NoneResult(), err
		}
		if val == nil {
			return runtime.NoneResult(), nil
		}
		return runtime.ValueResult(val), nil

	case *ast.BlockStatement:
		scope := env.CreateChild()
		last := runtime.NoneResult()
		for _, inner := range s.Body {
			result, err := executeStatement(inner, scope)
			if err != nil {
				return runtime.NoneResult(), err
			}
			if result.Kind == runtime.ResultBreak || result.Kind == runtime.ResultReturn {
				return result, nil
			}
			last = result
		}
		return last, nil

	case *ast.IfStatement:
		cond, err := evaluateExpressionValue(s.Condition, env)
		if err != nil {
			return runtime.NoneResult(), err
		}
		var branch *ast.BlockStatement
		if runtime.Truthy(cond) {
			branch = s.Then
		} else {
			branch = s.Else
		}
		if branch != nil {
			result, err := executeStatement(branch, env)
			if err != nil {
				return runtime.NoneResult(), err
			}
			if result.Kind == runtime.ResultBreak || result.Kind == runtime.ResultReturn {
				return result, nil
			}
		}
		return runtime.NoneResult(), nil

	case *ast.LoopStatement:
		// One child scope for the whole loop; the body block adds its own
		// per-iteration scope.
		scope := env.CreateChild()
		for {
			result, err := executeStatement(s.Body, scope)
			if err != nil {
				return runtime.NoneResult(), err
			}
			if result.Kind == runtime.ResultBreak {
				return runtime.NoneResult(), nil
			}
			if result.Kind == runtime.ResultReturn {
				return result, nil
			}
		}

	case *ast.BreakStatement:
		return runtime.BreakResult(), nil

	case *ast.ReturnStatement:
		if s.Argument == nil {
			return runtime.ReturnResult(nil), nil
		}
		val, err := evaluateExpressionValue(s.Argument, env)
		if err != nil {
			return runtime.NoneResult(), err
		}
		return runtime.ReturnResult(val), nil

	case *ast.EmptyStatement:
		return runtime.NoneResult(), nil

	default:
		panic(fmt.Sprintf("interpreter: unsupported statement type %s", stmt.NodeType()))
	}
}

// evaluateExpression returns nil for a void result (a call to a native-void
// function or a user function that never returns a value).
func evaluateExpression(expr ast.Expression, env *runtime.Environment) (runtime.Value, *runtime.PositionedError) {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return runtime.IntegerOf(e.Value), nil
	case *ast.FloatLiteral:
		return runtime.FloatOf(e.Value), nil
	case *ast.BooleanLiteral:
		return runtime.BoolValue{Val: e.Value}, nil
	case *ast.StringLiteral:
		return runtime.StringValue{Val: e.Value}, nil

	case *ast.Identifier:
		val, ok := env.Get(e.Name)
		if !ok {
			return nil, positioned(runtime.ReferenceError{Name: e.Name}, e.Pos())
		}
		return val, nil

	case *ast.TupleLiteral:
		elements := make([]runtime.Value, 0, len(e.Elements))
		for _, el := range e.Elements {
			val, err := evaluateExpressionValue(el, env)
			if err != nil {
				return nil, err
			}
			elements = append(elements, val)
		}
		return &runtime.TupleValue{Elements: elements}, nil

	case *ast.UnaryExpression:
		operand, err := evaluateExpressionValue(e.Operand, env)
		if err != nil {
			return nil, err
		}
		switch e.Operator {
		case ast.OpNeg:
			result, opErr := unaryMinus(operand)
			if opErr != nil {
				return nil, positioned(opErr, e.Pos())
			}
			return result, nil
		case ast.OpNot:
			return runtime.BoolValue{Val: !runtime.Truthy(operand)}, nil
		default:
			panic(fmt.Sprintf("interpreter: unsupported unary operator %q", e.Operator))
		}

	case *ast.BinaryExpression:
		left, err := evaluateExpressionValue(e.Left, env)
		if err != nil {
			return nil, err
		}
		right, err := evaluateExpressionValue(e.Right, env)
		if err != nil {
			return nil, err
		}
		result, opErr := binaryOperation(e.Operator, left, right)
		if opErr != nil {
			return nil, positioned(opErr, e.Pos())
		}
		return result, nil

	case *ast.LogicalExpression:
		left, err := evaluateExpressionValue(e.Left, env)
		if err != nil {
			return nil, err
		}
		// Short-circuit: the right operand is evaluated only when the left
		// does not decide the outcome; the result is always a Bool.
		switch e.Operator {
		case ast.OpAnd:
			if !runtime.Truthy(left) {
				return runtime.BoolValue{Val: false}, nil
			}
		case ast.OpOr:
			if runtime.Truthy(left) {
				return runtime.BoolValue{Val: true}, nil
			}
		default:
			panic(fmt.Sprintf("interpreter: unsupported logical operator %q", e.Operator))
		}
		right, err := evaluateExpressionValue(e.Right, env)
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: runtime.Truthy(right)}, nil

	case *ast.IndexExpression:
		return evaluateIndexExpression(e, env)

	case *ast.FunctionLiteral:
		return evaluateFunctionLiteral(e, env), nil

	case *ast.CallExpression:
		return evaluateCallExpression(e, env)

	default:
		panic(fmt.Sprintf("interpreter: unsupported expression type %s", expr.NodeType()))
	}
}

// evaluateExpressionValue is the value-required entry point used for
// operands, conditions, initializers, assignment right-hand sides, tuple
// elements and call arguments. A void result from a direct call is reported
// as NoneError naming the callee; a void result from anything else is an
// interpreter invariant violation.
func evaluateExpressionValue(expr ast.Expression, env *runtime.Environment) (runtime.Value, *runtime.PositionedError) {
	val, err := evaluateExpression(expr, env)
	if err != nil {
		return nil, err
	}
	if val == nil {
		if call, ok := expr.(*ast.CallExpression); ok {
			return nil, positioned(runtime.NoneError{Callee: calleeName(call)}, expr.Pos())
		}
		panic(fmt.Sprintf("interpreter: %s produced no value at a value-required site", expr.NodeType()))
	}
	return val, nil
}

func evaluateIndexExpression(e *ast.IndexExpression, env *runtime.Environment) (runtime.Value, *runtime.PositionedError) {
	object, err := evaluateExpressionValue(e.Object, env)
	if err != nil {
		return nil, err
	}
	index, err := evaluateExpressionValue(e.Index, env)
	if err != nil {
		return nil, err
	}
	tuple, ok := object.(*runtime.TupleValue)
	if !ok {
		return nil, positioned(runtime.SubscriptOnNonSubscriptable{Type: object.Kind().String()}, e.Object.Pos())
	}
	num, ok := index.(runtime.NumberValue)
	if !ok || num.IsFloat {
		return nil, positioned(runtime.NonIntegralSubscript{Type: index.Kind().String()}, e.Index.Pos())
	}
	if num.Int < 0 || num.Int >= int64(len(tuple.Elements)) {
		return nil, positioned(runtime.IndexOutOfBounds{Index: num.Int}, e.Pos())
	}
	return tuple.Elements[num.Int], nil
}

func evaluateFunctionLiteral(e *ast.FunctionLiteral, env *runtime.Environment) *runtime.FunctionValue {
	name := ""
	if e.Name != nil {
		name = e.Name.Name
	}
	paramNames := make([]string, 0, len(e.Parameters))
	paramTypes := make([]*ast.TypeAnnotation, 0, len(e.Parameters))
	for _, param := range e.Parameters {
		paramNames = append(paramNames, param.Name.Name)
		paramTypes = append(paramTypes, param.Constraint)
	}
	fn := runtime.NewUserFunction(
		name,
		runtime.CallSign{NumParams: len(e.Parameters), ParamTypes: paramTypes},
		paramNames,
		e.ReturnType,
		e.Body,
		env, // captured by shared reference, not copied
	)
	// A named literal is declared before the expression produces its value,
	// so the function can call itself directly.
	if e.Name != nil {
		env.Declare(e.Name.Name, fn)
	}
	return fn
}

func evaluateCallExpression(e *ast.CallExpression, env *runtime.Environment) (runtime.Value, *runtime.PositionedError) {
	calleeVal, err := evaluateExpressionValue(e.Callee, env)
	if err != nil {
		return nil, err
	}
	fn, ok := calleeVal.(*runtime.FunctionValue)
	if !ok {
		return nil, positioned(runtime.CallToNonFunction{Callee: calleeName(e), Type: calleeVal.Kind().String()}, e.Callee.Pos())
	}
	args := make([]runtime.Value, 0, len(e.Arguments))
	for _, arg := range e.Arguments {
		val, err := evaluateExpressionValue(arg, env)
		if err != nil {
			return nil, err
		}
		args = append(args, val)
	}
	if !fn.Sign.Variadic && fn.Sign.NumParams != len(args) {
		return nil, positioned(runtime.ArgumentLength{Callee: calleeName(e)}, e.Pos())
	}
	result, callErr := callFunction(fn, args)
	if callErr != nil {
		return nil, positioned(callErr, e.Pos())
	}
	return result, nil
}

// callFunction is the single calling-convention dispatcher over the closed
// function variant set. A nil result is a void outcome.
func callFunction(fn *runtime.FunctionValue, args []runtime.Value) (runtime.Value, runtime.RuntimeError) {
	switch fn.Variant {
	case runtime.FunctionNativeVoid:
		if err := fn.Void(args); err != nil {
			return nil, err
		}
		return nil, nil

	case runtime.FunctionNativeReturning:
		return fn.Returning(args)

	case runtime.FunctionUser:
		// Parameters get a scope under the captured environment; the body
		// runs one scope further down so its locals shadow parameters
		// without mutating them.
		paramScope := fn.Env.CreateChild()
		for i, name := range fn.ParamNames {
			paramScope.Declare(name, args[i])
		}
		bodyScope := paramScope.CreateChild()
		result, err := executeStatement(fn.Body, bodyScope)
		if err != nil {
			return nil, runtime.InsideFunctionCall{Inner: err}
		}
		// Return(v) is the call result; fall-through and stray breaks are
		// void.
		if result.Kind == runtime.ResultReturn {
			return result.Value, nil
		}
		return nil, nil

	default:
		panic(fmt.Sprintf("interpreter: unsupported function variant %d", fn.Variant))
	}
}

func calleeName(call *ast.CallExpression) string {
	if id, ok := call.Callee.(*ast.Identifier); ok {
		return id.Name
	}
	return ""
}

func positioned(err runtime.RuntimeError, span ast.Span) *runtime.PositionedError {
	return runtime.NewPositionedError(err, span)
}
