package typechecker

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"balloon/interpreter-go/pkg/ast"
	"balloon/interpreter-go/pkg/runtime"
)

func TestCleanProgramHasNoIssues(t *testing.T) {
	issues := CheckProgram([]ast.Statement{
		ast.Decl("x", ast.Int(1)),
		ast.Assign("x", ast.Bin(ast.OpAdd, ast.Id("x"), ast.Int(2))),
		ast.ExprStmt(ast.Bin(ast.OpLessThan, ast.Id("x"), ast.Int(10))),
	})
	if len(issues) != 0 {
		t.Fatalf("expected no issues, got %v", issues)
	}
}

func TestBranchMergeDisagreementWarnsOnceAndForcesAny(t *testing.T) {
	conditional := ast.IfElse(ast.Id("cond"),
		ast.Block(ast.Assign("x", ast.Bool(true))),
		ast.Block(),
	)
	issues := CheckProgram([]ast.Statement{
		ast.Decl("cond", ast.Bool(true)),
		ast.Decl("x", ast.Int(1)),
		conditional,
		// x is Any now, so a numeric use must not be flagged.
		ast.ExprStmt(ast.Bin(ast.OpAdd, ast.Id("x"), ast.Int(1))),
	})
	if len(issues) != 1 {
		t.Fatalf("expected exactly one issue, got %v", issues)
	}
	warn, ok := issues[0].Err.(MultipleTypesFromBranchWarning)
	if !ok || warn.Name != "x" {
		t.Fatalf("expected branch warning for x, got %#v", issues[0].Err)
	}
	if !issues[0].IsWarning() {
		t.Fatalf("branch merge divergence must be advisory")
	}
}

func TestBranchMergeAgreementKeepsType(t *testing.T) {
	issues := CheckProgram([]ast.Statement{
		ast.Decl("cond", ast.Bool(true)),
		ast.Decl("x", ast.Int(1)),
		ast.IfElse(ast.Id("cond"),
			ast.Block(ast.Assign("x", ast.Int(2))),
			ast.Block(ast.Assign("x", ast.Int(3))),
		),
		// x stayed Number, so negating it checks cleanly.
		ast.ExprStmt(ast.Neg(ast.Id("x"))),
	})
	if len(issues) != 0 {
		t.Fatalf("expected no issues, got %v", issues)
	}
}

func TestBranchIsolationDoesNotLeakAcrossArms(t *testing.T) {
	// The then-arm flips x to Bool; the else-arm still sees the original
	// Number and its numeric use must check cleanly.
	issues := CheckProgram([]ast.Statement{
		ast.Decl("cond", ast.Bool(true)),
		ast.Decl("x", ast.Int(1)),
		ast.IfElse(ast.Id("cond"),
			ast.Block(ast.Assign("x", ast.Bool(true))),
			ast.Block(ast.ExprStmt(ast.Bin(ast.OpAdd, ast.Id("x"), ast.Int(1)))),
		),
	})
	if len(issues) != 1 {
		t.Fatalf("expected only the merge warning, got %v", issues)
	}
	if !issues[0].IsWarning() {
		t.Fatalf("expected a warning, got %#v", issues[0].Err)
	}
}

func TestIfWithoutElseChecksAgainstLiveEnvironment(t *testing.T) {
	// No else arm: the implicit empty branch keeps the original type, so
	// no isolation happens and the mutation is visible afterwards.
	issues := CheckProgram([]ast.Statement{
		ast.Decl("cond", ast.Bool(true)),
		ast.Decl("x", ast.Int(1)),
		ast.If(ast.Id("cond"),
			ast.Block(ast.Assign("x", ast.Int(5))),
		),
		ast.ExprStmt(ast.Bin(ast.OpAdd, ast.Id("x"), ast.Int(1))),
	})
	if len(issues) != 0 {
		t.Fatalf("expected no issues, got %v", issues)
	}
}

func TestIssueAccumulationReportsEverySubexpression(t *testing.T) {
	// Both operands fail independently; the checker must report both and
	// still classify the binary node using Any fallbacks.
	expr := ast.Bin(ast.OpAdd, ast.Id("missing1"), ast.Id("missing2"))
	issues := CheckProgram([]ast.Statement{ast.ExprStmt(expr)})

	var names []string
	for _, issue := range issues {
		re, ok := issue.Err.(runtime.ReferenceError)
		if !ok {
			t.Fatalf("expected ReferenceError, got %#v", issue.Err)
		}
		names = append(names, re.Name)
	}
	if diff := cmp.Diff([]string{"missing1", "missing2"}, names); diff != "" {
		t.Fatalf("issue order mismatch (-want +got):\n%s", diff)
	}
}

func TestOperatorMismatchIsPositioned(t *testing.T) {
	expr := ast.Bin(ast.OpSub, ast.Bool(true), ast.Int(1))
	expr.SetSpan(ast.Span{Start: 4, End: 12})
	issues := CheckProgram([]ast.Statement{ast.ExprStmt(expr)})
	if len(issues) != 1 {
		t.Fatalf("expected one issue, got %v", issues)
	}
	bte, ok := issues[0].Err.(runtime.BinaryTypeError)
	if !ok || bte.Left != "Bool" || bte.Right != "Number" {
		t.Fatalf("unexpected issue %#v", issues[0].Err)
	}
	if issues[0].Span.Start != 4 {
		t.Fatalf("issue not positioned at the expression, got %v", issues[0].Span)
	}
}

func TestAnyAbsorbsOperatorChecks(t *testing.T) {
	// Strings sit outside the lattice as Any, so arithmetic over them is
	// assumed compatible statically (and left to the runtime).
	issues := CheckProgram([]ast.Statement{
		ast.Decl("s", ast.Str("x")),
		ast.ExprStmt(ast.Bin(ast.OpAdd, ast.Id("s"), ast.Int(1))),
	})
	if len(issues) != 0 {
		t.Fatalf("expected no issues, got %v", issues)
	}
}

func TestUnaryMinusOnBool(t *testing.T) {
	issues := CheckProgram([]ast.Statement{
		ast.ExprStmt(ast.Neg(ast.Bool(true))),
	})
	if len(issues) != 1 {
		t.Fatalf("expected one issue, got %v", issues)
	}
	ute, ok := issues[0].Err.(runtime.UnaryTypeError)
	if !ok || ute.Type != "Bool" {
		t.Fatalf("expected UnaryTypeError on Bool, got %#v", issues[0].Err)
	}
}

func TestAssignmentToUndeclaredName(t *testing.T) {
	issues := CheckProgram([]ast.Statement{
		ast.Assign("x", ast.Int(1)),
	})
	if len(issues) != 1 {
		t.Fatalf("expected one issue, got %v", issues)
	}
	if _, ok := issues[0].Err.(runtime.UndeclaredAssignment); !ok {
		t.Fatalf("expected UndeclaredAssignment, got %#v", issues[0].Err)
	}
}

func TestUnknownCalleeIsStaticReferenceError(t *testing.T) {
	issues := CheckProgram([]ast.Statement{
		ast.ExprStmt(ast.Call(ast.Id("no_such_builtin"))),
	})
	if len(issues) != 1 {
		t.Fatalf("expected one issue, got %v", issues)
	}
	re, ok := issues[0].Err.(runtime.ReferenceError)
	if !ok || re.Name != "no_such_builtin" {
		t.Fatalf("expected ReferenceError, got %#v", issues[0].Err)
	}
}

func TestVoidBuiltinAtValueSite(t *testing.T) {
	issues := CheckProgram([]ast.Statement{
		ast.Decl("x", ast.Call(ast.Id("println"), ast.Int(1))),
	})
	if len(issues) != 1 {
		t.Fatalf("expected one issue, got %v", issues)
	}
	ne, ok := issues[0].Err.(runtime.NoneError)
	if !ok || ne.Callee != "println" {
		t.Fatalf("expected NoneError naming println, got %#v", issues[0].Err)
	}
}

func TestReturningBuiltinIsAny(t *testing.T) {
	issues := CheckProgram([]ast.Statement{
		ast.Decl("n", ast.Call(ast.Id("len"), ast.Str("abc"))),
		ast.ExprStmt(ast.Bin(ast.OpAdd, ast.Id("n"), ast.Int(1))),
	})
	if len(issues) != 0 {
		t.Fatalf("expected no issues, got %v", issues)
	}
}

func TestUserFunctionCallsAreNotCheckedInterprocedurally(t *testing.T) {
	issues := CheckProgram([]ast.Statement{
		ast.Decl("f", ast.Fn([]string{"a"}, ast.Ret(ast.Id("a")))),
		ast.Decl("x", ast.Call(ast.Id("f"), ast.Bool(true))),
		ast.ExprStmt(ast.Bin(ast.OpAdd, ast.Id("x"), ast.Int(1))),
	})
	if len(issues) != 0 {
		t.Fatalf("expected no issues, got %v", issues)
	}
}

func TestFunctionBodyCheckedOnceWithParameterConstraints(t *testing.T) {
	fn := ast.NewFunctionLiteral(nil,
		[]*ast.FunctionParameter{ast.NewFunctionParameter(ast.Id("n"), ast.Ty("Number"))},
		nil,
		ast.Block(ast.Ret(ast.Neg(ast.Id("b")))),
	)
	issues := CheckProgram([]ast.Statement{
		ast.Decl("f", fn),
	})
	// b is undeclared inside the body; the constraint-typed parameter n is
	// fine.
	if len(issues) != 1 {
		t.Fatalf("expected one issue, got %v", issues)
	}
	if _, ok := issues[0].Err.(runtime.ReferenceError); !ok {
		t.Fatalf("expected ReferenceError, got %#v", issues[0].Err)
	}
}

func TestNamedFunctionSelfReferenceResolves(t *testing.T) {
	fact := ast.NamedFn("fact", []string{"n"},
		ast.Ret(ast.Call(ast.Id("fact"), ast.Bin(ast.OpSub, ast.Id("n"), ast.Int(1)))),
	)
	issues := CheckProgram([]ast.Statement{ast.ExprStmt(fact)})
	if len(issues) != 0 {
		t.Fatalf("expected no issues, got %v", issues)
	}
}

func TestLoopBodyCheckedExactlyOnce(t *testing.T) {
	// The loop body flips x from Number to Bool; a single pass records the
	// last write without iterating to a fixed point. The numeric use of x
	// inside the body therefore checks cleanly, the documented
	// unsoundness.
	issues := CheckProgram([]ast.Statement{
		ast.Decl("x", ast.Int(1)),
		ast.Loop(
			ast.ExprStmt(ast.Bin(ast.OpAdd, ast.Id("x"), ast.Int(1))),
			ast.Assign("x", ast.Bool(true)),
			ast.Brk(),
		),
		ast.ExprStmt(ast.Not(ast.Id("x"))),
	})
	if len(issues) != 0 {
		t.Fatalf("expected no issues, got %v", issues)
	}
}

func TestBlockScopeDisciplineMirrorsEvaluator(t *testing.T) {
	// A declaration inside a block must not leak out.
	issues := CheckProgram([]ast.Statement{
		ast.Block(ast.Decl("inner", ast.Int(1))),
		ast.ExprStmt(ast.Id("inner")),
	})
	if len(issues) != 1 {
		t.Fatalf("expected one issue, got %v", issues)
	}
	re, ok := issues[0].Err.(runtime.ReferenceError)
	if !ok || re.Name != "inner" {
		t.Fatalf("expected ReferenceError for inner, got %#v", issues[0].Err)
	}
}

func TestTypeEnvironmentCloneIsIndependent(t *testing.T) {
	env := NewTypeEnvironment()
	env.StartScope()
	env.Declare("x", TypeNumber)

	clone := env.Clone()
	clone.Set("x", TypeBool)

	if typ, _ := env.Lookup("x"); typ != TypeNumber {
		t.Fatalf("clone mutation leaked into original: %v", typ)
	}
	if typ, _ := clone.Lookup("x"); typ != TypeBool {
		t.Fatalf("clone did not record mutation: %v", typ)
	}
}
