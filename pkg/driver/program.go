package driver

import (
	"encoding/json"
	"fmt"
	"os"

	"balloon/interpreter-go/pkg/ast"
)

// LoadProgram reads a program serialized as JSON by an external parser and
// rebuilds the statement tree. Nodes are discriminated by their "type"
// field and carry a "span" with byte offsets into the original source.
func LoadProgram(path string) ([]ast.Statement, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("program: read %s: %w", path, err)
	}
	return DecodeProgram(data)
}

// DecodeProgram rebuilds a statement tree from its JSON encoding. The top
// level is an object with a "body" array of statements.
func DecodeProgram(data []byte) ([]ast.Statement, error) {
	var root struct {
		Body []json.RawMessage `json:"body"`
	}
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("program: parse: %w", err)
	}
	stmts := make([]ast.Statement, 0, len(root.Body))
	for i, raw := range root.Body {
		node, err := decodeRaw(raw)
		if err != nil {
			return nil, fmt.Errorf("program: statement %d: %w", i, err)
		}
		stmt, ok := node.(ast.Statement)
		if !ok {
			return nil, fmt.Errorf("program: statement %d: %s is not a statement", i, node.NodeType())
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func decodeRaw(raw json.RawMessage) (ast.Node, error) {
	var node map[string]any
	if err := json.Unmarshal(raw, &node); err != nil {
		return nil, err
	}
	return decodeNode(node)
}

func decodeNode(node map[string]any) (ast.Node, error) {
	typ, _ := node["type"].(string)
	decoded, err := decodeNodeBody(ast.NodeType(typ), node)
	if err != nil {
		return nil, err
	}
	if setter, ok := decoded.(interface{ SetSpan(ast.Span) }); ok {
		setter.SetSpan(decodeSpan(node))
	}
	return decoded, nil
}

func decodeNodeBody(typ ast.NodeType, node map[string]any) (ast.Node, error) {
	switch typ {
	case ast.NodeIntegerLiteral:
		val, ok := node["value"].(float64)
		if !ok {
			return nil, fmt.Errorf("integer literal missing value")
		}
		return ast.NewIntegerLiteral(int64(val)), nil
	case ast.NodeFloatLiteral:
		val, ok := node["value"].(float64)
		if !ok {
			return nil, fmt.Errorf("float literal missing value")
		}
		return ast.NewFloatLiteral(val), nil
	case ast.NodeBooleanLiteral:
		val, _ := node["value"].(bool)
		return ast.NewBooleanLiteral(val), nil
	case ast.NodeStringLiteral:
		val, _ := node["value"].(string)
		return ast.NewStringLiteral(val), nil
	case ast.NodeIdentifier:
		name, ok := node["name"].(string)
		if !ok {
			return nil, fmt.Errorf("identifier missing name")
		}
		return ast.NewIdentifier(name), nil
	case ast.NodeTupleLiteral:
		elements, err := decodeExpressions(node["elements"])
		if err != nil {
			return nil, err
		}
		return ast.NewTupleLiteral(elements), nil
	case ast.NodeUnaryExpression:
		op, _ := node["operator"].(string)
		operand, err := decodeExpression(node["operand"])
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryExpression(ast.UnaryOp(op), operand), nil
	case ast.NodeBinaryExpression:
		op, _ := node["operator"].(string)
		left, err := decodeExpression(node["left"])
		if err != nil {
			return nil, err
		}
		right, err := decodeExpression(node["right"])
		if err != nil {
			return nil, err
		}
		return ast.NewBinaryExpression(ast.BinaryOp(op), left, right), nil
	case ast.NodeLogicalExpression:
		op, _ := node["operator"].(string)
		left, err := decodeExpression(node["left"])
		if err != nil {
			return nil, err
		}
		right, err := decodeExpression(node["right"])
		if err != nil {
			return nil, err
		}
		return ast.NewLogicalExpression(ast.LogicalOp(op), left, right), nil
	case ast.NodeIndexExpression:
		object, err := decodeExpression(node["object"])
		if err != nil {
			return nil, err
		}
		index, err := decodeExpression(node["index"])
		if err != nil {
			return nil, err
		}
		return ast.NewIndexExpression(object, index), nil
	case ast.NodeFunctionLiteral:
		return decodeFunctionLiteral(node)
	case ast.NodeCallExpression:
		callee, err := decodeExpression(node["callee"])
		if err != nil {
			return nil, err
		}
		args, err := decodeExpressions(node["arguments"])
		if err != nil {
			return nil, err
		}
		return ast.NewCallExpression(callee, args), nil
	case ast.NodeTypeAnnotation:
		name, _ := node["name"].(string)
		return ast.NewTypeAnnotation(name), nil

	case ast.NodeVariableDeclaration:
		name, err := decodeIdentifier(node["name"])
		if err != nil {
			return nil, err
		}
		value, err := decodeExpression(node["value"])
		if err != nil {
			return nil, err
		}
		return ast.NewVariableDeclaration(name, value), nil
	case ast.NodeAssignmentStatement:
		target, err := decodeIdentifier(node["target"])
		if err != nil {
			return nil, err
		}
		value, err := decodeExpression(node["value"])
		if err != nil {
			return nil, err
		}
		return ast.NewAssignmentStatement(target, value), nil
	case ast.NodeExpressionStatement:
		expr, err := decodeExpression(node["expression"])
		if err != nil {
			return nil, err
		}
		return ast.NewExpressionStatement(expr), nil
	case ast.NodeBlockStatement:
		return decodeBlock(node)
	case ast.NodeIfStatement:
		condition, err := decodeExpression(node["condition"])
		if err != nil {
			return nil, err
		}
		then, err := decodeBlockField(node["then"])
		if err != nil {
			return nil, err
		}
		var els *ast.BlockStatement
		if rawElse, ok := node["else"].(map[string]any); ok {
			els, err = decodeBlockField(rawElse)
			if err != nil {
				return nil, err
			}
		}
		return ast.NewIfStatement(condition, then, els), nil
	case ast.NodeLoopStatement:
		body, err := decodeBlockField(node["body"])
		if err != nil {
			return nil, err
		}
		return ast.NewLoopStatement(body), nil
	case ast.NodeBreakStatement:
		return ast.NewBreakStatement(), nil
	case ast.NodeReturnStatement:
		if rawArg, ok := node["argument"].(map[string]any); ok {
			arg, err := decodeExpression(rawArg)
			if err != nil {
				return nil, err
			}
			return ast.NewReturnStatement(arg), nil
		}
		return ast.NewReturnStatement(nil), nil
	case ast.NodeEmptyStatement:
		return ast.NewEmptyStatement(), nil

	default:
		return nil, fmt.Errorf("unsupported node type %q", typ)
	}
}

func decodeFunctionLiteral(node map[string]any) (ast.Node, error) {
	var name *ast.Identifier
	if rawName, ok := node["name"].(map[string]any); ok {
		decoded, err := decodeIdentifier(rawName)
		if err != nil {
			return nil, err
		}
		name = decoded
	}
	rawParams, _ := node["parameters"].([]any)
	params := make([]*ast.FunctionParameter, 0, len(rawParams))
	for _, rawParam := range rawParams {
		paramNode, ok := rawParam.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("invalid function parameter %T", rawParam)
		}
		paramName, err := decodeIdentifier(paramNode["name"])
		if err != nil {
			return nil, err
		}
		var constraint *ast.TypeAnnotation
		if rawConstraint, ok := paramNode["constraint"].(map[string]any); ok {
			decoded, err := decodeNode(rawConstraint)
			if err != nil {
				return nil, err
			}
			annotation, ok := decoded.(*ast.TypeAnnotation)
			if !ok {
				return nil, fmt.Errorf("invalid parameter constraint %s", decoded.NodeType())
			}
			constraint = annotation
		}
		params = append(params, ast.NewFunctionParameter(paramName, constraint))
	}
	var returnType *ast.TypeAnnotation
	if rawReturn, ok := node["returnType"].(map[string]any); ok {
		decoded, err := decodeNode(rawReturn)
		if err != nil {
			return nil, err
		}
		annotation, ok := decoded.(*ast.TypeAnnotation)
		if !ok {
			return nil, fmt.Errorf("invalid return type %s", decoded.NodeType())
		}
		returnType = annotation
	}
	body, err := decodeBlockField(node["body"])
	if err != nil {
		return nil, err
	}
	return ast.NewFunctionLiteral(name, params, returnType, body), nil
}

func decodeBlock(node map[string]any) (*ast.BlockStatement, error) {
	rawBody, _ := node["body"].([]any)
	body := make([]ast.Statement, 0, len(rawBody))
	for _, rawStmt := range rawBody {
		stmtNode, ok := rawStmt.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("invalid block entry %T", rawStmt)
		}
		decoded, err := decodeNode(stmtNode)
		if err != nil {
			return nil, err
		}
		stmt, ok := decoded.(ast.Statement)
		if !ok {
			return nil, fmt.Errorf("%s is not a statement", decoded.NodeType())
		}
		body = append(body, stmt)
	}
	block := ast.NewBlockStatement(body)
	block.SetSpan(decodeSpan(node))
	return block, nil
}

func decodeBlockField(raw any) (*ast.BlockStatement, error) {
	node, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected block, got %T", raw)
	}
	return decodeBlock(node)
}

func decodeExpression(raw any) (ast.Expression, error) {
	node, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected expression, got %T", raw)
	}
	decoded, err := decodeNode(node)
	if err != nil {
		return nil, err
	}
	expr, ok := decoded.(ast.Expression)
	if !ok {
		return nil, fmt.Errorf("%s is not an expression", decoded.NodeType())
	}
	return expr, nil
}

func decodeExpressions(raw any) ([]ast.Expression, error) {
	rawList, _ := raw.([]any)
	exprs := make([]ast.Expression, 0, len(rawList))
	for _, entry := range rawList {
		expr, err := decodeExpression(entry)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

func decodeIdentifier(raw any) (*ast.Identifier, error) {
	node, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected identifier, got %T", raw)
	}
	decoded, err := decodeNode(node)
	if err != nil {
		return nil, err
	}
	id, ok := decoded.(*ast.Identifier)
	if !ok {
		return nil, fmt.Errorf("%s is not an identifier", decoded.NodeType())
	}
	return id, nil
}

func decodeSpan(node map[string]any) ast.Span {
	rawSpan, ok := node["span"].(map[string]any)
	if !ok {
		return ast.Span{}
	}
	start, _ := rawSpan["start"].(float64)
	end, _ := rawSpan["end"].(float64)
	return ast.Span{Start: int(start), End: int(end)}
}
