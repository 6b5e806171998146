package analysis

import (
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"

	"github.com/KazKozDev/mcp-search-server/catalog"
)

type calculatorArgs struct {
	Expression string `json:"expression"`
}

func init() {
	catalog.RegisterFactory("calculator", newCalculatorTool)
}

func newCalculatorTool() (*catalog.Tool, error) {
	meta := catalog.Metadata{
		Name:                "calculator",
		Description:         "Evaluate a basic arithmetic expression (+, -, *, /, parentheses)",
		Category:            catalog.CategoryAnalysis,
		Priority:            catalog.PriorityLow,
		Tags:                []string{"calculator", "arithmetic"},
		EstimatedDurationMs: 10,
		InputSchema:         catalog.DeriveSchema(calculatorArgs{}),
	}
	return catalog.NewTool(meta, calculate), nil
}

func calculate(ctx context.Context, args catalog.Arguments) (interface{}, error) {
	expr, err := args.String("expression")
	if err != nil {
		return nil, catalog.NewToolError(catalog.KindInvalidArgument, "expression is required")
	}

	node, err := parser.ParseExpr(expr)
	if err != nil {
		return nil, catalog.WrapToolError(catalog.KindInvalidArgument, "could not parse expression", err)
	}

	result, err := evalNode(node)
	if err != nil {
		return nil, catalog.WrapToolError(catalog.KindInvalidArgument, "could not evaluate expression", err)
	}

	return map[string]interface{}{"expression": expr, "result": result}, nil
}

func evalNode(n ast.Expr) (float64, error) {
	switch v := n.(type) {
	case *ast.BasicLit:
		var f float64
		_, err := fmt.Sscanf(v.Value, "%g", &f)
		return f, err
	case *ast.ParenExpr:
		return evalNode(v.X)
	case *ast.UnaryExpr:
		x, err := evalNode(v.X)
		if err != nil {
			return 0, err
		}
		if v.Op == token.SUB {
			return -x, nil
		}
		return x, nil
	case *ast.BinaryExpr:
		left, err := evalNode(v.X)
		if err != nil {
			return 0, err
		}
		right, err := evalNode(v.Y)
		if err != nil {
			return 0, err
		}
		switch v.Op {
		case token.ADD:
			return left + right, nil
		case token.SUB:
			return left - right, nil
		case token.MUL:
			return left * right, nil
		case token.QUO:
			if right == 0 {
				return 0, catalog.NewToolError(catalog.KindInvalidArgument, "division by zero")
			}
			return left / right, nil
		default:
			return 0, catalog.NewToolError(catalog.KindInvalidArgument, "unsupported operator")
		}
	default:
		return 0, catalog.NewToolError(catalog.KindInvalidArgument, "unsupported expression")
	}
}
