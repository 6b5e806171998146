package analysis

import (
	"context"
	"testing"

	"github.com/KazKozDev/mcp-search-server/catalog"
)

func TestCalculateBasicArithmetic(t *testing.T) {
	cases := map[string]float64{
		"2 + 2":       4,
		"10 - 3":      7,
		"4 * 5":       20,
		"9 / 3":       3,
		"(2 + 3) * 4": 20,
		"-5 + 10":     5,
	}
	for expr, want := range cases {
		result, err := calculate(context.Background(), catalog.Arguments{"expression": expr})
		if err != nil {
			t.Fatalf("calculate(%q): %v", expr, err)
		}
		out := result.(map[string]interface{})
		if out["result"] != want {
			t.Fatalf("calculate(%q) = %v, want %v", expr, out["result"], want)
		}
	}
}

func TestCalculateDivisionByZero(t *testing.T) {
	if _, err := calculate(context.Background(), catalog.Arguments{"expression": "1 / 0"}); err == nil {
		t.Fatal("expected division by zero to fail")
	}
}

func TestCalculateRejectsInvalidExpression(t *testing.T) {
	if _, err := calculate(context.Background(), catalog.Arguments{"expression": "2 +"}); err == nil {
		t.Fatal("expected a parse error for an incomplete expression")
	}
}
