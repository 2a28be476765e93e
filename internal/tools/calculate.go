package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/almanacai/almanac/internal/calc"
)

// CalculateTool evaluates an arithmetic expression through the restricted
// calc grammar. Unlike the structured tools it reports failures as plain
// "Error: ..." strings rather than JSON.
func CalculateTool() Tool {
	return Tool{
		Name:        "calculate",
		Description: "Evaluates a mathematical expression (e.g. '2 + 2 * 3'). Supports + - * / ^ and parentheses. Returns the numeric result as text.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"expression": map[string]interface{}{
					"type":        "string",
					"description": "Arithmetic expression to evaluate",
				},
			},
			"required": []string{"expression"},
		},
		Execute: func(ctx context.Context, input map[string]interface{}) (string, error) {
			expression, _ := input["expression"].(string)
			if expression == "" {
				return "Error: Invalid mathematical expression.", nil
			}

			result, err := calc.Evaluate(expression)
			if err != nil {
				var symErr *calc.SymbolError
				if errors.As(err, &symErr) {
					return "Error: Invalid input in expression (e.g., non-numeric characters).", nil
				}
				var synErr *calc.SyntaxError
				if errors.As(err, &synErr) {
					return "Error: Invalid mathematical expression.", nil
				}
				return fmt.Sprintf("Error during calculation: %v", err), nil
			}
			return calc.Format(result), nil
		},
	}
}
