// Package tools defines the Tool contract shared by the agent loop and
// the individual tool implementations, plus the four built-in tools.
package tools

import "context"

// Tool represents a callable function the LLM can invoke
type Tool struct {
	Name        string
	Description string
	InputSchema map[string]interface{}
	Execute     func(ctx context.Context, input map[string]interface{}) (string, error)
}
