// Package tools defines the executable capabilities offered to the model
// and the registry the turn executor dispatches against.
package tools

import (
	"context"
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/yemubit/zeroclaw/core/protocol"
)

// Tool is a named capability the model may invoke. Parameters is a JSON
// Schema object describing the expected arguments. Execute receives the
// arguments exactly as parsed from model output; conformance is the tool's
// responsibility.
type Tool interface {
	Name() string
	Description() string
	Parameters() map[string]any
	Execute(ctx context.Context, args *structpb.Value) (Result, error)
}

// Result is the outcome of one tool execution. An unsuccessful Result is
// reported back to the model rather than failing the turn.
type Result struct {
	Success bool   `json:"success"`
	Output  string `json:"output"`
	Error   string `json:"error,omitempty"`
}

// Ok returns a successful Result carrying output.
func Ok(output string) Result {
	return Result{Success: true, Output: output}
}

// Fail returns an unsuccessful Result carrying msg.
func Fail(msg string) Result {
	return Result{Success: false, Error: msg}
}

// Definition returns the protocol description of t advertised to the model.
func Definition(t Tool) protocol.Tool {
	return protocol.Tool{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters:  t.Parameters(),
	}
}

// Handler receives decoded object arguments.
type Handler func(ctx context.Context, args map[string]any) (Result, error)

// Func adapts a Handler into a Tool. Arguments are checked against the
// definition's schema before the handler runs.
type Func struct {
	def     protocol.Tool
	handler Handler
}

// NewFunc creates a Tool from a definition and handler.
func NewFunc(def protocol.Tool, handler Handler) *Func {
	return &Func{def: def, handler: handler}
}

func (f *Func) Name() string               { return f.def.Name }
func (f *Func) Description() string        { return f.def.Description }
func (f *Func) Parameters() map[string]any { return f.def.Parameters }

// Execute validates args and invokes the handler. Non-object arguments are
// rejected with ErrInvalidArguments.
func (f *Func) Execute(ctx context.Context, args *structpb.Value) (Result, error) {
	params := map[string]any{}
	if args != nil {
		if _, isNull := args.GetKind().(*structpb.Value_NullValue); !isNull {
			obj := args.GetStructValue()
			if obj == nil {
				return Result{}, fmt.Errorf("%w: %s expects an object", ErrInvalidArguments, f.def.Name)
			}
			params = obj.AsMap()
		}
	}

	if err := Validate(params, f.def.Parameters); err != nil {
		return Result{}, fmt.Errorf("%w: %s: %w", ErrInvalidArguments, f.def.Name, err)
	}

	return f.handler(ctx, params)
}
