package delegate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/yemubit/zeroclaw/agent"
	"github.com/yemubit/zeroclaw/core/protocol"
	"github.com/yemubit/zeroclaw/tools"
)

// ToolName is the name the model uses to request a delegation.
const ToolName = "delegate"

var parameters = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"agent":   map[string]any{"type": "string", "description": "Name of the agent to delegate to"},
		"message": map[string]any{"type": "string", "description": "The task or question to send"},
	},
	"required": []any{"agent", "message"},
}

// Tool exposes delegation to the model. Failures of any kind are reported
// as unsuccessful results so the turn carries on.
type Tool struct {
	guards map[string]*Guard
	fn     *tools.Func
	logger *slog.Logger
}

// NewTool creates the delegate tool with one guard per agent registered in
// agents. Agents are instantiated on first use.
func NewTool(agents *agent.Registry, logger *slog.Logger) *Tool {
	guards := make(map[string]*Guard)
	for _, info := range agents.List() {
		name := info.Name
		guards[name] = NewGuard(name, info.MaxDepth, CompleterFunc(func(ctx context.Context, message string) (string, error) {
			a, err := agents.Get(name)
			if err != nil {
				return "", err
			}
			return a.Complete(ctx, message)
		}))
	}
	return NewToolWithGuards(logger, guards)
}

// NewToolWithGuards creates the delegate tool over explicit guards keyed by
// target name.
func NewToolWithGuards(logger *slog.Logger, guards map[string]*Guard) *Tool {
	if logger == nil {
		logger = slog.Default()
	}
	t := &Tool{guards: guards, logger: logger}
	t.fn = tools.NewFunc(protocol.Tool{
		Name:        ToolName,
		Description: "Delegate a task to a named agent. Each agent has its own provider, model, and system prompt.",
		Parameters:  parameters,
	}, t.delegate)
	return t
}

func (t *Tool) Name() string               { return t.fn.Name() }
func (t *Tool) Description() string        { return t.fn.Description() }
func (t *Tool) Parameters() map[string]any { return t.fn.Parameters() }

// Execute validates the arguments and runs the delegation.
func (t *Tool) Execute(ctx context.Context, args *structpb.Value) (tools.Result, error) {
	return t.fn.Execute(ctx, args)
}

// Targets returns the names of the agents that can be delegated to, sorted.
func (t *Tool) Targets() []string {
	names := make([]string, 0, len(t.guards))
	for name := range t.guards {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (t *Tool) delegate(ctx context.Context, args map[string]any) (tools.Result, error) {
	target, _ := args["agent"].(string)
	message, _ := args["message"].(string)

	guard, ok := t.guards[target]
	if !ok {
		return tools.Fail(fmt.Sprintf("Unknown agent '%s'. Available: %s", target, quoteList(t.Targets()))), nil
	}

	ctx, depth := EnsureDepth(ctx)
	t.logger.Debug("delegating",
		"agent", guard.Target(),
		"depth", depth.Current(),
		"max_depth", guard.MaxDepth(),
	)

	out, err := guard.Invoke(ctx, depth, message)
	if err != nil {
		if errors.Is(err, ErrDepthExceeded) {
			t.logger.Warn("delegation refused", "agent", target, "error", err)
		}
		return tools.Fail(fmt.Sprintf("Delegation to '%s' failed: %v", target, err)), nil
	}

	return tools.Ok(out), nil
}

func quoteList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
