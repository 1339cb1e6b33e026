package delegate_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/yemubit/zeroclaw/agent"
	"github.com/yemubit/zeroclaw/agent/mock"
	"github.com/yemubit/zeroclaw/core/config"
	"github.com/yemubit/zeroclaw/delegate"
	"github.com/yemubit/zeroclaw/tools"
)

func delegateArgs(t *testing.T, target, message string) *structpb.Value {
	t.Helper()
	v, err := structpb.NewValue(map[string]any{"agent": target, "message": message})
	require.NoError(t, err)
	return v
}

func mockRegistry(t *testing.T, provider *mock.Provider, names ...string) *agent.Registry {
	t.Helper()
	r := agent.NewRegistry(agent.WithFactory(func(cfg *config.AgentConfig) (*agent.Agent, error) {
		return agent.NewWithProvider(provider, cfg)
	}))
	for _, name := range names {
		require.NoError(t, r.Register(name, config.AgentConfig{
			Model:        name + "-model",
			SystemPrompt: "You are " + name,
		}))
	}
	return r
}

func TestTool_Definition(t *testing.T) {
	tool := delegate.NewTool(agent.NewRegistry(), nil)

	assert.Equal(t, "delegate", tool.Name())
	assert.NotEmpty(t, tool.Description())
	assert.Equal(t, []any{"agent", "message"}, tool.Parameters()["required"])
}

func TestTool_ExecuteSuccess(t *testing.T) {
	provider := mock.NewProvider("research summary")
	tool := delegate.NewTool(mockRegistry(t, provider, "researcher"), nil)

	result, err := tool.Execute(context.Background(), delegateArgs(t, "researcher", "summarize X"))

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "research summary", result.Output)

	calls := provider.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "researcher-model", calls[0].Model)
	assert.Equal(t, config.DefaultTemperature, calls[0].Temperature)
	assert.Equal(t, "summarize X", calls[0].Messages[1].Content)
}

func TestTool_UnknownAgent(t *testing.T) {
	tool := delegate.NewTool(mockRegistry(t, mock.NewProvider(), "coder", "researcher"), nil)

	result, err := tool.Execute(context.Background(), delegateArgs(t, "ghost", "hi"))

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, `Unknown agent 'ghost'. Available: ["coder", "researcher"]`, result.Error)
}

func TestTool_SubAgentFailureIsNonFatal(t *testing.T) {
	provider := mock.NewScripted(mock.Reply{Err: errors.New("rate limited")})
	tool := delegate.NewTool(mockRegistry(t, provider, "coder"), nil)

	result, err := tool.Execute(context.Background(), delegateArgs(t, "coder", "write code"))

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "rate limited")
}

func TestTool_DepthExceededIsNonFatal(t *testing.T) {
	guards := map[string]*delegate.Guard{
		"coder": delegate.NewGuard("coder", 0, echo("")),
	}
	tool := delegate.NewToolWithGuards(nil, guards)

	result, err := tool.Execute(context.Background(), delegateArgs(t, "coder", "x"))

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, delegate.ErrDepthExceeded.Error())
}

func TestTool_UsesTurnDepth(t *testing.T) {
	depth := &delegate.Depth{}
	var observed int
	guards := map[string]*delegate.Guard{
		"coder": delegate.NewGuard("coder", 3, delegate.CompleterFunc(func(context.Context, string) (string, error) {
			observed = depth.Current()
			return "ok", nil
		})),
	}
	tool := delegate.NewToolWithGuards(nil, guards)

	ctx := delegate.WithDepth(context.Background(), depth)
	_, err := tool.Execute(ctx, delegateArgs(t, "coder", "x"))

	require.NoError(t, err)
	assert.Equal(t, 1, observed)
	assert.Equal(t, 0, depth.Current())
}

func TestTool_LogsDepthBound(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	guards := map[string]*delegate.Guard{
		"coder": delegate.NewGuard("coder", 2, echo("ok")),
	}
	tool := delegate.NewToolWithGuards(logger, guards)

	_, err := tool.Execute(context.Background(), delegateArgs(t, "coder", "x"))

	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"msg":"delegating"`)
	assert.Contains(t, buf.String(), `"agent":"coder"`)
	assert.Contains(t, buf.String(), `"max_depth":2`)
}

func TestTool_MissingArguments(t *testing.T) {
	tool := delegate.NewTool(agent.NewRegistry(), nil)

	v, _ := structpb.NewValue(map[string]any{"agent": "coder"})
	_, err := tool.Execute(context.Background(), v)

	assert.ErrorIs(t, err, tools.ErrInvalidArguments)
}
