// Package kernel implements the turn executor: it drives the
// model → tool calls → tool results → model cycle for one user turn until
// the model answers in plain text or the iteration budget runs out.
//
// The kernel initializes from configuration via New, creating all subsystems
// internally. Functional options allow overrides of any subsystem.
//
//	k, err := kernel.New(&cfg)
//	result, err := k.Execute(ctx, history)
package kernel

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/yemubit/zeroclaw/agent"
	"github.com/yemubit/zeroclaw/core/protocol"
	"github.com/yemubit/zeroclaw/delegate"
	"github.com/yemubit/zeroclaw/history"
	"github.com/yemubit/zeroclaw/memory"
	"github.com/yemubit/zeroclaw/observability"
	"github.com/yemubit/zeroclaw/session"
	"github.com/yemubit/zeroclaw/toolcall"
	"github.com/yemubit/zeroclaw/tools"
)

// Result holds the outcome of one turn.
type Result struct {
	Response   string             // Final text response from the model.
	Iterations int                // Number of model calls completed.
	ToolCalls  []ToolCallRecord   // Log of all tool invocations.
	History    []protocol.Message // Conversation after the turn, or after the last completed iteration on failure.
}

// ToolCallRecord describes one tool invocation within a turn.
type ToolCallRecord struct {
	Call      protocol.ToolCall
	Iteration int           // Iteration in which the call occurred.
	Result    string        // Text fed back to the model.
	Success   bool          // Whether the tool reported success.
	Duration  time.Duration // Execution time; zero for unknown tools.
}

// ToolExecutor lists the tools offered to the model and dispatches calls to
// them. Execute returns an error wrapping tools.ErrNotFound for unknown
// names. *tools.Registry satisfies it.
type ToolExecutor interface {
	List() []protocol.Tool
	Execute(ctx context.Context, name string, args *structpb.Value) (tools.Result, error)
}

// Option configures a Kernel after config-driven initialization.
type Option func(*Kernel)

// WithAgent overrides the config-created agent.
func WithAgent(a *agent.Agent) Option {
	return func(k *Kernel) { k.agent = a }
}

// WithRegistry overrides the config-created agent registry.
func WithRegistry(r *agent.Registry) Option {
	return func(k *Kernel) { k.registry = r }
}

// WithSession overrides the config-created session used by Run.
func WithSession(s session.Session) Option {
	return func(k *Kernel) { k.session = s }
}

// WithToolExecutor replaces the kernel's tool set entirely.
func WithToolExecutor(e ToolExecutor) Option {
	return func(k *Kernel) { k.tools = e }
}

// WithTools registers additional tools in the kernel's own registry.
// Ignored when WithToolExecutor is also applied. Registration errors
// surface from New.
func WithTools(ts ...tools.Tool) Option {
	return func(k *Kernel) {
		for _, t := range ts {
			if err := k.toolRegistry.Register(t); err != nil && k.initErr == nil {
				k.initErr = err
			}
		}
	}
}

// WithMemoryStore overrides the config-created workspace context store.
func WithMemoryStore(s memory.Store) Option {
	return func(k *Kernel) { k.store = s }
}

// WithObserver overrides the config-selected observer.
func WithObserver(o observability.Observer) Option {
	return func(k *Kernel) { k.observer = o }
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(k *Kernel) { k.logger = l }
}

// WithOutput sets a sink for the free text the model emits alongside tool
// calls. Without one the kernel runs silently.
func WithOutput(w io.Writer) Option {
	return func(k *Kernel) { k.output = w }
}

// Kernel runs turns for one configured agent. Execute is safe for
// concurrent use; Run is not, since it owns a single conversation.
type Kernel struct {
	agent         *agent.Agent
	registry      *agent.Registry
	toolRegistry  *tools.Registry
	session       session.Session
	store         memory.Store
	tools         ToolExecutor
	observer      observability.Observer
	logger        *slog.Logger
	parser        *toolcall.Parser
	output        io.Writer
	maxIterations int
	historyLimit  int
	systemPrompt  string
	memoryChars   int
	initErr       error
}

// New creates a Kernel from configuration. Subsystems (agent, session,
// memory, delegate agents) are initialized from their config sections.
// When cfg.Agents is non-empty the delegate tool is registered.
func New(cfg *Config, opts ...Option) (*Kernel, error) {
	a, err := agent.New(&cfg.Agent)
	if err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}

	sesh, err := session.New(&cfg.Session)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	store, err := memory.NewStore(&cfg.Memory)
	if err != nil {
		return nil, fmt.Errorf("failed to create memory store: %w", err)
	}

	reg := agent.NewRegistry()
	for name, agentCfg := range cfg.Agents {
		if agentCfg.Provider.APIKey == "" && agentCfg.Provider.Name == cfg.Agent.Provider.Name {
			agentCfg.Provider.APIKey = cfg.Agent.Provider.APIKey
		}
		if err := reg.Register(name, agentCfg); err != nil {
			return nil, fmt.Errorf("failed to register agent %q: %w", name, err)
		}
	}

	maxIterations := cfg.MaxIterations
	if maxIterations <= 0 {
		maxIterations = defaultMaxIterations
	}

	k := &Kernel{
		agent:         a,
		registry:      reg,
		toolRegistry:  &tools.Registry{},
		session:       sesh,
		store:         store,
		logger:        slog.Default(),
		maxIterations: maxIterations,
		historyLimit:  cfg.Session.HistoryLimit,
		systemPrompt:  cfg.SystemPrompt,
		memoryChars:   cfg.Memory.MaxChars,
	}
	k.tools = k.toolRegistry

	for _, opt := range opts {
		opt(k)
	}
	if k.initErr != nil {
		return nil, fmt.Errorf("failed to register tools: %w", k.initErr)
	}

	if len(k.registry.Names()) > 0 && k.tools == ToolExecutor(k.toolRegistry) {
		if _, exists := k.toolRegistry.Get(delegate.ToolName); !exists {
			if err := k.toolRegistry.Register(delegate.NewTool(k.registry, k.logger)); err != nil {
				return nil, fmt.Errorf("failed to register delegate tool: %w", err)
			}
		}
	}

	if k.observer == nil {
		obs, err := observability.New(cfg.Observer, k.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create observer: %w", err)
		}
		k.observer = obs
	}

	k.parser = toolcall.NewParser(k.logger)
	if k.historyLimit <= 0 {
		k.historyLimit = history.DefaultLimit
	}

	return k, nil
}

// Registry returns the kernel's delegate agent registry.
func (k *Kernel) Registry() *agent.Registry {
	return k.registry
}

// Tools returns the definitions of the tools offered to the model.
func (k *Kernel) Tools() []protocol.Tool {
	return k.tools.List()
}

// Session returns the conversation used by Run.
func (k *Kernel) Session() session.Session {
	return k.session
}

// SystemPrompt composes the configured prompt, the workspace context, and
// the tool-use instructions into the system message for a new conversation.
func (k *Kernel) SystemPrompt(ctx context.Context) (string, error) {
	parts := make([]string, 0, 3)
	if k.systemPrompt != "" {
		parts = append(parts, k.systemPrompt)
	}

	workspace, err := memory.Compose(ctx, k.store, k.memoryChars)
	if err != nil {
		return "", err
	}
	if workspace != "" {
		parts = append(parts, workspace)
	}

	prompt := strings.Join(parts, "\n\n")
	if defs := k.tools.List(); len(defs) > 0 {
		prompt += toolcall.Instructions(defs)
	}
	return prompt, nil
}

// Execute runs one turn over a copy of conversation. The model is called
// at most maxIterations times. Each response either ends the turn (no tool
// calls) or has its calls executed in order, after which the raw response
// and one synthetic user message with all results are appended.
//
// Provider failures return ErrProvider; an exhausted budget returns
// ErrMaxIterations. In both cases Result.History holds the conversation as
// of the last completed iteration.
func (k *Kernel) Execute(ctx context.Context, conversation []protocol.Message) (*Result, error) {
	ctx, _ = delegate.EnsureDepth(ctx)

	msgs := slices.Clone(conversation)
	result := &Result{History: msgs}

	start := time.Now()
	k.emit(ctx, EventAgentStart, observability.LevelInfo, map[string]any{
		"agent":    k.agent.ID(),
		"provider": k.agent.Provider().Name(),
		"model":    k.agent.Model(),
	})
	defer func() {
		k.emit(ctx, EventAgentEnd, observability.LevelInfo, map[string]any{
			"duration":   time.Since(start),
			"iterations": result.Iterations,
		})
	}()

	for iteration := 1; iteration <= k.maxIterations; iteration++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		k.emit(ctx, EventIterationStart, observability.LevelVerbose, map[string]any{
			"iteration": iteration,
		})

		raw, err := k.agent.Chat(ctx, msgs)
		if err != nil {
			k.emit(ctx, EventError, observability.LevelError, map[string]any{
				"iteration": iteration,
				"error":     err.Error(),
			})
			return result, fmt.Errorf("%w: %w", ErrProvider, err)
		}

		text, calls := k.parser.Parse(raw)

		if len(calls) == 0 {
			msgs = append(msgs, protocol.AssistantMessage(raw))
			result.History = msgs
			result.Iterations = iteration
			result.Response = text
			if result.Response == "" {
				result.Response = raw
			}

			k.emit(ctx, EventResponse, observability.LevelInfo, map[string]any{
				"iteration":       iteration,
				"response_length": len(result.Response),
			})
			return result, nil
		}

		if text != "" && k.output != nil {
			fmt.Fprintln(k.output, text)
		}

		outcomes := make([]toolcall.Outcome, 0, len(calls))
		for _, call := range calls {
			record := k.executeTool(ctx, iteration, call)
			result.ToolCalls = append(result.ToolCalls, record)
			outcomes = append(outcomes, toolcall.Outcome{Name: call.Name, Output: record.Result})
		}

		msgs = append(msgs,
			protocol.AssistantMessage(raw),
			protocol.UserMessage(toolcall.FormatResults(outcomes)),
		)
		result.History = msgs
		result.Iterations = iteration
	}

	k.emit(ctx, EventError, observability.LevelWarning, map[string]any{
		"error":      "max iterations reached",
		"iterations": k.maxIterations,
	})

	return result, fmt.Errorf("%w (%d)", ErrMaxIterations, k.maxIterations)
}

// Run executes one turn of the kernel's own conversation: the session is
// seeded with the system prompt on first use, the prompt is appended, and
// the resulting history is trimmed and stored back.
func (k *Kernel) Run(ctx context.Context, prompt string) (*Result, error) {
	if len(k.session.Messages()) == 0 {
		system, err := k.SystemPrompt(ctx)
		if err != nil {
			return &Result{}, err
		}
		if system != "" {
			k.session.AddMessage(protocol.SystemMessage(system))
		}
	}

	k.session.AddMessage(protocol.UserMessage(prompt))

	k.emit(ctx, EventRunStart, observability.LevelInfo, map[string]any{
		"prompt_length":  len(prompt),
		"max_iterations": k.maxIterations,
		"tools":          len(k.tools.List()),
	})

	result, err := k.Execute(ctx, k.session.Messages())
	k.session.Replace(history.Trim(result.History, k.historyLimit))
	if err != nil {
		return result, err
	}

	k.emit(ctx, EventRunComplete, observability.LevelInfo, map[string]any{
		"iterations": result.Iterations,
		"tool_calls": len(result.ToolCalls),
	})
	return result, nil
}

func (k *Kernel) executeTool(ctx context.Context, iteration int, call protocol.ToolCall) ToolCallRecord {
	record := ToolCallRecord{Call: call, Iteration: iteration}

	start := time.Now()
	res, err := k.tools.Execute(ctx, call.Name, call.Arguments)
	if errors.Is(err, tools.ErrNotFound) {
		record.Result = "Unknown tool: " + call.Name
		return record
	}
	record.Duration = time.Since(start)

	switch {
	case err != nil:
		record.Result = fmt.Sprintf("Error executing %s: %v", call.Name, err)
	case res.Success:
		record.Result = res.Output
		record.Success = true
	default:
		msg := res.Error
		if msg == "" {
			msg = res.Output
		}
		record.Result = "Error: " + msg
	}

	k.emit(ctx, EventToolCall, observability.LevelVerbose, map[string]any{
		"iteration": iteration,
		"tool":      call.Name,
		"arguments": call.Args(),
		"duration":  record.Duration,
		"success":   record.Success,
	})

	return record
}

func (k *Kernel) emit(ctx context.Context, typ observability.EventType, level observability.Level, data map[string]any) {
	observability.Emit(ctx, k.observer, observability.Event{
		Type:      typ,
		Level:     level,
		Timestamp: time.Now(),
		Source:    "kernel",
		Data:      data,
	})
}
