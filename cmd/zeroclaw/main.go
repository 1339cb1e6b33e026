// zeroclaw runs a tool-using agent from the terminal or serves it to
// realtime clients over WebSocket.
//
// Usage:
//
//	zeroclaw agent [-m message] [--config file]
//	zeroclaw serve [--config file] [--addr host:port]
//	zeroclaw sessions list|create|count [--url base] [--token t]
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/yemubit/zeroclaw/kernel"
)

const usage = `Usage: zeroclaw <command> [flags]

Commands:
  agent      Chat with the agent (one-shot with -m, interactive otherwise)
  serve      Serve the agent over WebSocket with session admin RPC
  sessions   Inspect or create sessions on a running server

Run "zeroclaw <command> --help" for command flags.
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return errors.New("missing command")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch args[0] {
	case "agent":
		return runAgent(ctx, args[1:])
	case "serve":
		return runServe(ctx, args[1:])
	case "sessions":
		return runSessions(ctx, args[1:])
	case "help", "-h", "--help":
		fmt.Fprint(os.Stdout, usage)
		return nil
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

// kernelFlags are the configuration overrides shared by agent and serve.
type kernelFlags struct {
	configFile    string
	provider      string
	model         string
	apiKey        string
	systemPrompt  string
	memoryPath    string
	maxIterations int
	verbose       bool
}

func (f *kernelFlags) AddFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&f.configFile, "config", "c", "", "path to config file (JSON with comments, or YAML)")
	fs.StringVar(&f.provider, "provider", "", "provider name: openai, anthropic, openrouter, ollama (overrides config)")
	fs.StringVar(&f.model, "model", "", "model name (overrides config)")
	fs.StringVar(&f.apiKey, "api-key", "", "provider API key (overrides config)")
	fs.StringVar(&f.systemPrompt, "system-prompt", "", "system prompt (overrides config)")
	fs.StringVar(&f.memoryPath, "memory", "", "workspace context directory (overrides config)")
	fs.IntVar(&f.maxIterations, "max-iterations", 0, "maximum tool iterations per turn (overrides config)")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "enable debug logging to stderr")
}

func (f *kernelFlags) load() (*kernel.Config, error) {
	cfg := kernel.DefaultConfig()
	if f.configFile != "" {
		loaded, err := kernel.LoadConfig(f.configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	if f.provider != "" {
		cfg.Agent.Provider.Name = f.provider
	}
	if f.model != "" {
		cfg.Agent.Model = f.model
	}
	if f.apiKey != "" {
		cfg.Agent.Provider.APIKey = f.apiKey
	}
	if f.systemPrompt != "" {
		cfg.SystemPrompt = f.systemPrompt
	}
	if f.memoryPath != "" {
		cfg.Memory.Path = f.memoryPath
	}
	if f.maxIterations > 0 {
		cfg.MaxIterations = f.maxIterations
	}
	return &cfg, nil
}

func (f *kernelFlags) logger() *slog.Logger {
	level := slog.LevelInfo
	if f.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func newKernel(cfg *kernel.Config, logger *slog.Logger, opts ...kernel.Option) (*kernel.Kernel, error) {
	opts = append([]kernel.Option{
		kernel.WithLogger(logger),
		kernel.WithTools(builtinTools()...),
	}, opts...)

	k, err := kernel.New(cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create kernel: %w", err)
	}
	return k, nil
}

func parseFlags(fs *pflag.FlagSet, args []string) error {
	fs.SetOutput(os.Stderr)
	return fs.Parse(args)
}
