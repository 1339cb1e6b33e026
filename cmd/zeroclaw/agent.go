package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/yemubit/zeroclaw/kernel"
)

func runAgent(ctx context.Context, args []string) error {
	var (
		flags   kernelFlags
		message string
		details bool
	)

	fs := pflag.NewFlagSet("zeroclaw agent", pflag.ContinueOnError)
	flags.AddFlags(fs)
	fs.StringVarP(&message, "message", "m", "", "send a single message and exit")
	fs.BoolVar(&details, "details", false, "print tool calls and iteration count after each response")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	cfg, err := flags.load()
	if err != nil {
		return err
	}

	k, err := newKernel(cfg, flags.logger(), kernel.WithOutput(os.Stdout))
	if err != nil {
		return err
	}

	if message != "" {
		return respond(ctx, k, message, details, os.Stdout)
	}
	return interactive(ctx, k, details, os.Stdin, os.Stdout)
}

func interactive(ctx context.Context, k *kernel.Kernel, details bool, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, "zeroclaw interactive mode. Type /clear to start over, /quit to exit.")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		case "/clear":
			k.Session().Clear()
			fmt.Fprintln(out, "conversation cleared")
			continue
		}

		if err := respond(ctx, k, line, details, out); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
}

func respond(ctx context.Context, k *kernel.Kernel, message string, details bool, out io.Writer) error {
	result, err := k.Run(ctx, message)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, result.Response)

	if details {
		for i, tc := range result.ToolCalls {
			args, _ := tc.Call.MarshalJSON()
			fmt.Fprintf(out, "  [%d] %s\n", i+1, args)
			switch {
			case !tc.Success:
				fmt.Fprintf(out, "    error: %s\n", tc.Result)
			case len(tc.Result) > 200:
				fmt.Fprintf(out, "    -> %s...\n", tc.Result[:200])
			default:
				fmt.Fprintf(out, "    -> %s\n", tc.Result)
			}
		}
		fmt.Fprintf(out, "  iterations: %d\n", result.Iterations)
	}
	return nil
}
