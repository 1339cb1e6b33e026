package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"

	"github.com/yemubit/zeroclaw/gateway"
)

func runSessions(ctx context.Context, args []string) error {
	var (
		url   string
		token string
	)

	fs := pflag.NewFlagSet("zeroclaw sessions", pflag.ContinueOnError)
	fs.StringVar(&url, "url", "http://127.0.0.1:3000", "base URL of a running zeroclaw server")
	fs.StringVar(&token, "token", os.Getenv("ZEROCLAW_TOKEN"), "bearer token for the server")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	action := "list"
	if fs.NArg() > 0 {
		action = fs.Arg(0)
	}

	client := gateway.NewAdminClient(nil, url, token)

	switch action {
	case "list":
		infos, err := client.ListSessions(ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tMESSAGES\tAGE\tIDLE")
		for _, info := range infos {
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", info.ID, info.MessageCount,
				info.Age.Round(time.Second), info.Idle.Round(time.Second))
		}
		return w.Flush()

	case "create":
		id, err := client.CreateSession(ctx)
		if err != nil {
			return err
		}
		fmt.Println(id)
		return nil

	case "count":
		n, err := client.CountSessions(ctx)
		if err != nil {
			return err
		}
		fmt.Println(n)
		return nil

	default:
		return fmt.Errorf("unknown sessions action: %s (want list, create, or count)", action)
	}
}
