package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/yemubit/zeroclaw/core/protocol"
	"github.com/yemubit/zeroclaw/tools"
)

func builtinTools() []tools.Tool {
	return []tools.Tool{
		tools.NewFunc(protocol.Tool{
			Name:        "datetime",
			Description: "Returns the current date and time in RFC3339 format.",
			Parameters: map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			},
		}, handleDatetime),

		tools.NewFunc(protocol.Tool{
			Name:        "read_file",
			Description: "Reads the contents of a file at the given path.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"path": map[string]any{
						"type":        "string",
						"description": "Absolute or relative path to the file to read.",
					},
				},
				"required": []string{"path"},
			},
		}, handleReadFile),

		tools.NewFunc(protocol.Tool{
			Name:        "list_directory",
			Description: "Lists files and directories at the given path.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"path": map[string]any{
						"type":        "string",
						"description": "Absolute or relative path to the directory to list. Defaults to the working directory.",
					},
				},
			},
		}, handleListDirectory),
	}
}

func handleDatetime(_ context.Context, _ map[string]any) (tools.Result, error) {
	return tools.Ok(time.Now().Format(time.RFC3339)), nil
}

func handleReadFile(_ context.Context, args map[string]any) (tools.Result, error) {
	path, _ := args["path"].(string)
	if path == "" {
		return tools.Fail("path is required"), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return tools.Fail(err.Error()), nil
	}
	return tools.Ok(string(data)), nil
}

func handleListDirectory(_ context.Context, args map[string]any) (tools.Result, error) {
	path, _ := args["path"].(string)
	if path == "" {
		path = "."
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return tools.Fail(err.Error()), nil
	}

	var b strings.Builder
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			name += "/"
		}
		b.WriteString(name)
		b.WriteByte('\n')
	}
	return tools.Ok(b.String()), nil
}
