package toolcall

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yemubit/zeroclaw/core/protocol"
)

// ResultsHeader opens the synthetic user message carrying tool results.
const ResultsHeader = "[Tool results]\n"

// Outcome is the rendered result of one executed tool call.
type Outcome struct {
	Name   string
	Output string
}

// FormatResults renders outcomes as the synthetic message fed back to the
// model, one result block per outcome in the given order.
func FormatResults(outcomes []Outcome) string {
	var b strings.Builder
	b.WriteString(ResultsHeader)
	for _, o := range outcomes {
		fmt.Fprintf(&b, "<tool_result name=%q>\n%s\n</tool_result>\n", o.Name, o.Output)
	}
	return b.String()
}

// Instructions renders the tool-use protocol section of a system prompt,
// listing every tool with its description and parameter schema.
func Instructions(tools []protocol.Tool) string {
	var b strings.Builder

	b.WriteString("\n## Tool Use Protocol\n\n")
	b.WriteString("To use a tool, wrap a JSON object in " + OpenTag + CloseTag + " tags:\n\n")
	b.WriteString("```\n" + OpenTag + "\n{\"name\": \"tool_name\", \"arguments\": {\"param\": \"value\"}}\n" + CloseTag + "\n```\n\n")
	b.WriteString("Output actual " + OpenTag + " tags. Do not describe the steps instead of calling the tool.\n\n")
	b.WriteString("You may use multiple tool calls in a single response. ")
	b.WriteString("After tool execution, results appear in <tool_result> tags. ")
	b.WriteString("Continue reasoning with the results until you can give a final answer.\n\n")
	b.WriteString("### Available Tools\n\n")

	for _, t := range tools {
		schema, err := json.Marshal(t.Parameters)
		if err != nil || t.Parameters == nil {
			schema = []byte("{}")
		}
		fmt.Fprintf(&b, "**%s**: %s\nParameters: `%s`\n\n", t.Name, t.Description, schema)
	}

	return b.String()
}
