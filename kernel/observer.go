package kernel

import "github.com/yemubit/zeroclaw/observability"

// Kernel event types.
const (
	EventRunStart       observability.EventType = "kernel.run.start"
	EventRunComplete    observability.EventType = "kernel.run.complete"
	EventAgentStart     observability.EventType = "kernel.agent.start"
	EventAgentEnd       observability.EventType = "kernel.agent.end"
	EventIterationStart observability.EventType = "kernel.iteration.start"
	EventToolCall       observability.EventType = "kernel.tool.call"
	EventResponse       observability.EventType = "kernel.response"
	EventError          observability.EventType = "kernel.error"
)
