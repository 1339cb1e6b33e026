package agent

import "errors"

// Sentinel errors for agent construction and the agent registry.
var (
	ErrAgentNotFound  = errors.New("agent not found")
	ErrAgentExists    = errors.New("agent already registered")
	ErrEmptyAgentName = errors.New("agent name is empty")
	ErrNoProvider     = errors.New("agent has no provider")
)
