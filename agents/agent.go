// Package agents holds the specialized responder definitions, the
// registry that maps classified intents onto them, and the bounded
// tool-calling loop that drives one agent turn against the model.
package agents

import (
	"github.com/voyantic/concierge/provider"
	"github.com/voyantic/concierge/tools"
)

type AgentType = string

const (
	TypeRouter  AgentType = "router"
	TypeSupport AgentType = "support"
	TypeOrder   AgentType = "order"
	TypeBilling AgentType = "billing"
)

// Agent pairs a system prompt with the toolset it may call. Toolsets
// are built per dispatch so user-scoped tools are bound to the calling
// user and cannot be steered to another user's records.
type Agent struct {
	typ          AgentType
	name         string
	description  string
	systemPrompt string
	capabilities []string
	toolset      func(userID string) []tools.AnonymousTool
}

func (a *Agent) Type() AgentType {
	return a.typ
}

func (a *Agent) Name() string {
	return a.name
}

func (a *Agent) Description() string {
	return a.description
}

// SystemPrompt returns the agent's prompt with the calling user's id
// appended, so tools that take no user argument still act for the
// right user.
func (a *Agent) SystemPrompt(userID string) string {
	return a.systemPrompt + "\n\nCurrent user ID: " + userID
}

// Toolset builds the agent's executable tools bound to userID.
func (a *Agent) Toolset(userID string) []tools.AnonymousTool {
	if a.toolset == nil {
		return nil
	}
	return a.toolset(userID)
}

// ToolInfo describes one tool for the metadata surface.
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Info is the agent's public metadata.
type Info struct {
	Type         AgentType  `json:"type"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Tools        []ToolInfo `json:"tools"`
	Capabilities []string   `json:"capabilities"`
}

// Info describes the agent and its tools. The toolset is instantiated
// with an empty user id purely to read names and descriptions.
func (a *Agent) Info() Info {
	toolset := a.Toolset("")
	infos := make([]ToolInfo, 0, len(toolset))
	for _, t := range toolset {
		infos = append(infos, ToolInfo{Name: t.Name(), Description: t.Description()})
	}
	return Info{
		Type:         a.typ,
		Name:         a.name,
		Description:  a.description,
		Tools:        infos,
		Capabilities: a.capabilities,
	}
}

// toolDefinitions projects an executable toolset into the wire
// declarations sent to the model.
func toolDefinitions(toolset []tools.AnonymousTool) []provider.ToolDefinition {
	defs := make([]provider.ToolDefinition, 0, len(toolset))
	for _, t := range toolset {
		defs = append(defs, provider.ToolDefinition{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.InputSchema(),
		})
	}
	return defs
}
