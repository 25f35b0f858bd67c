package domain

// AgentState is the state reported by the remote agent after each command.
// It is the only source of truth for the agent position.
type AgentState struct {
	Location Location
	Color    Color
}

// Identity is a bot registered with the canvas service.
type Identity struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}
