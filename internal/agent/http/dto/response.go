package dto

import (
	"time"

	agentDomain "github.com/allisson/fieldguard/internal/agent/domain"
)

// AgentResponse represents an agent in API responses. Protected values, fingerprints
// and hashes are never exposed.
type AgentResponse struct {
	ID        string    `json:"id"`
	NIN       string    `json:"nin"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	State     string    `json:"state"`
	LGA       string    `json:"lga"`
	Address   string    `json:"address"`
	HasPIN    bool      `json:"has_pin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MapAgentToResponse converts a domain agent to an API response.
func MapAgentToResponse(agent *agentDomain.Agent) AgentResponse {
	return AgentResponse{
		ID:        agent.ID.String(),
		NIN:       agent.NIN,
		Email:     agent.Email,
		Phone:     agent.Phone,
		FirstName: agent.FirstName,
		LastName:  agent.LastName,
		State:     agent.State,
		LGA:       agent.LGA,
		Address:   agent.Address,
		HasPIN:    agent.HasPIN,
		CreatedAt: agent.CreatedAt,
		UpdatedAt: agent.UpdatedAt,
	}
}

// ListAgentsResponse represents a page of agents.
type ListAgentsResponse struct {
	Data []AgentResponse `json:"data"`
}

// MapAgentsToListResponse converts domain agents to a list response.
func MapAgentsToListResponse(agents []*agentDomain.Agent) ListAgentsResponse {
	responses := make([]AgentResponse, 0, len(agents))
	for _, agent := range agents {
		responses = append(responses, MapAgentToResponse(agent))
	}
	return ListAgentsResponse{Data: responses}
}

// VerifyPINResponse is the result of a PIN check.
type VerifyPINResponse struct {
	Valid bool `json:"valid"`
}
