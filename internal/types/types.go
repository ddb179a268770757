package types

import (
	"github.com/DoyleJ11/hoops-draft-backend/internal/session"
)

type ClientMessage struct {
	Type     string `json:"type"`
	Team     string `json:"team,omitempty"`
	Position string `json:"position,omitempty"`
	Name     string `json:"name,omitempty"`
	PlayerID string `json:"player_id,omitempty"`
}

type ServerMessage struct {
	Type       string             `json:"type"` // "StateSnapshot" | "Error"
	Version    int                `json:"version,omitempty"`
	State      *session.State     `json:"state,omitempty"`
	Events     []session.Event    `json:"events,omitempty"`
	LegalPicks []string           `json:"legal_picks,omitempty"`
	Error      *session.Rejection `json:"error,omitempty"`
}

type LobbyCreated struct {
	Code string `json:"code"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
