package response

import "github.com/atlashelp/atlascore-connector/internal/model"

// Envelope is the uniform response shape: every endpoint reports success
// plus an optional human-readable message.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// OK builds a success envelope with a message.
func OK(message string) Envelope {
	return Envelope{Success: true, Message: message}
}

// Failure builds a failure envelope with a message.
func Failure(message string) Envelope {
	return Envelope{Success: false, Message: message}
}

// PlayerStats is the response for the player stats endpoint
type PlayerStats struct {
	Success bool              `json:"success"`
	Stats   map[string]string `json:"stats"`
}

// Verification is the response for a successful code verification
type Verification struct {
	Success bool   `json:"success"`
	UUID    string `json:"uuid"`
	Message string `json:"message"`
}

// ServerStats is the response for the server stats endpoint
type ServerStats struct {
	Success         bool `json:"success"`
	OnlinePlayers   int  `json:"onlinePlayers"`
	MaxPlayers      int  `json:"maxPlayers"`
	NewPlayersToday int  `json:"newPlayersToday"`
}

// ServerStatsFromSnapshot converts a counter snapshot
func ServerStatsFromSnapshot(s model.StatsSnapshot) ServerStats {
	return ServerStats{
		Success:         true,
		OnlinePlayers:   s.OnlinePlayers,
		MaxPlayers:      s.MaxPlayers,
		NewPlayersToday: s.NewPlayersToday,
	}
}
