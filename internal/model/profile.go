package model

import "time"

// Identity uniquely identifies a player account across the system.
// It is the player's stable UUID, distinct from their mutable display name.
type Identity string

// PlayerProfile is the persisted profile document for a single identity.
type PlayerProfile struct {
	Identity    Identity          `json:"uuid"`
	DisplayName string            `json:"playerName"`
	Stats       map[string]string `json:"stats"`
	LastUpdated time.Time         `json:"lastUpdated"`
}

// MergeStats combines cached stats with freshly computed live stats.
// Live values win on key collision; cached keys absent from the live
// map are retained.
func MergeStats(cached, live map[string]string) map[string]string {
	merged := make(map[string]string, len(cached)+len(live))
	for k, v := range cached {
		merged[k] = v
	}
	for k, v := range live {
		merged[k] = v
	}
	return merged
}

// StatsSnapshot is the server-wide counter set pushed to the telemetry
// collector. NewPlayersToday is read-and-clear: draining it for a report
// resets it to zero.
type StatsSnapshot struct {
	OnlinePlayers   int `json:"onlinePlayers"`
	MaxPlayers      int `json:"maxPlayers"`
	NewPlayersToday int `json:"newPlayersToday"`
}
