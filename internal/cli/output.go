package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"error": err.Error()})
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Envelope:
		o.printEnvelope(v)
	case PlayerStatsResult:
		o.printPlayerStats(v)
	case VerificationResult:
		o.printVerification(v)
	case ServerStatsResult:
		o.printServerStats(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Envelope mirrors the API's uniform response shape
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// PlayerStatsResult response type
type PlayerStatsResult struct {
	Success bool              `json:"success"`
	Stats   map[string]string `json:"stats"`
}

// VerificationResult response type
type VerificationResult struct {
	Success bool   `json:"success"`
	UUID    string `json:"uuid"`
	Message string `json:"message"`
}

// ServerStatsResult response type
type ServerStatsResult struct {
	Success         bool `json:"success"`
	OnlinePlayers   int  `json:"onlinePlayers"`
	MaxPlayers      int  `json:"maxPlayers"`
	NewPlayersToday int  `json:"newPlayersToday"`
}

func (o *Output) printEnvelope(e Envelope) {
	if e.Message != "" {
		fmt.Println(e.Message)
	} else if e.Success {
		fmt.Println("OK")
	}
}

func (o *Output) printPlayerStats(p PlayerStatsResult) {
	keys := make([]string, 0, len(p.Stats))
	for k := range p.Stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Printf("%s: %s\n", k, p.Stats[k])
	}
}

func (o *Output) printVerification(v VerificationResult) {
	fmt.Printf("UUID: %s\n", v.UUID)
	if v.Message != "" {
		fmt.Println(v.Message)
	}
}

func (o *Output) printServerStats(s ServerStatsResult) {
	fmt.Printf("Online Players: %d / %d\n", s.OnlinePlayers, s.MaxPlayers)
	fmt.Printf("New Players Today: %d\n", s.NewPlayersToday)
}
