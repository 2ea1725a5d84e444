package host

import (
	"github.com/atlashelp/atlascore-connector/internal/model"
)

// OnlinePlayer describes a player currently connected to the simulation.
type OnlinePlayer struct {
	ID    model.Identity
	Name  string
	World string
}

// Host is the connector's view of the game simulation. Implementations are
// not safe for concurrent use: every method must be invoked on the host
// thread, which in this process means from inside a Bridge task.
type Host interface {
	// Player returns the online player with the given identity.
	Player(id model.Identity) (*OnlinePlayer, bool)

	// PlayerByName returns the online player with the given exact name.
	PlayerByName(name string) (*OnlinePlayer, bool)

	// LookupIdentity resolves a name to an identity, including players
	// who are not currently online.
	LookupIdentity(name string) (model.Identity, bool)

	// PlayerName resolves an identity to its last known name, including
	// players who are not currently online.
	PlayerName(id model.Identity) (string, bool)

	// HasPlayed reports whether the identity has ever joined the server.
	HasPlayed(id model.Identity) bool

	// OnlineCount returns the number of currently connected players.
	OnlineCount() int

	// MaxPlayers returns the configured player capacity.
	MaxPlayers() int

	// SendMessage delivers chat lines to an online player. Lines to
	// offline players are silently discarded.
	SendMessage(id model.Identity, lines ...string)

	// DispatchCommand runs a privileged command and reports whether the
	// simulation accepted it for execution.
	DispatchCommand(command string) bool
}
