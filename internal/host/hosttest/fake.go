// Package hosttest provides an in-memory Host for tests and for running
// the connector standalone without a real host process.
package hosttest

import (
	"sync"

	"github.com/atlashelp/atlascore-connector/internal/host"
	"github.com/atlashelp/atlascore-connector/internal/model"
)

// FakePlayer is a scripted player on the fake host.
type FakePlayer struct {
	ID     model.Identity
	Name   string
	World  string
	Online bool
}

// FakeHost is a scriptable Host implementation. Unlike a real host it is
// mutex-guarded so tests can mutate it from any goroutine.
type FakeHost struct {
	mu sync.Mutex

	players  map[model.Identity]*FakePlayer
	capacity int

	// RejectCommands makes DispatchCommand report failure
	RejectCommands bool

	dispatched []string
	messages   map[model.Identity][]string
}

var _ host.Host = (*FakeHost)(nil)

// New creates an empty fake host with the given player capacity.
func New(capacity int) *FakeHost {
	return &FakeHost{
		players:  make(map[model.Identity]*FakePlayer),
		capacity: capacity,
		messages: make(map[model.Identity][]string),
	}
}

// AddPlayer registers a player on the host.
func (h *FakeHost) AddPlayer(p FakePlayer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	cp := p
	h.players[p.ID] = &cp
}

// SetOnline toggles a registered player's connection state.
func (h *FakeHost) SetOnline(id model.Identity, online bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if p, ok := h.players[id]; ok {
		p.Online = online
	}
}

func (h *FakeHost) Player(id model.Identity) (*host.OnlinePlayer, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	p, ok := h.players[id]
	if !ok || !p.Online {
		return nil, false
	}
	return &host.OnlinePlayer{ID: p.ID, Name: p.Name, World: p.World}, true
}

func (h *FakeHost) PlayerByName(name string) (*host.OnlinePlayer, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, p := range h.players {
		if p.Online && p.Name == name {
			return &host.OnlinePlayer{ID: p.ID, Name: p.Name, World: p.World}, true
		}
	}
	return nil, false
}

func (h *FakeHost) LookupIdentity(name string) (model.Identity, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, p := range h.players {
		if p.Name == name {
			return p.ID, true
		}
	}
	return "", false
}

func (h *FakeHost) PlayerName(id model.Identity) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	p, ok := h.players[id]
	if !ok {
		return "", false
	}
	return p.Name, true
}

func (h *FakeHost) HasPlayed(id model.Identity) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.players[id]
	return ok
}

func (h *FakeHost) OnlineCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, p := range h.players {
		if p.Online {
			n++
		}
	}
	return n
}

func (h *FakeHost) MaxPlayers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.capacity
}

func (h *FakeHost) SendMessage(id model.Identity, lines ...string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	p, ok := h.players[id]
	if !ok || !p.Online {
		return
	}
	h.messages[id] = append(h.messages[id], lines...)
}

func (h *FakeHost) DispatchCommand(command string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.RejectCommands {
		return false
	}
	h.dispatched = append(h.dispatched, command)
	return true
}

// Dispatched returns the commands accepted so far.
func (h *FakeHost) Dispatched() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.dispatched))
	copy(out, h.dispatched)
	return out
}

// Messages returns the chat lines delivered to the given identity.
func (h *FakeHost) Messages(id model.Identity) []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.messages[id]))
	copy(out, h.messages[id])
	return out
}
