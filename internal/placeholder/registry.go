package placeholder

import "sync"

// Well-known capability names
const (
	CapabilityEconomy = "economy"
	CapabilityFabled  = "fabled"
	CapabilitySkills  = "auraskills"
)

// EconomyBalanceToken is resolved when the economy capability is present.
const EconomyBalanceToken = "%vault_eco_balance%"

// Registry tracks which optional stat providers are present and which
// tokens each contributes. Providers register once at startup; new
// subsystems plug in without touching the sync or dispatch logic.
type Registry struct {
	mu     sync.RWMutex
	order  []string
	groups map[string][]string
}

// NewRegistry creates an empty capability registry.
func NewRegistry() *Registry {
	return &Registry{groups: make(map[string][]string)}
}

// Register adds a provider and the stat tokens it contributes.
// Re-registering a name replaces its token group.
func (r *Registry) Register(name string, tokens ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.groups[name]; !exists {
		r.order = append(r.order, name)
	}
	r.groups[name] = append([]string(nil), tokens...)
}

// Enabled reports whether the named capability is registered.
func (r *Registry) Enabled(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.groups[name]
	return ok
}

// Tokens returns every registered token in registration order.
func (r *Registry) Tokens() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []string
	for _, name := range r.order {
		out = append(out, r.groups[name]...)
	}
	return out
}

// CoreTokens are always collected regardless of optional capabilities.
var CoreTokens = []string{
	"%statistic_player_kills%",
	"%statistic_deaths%",
}

// FabledTokens are contributed by the Fabled class/race subsystem.
var FabledTokens = []string{
	"%fabled_player_class_mainclass%",
	"%fabled_default_currentlevel%",
	"%fabled_player_races_class%",
	"%fabled_health%",
	"%fabled_max_health%",
	"%fabled_mana%",
	"%fabled_max_mana%",
}

// SkillsTokens are contributed by the AuraSkills subsystem.
var SkillsTokens = []string{
	"%auraskills_power%",
	"%auraskills_farming%",
	"%auraskills_foraging%",
	"%auraskills_mining%",
	"%auraskills_fishing%",
	"%auraskills_excavation%",
	"%auraskills_archery%",
	"%auraskills_defense%",
	"%auraskills_fighting%",
	"%auraskills_endurance%",
	"%auraskills_agility%",
	"%auraskills_alchemy%",
	"%auraskills_enchanting%",
	"%auraskills_sorcery%",
	"%auraskills_healing%",
	"%auraskills_forging%",
}
