// Package placeholder models the host's best-effort stat resolution
// capability and the registry of optional stat providers.
package placeholder

import (
	"strings"

	"github.com/atlashelp/atlascore-connector/internal/model"
)

// Resolver resolves stat tokens (e.g. "%statistic_deaths%") for an
// identity. An unresolvable token is echoed back unchanged; callers treat
// an echo as "unavailable".
type Resolver interface {
	Resolve(id model.Identity, token string) string
}

// Key converts a token to its stored stat key: percent signs stripped,
// lowercased.
func Key(token string) string {
	return strings.ToLower(strings.ReplaceAll(token, "%", ""))
}

// Static is a Resolver backed by per-identity token maps. Used in tests
// and by embedders whose stat sources are precomputed.
type Static map[model.Identity]map[string]string

var _ Resolver = (Static)(nil)

// Resolve returns the mapped value, echoing the token when absent.
func (s Static) Resolve(id model.Identity, token string) string {
	if vals, ok := s[id]; ok {
		if v, ok := vals[token]; ok {
			return v
		}
	}
	return token
}
