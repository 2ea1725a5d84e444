// Package command substitutes context tokens into a command template and
// dispatches the result as a privileged host command.
package command

import (
	"context"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/atlashelp/atlascore-connector/internal/host"
	"github.com/atlashelp/atlascore-connector/internal/model"
	"github.com/atlashelp/atlascore-connector/internal/placeholder"
	"github.com/atlashelp/atlascore-connector/internal/services/stats"
)

// Sentinel literals substituted when context cannot be resolved.
// Substitution never aborts a dispatch: the command author controls the
// template, so running against a literal sentinel is their signal that
// the context was malformed.
const (
	SentinelPlayer   = "UNKNOWN_PLAYER"
	SentinelUUID     = "UNKNOWN_UUID"
	SentinelUsername = "UNKNOWN_WEB_USERNAME"
)

// extendedToken matches leftover {token} placeholders handed to the
// resolver after the built-in substitutions
var extendedToken = regexp.MustCompile(`\{([a-zA-Z0-9_]+)\}`)

// Service dispatches templated commands through the host task bridge.
type Service struct {
	bridge   *host.Bridge
	host     host.Host
	resolver placeholder.Resolver
	counters *stats.Collector

	defaultWorld string
	logger       *slog.Logger
}

// New creates a new command dispatch service.
func New(bridge *host.Bridge, h host.Host, resolver placeholder.Resolver, counters *stats.Collector, defaultWorld string, logger *slog.Logger) *Service {
	return &Service{
		bridge:       bridge,
		host:         h,
		resolver:     resolver,
		counters:     counters,
		defaultWorld: defaultWorld,
		logger:       logger,
	}
}

// Dispatch substitutes the template on the host thread and dispatches the
// result. The returned bool reports whether the host accepted the
// dispatch, not whether the command semantically succeeded.
func (s *Service) Dispatch(ctx context.Context, template string, playerContext map[string]string) (bool, error) {
	return host.Do(ctx, s.bridge, func() (bool, error) {
		final := s.substitute(template, playerContext)
		s.logger.Info("dispatching command", slog.String("command", final))
		return s.host.DispatchCommand(final), nil
	})
}

// substitute resolves every supported token. Must run on the host thread
// because it reads live player and counter state.
func (s *Service) substitute(template string, playerContext map[string]string) string {
	uuid := playerContext["uuid"]
	identity := model.Identity(uuid)

	// {player}: explicit name first, then the identity registry
	playerName := playerContext["playerName"]
	if playerName == "" && uuid != "" {
		if name, ok := s.host.PlayerName(identity); ok {
			playerName = name
		}
	}
	if playerName == "" {
		playerName = SentinelPlayer
	}

	// {world}: current location when online, configured default otherwise
	world := s.defaultWorld
	if uuid != "" {
		if p, ok := s.host.Player(identity); ok {
			world = p.World
		}
	}

	uuidValue := uuid
	if uuidValue == "" {
		uuidValue = SentinelUUID
	}
	username := playerContext["username"]
	if username == "" {
		username = SentinelUsername
	}

	snap := s.counters.Snapshot(false)

	cmd := strings.NewReplacer(
		"{player}", playerName,
		"{world}", world,
		"{uuid}", uuidValue,
		"{username}", username,
		"{onlinePlayers}", strconv.Itoa(snap.OnlinePlayers),
		"{maxPlayers}", strconv.Itoa(snap.MaxPlayers),
		"{newPlayersToday}", strconv.Itoa(snap.NewPlayersToday),
	).Replace(template)

	// Anything still in braces is offered to the placeholder resolver
	// for the target identity
	if uuid != "" {
		cmd = extendedToken.ReplaceAllStringFunc(cmd, func(match string) string {
			token := "%" + strings.ToLower(match[1:len(match)-1]) + "%"
			value := s.resolver.Resolve(identity, token)
			if value == "" || value == token {
				return match
			}
			return value
		})
	}

	return cmd
}
