package profile

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/atlashelp/atlascore-connector/internal/dependencies/clock"
	"github.com/atlashelp/atlascore-connector/internal/host"
	"github.com/atlashelp/atlascore-connector/internal/model"
	"github.com/atlashelp/atlascore-connector/internal/placeholder"
)

// unknownName is stored when the host cannot resolve a display name
const unknownName = "Unknown"

// Service produces the authoritative stat view for an identity by merging
// the persisted profile with freshly computed live stats, live values
// winning per key.
type Service struct {
	client   *Client
	bridge   *host.Bridge
	host     host.Host
	resolver placeholder.Resolver
	registry *placeholder.Registry
	clock    clock.Clock
	logger   *slog.Logger
}

// NewService creates the profile sync service.
func NewService(
	client *Client,
	bridge *host.Bridge,
	h host.Host,
	resolver placeholder.Resolver,
	registry *placeholder.Registry,
	clk clock.Clock,
	logger *slog.Logger,
) *Service {
	return &Service{
		client:   client,
		bridge:   bridge,
		host:     h,
		resolver: resolver,
		registry: registry,
		clock:    clk,
		logger:   logger,
	}
}

// Client returns the underlying store client.
func (s *Service) Client() *Client {
	return s.client
}

// liveView is computed on the host thread in a single bridge task
type liveView struct {
	name   string
	stats  map[string]string
	online bool
}

// collectLive gathers every currently resolvable stat for an identity.
// Must run on the host thread. Values equal to the empty string, or
// echoed back unchanged by the resolver, are treated as unavailable and
// dropped.
func (s *Service) collectLive(id model.Identity) (liveView, error) {
	if !s.host.HasPlayed(id) {
		return liveView{}, model.ErrPlayerNotFound
	}

	name, ok := s.host.PlayerName(id)
	if !ok {
		name = unknownName
	}

	stats := map[string]string{"player_name": name}

	for _, token := range s.registry.Tokens() {
		value := s.resolver.Resolve(id, token)
		if value == "" || value == token {
			continue
		}
		stats[placeholder.Key(token)] = value
	}

	if s.registry.Enabled(placeholder.CapabilityEconomy) {
		raw := s.resolver.Resolve(id, placeholder.EconomyBalanceToken)
		if raw != "" && raw != placeholder.EconomyBalanceToken {
			stats[placeholder.Key(placeholder.EconomyBalanceToken)] = strings.ReplaceAll(raw, ",", "")
		}
	}

	_, online := s.host.Player(id)
	return liveView{name: name, stats: stats, online: online}, nil
}

// GetProfile returns the merged stat view for an identity. The cached
// profile is advisory: a load failure degrades to live stats only. When
// the identity is online the merged view is written back through the
// fire-and-forget save path as a refresh.
func (s *Service) GetProfile(ctx context.Context, id model.Identity) (map[string]string, error) {
	live, err := host.Do(ctx, s.bridge, func() (liveView, error) {
		return s.collectLive(id)
	})
	if err != nil {
		return nil, err
	}

	cached := s.loadCached(ctx, id, live.name)

	merged := model.MergeStats(cached, live.stats)

	if live.online {
		s.client.Save(&model.PlayerProfile{
			Identity:    id,
			DisplayName: live.name,
			Stats:       merged,
			LastUpdated: s.clock.Now(),
		})
	}

	return merged, nil
}

// HandleQuit persists the departing player's merged profile. Called by
// the host when a player disconnects; runs off the host thread and never
// blocks the caller.
func (s *Service) HandleQuit(id model.Identity) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		live, err := host.Do(ctx, s.bridge, func() (liveView, error) {
			return s.collectLive(id)
		})
		if err != nil {
			s.logger.Error("could not collect stats for quitting player",
				slog.String("uuid", string(id)),
				slog.String("error", err.Error()))
			return
		}

		cached := s.loadCached(ctx, id, live.name)

		s.client.Save(&model.PlayerProfile{
			Identity:    id,
			DisplayName: live.name,
			Stats:       model.MergeStats(cached, live.stats),
			LastUpdated: s.clock.Now(),
		})
	}()
}

// loadCached fetches the persisted stats map, degrading to empty on any
// failure. Load failures are non-fatal to reads.
func (s *Service) loadCached(ctx context.Context, id model.Identity, name string) map[string]string {
	cachedProfile, err := s.client.Load(ctx, id)
	if err != nil {
		if !errors.Is(err, model.ErrProfileNotFound) {
			s.logger.Warn("could not load cached profile",
				slog.String("player", name),
				slog.String("error", err.Error()))
		}
		return nil
	}
	return cachedProfile.Stats
}
