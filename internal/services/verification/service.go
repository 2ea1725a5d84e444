// Package verification implements the account-linking code handshake:
// a one-time 6-digit code is issued to an online player in-game and
// consumed by the web backend to prove account ownership.
package verification

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"sync"
	"time"

	"github.com/atlashelp/atlascore-connector/internal/dependencies/clock"
	"github.com/atlashelp/atlascore-connector/internal/dependencies/random"
	"github.com/atlashelp/atlascore-connector/internal/host"
	"github.com/atlashelp/atlascore-connector/internal/model"
)

const codeDigits = 6

// Config holds configuration for the verification service
type Config struct {
	// CodeTTL is how long an issued code stays valid. Expiry is checked
	// lazily at verify time; there is no background sweep.
	CodeTTL time.Duration
}

// DefaultConfig returns default verification configuration
func DefaultConfig() Config {
	return Config{
		CodeTTL: 5 * time.Minute,
	}
}

type issuedCode struct {
	code     string
	issuedAt time.Time
}

// Service issues and consumes verification codes. The code table is
// process-wide shared state mutated from concurrent request handlers, so
// it is guarded by its own mutex rather than host-thread access.
type Service struct {
	bridge *host.Bridge
	host   host.Host
	random random.Random
	clock  clock.Clock
	logger *slog.Logger

	mu    sync.Mutex
	codes map[model.Identity]issuedCode

	codeTTL time.Duration
}

// New creates a new verification service
func New(bridge *host.Bridge, h host.Host, rnd random.Random, clk clock.Clock, cfg Config, logger *slog.Logger) *Service {
	if cfg.CodeTTL == 0 {
		cfg.CodeTTL = DefaultConfig().CodeTTL
	}
	return &Service{
		bridge:  bridge,
		host:    h,
		random:  rnd,
		clock:   clk,
		logger:  logger,
		codes:   make(map[model.Identity]issuedCode),
		codeTTL: cfg.CodeTTL,
	}
}

// Generate issues a fresh code for an online player, replacing any prior
// code for that identity, and delivers it in-game. The result reflects
// issuance, not delivery: the chat message is fire-and-forget.
func (s *Service) Generate(ctx context.Context, username string) error {
	player, err := host.Do(ctx, s.bridge, func() (*host.OnlinePlayer, error) {
		p, ok := s.host.PlayerByName(username)
		if !ok {
			return nil, model.ErrPlayerOffline
		}
		return p, nil
	})
	if err != nil {
		return err
	}

	code := s.random.Code(codeDigits)

	s.mu.Lock()
	s.codes[player.ID] = issuedCode{code: code, issuedAt: s.clock.Now()}
	s.mu.Unlock()

	id := player.ID
	if err := s.bridge.Post(func() {
		s.host.SendMessage(id,
			"§e[AtlasCore] §fYour verification code is: §a§l"+code,
			"§e[AtlasCore] §fEnter this code on the website to link your account.")
	}); err != nil {
		s.logger.Warn("could not deliver verification code in-game",
			slog.String("player", username),
			slog.String("error", err.Error()))
	}

	s.logger.Info("verification code issued", slog.String("player", username))
	return nil
}

// Verify consumes a code for the named player, who need not be online.
// On success the code is removed (single use) and the identity returned.
// A wrong, expired or absent code yields the same generic error so the
// caller cannot distinguish the cases.
func (s *Service) Verify(ctx context.Context, username, code string) (model.Identity, error) {
	id, err := host.Do(ctx, s.bridge, func() (model.Identity, error) {
		identity, ok := s.host.LookupIdentity(username)
		if !ok {
			return "", model.ErrPlayerNotFound
		}
		return identity, nil
	})
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.codes[id]
	if !ok {
		return "", model.ErrInvalidCode
	}

	if s.clock.Now().Sub(stored.issuedAt) > s.codeTTL {
		delete(s.codes, id)
		return "", model.ErrInvalidCode
	}

	if subtle.ConstantTimeCompare([]byte(stored.code), []byte(code)) != 1 {
		return "", model.ErrInvalidCode
	}

	delete(s.codes, id)
	s.logger.Info("account verification succeeded", slog.String("player", username))
	return id, nil
}
