package memory

import (
	"context"
	"sync"

	"github.com/atlashelp/atlascore-connector/internal/model"
	"github.com/atlashelp/atlascore-connector/internal/storage"
)

// Storage is an in-memory implementation of the profile store
type Storage struct {
	mu       sync.RWMutex
	profiles map[model.Identity]*model.PlayerProfile

	// FailSaves and FailLoads force errors, for exercising the
	// degraded paths in tests
	FailSaves error
	FailLoads error
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		profiles: make(map[model.Identity]*model.PlayerProfile),
	}
}

// Ensure Storage implements the interface
var _ storage.ProfileStore = (*Storage)(nil)

func (s *Storage) SaveProfile(ctx context.Context, profile *model.PlayerProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailSaves != nil {
		return s.FailSaves
	}
	cp := *profile
	cp.Stats = make(map[string]string, len(profile.Stats))
	for k, v := range profile.Stats {
		cp.Stats[k] = v
	}
	s.profiles[profile.Identity] = &cp
	return nil
}

func (s *Storage) GetProfile(ctx context.Context, id model.Identity) (*model.PlayerProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.FailLoads != nil {
		return nil, s.FailLoads
	}
	profile, ok := s.profiles[id]
	if !ok {
		return nil, model.ErrProfileNotFound
	}
	cp := *profile
	cp.Stats = make(map[string]string, len(profile.Stats))
	for k, v := range profile.Stats {
		cp.Stats[k] = v
	}
	return &cp, nil
}
