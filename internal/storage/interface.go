package storage

import (
	"context"

	"github.com/atlashelp/atlascore-connector/internal/model"
)

// ProfileStore defines the interface to the remote player profile store.
// It is a single-document key/value collaborator: one profile record per
// identity.
type ProfileStore interface {
	// SaveProfile writes the full profile document for its identity,
	// replacing any previous record.
	SaveProfile(ctx context.Context, profile *model.PlayerProfile) error

	// GetProfile returns the profile for an identity, or
	// model.ErrProfileNotFound if none has been saved.
	GetProfile(ctx context.Context, id model.Identity) (*model.PlayerProfile, error)
}
