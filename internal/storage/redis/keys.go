package redis

import (
	"fmt"

	"github.com/atlashelp/atlascore-connector/internal/model"
)

// Key prefix for all connector data
const keyPrefix = "atlascore"

// profileKey returns the Redis key for a player profile document
func profileKey(id model.Identity) string {
	return fmt.Sprintf("%s:profile:%s", keyPrefix, id)
}
