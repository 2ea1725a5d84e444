// Package stats tracks server-wide counters and reports them to the
// remote telemetry collector on an interval.
package stats

import (
	"sync/atomic"

	"github.com/atlashelp/atlascore-connector/internal/host"
	"github.com/atlashelp/atlascore-connector/internal/model"
)

// Collector owns the new-player counter and assembles stats snapshots.
// HandleJoin is invoked from host-side join events; the report-time drain
// runs inside a bridge task so it is atomic with those increments.
type Collector struct {
	host            host.Host
	newPlayersToday atomic.Int64
}

// NewCollector creates a collector over the given host.
func NewCollector(h host.Host) *Collector {
	return &Collector{host: h}
}

// HandleJoin records a join event. Only first-time joins count towards
// the daily new-player total.
func (c *Collector) HandleJoin(firstJoin bool) {
	if firstJoin {
		c.newPlayersToday.Add(1)
	}
}

// NewPlayersToday returns the counter without clearing it. Used for
// command substitution and the read-only stats endpoint.
func (c *Collector) NewPlayersToday() int {
	return int(c.newPlayersToday.Load())
}

// Snapshot builds the current counter view. Must run on the host thread.
// When drain is set the new-player counter is atomically reset to zero as
// part of the read.
func (c *Collector) Snapshot(drain bool) model.StatsSnapshot {
	var newPlayers int64
	if drain {
		newPlayers = c.newPlayersToday.Swap(0)
	} else {
		newPlayers = c.newPlayersToday.Load()
	}
	return model.StatsSnapshot{
		OnlinePlayers:   c.host.OnlineCount(),
		MaxPlayers:      c.host.MaxPlayers(),
		NewPlayersToday: int(newPlayers),
	}
}
