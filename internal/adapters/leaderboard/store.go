// Package leaderboard ranks analysed players by composite index for the
// duration of one batch run.
package leaderboard

import (
	"context"

	"github.com/okian/holdemdna/internal/domain/model"
)

// Entry represents a leaderboard row. Equal composites share a rank.
type Entry struct {
	Rank      int
	Player    string
	Composite float64
	Path      string
}

// Store provides read/write access to the ranking state.
type Store interface {
	// UpdateBest records s when the player is new or s beats the player's
	// current composite. Returns true if the store changed.
	UpdateBest(ctx context.Context, s model.PlayerScore) (bool, error)

	// Rank returns the current rank and composite for a player.
	// Returns ErrNotFound if the player is unknown.
	Rank(ctx context.Context, player string) (Entry, error)

	// TopN returns the top-N entries ordered by composite desc, player asc.
	TopN(ctx context.Context, n int) ([]Entry, error)

	// Count returns the number of players tracked.
	Count(ctx context.Context) int
}
