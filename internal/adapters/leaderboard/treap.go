package leaderboard

import (
	"context"
	"math"
	"math/rand"
	"sync"

	"github.com/okian/holdemdna/internal/domain/model"
)

// Ordering: composite DESC, then player ASC. "before" means ranks earlier,
// so an in-order walk yields the leaderboard from best to worst.

type node struct {
	player    string
	composite float64
	prio      uint64
	left      *node
	right     *node
	size      int
}

func nsize(n *node) int {
	if n == nil {
		return 0
	}
	return n.size
}

func fix(n *node) {
	if n != nil {
		n.size = 1 + nsize(n.left) + nsize(n.right)
	}
}

func before(aScore float64, aPlayer string, bScore float64, bPlayer string) bool {
	if aScore != bScore {
		return aScore > bScore
	}
	return aPlayer < bPlayer
}

func rotateRight(y *node) *node {
	x := y.left
	y.left = x.right
	x.right = y
	fix(y)
	fix(x)
	return x
}

func rotateLeft(x *node) *node {
	y := x.right
	x.right = y.left
	y.left = x
	fix(x)
	fix(y)
	return y
}

func insert(n *node, player string, composite float64, prio uint64) *node {
	if n == nil {
		return &node{player: player, composite: composite, prio: prio, size: 1}
	}
	if before(composite, player, n.composite, n.player) {
		n.left = insert(n.left, player, composite, prio)
		if n.left.prio > n.prio {
			n = rotateRight(n)
		}
	} else {
		n.right = insert(n.right, player, composite, prio)
		if n.right.prio > n.prio {
			n = rotateLeft(n)
		}
	}
	fix(n)
	return n
}

func remove(n *node, player string, composite float64) *node {
	if n == nil {
		return nil
	}
	switch {
	case n.player == player && n.composite == composite:
		if n.left == nil {
			return n.right
		}
		if n.right == nil {
			return n.left
		}
		if n.left.prio > n.right.prio {
			n = rotateRight(n)
			n.right = remove(n.right, player, composite)
		} else {
			n = rotateLeft(n)
			n.left = remove(n.left, player, composite)
		}
	case before(composite, player, n.composite, n.player):
		n.left = remove(n.left, player, composite)
	default:
		n.right = remove(n.right, player, composite)
	}
	fix(n)
	return n
}

// countAbove returns how many nodes hold a composite strictly greater than c.
func countAbove(n *node, c float64) int {
	count := 0
	for n != nil {
		if n.composite > c {
			count += 1 + nsize(n.left)
			n = n.right
		} else {
			n = n.left
		}
	}
	return count
}

func collect(n *node, limit int, byPlayer map[string]record, out *[]Entry) {
	if n == nil || len(*out) >= limit {
		return
	}
	collect(n.left, limit, byPlayer, out)
	if len(*out) < limit {
		*out = append(*out, Entry{Player: n.player, Composite: n.composite, Path: byPlayer[n.player].path})
	}
	collect(n.right, limit, byPlayer, out)
}

type record struct {
	composite float64
	path      string
}

// TreapStore is an in-memory Store backed by a treap with random priorities.
type TreapStore struct {
	mu       sync.RWMutex
	root     *node
	byPlayer map[string]record
}

// NewTreapStore returns an empty store.
func NewTreapStore() *TreapStore {
	return &TreapStore{byPlayer: make(map[string]record)}
}

// UpdateBest implements Store with O(log n) expected time.
func (s *TreapStore) UpdateBest(ctx context.Context, ps model.PlayerScore) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if math.IsNaN(ps.Composite) || math.IsInf(ps.Composite, 0) {
		return false, ErrInvalidScore
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.byPlayer[ps.Player]; ok {
		if ps.Composite <= old.composite {
			return false, nil
		}
		s.root = remove(s.root, ps.Player, old.composite)
	}
	s.byPlayer[ps.Player] = record{composite: ps.Composite, path: ps.Path}
	s.root = insert(s.root, ps.Player, ps.Composite, rand.Uint64())
	return true, nil
}

// Rank implements Store in O(log n) expected time.
func (s *TreapStore) Rank(_ context.Context, player string) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.byPlayer[player]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return Entry{
		Rank:      countAbove(s.root, rec.composite) + 1,
		Player:    player,
		Composite: rec.composite,
		Path:      rec.path,
	}, nil
}

// TopN implements Store.
func (s *TreapStore) TopN(_ context.Context, n int) ([]Entry, error) {
	if n < 1 {
		return nil, ErrInvalidLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, 0, min(n, len(s.byPlayer)))
	collect(s.root, n, s.byPlayer, &out)
	for i := range out {
		if i > 0 && out[i].Composite == out[i-1].Composite {
			out[i].Rank = out[i-1].Rank
		} else {
			out[i].Rank = i + 1
		}
	}
	return out, nil
}

// Count implements Store.
func (s *TreapStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byPlayer)
}
