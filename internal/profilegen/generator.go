// Package profilegen produces synthetic player profiles for demos and
// load testing the analyzer.
package profilegen

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/okian/holdemdna/internal/adapters/profilefile"
	"github.com/okian/holdemdna/internal/domain/model"
	"github.com/okian/holdemdna/internal/domain/numeric"
	"github.com/okian/holdemdna/pkg/logger"
)

const (
	defaultSessions = 8
	dirPermission   = 0o755
	idPrefixLen     = 8
)

// archetype describes the stat ranges a generated player is drawn from.
type archetype struct {
	label      string
	vpip       [2]float64
	pfrRatio   [2]float64
	threeBet   [2]float64
	aggression [2]float64
	tiltChance float64
	winRate    [2]float64
	notes      []string
}

var archetypes = []archetype{
	{
		label: "Nit", vpip: [2]float64{0.12, 0.18}, pfrRatio: [2]float64{0.75, 0.95},
		threeBet: [2]float64{0.03, 0.06}, aggression: [2]float64{1.5, 2.5}, tiltChance: 0.05,
		winRate: [2]float64{0.5, 0.6}, notes: []string{"Patient all session", "Folded too much on the button"},
	},
	{
		label: "Reg", vpip: [2]float64{0.2, 0.27}, pfrRatio: [2]float64{0.75, 0.9},
		threeBet: [2]float64{0.06, 0.1}, aggression: [2]float64{2, 3.2}, tiltChance: 0.15,
		winRate: [2]float64{0.48, 0.58}, notes: []string{"Solid warmup", "Stayed focused", "Reviewed hands after"},
	},
	{
		label: "Maniac", vpip: [2]float64{0.35, 0.55}, pfrRatio: [2]float64{0.6, 0.85},
		threeBet: [2]float64{0.1, 0.18}, aggression: [2]float64{3, 5}, tiltChance: 0.35,
		winRate: [2]float64{0.4, 0.52}, notes: []string{"Tilted after a bad beat", "Played through tilt", "Felt great"},
	},
	{
		label: "Station", vpip: [2]float64{0.3, 0.45}, pfrRatio: [2]float64{0.2, 0.45},
		threeBet: [2]float64{0.01, 0.04}, aggression: [2]float64{0.6, 1.4}, tiltChance: 0.25,
		winRate: [2]float64{0.38, 0.5}, notes: []string{"Called too light", "Tilt crept in late"},
	},
}

// Option configures a Generator.
type Option func(*Generator)

// WithSessions sets how many sessions each profile carries.
func WithSessions(n int) Option {
	return func(g *Generator) {
		if n >= 0 {
			g.sessions = n
		}
	}
}

// WithLogger sets the logger used when writing profiles.
func WithLogger(l logger.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.log = l
		}
	}
}

// Generator draws profiles from a seeded source. Equal seeds produce equal
// profiles. A Generator is not safe for concurrent use.
type Generator struct {
	rng      *rand.Rand
	sessions int
	log      logger.Logger
}

// New returns a Generator seeded with seed.
func New(seed int64, opts ...Option) *Generator {
	g := &Generator{
		rng:      rand.New(rand.NewSource(seed)), //nolint:gosec // reproducible synthetic data
		sessions: defaultSessions,
		log:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Profile returns the next synthetic profile.
func (g *Generator) Profile() (model.PlayerProfile, error) {
	id, err := uuid.NewRandomFromReader(g.rng)
	if err != nil {
		return model.PlayerProfile{}, fmt.Errorf("generate player id: %w", err)
	}
	a := archetypes[g.rng.Intn(len(archetypes))]

	baseVPIP := g.between(a.vpip)
	p := model.PlayerProfile{
		Name:          fmt.Sprintf("%s %s", a.label, id.String()[:idPrefixLen]),
		MindsetNotes:  g.notes(a.notes),
		BaselineVPIP:  baseVPIP,
		BaselinePFR:   numeric.Round2(baseVPIP * g.between(a.pfrRatio)),
		RiskTolerance: numeric.Round2(g.rng.Float64()),
		Sessions:      make([]model.SessionSnapshot, g.sessions),
	}
	for i := range p.Sessions {
		p.Sessions[i] = g.session(a)
	}
	return p, nil
}

// Profiles returns n profiles.
func (g *Generator) Profiles(n int) ([]model.PlayerProfile, error) {
	out := make([]model.PlayerProfile, 0, n)
	for i := 0; i < n; i++ {
		p, err := g.Profile()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// WriteDir generates n profiles into dir, creating it if needed, and
// returns the written paths.
func (g *Generator) WriteDir(ctx context.Context, dir string, n int) ([]string, error) {
	if err := os.MkdirAll(dir, dirPermission); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	profiles, err := g.Profiles(n)
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(profiles))
	for _, p := range profiles {
		if err := ctx.Err(); err != nil {
			return paths, err
		}
		path := filepath.Join(dir, FileName(p.Name))
		if err := profilefile.Save(path, p); err != nil {
			return paths, err
		}
		g.log.Debug(ctx, "profile written", logger.String("path", path), logger.Int("sessions", len(p.Sessions)))
		paths = append(paths, path)
	}
	g.log.Info(ctx, "profiles generated", logger.Int("count", len(paths)), logger.String("dir", dir))
	return paths, nil
}

// FileName turns a player name into a JSON file name.
func FileName(name string) string {
	slug := strings.ToLower(strings.Join(strings.Fields(name), "-"))
	return slug + ".json"
}

func (g *Generator) session(a archetype) model.SessionSnapshot {
	hours := numeric.Round2(1 + g.rng.Float64()*7)
	hands := int(hours * float64(60+g.rng.Intn(40)))
	vpip := g.between(a.vpip)

	tilts := 0
	for i := 0; i < int(math.Ceil(hours)); i++ {
		if g.rng.Float64() < a.tiltChance {
			tilts++
		}
	}

	return model.SessionSnapshot{
		HoursPlayed:      hours,
		HandsPlayed:      hands,
		NetProfit:        numeric.Round2(g.rng.NormFloat64() * 60),
		VPIP:             vpip,
		PFR:              numeric.Round2(vpip * g.between(a.pfrRatio)),
		ThreeBet:         g.between(a.threeBet),
		AggressionFactor: g.between(a.aggression),
		TiltEvents:       tilts,
		ShowdownWinRate:  g.between(a.winRate),
	}
}

func (g *Generator) notes(pool []string) []string {
	n := g.rng.Intn(len(pool) + 1)
	out := make([]string, 0, n)
	for _, i := range g.rng.Perm(len(pool))[:n] {
		out = append(out, pool[i])
	}
	return out
}

func (g *Generator) between(r [2]float64) float64 {
	return numeric.Round2(r[0] + g.rng.Float64()*(r[1]-r[0]))
}
