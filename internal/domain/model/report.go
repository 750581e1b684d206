package model

import "github.com/okian/holdemdna/internal/domain/numeric"

// Composite weights.
const (
	strategyWeight   = 0.4
	psychologyWeight = 0.3
	mentalWeight     = 0.3
)

// SessionReport is the result of one analysis. Scores are in [0,100] and
// Recommendations always has at least one entry.
type SessionReport struct {
	StrategyScore   float64
	PsychologyScore float64
	MentalScore     float64
	Recommendations []string
}

// Composite blends the three scores into the overall index.
func (r SessionReport) Composite() float64 {
	return numeric.Round2(r.StrategyScore*strategyWeight +
		r.PsychologyScore*psychologyWeight +
		r.MentalScore*mentalWeight)
}
