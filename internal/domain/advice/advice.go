// Package advice turns scores into human-readable recommendations.
package advice

import (
	"fmt"

	"github.com/okian/holdemdna/internal/domain/model"
)

// Threshold below which a score triggers its advisory.
const Threshold = 60

// Recommendation texts.
const (
	StrategyAdvice   = "Review baseline VPIP/PFR combos and tighten opening ranges for early position."
	PsychologyAdvice = "Schedule mindset warmups; document tilt triggers in detail after each session."
	MentalAdvice     = "Balance volume with recovery. Use breathing resets when variance spikes mid-session."
	GreatFormAdvice  = "Great form! Maintain the current preparation and review cadence."
)

// Outcome tags a single result of assessing the three scores.
type Outcome uint8

// Outcomes. AllGood is only ever set when none of the others are.
const (
	BelowStrategy Outcome = 1 << iota
	BelowPsychology
	BelowMental
	AllGood
)

// String returns the outcome label used in logs and metrics.
func (o Outcome) String() string {
	switch o {
	case BelowStrategy:
		return "below_strategy"
	case BelowPsychology:
		return "below_psychology"
	case BelowMental:
		return "below_mental"
	case AllGood:
		return "all_good"
	default:
		return "unknown"
	}
}

// orderedOutcomes fixes the order recommendations are emitted in.
var orderedOutcomes = [...]Outcome{BelowStrategy, BelowPsychology, BelowMental, AllGood}

var outcomeText = map[Outcome]string{
	BelowStrategy:   StrategyAdvice,
	BelowPsychology: PsychologyAdvice,
	BelowMental:     MentalAdvice,
	AllGood:         GreatFormAdvice,
}

// OutcomeSet is a set of outcomes.
type OutcomeSet uint8

// Has reports whether o is in the set.
func (s OutcomeSet) Has(o Outcome) bool { return s&OutcomeSet(o) != 0 }

// Outcomes lists the members in emission order.
func (s OutcomeSet) Outcomes() []Outcome {
	out := make([]Outcome, 0, len(orderedOutcomes))
	for _, o := range orderedOutcomes {
		if s.Has(o) {
			out = append(out, o)
		}
	}
	return out
}

// Assess classifies the three scores in one decision.
func Assess(strategy, psychology, mental float64) OutcomeSet {
	var set OutcomeSet
	if strategy < Threshold {
		set |= OutcomeSet(BelowStrategy)
	}
	if psychology < Threshold {
		set |= OutcomeSet(BelowPsychology)
	}
	if mental < Threshold {
		set |= OutcomeSet(BelowMental)
	}
	if set == 0 {
		set = OutcomeSet(AllGood)
	}
	return set
}

// Recommendations renders the advisories for set followed, when the
// profile has any sessions, by a summary of the most recent one.
func Recommendations(p model.PlayerProfile, set OutcomeSet) []string {
	outcomes := set.Outcomes()
	recs := make([]string, 0, len(outcomes)+1)
	for _, o := range outcomes {
		recs = append(recs, outcomeText[o])
	}
	if latest := p.RecentSessions(1); len(latest) == 1 {
		recs = append(recs, SessionSummary(latest[0]))
	}
	return recs
}

// SessionSummary describes one session's hands and signed profit.
func SessionSummary(s model.SessionSnapshot) string {
	return fmt.Sprintf("Latest session summary: %d hands, %+.1fbb.", s.HandsPlayed, s.NetProfit)
}
