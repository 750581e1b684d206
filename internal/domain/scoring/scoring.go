// Package scoring maps a player's session history into bounded 0-100 scores.
package scoring

import (
	"math"
	"strings"

	"github.com/okian/holdemdna/internal/domain/model"
	"github.com/okian/holdemdna/internal/domain/numeric"
)

// Score bounds.
const (
	MinScore = 0
	MaxScore = 100
)

// Defaults used when a profile has no sessions.
const (
	NeutralStrategyScore   = 50
	DefaultPsychologyScore = 75
	DefaultVolumeScore     = 40
	NeutralTrendScore      = 50
)

// StrategyWindow is the number of recent sessions strategy scoring looks at.
const StrategyWindow = 5

// Strategy component parameters.
const (
	deviationCeiling    = 30
	deviationMultiplier = 300
	aggressionTarget    = 3
	componentCap        = 20
	trendWeight         = 0.2
	trendMultiplier     = 10
)

// Psychology and mental parameters.
const (
	tiltMultiplier       = 8
	maxTiltPenalty       = 80
	tiltNotePenalty      = 5
	tiltKeyword          = "tilt"
	volumeWeight         = 0.6
	stabilityWeight      = 0.4
	riskWeight           = 0.2
	varianceDivisor      = 5
	maxVariancePenalty   = 25
	riskToleranceToScore = 100
)

// Clamp rounds v to two decimals and then bounds it into [low, high].
// Rounding happens first, so 100.004 becomes 100 and -0.004 becomes 0.
func Clamp(v, low, high float64) float64 {
	return math.Max(low, math.Min(high, numeric.Round2(v)))
}

func clampScore(v float64) float64 {
	return Clamp(v, MinScore, MaxScore)
}

// TrendScore rates the direction of an ordered series: 50 plus ten times
// the mean step between neighbours. Steps are summed in order. The result
// is not clamped.
func TrendScore(values []float64) float64 {
	if len(values) < 2 {
		return NeutralTrendScore
	}
	diffs := make([]float64, len(values)-1)
	for i := range diffs {
		diffs[i] = values[i+1] - values[i]
	}
	return NeutralTrendScore + numeric.Sum(diffs)/float64(len(diffs))*trendMultiplier
}

// VariancePenalty returns a penalty in [0,25] that grows with the spread of
// values around their mean. An empty series carries no penalty.
func VariancePenalty(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	avg := numeric.Mean(values)
	deviations := make([]float64, len(values))
	for i, v := range values {
		deviations[i] = math.Abs(v - avg)
	}
	spread := numeric.Sum(deviations) / float64(len(values)*varianceDivisor)
	return math.Min(spread, 1) * maxVariancePenalty
}

// StrategyScore rewards staying close to the baseline VPIP/PFR, healthy
// aggression, a strong showdown rate and an improving profit trend over
// the most recent sessions.
func StrategyScore(p model.PlayerProfile) float64 {
	if len(p.Sessions) == 0 {
		return NeutralStrategyScore
	}
	recent := p.RecentSessions(StrategyWindow)

	n := len(recent)
	vpipDevs := make([]float64, n)
	pfrDevs := make([]float64, n)
	aggression := make([]float64, n)
	showdown := make([]float64, n)
	profits := make([]float64, n)
	for i, s := range recent {
		vpipDevs[i] = math.Abs(s.VPIP - p.BaselineVPIP)
		pfrDevs[i] = math.Abs(s.PFR - p.BaselinePFR)
		aggression[i] = s.AggressionFactor
		showdown[i] = s.ShowdownWinRate
		profits[i] = s.NetProfit
	}

	vpipComponent := math.Max(0, deviationCeiling-numeric.Mean(vpipDevs)*deviationMultiplier)
	pfrComponent := math.Max(0, deviationCeiling-numeric.Mean(pfrDevs)*deviationMultiplier)
	aggressionComponent := math.Min(numeric.Mean(aggression)/aggressionTarget*componentCap, componentCap)
	showdownComponent := math.Min(numeric.Mean(showdown)*componentCap, componentCap)
	trendComponent := TrendScore(profits) * trendWeight

	return clampScore(vpipComponent + pfrComponent + aggressionComponent + showdownComponent + trendComponent)
}

// PsychologyScore penalises the long-run tilt rate over the whole history
// and every mindset note that mentions tilt.
func PsychologyScore(p model.PlayerProfile) float64 {
	if len(p.Sessions) == 0 {
		return DefaultPsychologyScore
	}
	tilts := make([]float64, len(p.Sessions))
	for i, s := range p.Sessions {
		tilts[i] = float64(s.TiltEvents)
	}
	stability := MaxScore - math.Min(numeric.Mean(tilts)*tiltMultiplier, maxTiltPenalty)

	notes := 0
	for _, note := range p.MindsetNotes {
		if strings.Contains(strings.ToLower(note), tiltKeyword) {
			notes++
		}
	}
	return clampScore(stability - float64(notes*tiltNotePenalty))
}

// MentalScore rewards sustained volume and steady results; a low risk
// tolerance pulls the score down.
func MentalScore(p model.PlayerProfile) float64 {
	riskFactor := p.RiskTolerance * riskToleranceToScore

	volume := float64(DefaultVolumeScore)
	profits := make([]float64, len(p.Sessions))
	if len(p.Sessions) > 0 {
		volumes := make([]float64, len(p.Sessions))
		for i, s := range p.Sessions {
			volumes[i] = s.VolumeScore()
			profits[i] = s.NetProfit
		}
		volume = numeric.Mean(volumes)
	}
	penalty := VariancePenalty(profits)

	return clampScore(volumeWeight*volume + stabilityWeight*(MaxScore-penalty) - (MaxScore-riskFactor)*riskWeight)
}
