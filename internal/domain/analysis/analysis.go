// Package analysis assembles a session report from a player profile.
package analysis

import (
	"github.com/okian/holdemdna/internal/domain/advice"
	"github.com/okian/holdemdna/internal/domain/model"
	"github.com/okian/holdemdna/internal/domain/scoring"
)

// Analyze scores p and builds its recommendations. It does not modify p
// and returns a fresh report on every call.
func Analyze(p model.PlayerProfile) model.SessionReport {
	report, _ := Assess(p)
	return report
}

// Assess is Analyze that also returns the outcome set the
// recommendations were derived from.
func Assess(p model.PlayerProfile) (model.SessionReport, advice.OutcomeSet) {
	strategy := scoring.StrategyScore(p)
	psychology := scoring.PsychologyScore(p)
	mental := scoring.MentalScore(p)

	outcomes := advice.Assess(strategy, psychology, mental)
	return model.SessionReport{
		StrategyScore:   strategy,
		PsychologyScore: psychology,
		MentalScore:     mental,
		Recommendations: advice.Recommendations(p, outcomes),
	}, outcomes
}
