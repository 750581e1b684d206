// Package types contains common types used across the application
package types

import "github.com/okian/holdemdna/internal/domain/model"

// ReportPayload is the flattened, JSON-ready shape of a session report.
type ReportPayload struct {
	StrategyScore   float64  `json:"strategy_score"`
	PsychologyScore float64  `json:"psychology_score"`
	MentalScore     float64  `json:"mental_score"`
	Recommendations []string `json:"recommendations"`
	Composite       float64  `json:"composite"`
}

// NewReportPayload flattens r, adding its composite index.
func NewReportPayload(r model.SessionReport) ReportPayload {
	recs := make([]string, len(r.Recommendations))
	copy(recs, r.Recommendations)
	return ReportPayload{
		StrategyScore:   r.StrategyScore,
		PsychologyScore: r.PsychologyScore,
		MentalScore:     r.MentalScore,
		Recommendations: recs,
		Composite:       r.Composite(),
	}
}

// RankEntry is one leaderboard row as emitted by rank mode.
type RankEntry struct {
	Rank      int     `json:"rank"`
	Player    string  `json:"player"`
	Composite float64 `json:"composite"`
	Path      string  `json:"path"`
}
