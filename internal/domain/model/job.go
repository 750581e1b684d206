package model

// AnalysisJob is one profile file queued for batch analysis.
type AnalysisJob struct {
	ID   string // unique per batch run
	Path string // cleaned absolute path of the profile
}

// PlayerScore captures a player's best composite used for ranking.
type PlayerScore struct {
	Player    string
	Composite float64
	Path      string
}
