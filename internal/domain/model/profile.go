package model

// PlayerProfile aggregates a player's identity and session history.
// Sessions are chronological, oldest first.
type PlayerProfile struct {
	Name          string
	MindsetNotes  []string
	BaselineVPIP  float64
	BaselinePFR   float64
	RiskTolerance float64 // 0-1 scale
	Sessions      []SessionSnapshot
}

// RecentSessions returns the last n sessions, or all of them when the
// history is shorter. n <= 0 yields no sessions. The returned slice has
// its capacity capped so appends never write into the profile.
func (p PlayerProfile) RecentSessions(n int) []SessionSnapshot {
	if n <= 0 {
		return nil
	}
	total := len(p.Sessions)
	if n > total {
		n = total
	}
	return p.Sessions[total-n : total : total]
}
