package profilefile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/okian/holdemdna/internal/domain/model"
)

const filePermission = 0o600

// Encode writes p to w in the same JSON shape Decode accepts.
func Encode(w io.Writer, p model.PlayerProfile) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fromModel(p)); err != nil {
		return fmt.Errorf("encode profile %q: %w", p.Name, err)
	}
	return nil
}

// Save writes p to path, replacing any existing file.
func Save(path string, p model.PlayerProfile) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermission)
	if err != nil {
		return fmt.Errorf("create profile file: %w", err)
	}
	if err := Encode(f, p); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func fromModel(p model.PlayerProfile) profileDoc {
	notes := make([]string, len(p.MindsetNotes))
	copy(notes, p.MindsetNotes)

	sessions := make([]sessionDoc, len(p.Sessions))
	for i, s := range p.Sessions {
		sessions[i] = sessionDoc{
			HoursPlayed:      ptr(s.HoursPlayed),
			HandsPlayed:      ptr(s.HandsPlayed),
			NetProfit:        ptr(s.NetProfit),
			VPIP:             ptr(s.VPIP),
			PFR:              ptr(s.PFR),
			ThreeBet:         ptr(s.ThreeBet),
			AggressionFactor: ptr(s.AggressionFactor),
			TiltEvents:       ptr(s.TiltEvents),
			ShowdownWinRate:  ptr(s.ShowdownWinRate),
		}
	}

	return profileDoc{
		Name:          ptr(p.Name),
		MindsetNotes:  &notes,
		BaselineVPIP:  ptr(p.BaselineVPIP),
		BaselinePFR:   ptr(p.BaselinePFR),
		RiskTolerance: ptr(p.RiskTolerance),
		Sessions:      sessions,
	}
}

func ptr[T any](v T) *T { return &v }
