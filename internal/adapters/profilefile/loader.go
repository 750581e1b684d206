// Package profilefile loads player profiles from JSON documents.
package profilefile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/okian/holdemdna/internal/domain/model"
)

const rootField = "$"

// profileDoc mirrors the JSON profile. Pointers distinguish a missing key
// from a zero value.
type profileDoc struct {
	Name          *string      `json:"name"`
	MindsetNotes  *[]string    `json:"mindset_notes"`
	BaselineVPIP  *float64     `json:"baseline_vpip"`
	BaselinePFR   *float64     `json:"baseline_pfr"`
	RiskTolerance *float64     `json:"risk_tolerance"`
	Sessions      []sessionDoc `json:"sessions"`
}

type sessionDoc struct {
	HoursPlayed      *float64 `json:"hours_played"`
	HandsPlayed      *int     `json:"hands_played"`
	NetProfit        *float64 `json:"net_profit"`
	VPIP             *float64 `json:"vpip"`
	PFR              *float64 `json:"pfr"`
	ThreeBet         *float64 `json:"three_bet"`
	AggressionFactor *float64 `json:"aggression_factor"`
	TiltEvents       *int     `json:"tilt_events"`
	ShowdownWinRate  *float64 `json:"showdown_win_rate"`
}

// Load reads and validates the profile stored at path.
func Load(ctx context.Context, path string) (model.PlayerProfile, error) {
	if err := ctx.Err(); err != nil {
		return model.PlayerProfile{}, fmt.Errorf("%w: %w", ErrReadProfile, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.PlayerProfile{}, fmt.Errorf("%w: %w", ErrReadProfile, err)
	}
	return Decode(bytes.NewReader(data))
}

// Decode parses one JSON profile from r. Unknown keys, missing required
// keys and out-of-range values fail with a *ValidationError.
func Decode(r io.Reader) (model.PlayerProfile, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var doc profileDoc
	if err := dec.Decode(&doc); err != nil {
		return model.PlayerProfile{}, decodeError(err)
	}
	if dec.More() {
		return model.PlayerProfile{}, invalid(rootField, "unexpected data after profile object")
	}
	return doc.toModel()
}

func decodeError(err error) error {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		return invalid(rootField, "empty document")
	case errors.As(err, &syntaxErr):
		return invalid(rootField, fmt.Sprintf("malformed JSON at offset %d: %v", syntaxErr.Offset, syntaxErr))
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = rootField
		}
		return invalid(field, fmt.Sprintf("expected %s, got JSON %s", typeErr.Type, typeErr.Value))
	}
	const unknownPrefix = "json: unknown field "
	if msg := err.Error(); strings.HasPrefix(msg, unknownPrefix) {
		return invalid(strings.Trim(strings.TrimPrefix(msg, unknownPrefix), `"`), "unknown field")
	}
	return invalid(rootField, err.Error())
}

func (d profileDoc) toModel() (model.PlayerProfile, error) {
	switch {
	case d.Name == nil:
		return model.PlayerProfile{}, invalid("name", "required")
	case d.MindsetNotes == nil:
		return model.PlayerProfile{}, invalid("mindset_notes", "required")
	}
	baselineVPIP, err := rate("baseline_vpip", d.BaselineVPIP)
	if err != nil {
		return model.PlayerProfile{}, err
	}
	baselinePFR, err := rate("baseline_pfr", d.BaselinePFR)
	if err != nil {
		return model.PlayerProfile{}, err
	}
	risk, err := rate("risk_tolerance", d.RiskTolerance)
	if err != nil {
		return model.PlayerProfile{}, err
	}

	sessions := make([]model.SessionSnapshot, 0, len(d.Sessions))
	for i, s := range d.Sessions {
		snapshot, err := s.toModel(fmt.Sprintf("sessions[%d].", i))
		if err != nil {
			return model.PlayerProfile{}, err
		}
		sessions = append(sessions, snapshot)
	}

	notes := make([]string, len(*d.MindsetNotes))
	copy(notes, *d.MindsetNotes)
	return model.PlayerProfile{
		Name:          *d.Name,
		MindsetNotes:  notes,
		BaselineVPIP:  baselineVPIP,
		BaselinePFR:   baselinePFR,
		RiskTolerance: risk,
		Sessions:      sessions,
	}, nil
}

func (d sessionDoc) toModel(prefix string) (model.SessionSnapshot, error) {
	var (
		s   model.SessionSnapshot
		err error
	)
	if s.HoursPlayed, err = nonNegative(prefix+"hours_played", d.HoursPlayed); err != nil {
		return s, err
	}
	if s.HandsPlayed, err = count(prefix+"hands_played", d.HandsPlayed); err != nil {
		return s, err
	}
	if s.NetProfit, err = number(prefix+"net_profit", d.NetProfit); err != nil {
		return s, err
	}
	if s.VPIP, err = rate(prefix+"vpip", d.VPIP); err != nil {
		return s, err
	}
	if s.PFR, err = rate(prefix+"pfr", d.PFR); err != nil {
		return s, err
	}
	if s.ThreeBet, err = rate(prefix+"three_bet", d.ThreeBet); err != nil {
		return s, err
	}
	if s.AggressionFactor, err = nonNegative(prefix+"aggression_factor", d.AggressionFactor); err != nil {
		return s, err
	}
	if s.TiltEvents, err = count(prefix+"tilt_events", d.TiltEvents); err != nil {
		return s, err
	}
	if s.ShowdownWinRate, err = rate(prefix+"showdown_win_rate", d.ShowdownWinRate); err != nil {
		return s, err
	}
	return s, nil
}

func number(field string, v *float64) (float64, error) {
	if v == nil {
		return 0, invalid(field, "required")
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) {
		return 0, invalid(field, "must be finite")
	}
	return *v, nil
}

func nonNegative(field string, v *float64) (float64, error) {
	n, err := number(field, v)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, invalid(field, fmt.Sprintf("must be >= 0, got %g", n))
	}
	return n, nil
}

func rate(field string, v *float64) (float64, error) {
	n, err := number(field, v)
	if err != nil {
		return 0, err
	}
	if n < 0 || n > 1 {
		return 0, invalid(field, fmt.Sprintf("must be within [0,1], got %g", n))
	}
	return n, nil
}

func count(field string, v *int) (int, error) {
	if v == nil {
		return 0, invalid(field, "required")
	}
	if *v < 0 {
		return 0, invalid(field, fmt.Sprintf("must be >= 0, got %d", *v))
	}
	return *v, nil
}
