// Package model contains domain models passed between layers.
package model

import (
	"math"

	"github.com/okian/holdemdna/internal/domain/numeric"
)

// Volume normalisation bounds and weights.
const (
	volumeFullHands   = 500
	volumeFullHours   = 8
	volumeHandsWeight = 0.6
	volumeHoursWeight = 0.4
)

// SessionSnapshot holds the raw statistics of one played session.
// Rates are fractions in [0,1]; NetProfit is in big blinds.
type SessionSnapshot struct {
	HoursPlayed      float64
	HandsPlayed      int
	NetProfit        float64
	VPIP             float64 // voluntarily put money in pot
	PFR              float64 // pre-flop raise
	ThreeBet         float64 // recorded, not scored
	AggressionFactor float64
	TiltEvents       int
	ShowdownWinRate  float64
}

// VolumeScore normalises hands and hours into a 0-100 volume score.
func (s SessionSnapshot) VolumeScore() float64 {
	hands := math.Min(float64(s.HandsPlayed)/volumeFullHands, 1)
	hours := math.Min(s.HoursPlayed/volumeFullHours, 1)
	return numeric.Round2((hands*volumeHandsWeight + hours*volumeHoursWeight) * 100)
}
