package model_test

import (
	"testing"

	model "github.com/okian/holdemdna/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func sessions(n int) []model.SessionSnapshot {
	out := make([]model.SessionSnapshot, n)
	for i := range out {
		out[i] = model.SessionSnapshot{HandsPlayed: (i + 1) * 100}
	}
	return out
}

func TestSessionSnapshot_VolumeScore(t *testing.T) {
	Convey("Given a session snapshot", t, func() {
		Convey("When it covers 150 hands over 2 hours", func() {
			s := model.SessionSnapshot{HandsPlayed: 150, HoursPlayed: 2.0}

			Convey("Then the volume score is 28", func() {
				So(s.VolumeScore(), ShouldEqual, 28.0)
			})
		})

		Convey("When nothing was played", func() {
			Convey("Then the volume score is 0", func() {
				So(model.SessionSnapshot{}.VolumeScore(), ShouldEqual, 0.0)
			})
		})

		Convey("When hands and hours exceed their caps", func() {
			s := model.SessionSnapshot{HandsPlayed: 5000, HoursPlayed: 24}

			Convey("Then the volume score saturates at 100", func() {
				So(s.VolumeScore(), ShouldEqual, 100.0)
			})
		})

		Convey("When only hands saturate", func() {
			s := model.SessionSnapshot{HandsPlayed: 500, HoursPlayed: 4}

			Convey("Then hours contribute half of their weight", func() {
				So(s.VolumeScore(), ShouldEqual, 80.0)
			})
		})
	})
}

func TestPlayerProfile_RecentSessions(t *testing.T) {
	Convey("Given a profile with seven sessions", t, func() {
		p := model.PlayerProfile{Sessions: sessions(7)}

		Convey("When asking for the last five", func() {
			recent := p.RecentSessions(5)

			Convey("Then it returns the chronological suffix", func() {
				So(len(recent), ShouldEqual, 5)
				So(recent[0].HandsPlayed, ShouldEqual, 300)
				So(recent[4].HandsPlayed, ShouldEqual, 700)
			})

			Convey("And appending to it leaves the profile untouched", func() {
				grown := append(recent, model.SessionSnapshot{HandsPlayed: 1})
				So(len(grown), ShouldEqual, 6)
				So(len(p.Sessions), ShouldEqual, 7)
				So(p.Sessions[6].HandsPlayed, ShouldEqual, 700)
			})
		})

		Convey("When asking for the last one", func() {
			recent := p.RecentSessions(1)

			Convey("Then it returns the newest session", func() {
				So(len(recent), ShouldEqual, 1)
				So(recent[0].HandsPlayed, ShouldEqual, 700)
			})
		})

		Convey("When asking for more than exist", func() {
			Convey("Then it returns the whole history", func() {
				So(len(p.RecentSessions(20)), ShouldEqual, 7)
			})
		})

		Convey("When asking for zero or a negative count", func() {
			Convey("Then it returns nothing", func() {
				So(p.RecentSessions(0), ShouldBeEmpty)
				So(p.RecentSessions(-3), ShouldBeEmpty)
			})
		})
	})

	Convey("Given a profile without sessions", t, func() {
		p := model.PlayerProfile{Name: "empty"}

		Convey("Then recent sessions are empty", func() {
			So(p.RecentSessions(1), ShouldBeEmpty)
			So(p.RecentSessions(5), ShouldBeEmpty)
		})
	})
}

func TestSessionReport_Composite(t *testing.T) {
	Convey("Given session reports", t, func() {
		cases := []struct {
			strategy, psychology, mental, want float64
		}{
			{50, 75, 40, 54.5},
			{100, 100, 100, 100},
			{0, 0, 0, 0},
			{80, 60, 70, 71.0},
			{12.34, 56.78, 90.12, 49.01},
		}

		for _, c := range cases {
			r := model.SessionReport{StrategyScore: c.strategy, PsychologyScore: c.psychology, MentalScore: c.mental}

			So(r.Composite(), ShouldAlmostEqual, c.want, 1e-9)
		}

		Convey("When the weighted sum is stored just below a half", func() {
			r := model.SessionReport{StrategyScore: 90.58, PsychologyScore: 38.18, MentalScore: 56.63}

			Convey("Then it rounds down", func() {
				So(r.Composite(), ShouldEqual, 64.67)
			})
		})
	})
}
