package profilefile_test

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/holdemdna/internal/adapters/profilefile"
	. "github.com/smartystreets/goconvey/convey"
)

const sampleJSON = `{
  "name": "Tmp Player",
  "mindset_notes": ["Tilted after a cooler"],
  "baseline_vpip": 0.2,
  "baseline_pfr": 0.18,
  "risk_tolerance": 0.5,
  "sessions": [
    {
      "hours_played": 2.0,
      "hands_played": 150,
      "net_profit": 50,
      "vpip": 0.21,
      "pfr": 0.19,
      "three_bet": 0.05,
      "aggression_factor": 2.0,
      "tilt_events": 0,
      "showdown_win_rate": 0.55
    }
  ]
}`

const sessionJSON = `{"hours_played": 2.0, "hands_played": 150, "net_profit": 50, "vpip": 0.21, "pfr": 0.19, "three_bet": 0.05, "aggression_factor": 2.0, "tilt_events": 0, "showdown_win_rate": 0.55}`

func writeProfile(dir, body string) string {
	path := filepath.Join(dir, "profile.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		panic(err)
	}
	return path
}

func fieldOf(err error) string {
	var verr *profilefile.ValidationError
	if errors.As(err, &verr) {
		return verr.Field
	}
	return ""
}

func TestLoad(t *testing.T) {
	Convey("Given profile files on disk", t, func() {
		ctx := context.Background()
		dir := t.TempDir()

		Convey("When the file is a valid profile", func() {
			p, err := profilefile.Load(ctx, writeProfile(dir, sampleJSON))

			Convey("Then every field is mapped", func() {
				So(err, ShouldBeNil)
				So(p.Name, ShouldEqual, "Tmp Player")
				So(p.MindsetNotes, ShouldResemble, []string{"Tilted after a cooler"})
				So(p.BaselineVPIP, ShouldEqual, 0.2)
				So(p.BaselinePFR, ShouldEqual, 0.18)
				So(p.RiskTolerance, ShouldEqual, 0.5)
				So(len(p.Sessions), ShouldEqual, 1)

				s := p.Sessions[0]
				So(s.HoursPlayed, ShouldEqual, 2.0)
				So(s.HandsPlayed, ShouldEqual, 150)
				So(s.NetProfit, ShouldEqual, 50.0)
				So(s.VPIP, ShouldEqual, 0.21)
				So(s.PFR, ShouldEqual, 0.19)
				So(s.ThreeBet, ShouldEqual, 0.05)
				So(s.AggressionFactor, ShouldEqual, 2.0)
				So(s.TiltEvents, ShouldEqual, 0)
				So(s.ShowdownWinRate, ShouldEqual, 0.55)
			})
		})

		Convey("When the file does not exist", func() {
			_, err := profilefile.Load(ctx, filepath.Join(dir, "missing.json"))

			Convey("Then a read error keeps the not-exist cause", func() {
				So(errors.Is(err, profilefile.ErrReadProfile), ShouldBeTrue)
				So(errors.Is(err, fs.ErrNotExist), ShouldBeTrue)
				So(errors.Is(err, profilefile.ErrInvalidProfile), ShouldBeFalse)
			})
		})

		Convey("When the file is not JSON", func() {
			_, err := profilefile.Load(ctx, writeProfile(dir, "not-json"))

			Convey("Then it is reported as invalid input", func() {
				So(errors.Is(err, profilefile.ErrInvalidProfile), ShouldBeTrue)
				So(fieldOf(err), ShouldEqual, "$")
			})
		})

		Convey("When the context is already cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := profilefile.Load(cctx, writeProfile(dir, sampleJSON))

			Convey("Then nothing is read", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
			})
		})
	})
}

func TestDecode(t *testing.T) {
	Convey("Given profile documents", t, func() {
		Convey("When sessions are omitted", func() {
			p, err := profilefile.Decode(strings.NewReader(`{"name":"A","mindset_notes":[],"baseline_vpip":0.2,"baseline_pfr":0.1,"risk_tolerance":0.4}`))

			Convey("Then the history is empty", func() {
				So(err, ShouldBeNil)
				So(p.Sessions, ShouldBeEmpty)
				So(p.MindsetNotes, ShouldBeEmpty)
			})
		})

		cases := []struct {
			name  string
			body  string
			field string
		}{
			{"missing name", `{"mindset_notes":[],"baseline_vpip":0.2,"baseline_pfr":0.1,"risk_tolerance":0.4}`, "name"},
			{"missing notes", `{"name":"A","baseline_vpip":0.2,"baseline_pfr":0.1,"risk_tolerance":0.4}`, "mindset_notes"},
			{"missing baseline", `{"name":"A","mindset_notes":[],"baseline_pfr":0.1,"risk_tolerance":0.4}`, "baseline_vpip"},
			{"risk out of range", `{"name":"A","mindset_notes":[],"baseline_vpip":0.2,"baseline_pfr":0.1,"risk_tolerance":1.4}`, "risk_tolerance"},
			{"unknown key", `{"name":"A","nickname":"B","mindset_notes":[],"baseline_vpip":0.2,"baseline_pfr":0.1,"risk_tolerance":0.4}`, "nickname"},
			{"trailing data", `{"name":"A","mindset_notes":[],"baseline_vpip":0.2,"baseline_pfr":0.1,"risk_tolerance":0.4} x`, "$"},
			{"empty document", ``, "$"},
			{"missing session field", `{"name":"A","mindset_notes":[],"baseline_vpip":0.2,"baseline_pfr":0.1,"risk_tolerance":0.4,"sessions":[` + sessionJSON + `,{"hours_played":1}]}`, "sessions[1].hands_played"},
			{"session rate out of range", `{"name":"A","mindset_notes":[],"baseline_vpip":0.2,"baseline_pfr":0.1,"risk_tolerance":0.4,"sessions":[` + strings.Replace(sessionJSON, `"vpip": 0.21`, `"vpip": 21`, 1) + `]}`, "sessions[0].vpip"},
			{"negative tilt", `{"name":"A","mindset_notes":[],"baseline_vpip":0.2,"baseline_pfr":0.1,"risk_tolerance":0.4,"sessions":[` + strings.Replace(sessionJSON, `"tilt_events": 0`, `"tilt_events": -1`, 1) + `]}`, "sessions[0].tilt_events"},
		}

		for _, c := range cases {
			c := c
			Convey("When the document has "+c.name, func() {
				_, err := profilefile.Decode(strings.NewReader(c.body))

				Convey("Then a validation error names the field", func() {
					So(errors.Is(err, profilefile.ErrInvalidProfile), ShouldBeTrue)
					So(fieldOf(err), ShouldEqual, c.field)
					So(err.Error(), ShouldContainSubstring, c.field)
				})
			})
		}

		Convey("When a count is not an integer", func() {
			body := `{"name":"A","mindset_notes":[],"baseline_vpip":0.2,"baseline_pfr":0.1,"risk_tolerance":0.4,"sessions":[` +
				strings.Replace(sessionJSON, `"hands_played": 150`, `"hands_played": "many"`, 1) + `]}`
			_, err := profilefile.Decode(strings.NewReader(body))

			Convey("Then the type error is reported as invalid input", func() {
				So(errors.Is(err, profilefile.ErrInvalidProfile), ShouldBeTrue)
				So(fieldOf(err), ShouldContainSubstring, "hands_played")
			})
		})
	})
}
