package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	Convey("Given the global logger", t, func() {
		Convey("When initialised with the default writer", func() {
			So(Init(), ShouldBeNil)

			Convey("Then Get returns a logger", func() {
				So(Get(), ShouldNotBeNil)
				So(Sync(), ShouldBeNil)
			})
		})

		Convey("When initialised with a nil writer", func() {
			So(InitWithWriter(nil), ShouldNotBeNil)
		})
	})
}

func TestLoggerOutput(t *testing.T) {
	Convey("Given a logger writing to a buffer", t, func() {
		var buf bytes.Buffer
		So(InitWithWriter(&buf), ShouldBeNil)
		ctx := context.Background()

		Convey("When logging with fields", func() {
			Get().Info(ctx, "analysis complete", String("player", "Tester"), Float64("composite", 48.05), Error(errors.New("boom")))

			Convey("Then the record carries message, fields and source", func() {
				out := buf.String()
				So(out, ShouldContainSubstring, "analysis complete")
				So(out, ShouldContainSubstring, "player=Tester")
				So(out, ShouldContainSubstring, "composite=48.05")
				So(out, ShouldContainSubstring, "error=boom")
				So(out, ShouldContainSubstring, "logger_test.go:")
			})
		})

		Convey("When the level is raised to warn", func() {
			So(SetLevelString("WARN"), ShouldBeNil)
			Get().Info(ctx, "hidden")
			Get().Warn(ctx, "shown")

			Convey("Then info records are dropped", func() {
				So(buf.String(), ShouldNotContainSubstring, "hidden")
				So(buf.String(), ShouldContainSubstring, "shown")
			})
		})

		Convey("When using a named logger", func() {
			Named("watcher").Debug(ctx, "debug hidden at info")
			Named("watcher").Error(ctx, "failed")

			Convey("Then the component is attached", func() {
				So(buf.String(), ShouldContainSubstring, "component=watcher")
				So(buf.String(), ShouldNotContainSubstring, "debug hidden")
			})
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given level names", t, func() {
		for _, level := range []string{"debug", "info", "", "warn", "warning", "error", " Info "} {
			So(SetLevelString(level), ShouldBeNil)
		}
		So(SetLevelString("verbose"), ShouldNotBeNil)
	})
}

func TestNop(t *testing.T) {
	Convey("A nop logger accepts every call", t, func() {
		l := Nop()
		So(func() {
			l.Error(context.Background(), "dropped", Error(errors.New("x")))
			l.Named("child").Info(context.Background(), "dropped")
		}, ShouldNotPanic)
	})
}
