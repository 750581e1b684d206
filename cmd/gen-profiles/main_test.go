package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestRun(t *testing.T) {
	Convey("Given an output directory", t, func() {
		dir := filepath.Join(t.TempDir(), "out")
		var stdout, stderr bytes.Buffer

		Convey("When generating with a fixed seed", func() {
			code := run(context.Background(), []string{"-n", "3", "-sessions", "2", "-out", dir, "-seed", "42"}, &stdout, &stderr)

			Convey("Then each written path is printed", func() {
				So(code, ShouldEqual, 0)
				lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
				So(len(lines), ShouldEqual, 3)
				for _, l := range lines {
					So(filepath.Dir(l), ShouldEqual, dir)
					So(l, ShouldEndWith, ".json")
				}
			})

			Convey("And the same seed writes the same files", func() {
				var again bytes.Buffer
				code := run(context.Background(), []string{"-n", "3", "-sessions", "2", "-out", dir, "-seed", "42"}, &again, &stderr)
				So(code, ShouldEqual, 0)
				So(again.String(), ShouldEqual, stdout.String())
			})
		})

		Convey("When flags are invalid", func() {
			So(run(context.Background(), []string{"-n", "-1"}, &stdout, &stderr), ShouldEqual, 2)
			So(run(context.Background(), []string{"-bogus"}, &stdout, &stderr), ShouldEqual, 2)
		})
	})
}
