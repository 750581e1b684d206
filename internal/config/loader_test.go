package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/holdemdna/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	Convey("Given a config loader", t, func() {
		ctx := context.Background()

		Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			Convey("Then it should load successfully with defaults", func() {
				So(err, ShouldBeNil)
				So(cfg, ShouldResemble, config.New())
			})
		})

		Convey("When loading config with environment variables", func() {
			_ = os.Setenv("HOLDEMDNA_LOG_LEVEL", "debug")
			_ = os.Setenv("HOLDEMDNA_FORMAT", "json")
			_ = os.Setenv("HOLDEMDNA_JSON_INDENT", "4")
			_ = os.Setenv("HOLDEMDNA_METRICS_FILE", "/tmp/holdemdna.prom")
			_ = os.Setenv("HOLDEMDNA_WATCH_DEBOUNCE_MS", "50")
			_ = os.Setenv("HOLDEMDNA_RANK_WORKERS", "3")
			_ = os.Setenv("HOLDEMDNA_RANK_TOP", "25")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			Convey("Then it should override defaults with env vars", func() {
				So(err, ShouldBeNil)
				So(cfg.LogLevel, ShouldEqual, "debug")
				So(cfg.Format, ShouldEqual, config.FormatJSON)
				So(cfg.JSONIndent, ShouldEqual, 4)
				So(cfg.MetricsFile, ShouldEqual, "/tmp/holdemdna.prom")
				So(cfg.WatchDebounceMS, ShouldEqual, 50)
				So(cfg.RankWorkers, ShouldEqual, 3)
				So(cfg.RankTop, ShouldEqual, 25)
			})
		})

		Convey("When loading config with YAML file", func() {
			tmpFile := createTempConfigFile(`
format: pretty
json_indent: 0
metrics_file: /var/lib/node_exporter/holdemdna.prom
`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("HOLDEMDNA_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			Convey("Then it should merge the file with defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Format, ShouldEqual, config.FormatPretty)
				So(cfg.JSONIndent, ShouldEqual, 0)
				So(cfg.MetricsFile, ShouldEqual, "/var/lib/node_exporter/holdemdna.prom")
				So(cfg.LogLevel, ShouldEqual, "warn")
				So(cfg.WatchDebounceMS, ShouldEqual, 250)
			})
		})

		Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile(`
format: pretty
log_level: error
`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("HOLDEMDNA_CONFIG", tmpFile)
			_ = os.Setenv("HOLDEMDNA_FORMAT", "json")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			Convey("Then environment variables should override file values", func() {
				So(err, ShouldBeNil)
				So(cfg.Format, ShouldEqual, config.FormatJSON)
				So(cfg.LogLevel, ShouldEqual, "error")
			})
		})

		Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("HOLDEMDNA_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			Convey("Then it should return a load error", func() {
				So(errors.Is(err, config.ErrLoadConfig), ShouldBeTrue)
				So(cfg, ShouldBeNil)
			})
		})

		Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("HOLDEMDNA_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			Convey("Then it should return a load error", func() {
				So(errors.Is(err, config.ErrLoadConfig), ShouldBeTrue)
				So(cfg, ShouldBeNil)
			})
		})

		Convey("When loading config with an unknown format", func() {
			_ = os.Setenv("HOLDEMDNA_FORMAT", "xml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			Convey("Then it should return a validation error", func() {
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "xml")
				So(cfg, ShouldBeNil)
			})
		})

		Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("HOLDEMDNA_JSON_INDENT", "wide")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			Convey("Then it should return an error", func() {
				So(err, ShouldNotBeNil)
				So(cfg, ShouldBeNil)
			})
		})

		Convey("When the context is cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()

			cfg, err := config.Load(cctx)

			Convey("Then it should not load", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
				So(cfg, ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"HOLDEMDNA_CONFIG",
		"HOLDEMDNA_LOG_LEVEL",
		"HOLDEMDNA_FORMAT",
		"HOLDEMDNA_JSON_INDENT",
		"HOLDEMDNA_METRICS_FILE",
		"HOLDEMDNA_WATCH_DEBOUNCE_MS",
		"HOLDEMDNA_RANK_WORKERS",
		"HOLDEMDNA_RANK_TOP",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "holdemdna-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
