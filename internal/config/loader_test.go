package config_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/okian/cooper/internal/config"
	"github.com/okian/cooper/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigNew(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.ChartWidthPx, convey.ShouldEqual, 640)
			convey.So(cfg.ChartHeightPx, convey.ShouldEqual, 480)
			convey.So(cfg.ChartSamples, convey.ShouldEqual, 1000)
			convey.So(cfg.ChartFormat, convey.ShouldEqual, "png")
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldResemble, config.New())
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("COOPER_ADDR", ":8080")
			_ = os.Setenv("COOPER_CHART_WIDTH_PX", "800")
			_ = os.Setenv("COOPER_CHART_SAMPLES", "200")
			_ = os.Setenv("COOPER_CHART_FORMAT", "svg")
			_ = os.Setenv("COOPER_LOG_LEVEL", "debug")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.ChartWidthPx, convey.ShouldEqual, 800)
				convey.So(cfg.ChartHeightPx, convey.ShouldEqual, 480)
				convey.So(cfg.ChartSamples, convey.ShouldEqual, 200)
				convey.So(cfg.ChartFormat, convey.ShouldEqual, "svg")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
			})
		})

		convey.Convey("When loading config with a YAML file and env on top", func() {
			tmpFile := createTempFile(t, "cooper-*.yaml", `
# comment
addr: ":9090"
chart_width_px: 1024
log_format: json
`)
			_ = os.Setenv("COOPER_CONFIG", tmpFile)
			_ = os.Setenv("COOPER_CHART_WIDTH_PX", "300")

			cfg, err := config.Load(ctx)

			convey.Convey("Then env overrides the file and the file overrides defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.ChartWidthPx, convey.ShouldEqual, 300)
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.ChartSamples, convey.ShouldEqual, 1000)
			})
		})

		convey.Convey("When loading config from a .env file", func() {
			dotenv := createTempFile(t, "cooper-*.env", "COOPER_ADDR=:7070\nCOOPER_CHART_HEIGHT_PX=360\n")
			_ = os.Setenv("COOPER_DOTENV", dotenv)

			cfg, err := config.Load(ctx)

			convey.Convey("Then its variables apply like env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.ChartHeightPx, convey.ShouldEqual, 360)
			})
		})

		convey.Convey("When the explicit .env file is missing", func() {
			_ = os.Setenv("COOPER_DOTENV", "/non/existent/.env")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempFile(t, "cooper-*.yaml", `invalid: yaml: content: [`)
			_ = os.Setenv("COOPER_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("COOPER_CONFIG", "/non/existent/file.yaml")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("COOPER_CHART_SAMPLES", "lots")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func TestConfigValidate(t *testing.T) {
	convey.Convey("Given configs that break one rule each", t, func() {
		mutations := []func(*config.Config){
			func(c *config.Config) { c.Addr = " " },
			func(c *config.Config) { c.ChartWidthPx = 0 },
			func(c *config.Config) { c.ChartHeightPx = -1 },
			func(c *config.Config) { c.ChartSamples = 1 },
			func(c *config.Config) { c.ChartFormat = "gif" },
			func(c *config.Config) { c.LogFormat = "xml" },
		}

		convey.Convey("Then each is rejected with ErrInvalidConfig", func() {
			for _, mutate := range mutations {
				cfg := config.New()
				mutate(cfg)
				err := cfg.Validate()
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			}
		})

		convey.Convey("And an empty addr from env fails Load", func() {
			clearConfigEnvVars()
			defer clearConfigEnvVars()
			_ = os.Setenv("COOPER_ADDR", "")

			cfg, err := config.Load(context.Background())
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
			convey.So(cfg, convey.ShouldBeNil)
		})
	})
}

func TestWatch(t *testing.T) {
	convey.Convey("Given a watched config file", t, func() {
		clearConfigEnvVars()
		defer clearConfigEnvVars()
		convey.So(logger.Init(), convey.ShouldBeNil)

		path := createTempFile(t, "cooper-*.yaml", "log_level: info\n")
		_ = os.Setenv("COOPER_CONFIG", path)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		changes := make(chan *config.Config, 4)
		done := make(chan error, 1)
		go func() {
			done <- config.Watch(ctx, logger.Get(), func(c *config.Config) {
				select {
				case changes <- c:
				default:
				}
			})
		}()

		convey.Convey("When the file is rewritten", func() {
			var got *config.Config
			deadline := time.After(4 * time.Second)
		loop:
			for {
				// Rewrite until the watcher is registered and reports the change.
				_ = os.WriteFile(path, []byte("log_level: debug\n"), 0o600)
				select {
				case got = <-changes:
					// A truncating write can surface an empty file first.
					if got.LogLevel == "debug" {
						break loop
					}
				case <-deadline:
					break loop
				case <-time.After(100 * time.Millisecond):
				}
			}
			cancel()

			convey.Convey("Then onChange receives the reloaded config", func() {
				convey.So(got, convey.ShouldNotBeNil)
				convey.So(got.LogLevel, convey.ShouldEqual, "debug")
				convey.So(<-done, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the file is saved twice by renaming a new one over it", func() {
			// saveUntil repeats the save until the watcher reports the level.
			saveUntil := func(level string) *config.Config {
				tmp := path + ".tmp"
				deadline := time.After(2 * time.Second)
				for {
					_ = os.WriteFile(tmp, []byte("log_level: "+level+"\n"), 0o600)
					_ = os.Rename(tmp, path)
					select {
					case got := <-changes:
						if got.LogLevel == level {
							return got
						}
					case <-deadline:
						return nil
					case <-time.After(200 * time.Millisecond):
					}
				}
			}
			first := saveUntil("warn")
			second := saveUntil("debug")
			cancel()

			convey.Convey("Then the watch survives the first replacement", func() {
				convey.So(first, convey.ShouldNotBeNil)
				convey.So(second, convey.ShouldNotBeNil)
				convey.So(second.LogLevel, convey.ShouldEqual, "debug")
				convey.So(<-done, convey.ShouldBeNil)
			})
		})
	})

	convey.Convey("Given no config file", t, func() {
		clearConfigEnvVars()
		convey.So(logger.Init(), convey.ShouldBeNil)

		convey.Convey("Then Watch refuses to start", func() {
			err := config.Watch(context.Background(), logger.Get(), func(*config.Config) {})
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"COOPER_CONFIG",
		"COOPER_DOTENV",
		"COOPER_ADDR",
		"COOPER_LOG_LEVEL",
		"COOPER_LOG_FORMAT",
		"COOPER_CHART_WIDTH_PX",
		"COOPER_CHART_HEIGHT_PX",
		"COOPER_CHART_SAMPLES",
		"COOPER_CHART_FORMAT",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempFile(t *testing.T, pattern, content string) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), pattern)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString(content); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return f.Name()
}
