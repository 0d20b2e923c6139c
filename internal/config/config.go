// Package config defines service configuration and its layered loading.
//
// Conventions:
//   - New() returns defaults; Load(ctx) layers file and env on top.
//   - Keys are flat snake_case and map 1:1 to koanf tags.
//   - Failures wrap ErrLoadConfig or ErrInvalidConfig.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log output.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// ChartWidthPx and ChartHeightPx size the rendered distribution chart.
	ChartWidthPx  int `koanf:"chart_width_px"`
	ChartHeightPx int `koanf:"chart_height_px"`

	// ChartSamples is the number of density points plotted.
	ChartSamples int `koanf:"chart_samples"`

	// ChartFormat is png or svg.
	ChartFormat string `koanf:"chart_format"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:      "info",
		LogFormat:     "text",
		Addr:          ":9080",
		ChartWidthPx:  640,
		ChartHeightPx: 480,
		ChartSamples:  1000,
		ChartFormat:   "png",
	}
}
