// Package cli implements the cooper command line tool.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/okian/cooper/internal/adapters/chart"
	"github.com/okian/cooper/internal/adapters/fitfile"
	service "github.com/okian/cooper/internal/app"
	"github.com/okian/cooper/internal/domain/model"
	"github.com/okian/cooper/internal/domain/reference"
	"github.com/okian/cooper/pkg/logger"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

const chartFilePermission = 0o644

// ErrUsage reports invalid flag combinations.
var ErrUsage = errors.New("usage")

// Config holds the parsed command line.
type Config struct {
	Gender     string
	Age        int
	DistanceKm float64

	// DistanceSet reports that -distance was given, even as 0.
	DistanceSet bool
	FitFile     string

	Format    string
	ChartFile string

	ChartWidthPx  int
	ChartHeightPx int
	ChartSamples  int

	// Reference prints the reference table instead of assessing.
	Reference bool
}

// Run executes one invocation and writes its report to out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	format := strings.ToLower(cfg.Format)
	if format == "" {
		format = FormatText
	}
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("%w: unknown format %q", ErrUsage, cfg.Format)
	}

	if cfg.Reference {
		return writeReference(out, format)
	}

	log := logger.Named("cli")
	m, err := measurement(ctx, cfg, log)
	if err != nil {
		return err
	}

	svc := service.New(service.WithLogger(log), service.WithCurveSamples(cfg.ChartSamples))
	a, err := svc.Assess(ctx, m)
	if err != nil {
		return err
	}

	if cfg.ChartFile != "" {
		if err := writeChart(ctx, svc, a, cfg); err != nil {
			return err
		}
		log.Info(ctx, "chart written", logger.String("path", cfg.ChartFile))
	}
	return writeAssessment(out, format, a)
}

func measurement(ctx context.Context, cfg Config, log logger.Logger) (model.Measurement, error) {
	g, err := model.ParseGender(cfg.Gender)
	if err != nil {
		return model.Measurement{}, err
	}
	m := model.Measurement{Gender: g, Age: cfg.Age, DistanceKm: cfg.DistanceKm}
	if cfg.FitFile == "" {
		return m, nil
	}
	if cfg.DistanceSet || cfg.DistanceKm != 0 {
		return m, fmt.Errorf("%w: -distance and -fit are mutually exclusive", ErrUsage)
	}
	samples, err := fitfile.DecodeFile(cfg.FitFile)
	if err != nil {
		return m, err
	}
	if m.DistanceKm, err = fitfile.CooperDistance(samples); err != nil {
		return m, err
	}
	log.Info(ctx, "distance read from activity",
		logger.String("file", cfg.FitFile),
		logger.Int("records", len(samples)),
		logger.Float64("distance_km", m.DistanceKm),
	)
	return m, nil
}

func writeChart(ctx context.Context, svc *service.Service, a service.Assessment, cfg Config) error {
	pts, err := svc.Distribution(ctx, a)
	if err != nil {
		return err
	}
	format := chart.DefaultFormat
	if strings.HasSuffix(strings.ToLower(cfg.ChartFile), ".svg") {
		format = "svg"
	}
	r := chart.NewRenderer(chart.WithSize(cfg.ChartWidthPx, cfg.ChartHeightPx), chart.WithFormat(format))

	f, err := os.OpenFile(cfg.ChartFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, chartFilePermission)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	if err := r.Render(f, chart.Spec{Curve: pts, Label: a.CurveLabel(), Marker: a.Result.VO2Max}); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func writeAssessment(out io.Writer, format string, a service.Assessment) error {
	switch format {
	case FormatJSON:
		return writeJSON(out, a)
	case FormatYAML:
		return writeYAML(out, a)
	}
	for _, line := range a.Summary() {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}

func writeReference(out io.Writer, format string) error {
	entries := reference.Entries()
	switch format {
	case FormatJSON:
		return writeJSON(out, entries)
	case FormatYAML:
		return writeYAML(out, entries)
	}
	if _, err := fmt.Fprintf(out, "%-8s %-6s %6s %6s\n", "gender", "age", "mean", "stddev"); err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := fmt.Fprintf(out, "%-8s %-6s %6.1f %6.1f\n", e.Gender, e.Bracket, e.Mean, e.StdDev); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(out io.Writer, v any) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
