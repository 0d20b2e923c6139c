package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/cooper/internal/adapters/chart"
	"github.com/okian/cooper/internal/cli"
	"github.com/okian/cooper/internal/domain/percentile"
	"github.com/okian/cooper/pkg/logger"
)

func main() {
	var (
		gender    = flag.String("gender", "", "Male or Female")
		age       = flag.Int("age", 0, "Age in years (5-99)")
		distance  = flag.Float64("distance", 0, "Kilometers covered in 12 minutes (0-20)")
		fitFile   = flag.String("fit", "", "Read the distance from a FIT activity file")
		format    = flag.String("format", cli.FormatText, "Output format: text, json or yaml")
		chartFile = flag.String("chart", "", "Write the distribution chart to a .png or .svg file")
		width     = flag.Int("width", chart.DefaultWidthPx, "Chart width in pixels")
		height    = flag.Int("height", chart.DefaultHeightPx, "Chart height in pixels")
		samples   = flag.Int("samples", percentile.DefaultSamples, "Density points plotted")
		ref       = flag.Bool("reference", false, "Print the reference table and exit")
		logLevel  = flag.String("log-level", "warn", "Log level: debug, info, warn, error")
		help      = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	distanceSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "distance" {
			distanceSet = true
		}
	})

	if *help {
		cli.ShowHelp(os.Stdout)
		return
	}

	// Logs go to stderr so stdout carries only the report.
	if err := logger.Init(logger.WithWriter(os.Stderr)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if err := logger.SetLevelString(*logLevel); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := cli.Config{
		Gender:        *gender,
		Age:           *age,
		DistanceKm:    *distance,
		DistanceSet:   distanceSet,
		FitFile:       *fitFile,
		Format:        *format,
		ChartFile:     *chartFile,
		ChartWidthPx:  *width,
		ChartHeightPx: *height,
		ChartSamples:  *samples,
		Reference:     *ref,
	}
	if err := cli.Run(ctx, cfg, os.Stdout); err != nil {
		os.Stderr.WriteString("cooper: " + err.Error() + "\n")
		stop()
		os.Exit(1)
	}
}
