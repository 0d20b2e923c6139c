// Package chart draws a reference VO2 max distribution with the user's
// value marked.
package chart

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/okian/cooper/internal/domain/percentile"
)

// Rendering defaults.
const (
	DefaultWidthPx  = 640
	DefaultHeightPx = 480
	DefaultFormat   = "png"

	// vgimg rasterizes at 96 dpi.
	dotsPerInch = 96

	title       = "VO2 Max Distribution by Age and Gender"
	xLabel      = "VO2 Max (ml/kg/min)"
	yLabel      = "Probability Density"
	markerLabel = "Your VO2 Max"
)

var markerColor = color.RGBA{R: 255, A: 255}

// Spec is what gets drawn.
type Spec struct {
	Curve []percentile.Point
	Label string
	// Marker is the x position of the vertical dashed line.
	Marker float64
}

// Renderer turns a Spec into an image.
type Renderer struct {
	widthPx  int
	heightPx int
	format   string
}

// Option applies a configuration option to the Renderer.
type Option func(*Renderer)

// WithSize sets the output size in pixels.
func WithSize(widthPx, heightPx int) Option {
	return func(r *Renderer) {
		if widthPx > 0 && heightPx > 0 {
			r.widthPx, r.heightPx = widthPx, heightPx
		}
	}
}

// WithFormat selects png or svg output.
func WithFormat(format string) Option {
	return func(r *Renderer) {
		if format != "" {
			r.format = strings.ToLower(format)
		}
	}
}

// NewRenderer creates a renderer with configuration options.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		widthPx:  DefaultWidthPx,
		heightPx: DefaultHeightPx,
		format:   DefaultFormat,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Format returns the image format the renderer produces.
func (r *Renderer) Format() string { return r.format }

// ContentType returns the MIME type of the rendered image.
func (r *Renderer) ContentType() string {
	if r.format == "svg" {
		return "image/svg+xml"
	}
	return "image/png"
}

// Render writes the chart to w.
func (r *Renderer) Render(w io.Writer, s Spec) error {
	if r.format != "png" && r.format != "svg" {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, r.format)
	}
	if len(s.Curve) < 2 {
		return ErrEmptyCurve
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	xys := make(plotter.XYs, len(s.Curve))
	peak := 0.0
	for i, pt := range s.Curve {
		xys[i] = plotter.XY{X: pt.X, Y: pt.Y}
		if pt.Y > peak {
			peak = pt.Y
		}
	}
	density, err := plotter.NewLine(xys)
	if err != nil {
		return fmt.Errorf("%w: density: %w", ErrRender, err)
	}
	density.Width = vg.Points(1.5)

	marker, err := plotter.NewLine(plotter.XYs{{X: s.Marker, Y: 0}, {X: s.Marker, Y: peak * 1.05}})
	if err != nil {
		return fmt.Errorf("%w: marker: %w", ErrRender, err)
	}
	marker.Color = markerColor
	marker.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}

	p.Add(density, marker)
	p.Legend.Add(s.Label, density)
	p.Legend.Add(markerLabel, marker)

	wt, err := p.WriterTo(pixels(r.widthPx), pixels(r.heightPx), r.format)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("%w: write: %w", ErrRender, err)
	}
	return nil
}

func pixels(n int) vg.Length {
	return vg.Length(n) * vg.Inch / dotsPerInch
}
