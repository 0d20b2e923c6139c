// Package web serves the interactive Cooper test form, the distribution
// chart and the operational endpoints.
package web

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/cooper/internal/adapters/chart"
	service "github.com/okian/cooper/internal/app"
	"github.com/okian/cooper/internal/domain/model"
	"github.com/okian/cooper/internal/domain/percentile"
	"github.com/okian/cooper/pkg/logger"
	"github.com/okian/cooper/pkg/metrics"
)

// Assessor runs assessments for the handlers.
type Assessor interface {
	Assess(ctx context.Context, m model.Measurement) (service.Assessment, error)
	Distribution(ctx context.Context, a service.Assessment) ([]percentile.Point, error)
}

// Renderer draws the distribution chart.
type Renderer interface {
	Render(w io.Writer, s chart.Spec) error
	Format() string
	ContentType() string
}

// Server wires the HTTP routes.
type Server struct {
	assessor Assessor
	renderer Renderer
	logger   logger.Logger
}

// NewServer creates a server backed by assessor and renderer.
func NewServer(assessor Assessor, renderer Renderer, log logger.Logger) *Server {
	return &Server{assessor: assessor, renderer: renderer, logger: log.Named("web")}
}

// Register attaches all routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("/", MetricsMiddleware(s.HandleIndex, "index", s.logger))
	mux.HandleFunc("/chart", MetricsMiddleware(s.HandleChart, "chart", s.logger))
	mux.HandleFunc("/healthz", MetricsMiddleware(s.HandleHealth, "healthz", s.logger))
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
}

type indexData struct {
	Genders     []string
	Gender      string
	Age         string
	Distance    string
	MinAge      int
	MaxAge      int
	MinDistance float64
	MaxDistance float64
	Error       string
	Lines       []string
	ChartURL    string
}

func newIndexData() indexData {
	genders := make([]string, 0, 2)
	for _, g := range model.Genders() {
		genders = append(genders, g.String())
	}
	return indexData{
		Genders:     genders,
		Gender:      model.Male.String(),
		Age:         strconv.Itoa(model.MinAge),
		Distance:    "0.00",
		MinAge:      model.MinAge,
		MaxAge:      model.MaxAge,
		MinDistance: model.MinDistanceKm,
		MaxDistance: model.MaxDistanceKm,
	}
}

// HandleIndex handles GET / : the form, and its results once submitted.
func (s *Server) HandleIndex(w http.ResponseWriter, r *http.Request) {
	const op = "web.index"
	if r.URL.Path != "/" || r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	data := newIndexData()
	q := r.URL.Query()
	status := http.StatusOK
	if submitted(q) {
		data.Gender = q.Get(paramGender)
		if g, err := model.ParseGender(data.Gender); err == nil {
			// The select matches options by their canonical label.
			data.Gender = g.String()
		}
		data.Age = q.Get(paramAge)
		data.Distance = q.Get(paramDistance)

		a, err := s.assess(r.Context(), q)
		switch {
		case err == nil:
			data.Lines = a.Summary()
			data.ChartURL = "/chart?" + encodeMeasurement(a.Measurement).Encode()
		case errors.Is(err, ErrBadRequest):
			status = http.StatusBadRequest
			data.Error = errors.Unwrap(err).Error()
		default:
			status = http.StatusInternalServerError
			data.Error = "the assessment could not be computed"
			s.logger.Error(r.Context(), "assessment failed", logger.Error(Wrap(op, err)))
		}
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		s.logger.Error(r.Context(), "render index", logger.Error(WrapKind(op, ErrRender, err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// HandleChart handles GET /chart?gender=&age=&distance= .
func (s *Server) HandleChart(w http.ResponseWriter, r *http.Request) {
	const op = "web.chart"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	a, err := s.assess(r.Context(), r.URL.Query())
	if err != nil {
		if errors.Is(err, ErrBadRequest) {
			http.Error(w, errors.Unwrap(err).Error(), http.StatusBadRequest)
			return
		}
		s.logger.Error(r.Context(), "assessment failed", logger.Error(Wrap(op, err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	pts, err := s.assessor.Distribution(r.Context(), a)
	if err != nil {
		s.logger.Error(r.Context(), "distribution failed", logger.Error(Wrap(op, err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	start := time.Now()
	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, chart.Spec{Curve: pts, Label: a.CurveLabel(), Marker: a.Result.VO2Max}); err != nil {
		s.logger.Error(r.Context(), "render chart", logger.Error(WrapKind(op, ErrRender, err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	metrics.RecordChartRender(s.renderer.Format(), float64(time.Since(start).Microseconds())/1000)

	w.Header().Set("Content-Type", s.renderer.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}

// HandleHealth handles GET /healthz.
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok\n")
}

// assess parses q and runs an assessment. Input problems come back
// wrapping ErrBadRequest so errors.Unwrap yields the user-facing cause.
func (s *Server) assess(ctx context.Context, q url.Values) (service.Assessment, error) {
	m, err := parseMeasurement(q)
	if err != nil {
		return service.Assessment{}, badRequest(err)
	}
	a, err := s.assessor.Assess(ctx, m)
	if err != nil {
		if service.ErrorKind(err) == service.KindInvalidInput {
			return a, badRequest(err)
		}
		return a, err
	}
	return a, nil
}

// badRequestError matches ErrBadRequest under errors.Is while Unwrap
// returns the user-facing cause.
type badRequestError struct{ cause error }

func (e badRequestError) Error() string        { return ErrBadRequest.Error() + ": " + e.cause.Error() }
func (e badRequestError) Unwrap() error        { return e.cause }
func (e badRequestError) Is(target error) bool { return target == ErrBadRequest }

func badRequest(cause error) error { return badRequestError{cause: cause} }
