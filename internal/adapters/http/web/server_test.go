package web_test

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/okian/cooper/internal/adapters/chart"
	"github.com/okian/cooper/internal/adapters/http/web"
	service "github.com/okian/cooper/internal/app"
	"github.com/okian/cooper/internal/domain/model"
	"github.com/okian/cooper/internal/domain/percentile"
	"github.com/okian/cooper/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

// TestMain initializes the global logger before any test builds a service,
// since service.New reads it when called as an argument to newMux.
func TestMain(m *testing.M) {
	if err := logger.Init(logger.WithWriter(io.Discard)); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type failingAssessor struct{ err error }

func (f failingAssessor) Assess(context.Context, model.Measurement) (service.Assessment, error) {
	return service.Assessment{}, f.err
}

func (f failingAssessor) Distribution(context.Context, service.Assessment) ([]percentile.Point, error) {
	return nil, f.err
}

type failingRenderer struct{}

func (failingRenderer) Render(io.Writer, chart.Spec) error { return errors.New("no canvas") }
func (failingRenderer) Format() string                       { return "png" }
func (failingRenderer) ContentType() string                  { return "image/png" }

func newMux(assessor web.Assessor, renderer web.Renderer) *http.ServeMux {
	if err := logger.Init(logger.WithWriter(io.Discard)); err != nil {
		panic(err)
	}
	mux := http.NewServeMux()
	web.NewServer(assessor, renderer, logger.Get()).Register(context.Background(), mux)
	return mux
}

func get(mux http.Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, http.NoBody)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestIndex(t *testing.T) {
	Convey("Given the web server with a real assessor", t, func() {
		mux := newMux(service.New(service.WithCurveSamples(100)), chart.NewRenderer(chart.WithSize(320, 240)))

		Convey("When the form is opened without values", func() {
			w := get(mux, "/")

			Convey("Then it shows the empty form", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldEqual, "text/html; charset=utf-8")
				body := w.Body.String()
				So(body, ShouldContainSubstring, "Cooper Test VO2 Max Estimator")
				So(body, ShouldContainSubstring, `<option value="Female">`)
				So(body, ShouldContainSubstring, `min="5" max="99"`)
				So(body, ShouldContainSubstring, "Calculate VO2 Max")
				So(body, ShouldNotContainSubstring, "<img")
			})
		})

		Convey("When the form is submitted", func() {
			w := get(mux, "/?gender=Male&age=25&distance=2.4")

			Convey("Then it shows the results and links the chart", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				body := w.Body.String()
				So(body, ShouldContainSubstring, "Your estimated VO2 max is: 42.35 ml/kg/min")
				So(body, ShouldContainSubstring, "Your percentile for your age group and gender is: 7.58%")
				So(body, ShouldContainSubstring, `<img src="/chart?age=25&amp;distance=2.4&amp;gender=Male"`)
				So(body, ShouldContainSubstring, `<option value="Male" selected>`)
			})
		})

		Convey("When the gender is submitted in lower case", func() {
			w := get(mux, "/?gender=+female+&age=40&distance=2")

			Convey("Then the matching option stays selected", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				body := w.Body.String()
				So(body, ShouldContainSubstring, `<option value="Female" selected>`)
				So(body, ShouldNotContainSubstring, `<option value="Male" selected>`)
				So(body, ShouldContainSubstring, "gender=Female")
			})
		})

		Convey("When the age is out of range", func() {
			w := get(mux, "/?gender=Female&age=140&distance=2")

			Convey("Then the form is shown again with an error", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(w.Body.String(), ShouldContainSubstring, `class="error"`)
				So(w.Body.String(), ShouldContainSubstring, "age 140 outside")
			})
		})

		Convey("When the distance is not a number", func() {
			w := get(mux, "/?gender=Female&age=40&distance=far")

			Convey("Then it is a bad request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(w.Body.String(), ShouldContainSubstring, "distance must be a number")
			})
		})

		Convey("When the gender is unsupported", func() {
			w := get(mux, "/?gender=robot&age=40&distance=2")

			Convey("Then it is a bad request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(w.Body.String(), ShouldContainSubstring, "invalid gender")
			})
		})

		Convey("When an unknown path is requested", func() {
			w := get(mux, "/unknown")

			Convey("Then it is not found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When the form is posted", func() {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("gender=Male"))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it is not found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})

	Convey("Given an assessor that fails internally", t, func() {
		mux := newMux(failingAssessor{err: errors.New("boom")}, chart.NewRenderer())

		Convey("When the form is submitted", func() {
			w := get(mux, "/?gender=Male&age=25&distance=2.4")

			Convey("Then it reports a server error without leaking the cause", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
				So(w.Body.String(), ShouldNotContainSubstring, "boom")
			})
		})
	})
}

func TestChart(t *testing.T) {
	Convey("Given the web server with a real assessor", t, func() {
		mux := newMux(service.New(service.WithCurveSamples(100)), chart.NewRenderer(chart.WithSize(320, 240)))

		Convey("When the chart is requested", func() {
			w := get(mux, "/chart?gender=Female&age=33&distance=2.1")

			Convey("Then a PNG is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldEqual, "image/png")
				_, err := png.DecodeConfig(bytes.NewReader(w.Body.Bytes()))
				So(err, ShouldBeNil)
			})
		})

		Convey("When the chart parameters are missing", func() {
			w := get(mux, "/chart")

			Convey("Then it is a bad request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})

	Convey("Given a renderer that fails", t, func() {
		mux := newMux(service.New(), failingRenderer{})

		Convey("Then the chart endpoint reports a server error", func() {
			w := get(mux, "/chart?gender=Male&age=50&distance=2.6")
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
		})
	})
}

func TestOperationalEndpoints(t *testing.T) {
	Convey("Given the web server", t, func() {
		mux := newMux(service.New(), chart.NewRenderer())

		Convey("Then /healthz reports ok", func() {
			w := get(mux, "/healthz")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldEqual, "ok\n")
		})

		Convey("Then /metrics exposes assessment counters after a request", func() {
			get(mux, "/?gender=Male&age=61&distance=2.2")
			w := get(mux, "/metrics")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "cooper_vo2max_assessments_total")
			So(w.Body.String(), ShouldContainSubstring, "cooper_vo2max_http_requests_total")
		})
	})

	Convey("Given a nil mux", t, func() {
		Convey("Then Register panics", func() {
			So(logger.Init(), ShouldBeNil)
			s := web.NewServer(service.New(), chart.NewRenderer(), logger.Get())
			So(func() { s.Register(context.Background(), nil) }, ShouldPanic)
		})
	})
}
