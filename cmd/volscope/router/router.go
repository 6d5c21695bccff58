// Package router configures the HTTP surface of the volscope viewer.
//
// Routes configured:
//   - GET /               - Interactive chart page with the scroll slider
//   - GET /view/window    - JSON snapshot of the current view window
//   - GET /view/chart.svg - Current chart as an SVG document
//   - /view/ws            - Websocket carrying scroll control messages
//   - GET /healthz        - Health check endpoint (returns 200 OK)
//   - GET /metrics        - Prometheus metrics endpoint
//
// The websocket is the only writer of the window offset: the page's slider
// sends {"offset": v}, the server applies the scroll transition, and replies
// with the new visible range plus a re-rendered chart.
package router

import (
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/akeene/volscope/pkg/chart"
	"github.com/akeene/volscope/pkg/httpx"
	"github.com/akeene/volscope/pkg/view"

	"github.com/akeene/volscope/cmd/volscope/metrics"
)

// SetupRoutes configures the viewer's HTTP endpoints.
func SetupRoutes(v *view.ComponentView, renderer *chart.Renderer, m *metrics.Metrics, logger *slog.Logger) http.Handler {
	r := mux.NewRouter()

	r.Use(mux.MiddlewareFunc(httpx.RecoveryMiddleware(logger)))
	r.Use(mux.MiddlewareFunc(httpx.LoggingMiddleware(logger)))

	r.Handle("/healthz", httpx.HealthHandler()).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	r.HandleFunc("/", handleIndex(v, renderer, m, logger)).Methods(http.MethodGet)
	r.HandleFunc("/view/window", handleWindow(v)).Methods(http.MethodGet)
	r.HandleFunc("/view/chart.svg", handleChartSVG(v, renderer, m)).Methods(http.MethodGet)
	r.HandleFunc("/view/ws", handleScrollSocket(v, renderer, m, logger))

	return r
}

// renderChart draws the chart for the view's current window.
func renderChart(v *view.ComponentView, renderer *chart.Renderer, m *metrics.Metrics) string {
	start := time.Now()
	xMin, xMax := v.Window().Bounds()
	svg := renderer.Render(chart.Input{
		Component:  v.Component,
		Dev:        v.Dev,
		Prod:       v.Prod,
		Timestamps: v.Window().Timestamps(),
		XMin:       xMin,
		XMax:       xMax,
	})
	if m != nil {
		m.ObserveRender(time.Since(start).Seconds())
	}
	return svg
}

// handleIndex serves the interactive chart page.
func handleIndex(v *view.ComponentView, renderer *chart.Renderer, m *metrics.Metrics, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if m != nil {
			m.RecordPageView()
		}

		snap := v.Snapshot()
		data := pageData{
			Component:  snap.Component,
			SVG:        template.HTML(renderChart(v, renderer, m)),
			Offset:     snap.Offset,
			MaxOffset:  snap.MaxOffset,
			WindowSize: snap.WindowSize,
			Start:      snap.Start.Format(chart.TimeFormat),
			End:        snap.End.Format(chart.TimeFormat),
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := pageTmpl.Execute(w, data); err != nil {
			logger.Error("failed to render page", "error", err)
		}
	}
}

// handleWindow returns a handler for GET /view/window.
func handleWindow(v *view.ComponentView) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, v.Snapshot())
	}
}

// handleChartSVG serves the current chart as a standalone SVG document.
func handleChartSVG(v *view.ComponentView, renderer *chart.Renderer, m *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/svg+xml")
		io.WriteString(w, renderChart(v, renderer, m))
	}
}

// scrollRequest is one slider move from the page.
type scrollRequest struct {
	Offset int `json:"offset"`
}

// scrollUpdate reports the applied transition back to the page.
type scrollUpdate struct {
	Offset    int    `json:"offset"`
	MaxOffset int    `json:"maxOffset"`
	Start     string `json:"start"`
	End       string `json:"end"`
	SVG       string `json:"svg"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// handleScrollSocket owns the window offset: each inbound message applies
// one scroll transition and gets the resulting range and chart back.
func handleScrollSocket(v *view.ComponentView, renderer *chart.Renderer, m *metrics.Metrics, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Error("websocket upgrade failed", "error", err)
			return
		}
		defer conn.Close()

		if m != nil {
			m.SocketOpened()
			defer m.SocketClosed()
		}
		logger.Debug("scroll socket opened", "remote", conn.RemoteAddr())

		for {
			var req scrollRequest
			if err := conn.ReadJSON(&req); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					logger.Warn("scroll socket closed unexpectedly", "error", err)
				}
				return
			}

			start, end := v.Scroll(req.Offset)
			if m != nil {
				m.RecordScrollUpdate()
			}

			upd := scrollUpdate{
				Offset:    v.Window().Offset(),
				MaxOffset: v.Window().MaxOffset(),
				Start:     start.Format(chart.TimeFormat),
				End:       end.Format(chart.TimeFormat),
				SVG:       renderChart(v, renderer, m),
			}
			if err := conn.WriteJSON(upd); err != nil {
				logger.Warn("failed to write scroll update", "error", err)
				return
			}
		}
	}
}
