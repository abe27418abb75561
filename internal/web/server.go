// Package web serves the textpulse dashboard over HTTP
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yildizm/textpulse/internal/chart"
	"github.com/yildizm/textpulse/internal/logger"
	"github.com/yildizm/textpulse/internal/monitor"
	"github.com/yildizm/textpulse/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

const shutdownTimeout = 10 * time.Second

// Options configure the dashboard
type Options struct {
	// Mode is the gin mode (debug, release or test); empty keeps the current one
	Mode       string
	WarnLength int
	Chart      chart.Options
	// Metrics enables GET /metrics when set
	Metrics *monitor.Collector
}

// Server is the web front end of a session controller
type Server struct {
	ctrl   *session.Controller
	log    *logger.Logger
	opts   Options
	engine *gin.Engine
}

// NewServer builds the dashboard routes for ctrl
func NewServer(ctrl *session.Controller, opts Options, log *logger.Logger) (*Server, error) {
	if log == nil {
		log = logger.Discard()
	}
	if opts.Mode != "" {
		gin.SetMode(opts.Mode)
	}
	if opts.WarnLength <= 0 {
		opts.WarnLength = ctrl.MaxLength()
	}
	if opts.Chart.Width == 0 || opts.Chart.Height == 0 {
		opts.Chart = chart.DefaultOptions()
	}

	tmpl, err := template.New("").Funcs(template.FuncMap{
		"percent": session.FormatPercent,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	s := &Server{
		ctrl: ctrl,
		log:  log.WithComponent("web"),
		opts: opts,
	}

	r := gin.New()
	r.Use(requestLogger(s.log))
	r.Use(gin.RecoveryWithWriter(s.log.Writer()))
	r.SetHTMLTemplate(tmpl)

	r.GET("/", s.index)
	r.POST("/analyze", s.analyze)
	r.GET("/clear", s.clearPage)
	r.POST("/clear", s.clear)
	r.GET("/chart.svg", s.chartSVG)
	r.GET("/entries/:id", s.entry)
	r.GET("/healthz", s.health)
	if opts.Metrics != nil {
		r.GET("/metrics", s.metrics)
	}

	s.engine = r
	return s, nil
}

// Handler returns the HTTP handler of the dashboard
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe serves on addr until ctx is done, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.InfoWithFields("dashboard listening", []logger.Field{logger.F("addr", addr), logger.F("mode", gin.Mode())})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down dashboard")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// requestLogger logs every request through the component logger
func requestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []logger.Field{
			logger.F("method", c.Request.Method),
			logger.F("path", c.Request.URL.Path),
			logger.F("status", c.Writer.Status()),
			logger.Duration(time.Since(start)),
			logger.F("client", c.ClientIP()),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			log.ErrorWithFields("request failed", fields)
			return
		}
		log.InfoWithFields("request", fields)
	}
}
