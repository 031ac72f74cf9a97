package viewer

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"archcompare/pkg/logging"
)

//go:embed templates/*.html
var templatesFS embed.FS

const shutdownTimeout = 10 * time.Second

// Config controls where the dashboard listens.
type Config struct {
	Address     string
	Port        int
	ServiceName string
}

// Addr is the host:port the server binds to.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Address, strconv.Itoa(c.Port))
}

// Server is the dashboard HTTP server.
type Server struct {
	config Config
	router *gin.Engine
	logger logging.Logger
}

// NewServer wires the routes for h.
func NewServer(config Config, h *Handler, logger logging.Logger) (*Server, error) {
	router, err := NewRouter(config.ServiceName, h, logger)
	if err != nil {
		return nil, err
	}
	return &Server{config: config, router: router, logger: logger}, nil
}

// NewRouter builds the gin engine with middleware, templates and routes.
func NewRouter(serviceName string, h *Handler, logger logging.Logger) (*gin.Engine, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	router := gin.New()
	// OTel creates the span first so recovery and request logs run inside it
	router.Use(otelgin.Middleware(serviceName))
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))
	router.SetHTMLTemplate(tmpl)

	SetupRoutes(router, h)
	return router, nil
}

// SetupRoutes registers the dashboard pages and the JSON API.
func SetupRoutes(router *gin.Engine, h *Handler) {
	router.GET("/", h.Overview)
	router.GET("/table", h.Table)
	router.GET("/deep-dive", h.DeepDive)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", h.Health)
		v1.GET("/overview", h.APIOverview)
		v1.GET("/records", h.APIRecords)
		v1.GET("/architectures", h.APIArchitectures)
		v1.GET("/architectures/:id", h.APIArchitecture)
		v1.GET("/groups/*group", h.APIGroup)
	}
}

// ListenAndServe binds the configured address and serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve handles requests on ln until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	server := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Dashboard available at http://%s", ln.Addr())
		errCh <- server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down dashboard")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown error: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}
	return nil
}

func requestLogger(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("%s %s %d %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

func parseTemplates() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}

var templateFuncs = template.FuncMap{
	"value": FormatValue,
	"limitLabel": func(n int) string {
		if n <= 0 {
			return "All"
		}
		return strconv.Itoa(n)
	},
	"flagClass": func(v int) string {
		if v == 1 {
			return "same"
		}
		return "diff"
	},
	"percent": func(f float64) string {
		return strconv.FormatFloat(f, 'f', 1, 64) + "%"
	},
}
