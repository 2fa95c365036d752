package api

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/clouddevops/devopsapp/internal/auth"
	"github.com/clouddevops/devopsapp/internal/metrics"
	"github.com/clouddevops/devopsapp/pkg/types"
)

// MessageStore persists and lists messages.
type MessageStore interface {
	Put(ctx context.Context, msg types.Message) error
	List(ctx context.Context) ([]types.Message, error)
}

// Notifier publishes a notification for each saved message.
type Notifier interface {
	Publish(ctx context.Context, subject, message string) (string, error)
}

// ServerOpts holds optional server dependencies.
type ServerOpts struct {
	APIKey   string
	Notifier Notifier // nil disables notifications
}

// Server holds the API server dependencies.
type Server struct {
	echo     *echo.Echo
	store    MessageStore
	notifier Notifier

	now   func() time.Time
	newID func() string
}

// NewServer creates a new API server with all routes configured.
func NewServer(store MessageStore, opts *ServerOpts) *Server {
	if opts == nil {
		opts = &ServerOpts{}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:     e,
		store:    store,
		notifier: opts.Notifier,
		now:      time.Now,
		newID:    uuid.NewString,
	}

	// Global middleware
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())
	e.Use(metrics.EchoMiddleware())

	// Health check and metrics (no auth)
	e.GET("/health", s.health)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	api := e.Group("/api")
	api.Use(auth.APIKeyMiddleware(opts.APIKey))

	api.GET("/message", s.listMessages)
	api.POST("/message", s.createMessage)

	return s
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, types.Health{
		Status:    "UP",
		Timestamp: formatTimestamp(s.now()),
	})
}

// ServeHTTP lets the server be mounted or exercised without a listener.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Start starts the HTTP server on the given address.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// formatTimestamp renders t the way JavaScript's toISOString does, so
// timestamps sort lexically.
func formatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}
