package stopper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/clouddevops/devopsapp/internal/compute"
)

// ErrMissingInstanceID is returned when no target instance is configured.
var ErrMissingInstanceID = errors.New("stopper: INSTANCE_ID is not configured")

// Config holds the handler's configuration, populated once at process start.
type Config struct {
	InstanceID string
}

// Result is the response returned to the invoking runtime.
type Result struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// Handler stops one predetermined instance per invocation.
// It holds no mutable state, so concurrent invocations need no coordination.
type Handler struct {
	cfg     Config
	compute compute.InstanceStopper
	logger  *log.Logger
}

// New creates a Handler that stops cfg.InstanceID through s.
func New(cfg Config, s compute.InstanceStopper) *Handler {
	return &Handler{
		cfg:     cfg,
		compute: s,
		logger:  log.Default(),
	}
}

// Handle issues a single stop request for the configured instance. The
// trigger payload is accepted but not interpreted. Provider errors are
// returned as-is; there is no retry and no polling for the final state.
func (h *Handler) Handle(ctx context.Context, _ json.RawMessage) (*Result, error) {
	id := h.cfg.InstanceID
	if id == "" {
		return nil, ErrMissingInstanceID
	}

	h.logger.Printf("stopper: stopping instance %s", id)

	if err := h.compute.StopInstance(ctx, id); err != nil {
		return nil, err
	}

	return &Result{
		StatusCode: http.StatusOK,
		Body:       fmt.Sprintf("Successfully stopped instance %s", id),
	}, nil
}
