// Package api implements the HTTP JSON endpoints of the health diary
// service under the /api/v2 prefix.
package api

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tphakala/healthdiary-go/internal/conf"
	"github.com/tphakala/healthdiary-go/internal/errors"
	"github.com/tphakala/healthdiary-go/internal/logging"
	"github.com/tphakala/healthdiary-go/internal/observability"
	"github.com/tphakala/healthdiary-go/internal/tablestore"
)

// EntryStore is the table storage surface the handlers need.
type EntryStore interface {
	ListEntities(ctx context.Context, tableName string) ([]tablestore.Entity, error)
	InsertEntity(ctx context.Context, tableName string, entity tablestore.Entity) error
}

// Completer is the text-completion surface the handlers need.
type Completer interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// Controller wires the diary endpoints into an echo server. The store and
// completer may be nil when their credentials are absent; handlers then
// report a configuration error naming the missing environment variable.
type Controller struct {
	Echo      *echo.Echo
	Group     *echo.Group
	Settings  *conf.Settings
	store     EntryStore
	completer Completer
	metrics   *observability.Metrics
	logger    *slog.Logger
}

// ErrorResponse is the standard JSON shape for API errors.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	Code          int    `json:"code"`
	CorrelationID string `json:"correlation_id"`
}

// SuccessResponse acknowledges a completed insert.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// New creates the API controller and registers all routes on e.
func New(e *echo.Echo, settings *conf.Settings, store EntryStore, completer Completer, m *observability.Metrics) *Controller {
	logger := logging.ForService("api")
	if logger == nil {
		logger = slog.Default().With("service", "api")
	}

	c := &Controller{
		Echo:      e,
		Settings:  settings,
		store:     store,
		completer: completer,
		metrics:   m,
		logger:    logger,
	}

	c.initRoutes()
	return c
}

// initRoutes registers the API endpoints.
func (c *Controller) initRoutes() {
	c.Group = c.Echo.Group("/api/v2")

	c.Group.GET("/health", c.HealthCheck)

	c.Group.GET("/food", c.GetFoodEntries)
	c.Group.POST("/food", c.CreateFoodEntry)
	c.Group.GET("/symptoms", c.GetSymptomEntries)
	c.Group.POST("/symptoms", c.CreateSymptomEntry)
	c.Group.GET("/medications", c.GetMedicationEntries)
	c.Group.POST("/medications", c.CreateMedicationEntry)
	c.Group.GET("/drinks", c.GetDrinkEntries)
	c.Group.POST("/drinks", c.CreateDrinkEntry)

	c.Group.GET("/analysis", c.GetAnalysisEntries)
	c.Group.POST("/analysis", c.RunAnalysis)
	c.Group.POST("/question", c.AskQuestion)

	if c.metrics != nil {
		c.Echo.GET("/metrics", echo.WrapHandler(c.metrics.Handler()))
	}
}

// HealthCheck handles GET /api/v2/health.
func (c *Controller) HealthCheck(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]any{
		"status":  "healthy",
		"name":    c.Settings.Main.Name,
		"time":    time.Now().UTC().Format(time.RFC3339),
		"storage": c.store != nil,
	})
}

// entryStore returns the configured store or a configuration error naming
// the environment variable that would configure it.
func (c *Controller) entryStore() (EntryStore, error) {
	if c.store == nil {
		return nil, errors.Newf("%s is not set", conf.EnvStorageConnectionString).
			Component("api").
			Category(errors.CategoryConfiguration).
			Build()
	}
	return c.store, nil
}

// textCompleter returns the configured completion client or a
// configuration error naming the environment variable.
func (c *Controller) textCompleter() (Completer, error) {
	if c.completer == nil {
		return nil, errors.Newf("%s is not set", conf.EnvCompletionAPIKey).
			Component("api").
			Category(errors.CategoryConfiguration).
			Build()
	}
	return c.completer, nil
}

// HandleError sends a standardized JSON error response and logs the error
// with a correlation ID the caller can quote back.
func (c *Controller) HandleError(ctx echo.Context, err error, message string, code int) error {
	correlationID := generateCorrelationID()

	c.logger.Error(message,
		"error", err.Error(),
		"category", string(errors.CategoryOf(err)),
		"code", code,
		"correlation_id", correlationID,
		"path", ctx.Request().URL.Path,
		"method", ctx.Request().Method,
		"ip", ctx.RealIP(),
	)

	return ctx.JSON(code, ErrorResponse{
		Error:         err.Error(),
		Message:       message,
		Code:          code,
		CorrelationID: correlationID,
	})
}

// generateCorrelationID creates a short random identifier for error tracking.
func generateCorrelationID() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "00000000"
	}
	return hex.EncodeToString(b)
}
