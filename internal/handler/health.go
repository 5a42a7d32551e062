package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const readyTimeout = 2 * time.Second

type DBStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type HealthResponse struct {
	Status  string    `json:"status"`
	Version string    `json:"version,omitempty"`
	Uptime  int64     `json:"uptime,omitempty"`
	DB      *DBStatus `json:"db,omitempty"`
}

type HealthHandler struct {
	db        *gorm.DB
	log       *zap.Logger
	startTime time.Time
	version   string
}

func NewHealthHandler(db *gorm.DB, log *zap.Logger, startTime time.Time, version string) *HealthHandler {
	return &HealthHandler{
		db:        db,
		log:       log,
		startTime: startTime,
		version:   version,
	}
}

func (h *HealthHandler) RegisterRoutes(e *gin.Engine) {
	e.GET("/health", h.Health)
	e.GET("/ready", h.Ready)
}

// Health godoc
// @Summary  Liveness probe
// @Tags     health
// @Produce  json
// @Success  200  {object}  HealthResponse
// @Router   /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: h.version,
		Uptime:  h.uptime(),
	})
}

// Ready godoc
// @Summary  Readiness probe
// @Description  Pings the database
// @Tags     health
// @Produce  json
// @Success  200  {object}  HealthResponse
// @Failure  503  {object}  HealthResponse
// @Router   /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err != nil {
		h.log.Error("readiness: no sql.DB", zap.Error(err))
		c.JSON(http.StatusInternalServerError, HealthResponse{
			Status: "error",
			DB:     &DBStatus{Status: "unknown", Error: "failed to get underlying DB"},
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		h.log.Warn("readiness: database ping failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, HealthResponse{
			Status: "unhealthy",
			DB:     &DBStatus{Status: "down", Error: err.Error()},
		})
		return
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:  "ready",
		Version: h.version,
		Uptime:  h.uptime(),
		DB:      &DBStatus{Status: "up"},
	})
}

func (h *HealthHandler) uptime() int64 {
	return int64(time.Since(h.startTime).Seconds())
}
