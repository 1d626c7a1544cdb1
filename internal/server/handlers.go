package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/draw-odds/internal/database"
	"github.com/yourusername/draw-odds/internal/draw"
	"github.com/yourusername/draw-odds/internal/metrics"
	"github.com/yourusername/draw-odds/internal/models"
	"github.com/yourusername/draw-odds/internal/repository"
	"github.com/yourusername/draw-odds/internal/snapshot"
)

// EstimateRequest is the estimate endpoint payload
type EstimateRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

// ErrorResponse is the error payload shared by all endpoints
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// HealthStatus reports process and dependency health
type HealthStatus struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// DatasetInfo summarizes the active dataset
type DatasetInfo struct {
	PrimarySource      string              `json:"primary_source"`
	PoolSize           int                 `json:"pool_size"`
	Capacity           draw.CapacityReport `json:"capacity"`
	SubPoolClaimants   int                 `json:"sub_pool_claimants"`
	CrossPoolClaimants int                 `json:"cross_pool_claimants"`
	AuxPools           []string            `json:"aux_pools"`
	Sources            []draw.SourceStat   `json:"sources"`
	LoadedAt           time.Time           `json:"loaded_at"`
}

// HandlerDeps carries everything the API handlers need. Repos, DB, Writer,
// and Publisher are optional; nil disables the corresponding behavior.
type HandlerDeps struct {
	Engine    *draw.Engine
	Holder    *DatasetHolder
	Cache     *EstimateCache
	Hub       *snapshot.Hub
	Repos     *repository.Repositories
	DB        *database.DB
	Writer    *snapshot.FileWriter
	Publisher *snapshot.Publisher
	Reload    func(context.Context) error
	Logger    *logrus.Logger
}

// Handler serves the estimation API
type Handler struct {
	deps HandlerDeps
}

// NewHandler creates the API handler set
func NewHandler(deps HandlerDeps) *Handler {
	if deps.Logger == nil {
		deps.Logger = logrus.New()
	}
	return &Handler{deps: deps}
}

// Estimate runs an estimation for the requested target
func (h *Handler) Estimate(c *gin.Context) {
	var req EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request format: first_name and last_name are required",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	if cached := h.deps.Cache.Get(req.FirstName, req.LastName); cached != nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	result, err := h.deps.Engine.Estimate(h.deps.Holder.Get(), req.FirstName, req.LastName)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNoDataset):
			c.JSON(http.StatusServiceUnavailable, ErrorResponse{
				Error: "No dataset loaded",
				Code:  "NO_DATASET",
			})
		case errors.Is(err, models.ErrTargetNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error: err.Error(),
				Code:  "TARGET_NOT_FOUND",
			})
		default:
			h.deps.Logger.WithError(err).Error("Estimation failed")
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error: "Estimation failed",
				Code:  "INTERNAL",
			})
		}
		return
	}

	h.deps.Cache.Set(req.FirstName, req.LastName, result)
	h.deliver(result)

	c.JSON(http.StatusOK, result)
}

// deliver fans a fresh result out to the optional sinks. Sink failures are
// logged, never surfaced to the API caller.
func (h *Handler) deliver(result *models.EstimationResult) {
	if h.deps.Repos != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := h.deps.Repos.Estimate.Create(ctx, result); err != nil {
			h.deps.Logger.WithError(err).Error("Failed to persist estimation result")
		}
		cancel()
	}

	if h.deps.Hub != nil {
		h.deps.Hub.Broadcast(result)
	}

	if h.deps.Writer != nil {
		if err := h.deps.Writer.Write(result); err != nil {
			h.deps.Logger.WithError(err).Warn("Failed to write snapshot file")
		}
	}

	if h.deps.Publisher != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := h.deps.Publisher.Publish(ctx, result); err != nil {
				h.deps.Logger.WithError(err).Warn("Failed to publish snapshot")
			}
		}()
	}
}

// RecentEstimates lists recent persisted results
func (h *Handler) RecentEstimates(c *gin.Context) {
	if h.deps.Repos == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error: "Persistence is not enabled",
			Code:  "PERSISTENCE_DISABLED",
		})
		return
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	results, err := h.deps.Repos.Estimate.ListRecent(c.Request.Context(), limit)
	if err != nil {
		h.deps.Logger.WithError(err).Error("Failed to list recent estimation results")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "Failed to list recent results",
			Code:  "INTERNAL",
		})
		return
	}
	if results == nil {
		results = []*models.EstimationResult{}
	}

	c.JSON(http.StatusOK, results)
}

// GetDataset reports the active dataset's sources and capacity
func (h *Handler) GetDataset(c *gin.Context) {
	ds := h.deps.Holder.Get()
	if ds == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error: "No dataset loaded",
			Code:  "NO_DATASET",
		})
		return
	}

	c.JSON(http.StatusOK, datasetInfo(ds))
}

// RefreshDataset forces a reload; on failure the previous dataset stays
func (h *Handler) RefreshDataset(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), reloadTimeout)
	defer cancel()

	if err := h.deps.Reload(ctx); err != nil {
		metrics.RecordDatasetRefresh("failure")
		h.deps.Logger.WithError(err).Error("Dataset refresh failed, keeping previous dataset")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "Dataset refresh failed, previous dataset kept",
			Code:  "REFRESH_FAILED",
		})
		return
	}

	metrics.RecordDatasetRefresh("success")
	c.JSON(http.StatusOK, datasetInfo(h.deps.Holder.Get()))
}

// GetHealth returns the basic health status
func (h *Handler) GetHealth(c *gin.Context) {
	response := HealthStatus{
		Status:    "ok",
		Service:   "draw-odds",
		Timestamp: time.Now(),
		Checks:    make(map[string]string),
	}

	if h.deps.Holder.Loaded() {
		response.Checks["dataset"] = "ok"
	} else {
		response.Status = "degraded"
		response.Checks["dataset"] = "not_loaded"
	}

	if h.deps.DB != nil {
		if err := h.deps.DB.HealthCheck(c.Request.Context()); err != nil {
			response.Status = "unhealthy"
			response.Checks["database"] = "failed: " + err.Error()
		} else {
			response.Checks["database"] = "ok"
		}
	} else {
		response.Checks["database"] = "not_configured"
	}

	statusCode := http.StatusOK
	if response.Status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	} else if response.Status == "degraded" {
		statusCode = http.StatusPartialContent
	}

	c.JSON(statusCode, response)
}

// GetReady returns the readiness status; a loaded dataset is required
func (h *Handler) GetReady(c *gin.Context) {
	response := HealthStatus{
		Status:    "ready",
		Service:   "draw-odds",
		Timestamp: time.Now(),
		Checks:    make(map[string]string),
	}

	if h.deps.Holder.Loaded() {
		response.Checks["dataset"] = "ok"
	} else {
		response.Status = "not_ready"
		response.Checks["dataset"] = "not_loaded"
	}

	// Database problems do not gate readiness; estimates work without history
	if h.deps.DB != nil {
		if err := h.deps.DB.HealthCheck(c.Request.Context()); err != nil {
			response.Checks["database"] = "failed: " + err.Error()
		} else {
			response.Checks["database"] = "ok"
		}
	}

	statusCode := http.StatusOK
	if response.Status != "ready" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, response)
}

func datasetInfo(ds *draw.Dataset) DatasetInfo {
	info := DatasetInfo{
		PrimarySource:      ds.Primary.Source,
		PoolSize:           ds.Primary.Len(),
		Capacity:           ds.Capacity,
		SubPoolClaimants:   ds.SubPoolClaimants.Len(),
		CrossPoolClaimants: ds.CrossPoolClaimants.Len(),
		AuxPools:           ds.PoolNames,
		Sources:            ds.Stats,
		LoadedAt:           ds.LoadedAt,
	}
	if info.AuxPools == nil {
		info.AuxPools = []string{}
	}
	return info
}
