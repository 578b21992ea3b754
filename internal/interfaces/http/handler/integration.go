package handler

import (
	"github.com/gin-gonic/gin"
	appintegration "github.com/samarth/backend/internal/application/integration"
)

// IdempotencyKeyHeader lets a client make a sync call safe to replay
const IdempotencyKeyHeader = "Idempotency-Key"

// limitQuery bounds the read-side feeds
type limitQuery struct {
	Limit int `form:"limit" binding:"min=0,max=500"`
}

// IntegrationHandler handles synchronisation with the NDU registry
type IntegrationHandler struct {
	BaseHandler
	gateway *appintegration.Gateway
}

// NewIntegrationHandler creates a new integration handler
func NewIntegrationHandler(gateway *appintegration.Gateway) *IntegrationHandler {
	return &IntegrationHandler{gateway: gateway}
}

func syncOptions(c *gin.Context) appintegration.SyncOptions {
	return appintegration.SyncOptions{IdempotencyKey: c.GetHeader(IdempotencyKeyHeader)}
}

// SyncContent handles POST /integration/sync/content/:id
func (h *IntegrationHandler) SyncContent(c *gin.Context) {
	id, ok := h.parseID(c, "id", "Content not found")
	if !ok {
		return
	}

	resp, err := h.gateway.SyncContent(c.Request.Context(), id, syncOptions(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// SyncTraining handles POST /integration/sync/training/:id
func (h *IntegrationHandler) SyncTraining(c *gin.Context) {
	id, ok := h.parseID(c, "id", "Training program not found")
	if !ok {
		return
	}

	resp, err := h.gateway.SyncTraining(c.Request.Context(), id, syncOptions(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// SyncProgress handles POST /integration/sync/progress/:id where id is a batch
func (h *IntegrationHandler) SyncProgress(c *gin.Context) {
	id, ok := h.parseID(c, "id", "Batch not found")
	if !ok {
		return
	}

	var req appintegration.ProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.gateway.SyncProgress(c.Request.Context(), id, req.Data, currentUser(c), syncOptions(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Logs handles GET /integration/logs
func (h *IntegrationHandler) Logs(c *gin.Context) {
	var q limitQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.ValidationError(c, err)
		return
	}

	logs, err := h.gateway.Logs(c.Request.Context(), q.Limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, logs)
}
