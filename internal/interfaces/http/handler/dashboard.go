package handler

import (
	"github.com/gin-gonic/gin"
	appaudit "github.com/samarth/backend/internal/application/audit"
	appdashboard "github.com/samarth/backend/internal/application/dashboard"
)

// DashboardHandler serves the landing-page counters and the audit feed
type DashboardHandler struct {
	BaseHandler
	stats *appdashboard.Service
	audit *appaudit.Recorder
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(stats *appdashboard.Service, audit *appaudit.Recorder) *DashboardHandler {
	return &DashboardHandler{stats: stats, audit: audit}
}

// Stats handles GET /dashboard/stats
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.stats.Stats(c.Request.Context(), currentUser(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

// RecentAudit handles GET /audit/recent
func (h *DashboardHandler) RecentAudit(c *gin.Context) {
	var q limitQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.ValidationError(c, err)
		return
	}

	logs, err := h.audit.Recent(c.Request.Context(), q.Limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, logs)
}
