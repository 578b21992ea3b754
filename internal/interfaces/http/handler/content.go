package handler

import (
	"github.com/gin-gonic/gin"
	appcontent "github.com/samarth/backend/internal/application/content"
)

// ContentHandler handles the content catalogue and its review workflow
type ContentHandler struct {
	BaseHandler
	service *appcontent.Service
}

// NewContentHandler creates a new content handler
func NewContentHandler(service *appcontent.Service) *ContentHandler {
	return &ContentHandler{service: service}
}

// List handles GET /content/
func (h *ContentHandler) List(c *gin.Context) {
	page, ok := h.bindPage(c)
	if !ok {
		return
	}

	items, err := h.service.List(c.Request.Context(), page.Offset, page.Limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, page, len(items))
}

// Create handles POST /content/
func (h *ContentHandler) Create(c *gin.Context) {
	var req appcontent.CreateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	item, err := h.service.Create(c.Request.Context(), req, currentUser(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// Approve handles POST /content/:id/approve
func (h *ContentHandler) Approve(c *gin.Context) {
	id, ok := h.parseID(c, "id", "Content not found")
	if !ok {
		return
	}

	item, err := h.service.Approve(c.Request.Context(), id, currentUser(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Reject handles POST /content/:id/reject
func (h *ContentHandler) Reject(c *gin.Context) {
	id, ok := h.parseID(c, "id", "Content not found")
	if !ok {
		return
	}

	item, err := h.service.Reject(c.Request.Context(), id, currentUser(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}
