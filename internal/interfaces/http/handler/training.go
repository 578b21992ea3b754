package handler

import (
	"github.com/gin-gonic/gin"
	apptraining "github.com/samarth/backend/internal/application/training"
)

// TrainingHandler handles programs, their batches, enrolment and attendance
type TrainingHandler struct {
	BaseHandler
	service *apptraining.Service
}

// NewTrainingHandler creates a new training handler
func NewTrainingHandler(service *apptraining.Service) *TrainingHandler {
	return &TrainingHandler{service: service}
}

// ListPrograms handles GET /training/
func (h *TrainingHandler) ListPrograms(c *gin.Context) {
	page, ok := h.bindPage(c)
	if !ok {
		return
	}

	programs, err := h.service.ListPrograms(c.Request.Context(), page.Offset, page.Limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, programs, page, len(programs))
}

// CreateProgram handles POST /training/
func (h *TrainingHandler) CreateProgram(c *gin.Context) {
	var req apptraining.CreateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	program, err := h.service.CreateProgram(c.Request.Context(), req, currentUser(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, program)
}

// DeleteProgram handles DELETE /training/:id
func (h *TrainingHandler) DeleteProgram(c *gin.Context) {
	id, ok := h.parseID(c, "id", "Training not found")
	if !ok {
		return
	}

	if err := h.service.DeleteProgram(c.Request.Context(), id, currentUser(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListBatches handles GET /training/:id/batches
func (h *TrainingHandler) ListBatches(c *gin.Context) {
	id, ok := h.parseID(c, "id", "Training not found")
	if !ok {
		return
	}

	batches, err := h.service.ListBatches(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, batches)
}

// CreateBatch handles POST /training/:id/batches
func (h *TrainingHandler) CreateBatch(c *gin.Context) {
	id, ok := h.parseID(c, "id", "Training not found")
	if !ok {
		return
	}

	var req apptraining.CreateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	batch, err := h.service.CreateBatch(c.Request.Context(), id, req, currentUser(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, batch)
}

// GetBatch handles GET /batches/:id
func (h *TrainingHandler) GetBatch(c *gin.Context) {
	id, ok := h.parseID(c, "id", "Batch not found")
	if !ok {
		return
	}

	batch, err := h.service.GetBatch(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, batch)
}

// AddParticipant handles POST /batches/:id/participants
func (h *TrainingHandler) AddParticipant(c *gin.Context) {
	id, ok := h.parseID(c, "id", "Batch not found")
	if !ok {
		return
	}

	var req apptraining.AddParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	participant, err := h.service.AddParticipant(c.Request.Context(), id, req, currentUser(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, participant)
}

// ListAttendance handles GET /batches/:id/attendance
func (h *TrainingHandler) ListAttendance(c *gin.Context) {
	id, ok := h.parseID(c, "id", "Batch not found")
	if !ok {
		return
	}

	records, err := h.service.ListAttendance(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, records)
}

// RecordAttendance handles POST /batches/:id/attendance
func (h *TrainingHandler) RecordAttendance(c *gin.Context) {
	id, ok := h.parseID(c, "id", "Batch not found")
	if !ok {
		return
	}

	var req apptraining.RecordAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	record, err := h.service.RecordAttendance(c.Request.Context(), id, req, currentUser(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, record)
}
