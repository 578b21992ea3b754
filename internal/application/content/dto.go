package content

import (
	"time"

	"github.com/google/uuid"
	"github.com/samarth/backend/internal/domain/content"
)

// CreateContentRequest is the body of a content creation
type CreateContentRequest struct {
	Title              string `json:"title" binding:"required,max=300"`
	Category           string `json:"category" binding:"required,max=100"`
	DurationMinutes    int    `json:"duration_minutes" binding:"required,min=1"`
	Tags               string `json:"tags" binding:"max=500"`
	NDUReferenceID     string `json:"ndu_reference_id" binding:"max=100"`
	HasSafetyChecklist bool   `json:"has_safety_checklist"`
	HasTroubleshooting bool   `json:"has_troubleshooting"`
	HasAssessmentCues  bool   `json:"has_assessment_cues"`
	QualityChecked     bool   `json:"quality_checked"`
}

// ContentResponse is a content item in API responses
type ContentResponse struct {
	ID                 uuid.UUID `json:"id"`
	Title              string    `json:"title"`
	Category           string    `json:"category"`
	DurationMinutes    int       `json:"duration_minutes"`
	Tags               string    `json:"tags"`
	ApprovalStatus     string    `json:"approval_status"`
	NDUReferenceID     *string   `json:"ndu_reference_id"`
	HasSafetyChecklist bool      `json:"has_safety_checklist"`
	HasTroubleshooting bool      `json:"has_troubleshooting"`
	HasAssessmentCues  bool      `json:"has_assessment_cues"`
	QualityChecked     bool      `json:"quality_checked"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ToContentResponse converts a domain content item
func ToContentResponse(i *content.Item) ContentResponse {
	return ContentResponse{
		ID:                 i.ID,
		Title:              i.Title,
		Category:           i.Category,
		DurationMinutes:    i.DurationMinutes,
		Tags:               i.Tags,
		ApprovalStatus:     string(i.ApprovalStatus),
		NDUReferenceID:     i.NDUReferenceID,
		HasSafetyChecklist: i.Flags.HasSafetyChecklist,
		HasTroubleshooting: i.Flags.HasTroubleshooting,
		HasAssessmentCues:  i.Flags.HasAssessmentCues,
		QualityChecked:     i.Flags.QualityChecked,
		CreatedAt:          i.CreatedAt,
		UpdatedAt:          i.UpdatedAt,
	}
}
