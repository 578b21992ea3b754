package training

import (
	"time"

	"github.com/google/uuid"
	"github.com/samarth/backend/internal/domain/training"
)

// CreateProgramRequest is the body of a program creation
type CreateProgramRequest struct {
	Title             string `json:"title" binding:"required,max=200"`
	Instructor        string `json:"instructor" binding:"required,max=200"`
	Date              string `json:"date" binding:"max=50"`
	ParticipantsCount int    `json:"participants_count" binding:"min=0"`
	Status            string `json:"status" binding:"required,max=50"`
	NDUMappingID      string `json:"ndu_mapping_id" binding:"max=100"`
}

// CreateBatchRequest is the body of a batch creation
type CreateBatchRequest struct {
	Name      string    `json:"name" binding:"required,max=200"`
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required"`
	Location  string    `json:"location" binding:"required,max=200"`
}

// AddParticipantRequest enrolls a trainee
type AddParticipantRequest struct {
	Name  string `json:"name" binding:"required,max=200"`
	Email string `json:"email" binding:"omitempty,email,max=200"`
	Phone string `json:"phone" binding:"max=30"`
}

// RecordAttendanceRequest marks one participant for one day
type RecordAttendanceRequest struct {
	ParticipantID uuid.UUID `json:"participant_id" binding:"required"`
	Date          time.Time `json:"date" binding:"required"`
	Status        string    `json:"status" binding:"required,oneof=PRESENT ABSENT"`
}

// ProgramResponse is a program with its batches
type ProgramResponse struct {
	ID                uuid.UUID       `json:"id"`
	Title             string          `json:"title"`
	Instructor        string          `json:"instructor"`
	Date              string          `json:"date"`
	ParticipantsCount int             `json:"participants_count"`
	Status            string          `json:"status"`
	NDUMappingID      *string         `json:"ndu_mapping_id"`
	Batches           []BatchResponse `json:"batches"`
	CreatedAt         time.Time       `json:"created_at"`
}

// BatchResponse is a batch with its participants
type BatchResponse struct {
	ID           uuid.UUID             `json:"id"`
	TrainingID   uuid.UUID             `json:"training_id"`
	Name         string                `json:"name"`
	StartDate    time.Time             `json:"start_date"`
	EndDate      time.Time             `json:"end_date"`
	Location     string                `json:"location"`
	Participants []ParticipantResponse `json:"participants"`
}

// ParticipantResponse is an enrolled trainee
type ParticipantResponse struct {
	ID      uuid.UUID `json:"id"`
	BatchID uuid.UUID `json:"batch_id"`
	Name    string    `json:"name"`
	Email   *string   `json:"email"`
	Phone   *string   `json:"phone"`
}

// AttendanceResponse is one attendance mark
type AttendanceResponse struct {
	ID            uuid.UUID `json:"id"`
	ParticipantID uuid.UUID `json:"participant_id"`
	BatchID       uuid.UUID `json:"batch_id"`
	Date          string    `json:"date"`
	Status        string    `json:"status"`
	RecordedAt    time.Time `json:"recorded_at"`
}

// ToProgramResponse converts a domain program
func ToProgramResponse(p *training.Program) ProgramResponse {
	batches := make([]BatchResponse, len(p.Batches))
	for i := range p.Batches {
		batches[i] = ToBatchResponse(&p.Batches[i])
	}
	return ProgramResponse{
		ID:                p.ID,
		Title:             p.Title,
		Instructor:        p.Instructor,
		Date:              p.Date,
		ParticipantsCount: p.ParticipantsCount,
		Status:            p.Status,
		NDUMappingID:      p.NDUMappingID,
		Batches:           batches,
		CreatedAt:         p.CreatedAt,
	}
}

// ToBatchResponse converts a domain batch
func ToBatchResponse(b *training.Batch) BatchResponse {
	participants := make([]ParticipantResponse, len(b.Participants))
	for i := range b.Participants {
		participants[i] = ToParticipantResponse(&b.Participants[i])
	}
	return BatchResponse{
		ID:           b.ID,
		TrainingID:   b.TrainingID,
		Name:         b.Name,
		StartDate:    b.StartDate,
		EndDate:      b.EndDate,
		Location:     b.Location,
		Participants: participants,
	}
}

// ToParticipantResponse converts a domain participant
func ToParticipantResponse(p *training.Participant) ParticipantResponse {
	return ParticipantResponse{ID: p.ID, BatchID: p.BatchID, Name: p.Name, Email: p.Email, Phone: p.Phone}
}

// ToAttendanceResponse converts a domain attendance mark
func ToAttendanceResponse(a *training.Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:            a.ID,
		ParticipantID: a.ParticipantID,
		BatchID:       a.BatchID,
		Date:          a.Date.Format("2006-01-02"),
		Status:        string(a.Status),
		RecordedAt:    a.RecordedAt,
	}
}
