package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/samarth/backend/internal/domain/training"
)

// ProgramModel is the persistence model for training.Program.
type ProgramModel struct {
	BaseModel
	Title             string       `gorm:"type:varchar(200);not null"`
	Instructor        string       `gorm:"type:varchar(200);not null"`
	Date              string       `gorm:"type:varchar(50)"`
	ParticipantsCount int          `gorm:"not null;default:0"`
	Status            string       `gorm:"type:varchar(50);not null"`
	NDUMappingID      *string      `gorm:"column:ndu_mapping_id;type:varchar(50)"`
	Batches           []BatchModel `gorm:"foreignKey:TrainingID"`
}

// TableName returns the table name for GORM
func (ProgramModel) TableName() string {
	return "trainings"
}

// ToDomain converts the model, including any preloaded batches
func (m *ProgramModel) ToDomain() *training.Program {
	p := &training.Program{
		BaseEntity:        m.BaseModel.ToDomain(),
		Title:             m.Title,
		Instructor:        m.Instructor,
		Date:              m.Date,
		ParticipantsCount: m.ParticipantsCount,
		Status:            m.Status,
		NDUMappingID:      m.NDUMappingID,
		Batches:           make([]training.Batch, 0, len(m.Batches)),
	}
	for i := range m.Batches {
		p.Batches = append(p.Batches, *m.Batches[i].ToDomain())
	}
	return p
}

// ProgramModelFromDomain converts a program without its batches
func ProgramModelFromDomain(p *training.Program) *ProgramModel {
	return &ProgramModel{
		BaseModel:         baseFromDomain(p.BaseEntity),
		Title:             p.Title,
		Instructor:        p.Instructor,
		Date:              p.Date,
		ParticipantsCount: p.ParticipantsCount,
		Status:            p.Status,
		NDUMappingID:      p.NDUMappingID,
	}
}

// BatchModel is the persistence model for training.Batch.
type BatchModel struct {
	ID           uuid.UUID          `gorm:"type:uuid;primaryKey"`
	TrainingID   uuid.UUID          `gorm:"type:uuid;not null;index"`
	Name         string             `gorm:"type:varchar(200);not null"`
	StartDate    time.Time          `gorm:"not null"`
	EndDate      time.Time          `gorm:"not null"`
	Location     string             `gorm:"type:varchar(200);not null"`
	CreatedAt    time.Time          `gorm:"not null"`
	Participants []ParticipantModel `gorm:"foreignKey:BatchID"`
}

// TableName returns the table name for GORM
func (BatchModel) TableName() string {
	return "batches"
}

// ToDomain converts the model, including any preloaded participants
func (m *BatchModel) ToDomain() *training.Batch {
	b := &training.Batch{
		ID:           m.ID,
		TrainingID:   m.TrainingID,
		Name:         m.Name,
		StartDate:    m.StartDate,
		EndDate:      m.EndDate,
		Location:     m.Location,
		CreatedAt:    m.CreatedAt,
		Participants: make([]training.Participant, 0, len(m.Participants)),
	}
	for i := range m.Participants {
		b.Participants = append(b.Participants, *m.Participants[i].ToDomain())
	}
	return b
}

// BatchModelFromDomain converts a batch without its participants
func BatchModelFromDomain(b *training.Batch) *BatchModel {
	return &BatchModel{
		ID:         b.ID,
		TrainingID: b.TrainingID,
		Name:       b.Name,
		StartDate:  b.StartDate,
		EndDate:    b.EndDate,
		Location:   b.Location,
		CreatedAt:  b.CreatedAt,
	}
}

// ParticipantModel is the persistence model for training.Participant.
type ParticipantModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	BatchID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(200);not null"`
	Email     *string   `gorm:"type:varchar(200)"`
	Phone     *string   `gorm:"type:varchar(50)"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ParticipantModel) TableName() string {
	return "participants"
}

// ToDomain converts the model to a domain participant
func (m *ParticipantModel) ToDomain() *training.Participant {
	return &training.Participant{
		ID:        m.ID,
		BatchID:   m.BatchID,
		Name:      m.Name,
		Email:     m.Email,
		Phone:     m.Phone,
		CreatedAt: m.CreatedAt,
	}
}

// ParticipantModelFromDomain converts a domain participant to its model
func ParticipantModelFromDomain(p *training.Participant) *ParticipantModel {
	return &ParticipantModel{
		ID:        p.ID,
		BatchID:   p.BatchID,
		Name:      p.Name,
		Email:     p.Email,
		Phone:     p.Phone,
		CreatedAt: p.CreatedAt,
	}
}

// AttendanceModel is one mark per participant and day.
type AttendanceModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	ParticipantID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_participant_date"`
	BatchID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Date          time.Time `gorm:"not null;uniqueIndex:idx_attendance_participant_date"`
	Status        string    `gorm:"type:varchar(10);not null"`
	RecordedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (AttendanceModel) TableName() string {
	return "attendance"
}

// ToDomain converts the model to a domain attendance mark
func (m *AttendanceModel) ToDomain() *training.Attendance {
	return &training.Attendance{
		ID:            m.ID,
		ParticipantID: m.ParticipantID,
		BatchID:       m.BatchID,
		Date:          m.Date,
		Status:        training.AttendanceStatus(m.Status),
		RecordedAt:    m.RecordedAt,
	}
}

// AttendanceModelFromDomain converts a domain attendance mark to its model
func AttendanceModelFromDomain(a *training.Attendance) *AttendanceModel {
	return &AttendanceModel{
		ID:            a.ID,
		ParticipantID: a.ParticipantID,
		BatchID:       a.BatchID,
		Date:          a.Date,
		Status:        string(a.Status),
		RecordedAt:    a.RecordedAt,
	}
}
