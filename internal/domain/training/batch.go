package training

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samarth/backend/internal/domain/shared"
)

// AttendanceStatus marks a participant present or absent for a day
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
)

// IsValid returns true if the status is PRESENT or ABSENT
func (s AttendanceStatus) IsValid() bool {
	return s == AttendancePresent || s == AttendanceAbsent
}

// Batch is a scheduled delivery of a program with enrolled participants
type Batch struct {
	ID           uuid.UUID
	TrainingID   uuid.UUID
	Name         string
	StartDate    time.Time
	EndDate      time.Time
	Location     string
	CreatedAt    time.Time
	Participants []Participant
}

// NewBatch validates the schedule and builds a batch for a program
func NewBatch(trainingID uuid.UUID, name string, start, end time.Time, location string) (*Batch, error) {
	if trainingID == uuid.Nil {
		return nil, shared.Invalid("Training ID cannot be empty")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.Invalid("Batch name cannot be empty")
	}
	if start.IsZero() || end.IsZero() {
		return nil, shared.Invalid("Batch start and end dates are required")
	}
	if end.Before(start) {
		return nil, shared.Invalid("Batch end date cannot be before start date")
	}
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, shared.Invalid("Batch location cannot be empty")
	}

	return &Batch{
		ID:         uuid.New(),
		TrainingID: trainingID,
		Name:       name,
		StartDate:  start.UTC(),
		EndDate:    end.UTC(),
		Location:   location,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

// Participant is a trainee enrolled in a batch
type Participant struct {
	ID        uuid.UUID
	BatchID   uuid.UUID
	Name      string
	Email     *string
	Phone     *string
	CreatedAt time.Time
}

// NewParticipant builds a participant enrolled in batchID
func NewParticipant(batchID uuid.UUID, name, email, phone string) (*Participant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.Invalid("Participant name cannot be empty")
	}
	p := &Participant{
		ID:        uuid.New(),
		BatchID:   batchID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if e := strings.TrimSpace(email); e != "" {
		p.Email = &e
	}
	if ph := strings.TrimSpace(phone); ph != "" {
		p.Phone = &ph
	}
	return p, nil
}

// Attendance records whether a participant attended a batch on a date
type Attendance struct {
	ID            uuid.UUID
	ParticipantID uuid.UUID
	BatchID       uuid.UUID
	Date          time.Time
	Status        AttendanceStatus
	RecordedAt    time.Time
}

// NewAttendance builds an attendance mark. The date is truncated to the day.
func NewAttendance(batch *Batch, participant *Participant, date time.Time, status AttendanceStatus) (*Attendance, error) {
	if participant.BatchID != batch.ID {
		return nil, shared.Invalid("Participant is not enrolled in this batch")
	}
	if !status.IsValid() {
		return nil, shared.Invalid("Attendance status must be PRESENT or ABSENT")
	}
	day := date.UTC().Truncate(24 * time.Hour)
	if day.Before(batch.StartDate.Truncate(24*time.Hour)) || day.After(batch.EndDate) {
		return nil, shared.Invalid("Attendance date is outside the batch schedule")
	}

	return &Attendance{
		ID:            uuid.New(),
		ParticipantID: participant.ID,
		BatchID:       batch.ID,
		Date:          day,
		Status:        status,
		RecordedAt:    time.Now().UTC(),
	}, nil
}

// Detail renders the audit detail for an attendance mark
func (a *Attendance) Detail(participantName string) string {
	return fmt.Sprintf("Recorded attendance for %s on %s: %s", participantName, a.Date.Format("2006-01-02"), a.Status)
}
