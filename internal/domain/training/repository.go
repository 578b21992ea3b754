package training

import (
	"context"

	"github.com/google/uuid"
	"github.com/samarth/backend/internal/domain/shared"
)

// ProgramRepository defines the interface for training program persistence
type ProgramRepository interface {
	// Create inserts a new program
	Create(ctx context.Context, program *Program) error

	// Update saves changes to an existing program
	Update(ctx context.Context, program *Program) error

	// FindByID finds a program by ID, without batches
	FindByID(ctx context.Context, id uuid.UUID) (*Program, error)

	// List returns programs with their batches and participants
	List(ctx context.Context, page shared.Page) ([]Program, error)

	// Delete removes a program together with its batches, participants and
	// attendance, and unlinks any kits allocated to those batches
	Delete(ctx context.Context, id uuid.UUID) error
}

// BatchRepository defines the interface for batch, participant and attendance persistence
type BatchRepository interface {
	// Create inserts a new batch
	Create(ctx context.Context, batch *Batch) error

	// FindByID finds a batch with its participants
	FindByID(ctx context.Context, id uuid.UUID) (*Batch, error)

	// Exists reports whether a batch with the ID exists
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// ListByTraining returns the batches of a program, ordered by start date
	ListByTraining(ctx context.Context, trainingID uuid.UUID) ([]Batch, error)

	// Count returns the total number of batches
	Count(ctx context.Context) (int64, error)

	// AddParticipant enrolls a participant
	AddParticipant(ctx context.Context, participant *Participant) error

	// FindParticipant finds a participant by ID
	FindParticipant(ctx context.Context, id uuid.UUID) (*Participant, error)

	// UpsertAttendance stores a mark, replacing any mark for the same participant and day
	UpsertAttendance(ctx context.Context, attendance *Attendance) error

	// ListAttendance returns the marks of a batch ordered by date
	ListAttendance(ctx context.Context, batchID uuid.UUID) ([]Attendance, error)
}
