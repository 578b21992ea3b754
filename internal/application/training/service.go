// Package training manages programs, their batches, enrolment and attendance.
package training

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	appaudit "github.com/samarth/backend/internal/application/audit"
	"github.com/samarth/backend/internal/application/uow"
	"github.com/samarth/backend/internal/domain/audit"
	"github.com/samarth/backend/internal/domain/identity"
	"github.com/samarth/backend/internal/domain/shared"
	"github.com/samarth/backend/internal/domain/training"
	"go.uber.org/zap"
)

var (
	errProgramNotFound     = shared.NotFound("Training not found")
	errBatchNotFound       = shared.NotFound("Batch not found")
	errParticipantNotFound = shared.NotFound("Participant not found")
)

// Service handles training programs and batches
type Service struct {
	programs training.ProgramRepository
	batches  training.BatchRepository
	txs      uow.TransactionScope
	logger   *zap.Logger
}

// NewService creates a new training Service
func NewService(programs training.ProgramRepository, batches training.BatchRepository, txs uow.TransactionScope, logger *zap.Logger) *Service {
	return &Service{programs: programs, batches: batches, txs: txs, logger: logger}
}

// ListPrograms returns a page of programs with their batches
func (s *Service) ListPrograms(ctx context.Context, offset, limit int) ([]ProgramResponse, error) {
	programs, err := s.programs.List(ctx, shared.NewPage(offset, limit))
	if err != nil {
		return nil, err
	}
	out := make([]ProgramResponse, len(programs))
	for i := range programs {
		out[i] = ToProgramResponse(&programs[i])
	}
	return out, nil
}

// CreateProgram adds a program
func (s *Service) CreateProgram(ctx context.Context, req CreateProgramRequest, actor *identity.User) (*ProgramResponse, error) {
	program, err := training.NewProgram(training.NewProgramParams{
		Title:             req.Title,
		Instructor:        req.Instructor,
		Date:              req.Date,
		ParticipantsCount: req.ParticipantsCount,
		Status:            req.Status,
		NDUMappingID:      req.NDUMappingID,
	})
	if err != nil {
		return nil, err
	}

	err = s.txs.Execute(ctx, func(repos uow.Repositories) error {
		if err := repos.Programs().Create(ctx, program); err != nil {
			return fmt.Errorf("create program: %w", err)
		}
		return appaudit.Append(ctx, repos.Audit(), &actor.ID, audit.ActionCreateTraining, program.CreationDetail())
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Training program created", zap.String("training_id", program.ID.String()))
	resp := ToProgramResponse(program)
	return &resp, nil
}

// DeleteProgram removes a program and everything scheduled under it
func (s *Service) DeleteProgram(ctx context.Context, id uuid.UUID, actor *identity.User) error {
	err := s.txs.Execute(ctx, func(repos uow.Repositories) error {
		program, err := repos.Programs().FindByID(ctx, id)
		if err != nil {
			return notFound(err, errProgramNotFound)
		}
		if err := repos.Programs().Delete(ctx, id); err != nil {
			return notFound(err, errProgramNotFound)
		}
		return appaudit.Append(ctx, repos.Audit(), &actor.ID, audit.ActionDeleteTraining, program.DeletionDetail())
	})
	if err != nil {
		return err
	}
	s.logger.Info("Training program deleted", zap.String("training_id", id.String()))
	return nil
}

// ListBatches returns the batches of a program
func (s *Service) ListBatches(ctx context.Context, trainingID uuid.UUID) ([]BatchResponse, error) {
	if _, err := s.programs.FindByID(ctx, trainingID); err != nil {
		return nil, notFound(err, errProgramNotFound)
	}
	batches, err := s.batches.ListByTraining(ctx, trainingID)
	if err != nil {
		return nil, err
	}
	out := make([]BatchResponse, len(batches))
	for i := range batches {
		out[i] = ToBatchResponse(&batches[i])
	}
	return out, nil
}

// CreateBatch schedules a batch under a program
func (s *Service) CreateBatch(ctx context.Context, trainingID uuid.UUID, req CreateBatchRequest, actor *identity.User) (*BatchResponse, error) {
	batch, err := training.NewBatch(trainingID, req.Name, req.StartDate, req.EndDate, req.Location)
	if err != nil {
		return nil, err
	}

	err = s.txs.Execute(ctx, func(repos uow.Repositories) error {
		program, err := repos.Programs().FindByID(ctx, trainingID)
		if err != nil {
			return notFound(err, errProgramNotFound)
		}
		if err := repos.Batches().Create(ctx, batch); err != nil {
			return fmt.Errorf("create batch: %w", err)
		}
		return appaudit.Append(ctx, repos.Audit(), &actor.ID, audit.ActionCreateBatch,
			fmt.Sprintf("Created Batch %s for Program %s", batch.Name, program.Title))
	})
	if err != nil {
		return nil, err
	}

	resp := ToBatchResponse(batch)
	return &resp, nil
}

// GetBatch returns a batch with its participants
func (s *Service) GetBatch(ctx context.Context, id uuid.UUID) (*BatchResponse, error) {
	batch, err := s.batches.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, errBatchNotFound)
	}
	resp := ToBatchResponse(batch)
	return &resp, nil
}

// AddParticipant enrolls a trainee in a batch
func (s *Service) AddParticipant(ctx context.Context, batchID uuid.UUID, req AddParticipantRequest, actor *identity.User) (*ParticipantResponse, error) {
	participant, err := training.NewParticipant(batchID, req.Name, req.Email, req.Phone)
	if err != nil {
		return nil, err
	}

	err = s.txs.Execute(ctx, func(repos uow.Repositories) error {
		batch, err := repos.Batches().FindByID(ctx, batchID)
		if err != nil {
			return notFound(err, errBatchNotFound)
		}
		if err := repos.Batches().AddParticipant(ctx, participant); err != nil {
			return fmt.Errorf("add participant: %w", err)
		}
		return appaudit.Append(ctx, repos.Audit(), &actor.ID, audit.ActionAddParticipant,
			fmt.Sprintf("Added Participant %s to Batch %s", participant.Name, batch.Name))
	})
	if err != nil {
		return nil, err
	}

	resp := ToParticipantResponse(participant)
	return &resp, nil
}

// RecordAttendance marks a participant for a day. A second mark for the
// same day replaces the first.
func (s *Service) RecordAttendance(ctx context.Context, batchID uuid.UUID, req RecordAttendanceRequest, actor *identity.User) (*AttendanceResponse, error) {
	var mark *training.Attendance
	err := s.txs.Execute(ctx, func(repos uow.Repositories) error {
		batch, err := repos.Batches().FindByID(ctx, batchID)
		if err != nil {
			return notFound(err, errBatchNotFound)
		}
		participant, err := repos.Batches().FindParticipant(ctx, req.ParticipantID)
		if err != nil {
			return notFound(err, errParticipantNotFound)
		}

		mark, err = training.NewAttendance(batch, participant, req.Date, training.AttendanceStatus(req.Status))
		if err != nil {
			return err
		}
		if err := repos.Batches().UpsertAttendance(ctx, mark); err != nil {
			return fmt.Errorf("record attendance: %w", err)
		}
		return appaudit.Append(ctx, repos.Audit(), &actor.ID, audit.ActionRecordAttendance, mark.Detail(participant.Name))
	})
	if err != nil {
		return nil, err
	}

	resp := ToAttendanceResponse(mark)
	return &resp, nil
}

// ListAttendance returns the marks of a batch by date
func (s *Service) ListAttendance(ctx context.Context, batchID uuid.UUID) ([]AttendanceResponse, error) {
	exists, err := s.batches.Exists(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errBatchNotFound
	}
	marks, err := s.batches.ListAttendance(ctx, batchID)
	if err != nil {
		return nil, err
	}
	out := make([]AttendanceResponse, len(marks))
	for i := range marks {
		out[i] = ToAttendanceResponse(&marks[i])
	}
	return out, nil
}

func notFound(err, replacement error) error {
	if errors.Is(err, shared.ErrNotFound) {
		return replacement
	}
	return err
}
