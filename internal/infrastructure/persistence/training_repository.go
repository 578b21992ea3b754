package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/samarth/backend/internal/domain/shared"
	"github.com/samarth/backend/internal/domain/training"
	"github.com/samarth/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProgramRepository implements training.ProgramRepository using GORM
type GormProgramRepository struct {
	db *gorm.DB
}

// NewGormProgramRepository creates a new GormProgramRepository
func NewGormProgramRepository(db *gorm.DB) *GormProgramRepository {
	return &GormProgramRepository{db: db}
}

// Create inserts a new program without its batches
func (r *GormProgramRepository) Create(ctx context.Context, program *training.Program) error {
	return translate(r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(models.ProgramModelFromDomain(program)).Error)
}

// Update saves every column of an existing program
func (r *GormProgramRepository) Update(ctx context.Context, program *training.Program) error {
	result := r.db.WithContext(ctx).
		Model(&models.ProgramModel{}).
		Where("id = ?", program.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(models.ProgramModelFromDomain(program))
	return affected(result)
}

// FindByID finds a program by ID, without batches
func (r *GormProgramRepository) FindByID(ctx context.Context, id uuid.UUID) (*training.Program, error) {
	var model models.ProgramModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return model.ToDomain(), nil
}

// List returns programs with their batches and participants
func (r *GormProgramRepository) List(ctx context.Context, page shared.Page) ([]training.Program, error) {
	var rows []models.ProgramModel
	if err := r.db.WithContext(ctx).
		Preload("Batches", func(db *gorm.DB) *gorm.DB {
			return db.Order("start_date ASC, id ASC")
		}).
		Preload("Batches.Participants", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Order("created_at ASC, id ASC").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	programs := make([]training.Program, len(rows))
	for i := range rows {
		programs[i] = *rows[i].ToDomain()
	}
	return programs, nil
}

// Delete removes a program and everything hanging off its batches. Kits
// allocated to those batches are unlinked rather than deleted. The steps run
// in one transaction (a savepoint when the caller already holds one).
func (r *GormProgramRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		batchIDs := tx.Model(&models.BatchModel{}).Select("id").Where("training_id = ?", id)

		if err := tx.Where("batch_id IN (?)", batchIDs).Delete(&models.AttendanceModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("batch_id IN (?)", batchIDs).Delete(&models.ParticipantModel{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.InventoryItemModel{}).
			Where("batch_id IN (?)", batchIDs).
			Updates(map[string]any{"batch_id": nil, "last_updated": time.Now().UTC()}).Error; err != nil {
			return err
		}
		if err := tx.Where("training_id = ?", id).Delete(&models.BatchModel{}).Error; err != nil {
			return err
		}
		return affected(tx.Delete(&models.ProgramModel{}, "id = ?", id))
	})
}

// GormBatchRepository implements training.BatchRepository using GORM
type GormBatchRepository struct {
	db *gorm.DB
}

// NewGormBatchRepository creates a new GormBatchRepository
func NewGormBatchRepository(db *gorm.DB) *GormBatchRepository {
	return &GormBatchRepository{db: db}
}

// Create inserts a new batch; an unknown training ID fails the foreign key
func (r *GormBatchRepository) Create(ctx context.Context, batch *training.Batch) error {
	return translate(r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(models.BatchModelFromDomain(batch)).Error)
}

// FindByID finds a batch with its participants
func (r *GormBatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*training.Batch, error) {
	var model models.BatchModel
	if err := r.db.WithContext(ctx).
		Preload("Participants", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return model.ToDomain(), nil
}

// Exists reports whether a batch with the ID exists
func (r *GormBatchRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.BatchModel{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// ListByTraining returns the batches of a program, ordered by start date
func (r *GormBatchRepository) ListByTraining(ctx context.Context, trainingID uuid.UUID) ([]training.Batch, error) {
	var rows []models.BatchModel
	if err := r.db.WithContext(ctx).
		Preload("Participants", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Where("training_id = ?", trainingID).
		Order("start_date ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	batches := make([]training.Batch, len(rows))
	for i := range rows {
		batches[i] = *rows[i].ToDomain()
	}
	return batches, nil
}

// Count returns the total number of batches
func (r *GormBatchRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.BatchModel{}).Count(&count).Error
	return count, err
}

// AddParticipant enrolls a participant
func (r *GormBatchRepository) AddParticipant(ctx context.Context, participant *training.Participant) error {
	return translate(r.db.WithContext(ctx).Create(models.ParticipantModelFromDomain(participant)).Error)
}

// FindParticipant finds a participant by ID
func (r *GormBatchRepository) FindParticipant(ctx context.Context, id uuid.UUID) (*training.Participant, error) {
	var model models.ParticipantModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return model.ToDomain(), nil
}

// UpsertAttendance stores a mark. A second mark for the same participant and
// day overwrites the status; attendance.ID is updated to the stored row.
func (r *GormBatchRepository) UpsertAttendance(ctx context.Context, attendance *training.Attendance) error {
	db := r.db.WithContext(ctx)
	model := models.AttendanceModelFromDomain(attendance)
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "participant_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "recorded_at"}),
	}).Create(model).Error; err != nil {
		return translate(err)
	}

	var stored models.AttendanceModel
	if err := db.
		Where("participant_id = ? AND date = ?", attendance.ParticipantID, attendance.Date).
		First(&stored).Error; err != nil {
		return translate(err)
	}
	attendance.ID = stored.ID
	return nil
}

// ListAttendance returns the marks of a batch ordered by date
func (r *GormBatchRepository) ListAttendance(ctx context.Context, batchID uuid.UUID) ([]training.Attendance, error) {
	var rows []models.AttendanceModel
	if err := r.db.WithContext(ctx).
		Where("batch_id = ?", batchID).
		Order("date ASC, recorded_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	marks := make([]training.Attendance, len(rows))
	for i := range rows {
		marks[i] = *rows[i].ToDomain()
	}
	return marks, nil
}

var (
	_ training.ProgramRepository = (*GormProgramRepository)(nil)
	_ training.BatchRepository   = (*GormBatchRepository)(nil)
)
