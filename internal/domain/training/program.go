package training

import (
	"fmt"
	"strings"

	"github.com/samarth/backend/internal/domain/shared"
)

// Program is a training program that may be delivered through several batches
type Program struct {
	shared.BaseEntity
	Title             string
	Instructor        string
	Date              string
	ParticipantsCount int
	Status            string
	NDUMappingID      *string
	Batches           []Batch
}

// NewProgramParams holds the attributes of a program being created
type NewProgramParams struct {
	Title             string
	Instructor        string
	Date              string
	ParticipantsCount int
	Status            string
	NDUMappingID      string
}

// NewProgram validates params and builds a new program
func NewProgram(p NewProgramParams) (*Program, error) {
	title := strings.TrimSpace(p.Title)
	if title == "" {
		return nil, shared.Invalid("Title cannot be empty")
	}
	instructor := strings.TrimSpace(p.Instructor)
	if instructor == "" {
		return nil, shared.Invalid("Instructor cannot be empty")
	}
	if p.ParticipantsCount < 0 {
		return nil, shared.Invalid("Participants count cannot be negative")
	}
	status := strings.TrimSpace(p.Status)
	if status == "" {
		return nil, shared.Invalid("Status cannot be empty")
	}

	program := &Program{
		BaseEntity:        shared.NewBaseEntity(),
		Title:             title,
		Instructor:        instructor,
		Date:              strings.TrimSpace(p.Date),
		ParticipantsCount: p.ParticipantsCount,
		Status:            status,
	}
	if ref := strings.TrimSpace(p.NDUMappingID); ref != "" {
		program.NDUMappingID = &ref
	}
	return program, nil
}

// AssignReference records the external registry id after a successful sync
func (p *Program) AssignReference(ref string) {
	p.NDUMappingID = &ref
	p.Touch()
}

// IsSynced reports whether the program has an external registry id
func (p *Program) IsSynced() bool {
	return p.NDUMappingID != nil && *p.NDUMappingID != ""
}

// CreationDetail renders the audit detail for a new program
func (p *Program) CreationDetail() string {
	return fmt.Sprintf("Created Program %s", p.Title)
}

// DeletionDetail renders the audit detail for a removed program
func (p *Program) DeletionDetail() string {
	return fmt.Sprintf("Deleted Program %s", p.Title)
}
