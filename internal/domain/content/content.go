package content

import (
	"fmt"
	"strings"

	"github.com/samarth/backend/internal/domain/shared"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ApprovalStatus is the review state of a content item
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "Pending"
	ApprovalApproved ApprovalStatus = "Approved"
	ApprovalRejected ApprovalStatus = "Rejected"
)

// Categories tracked separately on the dashboard
const (
	CategoryPractical = "Practical"
	CategoryPedagogy  = "Pedagogy"
)

// QualityFlags are the compliance checks every content item declares
type QualityFlags struct {
	HasSafetyChecklist bool
	HasTroubleshooting bool
	HasAssessmentCues  bool
	QualityChecked     bool
}

// Complete reports whether every compliance check is satisfied
func (f QualityFlags) Complete() bool {
	return f.HasSafetyChecklist && f.HasTroubleshooting && f.HasAssessmentCues && f.QualityChecked
}

// Item is a piece of training content metadata
type Item struct {
	shared.BaseEntity
	Title           string
	Category        string
	DurationMinutes int
	Tags            string
	ApprovalStatus  ApprovalStatus
	NDUReferenceID  *string
	Flags           QualityFlags
}

// NewItemParams holds the attributes of a content item being created
type NewItemParams struct {
	Title           string
	Category        string
	DurationMinutes int
	Tags            string
	NDUReferenceID  string
	Flags           QualityFlags
}

// NewItem validates params and builds a pending content item.
// The category is normalized to title case so "practical" and "Practical" count together.
func NewItem(p NewItemParams) (*Item, error) {
	title := strings.TrimSpace(p.Title)
	if title == "" {
		return nil, shared.Invalid("Title cannot be empty")
	}
	category := NormalizeCategory(p.Category)
	if category == "" {
		return nil, shared.Invalid("Category cannot be empty")
	}
	if p.DurationMinutes <= 0 {
		return nil, shared.Invalid("Duration must be a positive number of minutes")
	}

	item := &Item{
		BaseEntity:      shared.NewBaseEntity(),
		Title:           title,
		Category:        category,
		DurationMinutes: p.DurationMinutes,
		Tags:            strings.TrimSpace(p.Tags),
		ApprovalStatus:  ApprovalPending,
		Flags:           p.Flags,
	}
	if ref := strings.TrimSpace(p.NDUReferenceID); ref != "" {
		item.NDUReferenceID = &ref
	}
	return item, nil
}

// NormalizeCategory trims and title-cases a category name
func NormalizeCategory(category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return ""
	}
	// Casers are stateful, so one is built per call
	return cases.Title(language.English).String(category)
}

// Approve marks the item approved. All quality flags must be set.
func (i *Item) Approve() error {
	if !i.Flags.Complete() {
		return shared.Invalid("Content cannot be approved until all quality checks are complete")
	}
	i.ApprovalStatus = ApprovalApproved
	i.Touch()
	return nil
}

// Reject marks the item rejected
func (i *Item) Reject() {
	i.ApprovalStatus = ApprovalRejected
	i.Touch()
}

// AssignReference records the external registry id after a successful sync
func (i *Item) AssignReference(ref string) {
	i.NDUReferenceID = &ref
	i.Touch()
}

// IsSynced reports whether the item has an external registry id
func (i *Item) IsSynced() bool {
	return i.NDUReferenceID != nil && *i.NDUReferenceID != ""
}

// CreationDetail renders the audit detail for new content
func (i *Item) CreationDetail() string {
	return fmt.Sprintf("Created Content: %s", i.Title)
}

// ReviewDetail renders the audit detail for a review decision
func (i *Item) ReviewDetail() string {
	return fmt.Sprintf("Content %s marked %s", i.Title, i.ApprovalStatus)
}
