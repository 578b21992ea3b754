package models

import (
	"github.com/samarth/backend/internal/domain/content"
)

// ContentItemModel is the persistence model for content.Item.
type ContentItemModel struct {
	BaseModel
	Title              string  `gorm:"type:varchar(200);not null"`
	Category           string  `gorm:"type:varchar(100);not null;index"`
	DurationMinutes    int     `gorm:"not null"`
	Tags               string  `gorm:"type:varchar(500)"`
	ApprovalStatus     string  `gorm:"type:varchar(20);not null;default:'Pending'"`
	NDUReferenceID     *string `gorm:"column:ndu_reference_id;type:varchar(50)"`
	HasSafetyChecklist bool    `gorm:"not null;default:false"`
	HasTroubleshooting bool    `gorm:"not null;default:false"`
	HasAssessmentCues  bool    `gorm:"not null;default:false"`
	QualityChecked     bool    `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (ContentItemModel) TableName() string {
	return "content_items"
}

// ToDomain converts the model to a domain content item
func (m *ContentItemModel) ToDomain() *content.Item {
	return &content.Item{
		BaseEntity:      m.BaseModel.ToDomain(),
		Title:           m.Title,
		Category:        m.Category,
		DurationMinutes: m.DurationMinutes,
		Tags:            m.Tags,
		ApprovalStatus:  content.ApprovalStatus(m.ApprovalStatus),
		NDUReferenceID:  m.NDUReferenceID,
		Flags: content.QualityFlags{
			HasSafetyChecklist: m.HasSafetyChecklist,
			HasTroubleshooting: m.HasTroubleshooting,
			HasAssessmentCues:  m.HasAssessmentCues,
			QualityChecked:     m.QualityChecked,
		},
	}
}

// ContentItemModelFromDomain converts a domain content item to its model
func ContentItemModelFromDomain(i *content.Item) *ContentItemModel {
	return &ContentItemModel{
		BaseModel:          baseFromDomain(i.BaseEntity),
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
	}
}
