package models

import (
	"github.com/samarth/backend/internal/domain/identity"
)

// UserModel is the persistence model for identity.User. Usernames are stored
// lowercased so the unique index is case-insensitive.
type UserModel struct {
	BaseModel
	Username     string `gorm:"type:varchar(100);not null;uniqueIndex"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	Role         string `gorm:"type:varchar(20);not null"`
	FullName     string `gorm:"type:varchar(200)"`
	IsActive     bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the model to a domain user
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseEntity:   m.BaseModel.ToDomain(),
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		Role:         identity.Role(m.Role),
		FullName:     m.FullName,
		Active:       m.IsActive,
	}
}

// UserModelFromDomain converts a domain user to its model
func UserModelFromDomain(u *identity.User) *UserModel {
	return &UserModel{
		BaseModel:    baseFromDomain(u.BaseEntity),
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		FullName:     u.FullName,
		IsActive:     u.Active,
	}
}
