// Package userrepo persists staff accounts with GORM.
package userrepo

import (
	"bakery/internal/core/domain/model/user"
)

// UserDTO is the database row behind a staff account. The email carries a
// unique index so duplicate accounts surface as a constraint violation.
type UserDTO struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Version      int64  `gorm:"not null"`
	Email        string `gorm:"size:255;not null;uniqueIndex"`
	PasswordHash string `gorm:"size:255;not null"`
	FirstName    string `gorm:"size:255;not null"`
	LastName     string `gorm:"size:255;not null"`
	Role         string `gorm:"size:32;not null"`
	Locked       bool   `gorm:"not null;default:false"`
}

// TableName overrides GORM's default naming to use "users".
func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u *user.User) UserDTO {
	return UserDTO{
		ID:           u.ID(),
		Version:      u.Version(),
		Email:        u.Email(),
		PasswordHash: u.PasswordHash(),
		FirstName:    u.FirstName(),
		LastName:     u.LastName(),
		Role:         u.Role(),
		Locked:       u.IsLocked(),
	}
}

// ToDomain rebuilds the domain entity from its row. Exported because the
// order repository reuses it when loading history authors.
func ToDomain(dto UserDTO) *user.User {
	return user.Restore(dto.ID, dto.Version, dto.Email, dto.PasswordHash,
		dto.FirstName, dto.LastName, dto.Role, dto.Locked)
}
