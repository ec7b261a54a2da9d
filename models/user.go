package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Role представляет роль пользователя
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// IsValid проверяет, что роль входит в допустимый набор
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleUser
}

type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"column:name;not null;size:100"`
	Email     string    `gorm:"column:email;not null;size:100;index"`
	Password  string    `gorm:"column:password;not null;size:100"`
	Role      Role      `gorm:"column:role;not null;size:10"`
	IsDeleted bool      `gorm:"column:is_deleted;not null;default:false"`
	Cards     []Card    `gorm:"foreignKey:UserID"`
	CreatedAt time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"column:updated_at;default:CURRENT_TIMESTAMP"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate хук для валидации перед созданием
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if len(u.Name) < 2 || len(u.Name) > 100 {
		return errors.New("name must be between 2 and 100 characters")
	}
	if len(u.Email) < 3 || len(u.Email) > 100 {
		return errors.New("email must be between 3 and 100 characters")
	}
	if !u.Role.IsValid() {
		return errors.New("role must be ADMIN or USER")
	}
	return nil
}
