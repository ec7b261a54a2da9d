package models

import (
	"time"
)

// CardType представляет тип карты
type CardType string

const (
	CardTypeCommon  CardType = "COMMON"
	CardTypeStudent CardType = "STUDENT"
	CardTypeWorker  CardType = "WORKER"
)

// IsValid проверяет, что тип карты входит в допустимый набор
func (t CardType) IsValid() bool {
	return t == CardTypeCommon || t == CardTypeStudent || t == CardTypeWorker
}

// Card представляет транспортную карту пользователя.
// Number — внешний идентификатор, выдается кодеком и не меняется.
// Status и IsDeleted — независимые флаги: первый включает/выключает карту,
// второй означает логическое удаление.
type Card struct {
	Number    string    `gorm:"column:number;primaryKey;size:16"`
	Title     string    `gorm:"column:title;not null;size:100"`
	Status    bool      `gorm:"column:status;not null;default:true"`
	Type      CardType  `gorm:"column:type;not null;size:10"`
	UserID    uint      `gorm:"column:user_id;not null;index"`
	User      User      `gorm:"foreignKey:UserID;references:ID"`
	Record    int64     `gorm:"column:record;autoIncrement;uniqueIndex"`
	IsDeleted bool      `gorm:"column:is_deleted;not null;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"column:updated_at;default:CURRENT_TIMESTAMP"`
}

// TableName возвращает имя таблицы для модели Card
func (Card) TableName() string {
	return "cards"
}
