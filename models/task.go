package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Task is a single to-do item. Completing one (incomplete → complete) is what
// drives the reward engine; un-completing never takes rewards back.
type Task struct {
	ID          string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID      string `gorm:"index;not null" json:"user_id"`
	Title       string `gorm:"not null" json:"title"`
	IsCompleted bool   `gorm:"default:false" json:"is_completed"`

	Timestamps
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
