package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Subject is one syllabus entry owned by a user. Chapters live inline as jsonb
// so reorders and toggles rewrite the whole list in one update.
type Subject struct {
	ID       string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID   string    `gorm:"index;not null" json:"user_id"`
	Title    string    `gorm:"not null" json:"subject_title"`
	Slug     string    `gorm:"index" json:"slug"`
	Chapters []Chapter `gorm:"type:jsonb;serializer:json" json:"chapters"`

	Timestamps
}

type Chapter struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	IsCompleted bool   `json:"is_completed"`
}

func (s *Subject) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
