package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User holds the account plus its progression record. Denormalized on purpose:
// streak, pet and badges are rewritten together as one row by the reward engine.
type User struct {
	ID       string `gorm:"primaryKey;type:uuid" json:"id"`
	Name     string `gorm:"not null" json:"name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Avatar   string `json:"avatar"`
	Role     string `gorm:"type:varchar(16);default:'user'" json:"role"` // user, admin

	// Streak system
	Streak              int        `gorm:"default:0" json:"streak"`
	LastActiveDate      *time.Time `json:"last_active_date,omitempty"` // date-only, midnight server-local
	IsStreakFrozen      bool       `gorm:"default:false" json:"is_streak_frozen"`
	TotalTasksCompleted int        `gorm:"default:0" json:"total_tasks_completed"`

	// Pixel pet
	Pet Pet `gorm:"type:jsonb;serializer:json" json:"pet"`

	// Unlocked badge identifiers, set semantics (engine adds each at most once)
	Badges []string `gorm:"type:jsonb;serializer:json" json:"badges"`

	Timestamps
}

// Pet is the gamification avatar. Stage and EvolutionName are derived from Level
// on every reward update, never stored independently of it.
type Pet struct {
	Name          string `json:"name"`
	XP            int    `json:"xp"`
	Level         int    `json:"level"`
	Stage         int    `json:"stage"` // 1..4
	Mood          string `json:"mood"`
	EvolutionName string `json:"evolution_name"`
}

// NewPet returns the hatchling every account starts with.
func NewPet() Pet {
	return Pet{
		Name:          "Rocky",
		XP:            0,
		Level:         1,
		Stage:         1,
		Mood:          "happy",
		EvolutionName: "Mystery Egg",
	}
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
