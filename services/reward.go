package services

import (
	"errors"
	"log"
	"math/rand"
	"sync"
	"time"

	"study-quest-system/models"

	"gorm.io/gorm"
)

// XP draw bounds for one completed task, inclusive.
const (
	MinXPGain = 10
	MaxXPGain = 20
)

// xpForLevel returns the XP needed to clear the given level.
func xpForLevel(level int) int {
	return level * 100
}

// Evolution stages, highest threshold first. Stage is recomputed from level on
// every update rather than advanced incrementally, so it can never drift.
var evolutionStages = []struct {
	MinLevel int
	Stage    int
	Name     string
}{
	{20, 4, "Inferno Dragon"},
	{10, 3, "Raptor"},
	{5, 2, "Baby Dino"},
	{1, 1, "Mystery Egg"},
}

// RewardService applies the streak/XP/badge progression when a task is
// completed. The random draw and the clock are injectable so tests can pin
// exact outcomes.
type RewardService struct {
	DB   *gorm.DB
	Roll func() int // uniform in [MinXPGain, MaxXPGain]
	Now  func() time.Time

	locks sync.Map // user id -> *sync.Mutex
}

func NewRewardService(db *gorm.DB) *RewardService {
	return &RewardService{
		DB:   db,
		Roll: func() int { return rand.Intn(MaxXPGain-MinXPGain+1) + MinXPGain },
		Now:  time.Now,
	}
}

// userLock returns the mutex serializing reward writes for one user. Two
// concurrent completions by the same user must not interleave their
// read-compute-write; different users never contend.
func (s *RewardService) userLock(userID string) *sync.Mutex {
	m, _ := s.locks.LoadOrStore(userID, &sync.Mutex{})
	return m.(*sync.Mutex)
}

// GrantCompletion loads the user's record, applies one completion and saves the
// whole record back, serialized per user. Callers invoke it exactly once per
// incomplete → complete transition; the reverse transition grants nothing.
func (s *RewardService) GrantCompletion(userID string) (*models.User, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	var updated *models.User
	run := func() error {
		return s.DB.Transaction(func(tx *gorm.DB) error {
			var user models.User
			if err := tx.First(&user, "id = ?", userID).Error; err != nil {
				return err
			}
			s.applyCompletion(&user)
			if err := tx.Save(&user).Error; err != nil {
				return err
			}
			updated = &models.User{}
			*updated = user
			return nil
		})
	}

	err := run()
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		// One retry for transient write conflicts; NotFound is final.
		log.Printf("[Reward] retrying progression update for user %s: %v", userID, err)
		err = run()
	}
	if err != nil {
		return nil, err
	}

	log.Printf("🎁 Reward applied: %s → streak=%d, lvl=%d, xp=%d, badges=%d",
		userID, updated.Streak, updated.Pet.Level, updated.Pet.XP, len(updated.Badges))
	return updated, nil
}

// applyCompletion mutates one in-memory snapshot: counter, streak, XP,
// level-up, evolution stage, badges. Callers persist the snapshot as a single
// whole-record write so the update is all-or-nothing.
func (s *RewardService) applyCompletion(user *models.User) {
	now := s.Now()
	user.TotalTasksCompleted++
	s.advanceStreak(user, now)

	user.Pet.XP += s.Roll()
	for user.Pet.XP >= xpForLevel(user.Pet.Level) {
		user.Pet.XP -= xpForLevel(user.Pet.Level)
		user.Pet.Level++
		user.Pet.Mood = "excited"
	}

	for _, e := range evolutionStages {
		if user.Pet.Level >= e.MinLevel {
			user.Pet.Stage = e.Stage
			user.Pet.EvolutionName = e.Name
			break
		}
	}

	for _, trigger := range models.BadgeTriggers {
		if user.HasBadge(trigger.ID) {
			continue
		}
		if trigger.MinStreak > 0 && user.Streak < trigger.MinStreak {
			continue
		}
		if trigger.MinTotalTasks > 0 && user.TotalTasksCompleted < trigger.MinTotalTasks {
			continue
		}
		user.Badges = append(user.Badges, trigger.ID)
		log.Printf("🎖️ Badge unlocked: %s → %s", trigger.ID, user.ID)
	}
}

// advanceStreak bumps the consecutive-day counter at most once per calendar
// day. A frozen streak absorbs a missed gap of any length and clears the flag;
// an unfrozen gap resets the streak to 1 (today's completion starts it over).
func (s *RewardService) advanceStreak(user *models.User, now time.Time) {
	today := dayNumber(now)
	if user.LastActiveDate != nil && dayNumber(*user.LastActiveDate) >= today {
		return // already counted today
	}

	if user.LastActiveDate == nil {
		user.Streak++
	} else {
		switch diff := today - dayNumber(*user.LastActiveDate); {
		case diff == 1:
			user.Streak++
		case diff > 1 && user.IsStreakFrozen:
			user.IsStreakFrozen = false
			user.Streak++
		default:
			user.Streak = 1
		}
	}

	stamp := midnight(now)
	user.LastActiveDate = &stamp
}

// dayNumber collapses a timestamp to a whole-day ordinal in its own location,
// so streak math compares calendar days rather than 24h windows. Server-local
// "today" matches the stored behavior; per-user time zones are an open item.
func dayNumber(t time.Time) int {
	y, m, d := t.Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
