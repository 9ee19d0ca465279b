package services

import (
	"errors"
	"testing"

	"study-quest-system/models"

	"gorm.io/gorm"
)

func TestRegisterDefaults(t *testing.T) {
	db := newTestDB(t)
	s := NewUserService(db)

	user, err := s.Register("Asha", "asha@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Streak != 0 || user.TotalTasksCompleted != 0 {
		t.Errorf("streak/total = %d/%d, want 0/0", user.Streak, user.TotalTasksCompleted)
	}
	if user.LastActiveDate != nil {
		t.Error("new account must have no last active date")
	}
	if user.Pet.Level != 1 || user.Pet.Stage != 1 || user.Pet.EvolutionName != "Mystery Egg" {
		t.Errorf("pet = %+v, want level 1 stage 1 Mystery Egg", user.Pet)
	}
	if len(user.Badges) != 0 {
		t.Errorf("badges = %v, want none", user.Badges)
	}
	if user.Password == "hunter22" {
		t.Error("password stored in plain text")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	s := NewUserService(db)

	if _, err := s.Register("Asha", "asha@example.com", "hunter22"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := s.Register("Imposter", "asha@example.com", "other"); err == nil {
		t.Fatal("second register with same email should fail")
	}
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	s := NewUserService(db)
	if _, err := s.Register("Asha", "asha@example.com", "hunter22"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := s.Login("asha@example.com", "hunter22"); err != nil {
		t.Errorf("Login with correct password: %v", err)
	}
	if _, err := s.Login("asha@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := s.Login("nobody@example.com", "hunter22"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email err = %v, want ErrInvalidCredentials", err)
	}
}

func TestResetStreakClearsStreakStateOnly(t *testing.T) {
	db := newTestDB(t)
	s := NewUserService(db)
	user, _ := s.Register("Asha", "asha@example.com", "hunter22")

	stamp := midnight(testNow)
	user.Streak = 9
	user.LastActiveDate = &stamp
	user.IsStreakFrozen = true
	user.Badges = []string{models.BadgeBronze}
	if err := db.Save(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	reset, err := s.ResetStreak(user.ID)
	if err != nil {
		t.Fatalf("ResetStreak: %v", err)
	}
	if reset.Streak != 0 || reset.LastActiveDate != nil || reset.IsStreakFrozen {
		t.Errorf("streak state not cleared: %+v", reset)
	}
	if !reset.HasBadge(models.BadgeBronze) {
		t.Error("badges must survive a streak reset")
	}
}

func TestToggleFreeze(t *testing.T) {
	db := newTestDB(t)
	s := NewUserService(db)
	user, _ := s.Register("Asha", "asha@example.com", "hunter22")

	on, err := s.ToggleFreeze(user.ID)
	if err != nil {
		t.Fatalf("ToggleFreeze: %v", err)
	}
	if !on.IsStreakFrozen {
		t.Error("first toggle should arm the freeze")
	}
	off, _ := s.ToggleFreeze(user.ID)
	if off.IsStreakFrozen {
		t.Error("second toggle should disarm the freeze")
	}
}

func TestLeaderboardOrdering(t *testing.T) {
	db := newTestDB(t)
	s := NewUserService(db)

	seed := []struct {
		name   string
		streak int
		total  int
	}{
		{"Low", 2, 40},
		{"TieA", 5, 10},
		{"TieB", 5, 30},
		{"Top", 9, 1},
	}
	for _, u := range seed {
		user, err := s.Register(u.name, u.name+"@example.com", "pw")
		if err != nil {
			t.Fatalf("Register %s: %v", u.name, err)
		}
		user.Streak = u.streak
		user.TotalTasksCompleted = u.total
		if err := db.Save(user).Error; err != nil {
			t.Fatalf("seed %s: %v", u.name, err)
		}
	}

	users, err := s.Leaderboard(10)
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}
	var names []string
	for _, u := range users {
		names = append(names, u.Name)
	}
	want := []string{"Top", "TieB", "TieA", "Low"}
	for i, name := range want {
		if names[i] != name {
			t.Fatalf("order = %v, want %v", names, want)
		}
	}
}

func TestResetLeaderboardZeroesCompetitiveFields(t *testing.T) {
	db := newTestDB(t)
	s := NewUserService(db)
	user, _ := s.Register("Asha", "asha@example.com", "hunter22")

	user.Streak = 15
	user.TotalTasksCompleted = 80
	user.Pet = models.Pet{Name: "Rocky", XP: 40, Level: 12, Stage: 3, Mood: "excited", EvolutionName: "Raptor"}
	user.Badges = []string{models.BadgeBronze, models.BadgeWarrior}
	if err := db.Save(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	if err := s.ResetLeaderboard(); err != nil {
		t.Fatalf("ResetLeaderboard: %v", err)
	}

	reloaded, err := s.GetByID(user.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Streak != 0 || reloaded.TotalTasksCompleted != 0 {
		t.Errorf("streak/total = %d/%d, want 0/0", reloaded.Streak, reloaded.TotalTasksCompleted)
	}
	if reloaded.Pet.Level != 1 || reloaded.Pet.Stage != 1 || reloaded.Pet.EvolutionName != "Mystery Egg" {
		t.Errorf("pet = %+v, want reset to Mystery Egg", reloaded.Pet)
	}
	if !reloaded.HasBadge(models.BadgeWarrior) {
		t.Error("badges must survive a leaderboard reset")
	}
}

func TestDeleteAccountCascades(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	tasks := NewTaskService(db)
	syllabus := NewSyllabusService(db)

	user, _ := users.Register("Asha", "asha@example.com", "hunter22")
	if _, err := tasks.Create(user.ID, "revise algebra"); err != nil {
		t.Fatalf("create task: %v", err)
	}
	if _, err := syllabus.CreateSubject(user.ID, "Mathematics"); err != nil {
		t.Fatalf("create subject: %v", err)
	}

	if err := users.DeleteAccount(user.ID); err != nil {
		t.Fatalf("DeleteAccount: %v", err)
	}

	if _, err := users.GetByID(user.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("user lookup err = %v, want not found", err)
	}
	left, err := tasks.ListByUser(user.ID)
	if err != nil || len(left) != 0 {
		t.Errorf("tasks left = %d (err %v), want 0", len(left), err)
	}
	subjects, err := syllabus.ListByUser(user.ID)
	if err != nil || len(subjects) != 0 {
		t.Errorf("subjects left = %d (err %v), want 0", len(subjects), err)
	}
}
