package services

import (
	"encoding/json"
	"errors"
	"log"

	"study-quest-system/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user exists")
)

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

// Register creates an account with the default progression record (streak 0,
// level 1 egg, no badges).
func (s *UserService) Register(name, email, password string) (*models.User, error) {
	var existing models.User
	if err := s.DB.First(&existing, "email = ?", email).Error; err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Role:     "user",
		Pet:      models.NewPet(),
		Badges:   []string{},
	}
	if err := s.DB.Create(&user).Error; err != nil {
		return nil, err
	}
	log.Printf("👤 Registered user: %s (%s)", user.Name, user.ID)
	return &user, nil
}

func (s *UserService) Login(email, password string) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func (s *UserService) GetByID(userID string) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) UpdateName(userID, name string) (*models.User, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}
	user.Name = name
	if err := s.DB.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) ChangePassword(userID, oldPassword, newPassword string) error {
	user, err := s.GetByID(userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)) != nil {
		return ErrInvalidCredentials
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	return s.DB.Save(user).Error
}

// DeleteAccount removes the user and everything it owns.
func (s *UserService) DeleteAccount(userID string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Task{}, "user_id = ?", userID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Subject{}, "user_id = ?", userID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, "id = ?", userID).Error
	})
}

// ResetStreak zeroes the streak state; badges stay (they are one-way).
func (s *UserService) ResetStreak(userID string) (*models.User, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}
	user.Streak = 0
	user.LastActiveDate = nil
	user.IsStreakFrozen = false
	if err := s.DB.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// ToggleFreeze arms or disarms the one-time streak grace flag.
func (s *UserService) ToggleFreeze(userID string) (*models.User, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}
	user.IsStreakFrozen = !user.IsStreakFrozen
	if err := s.DB.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateAvatar(userID, avatarURL string) (*models.User, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}
	user.Avatar = avatarURL
	if err := s.DB.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Leaderboard returns the top users by streak, ties broken by total completed.
func (s *UserService) Leaderboard(limit int) ([]models.User, error) {
	if limit <= 0 {
		limit = 10
	}
	var users []models.User
	err := s.DB.Select("id", "name", "avatar", "streak", "total_tasks_completed", "pet").
		Order("streak DESC").
		Order("total_tasks_completed DESC").
		Limit(limit).
		Find(&users).Error
	return users, err
}

// ResetLeaderboard zeroes the competitive fields on every user. Admin only;
// badges and account data survive.
func (s *UserService) ResetLeaderboard() error {
	petJSON, err := json.Marshal(models.NewPet())
	if err != nil {
		return err
	}
	err = s.DB.Model(&models.User{}).Where("1 = 1").Updates(map[string]interface{}{
		"streak":                0,
		"total_tasks_completed": 0,
		"pet":                   string(petJSON),
	}).Error
	if err != nil {
		return err
	}
	log.Printf("🔄 Leaderboard reset across all users")
	return nil
}
