package services

import (
	"time"

	"study-quest-system/models"

	"gorm.io/gorm"
)

type TaskService struct {
	DB *gorm.DB
}

func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{DB: db}
}

func (s *TaskService) Create(userID, title string) (*models.Task, error) {
	task := models.Task{UserID: userID, Title: title}
	if err := s.DB.Create(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *TaskService) ListByUser(userID string) ([]models.Task, error) {
	var tasks []models.Task
	err := s.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&tasks).Error
	return tasks, err
}

func (s *TaskService) Delete(taskID string) error {
	return s.DB.Delete(&models.Task{}, "id = ?", taskID).Error
}

// Toggle flips the completion flag and saves the task. Reward side effects are
// the caller's business: the flag flip must stick even when the reward update
// later fails, so the two are deliberately not one transaction.
func (s *TaskService) Toggle(taskID string) (*models.Task, error) {
	var task models.Task
	if err := s.DB.First(&task, "id = ?", taskID).Error; err != nil {
		return nil, err
	}
	task.IsCompleted = !task.IsCompleted
	if err := s.DB.Save(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// DayCount is one bucket of the activity heatmap.
type DayCount struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
}

// History groups the user's completed tasks by completion day for the
// long-term activity heatmap.
func (s *TaskService) History(userID string) ([]DayCount, error) {
	var tasks []models.Task
	err := s.DB.Select("updated_at").
		Where("user_id = ? AND is_completed = ?", userID, true).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}

	byDay := map[string]int{}
	for _, t := range tasks {
		byDay[t.UpdatedAt.Format("2006-01-02")]++
	}
	stats := make([]DayCount, 0, len(byDay))
	for date, count := range byDay {
		stats = append(stats, DayCount{Date: date, Count: count})
	}
	return stats, nil
}

// ByDate returns tasks last touched on one calendar day (the "time travel" view).
func (s *TaskService) ByDate(userID string, date time.Time) ([]models.Task, error) {
	start := midnight(date)
	end := start.Add(24 * time.Hour)

	var tasks []models.Task
	err := s.DB.Where("user_id = ? AND updated_at >= ? AND updated_at < ?", userID, start, end).
		Find(&tasks).Error
	return tasks, err
}
