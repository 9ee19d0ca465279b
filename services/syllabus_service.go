package services

import (
	"errors"

	"study-quest-system/models"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

var ErrChapterNotFound = errors.New("chapter not found")

type SyllabusService struct {
	DB *gorm.DB
}

func NewSyllabusService(db *gorm.DB) *SyllabusService {
	return &SyllabusService{DB: db}
}

func (s *SyllabusService) ListByUser(userID string) ([]models.Subject, error) {
	var subjects []models.Subject
	err := s.DB.Where("user_id = ?", userID).Order("created_at ASC").Find(&subjects).Error
	return subjects, err
}

func (s *SyllabusService) CreateSubject(userID, title string) (*models.Subject, error) {
	subject := models.Subject{
		UserID:   userID,
		Title:    title,
		Slug:     slug.Make(title),
		Chapters: []models.Chapter{},
	}
	if err := s.DB.Create(&subject).Error; err != nil {
		return nil, err
	}
	return &subject, nil
}

func (s *SyllabusService) DeleteSubject(subjectID string) error {
	return s.DB.Delete(&models.Subject{}, "id = ?", subjectID).Error
}

func (s *SyllabusService) AddChapter(subjectID, title string) (*models.Subject, error) {
	return s.mutate(subjectID, func(subject *models.Subject) error {
		subject.Chapters = append(subject.Chapters, models.Chapter{
			ID:    uuid.NewString(),
			Title: title,
		})
		return nil
	})
}

func (s *SyllabusService) ToggleChapter(subjectID, chapterID string) (*models.Subject, error) {
	return s.mutate(subjectID, func(subject *models.Subject) error {
		for i := range subject.Chapters {
			if subject.Chapters[i].ID == chapterID {
				subject.Chapters[i].IsCompleted = !subject.Chapters[i].IsCompleted
				return nil
			}
		}
		return ErrChapterNotFound
	})
}

func (s *SyllabusService) DeleteChapter(subjectID, chapterID string) (*models.Subject, error) {
	return s.mutate(subjectID, func(subject *models.Subject) error {
		kept := subject.Chapters[:0]
		for _, ch := range subject.Chapters {
			if ch.ID != chapterID {
				kept = append(kept, ch)
			}
		}
		subject.Chapters = kept
		return nil
	})
}

// ReorderChapters replaces the chapter list wholesale with the client's order.
func (s *SyllabusService) ReorderChapters(subjectID string, chapters []models.Chapter) (*models.Subject, error) {
	return s.mutate(subjectID, func(subject *models.Subject) error {
		subject.Chapters = chapters
		return nil
	})
}

// mutate loads a subject, applies fn and writes the whole row back. Chapters
// are jsonb, so every edit is a full-list rewrite.
func (s *SyllabusService) mutate(subjectID string, fn func(*models.Subject) error) (*models.Subject, error) {
	var subject models.Subject
	if err := s.DB.First(&subject, "id = ?", subjectID).Error; err != nil {
		return nil, err
	}
	if err := fn(&subject); err != nil {
		return nil, err
	}
	if err := s.DB.Save(&subject).Error; err != nil {
		return nil, err
	}
	return &subject, nil
}
