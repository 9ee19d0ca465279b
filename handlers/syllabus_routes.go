// handlers/syllabus_routes.go
package handlers

import (
	"errors"

	"study-quest-system/middleware"
	"study-quest-system/models"
	"study-quest-system/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupSyllabusRoutes(app *fiber.App, syllabusService *services.SyllabusService) {
	syllabus := app.Group("/api/syllabus", middleware.Protect())

	syllabus.Get("/:userId", func(c *fiber.Ctx) error {
		subjects, err := syllabusService.ListByUser(c.Params("userId"))
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "failed to fetch subjects"})
		}
		return c.JSON(subjects)
	})

	syllabus.Post("/", func(c *fiber.Ctx) error {
		var req struct {
			UserID       string `json:"userId"`
			SubjectTitle string `json:"subjectTitle"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
		}
		if req.UserID == "" || req.SubjectTitle == "" {
			return c.Status(400).JSON(fiber.Map{"error": "userId and subjectTitle are required"})
		}
		subject, err := syllabusService.CreateSubject(req.UserID, req.SubjectTitle)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "failed to create subject"})
		}
		return c.Status(201).JSON(subject)
	})

	syllabus.Post("/chapter/:subjectId", func(c *fiber.Ctx) error {
		var req struct {
			Title string `json:"title"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
		}
		subject, err := syllabusService.AddChapter(c.Params("subjectId"), req.Title)
		if err != nil {
			return subjectError(c, err)
		}
		return c.JSON(subject)
	})

	syllabus.Put("/chapter/:subjectId/:chapterId", func(c *fiber.Ctx) error {
		subject, err := syllabusService.ToggleChapter(c.Params("subjectId"), c.Params("chapterId"))
		if err != nil {
			return subjectError(c, err)
		}
		return c.JSON(subject)
	})

	syllabus.Delete("/chapter/:subjectId/:chapterId", func(c *fiber.Ctx) error {
		subject, err := syllabusService.DeleteChapter(c.Params("subjectId"), c.Params("chapterId"))
		if err != nil {
			return subjectError(c, err)
		}
		return c.JSON(subject)
	})

	syllabus.Put("/reorder/:subjectId", func(c *fiber.Ctx) error {
		var req struct {
			Chapters []models.Chapter `json:"chapters"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
		}
		subject, err := syllabusService.ReorderChapters(c.Params("subjectId"), req.Chapters)
		if err != nil {
			return subjectError(c, err)
		}
		return c.JSON(subject)
	})

	syllabus.Delete("/:subjectId", func(c *fiber.Ctx) error {
		if err := syllabusService.DeleteSubject(c.Params("subjectId")); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "failed to delete subject"})
		}
		return c.JSON(fiber.Map{"message": "Deleted"})
	})
}

func subjectError(c *fiber.Ctx, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "subject not found"})
	}
	if errors.Is(err, services.ErrChapterNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "chapter not found"})
	}
	return c.Status(500).JSON(fiber.Map{"error": "failed to update subject"})
}
