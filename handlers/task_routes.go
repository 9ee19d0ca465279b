// handlers/task_routes.go
package handlers

import (
	"errors"
	"log"
	"time"

	"study-quest-system/middleware"
	"study-quest-system/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupTaskRoutes(app *fiber.App, taskService *services.TaskService, rewardService *services.RewardService) {
	tasks := app.Group("/api/tasks", middleware.Protect())

	tasks.Post("/", func(c *fiber.Ctx) error {
		var req struct {
			UserID string `json:"userId"`
			Title  string `json:"title"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
		}
		if req.UserID == "" || req.Title == "" {
			return c.Status(400).JSON(fiber.Map{"error": "userId and title are required"})
		}
		task, err := taskService.Create(req.UserID, req.Title)
		if err != nil {
			log.Printf("DB Error creating task: %v", err)
			return c.Status(500).JSON(fiber.Map{"error": "failed to create task"})
		}
		return c.Status(201).JSON(task)
	})

	tasks.Get("/:userId", func(c *fiber.Ctx) error {
		list, err := taskService.ListByUser(c.Params("userId"))
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "failed to fetch tasks"})
		}
		return c.JSON(list)
	})

	tasks.Delete("/:id", func(c *fiber.Ctx) error {
		if err := taskService.Delete(c.Params("id")); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "failed to delete task"})
		}
		return c.JSON(fiber.Map{"message": "Deleted"})
	})

	// Activity heatmap: completed-task counts per day
	tasks.Get("/history/:userId", func(c *fiber.Ctx) error {
		stats, err := taskService.History(c.Params("userId"))
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "failed to fetch history"})
		}
		return c.JSON(stats)
	})

	tasks.Get("/date/:userId/:date", func(c *fiber.Ctx) error {
		date, err := time.ParseInLocation("2006-01-02", c.Params("date"), time.Local)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid date, expected YYYY-MM-DD"})
		}
		list, err := taskService.ByDate(c.Params("userId"), date)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "failed to fetch tasks"})
		}
		return c.JSON(list)
	})

	// Master toggle: flips completion, then runs the reward engine when the
	// flip landed on completed. The toggle is never rolled back when the
	// reward step fails; the two failures are reported separately.
	tasks.Put("/:id", func(c *fiber.Ctx) error {
		task, err := taskService.Toggle(c.Params("id"))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(404).JSON(fiber.Map{"error": "task not found"})
			}
			return c.Status(500).JSON(fiber.Map{"error": "failed to toggle task"})
		}

		if task.IsCompleted {
			if _, err := rewardService.GrantCompletion(task.UserID); err != nil {
				log.Printf("❌ Reward update failed for user %s (task %s toggled anyway): %v",
					task.UserID, task.ID, err)
			}
		}

		return c.JSON(task)
	})
}
