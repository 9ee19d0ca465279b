// handlers/auth_routes.go
package handlers

import (
	"errors"
	"log"

	"study-quest-system/middleware"
	"study-quest-system/services"
	"study-quest-system/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupAuthRoutes(app *fiber.App, userService *services.UserService) {
	auth := app.Group("/api/auth")

	auth.Post("/register", func(c *fiber.Ctx) error {
		var req struct {
			Name     string `json:"name"`
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
		}
		if req.Name == "" || req.Email == "" || req.Password == "" {
			return c.Status(400).JSON(fiber.Map{"error": "name, email and password are required"})
		}

		user, err := userService.Register(req.Name, req.Email, req.Password)
		if err != nil {
			if errors.Is(err, services.ErrUserExists) {
				return c.Status(400).JSON(fiber.Map{"error": "user exists"})
			}
			log.Printf("DB Error registering user: %v", err)
			return c.Status(500).JSON(fiber.Map{"error": "failed to register"})
		}

		token, err := utils.SignUserToken(user.ID, user.Role)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "failed to issue token"})
		}
		return c.Status(201).JSON(fiber.Map{"token": token, "user": user})
	})

	auth.Post("/login", func(c *fiber.Ctx) error {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
		}

		user, err := userService.Login(req.Email, req.Password)
		if err != nil {
			if errors.Is(err, services.ErrInvalidCredentials) {
				return c.Status(400).JSON(fiber.Map{"error": "invalid credentials"})
			}
			return c.Status(500).JSON(fiber.Map{"error": "login failed"})
		}

		token, err := utils.SignUserToken(user.ID, user.Role)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "failed to issue token"})
		}
		return c.JSON(fiber.Map{"token": token, "user": user})
	})

	// Public: anyone can view the leaderboard
	auth.Get("/leaderboard", func(c *fiber.Ctx) error {
		users, err := userService.Leaderboard(10)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "failed to fetch leaderboard"})
		}
		return c.JSON(users)
	})

	secured := auth.Group("/", middleware.Protect())

	secured.Get("/user/:id", func(c *fiber.Ctx) error {
		user, err := userService.GetByID(c.Params("id"))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(404).JSON(fiber.Map{"error": "user not found"})
			}
			return c.Status(500).JSON(fiber.Map{"error": "database error"})
		}
		return c.JSON(user)
	})

	secured.Put("/update/:id", func(c *fiber.Ctx) error {
		var req struct {
			Name string `json:"name"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
		}
		user, err := userService.UpdateName(c.Params("id"), req.Name)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(404).JSON(fiber.Map{"error": "user not found"})
			}
			return c.Status(500).JSON(fiber.Map{"error": "failed to update profile"})
		}
		return c.JSON(user)
	})

	secured.Put("/password/:id", func(c *fiber.Ctx) error {
		var req struct {
			OldPassword string `json:"oldPassword"`
			NewPassword string `json:"newPassword"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
		}
		if err := userService.ChangePassword(c.Params("id"), req.OldPassword, req.NewPassword); err != nil {
			if errors.Is(err, services.ErrInvalidCredentials) {
				return c.Status(400).JSON(fiber.Map{"error": "incorrect old password"})
			}
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(404).JSON(fiber.Map{"error": "user not found"})
			}
			return c.Status(500).JSON(fiber.Map{"error": "failed to update password"})
		}
		return c.JSON(fiber.Map{"message": "Password updated"})
	})

	secured.Delete("/delete/:id", func(c *fiber.Ctx) error {
		userID := c.Params("id")
		if c.Locals("user_id").(string) != userID {
			return c.Status(401).JSON(fiber.Map{"error": "not authorized"})
		}
		if err := userService.DeleteAccount(userID); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "failed to delete account"})
		}
		return c.JSON(fiber.Map{"message": "Deleted"})
	})

	secured.Put("/reset-streak/:id", func(c *fiber.Ctx) error {
		user, err := userService.ResetStreak(c.Params("id"))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(404).JSON(fiber.Map{"error": "user not found"})
			}
			return c.Status(500).JSON(fiber.Map{"error": "failed to reset streak"})
		}
		return c.JSON(fiber.Map{"message": "Streak Reset", "streak": user.Streak})
	})

	secured.Put("/toggle-freeze/:id", func(c *fiber.Ctx) error {
		user, err := userService.ToggleFreeze(c.Params("id"))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(404).JSON(fiber.Map{"error": "user not found"})
			}
			return c.Status(500).JSON(fiber.Map{"error": "failed to toggle freeze"})
		}
		return c.JSON(fiber.Map{"isStreakFrozen": user.IsStreakFrozen})
	})

	secured.Put("/update-avatar/:id", func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("avatar")
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "avatar file required"})
		}
		url, err := utils.UploadAvatar(fileHeader, c.Params("id"))
		if err != nil {
			log.Printf("Avatar upload failed for user %s: %v", c.Params("id"), err)
			return c.Status(500).JSON(fiber.Map{"error": "failed to upload avatar"})
		}
		user, err := userService.UpdateAvatar(c.Params("id"), url)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(404).JSON(fiber.Map{"error": "user not found"})
			}
			return c.Status(500).JSON(fiber.Map{"error": "failed to save avatar"})
		}
		return c.JSON(user)
	})

	secured.Put("/remove-avatar/:id", func(c *fiber.Ctx) error {
		user, err := userService.UpdateAvatar(c.Params("id"), "")
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(404).JSON(fiber.Map{"error": "user not found"})
			}
			return c.Status(500).JSON(fiber.Map{"error": "failed to remove avatar"})
		}
		return c.JSON(user)
	})

	secured.Put("/reset-leaderboard", middleware.AdminOnly(), func(c *fiber.Ctx) error {
		if err := userService.ResetLeaderboard(); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "failed to reset leaderboard"})
		}
		return c.JSON(fiber.Map{"message": "Leaderboard Reset Successfully!"})
	})
}
