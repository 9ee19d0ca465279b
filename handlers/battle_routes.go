// handlers/battle_routes.go
package handlers

import (
	"study-quest-system/battle"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// SetupBattleRoutes exposes the focus-battle websocket. Rooms are not tied to
// accounts: membership of a room code is the sole isolation boundary.
func SetupBattleRoutes(app *fiber.App, hub *battle.Hub) {
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/battle", websocket.New(func(conn *websocket.Conn) {
		battle.NewClient(hub, conn).Serve()
	}))
}
