// handlers/progression_routes.go
package handlers

import (
	"strconv"

	"fitness-rpg/models"
	"fitness-rpg/services"

	"github.com/gofiber/fiber/v2"
)

type characterRequest struct {
	Name string `json:"name"`
}

func SetupProgressionRoutes(app *fiber.App, session *services.GameSession) {
	app.Post("/character", func(c *fiber.Ctx) error {
		var req characterRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, err)
		}
		out, err := session.InitializeCharacter(req.Name)
		return respond(c, session, out, err)
	})

	app.Get("/progress", func(c *fiber.Ctx) error {
		state := session.State()

		unlocked := 0
		for _, a := range state.Achievements {
			if a.Unlocked {
				unlocked++
			}
		}
		completed := 0
		for _, q := range state.Quests {
			if q.Completed {
				completed++
			}
		}

		return c.JSON(fiber.Map{
			"character":             state.Character,
			"quests_completed":      completed,
			"quests_total":          len(state.Quests),
			"achievements_unlocked": unlocked,
			"achievements_total":    len(state.Achievements),
			"sleep_streak":          services.SleepStreak(state.DailyLogs),
			"supplement_streak":     services.SupplementStreak(state.DailyLogs),
		})
	})

	// ?type=daily|weekly|monthly|milestone narrows the list
	app.Get("/quests", func(c *fiber.Ctx) error {
		quests := session.State().Quests
		if qt := c.Query("type"); qt != "" {
			filtered := make([]models.Quest, 0, len(quests))
			for _, q := range quests {
				if string(q.Type) == qt {
					filtered = append(filtered, q)
				}
			}
			quests = filtered
		}
		return c.JSON(fiber.Map{"quests": quests})
	})

	app.Get("/achievements", func(c *fiber.Ctx) error {
		achievements := session.State().Achievements
		if raw := c.Query("unlocked"); raw != "" {
			want, err := strconv.ParseBool(raw)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "invalid unlocked filter",
					"cause": err.Error(),
				})
			}
			filtered := make([]models.Achievement, 0, len(achievements))
			for _, a := range achievements {
				if a.Unlocked == want {
					filtered = append(filtered, a)
				}
			}
			achievements = filtered
		}
		return c.JSON(fiber.Map{"achievements": achievements})
	})

	app.Post("/reevaluate", func(c *fiber.Ctx) error {
		out, err := session.Reevaluate()
		return respond(c, session, out, err)
	})
}
