// handlers/game_routes.go
package handlers

import (
	"errors"

	"fitness-rpg/models"
	"fitness-rpg/services"

	"github.com/gofiber/fiber/v2"
)

type renameRequest struct {
	OldNames []string `json:"old_names"`
	NewName  string   `json:"new_name"`
}

func SetupGameRoutes(app *fiber.App, session *services.GameSession) {
	app.Get("/state", func(c *fiber.Ctx) error {
		return c.JSON(session.State())
	})

	app.Get("/workouts", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"workouts": session.Workouts()})
	})

	app.Get("/exercises/similar", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"groups": session.SimilarExercises()})
	})

	app.Post("/logs", func(c *fiber.Ctx) error {
		var log models.DailyLog
		if err := c.BodyParser(&log); err != nil {
			return badRequest(c, err)
		}
		if _, ok := services.NormalizeDate(log.Date); !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid date",
				"cause": "unrecognized date: " + log.Date,
			})
		}
		out, err := session.AddOrMergeLog(log)
		return respond(c, session, out, err)
	})

	app.Post("/exercises/rename", func(c *fiber.Ctx) error {
		var req renameRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, err)
		}
		out, err := session.RenameExercise(req.OldNames, req.NewName)
		return respond(c, session, out, err)
	})

	app.Delete("/state", func(c *fiber.Ctx) error {
		if err := session.Reset(); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to reset progress",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"message": "Progress reset", "state": session.State()})
	})
}

// respond writes the outcome with the updated character, or maps err to a status
func respond(c *fiber.Ctx, session *services.GameSession, out services.Outcome, err error) error {
	if err != nil {
		status := fiber.StatusInternalServerError
		msg := "failed to update progress"
		switch {
		case errors.Is(err, services.ErrEmptyName), errors.Is(err, services.ErrNoExercises):
			status = fiber.StatusBadRequest
			msg = "invalid request"
		case errors.Is(err, services.ErrNotLoaded):
			status = fiber.StatusServiceUnavailable
			msg = "game state not loaded"
		}
		return c.Status(status).JSON(fiber.Map{
			"error": msg,
			"cause": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"outcome":   out,
		"character": session.State().Character,
	})
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "invalid request body",
		"cause": err.Error(),
	})
}
