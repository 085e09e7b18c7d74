// handlers/import_routes.go
package handlers

import (
	"encoding/json"

	"fitness-rpg/models"
	"fitness-rpg/services"
	"fitness-rpg/utils"

	"github.com/gofiber/fiber/v2"
)

type importSetsRequest struct {
	Rows    []map[string]string      `json:"rows"`
	Mapping models.WorkoutCSVMapping `json:"mapping"`
	Sets    []models.WorkoutSet      `json:"sets"`
}

type importLogsRequest struct {
	Rows    []map[string]string        `json:"rows"`
	Mapping models.LifestyleCSVMapping `json:"mapping"`
	Logs    []models.DailyLog          `json:"logs"`
}

func SetupImportRoutes(app *fiber.App, session *services.GameSession) {
	// Either raw spreadsheet rows with a column mapping, or already-structured sets
	app.Post("/import/sets", func(c *fiber.Ctx) error {
		var req importSetsRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, err)
		}
		var (
			out services.Outcome
			err error
		)
		if len(req.Rows) > 0 {
			out, err = session.ImportSetRows(req.Rows, req.Mapping)
		} else {
			out, err = session.ImportSets(req.Sets)
		}
		return respond(c, session, out, err)
	})

	app.Post("/import/logs", func(c *fiber.Ctx) error {
		var req importLogsRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, err)
		}
		var (
			out services.Outcome
			err error
		)
		if len(req.Rows) > 0 {
			out, err = session.ImportLogRows(req.Rows, req.Mapping)
		} else {
			out, err = session.ImportLogs(req.Logs)
		}
		return respond(c, session, out, err)
	})

	// Multipart uploads: "file" holds the CSV, "mapping" the column mapping as JSON.
	// Preview returns headers and rows so a client can build the mapping first.
	app.Post("/import/preview", func(c *fiber.Ctx) error {
		parsed, err := uploadedCSV(c)
		if err != nil {
			return badRequest(c, err)
		}
		return c.JSON(parsed)
	})

	app.Post("/import/sets/csv", func(c *fiber.Ctx) error {
		parsed, err := uploadedCSV(c)
		if err != nil {
			return badRequest(c, err)
		}
		var mapping models.WorkoutCSVMapping
		if err := json.Unmarshal([]byte(c.FormValue("mapping")), &mapping); err != nil {
			return badRequest(c, err)
		}
		out, err := session.ImportSetRows(parsed.Rows, mapping)
		return respond(c, session, out, err)
	})

	app.Post("/import/logs/csv", func(c *fiber.Ctx) error {
		parsed, err := uploadedCSV(c)
		if err != nil {
			return badRequest(c, err)
		}
		var mapping models.LifestyleCSVMapping
		if err := json.Unmarshal([]byte(c.FormValue("mapping")), &mapping); err != nil {
			return badRequest(c, err)
		}
		out, err := session.ImportLogRows(parsed.Rows, mapping)
		return respond(c, session, out, err)
	})
}

func uploadedCSV(c *fiber.Ctx) (utils.ParsedCSV, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.ParsedCSV{}, err
	}
	return utils.ReadUploadedCSV(fileHeader)
}
