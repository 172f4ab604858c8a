package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"

	"alfredoptarigan/resume-reviewer/internal/models"
	"alfredoptarigan/resume-reviewer/web"
)

// RegisterRoutes mounts the API, health probes and the embedded browser client.
func RegisterRoutes(app *fiber.App, analyzeHandler *AnalyzeHandler) {
	app.Use(healthcheck.New())

	api := app.Group("/api")
	api.Post("/analyze", analyzeHandler.HandleAnalyze)

	app.Use("/", filesystem.New(filesystem.Config{
		Root:       http.FS(web.Public),
		PathPrefix: "public",
	}))
}

// ErrorHandler keeps framework errors (body too large, unknown route, panics)
// in the same {"error": ...} shape as handler errors.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	message := err.Error()
	if message == "" {
		message = "Internal Server Error"
	}

	return c.Status(code).JSON(models.ErrorResponse{Error: message})
}
