package handlers

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"alfredoptarigan/resume-reviewer/internal/models"
	"alfredoptarigan/resume-reviewer/internal/repositories"
	"alfredoptarigan/resume-reviewer/internal/services"
)

const (
	resumeField         = "resume"
	jobDescriptionField = "jobdesc"

	missingInputMessage = "Missing resume or job description."
	analyzeFailMessage  = "Failed to analyze resume."
)

type AnalyzeHandler struct {
	analyzer    services.AnalyzerService
	extractor   services.TextExtractor
	storage     services.StorageService
	attempts    repositories.AttemptRepository
	maxFileSize int64
	exposeStack bool
}

func NewAnalyzeHandler(
	analyzer services.AnalyzerService,
	extractor services.TextExtractor,
	storage services.StorageService,
	attempts repositories.AttemptRepository,
	maxFileSize int64,
	exposeStack bool,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer:    analyzer,
		extractor:   extractor,
		storage:     storage,
		attempts:    attempts,
		maxFileSize: maxFileSize,
		exposeStack: exposeStack,
	}
}

// HandleAnalyze handles POST /api/analyze
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	start := time.Now()
	attempt := &models.AnalysisAttempt{}
	defer h.recordAttempt(attempt, start)

	log.Info("📥 Received request to /api/analyze")

	jobDescription := c.FormValue(jobDescriptionField)
	file, err := c.FormFile(resumeField)
	if err != nil || file.Size == 0 || strings.TrimSpace(jobDescription) == "" {
		log.Info("Missing file or job description")
		return h.clientError(c, attempt, &services.ClientInputError{Message: missingInputMessage})
	}

	mediaType := services.ResolveMediaType(file.Header.Get(fiber.HeaderContentType))
	attempt.MediaType = mediaType

	log.Infof("Request details: file=%q type=%s size=%d jobdesc=%d chars",
		file.Filename, mediaType, file.Size, len(jobDescription))

	if file.Size > h.maxFileSize {
		return h.clientError(c, attempt, &services.ClientInputError{
			Message: fmt.Sprintf("Resume file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	strategy, err := h.extractor.StrategyFor(mediaType)
	if err != nil {
		return h.fail(c, attempt, err)
	}
	attempt.Strategy = string(strategy)

	doc, err := h.storage.SaveFile(file, mediaType)
	if err != nil {
		return h.fail(c, attempt, fmt.Errorf("failed to store upload: %w", err))
	}

	critique, err := h.analyzer.Analyze(c.UserContext(), doc, jobDescription)
	if err != nil {
		return h.fail(c, attempt, err)
	}

	attempt.Reader = critique.Reader
	attempt.Status = models.AttemptSucceeded
	attempt.HTTPStatus = fiber.StatusOK

	return c.JSON(models.AnalyzeResponse{
		Suggestions: critique.Suggestions,
	})
}

func (h *AnalyzeHandler) clientError(c *fiber.Ctx, attempt *models.AnalysisAttempt, err *services.ClientInputError) error {
	attempt.Status = models.AttemptRejected
	attempt.HTTPStatus = fiber.StatusBadRequest

	return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
		Error: err.Message,
	})
}

// fail converts any pipeline error into exactly one error body.
func (h *AnalyzeHandler) fail(c *fiber.Ctx, attempt *models.AnalysisAttempt, err error) error {
	var inputErr *services.ClientInputError
	if errors.As(err, &inputErr) {
		log.Infof("Rejected request: %s", inputErr.Message)
		return h.clientError(c, attempt, inputErr)
	}

	var extractErr *services.ExtractionError
	var remoteErr *services.RemoteServiceError
	switch {
	case errors.As(err, &extractErr):
		attempt.Status = models.AttemptExtractFailed
	case errors.As(err, &remoteErr):
		attempt.Status = models.AttemptRemoteFailed
	default:
		attempt.Status = models.AttemptFailed
	}
	attempt.HTTPStatus = fiber.StatusInternalServerError

	log.Errorf("❌ Error in /api/analyze: %v", err)

	body := models.ErrorResponse{
		Error:   analyzeFailMessage,
		Details: err.Error(),
	}
	if h.exposeStack {
		body.Stack = errorChain(err) + "\n" + string(debug.Stack())
	}

	return c.Status(fiber.StatusInternalServerError).JSON(body)
}

// errorChain lists err and every cause it wraps, outermost first. The
// goroutine stack appended after it is the handler's, not the failing call's.
func errorChain(err error) string {
	var b strings.Builder
	for depth := 0; err != nil; depth++ {
		fmt.Fprintf(&b, "%d: %T: %v\n", depth, err, err)
		err = errors.Unwrap(err)
	}
	return b.String()
}

func (h *AnalyzeHandler) recordAttempt(attempt *models.AnalysisAttempt, start time.Time) {
	attempt.DurationMs = time.Since(start).Milliseconds()
	if err := h.attempts.Create(attempt); err != nil {
		log.Warnf("⚠️  Failed to record analysis attempt: %v", err)
	}
	log.Infof("Resume analysis attempt completed: %s in %dms", attempt.Status, attempt.DurationMs)
}
