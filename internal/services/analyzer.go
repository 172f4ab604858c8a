package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2/log"

	"alfredoptarigan/resume-reviewer/internal/models"
)

type AnalyzerService interface {
	Analyze(ctx context.Context, doc *models.Document, jobDescription string) (*models.Critique, error)
}

type analyzerService struct {
	extractor     TextExtractor
	storage       StorageService
	completion    CompletionService
	promptBuilder *PromptBuilder
}

func NewAnalyzerService(
	extractor TextExtractor,
	storage StorageService,
	completion CompletionService,
	promptBuilder *PromptBuilder,
) AnalyzerService {
	return &analyzerService{
		extractor:     extractor,
		storage:       storage,
		completion:    completion,
		promptBuilder: promptBuilder,
	}
}

// Analyze runs extract, discard, prompt and complete in order. The stored
// document is always removed before the completion call starts.
func (a *analyzerService) Analyze(ctx context.Context, doc *models.Document, jobDescription string) (*models.Critique, error) {
	log.Infof("📄 Extracting text from %s (%s, %d bytes)", doc.OriginalFilename, doc.MediaType, doc.Size)

	extracted, err := a.extractAndDiscard(doc)
	if err != nil {
		return nil, err
	}

	log.Infof("✅ Text extraction completed via %s reader, length: %d", extracted.Reader, len(extracted.Text))

	req := a.promptBuilder.BuildCritiquePrompt(extracted.Text, jobDescription)

	log.Infof("🤖 Requesting critique from %s...", a.completion.Name())
	text, err := a.completion.Complete(ctx, req)
	if err != nil {
		var remoteErr *RemoteServiceError
		if errors.As(err, &remoteErr) {
			return nil, err
		}
		return nil, &RemoteServiceError{Provider: a.completion.Name(), Err: err}
	}

	suggestions := strings.TrimSpace(text)
	if suggestions == "" {
		return nil, &RemoteServiceError{Provider: a.completion.Name(), Err: fmt.Errorf("empty completion")}
	}

	log.Infof("✅ Critique received: %d characters", len(suggestions))

	return &models.Critique{
		Suggestions: suggestions,
		Reader:      extracted.Reader,
	}, nil
}

func (a *analyzerService) extractAndDiscard(doc *models.Document) (*ExtractedText, error) {
	defer func() {
		if err := a.storage.DeleteFile(doc.Filename); err != nil {
			log.Warnf("⚠️  Failed to remove upload %s: %v", doc.Filename, err)
		}
	}()

	return a.extractor.Extract(doc.FilePath, doc.MediaType)
}
