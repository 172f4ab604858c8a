package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/resume-reviewer/internal/models"
)

type AttemptRepository interface {
	Create(attempt *models.AnalysisAttempt) error
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Create(attempt *models.AnalysisAttempt) error {
	if attempt.ID == uuid.Nil {
		attempt.ID = uuid.New()
	}
	if attempt.CreatedAt.IsZero() {
		attempt.CreatedAt = time.Now()
	}

	if err := r.db.Create(attempt).Error; err != nil {
		return fmt.Errorf("failed to create analysis attempt: %w", err)
	}
	return nil
}

// noopAttemptRepository is used when auditing is disabled.
type noopAttemptRepository struct{}

func NewNoopAttemptRepository() AttemptRepository {
	return noopAttemptRepository{}
}

func (noopAttemptRepository) Create(*models.AnalysisAttempt) error { return nil }
