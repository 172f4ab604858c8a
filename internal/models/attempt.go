package models

import (
	"time"

	"github.com/google/uuid"
)

type AttemptStatus string

const (
	AttemptSucceeded     AttemptStatus = "succeeded"
	AttemptRejected      AttemptStatus = "rejected"
	AttemptExtractFailed AttemptStatus = "extraction_failed"
	AttemptRemoteFailed  AttemptStatus = "remote_failed"
	AttemptFailed        AttemptStatus = "failed"
)

// AnalysisAttempt is the audit row for one analyze request. It carries request
// metadata only; document bytes, extracted text, the job description and the
// critique are never stored.
type AnalysisAttempt struct {
	ID         uuid.UUID     `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MediaType  string        `gorm:"type:text" json:"media_type"`
	Strategy   string        `gorm:"type:text" json:"strategy"`
	Reader     string        `gorm:"type:text" json:"reader"`
	Status     AttemptStatus `gorm:"type:text;not null" json:"status"`
	HTTPStatus int           `gorm:"not null" json:"http_status"`
	DurationMs int64         `gorm:"not null;default:0" json:"duration_ms"`
	CreatedAt  time.Time     `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (AnalysisAttempt) TableName() string {
	return "analysis_attempts"
}
