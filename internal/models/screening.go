package models

import (
	"time"

	"github.com/google/uuid"
)

type BatchStatus string

const (
	StatusQueued     BatchStatus = "queued"
	StatusProcessing BatchStatus = "processing"
	StatusCompleted  BatchStatus = "completed"
	StatusFailed     BatchStatus = "failed"
)

type ScreeningBatch struct {
	ID           uuid.UUID   `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Role         string      `gorm:"type:text;not null" json:"role"`
	Status       BatchStatus `gorm:"not null;default:'queued'" json:"status"`
	ErrorMessage string      `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt    time.Time   `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	Documents []BatchDocument `gorm:"foreignKey:BatchID" json:"-"`
	Verdicts  []VerdictRecord `gorm:"foreignKey:BatchID" json:"-"`
}

func (ScreeningBatch) TableName() string {
	return "screening_batches"
}

// BatchDocument ties an uploaded document to a batch, preserving input order.
type BatchDocument struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BatchID    uuid.UUID `gorm:"type:uuid;not null;index" json:"batch_id"`
	DocumentID uuid.UUID `gorm:"type:uuid;not null" json:"document_id"`
	Position   int       `gorm:"not null" json:"position"`
}

func (BatchDocument) TableName() string {
	return "batch_documents"
}

// VerdictRecord is one terminal verdict per input file. Position preserves
// the order items reached a terminal state, not input order.
type VerdictRecord struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BatchID         uuid.UUID `gorm:"type:uuid;not null;index" json:"batch_id"`
	Filename        string    `gorm:"type:text;not null" json:"filename"`
	WeightedAverage float64   `gorm:"type:decimal(4,2)" json:"weighted_average"`
	Verdict         string    `gorm:"type:text;not null" json:"verdict"`
	Reasoning       string    `gorm:"type:text" json:"reasoning"`
	Position        int       `gorm:"not null" json:"position"`
	CreatedAt       time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (VerdictRecord) TableName() string {
	return "verdict_records"
}
