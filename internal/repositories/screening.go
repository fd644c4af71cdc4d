package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hrteam/hr-orchestrator/internal/models"
)

type ScreeningRepository interface {
	CreateBatch(batch *models.ScreeningBatch, documentIDs []uuid.UUID) error
	FindByID(id uuid.UUID) (*models.ScreeningBatch, error)
	FindDocumentIDs(batchID uuid.UUID) ([]uuid.UUID, error)
	UpdateStatus(id uuid.UUID, status models.BatchStatus) error
	UpdateError(id uuid.UUID, errorMsg string) error
	SaveVerdicts(batchID uuid.UUID, verdicts []models.VerdictRecord) error
	FindPendingBatches(limit int) ([]models.ScreeningBatch, error)
}

type screeningRepository struct {
	db *gorm.DB
}

func NewScreeningRepository(db *gorm.DB) ScreeningRepository {
	return &screeningRepository{db: db}
}

// CreateBatch implements ScreeningRepository. The batch and its document
// links are written in one transaction so a half-created batch never gets
// picked up by the worker.
func (r *screeningRepository) CreateBatch(batch *models.ScreeningBatch, documentIDs []uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(batch).Error; err != nil {
			return fmt.Errorf("failed to create screening batch: %w", err)
		}

		for i, docID := range documentIDs {
			link := models.BatchDocument{
				ID:         uuid.New(),
				BatchID:    batch.ID,
				DocumentID: docID,
				Position:   i,
			}
			if err := tx.Create(&link).Error; err != nil {
				return fmt.Errorf("failed to link document to batch: %w", err)
			}
		}

		return nil
	})
}

// FindByID implements ScreeningRepository. Verdicts are preloaded in
// terminal-state order.
func (r *screeningRepository) FindByID(id uuid.UUID) (*models.ScreeningBatch, error) {
	var batch models.ScreeningBatch
	err := r.db.
		Preload("Verdicts", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ?", id).
		First(&batch).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("screening batch not found")
		}
		return nil, fmt.Errorf("failed to find screening batch: %w", err)
	}

	return &batch, nil
}

// FindDocumentIDs implements ScreeningRepository, returning IDs in input order.
func (r *screeningRepository) FindDocumentIDs(batchID uuid.UUID) ([]uuid.UUID, error) {
	var links []models.BatchDocument
	err := r.db.
		Where("batch_id = ?", batchID).
		Order("position ASC").
		Find(&links).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find batch documents: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(links))
	for _, link := range links {
		ids = append(ids, link.DocumentID)
	}

	return ids, nil
}

// UpdateStatus implements ScreeningRepository.
func (r *screeningRepository) UpdateStatus(id uuid.UUID, status models.BatchStatus) error {
	result := r.db.Model(&models.ScreeningBatch{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update status: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("screening batch not found")
	}

	return nil
}

// UpdateError implements ScreeningRepository.
func (r *screeningRepository) UpdateError(id uuid.UUID, errorMsg string) error {
	result := r.db.Model(&models.ScreeningBatch{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        models.StatusFailed,
			"error_message": errorMsg,
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update error: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("screening batch not found")
	}

	return nil
}

// SaveVerdicts implements ScreeningRepository. Writes the verdicts and marks
// the batch completed in one transaction.
func (r *screeningRepository) SaveVerdicts(batchID uuid.UUID, verdicts []models.VerdictRecord) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for i := range verdicts {
			verdicts[i].BatchID = batchID
			verdicts[i].Position = i
			if verdicts[i].ID == uuid.Nil {
				verdicts[i].ID = uuid.New()
			}
			if err := tx.Create(&verdicts[i]).Error; err != nil {
				return fmt.Errorf("failed to save verdict: %w", err)
			}
		}

		result := tx.Model(&models.ScreeningBatch{}).
			Where("id = ?", batchID).
			Updates(map[string]interface{}{
				"status":     models.StatusCompleted,
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			return fmt.Errorf("failed to complete batch: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("screening batch not found")
		}

		return nil
	})
}

// FindPendingBatches implements ScreeningRepository.
func (r *screeningRepository) FindPendingBatches(limit int) ([]models.ScreeningBatch, error) {
	var batches []models.ScreeningBatch
	err := r.db.
		Where("status = ?", models.StatusQueued).
		Order("created_at ASC").
		Limit(limit).
		Find(&batches).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find pending batches: %w", err)
	}

	return batches, nil
}
