package services

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"hrteam/hr-orchestrator/internal/models"
	"hrteam/hr-orchestrator/internal/repositories"
)

// ScreeningService runs one queued batch end to end: load documents, drive
// the pipeline, persist the verdicts.
type ScreeningService interface {
	RunBatch(ctx context.Context, batchID uuid.UUID) error
}

type screeningService struct {
	screenRepo repositories.ScreeningRepository
	docRepo    repositories.DocumentRepository
	pipeline   ScreeningPipeline
}

func NewScreeningService(
	screenRepo repositories.ScreeningRepository,
	docRepo repositories.DocumentRepository,
	pipeline ScreeningPipeline,
) ScreeningService {
	return &screeningService{
		screenRepo: screenRepo,
		docRepo:    docRepo,
		pipeline:   pipeline,
	}
}

// RunBatch implements ScreeningService.
func (s *screeningService) RunBatch(ctx context.Context, batchID uuid.UUID) error {
	if err := s.screenRepo.UpdateStatus(batchID, models.StatusProcessing); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	log.Printf("🔄 Starting screening batch %s\n", batchID)

	batch, err := s.screenRepo.FindByID(batchID)
	if err != nil {
		s.screenRepo.UpdateError(batchID, err.Error())
		return fmt.Errorf("failed to get batch: %w", err)
	}

	items, err := s.loadItems(batchID)
	if err != nil {
		s.screenRepo.UpdateError(batchID, err.Error())
		return err
	}

	log.Printf("📋 Screening %d resumes for the role of '%s'\n", len(items), batch.Role)

	verdicts := s.pipeline.Screen(ctx, batch.Role, items, func(done, total int) {
		log.Printf("✅ Processed %d/%d resumes\n", done, total)
	})

	records := make([]models.VerdictRecord, 0, len(verdicts))
	for _, v := range verdicts {
		records = append(records, models.VerdictRecord{
			Filename:        v.Filename,
			WeightedAverage: v.WeightedAverage,
			Verdict:         v.Verdict,
			Reasoning:       v.Reasoning,
		})
	}

	if err := s.screenRepo.SaveVerdicts(batchID, records); err != nil {
		s.screenRepo.UpdateError(batchID, err.Error())
		return fmt.Errorf("failed to save verdicts: %w", err)
	}

	log.Printf("✅ Screening batch %s completed\n", batchID)
	return nil
}

// loadItems resolves the batch documents in input order.
func (s *screeningService) loadItems(batchID uuid.UUID) ([]ScreeningItem, error) {
	docIDs, err := s.screenRepo.FindDocumentIDs(batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to load batch documents: %w", err)
	}

	docs, err := s.docRepo.FindByIDs(docIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load documents: %w", err)
	}

	byID := make(map[uuid.UUID]models.Document, len(docs))
	for _, doc := range docs {
		byID[doc.ID] = doc
	}

	items := make([]ScreeningItem, 0, len(docIDs))
	for _, id := range docIDs {
		doc, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("document %s not found", id)
		}
		items = append(items, ScreeningItem{
			Filename: doc.OriginalFileName,
			Path:     doc.FilePath,
		})
	}

	return items, nil
}
