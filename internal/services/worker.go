package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"hrteam/hr-orchestrator/internal/repositories"
)

// Worker drains queued screening batches. Concurrency applies across
// batches; items within a batch are processed strictly one at a time by the
// pipeline.
type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueBatch(batchID uuid.UUID)
}

type worker struct {
	screenRepo       repositories.ScreeningRepository
	screeningService ScreeningService
	jobQueue         chan uuid.UUID
	concurrency      int
	wg               sync.WaitGroup
	stopChan         chan struct{}
}

func NewWorker(
	screenRepo repositories.ScreeningRepository,
	screeningService ScreeningService,
	concurrency int,
) Worker {
	if concurrency < 1 {
		concurrency = 1
	}

	return &worker{
		screenRepo:       screenRepo,
		screeningService: screeningService,
		jobQueue:         make(chan uuid.UUID, 100),
		concurrency:      concurrency,
		stopChan:         make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting worker with %d concurrent workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processBatches(ctx, i+1)
	}

	w.wg.Add(1)
	go w.pollPendingBatches(ctx)
}

// Stop implements Worker.
func (w *worker) Stop() {
	log.Println("🛑 Stopping worker...")
	close(w.stopChan)
	w.wg.Wait()
	log.Println("✅ Worker stopped")
}

// EnqueueBatch implements Worker.
func (w *worker) EnqueueBatch(batchID uuid.UUID) {
	select {
	case w.jobQueue <- batchID:
		log.Printf("📥 Batch %s enqueued\n", batchID)
	case <-w.stopChan:
		log.Printf("⚠️ Worker stopped, cannot enqueue batch %s\n", batchID)
	}
}

func (w *worker) processBatches(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Worker #%d stopped\n", workerID)
			return
		case batchID := <-w.jobQueue:
			log.Printf("👷 Worker #%d processing batch %s\n", workerID, batchID)
			if err := w.screeningService.RunBatch(ctx, batchID); err != nil {
				log.Printf("❌ Worker #%d failed to process batch %s: %v\n", workerID, batchID, err)
			}
		}
	}
}

func (w *worker) pollPendingBatches(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			log.Println("🔄 Pending batch poller stopped")
			return
		case <-ticker.C:
			pending, err := w.screenRepo.FindPendingBatches(10)
			if err != nil {
				log.Printf("⚠️ Failed to fetch pending batches: %v\n", err)
				continue
			}

			if len(pending) > 0 {
				log.Printf("📋 Found %d pending batches\n", len(pending))
			}

			for _, batch := range pending {
				w.EnqueueBatch(batch.ID)
			}
		}
	}
}
