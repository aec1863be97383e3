package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/smart-exhibitor/backend/pkg/queue"
	"github.com/smart-exhibitor/backend/pkg/storage"
)

// CleanupProcessor deletes blobs that the portal no longer references:
// replaced logos and superseded banner renders. Deletion happens off the
// request path so uploads never wait on storage housekeeping.
type CleanupProcessor struct {
	blobs  storage.Store
	queue  *queue.Queue
	logger *zap.Logger
}

// NewCleanupProcessor creates a blob cleanup processor.
func NewCleanupProcessor(blobs storage.Store, q *queue.Queue, logger *zap.Logger) *CleanupProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CleanupProcessor{blobs: blobs, queue: q, logger: logger}
}

// Process executes one cleanup job.
func (p *CleanupProcessor) Process(ctx context.Context, job *queue.Job) error {
	if job.Type != queue.JobTypeBlobDelete {
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
	var payload queue.BlobDeletePayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}
	if payload.Key == "" {
		return fmt.Errorf("empty blob key")
	}
	if err := p.blobs.Delete(ctx, payload.Key); err != nil {
		return fmt.Errorf("delete blob %s: %w", payload.Key, err)
	}
	p.logger.Info("orphaned blob deleted", zap.String("key", payload.Key), zap.String("reason", payload.Reason))
	return nil
}

// Run starts the worker loop: dequeue, process, retry on error.
func (p *CleanupProcessor) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("cleanup worker stopping")
			return
		default:
		}

		job, err := p.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			p.logger.Warn("dequeue error", zap.Error(err))
			time.Sleep(queue.RetryBackoff)
			continue
		}
		if job == nil {
			continue
		}

		p.logger.Debug("processing job", zap.String("job_id", job.ID), zap.String("type", string(job.Type)))
		if err := p.Process(ctx, job); err != nil {
			p.logger.Error("job failed", zap.String("job_id", job.ID), zap.Error(err))
			if reErr := p.queue.Retry(ctx, job); reErr != nil {
				p.logger.Error("retry enqueue failed", zap.Error(reErr))
			}
			time.Sleep(queue.RetryBackoff)
		}
	}
}
