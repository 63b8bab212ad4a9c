package service

import (
	"context"
	"sync"

	"github.com/minhlq/skillsession/internal/model"
	"github.com/minhlq/skillsession/internal/repository"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	dispatcherWorkers   = 4
	dispatcherQueueSize = 256
)

// EvaluationJob carries one descriptive answer to the evaluator. The Response
// row identified by ResponseID is the rendezvous point for the result.
type EvaluationJob struct {
	ResponseID uint
	Request    EvaluationRequest
}

// EvaluationDispatcher runs deferred scoring detached from the request that
// triggered it. Single attempt, best effort: a failed evaluation marks the
// response FAILED and is never retried.
type EvaluationDispatcher interface {
	Enqueue(job EvaluationJob)
	Start()
	Stop()
}

type evaluationDispatcher struct {
	evaluator    EvaluatorService
	responseRepo repository.ResponseRepository
	jobs         chan EvaluationJob
	cancel       context.CancelFunc
	wg           sync.WaitGroup
	log          zerolog.Logger
}

func NewEvaluationDispatcher(evaluator EvaluatorService, responseRepo repository.ResponseRepository) EvaluationDispatcher {
	return &evaluationDispatcher{
		evaluator:    evaluator,
		responseRepo: responseRepo,
		jobs:         make(chan EvaluationJob, dispatcherQueueSize),
		log:          log.With().Str("component", "evaluation_dispatcher").Logger(),
	}
}

func (d *evaluationDispatcher) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	for i := 0; i < dispatcherWorkers; i++ {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case job, ok := <-d.jobs:
					if !ok {
						return
					}
					d.process(ctx, job)
				}
			}
		}()
	}
	d.log.Info().Int("workers", dispatcherWorkers).Msg("Evaluation dispatcher started")
}

func (d *evaluationDispatcher) Stop() {
	if d.cancel != nil {
		d.cancel()
	}
	d.wg.Wait()
	d.log.Info().Msg("Evaluation dispatcher stopped")
}

// Enqueue never blocks the submitting request. If the queue is full the
// response is marked FAILED immediately instead of waiting.
func (d *evaluationDispatcher) Enqueue(job EvaluationJob) {
	select {
	case d.jobs <- job:
	default:
		d.log.Error().Uint("responseID", job.ResponseID).Msg("Evaluation queue full, marking response FAILED")
		d.markFailed(job.ResponseID)
	}
}

func (d *evaluationDispatcher) process(ctx context.Context, job EvaluationJob) {
	result, err := d.evaluator.Evaluate(ctx, job.Request)
	if err != nil {
		d.log.Error().Err(err).Uint("responseID", job.ResponseID).Msg("Evaluation failed")
		d.markFailed(job.ResponseID)
		return
	}

	if err := d.responseRepo.UpdateEvaluation(job.ResponseID, &result.Score, &result.Feedback, model.EvaluationStatusCompleted); err != nil {
		d.log.Error().Err(err).Uint("responseID", job.ResponseID).Msg("Failed to persist evaluation result")
		return
	}
	d.log.Info().Uint("responseID", job.ResponseID).Float64("score", result.Score).Msg("Evaluation completed")
}

func (d *evaluationDispatcher) markFailed(responseID uint) {
	// Score and feedback stay untouched (null) on failure.
	if err := d.responseRepo.UpdateEvaluation(responseID, nil, nil, model.EvaluationStatusFailed); err != nil {
		d.log.Error().Err(err).Uint("responseID", responseID).Msg("Failed to mark response FAILED")
	}
}
