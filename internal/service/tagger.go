package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/UnknownOlympus/geohash"
	"github.com/UnknownOlympus/geohash/internal/metrics"
	"github.com/UnknownOlympus/geohash/internal/models"
	"github.com/UnknownOlympus/geohash/internal/repository"
)

// TaggingService periodically encodes the coordinates of stored tasks into geohashes
// using a pool of workers.
type TaggingService struct {
	log          *slog.Logger         // Logger for logging service activities
	repo         repository.Interface // Interface for data repository access
	metrics      *metrics.Metrics     // Metrics for tracking service performance
	precision    int                  // Number of geohash characters to store
	numWorkers   int                  // Number of concurrent workers for processing
	batchSize    int                  // Maximum number of tasks fetched per poll
	pollInterval time.Duration        // Interval for polling untagged tasks
}

// NewTaggingService creates a new instance of TaggingService. It takes a logger, a
// repository interface, metrics for monitoring, the geohash precision in characters,
// the number of workers, the batch size and a polling interval.
func NewTaggingService(
	log *slog.Logger,
	repo repository.Interface,
	metrics *metrics.Metrics,
	precision int,
	numWorkers int,
	batchSize int,
	pollInterval time.Duration,
) *TaggingService {
	return &TaggingService{
		log:          log,
		repo:         repo,
		metrics:      metrics,
		precision:    precision,
		numWorkers:   numWorkers,
		batchSize:    batchSize,
		pollInterval: pollInterval,
	}
}

// Run starts the tagging service, which periodically polls for tasks without a geohash.
// It listens for a cancellation signal from the context to gracefully stop the service.
func (ts *TaggingService) Run(ctx context.Context) {
	ticker := time.NewTicker(ts.pollInterval)
	defer ticker.Stop()

	ts.log.InfoContext(ctx, "Tagging service started...", "precision", ts.precision)

	for {
		select {
		case <-ctx.Done():
			ts.log.InfoContext(ctx, "Tagging service stopped.")
			return
		case <-ticker.C:
			ts.log.InfoContext(ctx, "Polling for tasks to tag...")
			ts.processTasks(ctx)
		}
	}
}

// processTasks fetches a batch of untagged tasks, fans them out to the worker pool
// and waits for all workers to finish.
func (ts *TaggingService) processTasks(ctx context.Context) {
	tasks, err := ts.repo.FetchTasksForTagging(ctx, ts.batchSize)
	if err != nil {
		ts.log.ErrorContext(ctx, "Failed to fetch tasks", "error", err)
		return
	}
	if len(tasks) == 0 {
		ts.log.InfoContext(ctx, "No tasks to process.")
		return
	}

	ts.log.InfoContext(ctx, "Found tasks to process. Starting worker pool.",
		"jobs", len(tasks),
		"num_workers", ts.numWorkers,
	)

	jobs := make(chan models.Task, len(tasks))
	var wgr sync.WaitGroup

	for i := 1; i <= ts.numWorkers; i++ {
		wgr.Add(1)
		go ts.worker(ctx, i, &wgr, jobs)
	}

	for _, task := range tasks {
		jobs <- task
	}
	close(jobs)

	wgr.Wait()
	ts.log.InfoContext(ctx, "Processing batch finished")
}

// worker encodes the coordinates of each task it receives and stores the result.
// Coordinates that cannot be encoded are recorded on the task so it is not fetched again.
func (ts *TaggingService) worker(ctx context.Context, idx int, wg *sync.WaitGroup, jobs <-chan models.Task) {
	defer wg.Done()
	for task := range jobs {
		ts.metrics.ActiveWorkers.Inc()
		ts.tag(ctx, idx, task)
		ts.metrics.ActiveWorkers.Dec()
	}
}

func (ts *TaggingService) tag(ctx context.Context, idx int, task models.Task) {
	ts.log.DebugContext(ctx, "Processing task", "worker", idx, "task", task.ID)

	startTime := time.Now()
	hash, err := geohash.EncodeWithPrecision(task.Latitude, task.Longitude, ts.precision)
	ts.metrics.EncodeSeconds.Observe(time.Since(startTime).Seconds())

	if err != nil {
		ts.log.WarnContext(ctx, "Failed to encode coordinates", "worker", idx, "task", task.ID, "error", err)
		ts.metrics.TasksTagged.WithLabelValues("failure").Inc()

		if err = ts.repo.RecordTaggingError(ctx, task.ID, err.Error()); err != nil {
			ts.log.ErrorContext(ctx, "Could not record tagging error for task",
				"worker", idx,
				"task", task.ID,
				"error", err,
			)
		}
		return
	}

	if err = ts.repo.UpdateTaskGeohash(ctx, task.ID, hash); err != nil {
		ts.metrics.TasksTagged.WithLabelValues("store_failure").Inc()
		ts.log.ErrorContext(ctx, "Failed to store geohash for task",
			"worker", idx,
			"task", task.ID,
			"error", err,
		)
		return
	}

	ts.metrics.TasksTagged.WithLabelValues("success").Inc()
	ts.log.DebugContext(ctx, "Worker successfully tagged the task", "worker", idx, "task", task.ID, "geohash", hash)
}
