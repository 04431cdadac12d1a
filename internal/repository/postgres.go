package repository

import (
	"context"
	"fmt"
	"net"

	"github.com/UnknownOlympus/geohash/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewDatabase opens a pgx connection pool and verifies it with a ping.
func NewDatabase(ctx context.Context, host, port, user, password, name string) (*pgxpool.Pool, error) {
	dsn := fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable", user, password, net.JoinHostPort(host, port), name)

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// FetchTasksForTagging retrieves tasks that already have coordinates but no geohash.
// Tasks with a recorded tagging error are skipped. The results are ordered by creation
// date and limited to the specified count.
//
// Parameters:
// - ctx: The context for the operation, allowing for cancellation and timeout.
// - limit: The maximum number of tasks to retrieve.
//
// Returns:
// - A slice of models.Task containing the tasks that match the criteria.
// - An error if the query fails or if there is an issue scanning the results.
func (r *Repository) FetchTasksForTagging(ctx context.Context, limit int) ([]models.Task, error) {
	var tasks []models.Task
	query := `
		SELECT task_id, latitude, longitude
		FROM public.tasks
		WHERE
			latitude IS NOT NULL
			AND longitude IS NOT NULL
			AND geohash IS NULL
			AND geohash_error IS NULL
		ORDER BY created_at ASC
		LIMIT $1;
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks without geohash: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var task models.Task
		if errScan := rows.Scan(&task.ID, &task.Latitude, &task.Longitude); errScan != nil {
			return nil, fmt.Errorf("failed to scan task without geohash: %w", errScan)
		}
		r.log.DebugContext(ctx, "A task without geohash has been received.",
			"ID", task.ID, "latitude", task.Latitude, "longitude", task.Longitude)
		tasks = append(tasks, task)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return tasks, nil
}

// UpdateTaskGeohash stores the geohash of a task identified by taskID.
func (r *Repository) UpdateTaskGeohash(ctx context.Context, taskID int, hash string) error {
	query := `
		UPDATE tasks
		SET
			geohash = $1,
			geohash_error = NULL
		WHERE
			task_id = $2;
	`

	_, err := r.db.Exec(ctx, query, hash, taskID)
	if err != nil {
		return fmt.Errorf("failed to update task geohash: %w", err)
	}

	return nil
}

// RecordTaggingError stores why the coordinates of a task could not be encoded, which
// also removes the task from later batches.
func (r *Repository) RecordTaggingError(ctx context.Context, taskID int, errMsg string) error {
	query := `
		UPDATE tasks
		SET geohash_error = $1
		WHERE task_id = $2;
	`

	_, err := r.db.Exec(ctx, query, errMsg, taskID)
	if err != nil {
		return fmt.Errorf("failed to record geohash error: %w", err)
	}

	return nil
}
