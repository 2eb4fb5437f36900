package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rgould/sprintdeck/internal/domain/sprint"
	"github.com/rgould/sprintdeck/internal/repository"
)

// SprintRepository implements repository.SprintRepository for SQLite
type SprintRepository struct {
	db *DB
}

// NewSprintRepository creates a new SprintRepository
func NewSprintRepository(db *DB) *SprintRepository {
	return &SprintRepository{db: db}
}

// Create creates a new sprint
func (r *SprintRepository) Create(ctx context.Context, spr *sprint.Sprint) error {
	query := `
		INSERT INTO sprints (id, name, start_date, end_date, is_active, project_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		spr.ID,
		spr.Name,
		spr.StartDate,
		spr.EndDate,
		spr.IsActive,
		spr.ProjectID,
		spr.CreatedAt,
		spr.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create sprint: %w", err)
	}

	return nil
}

const sprintViewQuery = `
	SELECT
		s.id, s.name, s.start_date, s.end_date, s.is_active, s.project_id,
		s.created_at, s.updated_at,
		COALESCE(p.name, '') as project_name,
		COUNT(t.id) as task_count
	FROM sprints s
	LEFT JOIN projects p ON p.id = s.project_id
	LEFT JOIN tasks t ON t.sprint_id = s.id
`

// Get retrieves a sprint by ID with its project name and task count
// resolved
func (r *SprintRepository) Get(ctx context.Context, id string) (*sprint.View, error) {
	query := sprintViewQuery + `
	WHERE s.id = ?
	GROUP BY s.id
	`

	var view sprint.View
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&view.ID,
		&view.Name,
		&view.StartDate,
		&view.EndDate,
		&view.IsActive,
		&view.ProjectID,
		&view.CreatedAt,
		&view.UpdatedAt,
		&view.ProjectName,
		&view.TaskCount,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sprint: %w", err)
	}

	return &view, nil
}

// List returns sprints, optionally filtered by project, ordered by start
// date
func (r *SprintRepository) List(ctx context.Context, projectID string) ([]sprint.View, error) {
	query := sprintViewQuery
	args := []any{}

	if projectID != "" {
		query += " WHERE s.project_id = ?"
		args = append(args, projectID)
	}

	query += `
	GROUP BY s.id
	ORDER BY s.start_date ASC, s.created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sprints: %w", err)
	}
	defer rows.Close()

	var views []sprint.View
	for rows.Next() {
		var view sprint.View
		err := rows.Scan(
			&view.ID,
			&view.Name,
			&view.StartDate,
			&view.EndDate,
			&view.IsActive,
			&view.ProjectID,
			&view.CreatedAt,
			&view.UpdatedAt,
			&view.ProjectName,
			&view.TaskCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sprint: %w", err)
		}
		views = append(views, view)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sprint rows: %w", err)
	}

	return views, nil
}

// Update replaces the sprint document
func (r *SprintRepository) Update(ctx context.Context, spr *sprint.Sprint) error {
	query := `
		UPDATE sprints
		SET name = ?, start_date = ?, end_date = ?, is_active = ?, project_id = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		spr.Name,
		spr.StartDate,
		spr.EndDate,
		spr.IsActive,
		spr.ProjectID,
		spr.UpdatedAt,
		spr.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update sprint: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes a sprint. Its tasks are left in place with a dangling
// sprint reference.
func (r *SprintRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sprints WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete sprint: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}

	return nil
}
