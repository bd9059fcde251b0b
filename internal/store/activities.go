package store

import (
	"context"
	"fmt"

	"github.com/cesargomez89/jobtracker/internal/domain"
)

const activityColumns = `id, job_id, type, category, notes, previous_status, new_status, created_at, updated_at`

// CreateActivity inserts the activity with the timestamps it carries.
func (db *DB) CreateActivity(ctx context.Context, a *domain.Activity) error {
	a.CreatedAt = a.CreatedAt.UTC()
	a.UpdatedAt = a.UpdatedAt.UTC()

	query := `INSERT INTO activities (job_id, type, category, notes, previous_status, new_status, created_at, updated_at)
		VALUES (:job_id, :type, :category, :notes, :previous_status, :new_status, :created_at, :updated_at)`

	id, err := insertReturningID(ctx, db, query, a)
	if err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}
	a.ID = id
	return nil
}

func (db *DB) GetActivity(ctx context.Context, id int64) (*domain.Activity, error) {
	return getOne[domain.Activity](ctx, db, `SELECT `+activityColumns+` FROM activities WHERE id = ?`, id)
}

// ListActivities returns every activity, newest first.
func (db *DB) ListActivities(ctx context.Context) ([]*domain.Activity, error) {
	var activities []*domain.Activity
	err := db.SelectContext(ctx, &activities, `SELECT `+activityColumns+` FROM activities ORDER BY created_at DESC, id DESC`)
	return activities, err
}

func (db *DB) ListActivitiesRaw(ctx context.Context) ([]*domain.Activity, error) {
	var activities []*domain.Activity
	err := db.SelectContext(ctx, &activities, `SELECT `+activityColumns+` FROM activities ORDER BY id`)
	return activities, err
}

// ListActivitiesByJobID returns the job's history, newest first.
func (db *DB) ListActivitiesByJobID(ctx context.Context, jobID int64) ([]*domain.Activity, error) {
	var activities []*domain.Activity
	err := db.SelectContext(ctx, &activities,
		`SELECT `+activityColumns+` FROM activities WHERE job_id = ? ORDER BY created_at DESC, id DESC`, jobID)
	return activities, err
}

var activityUpdateColumns = map[string]bool{
	"category": true,
	"notes":    true,
}

func (db *DB) UpdateActivity(ctx context.Context, id int64, p domain.ActivityPatch) error {
	updates := make(map[string]interface{})
	if p.Category != nil {
		updates["category"] = *p.Category
	}
	if p.Notes != nil {
		updates["notes"] = *p.Notes
	}
	return updatePartial(ctx, db, TableActivities, id, updates, activityUpdateColumns)
}

func (db *DB) DeleteActivity(ctx context.Context, id int64) error {
	_, err := db.ExecContext(ctx, `DELETE FROM activities WHERE id = ?`, id)
	return err
}

func (db *DB) DeleteActivitiesByJobID(ctx context.Context, jobID int64) (int64, error) {
	res, err := db.ExecContext(ctx, `DELETE FROM activities WHERE job_id = ?`, jobID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
