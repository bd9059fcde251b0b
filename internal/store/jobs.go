package store

import (
	"context"
	"fmt"

	"github.com/cesargomez89/jobtracker/internal/domain"
)

const jobColumns = `id, employer_id, title, notes, link, reference_number, salary_estimate, interest_level,
	archived, favorited, status, created_at, updated_at`

// CreateJob inserts the job with the timestamps it carries and sets its ID.
// The employer must exist.
func (db *DB) CreateJob(ctx context.Context, job *domain.Job) error {
	job.CreatedAt = job.CreatedAt.UTC()
	job.UpdatedAt = job.UpdatedAt.UTC()

	query := `INSERT INTO jobs (
		employer_id, title, notes, link, reference_number, salary_estimate, interest_level,
		archived, favorited, status, created_at, updated_at
	) VALUES (
		:employer_id, :title, :notes, :link, :reference_number, :salary_estimate, :interest_level,
		:archived, :favorited, :status, :created_at, :updated_at
	)`

	id, err := insertReturningID(ctx, db, query, job)
	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	job.ID = id
	return nil
}

func (db *DB) GetJob(ctx context.Context, id int64) (*domain.Job, error) {
	return getOne[domain.Job](ctx, db, `SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id)
}

// ListJobs returns non-archived jobs, newest first.
func (db *DB) ListJobs(ctx context.Context) ([]*domain.Job, error) {
	return db.selectJobs(ctx, `SELECT `+jobColumns+` FROM jobs WHERE archived = 0 ORDER BY created_at DESC, id DESC`)
}

// ListAllJobs returns archived and non-archived jobs, newest first.
func (db *DB) ListAllJobs(ctx context.Context) ([]*domain.Job, error) {
	return db.selectJobs(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY created_at DESC, id DESC`)
}

func (db *DB) ListArchivedJobs(ctx context.Context) ([]*domain.Job, error) {
	return db.selectJobs(ctx, `SELECT `+jobColumns+` FROM jobs WHERE archived = 1 ORDER BY created_at DESC, id DESC`)
}

// ListJobsRaw returns every job in insertion order.
func (db *DB) ListJobsRaw(ctx context.Context) ([]*domain.Job, error) {
	return db.selectJobs(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY id`)
}

func (db *DB) ListJobsByEmployerID(ctx context.Context, employerID int64) ([]*domain.Job, error) {
	return db.selectJobs(ctx, `SELECT `+jobColumns+` FROM jobs WHERE employer_id = ? ORDER BY id`, employerID)
}

func (db *DB) FindJobByTitleAndEmployer(ctx context.Context, title string, employerID int64) (*domain.Job, error) {
	return getOne[domain.Job](ctx, db,
		`SELECT `+jobColumns+` FROM jobs WHERE employer_id = ? AND title = ? ORDER BY id LIMIT 1`, employerID, title)
}

var jobUpdateColumns = map[string]bool{
	"employer_id":      true,
	"title":            true,
	"notes":            true,
	"link":             true,
	"reference_number": true,
	"salary_estimate":  true,
	"interest_level":   true,
	"archived":         true,
	"favorited":        true,
	"status":           true,
}

func (db *DB) UpdateJob(ctx context.Context, id int64, p domain.JobPatch) error {
	updates := make(map[string]interface{})
	if p.EmployerID != nil {
		updates["employer_id"] = *p.EmployerID
	}
	if p.Title != nil {
		updates["title"] = *p.Title
	}
	if p.Notes != nil {
		updates["notes"] = *p.Notes
	}
	if p.Link != nil {
		updates["link"] = *p.Link
	}
	if p.ReferenceNumber != nil {
		updates["reference_number"] = *p.ReferenceNumber
	}
	if p.SalaryEstimate != nil {
		updates["salary_estimate"] = *p.SalaryEstimate
	}
	if p.InterestLevel != nil {
		updates["interest_level"] = *p.InterestLevel
	}
	if p.Archived != nil {
		updates["archived"] = *p.Archived
	}
	if p.Favorited != nil {
		updates["favorited"] = *p.Favorited
	}
	if p.Status != nil {
		updates["status"] = string(*p.Status)
	}
	return updatePartial(ctx, db, TableJobs, id, updates, jobUpdateColumns)
}

// DeleteJob removes the job; its keywords and activities cascade.
func (db *DB) DeleteJob(ctx context.Context, id int64) error {
	_, err := db.ExecContext(ctx, `DELETE FROM jobs WHERE id = ?`, id)
	return err
}

func (db *DB) selectJobs(ctx context.Context, query string, args ...interface{}) ([]*domain.Job, error) {
	var jobs []*domain.Job
	err := db.SelectContext(ctx, &jobs, query, args...)
	return jobs, err
}
