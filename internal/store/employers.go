package store

import (
	"context"
	"fmt"

	"github.com/cesargomez89/jobtracker/internal/domain"
)

const employerColumns = `id, name, notes, industry, favorited, created_at, updated_at`

// CreateEmployer inserts the employer with the timestamps it carries and
// sets its ID.
func (db *DB) CreateEmployer(ctx context.Context, e *domain.Employer) error {
	e.CreatedAt = e.CreatedAt.UTC()
	e.UpdatedAt = e.UpdatedAt.UTC()

	query := `INSERT INTO employers (name, notes, industry, favorited, created_at, updated_at)
		VALUES (:name, :notes, :industry, :favorited, :created_at, :updated_at)`

	id, err := insertReturningID(ctx, db, query, e)
	if err != nil {
		return fmt.Errorf("failed to create employer: %w", err)
	}
	e.ID = id
	return nil
}

func (db *DB) GetEmployer(ctx context.Context, id int64) (*domain.Employer, error) {
	return getOne[domain.Employer](ctx, db, `SELECT `+employerColumns+` FROM employers WHERE id = ?`, id)
}

func (db *DB) ListEmployers(ctx context.Context) ([]*domain.Employer, error) {
	var employers []*domain.Employer
	err := db.SelectContext(ctx, &employers, `SELECT `+employerColumns+` FROM employers ORDER BY name COLLATE NOCASE, id`)
	return employers, err
}

// ListEmployersRaw returns employers in insertion order.
func (db *DB) ListEmployersRaw(ctx context.Context) ([]*domain.Employer, error) {
	var employers []*domain.Employer
	err := db.SelectContext(ctx, &employers, `SELECT `+employerColumns+` FROM employers ORDER BY id`)
	return employers, err
}

// FindEmployerByName matches case-insensitively.
func (db *DB) FindEmployerByName(ctx context.Context, name string) (*domain.Employer, error) {
	return getOne[domain.Employer](ctx, db,
		`SELECT `+employerColumns+` FROM employers WHERE name = ? COLLATE NOCASE ORDER BY id LIMIT 1`, name)
}

var employerUpdateColumns = map[string]bool{
	"name":      true,
	"notes":     true,
	"industry":  true,
	"favorited": true,
}

func (db *DB) UpdateEmployer(ctx context.Context, id int64, p domain.EmployerPatch) error {
	updates := make(map[string]interface{})
	if p.Name != nil {
		updates["name"] = *p.Name
	}
	if p.Notes != nil {
		updates["notes"] = *p.Notes
	}
	if p.Industry != nil {
		updates["industry"] = string(*p.Industry)
	}
	if p.Favorited != nil {
		updates["favorited"] = *p.Favorited
	}
	return updatePartial(ctx, db, TableEmployers, id, updates, employerUpdateColumns)
}

// DeleteEmployer removes the employer; its jobs, keywords and activities go
// with it through ON DELETE CASCADE.
func (db *DB) DeleteEmployer(ctx context.Context, id int64) error {
	_, err := db.ExecContext(ctx, `DELETE FROM employers WHERE id = ?`, id)
	return err
}
