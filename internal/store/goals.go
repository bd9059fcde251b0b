package store

import (
	"context"
	"fmt"

	"github.com/cesargomez89/jobtracker/internal/domain"
)

const goalColumns = `id, type, target_number, frequency_days, created_at, updated_at`

func (db *DB) CreateGoal(ctx context.Context, g *domain.Goal) error {
	g.CreatedAt = g.CreatedAt.UTC()
	g.UpdatedAt = g.UpdatedAt.UTC()

	query := `INSERT INTO goals (type, target_number, frequency_days, created_at, updated_at)
		VALUES (:type, :target_number, :frequency_days, :created_at, :updated_at)`

	id, err := insertReturningID(ctx, db, query, g)
	if err != nil {
		return fmt.Errorf("failed to create goal: %w", err)
	}
	g.ID = id
	return nil
}

// UpsertGoal writes the goal keyed by type. An existing row keeps its id and
// created_at; target, frequency and updated_at are overwritten.
func (db *DB) UpsertGoal(ctx context.Context, g *domain.Goal) error {
	g.CreatedAt = g.CreatedAt.UTC()
	g.UpdatedAt = g.UpdatedAt.UTC()

	query := `INSERT INTO goals (type, target_number, frequency_days, created_at, updated_at)
		VALUES (:type, :target_number, :frequency_days, :created_at, :updated_at)
		ON CONFLICT(type) DO UPDATE SET
			target_number = excluded.target_number,
			frequency_days = excluded.frequency_days,
			updated_at = excluded.updated_at`

	if _, err := db.NamedExecContext(ctx, query, g); err != nil {
		return fmt.Errorf("failed to upsert goal: %w", err)
	}

	var id int64
	if err := db.GetContext(ctx, &id, `SELECT id FROM goals WHERE type = ?`, g.Type); err != nil {
		return fmt.Errorf("failed to read upserted goal: %w", err)
	}
	g.ID = id
	return nil
}

func (db *DB) GetGoal(ctx context.Context, id int64) (*domain.Goal, error) {
	return getOne[domain.Goal](ctx, db, `SELECT `+goalColumns+` FROM goals WHERE id = ?`, id)
}

func (db *DB) GetGoalByType(ctx context.Context, goalType domain.GoalType) (*domain.Goal, error) {
	return getOne[domain.Goal](ctx, db, `SELECT `+goalColumns+` FROM goals WHERE type = ?`, goalType)
}

func (db *DB) ListGoals(ctx context.Context) ([]*domain.Goal, error) {
	var goals []*domain.Goal
	err := db.SelectContext(ctx, &goals, `SELECT `+goalColumns+` FROM goals ORDER BY type`)
	return goals, err
}

func (db *DB) ListGoalsRaw(ctx context.Context) ([]*domain.Goal, error) {
	var goals []*domain.Goal
	err := db.SelectContext(ctx, &goals, `SELECT `+goalColumns+` FROM goals ORDER BY id`)
	return goals, err
}

var goalUpdateColumns = map[string]bool{
	"target_number":  true,
	"frequency_days": true,
}

func (db *DB) UpdateGoal(ctx context.Context, id int64, p domain.GoalPatch) error {
	updates := make(map[string]interface{})
	if p.TargetNumber != nil {
		updates["target_number"] = *p.TargetNumber
	}
	if p.FrequencyDays != nil {
		updates["frequency_days"] = *p.FrequencyDays
	}
	return updatePartial(ctx, db, TableGoals, id, updates, goalUpdateColumns)
}

func (db *DB) DeleteGoal(ctx context.Context, id int64) error {
	_, err := db.ExecContext(ctx, `DELETE FROM goals WHERE id = ?`, id)
	return err
}
