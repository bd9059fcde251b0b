package store

import (
	"context"
	"fmt"
)

// Table names one of the entity tables.
type Table string

const (
	TableEmployers    Table = "employers"
	TableJobs         Table = "jobs"
	TableKeywords     Table = "keywords"
	TableActivities   Table = "activities"
	TableGoals        Table = "goals"
	TableUserKeywords Table = "user_keywords"
)

// EntityTables lists the entity tables children first, the order in which
// they can be emptied without tripping foreign keys.
var EntityTables = []Table{
	TableActivities,
	TableKeywords,
	TableJobs,
	TableEmployers,
	TableGoals,
	TableUserKeywords,
}

func (t Table) valid() bool {
	for _, v := range EntityTables {
		if v == t {
			return true
		}
	}
	return false
}

// Clear erases every row of one table.
func (db *DB) Clear(ctx context.Context, table Table) error {
	if !table.valid() {
		return fmt.Errorf("unknown table: %s", table)
	}
	if _, err := db.ExecContext(ctx, "DELETE FROM "+string(table)); err != nil {
		return fmt.Errorf("failed to clear %s: %w", table, err)
	}
	return nil
}

// ClearAll erases all entity tables in a single transaction.
func (db *DB) ClearAll(ctx context.Context) error {
	return db.RunInTx(ctx, func(txDB *DB) error {
		for _, table := range EntityTables {
			if err := txDB.Clear(ctx, table); err != nil {
				return err
			}
		}
		return nil
	})
}

// Count returns the number of rows in one table.
func (db *DB) Count(ctx context.Context, table Table) (int, error) {
	if !table.valid() {
		return 0, fmt.Errorf("unknown table: %s", table)
	}
	var count int
	err := db.GetContext(ctx, &count, "SELECT COUNT(*) FROM "+string(table))
	return count, err
}
