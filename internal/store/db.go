package store

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/cesargomez89/jobtracker/internal/domain"
)

type dbOps interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
}

// DB is the entity store. Inside RunInTx the same methods run against the
// transaction instead of the pool.
type DB struct {
	dbOps
	root *sqlx.DB
	inTx bool
}

func NewSQLiteDB(path string) (*DB, error) {
	db, err := sqlx.Open("sqlite", sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &DB{dbOps: db, root: db}, nil
}

// sqliteDSN attaches the pragmas to the DSN so every pooled connection gets
// them, not only the first one.
func sqliteDSN(path string) string {
	params := url.Values{}
	params.Add("_pragma", "foreign_keys(1)")
	params.Add("_pragma", "busy_timeout(30000)")
	params.Add("_pragma", "journal_mode(WAL)")
	params.Set("_time_format", "sqlite")

	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return "file:" + path + sep + params.Encode()
}

func (db *DB) Close() error {
	return db.root.Close()
}

// RunInTx runs fn inside a transaction. Nested calls reuse the outer one.
func (db *DB) RunInTx(ctx context.Context, fn func(txDB *DB) error) error {
	if db.inTx {
		return fn(db)
	}

	tx, err := db.root.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	txDB := &DB{
		dbOps: tx,
		root:  db.root,
		inTx:  true,
	}

	if err := fn(txDB); err != nil {
		return err
	}
	return tx.Commit()
}

// now is the timestamp stamped on updates. Stored times are always UTC so
// text ordering in SQLite matches chronological ordering.
func now() time.Time {
	return time.Now().UTC()
}

func updatePartial(ctx context.Context, db *DB, table Table, id int64, updates map[string]interface{}, allowedColumns map[string]bool) error {
	if len(updates) == 0 {
		return nil
	}

	setClauses := make([]string, 0, len(updates))
	args := make([]interface{}, 0, len(updates)+2)

	for col, val := range updates {
		if !allowedColumns[col] {
			return fmt.Errorf("invalid column name: %s", col)
		}
		setClauses = append(setClauses, col+" = ?")
		args = append(args, val)
	}

	args = append(args, now(), id)

	query := fmt.Sprintf("UPDATE %s SET %s, updated_at = ? WHERE id = ?", table, strings.Join(setClauses, ", "))

	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", table, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%s with id %d: %w", table, id, domain.ErrNotFound)
	}
	return nil
}

func insertReturningID(ctx context.Context, db *DB, query string, arg interface{}) (int64, error) {
	res, err := db.NamedExecContext(ctx, query, arg)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// getOne runs a single-row query and maps sql.ErrNoRows to (nil, nil).
func getOne[T any](ctx context.Context, db *DB, query string, args ...interface{}) (*T, error) {
	var v T
	err := db.GetContext(ctx, &v, query, args...)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}
