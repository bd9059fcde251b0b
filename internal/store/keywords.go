package store

import (
	"context"
	"fmt"

	"github.com/cesargomez89/jobtracker/internal/domain"
)

const keywordColumns = `id, job_id, keyword, created_at, updated_at`

// CreateKeyword inserts the keyword unless the job already has it, in which
// case k.ID is set to the existing row and nothing is written.
func (db *DB) CreateKeyword(ctx context.Context, k *domain.Keyword) error {
	k.Normalize()
	k.CreatedAt = k.CreatedAt.UTC()
	k.UpdatedAt = k.UpdatedAt.UTC()

	query := `INSERT INTO keywords (job_id, keyword, created_at, updated_at)
		VALUES (:job_id, :keyword, :created_at, :updated_at)
		ON CONFLICT(job_id, keyword) DO NOTHING`

	res, err := db.NamedExecContext(ctx, query, k)
	if err != nil {
		return fmt.Errorf("failed to create keyword: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		var id int64
		if err := db.GetContext(ctx, &id, `SELECT id FROM keywords WHERE job_id = ? AND keyword = ?`, k.JobID, k.Keyword); err != nil {
			return fmt.Errorf("failed to look up existing keyword: %w", err)
		}
		k.ID = id
		return nil
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	k.ID = id
	return nil
}

func (db *DB) GetKeyword(ctx context.Context, id int64) (*domain.Keyword, error) {
	return getOne[domain.Keyword](ctx, db, `SELECT `+keywordColumns+` FROM keywords WHERE id = ?`, id)
}

func (db *DB) FindKeyword(ctx context.Context, jobID int64, keyword string) (*domain.Keyword, error) {
	return getOne[domain.Keyword](ctx, db,
		`SELECT `+keywordColumns+` FROM keywords WHERE job_id = ? AND keyword = ?`, jobID, domain.NormalizeKeyword(keyword))
}

func (db *DB) ListKeywords(ctx context.Context) ([]*domain.Keyword, error) {
	var keywords []*domain.Keyword
	err := db.SelectContext(ctx, &keywords, `SELECT `+keywordColumns+` FROM keywords ORDER BY id`)
	return keywords, err
}

func (db *DB) ListKeywordsByJobID(ctx context.Context, jobID int64) ([]*domain.Keyword, error) {
	var keywords []*domain.Keyword
	err := db.SelectContext(ctx, &keywords, `SELECT `+keywordColumns+` FROM keywords WHERE job_id = ? ORDER BY id`, jobID)
	return keywords, err
}

// UpdateKeyword renames a keyword. A rename onto a keyword the job already
// has fails on the unique index.
func (db *DB) UpdateKeyword(ctx context.Context, id int64, keyword string) error {
	return updatePartial(ctx, db, TableKeywords, id,
		map[string]interface{}{"keyword": domain.NormalizeKeyword(keyword)},
		map[string]bool{"keyword": true})
}

func (db *DB) DeleteKeyword(ctx context.Context, id int64) error {
	_, err := db.ExecContext(ctx, `DELETE FROM keywords WHERE id = ?`, id)
	return err
}

// DeleteKeywordsByJobID returns the number of rows removed.
func (db *DB) DeleteKeywordsByJobID(ctx context.Context, jobID int64) (int64, error) {
	res, err := db.ExecContext(ctx, `DELETE FROM keywords WHERE job_id = ?`, jobID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// KeywordJobRow is one keyword occurrence joined with the owning job's
// interest level.
type KeywordJobRow struct {
	Keyword       string `db:"keyword"`
	JobID         int64  `db:"job_id"`
	InterestLevel *int   `db:"interest_level"`
}

func (db *DB) ListKeywordOccurrences(ctx context.Context) ([]KeywordJobRow, error) {
	var rows []KeywordJobRow
	err := db.SelectContext(ctx, &rows, `SELECT k.keyword, k.job_id, j.interest_level
		FROM keywords k
		LEFT JOIN jobs j ON j.id = k.job_id
		ORDER BY k.id`)
	return rows, err
}
