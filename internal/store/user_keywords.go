package store

import (
	"context"
	"fmt"

	"github.com/cesargomez89/jobtracker/internal/domain"
)

const userKeywordColumns = `id, keyword, created_at, updated_at`

// CreateUserKeyword inserts the keyword or reuses an existing row with the
// same text. k.ID is set either way.
func (db *DB) CreateUserKeyword(ctx context.Context, k *domain.UserKeyword) error {
	k.Normalize()
	k.CreatedAt = k.CreatedAt.UTC()
	k.UpdatedAt = k.UpdatedAt.UTC()

	query := `INSERT INTO user_keywords (keyword, created_at, updated_at)
		VALUES (:keyword, :created_at, :updated_at)
		ON CONFLICT(keyword) DO NOTHING`

	res, err := db.NamedExecContext(ctx, query, k)
	if err != nil {
		return fmt.Errorf("failed to create user keyword: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		var id int64
		if err := db.GetContext(ctx, &id, `SELECT id FROM user_keywords WHERE keyword = ?`, k.Keyword); err != nil {
			return fmt.Errorf("failed to look up existing user keyword: %w", err)
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

func (db *DB) GetUserKeyword(ctx context.Context, id int64) (*domain.UserKeyword, error) {
	return getOne[domain.UserKeyword](ctx, db, `SELECT `+userKeywordColumns+` FROM user_keywords WHERE id = ?`, id)
}

// ListUserKeywords returns user keywords alphabetically.
func (db *DB) ListUserKeywords(ctx context.Context) ([]*domain.UserKeyword, error) {
	var keywords []*domain.UserKeyword
	err := db.SelectContext(ctx, &keywords, `SELECT `+userKeywordColumns+` FROM user_keywords ORDER BY keyword`)
	return keywords, err
}

func (db *DB) ListUserKeywordsRaw(ctx context.Context) ([]*domain.UserKeyword, error) {
	var keywords []*domain.UserKeyword
	err := db.SelectContext(ctx, &keywords, `SELECT `+userKeywordColumns+` FROM user_keywords ORDER BY id`)
	return keywords, err
}

func (db *DB) UpdateUserKeyword(ctx context.Context, id int64, keyword string) error {
	return updatePartial(ctx, db, TableUserKeywords, id,
		map[string]interface{}{"keyword": domain.NormalizeKeyword(keyword)},
		map[string]bool{"keyword": true})
}

func (db *DB) DeleteUserKeyword(ctx context.Context, id int64) error {
	_, err := db.ExecContext(ctx, `DELETE FROM user_keywords WHERE id = ?`, id)
	return err
}
