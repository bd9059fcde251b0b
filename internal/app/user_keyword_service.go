package app

import (
	"context"
	"time"

	"github.com/cesargomez89/jobtracker/internal/domain"
	"github.com/cesargomez89/jobtracker/internal/logger"
	"github.com/cesargomez89/jobtracker/internal/store"
)

type UserKeywordService struct {
	Repo   *store.DB
	Logger *logger.Logger
}

func NewUserKeywordService(repo *store.DB, log *logger.Logger) *UserKeywordService {
	return &UserKeywordService{Repo: repo, Logger: log}
}

func (s *UserKeywordService) Create(ctx context.Context, keyword string) (*domain.UserKeyword, error) {
	ts := time.Now()
	k := &domain.UserKeyword{Keyword: keyword, CreatedAt: ts, UpdatedAt: ts}
	k.Normalize()
	if err := validateStruct(k); err != nil {
		return nil, err
	}
	if err := s.Repo.CreateUserKeyword(ctx, k); err != nil {
		return nil, err
	}
	return k, nil
}

func (s *UserKeywordService) GetAll(ctx context.Context) ([]*domain.UserKeyword, error) {
	return s.Repo.ListUserKeywords(ctx)
}

func (s *UserKeywordService) Update(ctx context.Context, id int64, keyword string) error {
	if err := validateVar("Keyword", domain.NormalizeKeyword(keyword), "required"); err != nil {
		return err
	}
	return s.Repo.UpdateUserKeyword(ctx, id, keyword)
}

func (s *UserKeywordService) Delete(ctx context.Context, id int64) error {
	return s.Repo.DeleteUserKeyword(ctx, id)
}

func (s *UserKeywordService) DeleteAll(ctx context.Context) error {
	s.Logger.Debug("Clearing user keywords")
	return s.Repo.Clear(ctx, store.TableUserKeywords)
}
