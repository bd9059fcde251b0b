package app

import (
	"context"
	"sort"
	"time"

	"github.com/cesargomez89/jobtracker/internal/domain"
	"github.com/cesargomez89/jobtracker/internal/logger"
	"github.com/cesargomez89/jobtracker/internal/store"
)

type KeywordService struct {
	Repo   *store.DB
	Logger *logger.Logger
}

func NewKeywordService(repo *store.DB, log *logger.Logger) *KeywordService {
	return &KeywordService{Repo: repo, Logger: log}
}

// KeywordStat counts how often a keyword appears across jobs.
type KeywordStat struct {
	Keyword    string `json:"keyword"`
	TotalCount int    `json:"totalCount"`
	JobCount   int    `json:"jobCount"`
}

// WeightedKeywordStat adds a score where each occurrence counts the owning
// job's interest level, or 1 when it has none.
type WeightedKeywordStat struct {
	Keyword       string `json:"keyword"`
	TotalCount    int    `json:"totalCount"`
	WeightedScore int    `json:"weightedScore"`
	JobCount      int    `json:"jobCount"`
}

// Create attaches a keyword to a job. Adding a keyword the job already has
// returns the existing record.
func (s *KeywordService) Create(ctx context.Context, jobID int64, keyword string) (*domain.Keyword, error) {
	ts := time.Now()
	k := &domain.Keyword{JobID: jobID, Keyword: keyword, CreatedAt: ts, UpdatedAt: ts}
	k.Normalize()
	if err := validateStruct(k); err != nil {
		return nil, err
	}
	if err := s.Repo.CreateKeyword(ctx, k); err != nil {
		return nil, err
	}
	return k, nil
}

func (s *KeywordService) GetByJobID(ctx context.Context, jobID int64) ([]*domain.Keyword, error) {
	return s.Repo.ListKeywordsByJobID(ctx, jobID)
}

func (s *KeywordService) GetAll(ctx context.Context) ([]*domain.Keyword, error) {
	return s.Repo.ListKeywords(ctx)
}

func (s *KeywordService) FindByJobAndKeyword(ctx context.Context, jobID int64, keyword string) (*domain.Keyword, error) {
	return s.Repo.FindKeyword(ctx, jobID, keyword)
}

func (s *KeywordService) Update(ctx context.Context, id int64, keyword string) error {
	if err := validateVar("Keyword", domain.NormalizeKeyword(keyword), "required"); err != nil {
		return err
	}
	return s.Repo.UpdateKeyword(ctx, id, keyword)
}

func (s *KeywordService) Delete(ctx context.Context, id int64) error {
	return s.Repo.DeleteKeyword(ctx, id)
}

func (s *KeywordService) DeleteByJobID(ctx context.Context, jobID int64) (int64, error) {
	return s.Repo.DeleteKeywordsByJobID(ctx, jobID)
}

func (s *KeywordService) DeleteAll(ctx context.Context) error {
	s.Logger.Debug("Clearing keywords")
	return s.Repo.Clear(ctx, store.TableKeywords)
}

type keywordAccumulator struct {
	total    int
	weighted int
	jobs     map[int64]struct{}
}

func (s *KeywordService) accumulate(ctx context.Context) (map[string]*keywordAccumulator, error) {
	rows, err := s.Repo.ListKeywordOccurrences(ctx)
	if err != nil {
		return nil, err
	}

	acc := make(map[string]*keywordAccumulator)
	for _, r := range rows {
		a, ok := acc[r.Keyword]
		if !ok {
			a = &keywordAccumulator{jobs: make(map[int64]struct{})}
			acc[r.Keyword] = a
		}
		weight := 1
		if r.InterestLevel != nil && *r.InterestLevel > 0 {
			weight = *r.InterestLevel
		}
		a.total++
		a.weighted += weight
		a.jobs[r.JobID] = struct{}{}
	}
	return acc, nil
}

// Stats returns keyword frequencies, most frequent first. Ties are broken
// alphabetically.
func (s *KeywordService) Stats(ctx context.Context) ([]KeywordStat, error) {
	acc, err := s.accumulate(ctx)
	if err != nil {
		return nil, err
	}

	stats := make([]KeywordStat, 0, len(acc))
	for kw, a := range acc {
		stats = append(stats, KeywordStat{Keyword: kw, TotalCount: a.total, JobCount: len(a.jobs)})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].TotalCount != stats[j].TotalCount {
			return stats[i].TotalCount > stats[j].TotalCount
		}
		return stats[i].Keyword < stats[j].Keyword
	})
	return stats, nil
}

// WeightedStats returns keyword scores, highest score first.
func (s *KeywordService) WeightedStats(ctx context.Context) ([]WeightedKeywordStat, error) {
	acc, err := s.accumulate(ctx)
	if err != nil {
		return nil, err
	}

	stats := make([]WeightedKeywordStat, 0, len(acc))
	for kw, a := range acc {
		stats = append(stats, WeightedKeywordStat{
			Keyword:       kw,
			TotalCount:    a.total,
			WeightedScore: a.weighted,
			JobCount:      len(a.jobs),
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].WeightedScore != stats[j].WeightedScore {
			return stats[i].WeightedScore > stats[j].WeightedScore
		}
		return stats[i].Keyword < stats[j].Keyword
	})
	return stats, nil
}
