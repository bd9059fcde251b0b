package app

import (
	"context"
	"time"

	"github.com/cesargomez89/jobtracker/internal/domain"
	"github.com/cesargomez89/jobtracker/internal/logger"
	"github.com/cesargomez89/jobtracker/internal/store"
)

type ActivityService struct {
	Repo   *store.DB
	Logger *logger.Logger
}

func NewActivityService(repo *store.DB, log *logger.Logger) *ActivityService {
	return &ActivityService{Repo: repo, Logger: log}
}

// Create logs an activity against a job. Status fields are dropped unless
// the activity is a status change.
func (s *ActivityService) Create(ctx context.Context, a *domain.Activity) (*domain.Activity, error) {
	if a.Type != domain.ActivityTypeStatusChange {
		a.PreviousStatus = nil
		a.NewStatus = nil
	}
	if err := validateStruct(a); err != nil {
		return nil, err
	}

	ts := time.Now()
	a.CreatedAt = ts
	a.UpdatedAt = ts
	if err := s.Repo.CreateActivity(ctx, a); err != nil {
		return nil, err
	}
	s.Logger.Debug("Activity logged", "activity_id", a.ID, "job_id", a.JobID, "type", a.Type)
	return a, nil
}

// GetByJobID returns the job's history, newest first.
func (s *ActivityService) GetByJobID(ctx context.Context, jobID int64) ([]*domain.Activity, error) {
	return s.Repo.ListActivitiesByJobID(ctx, jobID)
}

func (s *ActivityService) GetAll(ctx context.Context) ([]*domain.Activity, error) {
	return s.Repo.ListActivities(ctx)
}

func (s *ActivityService) Update(ctx context.Context, id int64, p domain.ActivityPatch) error {
	if p.Category != nil {
		if err := validateVar("Category", *p.Category, "required"); err != nil {
			return err
		}
	}
	return s.Repo.UpdateActivity(ctx, id, p)
}

func (s *ActivityService) Delete(ctx context.Context, id int64) error {
	return s.Repo.DeleteActivity(ctx, id)
}

func (s *ActivityService) DeleteByJobID(ctx context.Context, jobID int64) (int64, error) {
	return s.Repo.DeleteActivitiesByJobID(ctx, jobID)
}

func (s *ActivityService) DeleteAll(ctx context.Context) error {
	s.Logger.Debug("Clearing activities")
	return s.Repo.Clear(ctx, store.TableActivities)
}
