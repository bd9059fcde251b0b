package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cesargomez89/jobtracker/internal/domain"
	"github.com/cesargomez89/jobtracker/internal/logger"
	"github.com/cesargomez89/jobtracker/internal/store"
)

// CategoryStatusChange is the activity category written by UpdateStatus.
const CategoryStatusChange = "status_change"

type JobService struct {
	Repo   *store.DB
	Logger *logger.Logger
}

func NewJobService(repo *store.DB, log *logger.Logger) *JobService {
	return &JobService{Repo: repo, Logger: log}
}

// Create stores a new job. It starts as "not applied" and not archived
// unless the caller set a status.
func (s *JobService) Create(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	job.Title = strings.TrimSpace(job.Title)
	if job.Status == "" {
		job.Status = domain.JobStatusNotApplied
	}
	job.Archived = false
	if err := validateStruct(job); err != nil {
		return nil, err
	}

	employer, err := s.Repo.GetEmployer(ctx, job.EmployerID)
	if err != nil {
		return nil, fmt.Errorf("failed to check employer: %w", err)
	}
	if employer == nil {
		return nil, fmt.Errorf("employer %d: %w", job.EmployerID, domain.ErrNotFound)
	}

	ts := time.Now()
	job.CreatedAt = ts
	job.UpdatedAt = ts
	if err := s.Repo.CreateJob(ctx, job); err != nil {
		return nil, err
	}
	s.Logger.Info("Job created", "job_id", job.ID, "employer_id", job.EmployerID, "title", job.Title)
	return job, nil
}

// GetAll returns non-archived jobs, newest first.
func (s *JobService) GetAll(ctx context.Context) ([]*domain.Job, error) {
	return s.Repo.ListJobs(ctx)
}

func (s *JobService) GetAllIncludingArchived(ctx context.Context) ([]*domain.Job, error) {
	return s.Repo.ListAllJobs(ctx)
}

func (s *JobService) GetArchived(ctx context.Context) ([]*domain.Job, error) {
	return s.Repo.ListArchivedJobs(ctx)
}

func (s *JobService) GetByEmployerID(ctx context.Context, employerID int64) ([]*domain.Job, error) {
	return s.Repo.ListJobsByEmployerID(ctx, employerID)
}

func (s *JobService) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	job, err := s.Repo.GetJob(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	if job == nil {
		return nil, fmt.Errorf("job %d: %w", id, domain.ErrNotFound)
	}
	return job, nil
}

func (s *JobService) FindByTitleAndEmployer(ctx context.Context, title string, employerID int64) (*domain.Job, error) {
	return s.Repo.FindJobByTitleAndEmployer(ctx, title, employerID)
}

func (s *JobService) Update(ctx context.Context, id int64, p domain.JobPatch) error {
	if p.Title != nil {
		trimmed := strings.TrimSpace(*p.Title)
		p.Title = &trimmed
		if err := validateVar("Title", trimmed, "required"); err != nil {
			return err
		}
	}
	if p.InterestLevel != nil {
		if err := validateVar("InterestLevel", *p.InterestLevel, "min=1,max=10"); err != nil {
			return err
		}
	}
	if p.Status != nil {
		if err := validateVar("Status", string(*p.Status), "jobstatus"); err != nil {
			return err
		}
	}
	return s.Repo.UpdateJob(ctx, id, p)
}

func (s *JobService) ToggleArchive(ctx context.Context, id int64) error {
	job, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	archived := !job.Archived
	return s.Repo.UpdateJob(ctx, id, domain.JobPatch{Archived: &archived})
}

func (s *JobService) ToggleFavorite(ctx context.Context, id int64) error {
	job, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	favorited := !job.Favorited
	return s.Repo.UpdateJob(ctx, id, domain.JobPatch{Favorited: &favorited})
}

// UpdateStatus changes the job status and records a status_change activity
// carrying the previous and new status. Both writes share one transaction.
// Setting the current status again is a no-op.
func (s *JobService) UpdateStatus(ctx context.Context, id int64, status domain.JobStatus) error {
	if _, err := domain.ParseJobStatus(string(status)); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	return s.Repo.RunInTx(ctx, func(txDB *store.DB) error {
		job, err := txDB.GetJob(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get job: %w", err)
		}
		if job == nil {
			return fmt.Errorf("job %d: %w", id, domain.ErrNotFound)
		}
		if job.Status == status {
			return nil
		}

		previous := job.Status
		if err := txDB.UpdateJob(ctx, id, domain.JobPatch{Status: &status}); err != nil {
			return err
		}

		ts := time.Now()
		activity := &domain.Activity{
			JobID:          id,
			Type:           domain.ActivityTypeStatusChange,
			Category:       CategoryStatusChange,
			PreviousStatus: &previous,
			NewStatus:      &status,
			CreatedAt:      ts,
			UpdatedAt:      ts,
		}
		if err := txDB.CreateActivity(ctx, activity); err != nil {
			return err
		}

		s.Logger.Info("Job status changed", "job_id", id, "from", previous, "to", status)
		return nil
	})
}

// Delete removes the job with its keywords and activities.
func (s *JobService) Delete(ctx context.Context, id int64) error {
	if err := s.Repo.DeleteJob(ctx, id); err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	s.Logger.Info("Job deleted", "job_id", id)
	return nil
}

// GetJobsWithEmployers returns the non-archived jobs joined with their
// employer. Jobs whose employer is missing are left out.
func (s *JobService) GetJobsWithEmployers(ctx context.Context) ([]*domain.JobWithEmployer, error) {
	jobs, err := s.Repo.ListJobs(ctx)
	if err != nil {
		return nil, err
	}
	employers, err := s.Repo.ListEmployersRaw(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]*domain.Employer, len(employers))
	for _, e := range employers {
		byID[e.ID] = e
	}

	result := make([]*domain.JobWithEmployer, 0, len(jobs))
	for _, job := range jobs {
		e, ok := byID[job.EmployerID]
		if !ok {
			continue
		}
		result = append(result, &domain.JobWithEmployer{Job: *job, Employer: *e})
	}
	return result, nil
}

func (s *JobService) DeleteAll(ctx context.Context) error {
	s.Logger.Debug("Clearing jobs")
	return s.Repo.Clear(ctx, store.TableJobs)
}
