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

type EmployerService struct {
	Repo   *store.DB
	Logger *logger.Logger
}

func NewEmployerService(repo *store.DB, log *logger.Logger) *EmployerService {
	return &EmployerService{Repo: repo, Logger: log}
}

func (s *EmployerService) Create(ctx context.Context, e *domain.Employer) (*domain.Employer, error) {
	e.Normalize()
	if err := validateStruct(e); err != nil {
		return nil, err
	}

	ts := time.Now()
	e.CreatedAt = ts
	e.UpdatedAt = ts
	if err := s.Repo.CreateEmployer(ctx, e); err != nil {
		return nil, err
	}
	s.Logger.Info("Employer created", "employer_id", e.ID, "name", e.Name)
	return e, nil
}

// GetAll returns employers ordered by name.
func (s *EmployerService) GetAll(ctx context.Context) ([]*domain.Employer, error) {
	return s.Repo.ListEmployers(ctx)
}

func (s *EmployerService) GetByID(ctx context.Context, id int64) (*domain.Employer, error) {
	e, err := s.Repo.GetEmployer(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get employer: %w", err)
	}
	if e == nil {
		return nil, fmt.Errorf("employer %d: %w", id, domain.ErrNotFound)
	}
	return e, nil
}

func (s *EmployerService) FindByName(ctx context.Context, name string) (*domain.Employer, error) {
	return s.Repo.FindEmployerByName(ctx, strings.TrimSpace(name))
}

func (s *EmployerService) Update(ctx context.Context, id int64, p domain.EmployerPatch) error {
	if p.Name != nil {
		trimmed := strings.TrimSpace(*p.Name)
		p.Name = &trimmed
		if err := validateVar("Name", trimmed, "required"); err != nil {
			return err
		}
	}
	if p.Industry != nil {
		if err := validateVar("Industry", string(*p.Industry), "industry"); err != nil {
			return err
		}
	}
	return s.Repo.UpdateEmployer(ctx, id, p)
}

func (s *EmployerService) ToggleFavorite(ctx context.Context, id int64) error {
	e, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	favorited := !e.Favorited
	return s.Repo.UpdateEmployer(ctx, id, domain.EmployerPatch{Favorited: &favorited})
}

// Delete removes the employer together with its jobs and their keywords and
// activities.
func (s *EmployerService) Delete(ctx context.Context, id int64) error {
	if err := s.Repo.DeleteEmployer(ctx, id); err != nil {
		return fmt.Errorf("failed to delete employer: %w", err)
	}
	s.Logger.Info("Employer deleted", "employer_id", id)
	return nil
}

func (s *EmployerService) DeleteAll(ctx context.Context) error {
	s.Logger.Debug("Clearing employers")
	return s.Repo.Clear(ctx, store.TableEmployers)
}
