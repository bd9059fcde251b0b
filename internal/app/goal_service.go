package app

import (
	"context"
	"time"

	"github.com/cesargomez89/jobtracker/internal/domain"
	"github.com/cesargomez89/jobtracker/internal/logger"
	"github.com/cesargomez89/jobtracker/internal/store"
)

type GoalService struct {
	Repo   *store.DB
	Logger *logger.Logger
}

func NewGoalService(repo *store.DB, log *logger.Logger) *GoalService {
	return &GoalService{Repo: repo, Logger: log}
}

// Create inserts a goal. A second goal of the same type fails on the unique
// index; use Upsert to replace.
func (s *GoalService) Create(ctx context.Context, goalType domain.GoalType, target, frequencyDays int) (*domain.Goal, error) {
	g := s.newGoal(goalType, target, frequencyDays)
	if err := validateStruct(g); err != nil {
		return nil, err
	}
	if err := s.Repo.CreateGoal(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// Upsert creates the goal for its type or overwrites the existing one.
func (s *GoalService) Upsert(ctx context.Context, goalType domain.GoalType, target, frequencyDays int) (*domain.Goal, error) {
	g := s.newGoal(goalType, target, frequencyDays)
	if err := validateStruct(g); err != nil {
		return nil, err
	}
	if err := s.Repo.UpsertGoal(ctx, g); err != nil {
		return nil, err
	}
	s.Logger.Info("Goal saved", "type", goalType, "target", target, "frequency_days", frequencyDays)
	return g, nil
}

func (s *GoalService) newGoal(goalType domain.GoalType, target, frequencyDays int) *domain.Goal {
	ts := time.Now()
	return &domain.Goal{
		Type:          goalType,
		TargetNumber:  target,
		FrequencyDays: frequencyDays,
		CreatedAt:     ts,
		UpdatedAt:     ts,
	}
}

func (s *GoalService) GetAll(ctx context.Context) ([]*domain.Goal, error) {
	return s.Repo.ListGoals(ctx)
}

func (s *GoalService) GetByType(ctx context.Context, goalType domain.GoalType) (*domain.Goal, error) {
	return s.Repo.GetGoalByType(ctx, goalType)
}

func (s *GoalService) Update(ctx context.Context, id int64, p domain.GoalPatch) error {
	if p.TargetNumber != nil {
		if err := validateVar("TargetNumber", *p.TargetNumber, "gte=0"); err != nil {
			return err
		}
	}
	if p.FrequencyDays != nil {
		if err := validateVar("FrequencyDays", *p.FrequencyDays, "gte=1"); err != nil {
			return err
		}
	}
	return s.Repo.UpdateGoal(ctx, id, p)
}

func (s *GoalService) Delete(ctx context.Context, id int64) error {
	return s.Repo.DeleteGoal(ctx, id)
}

func (s *GoalService) DeleteAll(ctx context.Context) error {
	s.Logger.Debug("Clearing goals")
	return s.Repo.Clear(ctx, store.TableGoals)
}
