package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/guttosm/bbs-service/internal/domain/model"
	"github.com/guttosm/bbs-service/internal/repository"
)

var (
	// ErrScheduleNotFound is returned when a saved schedule does not exist.
	ErrScheduleNotFound = repository.ErrScheduleNotFound
	// ErrDuplicateReference is returned when the project reference is already taken.
	ErrDuplicateReference = repository.ErrDuplicateReference
)

// SchedulesService stores and retrieves computed schedules.
type SchedulesService interface {
	Save(ctx context.Context, items []model.BarGroupInput, result *model.Schedule, createdBy string) (*repository.SavedSchedule, error)
	Get(ctx context.Context, reference string) (*repository.SavedSchedule, error)
	List(ctx context.Context, project string, limit, skip int) ([]repository.SavedSchedule, error)
}

// SchedulesServiceImpl implements SchedulesService.
type SchedulesServiceImpl struct {
	repo repository.SchedulesRepositoryInterface
}

// NewSchedulesService creates a new saved schedules service.
func NewSchedulesService(repo repository.SchedulesRepositoryInterface) SchedulesService {
	return &SchedulesServiceImpl{repo: repo}
}

// Save stores result under a new reference. A project reference supplied by the caller is kept;
// otherwise a random UUID is assigned.
func (s *SchedulesServiceImpl) Save(ctx context.Context, items []model.BarGroupInput, result *model.Schedule, createdBy string) (*repository.SavedSchedule, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	if result == nil {
		return nil, errors.New("nothing to save")
	}

	ref := strings.TrimSpace(result.Project.Reference)
	if ref == "" {
		ref = uuid.NewString()
	}

	saved := &repository.SavedSchedule{
		Reference: ref,
		Project:   result.Project,
		Code:      result.CodeUsed,
		Items:     append([]model.BarGroupInput(nil), items...),
		Result:    result,
		CreatedBy: createdBy,
	}
	if err := s.repo.Create(ctx, saved); err != nil {
		return nil, err
	}
	return saved, nil
}

func (s *SchedulesServiceImpl) Get(ctx context.Context, reference string) (*repository.SavedSchedule, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.repo.GetByReference(ctx, strings.TrimSpace(reference))
}

// List returns saved schedules newest first, optionally filtered by project name.
func (s *SchedulesServiceImpl) List(ctx context.Context, project string, limit, skip int) ([]repository.SavedSchedule, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.repo.List(ctx, repository.ScheduleQueryOptions{
		Project: strings.TrimSpace(project),
		Limit:   limit,
		Skip:    skip,
	})
}
