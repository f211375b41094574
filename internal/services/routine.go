package services

import (
	"context"

	"github.com/routinelog/apiserver/types"
)

// RoutineRepository defines persistence operations for routine items.
type RoutineRepository interface {
	ListByUser(ctx context.Context, userID int) ([]types.RoutineItem, error)
	Get(ctx context.Context, id int) (types.RoutineItem, error)
	Create(ctx context.Context, item types.RoutineItem) (types.RoutineItem, error)
	Update(ctx context.Context, item types.RoutineItem) (types.RoutineItem, error)
	Delete(ctx context.Context, id int) error
}

// RoutineService encapsulates routine item use-cases.
type RoutineService struct {
	repo RoutineRepository
}

func NewRoutineService(repo RoutineRepository) *RoutineService {
	return &RoutineService{repo: repo}
}

func (s *RoutineService) ListByUser(ctx context.Context, userID int) ([]types.RoutineItem, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *RoutineService) Get(ctx context.Context, id int) (types.RoutineItem, error) {
	return s.repo.Get(ctx, id)
}

func (s *RoutineService) Create(ctx context.Context, item types.RoutineItem) (types.RoutineItem, error) {
	return s.repo.Create(ctx, item)
}

func (s *RoutineService) Update(ctx context.Context, item types.RoutineItem) (types.RoutineItem, error) {
	return s.repo.Update(ctx, item)
}

func (s *RoutineService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
