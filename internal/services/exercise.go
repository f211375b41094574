package services

import (
	"context"

	"github.com/routinelog/apiserver/types"
)

// ExerciseRepository defines read operations for the exercise catalog.
type ExerciseRepository interface {
	List(ctx context.Context) ([]types.Exercise, error)
}

// ExerciseService encapsulates exercise catalog use-cases.
type ExerciseService struct {
	repo ExerciseRepository
}

func NewExerciseService(repo ExerciseRepository) *ExerciseService {
	return &ExerciseService{repo: repo}
}

func (s *ExerciseService) List(ctx context.Context) ([]types.Exercise, error) {
	return s.repo.List(ctx)
}
