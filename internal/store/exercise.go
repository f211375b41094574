package store

import (
	"context"
	"database/sql"

	"github.com/routinelog/apiserver/types"
)

// ExerciseRepository reads the exercise catalog. The catalog is seeded by
// migration and the API never mutates it.
type ExerciseRepository struct {
	db *sql.DB
}

func NewExerciseRepository(db *sql.DB) *ExerciseRepository {
	return &ExerciseRepository{db: db}
}

func (r *ExerciseRepository) List(ctx context.Context) ([]types.Exercise, error) {
	const query = `
		SELECT id, name, muscle_group, description, created_at
		FROM exercises
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exercises := make([]types.Exercise, 0)
	for rows.Next() {
		var exercise types.Exercise
		if err := rows.Scan(
			&exercise.ID,
			&exercise.Name,
			&exercise.MuscleGroup,
			&exercise.Description,
			&exercise.CreatedAt,
		); err != nil {
			return nil, err
		}
		exercises = append(exercises, exercise)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return exercises, nil
}
