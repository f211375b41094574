package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/routinelog/apiserver/types"
)

// RoutineRepository handles persistence for routine items.
type RoutineRepository struct {
	db *sql.DB
}

func NewRoutineRepository(db *sql.DB) *RoutineRepository {
	return &RoutineRepository{db: db}
}

const routineColumns = `id, user_id, exercise_id,
		initial_weight, current_weight,
		initial_reps, current_reps,
		initial_sets, current_sets,
		priority, day_of_the_week,
		created_at, updated_at`

func scanRoutineItem(row interface{ Scan(...any) error }) (types.RoutineItem, error) {
	var item types.RoutineItem
	err := row.Scan(
		&item.ID,
		&item.UserID,
		&item.ExerciseID,
		&item.InitialWeight,
		&item.CurrentWeight,
		&item.InitialReps,
		&item.CurrentReps,
		&item.InitialSets,
		&item.CurrentSets,
		&item.Priority,
		&item.DayOfTheWeek,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	return item, err
}

func (r *RoutineRepository) ListByUser(ctx context.Context, userID int) ([]types.RoutineItem, error) {
	const query = `
		SELECT ` + routineColumns + `
		FROM routine_items
		WHERE user_id = $1
		ORDER BY day_of_the_week, priority, id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]types.RoutineItem, 0)
	for rows.Next() {
		item, err := scanRoutineItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *RoutineRepository) Get(ctx context.Context, id int) (types.RoutineItem, error) {
	const query = `
		SELECT ` + routineColumns + `
		FROM routine_items
		WHERE id = $1`
	item, err := scanRoutineItem(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.RoutineItem{}, ErrNotFound
		}
		return types.RoutineItem{}, err
	}
	return item, nil
}

func (r *RoutineRepository) Create(ctx context.Context, item types.RoutineItem) (types.RoutineItem, error) {
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return types.RoutineItem{}, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const query = `
		INSERT INTO routine_items (
			user_id, exercise_id,
			initial_weight, current_weight,
			initial_reps, current_reps,
			initial_sets, current_sets,
			priority, day_of_the_week,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`
	if err := tx.QueryRowContext(
		ctx,
		query,
		item.UserID,
		item.ExerciseID,
		item.InitialWeight,
		item.CurrentWeight,
		item.InitialReps,
		item.CurrentReps,
		item.InitialSets,
		item.CurrentSets,
		item.Priority,
		item.DayOfTheWeek,
		item.CreatedAt,
		item.UpdatedAt,
	).Scan(&item.ID); err != nil {
		return types.RoutineItem{}, err
	}

	if err := tx.Commit(); err != nil {
		return types.RoutineItem{}, err
	}
	return item, nil
}

func (r *RoutineRepository) Update(ctx context.Context, item types.RoutineItem) (types.RoutineItem, error) {
	item.UpdatedAt = time.Now()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return types.RoutineItem{}, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const query = `
		UPDATE routine_items
		SET exercise_id = $1,
			initial_weight = $2,
			current_weight = $3,
			initial_reps = $4,
			current_reps = $5,
			initial_sets = $6,
			current_sets = $7,
			priority = $8,
			day_of_the_week = $9,
			updated_at = $10
		WHERE id = $11`
	result, err := tx.ExecContext(
		ctx,
		query,
		item.ExerciseID,
		item.InitialWeight,
		item.CurrentWeight,
		item.InitialReps,
		item.CurrentReps,
		item.InitialSets,
		item.CurrentSets,
		item.Priority,
		item.DayOfTheWeek,
		item.UpdatedAt,
		item.ID,
	)
	if err != nil {
		return types.RoutineItem{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.RoutineItem{}, err
	}
	if affected == 0 {
		return types.RoutineItem{}, ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return types.RoutineItem{}, err
	}
	return item, nil
}

func (r *RoutineRepository) Delete(ctx context.Context, id int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const query = `DELETE FROM routine_items WHERE id = $1`
	result, err := tx.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}
