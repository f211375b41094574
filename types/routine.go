package types

import "time"

// RoutineItem is one scheduled exercise entry in a user's routine,
// tracking initial vs. current weight/reps/sets and a weekly placement.
// It belongs to exactly one user and references exactly one catalog
// exercise. Only foreign keys are carried, never the owning user object,
// which keeps serialized items flat.
type RoutineItem struct {
	ID int `json:"id" db:"id"`

	// UserID is the owning user. It is always taken from the session of
	// the creating request, never from a client payload.
	UserID int `json:"user_id" db:"user_id"`

	// ExerciseID references the catalog exercise this entry schedules.
	ExerciseID int `json:"exercise_id" db:"exercise_id"`

	InitialWeight float64 `json:"initial_weight" db:"initial_weight"`
	CurrentWeight float64 `json:"current_weight" db:"current_weight"`
	InitialReps   int     `json:"initial_reps" db:"initial_reps"`
	CurrentReps   int     `json:"current_reps" db:"current_reps"`
	InitialSets   int     `json:"initial_sets" db:"initial_sets"`
	CurrentSets   int     `json:"current_sets" db:"current_sets"`

	// Priority orders items within a day, lowest first.
	Priority int `json:"priority" db:"priority"`

	// DayOfTheWeek places the item in the week, 1 (Monday) through 7.
	DayOfTheWeek int `json:"day_of_the_week" db:"day_of_the_week"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
