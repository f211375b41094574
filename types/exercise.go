package types

import "time"

// Exercise is one entry in the read-only exercise catalog.
// Routine items reference exercises by id; the reverse relationship is
// deliberately not represented here so a serialized exercise can never
// drag its routines along.
type Exercise struct {
	ID          int       `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	MuscleGroup string    `json:"muscle_group" db:"muscle_group"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
