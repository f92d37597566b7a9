package db_models

import "github.com/google/uuid"

type SessionType string

const (
	SessionPush SessionType = "push"
	SessionPull SessionType = "pull"
	SessionLegs SessionType = "legs"
)

type Session struct {
	BaseModel
	UserID          uuid.UUID   `gorm:"index"`
	Date            string      `gorm:"size:10;index"` // YYYY-MM-DD
	Type            SessionType `gorm:"size:8"`
	DurationMinutes int32
	Bodyweight      *float64
	Notes           *string
	ProgramVersion  *int32

	Exercises []SessionExercise `gorm:"foreignKey:SessionID"`
	Account   Account           `gorm:"foreignKey:UserID"`
}

type SessionExercise struct {
	BaseModel
	SessionID uuid.UUID `gorm:"index"`
	Name      string
	Order     int32 `gorm:"column:exercise_order"`

	Sets []SetEntry `gorm:"foreignKey:ExerciseID"`
}

type SetEntry struct {
	BaseModel
	ExerciseID uuid.UUID `gorm:"index"`
	SetNumber  int32
	Weight     float64
	Reps       int32
	// Reps in reserve, self-reported. Nil when not recorded.
	RIR  *int32
	IsPR bool
}
