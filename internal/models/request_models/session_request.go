package request_models

type SetInput struct {
	Weight float64 `json:"weight"`
	Reps   int32   `json:"reps"`
	RIR    *int32  `json:"rir"`
}

type ExerciseInput struct {
	Name  string     `json:"name" binding:"required"`
	Order int32      `json:"order"`
	Sets  []SetInput `json:"sets"`
}

type CreateSessionRequest struct {
	Date            string          `json:"date" binding:"required"` // YYYY-MM-DD
	Type            string          `json:"type" binding:"required,oneof=push pull legs"`
	DurationMinutes int32           `json:"duration_minutes"`
	Bodyweight      *float64        `json:"bodyweight"`
	Notes           *string         `json:"notes"`
	Exercises       []ExerciseInput `json:"exercises" binding:"required"`
}

type UpdateSessionRequest struct {
	Date            *string  `json:"date"`
	Type            *string  `json:"type"`
	DurationMinutes *int32   `json:"duration_minutes"`
	Bodyweight      *float64 `json:"bodyweight"`
	Notes           *string  `json:"notes"`
}
