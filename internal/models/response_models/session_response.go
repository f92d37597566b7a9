package response_models

import "github.com/google/uuid"

type SetResponse struct {
	SetNumber int32   `json:"set_number"`
	Weight    float64 `json:"weight"`
	Reps      int32   `json:"reps"`
	RIR       *int32  `json:"rir"`
	IsPR      bool    `json:"is_pr"`
}

type ExerciseResponse struct {
	Name  string        `json:"name"`
	Order int32         `json:"order"`
	Sets  []SetResponse `json:"sets"`
}

type SessionResponse struct {
	ID              uuid.UUID          `json:"id"`
	Date            string             `json:"date"`
	Type            string             `json:"type"`
	DurationMinutes int32              `json:"duration_minutes"`
	Bodyweight      *float64           `json:"bodyweight"`
	Notes           *string            `json:"notes"`
	ProgramVersion  *int32             `json:"program_version"`
	Exercises       []ExerciseResponse `json:"exercises"`
}

// SessionSavedResponse reports the saved session plus whatever the ledger
// handed out for it, so the client can show the earn badge.
type SessionSavedResponse struct {
	Session      SessionResponse `json:"session"`
	TokensEarned int64           `json:"tokens_earned"`
	EarnLines    []string        `json:"earn_lines"`
}
