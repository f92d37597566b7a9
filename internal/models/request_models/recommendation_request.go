package request_models

// HistorySet mirrors one logged set inside a history point.
type HistorySet struct {
	Weight float64 `json:"weight"`
	Reps   int32   `json:"reps"`
	RIR    *int32  `json:"rir"`
	IsPR   bool    `json:"isPR"`
}

// HistoryPoint is one session's showing of the requested exercise.
type HistoryPoint struct {
	Date        string       `json:"date"` // YYYY-MM-DD
	BestWeight  float64      `json:"bestWeight"`
	TotalVolume int64        `json:"totalVolume"`
	BestE1RM    int64        `json:"bestE1RM"`
	Sets        []HistorySet `json:"sets"`
}

// RecommendationRequest asks the coach for a next-session target. History is
// optional; when omitted the server derives it from the caller's session log.
type RecommendationRequest struct {
	ExerciseName string         `json:"exercise_name" binding:"required"`
	History      []HistoryPoint `json:"history"`
	Unit         string         `json:"unit"` // "kg" | "lbs"
}
