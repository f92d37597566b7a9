package response_models

// DashboardStats is the aggregate block behind the dashboard page.
type DashboardStats struct {
	TotalSessions     int      `json:"total_sessions"`
	SessionsThisMonth int      `json:"sessions_this_month"`
	TotalPRs          int      `json:"total_prs"`
	PRsThisMonth      int      `json:"prs_this_month"`
	TotalVolume       int64    `json:"total_volume"`
	Streak            int      `json:"streak"`
	LastSessionDate   string   `json:"last_session_date,omitempty"`
	AvgDuration       *int32   `json:"avg_duration"`
	VolumeThisWeek    int64    `json:"volume_this_week"`
	VolumeLastWeek    int64    `json:"volume_last_week"`
	BestE1RM          *int64   `json:"best_e1rm"`
	BestE1RMExercise  string   `json:"best_e1rm_exercise,omitempty"`
}

type PersonalRecordResponse struct {
	ExerciseName string  `json:"exercise_name"`
	Weight       float64 `json:"weight"`
	Reps         int32   `json:"reps"`
	E1RM         int64   `json:"e1rm"`
	AchievedAt   string  `json:"achieved_at"`
}

type SessionVolumePoint struct {
	Date   string `json:"date"`
	Volume int64  `json:"volume"`
	Type   string `json:"type"`
}

type BodyweightPoint struct {
	Date   string  `json:"date"`
	Weight float64 `json:"weight"`
}

type WeekSessionCount struct {
	WeekStart string `json:"week_start"`
	Count     int    `json:"count"`
}

type VolumeByType struct {
	Push int64 `json:"push"`
	Pull int64 `json:"pull"`
	Legs int64 `json:"legs"`
}
