package response_models

// Recommendation is the coach's structured answer. The shape is fixed; a
// provider response that does not fit it in full is rejected unparsed.
type Recommendation struct {
	Recommendation string  `json:"recommendation"`
	Reasoning      string  `json:"reasoning"`
	TargetSets     int     `json:"target_sets"`
	TargetReps     int     `json:"target_reps"`
	TargetWeight   float64 `json:"target_weight"`
	Confidence     string  `json:"confidence"` // high | medium | low
	Trend          string  `json:"trend"`      // progressing | stalling | regressing | insufficient_data
	Warning        *string `json:"warning"`
}

type RecommendationResponse struct {
	Result      Recommendation `json:"result"`
	Cached      bool           `json:"cached"`
	TokensSpent int64          `json:"tokens_spent,omitempty"`
}
