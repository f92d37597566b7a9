package response_models

type ProgramExerciseResponse struct {
	Name  string `json:"name"`
	Order int32  `json:"order"`
}

type ProgramResponse struct {
	Push    []ProgramExerciseResponse `json:"push"`
	Pull    []ProgramExerciseResponse `json:"pull"`
	Legs    []ProgramExerciseResponse `json:"legs"`
	Version int32                     `json:"version"`
}

type ProgramVersionResponse struct {
	Version int32  `json:"version"`
	SavedAt string `json:"saved_at"`
}
