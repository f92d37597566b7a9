package request_models

type ProgramExercise struct {
	Name  string `json:"name" binding:"required"`
	Order int32  `json:"order"`
}

// SaveProgramRequest replaces the user's template and records a new version.
type SaveProgramRequest struct {
	Push []ProgramExercise `json:"push"`
	Pull []ProgramExercise `json:"pull"`
	Legs []ProgramExercise `json:"legs"`
}
