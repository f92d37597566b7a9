package db_models

import "github.com/google/uuid"

type PersonalRecord struct {
	BaseModel
	UserID       uuid.UUID `gorm:"index:idx_pr_user_exercise,unique"`
	ExerciseName string    `gorm:"index:idx_pr_user_exercise,unique"`
	Weight       float64
	Reps         int32
	E1RM         int64 `gorm:"column:e1rm"`
	SessionID    *uuid.UUID
	AchievedAt   string `gorm:"size:10"` // YYYY-MM-DD

	Account Account `gorm:"foreignKey:UserID"`
}
