package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Program is the user's current training template: ordered exercise lists
// keyed by day type (push/pull/legs), stored as jsonb.
type Program struct {
	BaseModel
	UserID    uuid.UUID      `gorm:"uniqueIndex"`
	Exercises datatypes.JSON `gorm:"type:jsonb;default:'{}'"`

	Account Account `gorm:"foreignKey:UserID"`
}

// ProgramVersion is an append-only snapshot taken every time the template
// is edited. Sessions stamp the version they were logged under.
type ProgramVersion struct {
	BaseModel
	UserID    uuid.UUID `gorm:"index:idx_program_version,unique"`
	Version   int32     `gorm:"index:idx_program_version,unique"`
	SavedAt   string    `gorm:"size:10"` // YYYY-MM-DD
	Exercises datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
}
