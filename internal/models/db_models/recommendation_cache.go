package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// RecommendationCache holds coach results already paid for. Rows are
// append-only; freshness is decided at read time, stale rows are ignored.
type RecommendationCache struct {
	BaseModel
	CacheKey string    `gorm:"index"`
	UserID   uuid.UUID `gorm:"index"`
	Result   datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
}
