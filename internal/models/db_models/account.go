package db_models

type Unit string

const (
	UnitKg  Unit = "kg"
	UnitLbs Unit = "lbs"
)

type Account struct {
	BaseModel
	Name         string
	Username     string `gorm:"uniqueIndex"`
	Email        string `gorm:"unique"`
	PasswordHash string
	Emoji        string `gorm:"size:8"`
	Unit         Unit   `gorm:"size:3;default:kg"`

	// Cached net of the token ledger. Mutated only through the token
	// repositories, never from handler code.
	TokenBalance int64 `gorm:"default:0"`

	Sessions []Session `gorm:"foreignKey:UserID"`
}
