package db_models

import "github.com/google/uuid"

type FriendStatus string

const (
	FriendPending  FriendStatus = "pending"
	FriendAccepted FriendStatus = "accepted"
)

type FriendConnection struct {
	BaseModel
	RequesterID uuid.UUID    `gorm:"index"`
	AddresseeID uuid.UUID    `gorm:"index"`
	Status      FriendStatus `gorm:"size:16;index"`

	Requester Account `gorm:"foreignKey:RequesterID"`
	Addressee Account `gorm:"foreignKey:AddresseeID"`
}
