package models

import (
	"time"
)

// Connection is a directed connection request between two identities. At most
// one row exists per ordered (sender, receiver) pair; rejected and severed
// connections are deleted rather than kept in a terminal state.
type Connection struct {
	ID         uint      `gorm:"primaryKey"`
	SenderID   uint      `gorm:"not null;index:idx_connection_pair,unique"`
	Sender     User      `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE"`
	ReceiverID uint      `gorm:"not null;index:idx_connection_pair,unique"`
	Receiver   User      `gorm:"foreignKey:ReceiverID;constraint:OnDelete:CASCADE"`
	Status     string    `gorm:"type:varchar(20);default:'pending'"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

// Connection status constants
const (
	ConnectionStatusPending  = "pending"
	ConnectionStatusAccepted = "accepted"
)

// Pairwise state as seen from one side, for profile pages.
const (
	PairStateNone            = "none"
	PairStateConnected       = "connected"
	PairStateRequestSent     = "request_sent"
	PairStateRequestReceived = "request_received"
)

func (Connection) TableName() string {
	return "connections"
}
