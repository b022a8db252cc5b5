package models

import (
	"time"
)

// Block records that blocker no longer wants any relationship with blocked.
// A block in either direction gates new connection requests.
type Block struct {
	ID        uint      `gorm:"primaryKey"`
	BlockerID uint      `gorm:"not null;index:idx_block_pair,unique"`
	BlockedID uint      `gorm:"not null;index:idx_block_pair,unique"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Block) TableName() string {
	return "blocks"
}
