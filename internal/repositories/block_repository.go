package repositories

import (
	"github.com/pronetwork/backend/internal/models"
	"github.com/pronetwork/backend/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BlockRepository struct {
	db *gorm.DB
}

func NewBlockRepository(db *gorm.DB) *BlockRepository {
	return &BlockRepository{db: db}
}

// Block records blockerID blocking blockedID. Upsert semantics: blocking an
// already-blocked user is a no-op.
func (r *BlockRepository) Block(blockerID, blockedID uint) error {
	block := models.Block{BlockerID: blockerID, BlockedID: blockedID}

	err := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&block).Error
	if err != nil {
		return errors.Wrap(err, errors.ErrCodePersistence, "failed to block user")
	}

	return nil
}

// Unblock removes the block row. No-op if absent.
func (r *BlockRepository) Unblock(blockerID, blockedID uint) error {
	err := r.db.Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Delete(&models.Block{}).Error

	if err != nil {
		return errors.Wrap(err, errors.ErrCodePersistence, "failed to unblock user")
	}

	return nil
}

// IsBlockedEither reports whether a block exists in either direction.
func (r *BlockRepository) IsBlockedEither(userA, userB uint) (bool, error) {
	var count int64
	result := r.db.Model(&models.Block{}).
		Where(
			"(blocker_id = ? AND blocked_id = ?) OR (blocker_id = ? AND blocked_id = ?)",
			userA, userB, userB, userA,
		).Count(&count)

	if result.Error != nil {
		return false, errors.Wrap(result.Error, errors.ErrCodePersistence, "failed to check block status")
	}

	return count > 0, nil
}
