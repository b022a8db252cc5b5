package repositories

import (
	stderrors "errors"

	"github.com/pronetwork/backend/internal/models"
	"github.com/pronetwork/backend/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository serves user lookups and owns the mutual-connection
// projection rows.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(userID uint) (*models.User, error) {
	var user models.User
	result := r.db.First(&user, userID)

	if result.Error != nil {
		if stderrors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.ErrCodeNotFound, "user not found")
		}
		return nil, errors.Wrap(result.Error, errors.ErrCodePersistence, "failed to get user")
	}

	return &user, nil
}

func (r *UserRepository) GetByIDs(userIDs []uint) (map[uint]models.User, error) {
	users := make(map[uint]models.User, len(userIDs))
	if len(userIDs) == 0 {
		return users, nil
	}

	var rows []models.User
	if err := r.db.Where("id IN ?", userIDs).Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodePersistence, "failed to get users")
	}

	for _, u := range rows {
		users[u.ID] = u
	}
	return users, nil
}

func (r *UserRepository) Create(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.New(errors.ErrCodeConflict, "email already registered")
		}
		return errors.Wrap(err, errors.ErrCodePersistence, "failed to create user")
	}
	return nil
}

// AddMutual inserts both directions of the projection. ON CONFLICT DO NOTHING
// gives set semantics: re-adding an existing member is a no-op, and two
// concurrent adds cannot produce duplicates.
func (r *UserRepository) AddMutual(userA, userB uint) error {
	rows := []models.UserConnection{
		{UserID: userA, ConnectionID: userB},
		{UserID: userB, ConnectionID: userA},
	}

	err := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
	if err != nil {
		return errors.Wrap(err, errors.ErrCodePersistence, "failed to update connection lists")
	}

	return nil
}

// RemoveMutual deletes both directions of the projection. No-op if absent.
func (r *UserRepository) RemoveMutual(userA, userB uint) error {
	err := r.db.Where(
		"(user_id = ? AND connection_id = ?) OR (user_id = ? AND connection_id = ?)",
		userA, userB, userB, userA,
	).Delete(&models.UserConnection{}).Error

	if err != nil {
		return errors.Wrap(err, errors.ErrCodePersistence, "failed to update connection lists")
	}

	return nil
}

// IsConnected checks projection membership. Cheap but derived; the ledger is
// authoritative when the two disagree.
func (r *UserRepository) IsConnected(userA, userB uint) (bool, error) {
	var count int64
	result := r.db.Model(&models.UserConnection{}).
		Where("user_id = ? AND connection_id = ?", userA, userB).
		Count(&count)

	if result.Error != nil {
		return false, errors.Wrap(result.Error, errors.ErrCodePersistence, "failed to check connection membership")
	}

	return count > 0, nil
}

// ConnectionIDs returns the projection set for one user.
func (r *UserRepository) ConnectionIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.UserConnection{}).
		Where("user_id = ?", userID).
		Pluck("connection_id", &ids).Error

	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodePersistence, "failed to load connection list")
	}

	return ids, nil
}
