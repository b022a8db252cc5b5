package repositories

import (
	"github.com/pronetwork/backend/internal/models"
	"github.com/pronetwork/backend/pkg/errors"
	"gorm.io/gorm"
)

// PostRepository only serves notification enrichment; post CRUD is handled
// elsewhere.
type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) GetByIDs(postIDs []uint) (map[uint]models.Post, error) {
	posts := make(map[uint]models.Post, len(postIDs))
	if len(postIDs) == 0 {
		return posts, nil
	}

	var rows []models.Post
	if err := r.db.Where("id IN ?", postIDs).Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodePersistence, "failed to get posts")
	}

	for _, p := range rows {
		posts[p.ID] = p
	}
	return posts, nil
}
