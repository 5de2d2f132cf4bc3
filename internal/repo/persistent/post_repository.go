package persistent

import (
	"errors"
	"fmt"

	"simple-social/internal/entity"
	"simple-social/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostRepository interface {
	Create(post *entity.Post) error
	GetByID(id string) (*entity.Post, error)
	ListAll() ([]*entity.Post, error)
	Delete(id string) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(post *entity.Post) error {
	postModel := ToPostModel(post)
	if postModel.ID == "" {
		postModel.ID = uuid.New().String()
	}
	if err := r.db.Create(postModel).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return fmt.Errorf("%w: post owner %s", entity.ErrIntegrity, post.UserID)
		}
		return err
	}
	*post = *ToPostEntity(postModel)
	return nil
}

func (r *postRepository) GetByID(id string) (*entity.Post, error) {
	var postModel model.PostModel
	if err := r.db.Where("id = ?", id).First(&postModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: post %s", entity.ErrNotFound, id)
		}
		return nil, err
	}
	return ToPostEntity(&postModel), nil
}

// ListAll returns every post, newest first.
func (r *postRepository) ListAll() ([]*entity.Post, error) {
	var postModels []model.PostModel
	if err := r.db.Order("created_at DESC").Find(&postModels).Error; err != nil {
		return nil, err
	}

	posts := make([]*entity.Post, len(postModels))
	for i := range postModels {
		posts[i] = ToPostEntity(&postModels[i])
	}
	return posts, nil
}

func (r *postRepository) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&model.PostModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: post %s", entity.ErrNotFound, id)
	}
	return nil
}
