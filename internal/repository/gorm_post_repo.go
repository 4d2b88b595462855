package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openwave-social/openwave/internal/domain"
)

// GormPostRepository implements PostRepository using GORM.
type GormPostRepository struct {
	db *gorm.DB
}

// NewGormPostRepository creates a new GORM-based post repository.
func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

// Create creates a new post. The author and timestamp are server-assigned.
func (r *GormPostRepository) Create(ctx context.Context, post *domain.Post) error {
	post.ID = uuid.New().String()

	model := domain.PostModel{
		ID:       post.ID,
		AuthorID: post.AuthorID,
		Content:  post.Content,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return err
	}

	post.CreatedAt = model.CreatedAt
	return nil
}

// GetByID retrieves a post with its author and like count.
func (r *GormPostRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	var model domain.PostModel
	err := r.db.WithContext(ctx).Preload("Author").First(&model, "id = ?", id).Error
	if err != nil {
		if isNotFound(err) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	post := model.ToDomain()
	if err := r.db.WithContext(ctx).Model(&domain.LikeModel{}).
		Where("post_id = ?", id).
		Count(&post.LikeCount).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// ListAll returns every post, newest first.
func (r *GormPostRepository) ListAll(ctx context.Context) ([]domain.Post, error) {
	var models []domain.PostModel
	err := r.db.WithContext(ctx).
		Preload("Author").
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.toDomainWithLikes(ctx, models)
}

// ListByAuthor returns a user's posts, newest first.
func (r *GormPostRepository) ListByAuthor(ctx context.Context, authorID string) ([]domain.Post, error) {
	var models []domain.PostModel
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.toDomainWithLikes(ctx, models)
}

// ListFeed returns posts authored by users the follower follows, newest first.
func (r *GormPostRepository) ListFeed(ctx context.Context, followerID string) ([]domain.Post, error) {
	var models []domain.PostModel
	err := r.db.WithContext(ctx).
		Preload("Author").
		Joins("JOIN follows ON follows.following_id = posts.author_id").
		Where("follows.follower_id = ?", followerID).
		Order("posts.created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.toDomainWithLikes(ctx, models)
}

// UpdateContent replaces the post content.
func (r *GormPostRepository) UpdateContent(ctx context.Context, id, content string) error {
	result := r.db.WithContext(ctx).Model(&domain.PostModel{}).
		Where("id = ?", id).
		Update("content", content)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}

// Delete removes the post with its comments, likes, and notifications.
func (r *GormPostRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&domain.CommentModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&domain.LikeModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&domain.NotificationModel{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&domain.PostModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrPostNotFound
		}
		return nil
	})
}

// Like records that a user likes a post. The composite unique index turns a
// duplicate like into ErrAlreadyLiked, also under concurrent requests.
func (r *GormPostRepository) Like(ctx context.Context, postID, userID string) error {
	model := domain.LikeModel{
		PostID: postID,
		UserID: userID,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyLiked
		}
		return err
	}
	return nil
}

// Unlike removes a like. Unliking a not-liked post returns ErrNotLiked.
func (r *GormPostRepository) Unlike(ctx context.Context, postID, userID string) error {
	result := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&domain.LikeModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotLiked
	}
	return nil
}

// Search matches posts by content substring, case-insensitive, newest first.
func (r *GormPostRepository) Search(ctx context.Context, query string, limit int) ([]domain.Post, error) {
	pattern := "%" + strings.ToLower(query) + "%"

	var models []domain.PostModel
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("LOWER(content) LIKE ?", pattern).
		Order("created_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.toDomainWithLikes(ctx, models)
}

// toDomainWithLikes converts models and fills like counts with one grouped
// query.
func (r *GormPostRepository) toDomainWithLikes(ctx context.Context, models []domain.PostModel) ([]domain.Post, error) {
	posts := make([]domain.Post, 0, len(models))
	if len(models) == 0 {
		return posts, nil
	}

	ids := make([]string, 0, len(models))
	for i := range models {
		ids = append(ids, models[i].ID)
	}

	type countRow struct {
		PostID string
		Count  int64
	}
	var rows []countRow
	err := r.db.WithContext(ctx).Model(&domain.LikeModel{}).
		Select("post_id, COUNT(*) AS count").
		Where("post_id IN ?", ids).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.PostID] = row.Count
	}

	for i := range models {
		post := models[i].ToDomain()
		post.LikeCount = counts[post.ID]
		posts = append(posts, *post)
	}
	return posts, nil
}

var _ PostRepository = (*GormPostRepository)(nil)
