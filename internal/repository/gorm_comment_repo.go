package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openwave-social/openwave/internal/domain"
)

// GormCommentRepository implements CommentRepository using GORM.
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GORM-based comment repository.
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// Create creates a new comment.
func (r *GormCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	comment.ID = uuid.New().String()

	model := domain.CommentModel{
		ID:       comment.ID,
		PostID:   comment.PostID,
		AuthorID: comment.AuthorID,
		Content:  comment.Content,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return err
	}

	comment.CreatedAt = model.CreatedAt
	return nil
}

// GetByID returns the comment only when it belongs to the given post.
func (r *GormCommentRepository) GetByID(ctx context.Context, postID, commentID string) (*domain.Comment, error) {
	var model domain.CommentModel
	err := r.db.WithContext(ctx).
		Preload("Author").
		First(&model, "id = ? AND post_id = ?", commentID, postID).Error
	if err != nil {
		if isNotFound(err) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListByPost returns a post's comments, newest first.
func (r *GormCommentRepository) ListByPost(ctx context.Context, postID string) ([]domain.Comment, error) {
	var models []domain.CommentModel
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	comments := make([]domain.Comment, 0, len(models))
	for i := range models {
		comments = append(comments, *models[i].ToDomain())
	}
	return comments, nil
}

// UpdateContent replaces the comment content.
func (r *GormCommentRepository) UpdateContent(ctx context.Context, id, content string) error {
	result := r.db.WithContext(ctx).Model(&domain.CommentModel{}).
		Where("id = ?", id).
		Update("content", content)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCommentNotFound
	}
	return nil
}

// Delete removes a comment.
func (r *GormCommentRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&domain.CommentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCommentNotFound
	}
	return nil
}

var _ CommentRepository = (*GormCommentRepository)(nil)
