package feed

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Amanshah2829/smart-society-sub000/pkg/db/models"
	"github.com/Amanshah2829/smart-society-sub000/pkg/pagination"
)

// Repository persists feed posts, comments and likes through GORM.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the supplied transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

func (r *Repository) CreatePost(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *Repository) FindPost(ctx context.Context, siteID, id uuid.UUID) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Where("site_id = ? AND id = ?", siteID, id).
		First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// ListPosts pages a site's feed newest-first.
func (r *Repository) ListPosts(ctx context.Context, siteID uuid.UUID, cursor *pagination.Cursor, limit int) ([]models.Post, error) {
	q := r.db.WithContext(ctx).
		Where("site_id = ?", siteID).
		Order("created_at DESC, id DESC").
		Limit(limit)
	if cursor != nil {
		q = q.Where("created_at < ? OR (created_at = ? AND id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var out []models.Post
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) DeletePost(ctx context.Context, siteID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("site_id = ?", siteID).
		Delete(&models.Post{}, "id = ?", id).Error
}

func (r *Repository) AddComment(ctx context.Context, comment *models.PostComment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *Repository) ListComments(ctx context.Context, postID uuid.UUID) ([]models.PostComment, error) {
	var out []models.PostComment
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// InsertLikeWithTx records a like. The unique index on (post_id, user_id)
// turns repeats into a unique violation the caller can treat as a no-op.
func (r *Repository) InsertLikeWithTx(ctx context.Context, tx *gorm.DB, like *models.PostLike) error {
	return tx.WithContext(ctx).Create(like).Error
}

// IncrementLikeCountWithTx bumps the denormalized counter on the post row.
func (r *Repository) IncrementLikeCountWithTx(ctx context.Context, tx *gorm.DB, postID uuid.UUID) error {
	return tx.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", postID).
		UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error
}

// HasLiked reports whether the user already liked the post.
func (r *Repository) HasLiked(ctx context.Context, postID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PostLike{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error
	return count > 0, err
}
