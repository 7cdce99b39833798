package feed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Amanshah2829/smart-society-sub000/pkg/db"
	"github.com/Amanshah2829/smart-society-sub000/pkg/db/models"
	pkgerrors "github.com/Amanshah2829/smart-society-sub000/pkg/errors"
	"github.com/Amanshah2829/smart-society-sub000/pkg/pagination"
)

// Service defines the community feed operations.
type Service interface {
	CreatePost(ctx context.Context, siteID, authorID uuid.UUID, req CreatePostRequest) (*PostDTO, error)
	ListPosts(ctx context.Context, siteID uuid.UUID, limit int, cursor string) (*PostPage, error)
	DeletePost(ctx context.Context, siteID, postID, actorID uuid.UUID, actorIsAdmin bool) error
	Like(ctx context.Context, siteID, postID, userID uuid.UUID) (*PostDTO, error)
	AddComment(ctx context.Context, siteID, postID, authorID uuid.UUID, req AddCommentRequest) (*CommentDTO, error)
	ListComments(ctx context.Context, siteID, postID uuid.UUID) ([]CommentDTO, error)
}

type repository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	FindPost(ctx context.Context, siteID, id uuid.UUID) (*models.Post, error)
	ListPosts(ctx context.Context, siteID uuid.UUID, cursor *pagination.Cursor, limit int) ([]models.Post, error)
	DeletePost(ctx context.Context, siteID, id uuid.UUID) error
	AddComment(ctx context.Context, comment *models.PostComment) error
	ListComments(ctx context.Context, postID uuid.UUID) ([]models.PostComment, error)
	InsertLikeWithTx(ctx context.Context, tx *gorm.DB, like *models.PostLike) error
	IncrementLikeCountWithTx(ctx context.Context, tx *gorm.DB, postID uuid.UUID) error
	HasLiked(ctx context.Context, postID, userID uuid.UUID) (bool, error)
}

type transactor interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo repository
	tx   transactor
}

// ServiceParams bundles the dependencies required to build a feed service.
type ServiceParams struct {
	Repo repository
	Tx   transactor
}

// NewService constructs a feed service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("feed repository is required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transactor is required")
	}
	return &service{repo: params.Repo, tx: params.Tx}, nil
}

func (s *service) CreatePost(ctx context.Context, siteID, authorID uuid.UUID, req CreatePostRequest) (*PostDTO, error) {
	post := &models.Post{
		SiteID:   siteID,
		AuthorID: authorID,
		Body:     strings.TrimSpace(req.Body),
	}
	if err := s.repo.CreatePost(ctx, post); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create post")
	}
	return postFromModel(post), nil
}

func (s *service) ListPosts(ctx context.Context, siteID uuid.UUID, limit int, rawCursor string) (*PostPage, error) {
	cursor, err := pagination.ParseCursor(rawCursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}
	normalized := pagination.NormalizeLimit(limit)
	rows, err := s.repo.ListPosts(ctx, siteID, cursor, normalized+1)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list posts")
	}

	page := &PostPage{}
	if len(rows) > normalized {
		rows = rows[:normalized]
		last := rows[len(rows)-1]
		next := pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		page.NextCursor = &next
	}
	page.Posts = postsFromModels(rows)
	return page, nil
}

// DeletePost removes a post. Authors can delete their own posts; admins can
// delete any post on their site.
func (s *service) DeletePost(ctx context.Context, siteID, postID, actorID uuid.UUID, actorIsAdmin bool) error {
	post, err := s.findPost(ctx, siteID, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != actorID && !actorIsAdmin {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only the author or an admin can delete a post")
	}
	if err := s.repo.DeletePost(ctx, siteID, postID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete post")
	}
	return nil
}

// Like records a like exactly once per user. Repeat likes return the post
// unchanged.
func (s *service) Like(ctx context.Context, siteID, postID, userID uuid.UUID) (*PostDTO, error) {
	post, err := s.findPost(ctx, siteID, postID)
	if err != nil {
		return nil, err
	}

	liked, err := s.repo.HasLiked(ctx, postID, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check like")
	}
	if liked {
		return postFromModel(post), nil
	}

	// The unique index on (post_id, user_id) still guards concurrent likes
	// racing past the check above.
	duplicate := false
	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		like := &models.PostLike{PostID: postID, UserID: userID}
		if err := s.repo.InsertLikeWithTx(ctx, tx, like); err != nil {
			if db.IsUniqueViolation(err) {
				duplicate = true
				return nil
			}
			return fmt.Errorf("insert like: %w", err)
		}
		return s.repo.IncrementLikeCountWithTx(ctx, tx, postID)
	})
	if txErr != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, txErr, "like post")
	}
	if !duplicate {
		post.LikeCount++
	}
	return postFromModel(post), nil
}

func (s *service) AddComment(ctx context.Context, siteID, postID, authorID uuid.UUID, req AddCommentRequest) (*CommentDTO, error) {
	if _, err := s.findPost(ctx, siteID, postID); err != nil {
		return nil, err
	}
	comment := &models.PostComment{
		PostID:   postID,
		AuthorID: authorID,
		Body:     strings.TrimSpace(req.Body),
	}
	if err := s.repo.AddComment(ctx, comment); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "add comment")
	}
	return commentFromModel(comment), nil
}

func (s *service) ListComments(ctx context.Context, siteID, postID uuid.UUID) ([]CommentDTO, error) {
	if _, err := s.findPost(ctx, siteID, postID); err != nil {
		return nil, err
	}
	comments, err := s.repo.ListComments(ctx, postID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list comments")
	}
	return commentsFromModels(comments), nil
}

func (s *service) findPost(ctx context.Context, siteID, id uuid.UUID) (*models.Post, error) {
	post, err := s.repo.FindPost(ctx, siteID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "post not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load post")
	}
	return post, nil
}
