package feed

import (
	"time"

	"github.com/google/uuid"

	"github.com/Amanshah2829/smart-society-sub000/pkg/db/models"
)

// PostDTO is the transport shape for one feed post.
type PostDTO struct {
	ID        uuid.UUID `json:"id"`
	SiteID    uuid.UUID `json:"site_id"`
	AuthorID  uuid.UUID `json:"author_id"`
	Body      string    `json:"body"`
	LikeCount int       `json:"like_count"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentDTO is one reply on a feed post.
type CommentDTO struct {
	ID        uuid.UUID `json:"id"`
	PostID    uuid.UUID `json:"post_id"`
	AuthorID  uuid.UUID `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// CreatePostRequest publishes a new feed post.
type CreatePostRequest struct {
	Body string `json:"body" validate:"required,min=1,max=5000"`
}

// AddCommentRequest replies to a post.
type AddCommentRequest struct {
	Body string `json:"body" validate:"required,min=1,max=2000"`
}

// PostPage is one cursor page of posts.
type PostPage struct {
	Posts      []PostDTO `json:"posts"`
	NextCursor *string   `json:"next_cursor,omitempty"`
}

func postFromModel(p *models.Post) *PostDTO {
	if p == nil {
		return nil
	}
	return &PostDTO{
		ID:        p.ID,
		SiteID:    p.SiteID,
		AuthorID:  p.AuthorID,
		Body:      p.Body,
		LikeCount: p.LikeCount,
		CreatedAt: p.CreatedAt,
	}
}

func postsFromModels(list []models.Post) []PostDTO {
	out := make([]PostDTO, 0, len(list))
	for i := range list {
		out = append(out, *postFromModel(&list[i]))
	}
	return out
}

func commentFromModel(c *models.PostComment) *CommentDTO {
	return &CommentDTO{
		ID:        c.ID,
		PostID:    c.PostID,
		AuthorID:  c.AuthorID,
		Body:      c.Body,
		CreatedAt: c.CreatedAt,
	}
}

func commentsFromModels(list []models.PostComment) []CommentDTO {
	out := make([]CommentDTO, 0, len(list))
	for i := range list {
		out = append(out, *commentFromModel(&list[i]))
	}
	return out
}
