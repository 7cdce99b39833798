package feed

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Amanshah2829/smart-society-sub000/pkg/db/models"
	pkgerrors "github.com/Amanshah2829/smart-society-sub000/pkg/errors"
	"github.com/Amanshah2829/smart-society-sub000/pkg/pagination"
)

type stubFeedRepo struct {
	posts       map[uuid.UUID]*models.Post
	comments    map[uuid.UUID][]models.PostComment
	likes       map[uuid.UUID]map[uuid.UUID]bool
	deleted     []uuid.UUID
	likeInserts int
}

func newStubFeedRepo() *stubFeedRepo {
	return &stubFeedRepo{
		posts:    map[uuid.UUID]*models.Post{},
		comments: map[uuid.UUID][]models.PostComment{},
		likes:    map[uuid.UUID]map[uuid.UUID]bool{},
	}
}

func (s *stubFeedRepo) CreatePost(_ context.Context, p *models.Post) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now().UTC()
	s.posts[p.ID] = p
	return nil
}

func (s *stubFeedRepo) FindPost(_ context.Context, siteID, id uuid.UUID) (*models.Post, error) {
	p, ok := s.posts[id]
	if !ok || p.SiteID != siteID {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *p
	return &copied, nil
}

func (s *stubFeedRepo) ListPosts(_ context.Context, siteID uuid.UUID, _ *pagination.Cursor, limit int) ([]models.Post, error) {
	var out []models.Post
	for _, p := range s.posts {
		if p.SiteID != siteID {
			continue
		}
		out = append(out, *p)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *stubFeedRepo) DeletePost(_ context.Context, _ uuid.UUID, id uuid.UUID) error {
	s.deleted = append(s.deleted, id)
	delete(s.posts, id)
	return nil
}

func (s *stubFeedRepo) AddComment(_ context.Context, c *models.PostComment) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	s.comments[c.PostID] = append(s.comments[c.PostID], *c)
	return nil
}

func (s *stubFeedRepo) ListComments(_ context.Context, postID uuid.UUID) ([]models.PostComment, error) {
	return s.comments[postID], nil
}

type duplicateLikeError struct{}

func (duplicateLikeError) Error() string {
	return `duplicate key value violates unique constraint "idx_post_likes_once"`
}

func (s *stubFeedRepo) InsertLikeWithTx(_ context.Context, _ *gorm.DB, like *models.PostLike) error {
	s.likeInserts++
	if s.likes[like.PostID] == nil {
		s.likes[like.PostID] = map[uuid.UUID]bool{}
	}
	if s.likes[like.PostID][like.UserID] {
		return duplicateLikeError{}
	}
	s.likes[like.PostID][like.UserID] = true
	return nil
}

func (s *stubFeedRepo) IncrementLikeCountWithTx(_ context.Context, _ *gorm.DB, postID uuid.UUID) error {
	if p, ok := s.posts[postID]; ok {
		p.LikeCount++
	}
	return nil
}

func (s *stubFeedRepo) HasLiked(_ context.Context, postID, userID uuid.UUID) (bool, error) {
	return s.likes[postID][userID], nil
}

type stubFeedTx struct{}

func (stubFeedTx) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func newFeedService(t *testing.T, repo *stubFeedRepo) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{Repo: repo, Tx: stubFeedTx{}})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func seedPost(repo *stubFeedRepo, siteID uuid.UUID) *models.Post {
	p := &models.Post{ID: uuid.New(), SiteID: siteID, AuthorID: uuid.New(), Body: "Diwali party this weekend!"}
	repo.posts[p.ID] = p
	return p
}

func TestLikeIsIdempotentPerUser(t *testing.T) {
	repo := newStubFeedRepo()
	siteID := uuid.New()
	post := seedPost(repo, siteID)
	svc := newFeedService(t, repo)
	userID := uuid.New()

	first, err := svc.Like(context.Background(), siteID, post.ID, userID)
	if err != nil {
		t.Fatalf("Like: %v", err)
	}
	if first.LikeCount != 1 {
		t.Fatalf("like count after first like = %d", first.LikeCount)
	}

	second, err := svc.Like(context.Background(), siteID, post.ID, userID)
	if err != nil {
		t.Fatalf("repeat Like: %v", err)
	}
	if second.LikeCount != 1 {
		t.Fatalf("repeat like must not bump the count, got %d", second.LikeCount)
	}
	if repo.posts[post.ID].LikeCount != 1 {
		t.Fatalf("stored count = %d", repo.posts[post.ID].LikeCount)
	}
	if repo.likeInserts != 1 {
		t.Fatalf("repeat like should short-circuit before the insert, saw %d inserts", repo.likeInserts)
	}

	other, err := svc.Like(context.Background(), siteID, post.ID, uuid.New())
	if err != nil {
		t.Fatalf("other user Like: %v", err)
	}
	if other.LikeCount != 2 {
		t.Fatalf("second user should bump the count, got %d", other.LikeCount)
	}
}

func TestDeletePostAuthorization(t *testing.T) {
	repo := newStubFeedRepo()
	siteID := uuid.New()
	post := seedPost(repo, siteID)
	svc := newFeedService(t, repo)

	err := svc.DeletePost(context.Background(), siteID, post.ID, uuid.New(), false)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("stranger must not delete, got %v", err)
	}

	if err := svc.DeletePost(context.Background(), siteID, post.ID, uuid.New(), true); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if len(repo.deleted) != 1 {
		t.Fatalf("post should be deleted")
	}
}

func TestDeleteOwnPost(t *testing.T) {
	repo := newStubFeedRepo()
	siteID := uuid.New()
	post := seedPost(repo, siteID)
	svc := newFeedService(t, repo)

	if err := svc.DeletePost(context.Background(), siteID, post.ID, post.AuthorID, false); err != nil {
		t.Fatalf("author delete: %v", err)
	}
}

func TestCommentsRequireVisiblePost(t *testing.T) {
	repo := newStubFeedRepo()
	siteID := uuid.New()
	post := seedPost(repo, siteID)
	svc := newFeedService(t, repo)

	if _, err := svc.AddComment(context.Background(), siteID, post.ID, uuid.New(), AddCommentRequest{Body: "Count me in!"}); err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	comments, err := svc.ListComments(context.Background(), siteID, post.ID)
	if err != nil || len(comments) != 1 {
		t.Fatalf("expected one comment, got %v err %v", comments, err)
	}

	_, err = svc.AddComment(context.Background(), uuid.New(), post.ID, uuid.New(), AddCommentRequest{Body: "hidden"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("cross-site post must read as not found, got %v", err)
	}
}
