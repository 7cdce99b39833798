package chat

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Amanshah2829/smart-society-sub000/pkg/db/models"
	pkgerrors "github.com/Amanshah2829/smart-society-sub000/pkg/errors"
	"github.com/Amanshah2829/smart-society-sub000/pkg/pagination"
)

type stubChatRepo struct {
	messages []models.ChatMessage
}

func (s *stubChatRepo) Create(_ context.Context, msg *models.ChatMessage) error {
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	msg.CreatedAt = time.Now().UTC()
	s.messages = append(s.messages, *msg)
	return nil
}

func (s *stubChatRepo) List(_ context.Context, siteID uuid.UUID, _ *pagination.Cursor, limit int) ([]models.ChatMessage, error) {
	var out []models.ChatMessage
	for _, m := range s.messages {
		if m.SiteID != siteID {
			continue
		}
		out = append(out, m)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func newChatService(t *testing.T, repo *stubChatRepo) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{Repo: repo})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestSendTrimsAndStoresMessage(t *testing.T) {
	repo := &stubChatRepo{}
	svc := newChatService(t, repo)
	siteID := uuid.New()
	authorID := uuid.New()

	dto, err := svc.Send(context.Background(), siteID, authorID, SendMessageRequest{Body: "  anyone up for badminton?  "})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if dto.Body != "anyone up for badminton?" {
		t.Fatalf("body not trimmed: %q", dto.Body)
	}
	if dto.SiteID != siteID || dto.AuthorID != authorID {
		t.Fatalf("message not scoped: %+v", dto)
	}
}

func TestSendRejectsWhitespaceOnlyBody(t *testing.T) {
	svc := newChatService(t, &stubChatRepo{})
	_, err := svc.Send(context.Background(), uuid.New(), uuid.New(), SendMessageRequest{Body: "   "})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListScopesToSite(t *testing.T) {
	repo := &stubChatRepo{}
	svc := newChatService(t, repo)
	siteID := uuid.New()

	if _, err := svc.Send(context.Background(), siteID, uuid.New(), SendMessageRequest{Body: "hello"}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if _, err := svc.Send(context.Background(), uuid.New(), uuid.New(), SendMessageRequest{Body: "other site"}); err != nil {
		t.Fatalf("Send: %v", err)
	}

	page, err := svc.List(context.Background(), siteID, 10, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page.Messages) != 1 || page.Messages[0].Body != "hello" {
		t.Fatalf("expected only this site's messages, got %+v", page.Messages)
	}
}
