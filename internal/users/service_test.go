package users

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Amanshah2829/smart-society-sub000/pkg/config"
	"github.com/Amanshah2829/smart-society-sub000/pkg/db/models"
	"github.com/Amanshah2829/smart-society-sub000/pkg/enums"
	pkgerrors "github.com/Amanshah2829/smart-society-sub000/pkg/errors"
	"github.com/Amanshah2829/smart-society-sub000/pkg/security"
)

type stubRepo struct {
	byEmail      map[string]*models.User
	byID         map[uuid.UUID]*models.User
	created      []CreateUserDTO
	updates      map[uuid.UUID]map[string]any
	passwords    map[uuid.UUID]string
	deactivated  []uuid.UUID
	createResult *models.User
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		byEmail:   map[string]*models.User{},
		byID:      map[uuid.UUID]*models.User{},
		updates:   map[uuid.UUID]map[string]any{},
		passwords: map[uuid.UUID]string{},
	}
}

func (s *stubRepo) Create(ctx context.Context, dto CreateUserDTO) (*models.User, error) {
	s.created = append(s.created, dto)
	if s.createResult != nil {
		return s.createResult, nil
	}
	user := dto.ToModel()
	user.ID = uuid.New()
	return user, nil
}

func (s *stubRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if user, ok := s.byEmail[email]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if user, ok := s.byID[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) ListBySite(ctx context.Context, siteID uuid.UUID, role *enums.Role) ([]models.User, error) {
	var out []models.User
	for _, user := range s.byID {
		if user.SiteID != nil && *user.SiteID == siteID {
			if role == nil || user.Role == *role {
				out = append(out, *user)
			}
		}
	}
	return out, nil
}

func (s *stubRepo) Updates(ctx context.Context, id uuid.UUID, values map[string]any) error {
	s.updates[id] = values
	return nil
}

func (s *stubRepo) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	s.passwords[id] = hash
	return nil
}

func (s *stubRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	s.deactivated = append(s.deactivated, id)
	return nil
}

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     8,
		ArgonKeyLen:      16,
	}
}

func newTestService(t *testing.T, repo *stubRepo) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{Repo: repo, PasswordConfig: testPasswordConfig()})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestCreateHashesPasswordAndScopesToSite(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo)
	siteID := uuid.New()

	dto, err := svc.Create(context.Background(), siteID, CreateUserRequest{
		Email:    "Resident@Society.com",
		Password: "resident123",
		Name:     "Res Ident",
		Role:     "resident",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.Role != enums.RoleResident {
		t.Fatalf("unexpected role %s", dto.Role)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one insert, got %d", len(repo.created))
	}
	created := repo.created[0]
	if created.Email != "resident@society.com" {
		t.Fatalf("email not normalized: %q", created.Email)
	}
	if created.SiteID == nil || *created.SiteID != siteID {
		t.Fatal("site id not attached")
	}
	if created.PasswordHash == "resident123" || created.PasswordHash == "" {
		t.Fatal("password stored unhashed")
	}
	if ok, err := security.VerifyPassword("resident123", created.PasswordHash); err != nil || !ok {
		t.Fatalf("hash does not verify: ok=%v err=%v", ok, err)
	}
}

func TestCreateRejectsSuperadminRole(t *testing.T) {
	svc := newTestService(t, newStubRepo())

	_, err := svc.Create(context.Background(), uuid.New(), CreateUserRequest{
		Email:    "root@society.com",
		Password: "password1",
		Name:     "Root",
		Role:     "superadmin",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestCreateRejectsDuplicateEmail(t *testing.T) {
	repo := newStubRepo()
	repo.byEmail["taken@society.com"] = &models.User{Email: "taken@society.com"}
	svc := newTestService(t, repo)

	_, err := svc.Create(context.Background(), uuid.New(), CreateUserRequest{
		Email:    "taken@society.com",
		Password: "password1",
		Name:     "Dup",
		Role:     "resident",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestGetHidesCrossSiteUsers(t *testing.T) {
	repo := newStubRepo()
	otherSite := uuid.New()
	id := uuid.New()
	repo.byID[id] = &models.User{ID: id, SiteID: &otherSite, Role: enums.RoleResident}
	svc := newTestService(t, repo)

	_, err := svc.Get(context.Background(), uuid.New(), id)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestChangePasswordVerifiesCurrent(t *testing.T) {
	repo := newStubRepo()
	id := uuid.New()
	hash, err := security.HashPassword("oldpassword", testPasswordConfig())
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	repo.byID[id] = &models.User{ID: id, PasswordHash: hash}
	svc := newTestService(t, repo)

	err = svc.ChangePassword(context.Background(), id, ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "newpassword1",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}

	if err := svc.ChangePassword(context.Background(), id, ChangePasswordRequest{
		CurrentPassword: "oldpassword",
		NewPassword:     "newpassword1",
	}); err != nil {
		t.Fatalf("change password: %v", err)
	}
	stored, ok := repo.passwords[id]
	if !ok || stored == "" {
		t.Fatal("new hash not stored")
	}
	if match, err := security.VerifyPassword("newpassword1", stored); err != nil || !match {
		t.Fatalf("new hash does not verify: %v", err)
	}
}

func TestDeactivateIsSoft(t *testing.T) {
	repo := newStubRepo()
	siteID := uuid.New()
	id := uuid.New()
	repo.byID[id] = &models.User{ID: id, SiteID: &siteID, IsActive: true}
	svc := newTestService(t, repo)

	if err := svc.Deactivate(context.Background(), siteID, id); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if len(repo.deactivated) != 1 || repo.deactivated[0] != id {
		t.Fatal("expected soft deactivation call")
	}
}
