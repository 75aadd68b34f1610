package app

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"hirepulse/internal/common"
	"hirepulse/internal/domain/user"
	"hirepulse/internal/security"
)

type noopLogger struct{}

func (noopLogger) Info(msg string)  {}
func (noopLogger) Error(msg string) {}

type fakeUserRepo struct {
	mu      sync.Mutex
	byEmail map[string]*user.User
	byID    map[common.ID]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: make(map[string]*user.User),
		byID:    make(map[common.ID]*user.User),
	}
}

func cloneUser(account *user.User) *user.User {
	copied := *account
	return &copied
}

func (r *fakeUserRepo) Create(ctx context.Context, account user.User) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byEmail[account.Email]; exists {
		return nil, common.NewError(common.CodeConflict, "email already registered", nil)
	}
	account.ID = common.NewID()
	account.IsActive = true
	account.CreatedAt = time.Now().UTC()
	r.byEmail[account.Email] = &account
	r.byID[account.ID] = &account
	return cloneUser(&account), nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id common.ID) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account := r.byID[id]
	if account == nil {
		return nil, common.NewError(common.CodeNotFound, "user not found", nil)
	}
	return cloneUser(account), nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account := r.byEmail[email]
	if account == nil {
		return nil, common.NewError(common.CodeNotFound, "user not found", nil)
	}
	return cloneUser(account), nil
}

func (r *fakeUserRepo) UpdateLastLogin(ctx context.Context, id common.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	account := r.byID[id]
	if account == nil {
		return common.NewError(common.CodeNotFound, "user not found", nil)
	}
	now := time.Now().UTC()
	account.LastLogin = &now
	return nil
}

func (r *fakeUserRepo) UpdatePasswordHash(ctx context.Context, id common.ID, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	account := r.byID[id]
	if account == nil {
		return common.NewError(common.CodeNotFound, "user not found", nil)
	}
	account.PasswordHash = hash
	return nil
}

func (r *fakeUserRepo) SetActive(ctx context.Context, id common.ID, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	account := r.byID[id]
	if account == nil {
		return common.NewError(common.CodeNotFound, "user not found", nil)
	}
	account.IsActive = active
	return nil
}

func (r *fakeUserRepo) List(ctx context.Context, page, limit int) ([]user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var users []user.User
	for _, account := range r.byID {
		users = append(users, *account)
	}
	return users, nil
}

func newTestAuthService(repo *fakeUserRepo) *AuthService {
	tokens := security.NewTokenProvider("test-secret", time.Hour)
	return NewAuthService(repo, tokens, nil, noopLogger{}, 15*time.Minute)
}

func TestRegisterAndAuthenticate(t *testing.T) {
	service := newTestAuthService(newFakeUserRepo())

	created, err := service.Register(context.Background(), RegisterInput{
		Email:    "Casey@Example.com",
		Password: "long-enough-password",
		FullName: "Casey Doe",
	}, false)
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if created.Email != "casey@example.com" {
		t.Fatalf("email not normalized: %q", created.Email)
	}
	if created.Role != user.RoleCandidate {
		t.Fatalf("expected default candidate role, got %q", created.Role)
	}
	if created.PasswordHash == "long-enough-password" {
		t.Fatal("password stored in plain text")
	}

	result, err := service.Authenticate(context.Background(), "casey@example.com", "long-enough-password")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if result.Token == "" {
		t.Fatal("no token issued")
	}
	if result.User.LastLogin == nil {
		t.Fatal("last login not recorded")
	}
}

func TestAuthenticateWrongPassword(t *testing.T) {
	service := newTestAuthService(newFakeUserRepo())
	if _, err := service.Register(context.Background(), RegisterInput{
		Email:    "casey@example.com",
		Password: "long-enough-password",
	}, false); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, err := service.Authenticate(context.Background(), "casey@example.com", "wrong-password")
	if !common.Is(err, common.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}

	// Unknown email must produce the same message as a wrong password.
	_, unknownErr := service.Authenticate(context.Background(), "nobody@example.com", "whatever-password")
	if !common.Is(unknownErr, common.CodeUnauthorized) {
		t.Fatalf("expected unauthorized for unknown email, got %v", unknownErr)
	}
	if err.Error() != unknownErr.Error() {
		t.Fatalf("error messages differ: %q vs %q", err, unknownErr)
	}
}

func TestAuthenticateDeactivatedAccount(t *testing.T) {
	repo := newFakeUserRepo()
	service := newTestAuthService(repo)
	created, err := service.Register(context.Background(), RegisterInput{
		Email:    "casey@example.com",
		Password: "long-enough-password",
	}, false)
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := repo.SetActive(context.Background(), created.ID, false); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}

	if _, err := service.Authenticate(context.Background(), "casey@example.com", "long-enough-password"); !common.Is(err, common.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestRegisterAdminRequiresAdmin(t *testing.T) {
	service := newTestAuthService(newFakeUserRepo())

	_, err := service.Register(context.Background(), RegisterInput{
		Email:    "boss@example.com",
		Password: "long-enough-password",
		Role:     user.RoleAdmin,
	}, false)
	if !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}

	if _, err := service.Register(context.Background(), RegisterInput{
		Email:    "boss@example.com",
		Password: "long-enough-password",
		Role:     user.RoleAdmin,
	}, true); err != nil {
		t.Fatalf("admin-authorized registration failed: %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	service := newTestAuthService(newFakeUserRepo())

	if _, err := service.Register(context.Background(), RegisterInput{Email: "not-an-email", Password: "long-enough-password"}, false); !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error for bad email, got %v", err)
	}
	if _, err := service.Register(context.Background(), RegisterInput{Email: "casey@example.com", Password: "short"}, false); !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error for short password, got %v", err)
	}
	if _, err := service.Register(context.Background(), RegisterInput{Email: "casey@example.com", Password: "long-enough-password", Role: "superuser"}, false); !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error for unknown role, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service := newTestAuthService(newFakeUserRepo())
	input := RegisterInput{Email: "casey@example.com", Password: "long-enough-password"}
	if _, err := service.Register(context.Background(), input, false); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := service.Register(context.Background(), input, false); !common.Is(err, common.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	repo := newFakeUserRepo()
	service := newTestAuthService(repo)
	created, err := service.Register(context.Background(), RegisterInput{
		Email:    "casey@example.com",
		Password: "original-password",
	}, false)
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	principal, err := repo.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}

	if err := service.ChangePassword(context.Background(), principal, "wrong-password", "replacement-password"); !common.Is(err, common.CodeUnauthorized) {
		t.Fatalf("expected unauthorized for wrong current password, got %v", err)
	}
	if err := service.ChangePassword(context.Background(), principal, "original-password", "replacement-password"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}
	if _, err := service.Authenticate(context.Background(), "casey@example.com", "replacement-password"); err != nil {
		t.Fatalf("authenticate with new password failed: %v", err)
	}
}

func TestCurrentUserRejectsDeactivated(t *testing.T) {
	repo := newFakeUserRepo()
	service := newTestAuthService(repo)
	created, err := service.Register(context.Background(), RegisterInput{
		Email:    "casey@example.com",
		Password: "long-enough-password",
	}, false)
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	claims := &security.Claims{Email: created.Email, Role: created.Role}
	if _, err := service.CurrentUser(context.Background(), claims); err != nil {
		t.Fatalf("current user failed: %v", err)
	}

	if err := repo.SetActive(context.Background(), created.ID, false); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if _, err := service.CurrentUser(context.Background(), claims); !common.Is(err, common.CodeUnauthorized) {
		t.Fatalf("expected unauthorized after deactivation, got %v", err)
	}
}

func TestEmailNormalization(t *testing.T) {
	service := newTestAuthService(newFakeUserRepo())
	if _, err := service.Register(context.Background(), RegisterInput{
		Email:    "  Casey@Example.COM  ",
		Password: "long-enough-password",
	}, false); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	result, err := service.Authenticate(context.Background(), "CASEY@example.com", "long-enough-password")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if !strings.EqualFold(result.User.Email, "casey@example.com") {
		t.Fatalf("unexpected stored email %q", result.User.Email)
	}
}
