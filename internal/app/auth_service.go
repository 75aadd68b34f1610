package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hirepulse/internal/common"
	"hirepulse/internal/domain/user"
	"hirepulse/internal/notify"
	"hirepulse/internal/security"
)

type Logger interface {
	Info(msg string)
	Error(msg string)
}

// AuthService implements the credential store: registration, password
// verification, and bearer-token issuance. Tokens are stateless; there is no
// server-side revocation.
type AuthService struct {
	users    user.Repository
	tokens   *security.TokenProvider
	notifier *notify.Notifier
	logger   Logger
	resetTTL time.Duration
}

func NewAuthService(users user.Repository, tokens *security.TokenProvider, notifier *notify.Notifier, logger Logger, resetTTL time.Duration) *AuthService {
	return &AuthService{users: users, tokens: tokens, notifier: notifier, logger: logger, resetTTL: resetTTL}
}

type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Role     user.Role
}

// Register creates an account. The role defaults to candidate; creating an
// admin requires the caller to already be an admin (enforced by the handler
// passing allowAdmin). Role is immutable after creation.
func (s *AuthService) Register(ctx context.Context, input RegisterInput, allowAdmin bool) (*user.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, common.NewValidationError("invalid request", map[string]string{"email": "a valid email is required"})
	}
	if len(input.Password) < 8 {
		return nil, common.NewValidationError("invalid request", map[string]string{"password": "password must be at least 8 characters"})
	}
	role := input.Role
	if role == "" {
		role = user.RoleCandidate
	}
	if !user.IsKnownRole(role) {
		return nil, common.NewValidationError("invalid request", map[string]string{"role": "role must be admin, recruiter, or candidate"})
	}
	if role == user.RoleAdmin && !allowAdmin {
		return nil, common.NewError(common.CodeForbidden, "only admins can create admin accounts", nil)
	}

	hash, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to hash password", err)
	}
	created, err := s.users.Create(ctx, user.User{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		FullName:     strings.TrimSpace(input.FullName),
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info(fmt.Sprintf("user registered user_id=%s role=%s", created.ID, created.Role))
	return created, nil
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *user.User
}

// Authenticate verifies credentials and issues a bearer token. The same
// unauthorized error covers unknown email and wrong password.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*LoginResult, error) {
	account, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewError(common.CodeUnauthorized, "incorrect email or password", nil)
		}
		return nil, err
	}
	if !account.IsActive {
		return nil, common.NewError(common.CodeUnauthorized, "account is deactivated", nil)
	}
	if !security.VerifyPassword(account.PasswordHash, password) {
		return nil, common.NewError(common.CodeUnauthorized, "incorrect email or password", nil)
	}
	if err := s.users.UpdateLastLogin(ctx, account.ID); err != nil {
		return nil, err
	}
	// The snapshot predates the write; patch it so the response carries the
	// login that was just recorded.
	now := time.Now().UTC()
	account.LastLogin = &now
	token, expiresAt, err := s.tokens.Issue(account)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to issue token", err)
	}
	s.logger.Info(fmt.Sprintf("user logged in user_id=%s", account.ID))
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: account}, nil
}

// CurrentUser resolves verified claims to a live account so deactivated or
// deleted accounts lose access immediately despite stateless tokens.
func (s *AuthService) CurrentUser(ctx context.Context, claims *security.Claims) (*user.User, error) {
	account, err := s.users.GetByEmail(ctx, claims.Email)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewError(common.CodeUnauthorized, "account no longer exists", nil)
		}
		return nil, err
	}
	if !account.IsActive {
		return nil, common.NewError(common.CodeUnauthorized, "account is deactivated", nil)
	}
	return account, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, principal *user.User, currentPassword, newPassword string) error {
	if !security.VerifyPassword(principal.PasswordHash, currentPassword) {
		return common.NewError(common.CodeUnauthorized, "incorrect current password", nil)
	}
	if len(newPassword) < 8 {
		return common.NewValidationError("invalid request", map[string]string{"new_password": "password must be at least 8 characters"})
	}
	hash, err := security.HashPassword(newPassword)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to hash password", err)
	}
	return s.users.UpdatePasswordHash(ctx, principal.ID, hash)
}

// RequestPasswordReset issues a short-lived reset token and mails it. The
// response is identical whether or not the account exists.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	account, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil
		}
		return err
	}
	token, _, err := s.tokens.IssueReset(account, s.resetTTL)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to issue reset token", err)
	}
	go func() {
		if err := s.notifier.Send(account.Email, "Password reset", "Use this token to reset your password: "+token); err != nil {
			s.logger.Error(fmt.Sprintf("reset email failed user_id=%s: %v", account.ID, err))
		}
	}()
	return nil
}

// CompletePasswordReset consumes a reset token and sets the new password.
func (s *AuthService) CompletePasswordReset(ctx context.Context, token, newPassword string) error {
	claims, err := s.tokens.VerifyReset(token)
	if err != nil {
		return common.NewError(common.CodeUnauthorized, "invalid reset token", err)
	}
	if len(newPassword) < 8 {
		return common.NewValidationError("invalid request", map[string]string{"new_password": "password must be at least 8 characters"})
	}
	account, err := s.users.GetByEmail(ctx, claims.Email)
	if err != nil {
		return common.NewError(common.CodeUnauthorized, "account no longer exists", nil)
	}
	hash, err := security.HashPassword(newPassword)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to hash password", err)
	}
	return s.users.UpdatePasswordHash(ctx, account.ID, hash)
}
