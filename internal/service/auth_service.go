package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/edusekai/platform-api/internal/auth"
	"github.com/edusekai/platform-api/internal/config"
	"github.com/edusekai/platform-api/internal/domain"
	"github.com/edusekai/platform-api/internal/events"
	"github.com/edusekai/platform-api/internal/repository"
	"github.com/edusekai/platform-api/internal/session"
	"github.com/edusekai/platform-api/pkg/util"
)

// TokenPair carries the issued access and refresh tokens.
type TokenPair struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// AuthService coordinates login, logout, password change and token refresh
// within one tenant.
type AuthService struct {
	users      repository.UserRepository
	roles      repository.RoleRepository
	tokens     *auth.TokenManager
	sessions   *session.Store
	dispatcher events.Dispatcher
	bcryptCost int
}

// AuthDependencies bundles collaborators for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	RoleRepo   repository.RoleRepository
	Tokens     *auth.TokenManager
	Sessions   *session.Store
	Dispatcher events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		roles:      deps.RoleRepo,
		tokens:     deps.Tokens,
		sessions:   deps.Sessions,
		dispatcher: deps.Dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Login authenticates by username or email, requires membership in the
// current tenant, and issues a token pair. Any stale active-role selection
// and cached session are discarded so the new session starts clean.
func (s *AuthService) Login(ctx context.Context, org *domain.Organization, identifier, password string) (*domain.User, *TokenPair, error) {
	user, err := s.users.GetByUsername(ctx, identifier)
	if repository.IsNotFound(err) {
		user, err = s.users.GetByEmail(ctx, identifier)
	}
	if repository.IsNotFound(err) {
		return nil, nil, util.NewUnauthorized("invalid credentials")
	}
	if err != nil {
		return nil, nil, err
	}
	if !user.IsActive {
		return nil, nil, util.NewUnauthorized("account disabled")
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, nil, util.NewUnauthorized("invalid credentials")
	}

	slugs, err := s.roles.SlugsForUser(ctx, org.ID, user.ID)
	if err != nil {
		return nil, nil, err
	}
	if len(slugs) == 0 {
		return nil, nil, util.NewForbidden("no role in this institution")
	}

	pair, err := s.issuePair(user.ID)
	if err != nil {
		return nil, nil, err
	}

	s.sessions.ClearActiveRole(ctx, user.ID) //nolint:errcheck
	s.sessions.Invalidate(ctx, org.ID, user.ID)

	s.publish(ctx, events.EventUserLoggedIn, org.ID, user.ID, events.SessionPayload{Username: user.Username})
	return user, pair, nil
}

// Refresh exchanges a valid refresh token for a new token pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.tokens.ParseToken(refreshToken)
	if err != nil || claims.Kind != auth.TokenKindRefresh {
		return nil, util.NewUnauthorized("invalid refresh token")
	}
	user, err := s.users.GetByID(ctx, claims.UserID)
	if repository.IsNotFound(err) {
		return nil, util.NewSessionUserNotFound()
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, util.NewUnauthorized("account disabled")
	}
	return s.issuePair(user.ID)
}

// Logout drops the active-role selection and the cached session.
func (s *AuthService) Logout(ctx context.Context, org *domain.Organization, user *domain.User) error {
	s.publish(ctx, events.EventUserLoggedOut, org.ID, user.ID, events.SessionPayload{Username: user.Username})
	return nil
}

// SwitchActiveRole pins the given role slug as the session's active role.
// The slug must be one the user actually holds in this tenant.
func (s *AuthService) SwitchActiveRole(ctx context.Context, org *domain.Organization, user *domain.User, slug string) error {
	slugs, err := s.roles.SlugsForUser(ctx, org.ID, user.ID)
	if err != nil {
		return err
	}
	held := false
	for _, candidate := range slugs {
		if candidate == slug {
			held = true
			break
		}
	}
	if !held {
		return util.NewForbidden("role not held")
	}
	if err := s.sessions.SetActiveRole(ctx, user.ID, slug); err != nil {
		return err
	}
	s.publish(ctx, events.EventActiveRoleSwitched, org.ID, user.ID,
		events.SessionPayload{Username: user.Username, ActiveRole: &slug})
	return nil
}

// ChangePassword verifies the current password, applies the new one and
// releases the mandatory-change lock. The stored initial password display is
// wiped at the same moment so the credential leaves the distribution list.
func (s *AuthService) ChangePassword(ctx context.Context, org *domain.Organization, user *domain.User, current, newPassword, confirm string) error {
	if err := auth.ComparePassword(user.PasswordHash, current); err != nil {
		return util.NewUnauthorized("current password is incorrect")
	}
	if err := auth.ValidateNewPassword(newPassword, confirm); err != nil {
		return util.NewValidationError(err.Error(), map[string]any{"new_password": err.Error()})
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.NeedsPasswordChange = false
	user.InitialPasswordDisplay = nil
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.publish(ctx, events.EventPasswordChanged, org.ID, user.ID, events.SessionPayload{Username: user.Username})
	return nil
}

func (s *AuthService) issuePair(userID string) (*TokenPair, error) {
	access, accessExp, err := s.tokens.GenerateToken(userID, auth.TokenKindAccess)
	if err != nil {
		return nil, err
	}
	refresh, refreshExp, err := s.tokens.GenerateToken(userID, auth.TokenKindRefresh)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExp,
	}, nil
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, orgID, userID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Publish(ctx, events.Event{ //nolint:errcheck
		ID:             uuid.NewString(),
		Type:           eventType,
		OrganizationID: orgID,
		UserID:         &userID,
		Timestamp:      time.Now().UTC(),
		Payload:        payload,
	})
}
