package auth

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/edusekai/platform-api/internal/domain"
	"github.com/edusekai/platform-api/internal/repository"
	"github.com/edusekai/platform-api/internal/tenant"
	apperrors "github.com/edusekai/platform-api/pkg/util"
)

const principalKey = "auth_principal"

// SessionStore is the slice of session state the middleware reads and
// writes: the persisted active-role slot and the resolved-session cache.
type SessionStore interface {
	ActiveRole(ctx context.Context, userID string) (string, error)
	SetActiveRole(ctx context.Context, userID, slug string) error
	CachedSession(ctx context.Context, orgID, userID string) (*domain.SessionUser, bool)
	CacheSession(ctx context.Context, orgID, userID string, sess *domain.SessionUser)
}

// Principal represents the authenticated caller within a tenant.
type Principal struct {
	User         *domain.User
	Organization *domain.Organization
	Session      *domain.SessionUser
	Checker      Checker
}

// Middleware validates bearer tokens and resolves the tenant session: the
// user's held roles, the active role and its permission set.
type Middleware struct {
	tokens   *TokenManager
	users    repository.UserRepository
	roles    repository.RoleRepository
	profiles repository.ProfileRepository
	sessions SessionStore
}

// NewMiddleware constructs auth middleware.
func NewMiddleware(tokens *TokenManager, users repository.UserRepository, roles repository.RoleRepository, profiles repository.ProfileRepository, sessions SessionStore) *Middleware {
	return &Middleware{tokens: tokens, users: users, roles: roles, profiles: profiles, sessions: sessions}
}

// Handle enforces authentication for tenant-scoped protected routes. It must
// run after tenant resolution.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	org, ok := tenant.OrganizationFromContext(c)
	if !ok {
		return apperrors.NewInternalError(nil)
	}

	claims, err := m.parseBearer(c)
	if err != nil {
		return err
	}

	ctx := c.UserContext()

	user, err := m.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if repository.IsNotFound(err) {
			// The tenant resolved but the session identity is gone, e.g.
			// after a credential reset. Clients get the distinguished code
			// so they can offer logout instead of "institution not found".
			return apperrors.NewSessionUserNotFound()
		}
		return apperrors.MapError(err)
	}
	if !user.IsActive {
		return apperrors.NewUnauthorized("account disabled")
	}

	requestedRole := c.Query("active_role")
	sess, err := m.resolveSession(ctx, org, user, requestedRole)
	if err != nil {
		return apperrors.MapError(err)
	}

	c.Locals(principalKey, &Principal{
		User:         user,
		Organization: org,
		Session:      sess,
		Checker:      NewChecker(sess),
	})
	return c.Next()
}

func (m *Middleware) parseBearer(c *fiber.Ctx) (*Claims, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil || claims.Kind != TokenKindAccess {
		return nil, apperrors.NewUnauthorized("invalid token")
	}
	return claims, nil
}

// resolveSession loads the session payload, preferring the cached copy when
// it matches the requested role. An explicit active_role request persists to
// the role slot only once the held-role check confirms it; an unheld slug
// must not stick and force a rebuild on every later request.
func (m *Middleware) resolveSession(ctx context.Context, org *domain.Organization, user *domain.User, requestedRole string) (*domain.SessionUser, error) {
	explicit := requestedRole != ""
	if !explicit {
		requestedRole, _ = m.sessions.ActiveRole(ctx, user.ID)
	}

	if cached, ok := m.sessions.CachedSession(ctx, org.ID, user.ID); ok {
		if requestedRole == "" || cached.ActiveRole == requestedRole {
			cached.User = user
			return cached, nil
		}
	}

	sess, err := m.buildSession(ctx, org, user, requestedRole)
	if err != nil {
		return nil, err
	}
	if explicit && sess.ActiveRole == requestedRole {
		_ = m.sessions.SetActiveRole(ctx, user.ID, requestedRole)
	}
	m.sessions.CacheSession(ctx, org.ID, user.ID, sess)
	return sess, nil
}

func (m *Middleware) buildSession(ctx context.Context, org *domain.Organization, user *domain.User, requestedRole string) (*domain.SessionUser, error) {
	slugs, err := m.roles.SlugsForUser(ctx, org.ID, user.ID)
	if err != nil {
		return nil, err
	}

	// Requested role only counts when the user actually holds it; otherwise
	// fall back to the first held role.
	active := ""
	for _, s := range slugs {
		if s == requestedRole {
			active = s
			break
		}
	}
	if active == "" && len(slugs) > 0 {
		active = slugs[0]
	}

	sess := &domain.SessionUser{
		User:       user,
		Roles:      slugs,
		ActiveRole: active,
	}

	if active == domain.RoleSlugOwner {
		sess.Permissions = []string{domain.PermissionWildcard}
	} else if active != "" {
		codenames, err := m.roles.CodenamesForSlug(ctx, org.ID, active)
		if err != nil {
			return nil, err
		}
		sess.Permissions = codenames
	}

	profile, err := m.profiles.GetByUserID(ctx, org.ID, user.ID)
	if err == nil {
		sess.Profile = profile
	} else if !repository.IsNotFound(err) {
		return nil, err
	}

	return sess, nil
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
