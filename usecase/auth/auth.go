// Package auth is the access and session gate: plaintext credential
// checks against the user collection, Redis-backed sessions holding a
// sanitized user snapshot, and the referential guards around user
// mutation. There is deliberately no hashing, lockout, or rate limiting;
// the gate reproduces the permissive contract it fronts.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/casaflow/backend/domain"
	"github.com/casaflow/backend/repository"
)

type UseCase struct {
	users      repository.UserRepository
	sessions   repository.SessionRepository
	properties repository.PropertyRepository
	clients    repository.ClientRepository
	sessionTTL time.Duration
	logger     *zap.Logger
}

func New(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	properties repository.PropertyRepository,
	clients repository.ClientRepository,
	sessionTTL time.Duration,
	logger *zap.Logger,
) *UseCase {
	if sessionTTL <= 0 {
		sessionTTL = 12 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:      users,
		sessions:   sessions,
		properties: properties,
		clients:    clients,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

// Login scans the user collection for an exact username/password match
// and, on success, establishes a session carrying the sanitized user.
func (uc *UseCase) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	if username == "" || password == "" {
		return nil, domain.ErrUnauthorized
	}

	users, err := uc.users.List(ctx)
	if err != nil {
		return nil, err
	}

	var match *domain.User
	for i := range users {
		if users[i].Username == username && users[i].Password == password {
			match = &users[i]
			break
		}
	}
	if match == nil {
		return nil, domain.ErrUnauthorized
	}

	now := time.Now()
	session := &domain.Session{
		ID:        uuid.NewString(),
		User:      *match.Sanitized(),
		CreatedAt: now,
		ExpiresAt: now.Add(uc.sessionTTL),
	}

	if err := uc.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Logout clears the session.
func (uc *UseCase) Logout(ctx context.Context, sessionID string) error {
	return uc.sessions.Delete(ctx, sessionID)
}

// GetSession resolves an active session, evicting it when expired.
func (uc *UseCase) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsExpired(time.Now()) {
		_ = uc.sessions.Delete(ctx, sessionID)
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

// ListUsers returns every account with passwords stripped.
func (uc *UseCase) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := uc.users.List(ctx)
	if err != nil {
		return nil, err
	}
	sanitized := make([]domain.User, 0, len(users))
	for i := range users {
		sanitized = append(sanitized, *users[i].Sanitized())
	}
	return sanitized, nil
}

// CreateUser registers an account after a duplicate-username check.
func (uc *UseCase) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user == nil || user.Username == "" || user.Password == "" {
		return nil, domain.ErrInvalidPayload
	}
	if user.Role == "" {
		user.Role = domain.RoleAgent
	}

	taken, err := uc.usernameTaken(ctx, user.Username, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrDuplicateUsername
	}

	created, err := uc.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	return created.Sanitized(), nil
}

// UpdateUser rewrites an account, keeping the stored password when the
// caller omits one and re-checking username uniqueness against everyone else.
func (uc *UseCase) UpdateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user == nil || user.ID == "" || user.Username == "" {
		return nil, domain.ErrInvalidPayload
	}

	taken, err := uc.usernameTaken(ctx, user.Username, user.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrDuplicateUsername
	}

	if user.Password == "" {
		current, err := uc.users.GetByID(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		user.Password = current.Password
	}

	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user.Sanitized(), nil
}

// DeleteUser removes an account, guarded at this layer: no deleting the
// active session's own account, no deleting another admin without a prior
// demotion, and no deleting a user still referenced as agent on any
// property or client. The caller must reassign those first.
func (uc *UseCase) DeleteUser(ctx context.Context, actor *domain.User, targetID string) error {
	if actor == nil || targetID == "" {
		return domain.ErrInvalidPayload
	}
	if actor.ID == targetID {
		return domain.ErrSelfDelete
	}

	target, err := uc.users.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target.IsAdmin() {
		return domain.ErrAdminDelete
	}

	if err := uc.checkReferences(ctx, targetID); err != nil {
		return err
	}

	return uc.users.Delete(ctx, targetID)
}

// DedupeUsers removes accounts whose username duplicates an earlier one,
// keeping the first occurrence in collection order. The operation is
// idempotent; it returns how many duplicates were removed.
func (uc *UseCase) DedupeUsers(ctx context.Context) (int, error) {
	users, err := uc.users.List(ctx)
	if err != nil {
		return 0, err
	}

	seen := make(map[string]bool, len(users))
	removed := 0
	for i := range users {
		if !seen[users[i].Username] {
			seen[users[i].Username] = true
			continue
		}
		if err := uc.users.Delete(ctx, users[i].ID); err != nil {
			return removed, err
		}
		removed++
	}

	if removed > 0 {
		uc.logger.Info("removed duplicate user accounts", zap.Int("count", removed))
	}
	return removed, nil
}

func (uc *UseCase) usernameTaken(ctx context.Context, username, excludeID string) (bool, error) {
	users, err := uc.users.List(ctx)
	if err != nil {
		return false, err
	}
	for i := range users {
		if users[i].Username == username && users[i].ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (uc *UseCase) checkReferences(ctx context.Context, userID string) error {
	properties, err := uc.properties.List(ctx)
	if err != nil {
		return err
	}
	propertyRefs := 0
	for i := range properties {
		if properties[i].AgentID != nil && *properties[i].AgentID == userID {
			propertyRefs++
		}
	}

	clients, err := uc.clients.List(ctx)
	if err != nil {
		return err
	}
	clientRefs := 0
	for i := range clients {
		if clients[i].AssignedAgentID != nil && *clients[i].AssignedAgentID == userID {
			clientRefs++
		}
	}

	if propertyRefs > 0 || clientRefs > 0 {
		return domain.NewError(domain.ErrCodeConflict, fmt.Sprintf(
			"user is still assigned to %d properties and %d clients; reassign them first",
			propertyRefs, clientRefs))
	}
	return nil
}
