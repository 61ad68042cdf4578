package service

import (
	"context"
	"errors"
	"strings"

	"barrique/internal/auth"
	"barrique/internal/models"
	"barrique/internal/observability"
	"barrique/internal/repository"
	"barrique/internal/validation"

	"go.opentelemetry.io/otel/attribute"
)

const invalidCredentials = "Invalid username or password"

// AuthService registers users, checks credentials and issues tokens.
type AuthService struct {
	users  repository.UserRepository
	hasher *auth.PasswordHasher
	tokens *auth.TokenService
}

func NewAuthService(users repository.UserRepository, hasher *auth.PasswordHasher, tokens *auth.TokenService) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens}
}

// Register creates a user, hashing the password exactly once.
func (s *AuthService) Register(ctx context.Context, username, password string) (user *models.User, err error) {
	ctx, end := observability.StartServiceSpan(ctx, "AuthService", "Register")
	defer func() {
		observability.RecordAuthEvent("register", err == nil)
		end(err)
	}()

	username = strings.TrimSpace(username)
	if err := validation.ValidateUsername(username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	existing, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("Username is already taken")
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user = &models.User{Username: username, Password: hashed}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate returns a fresh token. Unknown users and wrong passwords are
// indistinguishable to the caller.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (token string, err error) {
	ctx, end := observability.StartServiceSpan(ctx, "AuthService", "Authenticate")
	defer func() {
		observability.RecordAuthEvent("login", err == nil)
		end(err)
	}()

	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", models.NewUnauthorizedError(invalidCredentials)
	}

	ok, err := s.hasher.Matches(user.Password, password)
	if err != nil || !ok {
		return "", models.NewUnauthorizedError(invalidCredentials)
	}

	token, err = s.tokens.Issue(user.Username, user.ID)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return token, nil
}

// Logout revokes the token until it would have expired.
func (s *AuthService) Logout(ctx context.Context, token string) (err error) {
	ctx, end := observability.StartServiceSpan(ctx, "AuthService", "Logout")
	defer func() {
		observability.RecordAuthEvent("logout", err == nil)
		end(err)
	}()

	claims, err := s.tokens.ParseActive(ctx, token)
	if err != nil {
		return tokenError(err)
	}
	if err := s.tokens.Revoke(ctx, claims); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// ResolveCaller validates the token and returns the identity it was issued
// to. Only ID and Username are populated.
func (s *AuthService) ResolveCaller(ctx context.Context, token string) (caller *models.User, err error) {
	ctx, end := observability.StartServiceSpan(ctx, "AuthService", "ResolveCaller")
	defer func() { end(err) }()

	claims, err := s.tokens.ParseActive(ctx, token)
	if err != nil {
		return nil, tokenError(err)
	}

	username := claims.Username()
	id, err := s.users.ResolveID(ctx, username)
	if err != nil {
		if models.HasCode(err, models.CodeNotFound) {
			return nil, models.NewUnauthorizedError("User no longer exists")
		}
		return nil, err
	}
	if id != claims.UserID {
		return nil, models.NewUnauthorizedError("User no longer exists")
	}

	observability.AnnotateSpan(ctx, attribute.Int64("user.id", int64(id)))
	return &models.User{ID: id, Username: username}, nil
}

func tokenError(err error) error {
	if errors.Is(err, auth.ErrInvalidToken) {
		return models.NewUnauthorizedError("Invalid or expired token")
	}
	return models.NewInternalError(err)
}
