package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"barrique/internal/auth"
	"barrique/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn          func(context.Context, uint) (*models.User, error)
	getByUsernameFn    func(context.Context, string) (*models.User, error)
	resolveIDFn        func(context.Context, string) (uint, error)
	createFn           func(context.Context, *models.User) error
	deleteByUsernameFn func(context.Context, string) error
	listFn             func(context.Context, int, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) ResolveID(ctx context.Context, username string) (uint, error) {
	return s.resolveIDFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) DeleteByUsername(ctx context.Context, username string) error {
	return s.deleteByUsernameFn(ctx, username)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}

// memoryUsers backs a userRepoStub with a map keyed by username.
func memoryUsers() (*userRepoStub, map[string]*models.User) {
	users := map[string]*models.User{}
	nextID := uint(1)
	stub := &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			for _, u := range users {
				if u.ID == id {
					return u, nil
				}
			}
			return nil, models.NewNotFoundError("User", id)
		},
		getByUsernameFn: func(_ context.Context, username string) (*models.User, error) {
			return users[username], nil
		},
		resolveIDFn: func(_ context.Context, username string) (uint, error) {
			if u, ok := users[username]; ok {
				return u.ID, nil
			}
			return 0, models.NewNotFoundError("User", username)
		},
		createFn: func(_ context.Context, u *models.User) error {
			if _, ok := users[u.Username]; ok {
				return models.NewConflictError("Username is already taken")
			}
			u.ID = nextID
			nextID++
			users[u.Username] = u
			return nil
		},
		deleteByUsernameFn: func(_ context.Context, username string) error {
			delete(users, username)
			return nil
		},
		listFn: func(_ context.Context, _, _ int) ([]models.User, error) { return nil, nil },
	}
	return stub, users
}

type revocationMap map[string]time.Duration

func (m revocationMap) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	m[jti] = ttl
	return nil
}

func (m revocationMap) IsRevoked(_ context.Context, jti string) (bool, error) {
	_, ok := m[jti]
	return ok, nil
}

func newAuthService(t *testing.T) (*AuthService, map[string]*models.User, revocationMap) {
	t.Helper()
	repo, users := memoryUsers()
	revoked := revocationMap{}
	tokens, err := auth.NewTokenService("test-secret-key-12345678901234567890123456789012", "barrique-api",
		10*time.Minute, auth.WithRevocationStore(revoked))
	require.NoError(t, err)
	return NewAuthService(repo, auth.NewPasswordHasher(4), tokens), users, revoked
}

func TestAuthService_Register(t *testing.T) {
	svc, users, _ := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "bob", "pw123")
	require.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)
	assert.NotEqual(t, "pw123", users["bob"].Password, "password is stored hashed")

	tests := []struct {
		name     string
		username string
		password string
		wantCode string
	}{
		{"duplicate username", "bob", "other", models.CodeConflict},
		{"blank username", "  ", "pw123", models.CodeValidation},
		{"blank password", "carol", "", models.CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.username, tt.password)
			assert.True(t, models.HasCode(err, tt.wantCode), "got %v", err)
		})
	}
}

func TestAuthService_Authenticate(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()
	_, err := svc.Register(ctx, "bob", "pw123")
	require.NoError(t, err)

	token, err := svc.Authenticate(ctx, "bob", "pw123")
	require.NoError(t, err)
	assert.True(t, svc.tokens.Validate(ctx, token, "bob"))

	_, wrongPassword := svc.Authenticate(ctx, "bob", "nope")
	_, unknownUser := svc.Authenticate(ctx, "mallory", "pw123")

	for _, err := range []error{wrongPassword, unknownUser} {
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, models.CodeUnauthorized, appErr.Code)
		assert.Equal(t, invalidCredentials, appErr.Message)
	}
}

func TestAuthService_ResolveCallerAndLogout(t *testing.T) {
	svc, users, revoked := newAuthService(t)
	ctx := context.Background()
	_, err := svc.Register(ctx, "bob", "pw123")
	require.NoError(t, err)
	token, err := svc.Authenticate(ctx, "bob", "pw123")
	require.NoError(t, err)

	caller, err := svc.ResolveCaller(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, users["bob"].ID, caller.ID)
	assert.Equal(t, "bob", caller.Username)

	_, err = svc.ResolveCaller(ctx, "garbage")
	assert.True(t, models.HasCode(err, models.CodeUnauthorized))

	require.NoError(t, svc.Logout(ctx, token))
	assert.Len(t, revoked, 1)
	_, err = svc.ResolveCaller(ctx, token)
	assert.True(t, models.HasCode(err, models.CodeUnauthorized))

	err = svc.Logout(ctx, token)
	assert.True(t, models.HasCode(err, models.CodeUnauthorized), "a revoked token cannot log out twice")
}

func TestAuthService_ResolveCallerDeletedUser(t *testing.T) {
	svc, users, _ := newAuthService(t)
	ctx := context.Background()
	_, err := svc.Register(ctx, "bob", "pw123")
	require.NoError(t, err)
	token, err := svc.Authenticate(ctx, "bob", "pw123")
	require.NoError(t, err)

	delete(users, "bob")
	_, err = svc.ResolveCaller(ctx, token)
	assert.True(t, models.HasCode(err, models.CodeUnauthorized))
}

func TestAuthService_ResolveCallerReRegisteredUsername(t *testing.T) {
	svc, users, _ := newAuthService(t)
	ctx := context.Background()
	_, err := svc.Register(ctx, "bob", "pw123")
	require.NoError(t, err)
	stale, err := svc.Authenticate(ctx, "bob", "pw123")
	require.NoError(t, err)

	delete(users, "bob")
	_, err = svc.Register(ctx, "bob", "another")
	require.NoError(t, err)

	_, err = svc.ResolveCaller(ctx, stale)
	assert.True(t, models.HasCode(err, models.CodeUnauthorized))

	fresh, err := svc.Authenticate(ctx, "bob", "another")
	require.NoError(t, err)
	caller, err := svc.ResolveCaller(ctx, fresh)
	require.NoError(t, err)
	assert.Equal(t, users["bob"].ID, caller.ID)
}

func TestUserService_DeleteSelf(t *testing.T) {
	repo, users := memoryUsers()
	svc := NewUserService(repo)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &models.User{Username: "bob"}))
	require.NoError(t, repo.Create(ctx, &models.User{Username: "carol"}))

	err := svc.DeleteSelf(ctx, users["carol"], "bob")
	assert.True(t, models.HasCode(err, models.CodeForbidden))
	assert.Contains(t, users, "bob")

	require.NoError(t, svc.DeleteSelf(ctx, users["bob"], "bob"))
	assert.NotContains(t, users, "bob")
}
