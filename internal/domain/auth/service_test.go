package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"storeboard/internal/core/apperror"
	"storeboard/internal/core/id"
)

type mockUserRepo struct {
	users map[string]*User
}

func newMockUserRepo(users ...*User) *mockUserRepo {
	m := &mockUserRepo{users: make(map[string]*User)}
	for _, u := range users {
		m.users[u.Username] = u
	}
	return m
}

func (m *mockUserRepo) GetByID(ctx context.Context, userID id.ID) (*User, error) {
	for _, u := range m.users {
		if u.ID == userID {
			return u, nil
		}
	}
	return nil, apperror.NewNotFound("user", userID.String())
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*User, error) {
	if u, ok := m.users[username]; ok {
		return u, nil
	}
	return nil, apperror.NewNotFound("user", username)
}

func (m *mockUserRepo) Exists(ctx context.Context, username string) (bool, error) {
	_, ok := m.users[username]
	return ok, nil
}

func (m *mockUserRepo) Create(ctx context.Context, user *User) error {
	m.users[user.Username] = user
	return nil
}

func (m *mockUserRepo) Update(ctx context.Context, user *User) error {
	m.users[user.Username] = user
	return nil
}

func newTestService(users ...*User) *Service {
	jwtSvc := NewJWTService(DefaultJWTConfig("test-secret"))
	return NewService(newMockUserRepo(users...), jwtSvc, DefaultServiceConfig())
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestLogin(t *testing.T) {
	user := NewUser("alice", "Alice", hashed(t, "s3cret-pass"), RoleManager)
	svc := newTestService(user)

	token, got, err := svc.Login(context.Background(), Credentials{
		Username: "alice",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	require.NotNil(t, token)
	assert.Equal(t, user.ID, got.ID)
	assert.NotNil(t, got.LastLoginAt)

	// The issued token round-trips into a user context.
	uc, err := NewJWTService(DefaultJWTConfig("test-secret")).ValidateToken(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), uc.UserID)
	assert.Equal(t, "alice", uc.Username)
	assert.Equal(t, string(RoleManager), uc.Role)
}

func TestLoginInvalidCredentials(t *testing.T) {
	user := NewUser("alice", "Alice", hashed(t, "s3cret-pass"), RoleEmployee)
	svc := newTestService(user)

	_, _, err := svc.Login(context.Background(), Credentials{Username: "alice", Password: "wrong"})
	assert.True(t, apperror.IsCode(err, apperror.CodeUnauthorized))

	_, _, err = svc.Login(context.Background(), Credentials{Username: "nobody", Password: "x"})
	assert.True(t, apperror.IsCode(err, apperror.CodeUnauthorized))
}

func TestLoginLockout(t *testing.T) {
	user := NewUser("alice", "Alice", hashed(t, "s3cret-pass"), RoleEmployee)
	svc := newTestService(user)

	for i := 0; i < DefaultServiceConfig().MaxLoginAttempts; i++ {
		_, _, err := svc.Login(context.Background(), Credentials{Username: "alice", Password: "wrong"})
		require.Error(t, err)
	}

	require.NotNil(t, user.LockedUntil)
	assert.True(t, user.LockedUntil.After(time.Now()))

	// Locked even with the right password.
	_, _, err := svc.Login(context.Background(), Credentials{Username: "alice", Password: "s3cret-pass"})
	assert.True(t, apperror.IsCode(err, apperror.CodeUnauthorized))
}

func TestLoginDisabledAccount(t *testing.T) {
	user := NewUser("alice", "Alice", hashed(t, "s3cret-pass"), RoleAdmin)
	user.Active = false
	svc := newTestService(user)

	_, _, err := svc.Login(context.Background(), Credentials{Username: "alice", Password: "s3cret-pass"})
	assert.True(t, apperror.IsCode(err, apperror.CodeUnauthorized))
}

func TestCreateUser(t *testing.T) {
	svc := newTestService()

	user, err := svc.CreateUser(context.Background(), "bob", "Bob", "long-enough-pass", RoleEmployee)
	require.NoError(t, err)
	assert.Equal(t, RoleEmployee, user.Role)
	assert.NotEqual(t, "long-enough-pass", user.PasswordHash)

	_, err = svc.CreateUser(context.Background(), "bob", "Bob", "long-enough-pass", RoleEmployee)
	assert.True(t, apperror.IsCode(err, apperror.CodeDuplicate))

	_, err = svc.CreateUser(context.Background(), "carol", "Carol", "short", RoleEmployee)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))

	_, err = svc.CreateUser(context.Background(), "carol", "Carol", "long-enough-pass", Role("owner"))
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestRoleCanMutate(t *testing.T) {
	assert.True(t, RoleAdmin.CanMutate())
	assert.True(t, RoleManager.CanMutate())
	assert.False(t, RoleEmployee.CanMutate())
}
