package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/forgo/camp/internal/model"
)

// Mock implementations

type mockUserRepo struct {
	users      map[string]*model.User
	emailIndex map[string]*model.User
	createErr  error
	getErr     error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		users:      make(map[string]*model.User),
		emailIndex: make(map[string]*model.User),
	}
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	user.ID = "user:" + user.Email
	m.users[user.ID] = user
	m.emailIndex[user.Email] = user
	return nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.emailIndex[email], nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.users[id], nil
}

func newTestAuthService() (*AuthService, *mockUserRepo) {
	repo := newMockUserRepo()
	return NewAuthService(AuthServiceConfig{UserRepo: repo}), repo
}

// ============================================================================
// Register
// ============================================================================

func TestRegister_StoresHashNotPlaintext(t *testing.T) {
	svc, repo := newTestAuthService()

	user, err := svc.Register(context.Background(), "a@x.com", "secret123")
	require.NoError(t, err)

	stored := repo.emailIndex["a@x.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret123", stored.Hash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Hash), []byte("secret123")))
	assert.Equal(t, user.ID, stored.ID)
}

func TestRegister_NormalizesEmail(t *testing.T) {
	svc, repo := newTestAuthService()

	_, err := svc.Register(context.Background(), "  A@X.Com ", "secret123")
	require.NoError(t, err)
	assert.Contains(t, repo.emailIndex, "a@x.com")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@x.com", "secret123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "a@x.com", "different9")
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestRegister_RejectsBadInput(t *testing.T) {
	svc, repo := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "not-an-email", "secret123")
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = svc.Register(ctx, "a@x.com", "")
	assert.ErrorIs(t, err, ErrPasswordRequired)

	_, err = svc.Register(ctx, "a@x.com", "short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	assert.Empty(t, repo.users)
}

// ============================================================================
// Login
// ============================================================================

func TestLogin_RoundTrip(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, "a@x.com", "secret123")
	require.NoError(t, err)

	user, err := svc.Login(ctx, "a@x.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
}

func TestLogin_FailureDoesNotRevealWhichCredentialWasWrong(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@x.com", "secret123")
	require.NoError(t, err)

	_, wrongPassword := svc.Login(ctx, "a@x.com", "wrong-password")
	_, unknownEmail := svc.Login(ctx, "nobody@x.com", "secret123")

	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)
	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)

	// The two rejections must be indistinguishable to the caller
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

// ============================================================================
// GetUser
// ============================================================================

func TestGetUser_MissingResolvesToNil(t *testing.T) {
	svc, _ := newTestAuthService()

	user, err := svc.GetUser(context.Background(), "user:gone")
	require.NoError(t, err)
	assert.Nil(t, user)

	user, err = svc.GetUser(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, user)
}
