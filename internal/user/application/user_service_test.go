package application

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	sharedDomain "github.com/davicafu/storefront/internal/shared/domain"
	sharedEvents "github.com/davicafu/storefront/internal/shared/domain/events"
	"github.com/davicafu/storefront/internal/shared/infra/auth"
	userDomain "github.com/davicafu/storefront/internal/user/domain"
	"github.com/davicafu/storefront/tests/mocks"
)

const backendURL = "http://localhost:4000/"

func newService(repo *mocks.InMemoryUserRepo, cache *mocks.DummyCache) (*UserService, *auth.TokenManager) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	if cache == nil {
		return NewUserService(repo, tokens, nil, time.Minute, backendURL, zap.NewNop()), tokens
	}
	return NewUserService(repo, tokens, cache, time.Minute, backendURL, zap.NewNop()), tokens
}

func registered(t *testing.T, svc *UserService, email, password string) *userDomain.User {
	t.Helper()
	session, err := svc.Register(context.Background(), RegisterInput{Name: "Ana", Email: email, Password: password, Tel: email})
	require.NoError(t, err)
	return session.User
}

func TestRegister_HashesPasswordAndEmitsEvent(t *testing.T) {
	// Arrange
	repo := mocks.NewInMemoryUserRepo()
	svc, tokens := newService(repo, nil)

	// Act
	session, err := svc.Register(context.Background(), RegisterInput{
		Name: "Ana", Email: " Ana@Example.com ", Password: "secret1", Tel: "0915",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", session.User.Email)
	assert.Equal(t, sharedDomain.RoleUser, session.User.Role)
	assert.NotEqual(t, "secret1", session.User.Password)
	assert.True(t, auth.ComparePassword(session.User.Password, "secret1"))

	id, err := tokens.Verify(session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, id)

	assert.Equal(t, []string{userDomain.UserRegistered}, repo.EventTypes())
	payload, ok := repo.Outbox[0].Payload.(sharedEvents.UserRegistered)
	require.True(t, ok)
	assert.Equal(t, "ana@example.com", payload.Email)
}

func TestRegister_Rejections(t *testing.T) {
	repo := mocks.NewInMemoryUserRepo()
	svc, _ := newService(repo, nil)
	registered(t, svc, "ana@example.com", "secret1")

	_, err := svc.Register(context.Background(), RegisterInput{Name: "B", Email: "b@example.com", Password: "123"})
	assert.ErrorIs(t, err, userDomain.ErrPasswordTooShort)

	_, err = svc.Register(context.Background(), RegisterInput{Name: "C", Email: "ANA@example.com", Password: "secret2"})
	assert.ErrorIs(t, err, userDomain.ErrUserAlreadyExists)

	assert.Len(t, repo.Outbox, 1)
}

func TestLogin(t *testing.T) {
	repo := mocks.NewInMemoryUserRepo()
	svc, _ := newService(repo, nil)
	user := registered(t, svc, "ana@example.com", "secret1")

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"ok with mixed case email", "ANA@example.com", "secret1", nil},
		{"missing password", "ana@example.com", "", userDomain.ErrMissingCredentials},
		{"missing email", "", "secret1", userDomain.ErrMissingCredentials},
		{"unknown email", "nobody@example.com", "secret1", userDomain.ErrInvalidCredentials},
		{"wrong password", "ana@example.com", "secret2", userDomain.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := svc.Login(context.Background(), tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, user.ID, session.User.ID)
			assert.NotEmpty(t, session.Token)
		})
	}
}

func TestForgotAndResetPassword(t *testing.T) {
	// Arrange
	repo := mocks.NewInMemoryUserRepo()
	svc, _ := newService(repo, nil)
	user := registered(t, svc, "ana@example.com", "secret1")

	// Act
	email, err := svc.ForgotPassword(context.Background(), "ANA@example.com")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", email)
	require.Equal(t, []string{userDomain.UserRegistered, userDomain.PasswordResetRequested}, repo.EventTypes())

	payload, ok := repo.Outbox[1].Payload.(sharedEvents.PasswordResetRequested)
	require.True(t, ok)
	require.True(t, strings.HasPrefix(payload.ResetURL, backendURL+"reset/"))
	raw := strings.TrimPrefix(payload.ResetURL, backendURL+"reset/")

	stored, err := repo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, auth.HashResetToken(raw), stored.ResetPasswordToken)
	assert.NotEqual(t, raw, stored.ResetPasswordToken)

	_, err = svc.ResetPassword(context.Background(), raw, "newpass1", "other")
	assert.ErrorIs(t, err, userDomain.ErrPasswordMismatch)

	session, err := svc.ResetPassword(context.Background(), raw, "newpass1", "newpass1")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Empty(t, session.User.ResetPasswordToken)

	_, err = svc.Login(context.Background(), "ana@example.com", "newpass1")
	assert.NoError(t, err)

	_, err = svc.ResetPassword(context.Background(), raw, "again12", "again12")
	assert.ErrorIs(t, err, userDomain.ErrInvalidResetToken)
}

func TestForgotPassword_UnknownEmail(t *testing.T) {
	svc, _ := newService(mocks.NewInMemoryUserRepo(), nil)

	_, err := svc.ForgotPassword(context.Background(), "nobody@example.com")

	assert.ErrorIs(t, err, userDomain.ErrEmailNotFound)
}

func TestResetPassword_Expired(t *testing.T) {
	repo := mocks.NewInMemoryUserRepo()
	svc, _ := newService(repo, nil)
	registered(t, svc, "ana@example.com", "secret1")
	_, err := svc.ForgotPassword(context.Background(), "ana@example.com")
	require.NoError(t, err)
	raw := strings.TrimPrefix(repo.Outbox[1].Payload.(sharedEvents.PasswordResetRequested).ResetURL, backendURL+"reset/")

	svc.now = func() time.Time { return time.Now().UTC().Add(userDomain.ResetTokenTTL + time.Minute) }
	_, err = svc.ResetPassword(context.Background(), raw, "newpass1", "newpass1")

	assert.ErrorIs(t, err, userDomain.ErrInvalidResetToken)
}

func TestUpdatePassword(t *testing.T) {
	repo := mocks.NewInMemoryUserRepo()
	svc, _ := newService(repo, nil)
	user := registered(t, svc, "ana@example.com", "secret1")

	_, err := svc.UpdatePassword(context.Background(), user.ID, "wrong", "newpass1")
	assert.ErrorIs(t, err, userDomain.ErrOldPasswordWrong)

	_, err = svc.UpdatePassword(context.Background(), user.ID, "secret1", "newpass1")
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "ana@example.com", "newpass1")
	assert.NoError(t, err)
}

func TestUpdateProfile_InvalidatesPrincipal(t *testing.T) {
	// Arrange
	repo := mocks.NewInMemoryUserRepo()
	cache := mocks.NewDummyCache()
	svc, _ := newService(repo, cache)
	user := registered(t, svc, "ana@example.com", "secret1")
	key := userDomain.CacheKeyByID(user.ID)

	_, err := svc.LoadPrincipal(context.Background(), user.ID)
	require.NoError(t, err)
	require.True(t, cache.Has(key))

	// Act
	name, city := "Ana Maria", "Tehran"
	updated, err := svc.UpdateProfile(context.Background(), user.ID, userDomain.Profile{Name: &name, City: &city})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", updated.Name)
	assert.Equal(t, "Tehran", updated.City)
	assert.Equal(t, "ana@example.com", updated.Email)
	assert.False(t, cache.Has(key))
}

func TestAdminUpdateUser_PromotionVisibleOnNextLoad(t *testing.T) {
	// Arrange
	repo := mocks.NewInMemoryUserRepo()
	cache := mocks.NewDummyCache()
	svc, _ := newService(repo, cache)
	user := registered(t, svc, "ana@example.com", "secret1")
	key := userDomain.CacheKeyByID(user.ID)

	before, err := svc.LoadPrincipal(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, sharedDomain.RoleUser, before.Role)
	require.True(t, cache.Has(key))

	// Act
	_, err = svc.AdminUpdateUser(context.Background(), user.ID, "", "", sharedDomain.RoleAdmin)
	require.NoError(t, err)
	evicted := !cache.Has(key)
	after, err := svc.LoadPrincipal(context.Background(), user.ID)

	// Assert
	assert.True(t, evicted)
	require.NoError(t, err)
	assert.Equal(t, sharedDomain.RoleAdmin, after.Role)
	assert.True(t, cache.Has(key))
}

func TestDeleteUser_EvictsPrincipal(t *testing.T) {
	// Arrange
	repo := mocks.NewInMemoryUserRepo()
	cache := mocks.NewDummyCache()
	svc, _ := newService(repo, cache)
	user := registered(t, svc, "ana@example.com", "secret1")
	_, err := svc.LoadPrincipal(context.Background(), user.ID)
	require.NoError(t, err)

	// Act
	_, err = svc.DeleteUser(context.Background(), user.ID)

	// Assert
	require.NoError(t, err)
	_, err = svc.LoadPrincipal(context.Background(), user.ID)
	assert.ErrorIs(t, err, userDomain.ErrUserNotFound)
}

func TestLoadPrincipal(t *testing.T) {
	repo := mocks.NewInMemoryUserRepo()
	cache := mocks.NewDummyCache()
	svc, _ := newService(repo, cache)
	user := registered(t, svc, "ana@example.com", "secret1")

	principal, err := svc.LoadPrincipal(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, &sharedDomain.Principal{ID: user.ID, Name: "Ana", Email: "ana@example.com", Role: sharedDomain.RoleUser}, principal)

	// Borrado del repo: sigue resolviendo desde la caché.
	require.True(t, cache.Has(userDomain.CacheKeyByID(user.ID)))
	require.True(t, repo.MemStore.Delete(user.ID))
	cached, err := svc.LoadPrincipal(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, principal, cached)

	_, err = svc.LoadPrincipal(context.Background(), uuid.New())
	assert.ErrorIs(t, err, userDomain.ErrUserNotFound)
}

func TestAdminOperations(t *testing.T) {
	repo := mocks.NewInMemoryUserRepo()
	svc, _ := newService(repo, nil)
	ana := registered(t, svc, "ana@example.com", "secret1")
	registered(t, svc, "bob@example.com", "secret1")

	users, err := svc.ListUsers(context.Background(), url.Values{"keyword": {"ana"}})
	require.NoError(t, err)
	assert.Len(t, users, 2)

	_, err = svc.AdminUpdateUser(context.Background(), ana.ID, "", "", "root")
	assert.ErrorIs(t, err, userDomain.ErrInvalidRole)

	updated, err := svc.AdminUpdateUser(context.Background(), ana.ID, "", "", sharedDomain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, sharedDomain.RoleAdmin, updated.Role)
	assert.Equal(t, "Ana", updated.Name)

	admins, err := svc.ListUsers(context.Background(), url.Values{"role": {sharedDomain.RoleAdmin}})
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, ana.ID, admins[0].ID)

	deleted, err := svc.DeleteUser(context.Background(), ana.ID)
	require.NoError(t, err)
	assert.Equal(t, ana.ID, deleted.ID)

	_, err = svc.GetUser(context.Background(), ana.ID)
	assert.ErrorIs(t, err, userDomain.ErrUserNotFound)
}
