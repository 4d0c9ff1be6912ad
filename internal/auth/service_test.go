package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	pkgAuth "github.com/weddingbazaar/wedding-bazaar-backend/pkg/auth"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/auth/session"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/config"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/db/models"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/enums"
	pkgerrors "github.com/weddingbazaar/wedding-bazaar-backend/pkg/errors"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/security"
)

type fakeUserRepo struct {
	users map[string]*models.User
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if user, ok := f.users[email]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return nil
}

type fakeSessions struct {
	sessions map[string]string
	revoked  []string
	counter  int
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{sessions: map[string]string{}}
}

func (f *fakeSessions) Generate(ctx context.Context, accessID string) (string, error) {
	f.counter++
	token := uuid.NewString()
	f.sessions[accessID] = token
	return token, nil
}

func (f *fakeSessions) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	stored, ok := f.sessions[oldAccessID]
	if !ok || stored != provided {
		return "", "", session.ErrInvalidRefreshToken
	}
	delete(f.sessions, oldAccessID)
	newAccessID := session.NewAccessID()
	token, _ := f.Generate(ctx, newAccessID)
	return newAccessID, token, nil
}

func (f *fakeSessions) Revoke(ctx context.Context, accessID string) error {
	f.revoked = append(f.revoked, accessID)
	delete(f.sessions, accessID)
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "weddingbazaar",
		ExpirationMinutes: 30,
	}
}

func mustHashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := security.HashPassword(password, config.PasswordConfig{})
	require.NoError(t, err)
	return hashed
}

func seedUser(t *testing.T, role enums.UserRole, password string) (*fakeUserRepo, *models.User) {
	t.Helper()
	user := &models.User{
		ID:           uuid.New(),
		Email:        "pat@example.com",
		PasswordHash: mustHashPassword(t, password),
		FirstName:    "Pat",
		LastName:     "Reyes",
		Role:         role,
		IsActive:     true,
	}
	return &fakeUserRepo{users: map[string]*models.User{user.Email: user}}, user
}

func TestLoginVendorCarriesVendorID(t *testing.T) {
	repo, user := seedUser(t, enums.UserRoleVendor, "vendor-secret")
	cfg := testJWTConfig()
	svc, err := NewService(ServiceParams{UserRepo: repo, SessionManager: newFakeSessions(), JWTConfig: cfg})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), LoginRequest{Email: user.Email, Password: "vendor-secret"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.RefreshToken)

	claims, err := pkgAuth.ParseAccessToken(cfg, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, enums.UserRoleVendor, claims.Role)
	require.NotNil(t, claims.VendorID)
	assert.Equal(t, user.ID, *claims.VendorID, "vendor id is the user id")
}

func TestLoginCoupleHasNoVendorID(t *testing.T) {
	repo, user := seedUser(t, enums.UserRoleCouple, "couple-secret")
	cfg := testJWTConfig()
	svc, err := NewService(ServiceParams{UserRepo: repo, SessionManager: newFakeSessions(), JWTConfig: cfg})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), LoginRequest{Email: user.Email, Password: "couple-secret"})
	require.NoError(t, err)

	claims, err := pkgAuth.ParseAccessToken(cfg, resp.AccessToken)
	require.NoError(t, err)
	assert.Nil(t, claims.VendorID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	repo, user := seedUser(t, enums.UserRoleCouple, "right-password")
	svc, err := NewService(ServiceParams{UserRepo: repo, SessionManager: newFakeSessions(), JWTConfig: testJWTConfig()})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginRequest{Email: user.Email, Password: "wrong-password"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.CodeOf(err))

	_, err = svc.Login(context.Background(), LoginRequest{Email: "missing@example.com", Password: "whatever"})
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.CodeOf(err))
}

func TestLoginRejectsDeactivatedAccount(t *testing.T) {
	repo, user := seedUser(t, enums.UserRoleCouple, "secret-pass")
	user.IsActive = false
	svc, err := NewService(ServiceParams{UserRepo: repo, SessionManager: newFakeSessions(), JWTConfig: testJWTConfig()})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginRequest{Email: user.Email, Password: "secret-pass"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.CodeOf(err))
}

func TestRefreshRotatesSession(t *testing.T) {
	repo, user := seedUser(t, enums.UserRoleVendor, "vendor-secret")
	sessions := newFakeSessions()
	cfg := testJWTConfig()
	svc, err := NewService(ServiceParams{UserRepo: repo, SessionManager: sessions, JWTConfig: cfg})
	require.NoError(t, err)

	login, err := svc.Login(context.Background(), LoginRequest{Email: user.Email, Password: "vendor-secret"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	claims, err := pkgAuth.ParseAccessToken(cfg, refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	require.NotNil(t, claims.VendorID)

	// The old pair is spent.
	_, err = svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.CodeOf(err))
}

func TestLogoutRevokesSession(t *testing.T) {
	repo, user := seedUser(t, enums.UserRoleCouple, "couple-secret")
	sessions := newFakeSessions()
	svc, err := NewService(ServiceParams{UserRepo: repo, SessionManager: sessions, JWTConfig: testJWTConfig()})
	require.NoError(t, err)

	login, err := svc.Login(context.Background(), LoginRequest{Email: user.Email, Password: "couple-secret"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), login.AccessToken))
	require.Len(t, sessions.revoked, 1)

	_, err = svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	require.Error(t, err)
}
