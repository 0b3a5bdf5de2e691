package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aipromptweb_backend/internal/auth"
	"aipromptweb_backend/internal/models"
	"aipromptweb_backend/internal/services/dto"
	"aipromptweb_backend/pkg/apperrors"
)

const testGoogleClientID = "client-id.apps.googleusercontent.com"

func newTestAuthService(t *testing.T, repo *fakeUserRepo, verifier *auth.GoogleVerifier) AuthService {
	t.Helper()
	tokens, err := auth.NewTokenManager("test-secret")
	require.NoError(t, err)
	return NewAuthService(repo, tokens, verifier)
}

func assertAppError(t *testing.T, err error, httpCode int) *apperrors.AppError {
	t.Helper()
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok, "expected AppError, got %v", err)
	assert.Equal(t, httpCode, appErr.HTTPCode)
	return appErr
}

func TestSignup_CreatesUserAndIssuesToken(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(t, repo, nil)

	user, token, err := svc.Signup(&dto.SignupRequest{
		Email:    "new@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	assert.Equal(t, models.UserRoleUser, user.Role)
	assert.Equal(t, models.UserStatusActive, user.Status)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "password123", user.PasswordHash)

	tokens, err := auth.NewTokenManager("test-secret")
	require.NoError(t, err)
	claims, err := tokens.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.Subject)
	assert.Equal(t, "new@example.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(t, repo, nil)

	_, _, err := svc.Signup(&dto.SignupRequest{Email: "dup@example.com", Password: "password123"})
	require.NoError(t, err)

	_, _, err = svc.Signup(&dto.SignupRequest{Email: "dup@example.com", Password: "password456"})
	appErr := assertAppError(t, err, http.StatusConflict)
	assert.Equal(t, apperrors.CodeAlreadyExists, appErr.Code)
}

func TestSignup_RejectsShortPassword(t *testing.T) {
	svc := newTestAuthService(t, newFakeUserRepo(), nil)

	_, _, err := svc.Signup(&dto.SignupRequest{Email: "a@example.com", Password: "abc"})
	assertAppError(t, err, http.StatusBadRequest)
}

func TestLogin_Success(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(t, repo, nil)

	_, _, err := svc.Signup(&dto.SignupRequest{Email: "user@example.com", Password: "password123"})
	require.NoError(t, err)

	user, token, err := svc.Login(&dto.LoginRequest{Email: "user@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", user.Email)
	assert.NotEmpty(t, token)
}

func TestLogin_WrongPasswordAndUnknownEmailLookTheSame(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(t, repo, nil)

	_, _, err := svc.Signup(&dto.SignupRequest{Email: "user@example.com", Password: "password123"})
	require.NoError(t, err)

	_, _, errWrongPass := svc.Login(&dto.LoginRequest{Email: "user@example.com", Password: "nope-nope"})
	_, _, errNoUser := svc.Login(&dto.LoginRequest{Email: "ghost@example.com", Password: "password123"})

	wrongPass := assertAppError(t, errWrongPass, http.StatusUnauthorized)
	noUser := assertAppError(t, errNoUser, http.StatusUnauthorized)
	assert.Equal(t, wrongPass.Code, noUser.Code)
	assert.Equal(t, wrongPass.Message, noUser.Message)
}

func TestLogin_BlockedUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(t, repo, nil)

	_, _, err := svc.Signup(&dto.SignupRequest{Email: "blocked@example.com", Password: "password123"})
	require.NoError(t, err)

	stored, err := repo.FindByEmail("blocked@example.com")
	require.NoError(t, err)
	stored.Status = models.UserStatusBlocked
	require.NoError(t, repo.Update(stored))

	_, _, err = svc.Login(&dto.LoginRequest{Email: "blocked@example.com", Password: "password123"})
	appErr := assertAppError(t, err, http.StatusForbidden)
	assert.Equal(t, "User blocked", appErr.Message)
}

func newFakeGoogleVerifier(t *testing.T, info map[string]string) *auth.GoogleVerifier {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("id_token") == "bad-token" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(info)
	}))
	t.Cleanup(srv.Close)
	return auth.NewGoogleVerifierWithEndpoint(testGoogleClientID, srv.URL)
}

func TestGoogleLogin_CreatesNewUser(t *testing.T) {
	repo := newFakeUserRepo()
	verifier := newFakeGoogleVerifier(t, map[string]string{
		"aud":     testGoogleClientID,
		"sub":     "google-sub-1",
		"email":   "fresh@example.com",
		"picture": "https://example.com/p.png",
	})
	svc := newTestAuthService(t, repo, verifier)

	user, token, err := svc.GoogleLogin(context.Background(), "good-token")
	require.NoError(t, err)

	assert.Equal(t, "fresh@example.com", user.Email)
	assert.Equal(t, models.UserRoleUser, user.Role)
	assert.Equal(t, "google-sub-1", user.ExternalID)
	assert.Equal(t, "google", user.ExternalProvider)
	assert.Empty(t, user.PasswordHash)
	assert.NotEmpty(t, token)
}

func TestGoogleLogin_LinksExistingPasswordAccount(t *testing.T) {
	repo := newFakeUserRepo()
	verifier := newFakeGoogleVerifier(t, map[string]string{
		"aud":   testGoogleClientID,
		"sub":   "google-sub-2",
		"email": "linked@example.com",
	})
	svc := newTestAuthService(t, repo, verifier)

	existing, _, err := svc.Signup(&dto.SignupRequest{Email: "linked@example.com", Password: "password123"})
	require.NoError(t, err)

	user, _, err := svc.GoogleLogin(context.Background(), "good-token")
	require.NoError(t, err)

	assert.Equal(t, existing.ID, user.ID)
	assert.Equal(t, "google-sub-2", user.ExternalID)

	// Next login resolves by external id, not email.
	again, _, err := svc.GoogleLogin(context.Background(), "good-token")
	require.NoError(t, err)
	assert.Equal(t, existing.ID, again.ID)
}

func TestGoogleLogin_InvalidCredential(t *testing.T) {
	repo := newFakeUserRepo()
	verifier := newFakeGoogleVerifier(t, map[string]string{})
	svc := newTestAuthService(t, repo, verifier)

	_, _, err := svc.GoogleLogin(context.Background(), "bad-token")
	assertAppError(t, err, http.StatusUnauthorized)
}

func TestGoogleLogin_BlockedUser(t *testing.T) {
	repo := newFakeUserRepo()
	verifier := newFakeGoogleVerifier(t, map[string]string{
		"aud":   testGoogleClientID,
		"sub":   "google-sub-3",
		"email": "gblocked@example.com",
	})
	svc := newTestAuthService(t, repo, verifier)

	user, _, err := svc.GoogleLogin(context.Background(), "good-token")
	require.NoError(t, err)

	user.Status = models.UserStatusBlocked
	require.NoError(t, repo.Update(user))

	_, _, err = svc.GoogleLogin(context.Background(), "good-token")
	assertAppError(t, err, http.StatusForbidden)
}

func TestListUsers_AdminOnly(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(t, repo, nil)

	_, _, err := svc.Signup(&dto.SignupRequest{Email: "member@example.com", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.ListUsers(dto.Principal{ID: "x", Role: "user"})
	assertAppError(t, err, http.StatusForbidden)

	users, err := svc.ListUsers(dto.Principal{ID: "a", Role: "admin"})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "member@example.com", users[0].Email)
	assert.Equal(t, "user", users[0].Role)
}
