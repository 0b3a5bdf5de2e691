package helpers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"aipromptweb_backend/internal/auth"
	"aipromptweb_backend/internal/models"
)

// CreateUser inserts a user directly, hashing the raw password in
// PasswordHash when it is not already a bcrypt hash.
func CreateUser(t *testing.T, db *gorm.DB, user *models.User) {
	t.Helper()

	if user.PasswordHash != "" && user.PasswordHash[0] != '$' {
		hash, err := auth.HashPassword(user.PasswordHash)
		require.NoError(t, err, "hashing test password")
		user.PasswordHash = hash
	}
	if user.Status == "" {
		user.Status = models.UserStatusActive
	}
	if user.Role == "" {
		user.Role = models.UserRoleUser
	}

	require.NoError(t, db.Create(user).Error, "creating test user %s", user.Email)
}

// CreateAndLoginUser creates an account and logs it in through the API,
// leaving the session cookie in the test client's jar.
func CreateAndLoginUser(t *testing.T, ts *TestServer, email, password string, role models.UserRole) *models.User {
	t.Helper()

	user := &models.User{
		Email:        email,
		PasswordHash: password,
		Role:         role,
	}
	CreateUser(t, ts.DB, user)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/login", map[string]interface{}{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, "login should succeed, got: %s", body)

	return user
}

// CreateAndLoginAdmin creates an admin with a unique email and logs in.
func CreateAndLoginAdmin(t *testing.T, ts *TestServer) *models.User {
	t.Helper()
	email := fmt.Sprintf("admin_%d@test.com", time.Now().UnixNano())
	return CreateAndLoginUser(t, ts, email, "admin_password123", models.UserRoleAdmin)
}

// CreateAndLoginMember creates a regular user with a unique email and
// logs in.
func CreateAndLoginMember(t *testing.T, ts *TestServer) *models.User {
	t.Helper()
	email := fmt.Sprintf("user_%d@test.com", time.Now().UnixNano())
	return CreateAndLoginUser(t, ts, email, "user_password123", models.UserRoleUser)
}

// CreateDescription inserts a catalog row directly.
func CreateDescription(t *testing.T, db *gorm.DB, name, imageType, details string) *models.Description {
	t.Helper()
	desc := &models.Description{
		ImageName:          name,
		ImageType:          imageType,
		DescriptionDetails: details,
		CreatedOn:          time.Now().UnixMilli(),
	}
	require.NoError(t, db.Create(desc).Error, "creating test description")
	return desc
}
