package auth_test

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/HimanshuNaik19/Blog-Platform/auth"
	"github.com/HimanshuNaik19/Blog-Platform/config"
	"github.com/HimanshuNaik19/Blog-Platform/models"
)

func TestMain(m *testing.M) {
	os.Setenv("APP_JWT_SECRET", "test_jwt_secret")
	os.Setenv("APP_BCRYPT_COST", "4")
	config.Load()
	os.Exit(m.Run())
}

func newService(t *testing.T) (*auth.Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent), TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	return auth.NewService(db), db
}

func TestRegisterAndLoginRoundTrip(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	token, user, err := svc.Register(ctx, "jane", "jane@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, models.RoleUser, user.Role)

	_, loggedIn, err := svc.Login(ctx, "jane@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
}

func TestRegisterConflictSentinels(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "jane", "jane@example.com", "password123")
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, "jane", "other@example.com", "password123")
	assert.ErrorIs(t, err, auth.ErrUsernameTaken)

	_, _, err = svc.Register(ctx, "janet", "jane@example.com", "password123")
	assert.ErrorIs(t, err, auth.ErrEmailTaken)
}

// A failing user store must surface as an error, never as "name available".
func TestRegisterSurfacesStoreErrors(t *testing.T) {
	svc, db := newService(t)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, _, err = svc.Register(context.Background(), "jane", "jane@example.com", "password123")
	require.Error(t, err)
	assert.NotErrorIs(t, err, auth.ErrUsernameTaken)
	assert.NotErrorIs(t, err, auth.ErrEmailTaken)
}
