package service

import (
	"testing"

	"backend/internal/model"
	"backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginSuccess(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestServices(db)
	user := createTestUser(t, db, "alice", "secret123", model.RoleTranslator)

	res, err := svc.auth.Login(ctx(), LoginRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "alice", res.User.Username)
	assert.Equal(t, model.RoleTranslator, res.User.Role)

	// Login stamps last_login and records activity.
	var fresh model.User
	require.NoError(t, db.First(&fresh, "id = ?", user.ID).Error)
	assert.NotNil(t, fresh.LastLogin)

	var count int64
	require.NoError(t, db.Model(&model.ActivityLog{}).Where("action = ?", model.ActionLogin).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestLoginGenericFailureMessage(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestServices(db)
	createTestUser(t, db, "alice", "secret123", model.RoleViewer)

	_, unknownErr := svc.auth.Login(ctx(), LoginRequest{Username: "nobody", Password: "secret123"})
	require.Error(t, unknownErr)

	_, wrongPassErr := svc.auth.Login(ctx(), LoginRequest{Username: "alice", Password: "wrong"})
	require.Error(t, wrongPassErr)

	// Unknown username and wrong password are indistinguishable.
	assert.Equal(t, unknownErr.Error(), wrongPassErr.Error())
	assert.Equal(t, apperror.KindUnauthenticated, apperror.KindOf(unknownErr))
	assert.Equal(t, apperror.KindUnauthenticated, apperror.KindOf(wrongPassErr))
}

func TestLoginDeactivatedAccount(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestServices(db)

	user := createTestUser(t, db, "bob", "secret123", model.RoleManager)
	require.NoError(t, db.Model(user).Update("is_active", false).Error)

	_, err := svc.auth.Login(ctx(), LoginRequest{Username: "bob", Password: "secret123"})
	require.Error(t, err)
	assert.Equal(t, apperror.KindUnauthenticated, apperror.KindOf(err))
	assert.Contains(t, err.Error(), "deactivated")

	// Wrong password on a deactivated account still yields the generic
	// message, not the deactivation one.
	_, err = svc.auth.Login(ctx(), LoginRequest{Username: "bob", Password: "wrong"})
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "deactivated")
}

func TestMe(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestServices(db)
	user := createTestUser(t, db, "carol", "secret123", model.RoleManager)

	me, err := svc.auth.Me(ctx(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "carol", me.Username)
	assert.ElementsMatch(t,
		[]string{model.PermView, model.PermTranslate, model.PermReview, model.PermManageTranslations},
		me.Permissions)
}
