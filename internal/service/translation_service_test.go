package service

import (
	"testing"

	"backend/internal/model"
	"backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertCreatesPending(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestServices(db)
	translator := createTestUser(t, db, "alice", "secret123", model.RoleTranslator)
	lang := createTestLanguage(t, db, "de", "German", false)

	key, err := svc.translations.CreateKey(ctx(), translator.ID, CreateKeyRequest{Key: "menu.title"})
	require.NoError(t, err)

	tr, err := svc.translations.Upsert(ctx(), translator.ID, mustParseUUID(t, key.ID), lang.ID, "Hauptmenü")
	require.NoError(t, err)

	assert.Equal(t, model.StatusPending, tr.Status)
	assert.Equal(t, "Hauptmenü", tr.Value)
	require.NotNil(t, tr.TranslatedBy)
	assert.Equal(t, translator.ID, *tr.TranslatedBy)
	assert.Nil(t, tr.ReviewedBy)
}

func TestUpsertOverwritesExisting(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestServices(db)
	alice := createTestUser(t, db, "alice", "secret123", model.RoleTranslator)
	bob := createTestUser(t, db, "bob", "secret123", model.RoleTranslator)
	lang := createTestLanguage(t, db, "de", "German", false)

	key, err := svc.translations.CreateKey(ctx(), alice.ID, CreateKeyRequest{Key: "menu.title"})
	require.NoError(t, err)
	keyID := mustParseUUID(t, key.ID)

	first, err := svc.translations.Upsert(ctx(), alice.ID, keyID, lang.ID, "Hauptmenü")
	require.NoError(t, err)

	second, err := svc.translations.Upsert(ctx(), bob.ID, keyID, lang.ID, "Menü")
	require.NoError(t, err)

	// Same row, new value, new author.
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Menü", second.Value)
	assert.Equal(t, bob.ID, *second.TranslatedBy)

	var count int64
	require.NoError(t, db.Model(&model.Translation{}).Where("key_id = ?", keyID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestApproveStampsReviewerAndKeepsValue(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestServices(db)
	translator := createTestUser(t, db, "alice", "secret123", model.RoleTranslator)
	reviewer := createTestUser(t, db, "rev", "secret123", model.RoleManager)
	lang := createTestLanguage(t, db, "de", "German", false)

	key, err := svc.translations.CreateKey(ctx(), translator.ID, CreateKeyRequest{Key: "menu.title"})
	require.NoError(t, err)

	pending, err := svc.translations.Upsert(ctx(), translator.ID, mustParseUUID(t, key.ID), lang.ID, "Hauptmenü")
	require.NoError(t, err)

	approved, err := svc.translations.Approve(ctx(), reviewer.ID, pending.ID)
	require.NoError(t, err)

	assert.Equal(t, model.StatusApproved, approved.Status)
	assert.Equal(t, "Hauptmenü", approved.Value)
	require.NotNil(t, approved.ReviewedBy)
	assert.Equal(t, reviewer.ID, *approved.ReviewedBy)
	assert.Equal(t, translator.ID, *approved.TranslatedBy)
}

func TestEditDemotesApprovedToPending(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestServices(db)
	translator := createTestUser(t, db, "alice", "secret123", model.RoleTranslator)
	reviewer := createTestUser(t, db, "rev", "secret123", model.RoleManager)
	lang := createTestLanguage(t, db, "de", "German", false)

	key, err := svc.translations.CreateKey(ctx(), translator.ID, CreateKeyRequest{Key: "menu.title"})
	require.NoError(t, err)
	keyID := mustParseUUID(t, key.ID)

	pending, err := svc.translations.Upsert(ctx(), translator.ID, keyID, lang.ID, "Hauptmenü")
	require.NoError(t, err)
	_, err = svc.translations.Approve(ctx(), reviewer.ID, pending.ID)
	require.NoError(t, err)

	edited, err := svc.translations.Upsert(ctx(), translator.ID, keyID, lang.ID, "Menü")
	require.NoError(t, err)

	assert.Equal(t, model.StatusPending, edited.Status)
	assert.Equal(t, "Menü", edited.Value)
}

func TestApproveMissingTranslation(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestServices(db)
	reviewer := createTestUser(t, db, "rev", "secret123", model.RoleManager)

	_, err := svc.translations.Approve(ctx(), reviewer.ID, mustParseUUID(t, "00000000-0000-0000-0000-000000000001"))
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestUpsertUnknownKeyOrLanguage(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestServices(db)
	translator := createTestUser(t, db, "alice", "secret123", model.RoleTranslator)
	lang := createTestLanguage(t, db, "de", "German", false)

	missing := mustParseUUID(t, "00000000-0000-0000-0000-000000000001")

	_, err := svc.translations.Upsert(ctx(), translator.ID, missing, lang.ID, "x")
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	key, err := svc.translations.CreateKey(ctx(), translator.ID, CreateKeyRequest{Key: "menu.title"})
	require.NoError(t, err)

	_, err = svc.translations.Upsert(ctx(), translator.ID, mustParseUUID(t, key.ID), missing, "x")
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestCreateKeyDuplicate(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestServices(db)
	translator := createTestUser(t, db, "alice", "secret123", model.RoleTranslator)

	_, err := svc.translations.CreateKey(ctx(), translator.ID, CreateKeyRequest{Key: "menu.title"})
	require.NoError(t, err)

	_, err = svc.translations.CreateKey(ctx(), translator.ID, CreateKeyRequest{Key: "menu.title"})
	require.Error(t, err)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
}

func TestDeleteKeyRemovesTranslations(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestServices(db)
	translator := createTestUser(t, db, "alice", "secret123", model.RoleTranslator)
	de := createTestLanguage(t, db, "de", "German", false)
	fr := createTestLanguage(t, db, "fr", "French", false)

	key, err := svc.translations.CreateKey(ctx(), translator.ID, CreateKeyRequest{Key: "menu.title"})
	require.NoError(t, err)
	keyID := mustParseUUID(t, key.ID)

	_, err = svc.translations.Upsert(ctx(), translator.ID, keyID, de.ID, "Hauptmenü")
	require.NoError(t, err)
	_, err = svc.translations.Upsert(ctx(), translator.ID, keyID, fr.ID, "Menu principal")
	require.NoError(t, err)

	require.NoError(t, svc.translations.DeleteKey(ctx(), translator.ID, keyID))

	var orphans int64
	require.NoError(t, db.Model(&model.Translation{}).Where("key_id = ?", keyID).Count(&orphans).Error)
	assert.Equal(t, int64(0), orphans)
}

func TestExportLanguage(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestServices(db)
	translator := createTestUser(t, db, "alice", "secret123", model.RoleTranslator)
	de := createTestLanguage(t, db, "de", "German", false)

	for _, k := range []struct{ key, value string }{
		{"menu.title", "Hauptmenü"},
		{"menu.exit", "Beenden"},
	} {
		created, err := svc.translations.CreateKey(ctx(), translator.ID, CreateKeyRequest{Key: k.key})
		require.NoError(t, err)
		_, err = svc.translations.Upsert(ctx(), translator.ID, mustParseUUID(t, created.ID), de.ID, k.value)
		require.NoError(t, err)
	}

	export, err := svc.translations.ExportLanguage(ctx(), "de")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"menu.title": "Hauptmenü",
		"menu.exit":  "Beenden",
	}, export)

	_, err = svc.translations.ExportLanguage(ctx(), "xx")
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestDeleteLanguageRemovesTranslations(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestServices(db)
	admin := createTestUser(t, db, "admin", "admin123", model.RoleAdmin)
	de := createTestLanguage(t, db, "de", "German", false)

	key, err := svc.translations.CreateKey(ctx(), admin.ID, CreateKeyRequest{Key: "menu.title"})
	require.NoError(t, err)
	_, err = svc.translations.Upsert(ctx(), admin.ID, mustParseUUID(t, key.ID), de.ID, "Hauptmenü")
	require.NoError(t, err)

	require.NoError(t, svc.languages.Delete(ctx(), admin.ID, de.ID))

	var orphans int64
	require.NoError(t, db.Model(&model.Translation{}).Where("language_id = ?", de.ID).Count(&orphans).Error)
	assert.Equal(t, int64(0), orphans)

	// The key itself survives.
	var keys int64
	require.NoError(t, db.Model(&model.TranslationKey{}).Count(&keys).Error)
	assert.Equal(t, int64(1), keys)
}
