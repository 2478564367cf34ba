package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"backend/internal/config"
	"backend/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.JWT.Secret = "test-secret-key-for-testing-only"
	cfg.JWT.ExpiresIn = "24h"
	cfg.Security.BcryptCost = 4
	cfg.Server.Mode = gin.TestMode
	return cfg
}

// setupTestRouter opens a temp sqlite database, migrates the schema and
// builds the full router against it.
func setupTestRouter(t *testing.T, cfg *config.Config) (*gin.Engine, *gorm.DB) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&model.User{},
		&model.ApiKey{},
		&model.Language{},
		&model.TranslationKey{},
		&model.Translation{},
		&model.ActivityLog{},
	)
	require.NoError(t, err)

	return NewRouter(db, cfg, nil), db
}

func createTestUser(t *testing.T, db *gorm.DB, username, role string) *model.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &model.User{
		Username: username,
		Email:    username + "@test.local",
		Password: string(hashed),
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestToken(t *testing.T, cfg *config.Config, user *model.User) string {
	t.Helper()

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      user.ID.String(),
		"username": user.Username,
		"role":     user.Role,
		"iat":      now.Unix(),
		"exp":      now.Add(24 * time.Hour).Unix(),
		"iss":      cfg.JWT.Issuer,
	})
	signed, err := token.SignedString([]byte(cfg.JWT.Secret))
	require.NoError(t, err)
	return signed
}

func doJSON(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthRoutes(t *testing.T) {
	cfg := testConfig()
	router, db := setupTestRouter(t, cfg)
	createTestUser(t, db, "alice", model.RoleTranslator)

	t.Run("POST /auth/login - success", func(t *testing.T) {
		w := doJSON(router, "POST", "/auth/login", "", map[string]string{
			"username": "alice",
			"password": "secret123",
		})

		assert.Equal(t, http.StatusOK, w.Code)
		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		data := response["data"].(map[string]interface{})
		assert.NotEmpty(t, data["token"])

		// Session cookie is set alongside the token.
		cookies := w.Result().Cookies()
		var found bool
		for _, c := range cookies {
			if c.Name == "access_token" && c.Value != "" {
				found = true
				assert.True(t, c.HttpOnly)
			}
		}
		assert.True(t, found)
	})

	t.Run("POST /auth/login - bad credentials", func(t *testing.T) {
		w := doJSON(router, "POST", "/auth/login", "", map[string]string{
			"username": "alice",
			"password": "wrong",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "unauthenticated", response["code"])
	})

	t.Run("GET /auth/me - with token", func(t *testing.T) {
		var user model.User
		require.NoError(t, db.First(&user, "username = ?", "alice").Error)
		token := createTestToken(t, cfg, &user)

		w := doJSON(router, "GET", "/auth/me", token, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		data := response["data"].(map[string]interface{})
		assert.Equal(t, "alice", data["username"])
		assert.ElementsMatch(t, []interface{}{"view", "translate"}, data["permissions"])
	})

	t.Run("GET /auth/me - no token", func(t *testing.T) {
		w := doJSON(router, "GET", "/auth/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRoleGuards(t *testing.T) {
	cfg := testConfig()
	router, db := setupTestRouter(t, cfg)

	viewer := createTestUser(t, db, "viewer", model.RoleViewer)
	translator := createTestUser(t, db, "translator", model.RoleTranslator)
	manager := createTestUser(t, db, "manager", model.RoleManager)
	admin := createTestUser(t, db, "admin", model.RoleAdmin)

	viewerToken := createTestToken(t, cfg, viewer)
	translatorToken := createTestToken(t, cfg, translator)
	managerToken := createTestToken(t, cfg, manager)
	adminToken := createTestToken(t, cfg, admin)

	t.Run("viewer can list keys but not create", func(t *testing.T) {
		w := doJSON(router, "GET", "/keys", viewerToken, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		w = doJSON(router, "POST", "/keys", viewerToken, map[string]string{"key": "a.b"})
		assert.Equal(t, http.StatusForbidden, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "forbidden", response["code"])
	})

	t.Run("manager can create keys, translator cannot", func(t *testing.T) {
		w := doJSON(router, "POST", "/keys", translatorToken, map[string]string{"key": "a.b"})
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = doJSON(router, "POST", "/keys", managerToken, map[string]string{"key": "a.b"})
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("translator can translate but not approve", func(t *testing.T) {
		lang := model.Language{Code: "de", Name: "German"}
		require.NoError(t, db.Create(&lang).Error)

		var key model.TranslationKey
		require.NoError(t, db.First(&key, "key = ?", "a.b").Error)

		w := doJSON(router, "POST", "/keys/"+key.ID.String()+"/translations", translatorToken, map[string]string{
			"language_id": lang.ID.String(),
			"value":       "Hallo",
		})
		assert.Equal(t, http.StatusOK, w.Code)

		var tr model.Translation
		require.NoError(t, db.First(&tr, "key_id = ?", key.ID).Error)
		assert.Equal(t, model.StatusPending, tr.Status)

		w = doJSON(router, "POST", "/translations/"+tr.ID.String()+"/approve", translatorToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = doJSON(router, "POST", "/translations/"+tr.ID.String()+"/approve", managerToken, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("only admin reaches user management", func(t *testing.T) {
		w := doJSON(router, "GET", "/users", managerToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = doJSON(router, "GET", "/users?page=1&limit=10", adminToken, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		data := response["data"].(map[string]interface{})
		assert.Equal(t, float64(10), data["limit"])
		assert.Equal(t, float64(1), data["page"])
		assert.NotNil(t, data["users"])
		assert.GreaterOrEqual(t, data["total"], float64(2))
	})

	t.Run("admin cannot change own role over HTTP", func(t *testing.T) {
		w := doJSON(router, "PUT", "/users/"+admin.ID.String()+"/role", adminToken, map[string]string{
			"role": model.RoleViewer,
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestAPIKeyAuth(t *testing.T) {
	cfg := testConfig()
	router, db := setupTestRouter(t, cfg)
	admin := createTestUser(t, db, "admin", model.RoleAdmin)
	adminToken := createTestToken(t, cfg, admin)

	require.NoError(t, db.Create(&model.Language{Code: "en", Name: "English", IsSource: true}).Error)

	// Mint a view-only key through the session surface.
	w := doJSON(router, "POST", "/api-keys", adminToken, map[string]interface{}{
		"name":        "readonly",
		"permissions": []string{"view"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var createRes map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &createRes))
	token := createRes["data"].(map[string]interface{})["key"].(string)

	t.Run("missing key", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/api/v1/keys", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "API key required", response["error"])
	})

	t.Run("invalid key", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/api/v1/keys", nil)
		req.Header.Set("X-API-Key", "tk_bogus")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "Invalid API key", response["error"])
	})

	t.Run("key in header grants read", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/api/v1/keys", nil)
		req.Header.Set("X-API-Key", token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("key in query param grants read", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/api/v1/languages?api_key="+token, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("view-only key denied writes despite admin owner", func(t *testing.T) {
		// The key's grant decides, not the owner's role.
		body, _ := json.Marshal(map[string]string{"key": "new.key"})
		req, _ := http.NewRequest("POST", "/api/v1/keys", bytes.NewBuffer(body))
		req.Header.Set("X-API-Key", token)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "Insufficient permissions", response["error"])
		assert.Equal(t, []interface{}{"manage_translations"}, response["required"])
		assert.Equal(t, []interface{}{"view"}, response["granted"])
	})
}

func TestAPIv1TranslationFlow(t *testing.T) {
	cfg := testConfig()
	router, db := setupTestRouter(t, cfg)
	admin := createTestUser(t, db, "admin", model.RoleAdmin)
	adminToken := createTestToken(t, cfg, admin)

	require.NoError(t, db.Create(&model.Language{Code: "de", Name: "German"}).Error)

	w := doJSON(router, "POST", "/api-keys", adminToken, map[string]interface{}{
		"name":        "full",
		"permissions": []string{"view", "translate", "manage_translations"},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var createRes map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &createRes))
	token := createRes["data"].(map[string]interface{})["key"].(string)

	// Create a key over the public surface.
	body, _ := json.Marshal(map[string]string{"key": "app.greeting"})
	req, _ := http.NewRequest("POST", "/api/v1/keys", bytes.NewBuffer(body))
	req.Header.Set("X-API-Key", token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var keyRes map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &keyRes))
	assert.Equal(t, true, keyRes["success"])
	keyID := keyRes["id"].(string)

	// Upsert a value for German.
	body, _ = json.Marshal(map[string]string{"value": "Hallo"})
	req, _ = http.NewRequest("PUT", "/api/v1/translations/"+keyID+"/de", bytes.NewBuffer(body))
	req.Header.Set("X-API-Key", token)
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	// Export reads it back as a flat map.
	req, _ = http.NewRequest("GET", "/api/v1/translations/de", nil)
	req.Header.Set("X-API-Key", token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var export map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &export))
	assert.Equal(t, "de", export["language"])
	translations := export["translations"].(map[string]interface{})
	assert.Equal(t, "Hallo", translations["app.greeting"])

	// Missing value is a 400 with the published message.
	body, _ = json.Marshal(map[string]string{})
	req, _ = http.NewRequest("PUT", "/api/v1/translations/"+keyID+"/de", bytes.NewBuffer(body))
	req.Header.Set("X-API-Key", token)
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Unknown language is a 404.
	body, _ = json.Marshal(map[string]string{"value": "Bonjour"})
	req, _ = http.NewRequest("PUT", "/api/v1/translations/"+keyID+"/fr", bytes.NewBuffer(body))
	req.Header.Set("X-API-Key", token)
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestActivityFeed(t *testing.T) {
	cfg := testConfig()
	router, db := setupTestRouter(t, cfg)
	admin := createTestUser(t, db, "admin", model.RoleAdmin)
	adminToken := createTestToken(t, cfg, admin)

	// Creating a key leaves an activity trail.
	w := doJSON(router, "POST", "/keys", adminToken, map[string]string{"key": "a.b"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, "GET", "/activity", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	entries := response["data"].([]interface{})
	require.NotEmpty(t, entries)
	first := entries[0].(map[string]interface{})
	assert.Equal(t, model.ActionCreateKey, first["action"])
	assert.Equal(t, "admin", first["username"])
}

func TestStatsRoutes(t *testing.T) {
	cfg := testConfig()
	router, db := setupTestRouter(t, cfg)
	admin := createTestUser(t, db, "admin", model.RoleAdmin)
	viewer := createTestUser(t, db, "viewer", model.RoleViewer)
	adminToken := createTestToken(t, cfg, admin)
	viewerToken := createTestToken(t, cfg, viewer)

	w := doJSON(router, "GET", "/stats", viewerToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["total_users"])

	w = doJSON(router, "GET", "/admin/stats", viewerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(router, "GET", "/admin/stats", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data = response["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["total_users"])
	assert.Equal(t, float64(1), data["admin_count"])
	assert.Equal(t, float64(0), data["manager_count"])
	assert.Equal(t, float64(0), data["translator_count"])
	assert.Equal(t, float64(1), data["viewer_count"])
	assert.Equal(t, float64(2), data["active_users"])
}
