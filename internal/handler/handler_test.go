package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/openwave-social/openwave/internal/auth"
	"github.com/openwave-social/openwave/internal/domain"
	"github.com/openwave-social/openwave/internal/middleware"
	"github.com/openwave-social/openwave/internal/repository"
	"github.com/openwave-social/openwave/internal/service"
	"github.com/openwave-social/openwave/pkg/response"
	"github.com/openwave-social/openwave/pkg/storage"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(domain.AllModels()...))

	tokens, err := auth.NewManager("test-secret", 15*time.Minute, 24*time.Hour, "openwave-test", auth.NewMemoryTokenStore())
	require.NoError(t, err)

	store, err := storage.NewLocalStorage(storage.LocalConfig{BasePath: t.TempDir()})
	require.NoError(t, err)

	userRepo := repository.NewGormUserRepository(db)
	postRepo := repository.NewGormPostRepository(db)
	commentRepo := repository.NewGormCommentRepository(db)
	followRepo := repository.NewGormFollowRepository(db)
	notificationRepo := repository.NewGormNotificationRepository(db)
	profileRepo := repository.NewGormProfileRepository(db)

	h := NewHandler(
		service.NewAuthService(userRepo, tokens),
		service.NewPostService(postRepo, commentRepo, notificationRepo),
		service.NewSocialService(userRepo, followRepo, postRepo, notificationRepo),
		service.NewProfileService(userRepo, profileRepo, postRepo, followRepo, store, nil, time.Minute),
		service.NewNotificationService(notificationRepo),
		service.NewSearchService(userRepo, postRepo, followRepo),
		middleware.NewAuthMiddleware(tokens),
	)

	r := gin.New()
	h.RegisterRoutes(r)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, response.Response) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var envelope response.Response
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	}
	return w, envelope
}

func registerUser(t *testing.T, r *gin.Engine, username string) (accessToken string) {
	t.Helper()
	w, envelope := doJSON(t, r, http.MethodPost, "/api/register", "", gin.H{
		"username":  username,
		"email":     username + "@example.com",
		"password":  "secret123",
		"password2": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	require.True(t, envelope.Success)

	data := envelope.Data.(map[string]interface{})
	return data["access_token"].(string)
}

func TestRegisterValidationEnvelope(t *testing.T) {
	r := newTestRouter(t)

	w, envelope := doJSON(t, r, http.MethodPost, "/api/register", "", gin.H{
		"username":  "alice",
		"email":     "alice@example.com",
		"password":  "secret123",
		"password2": "different123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, envelope.Success)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "VALIDATION_FAILED", envelope.Error.Code)
	assert.Equal(t, "Passwords do not match", envelope.Error.Fields["password"])
}

func TestLoginWrongPassword(t *testing.T) {
	r := newTestRouter(t)
	registerUser(t, r, "alice")

	w, envelope := doJSON(t, r, http.MethodPost, "/api/login", "", gin.H{
		"username": "alice",
		"password": "wrongpass1",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHORIZED", envelope.Error.Code)
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	r := newTestRouter(t)

	w, envelope := doJSON(t, r, http.MethodPost, "/api/posts", "", gin.H{"content": "hi"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, envelope.Success)

	w, _ = doJSON(t, r, http.MethodGet, "/api/feed", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPostLifecycleOverHTTP(t *testing.T) {
	r := newTestRouter(t)
	aliceToken := registerUser(t, r, "alice")
	bobToken := registerUser(t, r, "bob")

	w, envelope := doJSON(t, r, http.MethodPost, "/api/posts", aliceToken, gin.H{"content": "hello"})
	require.Equal(t, http.StatusCreated, w.Code)
	post := envelope.Data.(map[string]interface{})
	postID := post["id"].(string)
	assert.Equal(t, "alice", post["author"])

	// public read without a token
	w, envelope = doJSON(t, r, http.MethodGet, "/api/posts/"+postID, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, envelope.Success)

	// someone else cannot edit
	w, envelope = doJSON(t, r, http.MethodPut, "/api/posts/"+postID, bobToken, gin.H{"content": "hijack"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", envelope.Error.Code)

	// like, then duplicate like conflicts
	w, _ = doJSON(t, r, http.MethodPost, "/api/posts/"+postID+"/like", bobToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, envelope = doJSON(t, r, http.MethodPost, "/api/posts/"+postID+"/like", bobToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "CONFLICT", envelope.Error.Code)

	// delete by the author
	w, _ = doJSON(t, r, http.MethodDelete, "/api/posts/"+postID, aliceToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w, _ = doJSON(t, r, http.MethodGet, "/api/posts/"+postID, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPatchPostBlankContentOverHTTP(t *testing.T) {
	r := newTestRouter(t)
	aliceToken := registerUser(t, r, "alice")

	w, envelope := doJSON(t, r, http.MethodPost, "/api/posts", aliceToken, gin.H{"content": "original"})
	require.Equal(t, http.StatusCreated, w.Code)
	postID := envelope.Data.(map[string]interface{})["id"].(string)

	w, envelope = doJSON(t, r, http.MethodPatch, "/api/posts/"+postID, aliceToken, gin.H{"content": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "VALIDATION_FAILED", envelope.Error.Code)
	assert.Equal(t, "Content must not be blank", envelope.Error.Fields["content"])

	// content survives the rejected patch
	w, envelope = doJSON(t, r, http.MethodGet, "/api/posts/"+postID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "original", envelope.Data.(map[string]interface{})["content"])
}

func TestLogoutErrorCauses(t *testing.T) {
	r := newTestRouter(t)
	aliceToken := registerUser(t, r, "alice")

	w, envelope := doJSON(t, r, http.MethodPost, "/api/logout", aliceToken, gin.H{
		"refresh_token": "not-a-token",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, envelope.Error)
	assert.Contains(t, envelope.Error.Message, "malformed")

	// an expired refresh token names expiry as the cause
	expiredIssuer, err := auth.NewManager("test-secret", time.Minute, -time.Minute, "openwave-test", auth.NewMemoryTokenStore())
	require.NoError(t, err)
	_, expiredRefresh, _, err := expiredIssuer.GenerateTokenPair(&domain.User{ID: "u1", Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)

	w, envelope = doJSON(t, r, http.MethodPost, "/api/logout", aliceToken, gin.H{
		"refresh_token": expiredRefresh,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, envelope.Error)
	assert.Contains(t, envelope.Error.Message, "expired")
}

func TestFollowOverHTTP(t *testing.T) {
	r := newTestRouter(t)
	aliceToken := registerUser(t, r, "alice")
	registerUser(t, r, "bob")

	w, _ := doJSON(t, r, http.MethodPost, "/api/users/bob/follow", aliceToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, envelope := doJSON(t, r, http.MethodPost, "/api/users/bob/follow", aliceToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "CONFLICT", envelope.Error.Code)

	w, _ = doJSON(t, r, http.MethodPost, "/api/users/alice/follow", aliceToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doJSON(t, r, http.MethodPost, "/api/users/nobody/follow", aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// viewer-relative flag on the public profile
	w, envelope = doJSON(t, r, http.MethodGet, "/api/users/bob", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	profile := envelope.Data.(map[string]interface{})
	assert.Equal(t, true, profile["is_following"])
}

func TestSearchRequiresQueryParam(t *testing.T) {
	r := newTestRouter(t)

	w, envelope := doJSON(t, r, http.MethodGet, "/api/search", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "BAD_REQUEST", envelope.Error.Code)

	registerUser(t, r, "wave_alice")
	w, envelope = doJSON(t, r, http.MethodGet, "/api/search?q=wave", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := envelope.Data.(map[string]interface{})
	assert.Len(t, data["users"], 1)
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
