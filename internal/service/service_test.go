package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/openwave-social/openwave/internal/auth"
	"github.com/openwave-social/openwave/internal/domain"
	"github.com/openwave-social/openwave/internal/repository"
	"github.com/openwave-social/openwave/pkg/storage"
)

// testEnv wires real repositories over an in-memory database so service
// tests exercise the full stack below the HTTP layer.
type testEnv struct {
	db            *gorm.DB
	users         *repository.GormUserRepository
	posts         *repository.GormPostRepository
	comments      *repository.GormCommentRepository
	follows       *repository.GormFollowRepository
	notifications *repository.GormNotificationRepository
	profiles      *repository.GormProfileRepository
	tokens        *auth.Manager

	authService         AuthService
	postService         PostService
	socialService       SocialService
	notificationService NotificationService
	searchService       SearchService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(domain.AllModels()...))

	tokens, err := auth.NewManager("test-secret", 15*time.Minute, 24*time.Hour, "openwave-test", auth.NewMemoryTokenStore())
	require.NoError(t, err)

	env := &testEnv{
		db:            db,
		users:         repository.NewGormUserRepository(db),
		posts:         repository.NewGormPostRepository(db),
		comments:      repository.NewGormCommentRepository(db),
		follows:       repository.NewGormFollowRepository(db),
		notifications: repository.NewGormNotificationRepository(db),
		profiles:      repository.NewGormProfileRepository(db),
		tokens:        tokens,
	}
	env.authService = NewAuthService(env.users, tokens)
	env.postService = NewPostService(env.posts, env.comments, env.notifications)
	env.socialService = NewSocialService(env.users, env.follows, env.posts, env.notifications)
	env.notificationService = NewNotificationService(env.notifications)
	env.searchService = NewSearchService(env.users, env.posts, env.follows)
	return env
}

func (e *testEnv) newProfileService(t *testing.T, profileCache *fakeProfileCache) ProfileService {
	t.Helper()
	store, err := storage.NewLocalStorage(storage.LocalConfig{BasePath: t.TempDir()})
	require.NoError(t, err)
	if profileCache == nil {
		return NewProfileService(e.users, e.profiles, e.posts, e.follows, store, nil, time.Minute)
	}
	return NewProfileService(e.users, e.profiles, e.posts, e.follows, store, profileCache, time.Minute)
}

func (e *testEnv) register(t *testing.T, username string) *domain.AuthResponse {
	t.Helper()
	resp, err := e.authService.Register(context.Background(), &domain.RegisterRequest{
		Username:  username,
		Email:     username + "@example.com",
		Password:  "secret123",
		Password2: "secret123",
	})
	require.NoError(t, err)
	return resp
}

func (e *testEnv) createPost(t *testing.T, userID, content string) *domain.Post {
	t.Helper()
	post, err := e.postService.CreatePost(context.Background(), userID, &domain.CreatePostRequest{Content: content})
	require.NoError(t, err)
	// keep millisecond timestamps distinct for ordering assertions
	time.Sleep(2 * time.Millisecond)
	return post
}
