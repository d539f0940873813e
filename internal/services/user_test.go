package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fabianthdev/sidestore-id-backend/internal/auth"
	"github.com/fabianthdev/sidestore-id-backend/internal/cache"
	"github.com/fabianthdev/sidestore-id-backend/internal/core"
	"github.com/fabianthdev/sidestore-id-backend/internal/metrics"
	"github.com/fabianthdev/sidestore-id-backend/internal/mocks"
	"github.com/fabianthdev/sidestore-id-backend/internal/models"
	"github.com/fabianthdev/sidestore-id-backend/internal/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func newUserServiceWithStore(db core.UserStore, c core.Cache[models.User]) *UserService {
	provider := auth.NewLocalAuthProvider(db).WithCost(bcrypt.MinCost)
	return NewUserService(db, provider, disabledAudit(), metrics.NewNoopMetrics(), c, 5*time.Minute)
}

// callFetchFn is a DoAndReturn helper that invokes the cache fetch function,
// simulating a cache miss where the real DB fetch is executed.
func callFetchFn[T any](
	ctx context.Context,
	key string,
	_ time.Duration,
	fn func(context.Context, string) (T, error),
) (T, error) {
	return fn(ctx, key)
}

func TestSignupAndLogin(t *testing.T) {
	db := setupTestStore(t)
	svc := newUserServiceWithStore(db, cache.NewMemoryCache[models.User]())
	ctx := context.Background()

	user, err := svc.Signup(ctx, " Alice@Example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	_, err = uuid.Parse(user.ID)
	assert.NoError(t, err, "user ids are UUIDs")
	assert.NotEqual(t, "password123", user.PasswordHash)

	got, err := svc.Login(ctx, "alice@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = svc.Login(ctx, "alice@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignup_Rejects(t *testing.T) {
	db := setupTestStore(t)
	svc := newUserServiceWithStore(db, cache.NewMemoryCache[models.User]())
	ctx := context.Background()

	_, err := svc.Signup(ctx, "bob@example.com", "password123")
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"duplicate email", "BOB@example.com", "password123", ErrEmailTaken},
		{"invalid email", "not-an-email", "password123", ErrInvalidEmail},
		{"display name form", "Bob <bob2@example.com>", "password123", ErrInvalidEmail},
		{"short password", "carol@example.com", "short", auth.ErrPasswordTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Signup(ctx, tt.email, tt.password)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSignup_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	userStore := mocks.NewMockUserStore(ctrl)
	recorder := mocks.NewMockRecorder(ctrl)
	provider := auth.NewLocalAuthProvider(userStore).WithCost(bcrypt.MinCost)
	svc := NewUserService(
		userStore, provider, disabledAudit(), recorder,
		cache.NewMemoryCache[models.User](), time.Minute,
	)

	userStore.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(errors.New("read-only database"))
	recorder.EXPECT().RecordDatabaseQueryError("create_user")
	recorder.EXPECT().RecordAuthAttempt("signup", false, gomock.Any())

	_, err := svc.Signup(context.Background(), "dave@example.com", "password123")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmailTaken)
}

func TestGetUserByID_CacheMiss(t *testing.T) {
	db := setupTestStore(t)
	ctrl := gomock.NewController(t)
	mockCache := mocks.NewMockCache[models.User](ctrl)
	svc := newUserServiceWithStore(db, mockCache)

	u, err := svc.Signup(context.Background(), "erin@example.com", "password123")
	require.NoError(t, err)

	mockCache.EXPECT().
		GetWithFetch(gomock.Any(), "user:"+u.ID, 5*time.Minute, gomock.Any()).
		DoAndReturn(callFetchFn[models.User]).Times(1)

	result, err := svc.GetUserByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, result.Email)
}

func TestGetUserByID_CacheHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	userStore := mocks.NewMockUserStore(ctrl)
	// No store expectations: a cache hit must not reach the database
	memCache := cache.NewMemoryCache[models.User]()
	svc := newUserServiceWithStore(userStore, memCache)
	ctx := context.Background()

	cached := models.User{ID: "user-9", Email: "cached@example.com"}
	require.NoError(t, memCache.Set(ctx, "user:user-9", cached, time.Minute))

	result, err := svc.GetUserByID(ctx, "user-9")
	require.NoError(t, err)
	assert.Equal(t, "cached@example.com", result.Email)
}

func TestGetUserByID_NotFound(t *testing.T) {
	db := setupTestStore(t)
	svc := newUserServiceWithStore(db, cache.NewMemoryCache[models.User]())

	_, err := svc.GetUserByID(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetUserByID_CacheError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockCache := mocks.NewMockCache[models.User](ctrl)
	svc := newUserServiceWithStore(mocks.NewMockUserStore(ctrl), mockCache)

	mockCache.EXPECT().
		GetWithFetch(gomock.Any(), "user:user-1", gomock.Any(), gomock.Any()).
		Return(models.User{}, cache.ErrCacheUnavailable)

	_, err := svc.GetUserByID(context.Background(), "user-1")
	assert.ErrorIs(t, err, cache.ErrCacheUnavailable)
	assert.NotErrorIs(t, err, store.ErrRecordNotFound)
}
