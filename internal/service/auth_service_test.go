package service

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/samadhi-app/record-service/internal/auth"
	"github.com/samadhi-app/record-service/internal/config"
	"github.com/samadhi-app/record-service/internal/domain"
	apperrors "github.com/samadhi-app/record-service/pkg/util/errorutil"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]domain.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	user.UpdatedAt = time.Now()
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := user
	return &copied, nil
}

func (f *fakeUserRepo) ExistsByID(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.users[id]
	return ok, nil
}

type fakeUploader struct {
	calls int
}

func (f *fakeUploader) Upload(_ context.Context, body io.Reader, _ string) (string, error) {
	f.calls++
	_, _ = io.Copy(io.Discard, body)
	return "http://files.local/profile.png", nil
}

func newTestAuthService(repo *fakeUserRepo) (*AuthService, *fakeUploader) {
	uploader := &fakeUploader{}
	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 60,
			BcryptCost:            bcrypt.MinCost,
		},
	}
	svc := NewAuthService(cfg, AuthDependencies{
		UserRepo: repo,
		Files:    uploader,
		Limiter:  auth.NewLoginLimiter(nil, 0, 0),
		Logger:   zap.NewNop(),
	})
	return svc, uploader
}

func registerAlice(t *testing.T, svc *AuthService) *domain.User {
	t.Helper()
	user, err := svc.Register(context.Background(), RegisterInput{
		ID:       "alice",
		Password: "hunter2",
		Nickname: "Alice",
		Gender:   domain.GenderFemale,
		Birth:    time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
		Height:   165,
		Weight:   55,
	})
	require.NoError(t, err)
	return user
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestAuthService(newFakeUserRepo())
	user := registerAlice(t, svc)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.NotEqual(t, "hunter2", user.PasswordHash)

	logged, token, exp, err := svc.Login(context.Background(), "alice", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "alice", logged.ID)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, domain.RoleUser, claims.Role)
}

func TestRegisterDuplicateID(t *testing.T) {
	svc, _ := newTestAuthService(newFakeUserRepo())
	registerAlice(t, svc)

	_, err := svc.Register(context.Background(), RegisterInput{
		ID:       "alice",
		Password: "other",
		Nickname: "Imposter",
		Gender:   domain.GenderMale,
		Birth:    time.Date(1999, 5, 5, 0, 0, 0, 0, time.UTC),
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperrors.ToDomainError(err).HTTPStatus)
}

func TestRegisterUploadsProfile(t *testing.T) {
	repo := newFakeUserRepo()
	svc, uploader := newTestAuthService(repo)

	user, err := svc.Register(context.Background(), RegisterInput{
		ID:                 "carol",
		Password:           "pw",
		Nickname:           "Carol",
		Gender:             domain.GenderFemale,
		Birth:              time.Date(1998, 3, 3, 0, 0, 0, 0, time.UTC),
		Profile:            strings.NewReader("fake image bytes"),
		ProfileContentType: "image/png",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, uploader.calls)
	assert.Equal(t, "http://files.local/profile.png", user.ProfileURL)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newTestAuthService(newFakeUserRepo())
	registerAlice(t, svc)

	_, _, _, wrongPwdErr := svc.Login(context.Background(), "alice", "wrong")
	_, _, _, unknownErr := svc.Login(context.Background(), "nobody", "whatever")

	require.Error(t, wrongPwdErr)
	require.Error(t, unknownErr)
	assert.Equal(t, wrongPwdErr.Error(), unknownErr.Error())

	wrongDomain := apperrors.ToDomainError(wrongPwdErr)
	unknownDomain := apperrors.ToDomainError(unknownErr)
	assert.Equal(t, 401, wrongDomain.HTTPStatus)
	assert.Equal(t, 401, unknownDomain.HTTPStatus)
	assert.Equal(t, wrongDomain.Message, unknownDomain.Message)
}

func TestUpdateInfoPartial(t *testing.T) {
	repo := newFakeUserRepo()
	svc, _ := newTestAuthService(repo)
	registerAlice(t, svc)

	nickname := "Alicia"
	weight := float32(54)
	err := svc.UpdateInfo(context.Background(), "alice", UpdateInput{
		Nickname: &nickname,
		Weight:   &weight,
	})
	require.NoError(t, err)

	updated, err := repo.GetByID(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "Alicia", updated.Nickname)
	assert.Equal(t, float32(54), updated.Weight)
	// untouched fields survive
	assert.Equal(t, float32(165), updated.Height)
	assert.Equal(t, domain.GenderFemale, updated.Gender)
}

func TestUpdateInfoPasswordRotation(t *testing.T) {
	svc, _ := newTestAuthService(newFakeUserRepo())
	registerAlice(t, svc)

	newPwd := "correct-horse"
	require.NoError(t, svc.UpdateInfo(context.Background(), "alice", UpdateInput{Password: &newPwd}))

	_, _, _, err := svc.Login(context.Background(), "alice", "hunter2")
	assert.Error(t, err)
	_, _, _, err = svc.Login(context.Background(), "alice", "correct-horse")
	assert.NoError(t, err)
}

func TestGetUserInfoUnknown(t *testing.T) {
	svc, _ := newTestAuthService(newFakeUserRepo())

	_, err := svc.GetUserInfo(context.Background(), "ghost")
	require.Error(t, err)
	assert.Equal(t, 404, apperrors.ToDomainError(err).HTTPStatus)
}
