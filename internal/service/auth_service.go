package service

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/samadhi-app/record-service/internal/auth"
	"github.com/samadhi-app/record-service/internal/config"
	"github.com/samadhi-app/record-service/internal/domain"
	"github.com/samadhi-app/record-service/internal/events"
	"github.com/samadhi-app/record-service/internal/repository"
	apperrors "github.com/samadhi-app/record-service/pkg/util/errorutil"
)

// ProfileUploader stores a profile image and returns its public URL.
type ProfileUploader interface {
	Upload(ctx context.Context, body io.Reader, contentType string) (string, error)
}

// RegisterInput carries the sign-up form fields.
type RegisterInput struct {
	ID                 string
	Password           string
	Nickname           string
	Gender             domain.Gender
	Birth              time.Time
	Height             float32
	Weight             float32
	Profile            io.Reader
	ProfileContentType string
}

// UpdateInput carries a partial profile update. Nil fields are left untouched.
type UpdateInput struct {
	Password           *string
	Nickname           *string
	Gender             *domain.Gender
	Birth              *time.Time
	Height             *float32
	Weight             *float32
	Profile            io.Reader
	ProfileContentType string
}

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	files      ProfileUploader
	tokenMgr   *auth.TokenManager
	limiter    *auth.LoginLimiter
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
}

// AuthDependencies encapsulates collaborator requirements for auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Files      ProfileUploader
	Limiter    *auth.LoginLimiter
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		files:      deps.Files,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		limiter:    deps.Limiter,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Register creates a new member account with a least-privilege role.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	exists, err := s.users.ExistsByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewConflict("id already exists")
	}

	profileURL := ""
	if input.Profile != nil {
		url, err := s.files.Upload(ctx, input.Profile, input.ProfileContentType)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		profileURL = url
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           input.ID,
		PasswordHash: hash,
		ProfileURL:   profileURL,
		Nickname:     input.Nickname,
		Gender:       input.Gender,
		Birth:        input.Birth,
		Height:       input.Height,
		Weight:       input.Weight,
		Role:         domain.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventUserRegistered,
		UserID:    user.ID,
		Timestamp: time.Now(),
		Payload:   events.UserRegisteredPayload{Nickname: user.Nickname},
	})
	return user, nil
}

// Login authenticates a member and issues a session token. Unknown ids and
// wrong passwords produce the identical error so accounts cannot be
// enumerated through the login endpoint.
func (s *AuthService) Login(ctx context.Context, id, password string) (*domain.User, string, time.Time, error) {
	if err := s.limiter.Enforce(ctx, id); err != nil {
		if errors.Is(err, auth.ErrLoginRateLimited) {
			return nil, "", time.Time{}, apperrors.NewDomainError("RATE_LIMITED", "too many login attempts", 429)
		}
		// limiter backend down: fail open, credentials still gate access
		s.logger.Warn("login limiter unavailable", zap.Error(err))
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, invalidCredentials()
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, invalidCredentials()
	}

	s.limiter.Reset(ctx, id)

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// UpdateInfo applies a partial profile update for the authenticated member.
func (s *AuthService) UpdateInfo(ctx context.Context, userID string, input UpdateInput) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user")
		}
		return err
	}

	if input.Password != nil {
		hash, err := auth.HashPassword(*input.Password, s.bcryptCost)
		if err != nil {
			return err
		}
		user.PasswordHash = hash
	}
	if input.Nickname != nil {
		user.Nickname = *input.Nickname
	}
	if input.Gender != nil {
		user.Gender = *input.Gender
	}
	if input.Birth != nil {
		user.Birth = *input.Birth
	}
	if input.Height != nil {
		user.Height = *input.Height
	}
	if input.Weight != nil {
		user.Weight = *input.Weight
	}
	if input.Profile != nil {
		url, err := s.files.Upload(ctx, input.Profile, input.ProfileContentType)
		if err != nil {
			return apperrors.NewInternalError(err)
		}
		user.ProfileURL = url
	}

	return s.users.Update(ctx, user)
}

// GetUserInfo returns the public profile for the given member id.
func (s *AuthService) GetUserInfo(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user")
		}
		return nil, err
	}
	return user, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func invalidCredentials() error {
	return apperrors.NewUnauthorized("credentials mismatch")
}
