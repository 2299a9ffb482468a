package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/olivecrm/olivecrm/internal/common"
	"github.com/olivecrm/olivecrm/internal/logging"
	"github.com/olivecrm/olivecrm/internal/server/auth"
	"github.com/olivecrm/olivecrm/internal/server/config"
	"github.com/olivecrm/olivecrm/internal/server/models"
	"github.com/olivecrm/olivecrm/internal/server/refreshtokens"
)

// TokenPair is what a successful login or refresh hands back.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

type RegisterParams struct {
	Email     string
	Username  string
	Password  string
	FirstName string
	LastName  string
}

// ProfilePatch updates only its non-nil fields.
type ProfilePatch struct {
	Email     *string
	FirstName *string
	LastName  *string
}

type Service struct {
	repo             Repository
	refreshTokenRepo refreshtokens.Repository
	resetTokenRepo   refreshtokens.Repository
	log              logging.Logger

	jwtSecret        []byte
	accessTokenTTL   time.Duration
	refreshTokenTTL  time.Duration
	passwordResetTTL time.Duration
}

func NewService(repo Repository, refreshTokenRepo, resetTokenRepo refreshtokens.Repository, cfg *config.Config, log logging.Logger) *Service {
	return &Service{
		repo:             repo,
		refreshTokenRepo: refreshTokenRepo,
		resetTokenRepo:   resetTokenRepo,
		log:              log,
		jwtSecret:        []byte(cfg.JWTSecret),
		accessTokenTTL:   cfg.AccessTokenTTL,
		refreshTokenTTL:  cfg.RefreshTokenTTL,
		passwordResetTTL: cfg.PasswordResetTTL,
	}
}

// Register creates an account with the default role. Duplicate usernames and
// emails return common.ErrorAlreadyExists.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*models.User, error) {
	if _, err := s.repo.GetByUsername(ctx, params.Username); err == nil {
		return nil, common.ErrorAlreadyExists
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrorInternal
	}
	if _, err := s.repo.GetByEmail(ctx, params.Email); err == nil {
		return nil, common.ErrorAlreadyExists
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrorInternal
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:        params.Email,
		Username:     params.Username,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Role:         models.RoleUser,
		PasswordHash: hash,
		IsActive:     true,
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.log.Info(ctx, "user registered", "username", user.Username)
	return user, nil
}

// Login verifies the credentials and issues a token pair. Unknown users,
// wrong passwords and disabled accounts are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (*models.User, *TokenPair, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// burn the same time as a real comparison
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, nil, common.ErrorUnauthorized
		}
		return nil, nil, common.ErrorInternal
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, nil, common.ErrorUnauthorized
	}
	if !user.IsActive {
		return nil, nil, common.ErrorUnauthorized
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, common.ErrorInternal
	}

	now := time.Now().UTC()
	if err := s.repo.SetLastLogin(ctx, user.ID, now); err != nil {
		s.log.Warn(ctx, "failed to record last login", "error", err)
	}
	user.LastLogin = &now

	return user, pair, nil
}

// Refresh exchanges a refresh token for a fresh pair. The used token is
// revoked so each refresh token works exactly once. Tokens the store no
// longer knows, whether lapsed or already spent, yield ErrRefreshTokenExpired.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*models.User, *TokenPair, error) {
	userID, err := s.refreshTokenRepo.UserID(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, common.ErrRefreshTokenExpired
		}
		return nil, nil, common.ErrorInternal
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil || !user.IsActive {
		return nil, nil, common.ErrorUnauthorized
	}

	if err := s.refreshTokenRepo.Delete(ctx, refreshToken); err != nil {
		return nil, nil, common.ErrorInternal
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, common.ErrorInternal
	}
	return user, pair, nil
}

// Logout revokes a refresh token. Revoking an unknown token succeeds.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	return s.refreshTokenRepo.Delete(ctx, refreshToken)
}

func (s *Service) Profile(ctx context.Context, userID string) (*models.User, error) {
	return s.repo.GetByID(ctx, userID)
}

func (s *Service) UpdateProfile(ctx context.Context, userID string, patch ProfilePatch) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if patch.Email != nil && *patch.Email != user.Email {
		if _, err := s.repo.GetByEmail(ctx, *patch.Email); err == nil {
			return nil, common.ErrorAlreadyExists
		} else if !errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorInternal
		}
		user.Email = *patch.Email
	}
	if patch.FirstName != nil {
		user.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		user.LastName = *patch.LastName
	}

	return s.repo.Update(ctx, user)
}

// ChangePassword verifies the old password, stores the new hash and revokes
// every refresh token of the user.
func (s *Service) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(oldPassword)); err != nil {
		return common.ErrorUnauthorized
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return common.ErrorInternal
	}
	if err := s.repo.UpdatePassword(ctx, userID, hash); err != nil {
		return common.ErrorInternal
	}

	if err := s.refreshTokenRepo.DeleteAllForUser(ctx, userID); err != nil {
		s.log.Warn(ctx, "failed to revoke sessions after password change", "error", err)
	}
	return nil
}

// RequestPasswordReset creates a reset token for the account behind email.
// Unknown emails return an empty token and no error, so callers can answer
// identically either way.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", nil
		}
		return "", common.ErrorInternal
	}

	token, err := common.MakeRandHexString(32)
	if err != nil {
		return "", common.ErrorInternal
	}
	if err := s.resetTokenRepo.Create(ctx, token, user.ID, s.passwordResetTTL); err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}

// ConfirmPasswordReset sets a new password for the user behind a valid reset
// token, burns the token and revokes all sessions.
func (s *Service) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	userID, err := s.resetTokenRepo.UserID(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorValidation
		}
		return common.ErrorInternal
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return common.ErrorInternal
	}
	if err := s.repo.UpdatePassword(ctx, userID, hash); err != nil {
		return common.ErrorInternal
	}

	if err := s.resetTokenRepo.Delete(ctx, token); err != nil {
		s.log.Warn(ctx, "failed to burn reset token", "error", err)
	}
	if err := s.refreshTokenRepo.DeleteAllForUser(ctx, userID); err != nil {
		s.log.Warn(ctx, "failed to revoke sessions after password reset", "error", err)
	}
	return nil
}

func (s *Service) issueTokens(ctx context.Context, user *models.User) (*TokenPair, error) {
	access, err := auth.GenerateAccessToken(user, s.jwtSecret, s.accessTokenTTL)
	if err != nil {
		return nil, err
	}

	refresh, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, err
	}
	if err := s.refreshTokenRepo.Create(ctx, refresh, user.ID, s.refreshTokenTTL); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.accessTokenTTL.Seconds()),
	}, nil
}

// dummyHash keeps login timing flat for unknown usernames.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy-password"), bcrypt.DefaultCost)
