package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"whiterabbit/internal/auth"
	apperrors "whiterabbit/internal/errors"
	"whiterabbit/internal/mailer"
	"whiterabbit/internal/model"
	"whiterabbit/internal/repository"
)

// RegisterInput is the data needed to open an account.
type RegisterInput struct {
	Email     string
	Password  string
	Firstname string
	Lastname  string
}

// AuthService handles registration, activation and token operations.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*model.User, error)
	Activate(ctx context.Context, email string, cred auth.ActivationCredential) error
	Login(ctx context.Context, email, password string) (auth.Payload, error)
	RefreshToken(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, refreshToken string, access *auth.Claims) error
	Me(ctx context.Context, actor *auth.Actor) (*model.User, error)
}

type authService struct {
	users      repository.UserRepository
	hasher     auth.PasswordHasher
	gate       *auth.Gate
	jwtService *auth.JWTService
	tokenStore auth.TokenStore
	mail       mailer.Sender
	logger     *zerolog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	users repository.UserRepository,
	hasher auth.PasswordHasher,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStore,
	mail mailer.Sender,
	logger *zerolog.Logger,
) AuthService {
	return &authService{
		users:      users,
		hasher:     hasher,
		gate:       auth.NewGate(users, logger),
		jwtService: jwtService,
		tokenStore: tokenStore,
		mail:       mail,
		logger:     logger,
	}
}

// Register creates a not-yet-activated account and e-mails its activation
// credentials. A failed delivery is logged but does not fail registration.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	exists, err := s.users.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("check account existence: %w", err)
	}
	if exists {
		return nil, apperrors.ErrUserAlreadyExists
	}

	hashedPassword, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Roles:        []string{model.RoleUser},
		Firstname:    input.Firstname,
		Lastname:     input.Lastname,
	}
	if err := auth.IssueActivation(user); err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("create account: %w", err)
	}
	s.logger.Info().Uint("user_id", user.ID).Msg("account registered")

	err = s.mail.SendActivation(ctx, mailer.ActivationEmail{
		To:    user.Email,
		Name:  user.FullName(),
		Code:  *user.OTP,
		Token: *user.ActivationToken,
	})
	if err != nil {
		s.logger.Error().Err(err).Uint("user_id", user.ID).Msg("activation e-mail delivery failed")
	}

	return user, nil
}

// Activate clears the activation state of the account matching cred. The
// account is looked up by token when one is given, by e-mail otherwise.
func (s *authService) Activate(ctx context.Context, email string, cred auth.ActivationCredential) error {
	rejected := false
	err := s.users.WithTransaction(ctx, func(ctx context.Context, repo repository.UserRepository) error {
		var (
			user *model.User
			err  error
		)
		switch {
		case cred.Token != "":
			user, err = repo.LockByActivationToken(ctx, cred.Token)
		case email != "" && cred.Code != "":
			user, err = repo.LockByEmail(ctx, email)
		default:
			return apperrors.ErrActivationFailed
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrActivationFailed
		}
		if err != nil {
			return fmt.Errorf("load account: %w", err)
		}

		attempts := user.OTPAttempts
		if err := auth.Activate(user, cred); err != nil {
			if user.OTPAttempts == attempts {
				return err
			}
			// the wrong code is committed so the count survives
			if err := repo.Update(ctx, user); err != nil {
				return fmt.Errorf("save failed attempt: %w", err)
			}
			rejected = true
			if user.OTP == nil {
				s.logger.Warn().Uint("user_id", user.ID).Msg("activation code discarded after too many attempts")
			}
			return nil
		}
		if err := repo.Update(ctx, user); err != nil {
			return fmt.Errorf("save account: %w", err)
		}
		s.logger.Info().Uint("user_id", user.ID).Msg("account activated")
		return nil
	})
	if err == nil && rejected {
		err = apperrors.ErrActivationFailed
	}
	if errors.Is(err, apperrors.ErrActivationFailed) {
		s.logger.Info().Msg("activation attempt rejected")
	}
	return err
}

// Login checks the password, then runs the authentication gate before any
// token is issued. The returned payload holds the tokens and the profile;
// refresh_token is omitted when the token store is unavailable.
func (s *authService) Login(ctx context.Context, email, password string) (auth.Payload, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	payload, admitted, err := s.gate.Admit(ctx, email, auth.Payload{})
	if err != nil {
		return nil, err
	}

	accessToken, err := s.jwtService.GenerateAccessToken(auth.ActorFromUser(admitted))
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(admitted.ID, admitted.Email)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	payload["access_token"] = accessToken

	// without the store the refresh token could never be redeemed
	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, admitted.ID, admitted.Email, auth.RefreshTokenExpiry); err != nil {
		s.logger.Warn().Err(err).Uint("user_id", admitted.ID).Msg("refresh token not stored, login without refresh token")
		return payload, nil
	}
	payload["refresh_token"] = refreshToken
	return payload, nil
}

// RefreshToken validates a refresh token and returns a new access token.
// Roles and activation are re-read so that changes apply on refresh.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil || claims.ID == "" {
		return "", apperrors.ErrInvalidRefreshToken
	}

	storedUserID, storedEmail, err := s.tokenStore.GetRefreshToken(ctx, claims.ID)
	if err != nil {
		return "", apperrors.ErrInvalidRefreshToken
	}
	if storedUserID != claims.UserID || storedEmail != claims.Email {
		return "", apperrors.ErrInvalidRefreshToken
	}

	_, user, err := s.gate.Admit(ctx, claims.Email, nil)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			return "", apperrors.ErrInvalidRefreshToken
		}
		return "", err
	}
	if user.ID != claims.UserID {
		return "", apperrors.ErrInvalidRefreshToken
	}

	accessToken, err := s.jwtService.GenerateAccessToken(auth.ActorFromUser(user))
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return accessToken, nil
}

// Logout invalidates the refresh token and revokes the access token the
// request was made with.
func (s *authService) Logout(ctx context.Context, refreshToken string, access *auth.Claims) error {
	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return apperrors.ErrInvalidRefreshToken
	}

	if err := s.tokenStore.DeleteRefreshToken(ctx, tokenID); err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}

	if access != nil && access.ID != "" {
		if err := s.tokenStore.BlacklistAccessToken(ctx, access.ID, s.jwtService.RemainingValidity(access)); err != nil {
			return fmt.Errorf("blacklist access token: %w", err)
		}
	}
	return nil
}

// Me returns the stored account of actor.
func (s *authService) Me(ctx context.Context, actor *auth.Actor) (*model.User, error) {
	if !actor.IsAuthenticated() {
		return nil, apperrors.ErrUnauthenticated
	}
	user, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, notFound(err, apperrors.ErrUserNotFound, "Utilisateur introuvable.")
	}
	return user, nil
}
