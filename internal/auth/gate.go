package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	apperrors "whiterabbit/internal/errors"
	"whiterabbit/internal/model"
)

// UserDirectory resolves an account from its identity string (the e-mail).
type UserDirectory interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

// Payload is the response body of a successful login, built up before it is
// returned to the client.
type Payload map[string]any

// Profile is the account summary added to a login payload under "data".
type Profile struct {
	ID       uint     `json:"id"`
	Username string   `json:"username"`
	FullName string   `json:"full_name"`
	Roles    []string `json:"roles"`
}

// Gate runs after the password check and decides whether the login may
// complete. It never modifies the account.
type Gate struct {
	users  UserDirectory
	logger *zerolog.Logger
}

// NewGate creates an authentication gate backed by users.
func NewGate(users UserDirectory, logger *zerolog.Logger) *Gate {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Gate{users: users, logger: logger}
}

// Admit returns payload augmented with the account profile, or an error that
// must turn the login into a failure:
//   - ErrInvalidCredentials when the identity no longer resolves,
//   - ErrNotActivated when the account still carries an activation token,
//   - a wrapped lookup error for any other directory failure.
func (g *Gate) Admit(ctx context.Context, identity string, payload Payload) (Payload, *model.User, error) {
	user, err := g.users.FindByEmail(ctx, identity)
	if err != nil || user == nil {
		if err == nil || errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, apperrors.ErrUserNotFound) {
			g.logger.Warn().Str("email", identity).Msg("login refused: account vanished after credential check")
			return nil, nil, apperrors.ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("resolve account: %w", err)
	}

	if !user.IsActivated() {
		g.logger.Info().Uint("user_id", user.ID).Msg("login refused: account not activated")
		return nil, nil, apperrors.ErrNotActivated
	}

	if payload == nil {
		payload = Payload{}
	}
	payload["data"] = Profile{
		ID:       user.ID,
		Username: user.Email,
		FullName: user.FullName(),
		Roles:    user.RoleList(),
	}
	return payload, user, nil
}
