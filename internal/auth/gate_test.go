package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "whiterabbit/internal/errors"
	"whiterabbit/internal/model"
)

// MockUserDirectory is a mock implementation of UserDirectory.
type MockUserDirectory struct {
	mock.Mock
}

func (m *MockUserDirectory) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func TestGate_Admit(t *testing.T) {
	pending := "0f0f0f"

	tests := []struct {
		name      string
		setupMock func(*MockUserDirectory)
		wantErr   error
		wantData  *Profile
	}{
		{
			name: "activated account is admitted with profile",
			setupMock: func(m *MockUserDirectory) {
				m.On("FindByEmail", mock.Anything, "alice@example.com").Return(&model.User{
					ID:        3,
					Email:     "alice@example.com",
					Firstname: "Alice",
					Lastname:  "Liddell",
					Roles:     []string{model.RoleAdmin},
				}, nil)
			},
			wantData: &Profile{
				ID:       3,
				Username: "alice@example.com",
				FullName: "Alice Liddell",
				Roles:    []string{model.RoleAdmin, model.RoleUser},
			},
		},
		{
			name: "pending activation is refused",
			setupMock: func(m *MockUserDirectory) {
				m.On("FindByEmail", mock.Anything, "alice@example.com").Return(&model.User{
					ID:              3,
					Email:           "alice@example.com",
					ActivationToken: &pending,
				}, nil)
			},
			wantErr: apperrors.ErrNotActivated,
		},
		{
			name: "missing account fails closed",
			setupMock: func(m *MockUserDirectory) {
				m.On("FindByEmail", mock.Anything, "alice@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			wantErr: apperrors.ErrInvalidCredentials,
		},
		{
			name: "nil account without error fails closed",
			setupMock: func(m *MockUserDirectory) {
				m.On("FindByEmail", mock.Anything, "alice@example.com").Return(nil, nil)
			},
			wantErr: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := new(MockUserDirectory)
			tt.setupMock(dir)
			gate := NewGate(dir, nil)

			payload, user, err := gate.Admit(context.Background(), "alice@example.com", Payload{"access_token": "x"})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, payload)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "x", payload["access_token"])
				assert.Equal(t, *tt.wantData, payload["data"])
				assert.Equal(t, tt.wantData.ID, user.ID)
			}
			dir.AssertExpectations(t)
		})
	}
}

func TestGate_DirectoryErrorIsNotMistakenForSuccess(t *testing.T) {
	dir := new(MockUserDirectory)
	dir.On("FindByEmail", mock.Anything, "bob@example.com").Return(nil, errors.New("connection reset"))

	payload, user, err := NewGate(dir, nil).Admit(context.Background(), "bob@example.com", nil)

	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrNotActivated)
	assert.Nil(t, payload)
	assert.Nil(t, user)
}

func TestGate_NilPayloadIsCreated(t *testing.T) {
	dir := new(MockUserDirectory)
	dir.On("FindByEmail", mock.Anything, "bob@example.com").Return(&model.User{ID: 9, Email: "bob@example.com"}, nil)

	payload, _, err := NewGate(dir, nil).Admit(context.Background(), "bob@example.com", nil)

	require.NoError(t, err)
	assert.Contains(t, payload, "data")
}
