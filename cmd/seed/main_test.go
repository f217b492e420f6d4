package main

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"whiterabbit/internal/auth"
	"whiterabbit/internal/model"
	"whiterabbit/internal/repository"
)

type fakeUserRepository struct {
	byEmail map[string]*model.User
	created []*model.User
	updated []*model.User
}

func (r *fakeUserRepository) Create(_ context.Context, user *model.User) error {
	r.created = append(r.created, user)
	return nil
}

func (r *fakeUserRepository) Update(_ context.Context, user *model.User) error {
	r.updated = append(r.updated, user)
	return nil
}

func (r *fakeUserRepository) FindByID(context.Context, uint) (*model.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepository) FindByEmail(_ context.Context, email string) (*model.User, error) {
	if u, ok := r.byEmail[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	return err == nil, nil
}

func (r *fakeUserRepository) LockByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.FindByEmail(ctx, email)
}

func (r *fakeUserRepository) LockByActivationToken(context.Context, string) (*model.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepository) WithTransaction(ctx context.Context, fn func(context.Context, repository.UserRepository) error) error {
	return fn(ctx, r)
}

func TestSeedAdmin(t *testing.T) {
	hasher, err := auth.NewPasswordHasher("bcrypt")
	require.NoError(t, err)
	logger := zerolog.Nop()

	t.Run("creates activated admin", func(t *testing.T) {
		repo := &fakeUserRepository{byEmail: map[string]*model.User{}}

		created, err := seedAdmin(context.Background(), repo, hasher, "admin@example.com", "secret", &logger)
		require.NoError(t, err)
		assert.True(t, created)
		require.Len(t, repo.created, 1)

		admin := repo.created[0]
		assert.True(t, admin.IsActivated())
		assert.True(t, admin.HasRole(model.RoleAdmin))
		assert.True(t, hasher.Verify("secret", admin.PasswordHash))
	})

	t.Run("promotes and activates existing account", func(t *testing.T) {
		pending := "tok"
		repo := &fakeUserRepository{byEmail: map[string]*model.User{
			"admin@example.com": {ID: 4, Email: "admin@example.com", Roles: []string{model.RoleUser}, ActivationToken: &pending},
		}}

		created, err := seedAdmin(context.Background(), repo, hasher, "admin@example.com", "secret", &logger)
		require.NoError(t, err)
		assert.False(t, created)
		require.Len(t, repo.updated, 1)
		assert.True(t, repo.updated[0].IsActivated())
		assert.Equal(t, []string{model.RoleUser, model.RoleAdmin}, repo.updated[0].Roles)
	})
}
