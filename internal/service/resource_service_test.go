package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"whiterabbit/internal/auth"
	apperrors "whiterabbit/internal/errors"
	"whiterabbit/internal/model"
	"whiterabbit/internal/policy"
)

// MockPostRepository is a mock implementation of PostRepository.
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *model.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) Update(ctx context.Context, post *model.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, post *model.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) FindByID(ctx context.Context, id uint) (*model.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context) ([]model.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Post), args.Error(1)
}

// MockCommentRepository is a mock implementation of CommentRepository.
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Update(ctx context.Context, comment *model.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(ctx context.Context, comment *model.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) FindByID(ctx context.Context, id uint) (*model.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockCommentRepository) List(ctx context.Context) ([]model.Comment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Comment), args.Error(1)
}

// MockTodolineRepository is a mock implementation of TodolineRepository.
type MockTodolineRepository struct {
	mock.Mock
}

func (m *MockTodolineRepository) Create(ctx context.Context, todo *model.Todoline) error {
	args := m.Called(ctx, todo)
	return args.Error(0)
}

func (m *MockTodolineRepository) Update(ctx context.Context, todo *model.Todoline) error {
	args := m.Called(ctx, todo)
	return args.Error(0)
}

func (m *MockTodolineRepository) Delete(ctx context.Context, todo *model.Todoline) error {
	args := m.Called(ctx, todo)
	return args.Error(0)
}

func (m *MockTodolineRepository) FindByID(ctx context.Context, id uint) (*model.Todoline, error) {
	args := m.Called(ctx, id)
	if fn, ok := args.Get(0).(func(context.Context, uint) *model.Todoline); ok {
		return fn(ctx, id), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Todoline), args.Error(1)
}

func (m *MockTodolineRepository) ListByUser(ctx context.Context, userID uint) ([]model.Todoline, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Todoline), args.Error(1)
}

func uintPtr(v uint) *uint { return &v }

func strPtr(v string) *string { return &v }

var (
	alice = &auth.Actor{ID: 1, Email: "alice@example.com", Roles: []string{model.RoleUser}}
	bob   = &auth.Actor{ID: 2, Email: "bob@example.com", Roles: []string{model.RoleUser}}
	admin = &auth.Actor{ID: 99, Email: "admin@example.com", Roles: []string{model.RoleUser, model.RoleAdmin}}
)

func reasonOf(t *testing.T, err error) string {
	t.Helper()
	var denied *apperrors.AccessDeniedError
	require.True(t, errors.As(err, &denied), "expected AccessDeniedError, got %v", err)
	return denied.Reason
}

func TestPostService_Update(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		actor     *auth.Actor
		setupMock func(*MockPostRepository)
		wantErr   error
		wantDeny  string
	}{
		{
			name:  "owner edits",
			actor: alice,
			setupMock: func(m *MockPostRepository) {
				m.On("FindByID", mock.Anything, uint(4)).Return(&model.Post{ID: 4, Title: "old", Text: "body", UserID: uintPtr(1)}, nil)
				m.On("Update", mock.Anything, mock.MatchedBy(func(p *model.Post) bool {
					return p.Title == "new" && p.Text == "body" && p.UpdatedAt != nil && p.UpdatedAt.Equal(fixed)
				})).Return(nil)
			},
		},
		{
			name:  "admin edits foreign post",
			actor: admin,
			setupMock: func(m *MockPostRepository) {
				m.On("FindByID", mock.Anything, uint(4)).Return(&model.Post{ID: 4, UserID: uintPtr(1)}, nil)
				m.On("Update", mock.Anything, mock.Anything).Return(nil)
			},
		},
		{
			name:  "stranger is denied",
			actor: bob,
			setupMock: func(m *MockPostRepository) {
				m.On("FindByID", mock.Anything, uint(4)).Return(&model.Post{ID: 4, UserID: uintPtr(1)}, nil)
			},
			wantDeny: "Seul l'auteur de cet article peut le modifier.",
		},
		{
			name:      "anonymous is unauthenticated",
			actor:     nil,
			setupMock: func(m *MockPostRepository) {},
			wantErr:   apperrors.ErrUnauthenticated,
		},
		{
			name:  "missing post",
			actor: alice,
			setupMock: func(m *MockPostRepository) {
				m.On("FindByID", mock.Anything, uint(4)).Return(nil, gorm.ErrRecordNotFound)
			},
			wantErr: apperrors.ErrPostNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockPostRepository)
			tt.setupMock(repo)

			svc := NewPostService(repo, nil, time.Minute, policy.NewDefaultRegistry(), nopLogger()).(*postService)
			svc.now = func() time.Time { return fixed }

			post, err := svc.Update(context.Background(), tt.actor, 4, UpdatePostInput{Title: strPtr("new")})

			switch {
			case tt.wantDeny != "":
				assert.Equal(t, tt.wantDeny, reasonOf(t, err))
				assert.Nil(t, post)
				repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, post)
			default:
				require.NoError(t, err)
				assert.Equal(t, "new", post.Title)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestPostService_NotFoundMessage(t *testing.T) {
	repo := new(MockPostRepository)
	repo.On("FindByID", mock.Anything, uint(17)).Return(nil, gorm.ErrRecordNotFound)

	_, err := NewPostService(repo, nil, time.Minute, policy.NewDefaultRegistry(), nopLogger()).Get(context.Background(), 17)
	require.Error(t, err)
	assert.Equal(t, "L'article numéro 17 n'existe pas", apperrors.MapErrorToHTTP(err).Message)
	assert.Equal(t, 404, apperrors.MapErrorToHTTP(err).StatusCode)
}

func TestPostService_CreateSetsOwner(t *testing.T) {
	repo := new(MockPostRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(p *model.Post) bool {
		return p.UserID != nil && *p.UserID == alice.ID
	})).Return(nil)

	svc := NewPostService(repo, nil, time.Minute, policy.NewDefaultRegistry(), nopLogger())
	post, err := svc.Create(context.Background(), alice, CreatePostInput{Title: "t", Text: "x"})
	require.NoError(t, err)
	assert.Equal(t, "t", post.Title)

	_, err = svc.Create(context.Background(), nil, CreatePostInput{Title: "t", Text: "x"})
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	repo.AssertNumberOfCalls(t, "Create", 1)
}

func TestPostService_DeleteOwnerless(t *testing.T) {
	repo := new(MockPostRepository)
	repo.On("FindByID", mock.Anything, uint(3)).Return(&model.Post{ID: 3}, nil)
	repo.On("Delete", mock.Anything, mock.Anything).Return(nil).Once()

	svc := NewPostService(repo, nil, time.Minute, policy.NewDefaultRegistry(), nopLogger())

	err := svc.Delete(context.Background(), alice, 3)
	assert.Equal(t, "Seul l'auteur de cet article peut le supprimer.", reasonOf(t, err))

	require.NoError(t, svc.Delete(context.Background(), admin, 3))
	repo.AssertExpectations(t)
}

func TestCommentService(t *testing.T) {
	comments := new(MockCommentRepository)
	posts := new(MockPostRepository)
	svc := NewCommentService(comments, posts, nil, policy.NewDefaultRegistry(), nopLogger())
	ctx := context.Background()

	t.Run("create on missing post", func(t *testing.T) {
		posts.On("FindByID", mock.Anything, uint(50)).Return(nil, gorm.ErrRecordNotFound).Once()
		_, err := svc.Create(ctx, alice, CreateCommentInput{Content: "hi", PostID: 50})
		assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
	})

	t.Run("create sets owner and post", func(t *testing.T) {
		posts.On("FindByID", mock.Anything, uint(5)).Return(&model.Post{ID: 5}, nil).Once()
		comments.On("Create", mock.Anything, mock.MatchedBy(func(c *model.Comment) bool {
			return *c.UserID == alice.ID && *c.PostID == 5
		})).Return(nil).Once()
		_, err := svc.Create(ctx, alice, CreateCommentInput{Content: "hi", PostID: 5})
		require.NoError(t, err)
	})

	t.Run("stranger cannot edit", func(t *testing.T) {
		comments.On("FindByID", mock.Anything, uint(8)).Return(&model.Comment{ID: 8, UserID: uintPtr(1)}, nil).Once()
		_, err := svc.Update(ctx, bob, 8, UpdateCommentInput{Content: strPtr("x")})
		assert.Equal(t, "Seul l'auteur de ce commentaire peut le modifier.", reasonOf(t, err))
	})

	t.Run("stranger cannot delete", func(t *testing.T) {
		comments.On("FindByID", mock.Anything, uint(8)).Return(&model.Comment{ID: 8, UserID: uintPtr(1)}, nil).Once()
		err := svc.Delete(ctx, bob, 8)
		assert.Equal(t, "Seul l'auteur de ce commentaire peut le supprimer.", reasonOf(t, err))
	})

	t.Run("owner edits", func(t *testing.T) {
		comments.On("FindByID", mock.Anything, uint(8)).Return(&model.Comment{ID: 8, UserID: uintPtr(1), Content: "a"}, nil).Once()
		comments.On("Update", mock.Anything, mock.MatchedBy(func(c *model.Comment) bool { return c.Content == "b" })).Return(nil).Once()
		comment, err := svc.Update(ctx, alice, 8, UpdateCommentInput{Content: strPtr("b")})
		require.NoError(t, err)
		assert.NotNil(t, comment.UpdatedAt)
	})

	comments.AssertExpectations(t)
	posts.AssertExpectations(t)
}

// Alice creates a todoline; Bob may neither read nor edit it; an admin may.
func TestTodolineService_OwnershipScenario(t *testing.T) {
	repo := new(MockTodolineRepository)
	svc := NewTodolineService(repo, policy.NewDefaultRegistry(), nopLogger())
	ctx := context.Background()

	repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Todoline")).
		Run(func(args mock.Arguments) { args.Get(1).(*model.Todoline).ID = 21 }).
		Return(nil)

	todo, err := svc.Create(ctx, alice, CreateTodolineInput{Title: "milk", Description: "2L"})
	require.NoError(t, err)
	assert.False(t, todo.Completed)
	require.NotNil(t, todo.UserID)
	assert.Equal(t, alice.ID, *todo.UserID)

	repo.On("FindByID", mock.Anything, uint(21)).Return(func(context.Context, uint) *model.Todoline {
		cp := *todo
		return &cp
	}, nil)

	_, err = svc.Get(ctx, bob, 21)
	assert.Equal(t, "Seul le créateur de cette todolist peut y accéder", reasonOf(t, err))

	_, err = svc.Update(ctx, bob, 21, UpdateTodolineInput{Title: strPtr("stolen")})
	assert.Equal(t, "Seul le créateur de cette todolist peut la modifier.", reasonOf(t, err))
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)

	err = svc.Delete(ctx, bob, 21)
	assert.Equal(t, "Seul l'auteur de cette tâche peut la supprimer.", reasonOf(t, err))

	got, err := svc.Get(ctx, alice, 21)
	require.NoError(t, err)
	assert.Equal(t, "milk", got.Title)

	done := true
	repo.On("Update", mock.Anything, mock.MatchedBy(func(td *model.Todoline) bool { return td.Completed })).Return(nil)
	updated, err := svc.Update(ctx, admin, 21, UpdateTodolineInput{Completed: &done})
	require.NoError(t, err)
	assert.True(t, updated.Completed)
	assert.Equal(t, "milk", updated.Title)

	repo.AssertNumberOfCalls(t, "Update", 1)
}

func TestTodolineService_ListMine(t *testing.T) {
	repo := new(MockTodolineRepository)
	repo.On("ListByUser", mock.Anything, bob.ID).Return([]model.Todoline{}, nil)

	svc := NewTodolineService(repo, policy.NewDefaultRegistry(), nopLogger())

	todos, err := svc.ListMine(context.Background(), bob)
	require.NoError(t, err)
	assert.NotNil(t, todos)
	assert.Empty(t, todos)

	_, err = svc.ListMine(context.Background(), nil)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestTodolineService_NotFound(t *testing.T) {
	repo := new(MockTodolineRepository)
	repo.On("FindByID", mock.Anything, uint(5)).Return(nil, gorm.ErrRecordNotFound)

	_, err := NewTodolineService(repo, policy.NewDefaultRegistry(), nopLogger()).Get(context.Background(), alice, 5)
	assert.ErrorIs(t, err, apperrors.ErrTodolineNotFound)
	assert.Equal(t, "Cette tâche n'existe pas.", err.Error())
}
