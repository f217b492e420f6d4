package handler

import (
	"time"

	"whiterabbit/internal/model"
)

// Views are the serialization groups of the API: each entity is rendered
// with a fixed field set, whatever the model carries.

// UserSummary is the author shown next to posts and comments.
type UserSummary struct {
	ID        uint   `json:"id"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

// UserView is returned on registration and by /me.
type UserView struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Firstname string    `json:"firstname"`
	Lastname  string    `json:"lastname"`
	Roles     []string  `json:"roles"`
	Activated bool      `json:"activated"`
	CreatedAt time.Time `json:"created_at"`
}

// PostView is the "post" group.
type PostView struct {
	ID        uint          `json:"id"`
	Title     string        `json:"title"`
	Text      string        `json:"text"`
	Picture   *string       `json:"picture"`
	Links     *string       `json:"links"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt *time.Time    `json:"updated_at"`
	User      *UserSummary  `json:"user"`
	Comments  []CommentView `json:"comments"`
}

// CommentView is the "comment" group.
type CommentView struct {
	ID        uint         `json:"id"`
	Content   string       `json:"content"`
	PostID    *uint        `json:"post_id,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt *time.Time   `json:"updated_at"`
	User      *UserSummary `json:"user"`
}

// TodolineView is the "todoline" group.
type TodolineView struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

func newUserSummary(u *model.User) *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{ID: u.ID, Firstname: u.Firstname, Lastname: u.Lastname}
}

func newUserView(u *model.User) UserView {
	return UserView{
		ID:        u.ID,
		Email:     u.Email,
		Firstname: u.Firstname,
		Lastname:  u.Lastname,
		Roles:     u.RoleList(),
		Activated: u.IsActivated(),
		CreatedAt: u.CreatedAt,
	}
}

func newPostView(p *model.Post) PostView {
	comments := make([]CommentView, 0, len(p.Comments))
	for i := range p.Comments {
		cv := newCommentView(&p.Comments[i])
		cv.PostID = nil
		comments = append(comments, cv)
	}
	return PostView{
		ID:        p.ID,
		Title:     p.Title,
		Text:      p.Text,
		Picture:   p.Picture,
		Links:     p.Links,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		User:      newUserSummary(p.User),
		Comments:  comments,
	}
}

func newPostViews(posts []model.Post) []PostView {
	views := make([]PostView, 0, len(posts))
	for i := range posts {
		views = append(views, newPostView(&posts[i]))
	}
	return views
}

func newCommentView(c *model.Comment) CommentView {
	return CommentView{
		ID:        c.ID,
		Content:   c.Content,
		PostID:    c.PostID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		User:      newUserSummary(c.User),
	}
}

func newCommentViews(comments []model.Comment) []CommentView {
	views := make([]CommentView, 0, len(comments))
	for i := range comments {
		views = append(views, newCommentView(&comments[i]))
	}
	return views
}

func newTodolineView(t *model.Todoline) TodolineView {
	return TodolineView{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func newTodolineViews(todos []model.Todoline) []TodolineView {
	views := make([]TodolineView, 0, len(todos))
	for i := range todos {
		views = append(views, newTodolineView(&todos[i]))
	}
	return views
}
