package auth

import "whiterabbit/internal/model"

// Actor is the identity a request acts as. A nil Actor, or one with a zero
// ID, is anonymous.
type Actor struct {
	ID    uint
	Email string
	Roles []string
}

// ActorFromUser builds an Actor from a stored account.
func ActorFromUser(u *model.User) *Actor {
	if u == nil {
		return nil
	}
	return &Actor{ID: u.ID, Email: u.Email, Roles: u.RoleList()}
}

// ActorFromClaims builds an Actor from validated access token claims.
func ActorFromClaims(c *Claims) *Actor {
	if c == nil {
		return nil
	}
	return &Actor{ID: c.UserID, Email: c.Email, Roles: c.Roles}
}

// IsAuthenticated reports whether the actor is a known account.
func (a *Actor) IsAuthenticated() bool {
	return a != nil && a.ID != 0
}

// HasRole reports whether the actor holds role.
func (a *Actor) HasRole(role string) bool {
	if a == nil {
		return false
	}
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the actor holds ROLE_ADMIN.
func (a *Actor) IsAdmin() bool {
	return a.HasRole(model.RoleAdmin)
}
