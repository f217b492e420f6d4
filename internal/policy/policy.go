package policy

import (
	"whiterabbit/internal/auth"
	apperrors "whiterabbit/internal/errors"
	"whiterabbit/internal/model"
)

// Action is the operation an actor wants to perform on a resource.
type Action string

const (
	ActionRead   Action = "read"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// Decision is the outcome of a policy evaluation.
type Decision int

const (
	Deny Decision = iota
	Allow
)

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

// Policy decides whether an actor may perform an action on a resource.
// Implementations must be stateless so that a Registry can be shared across
// goroutines.
type Policy interface {
	Supports(action Action, res model.OwnedResource) bool
	Decide(action Action, res model.OwnedResource, actor *auth.Actor) Decision
}

// OwnershipPolicy grants an action to the resource owner and to admins.
type OwnershipPolicy struct {
	kind    model.ResourceKind
	actions map[Action]struct{}
}

// NewOwnershipPolicy builds a policy for kind covering actions.
func NewOwnershipPolicy(kind model.ResourceKind, actions ...Action) *OwnershipPolicy {
	set := make(map[Action]struct{}, len(actions))
	for _, a := range actions {
		set[a] = struct{}{}
	}
	return &OwnershipPolicy{kind: kind, actions: set}
}

func (p *OwnershipPolicy) Supports(action Action, res model.OwnedResource) bool {
	if res == nil || res.ResourceKind() != p.kind {
		return false
	}
	_, ok := p.actions[action]
	return ok
}

// Decide evaluates, in order: anonymous actors are denied, admins are
// allowed, resources without an owner are denied, and the owner is allowed.
func (p *OwnershipPolicy) Decide(_ Action, res model.OwnedResource, actor *auth.Actor) Decision {
	if !actor.IsAuthenticated() {
		return Deny
	}
	if actor.IsAdmin() {
		return Allow
	}
	owner := res.OwnerID()
	if owner == nil {
		return Deny
	}
	if *owner == actor.ID {
		return Allow
	}
	return Deny
}

// Registry dispatches decisions to the first policy supporting the pair.
// It is immutable once built.
type Registry struct {
	policies []Policy
}

// NewRegistry creates a registry from policies, consulted in order.
func NewRegistry(policies ...Policy) *Registry {
	return &Registry{policies: append([]Policy(nil), policies...)}
}

// NewDefaultRegistry returns the blog's ownership rules.
func NewDefaultRegistry() *Registry {
	return NewRegistry(
		NewOwnershipPolicy(model.KindPost, ActionEdit, ActionDelete),
		NewOwnershipPolicy(model.KindComment, ActionEdit, ActionDelete),
		NewOwnershipPolicy(model.KindTodoline, ActionRead, ActionEdit, ActionDelete),
	)
}

// Decide returns ErrNotApplicable when no policy supports (action, res).
func (r *Registry) Decide(action Action, res model.OwnedResource, actor *auth.Actor) (Decision, error) {
	for _, p := range r.policies {
		if p.Supports(action, res) {
			return p.Decide(action, res, actor), nil
		}
	}
	return Deny, apperrors.ErrNotApplicable
}

// DenyUnlessGranted turns a decision into an error. Anonymous actors get
// ErrUnauthenticated, denials get an AccessDeniedError carrying reason.
func (r *Registry) DenyUnlessGranted(action Action, res model.OwnedResource, actor *auth.Actor, reason string) error {
	decision, err := r.Decide(action, res, actor)
	if err != nil {
		return err
	}
	if decision == Allow {
		return nil
	}
	if !actor.IsAuthenticated() {
		return apperrors.ErrUnauthenticated
	}
	return apperrors.NewAccessDenied(reason)
}
