package service

import (
	"github.com/rs/zerolog"

	"whiterabbit/internal/auth"
	apperrors "whiterabbit/internal/errors"
	"whiterabbit/internal/model"
	"whiterabbit/internal/policy"
)

// guard runs ownership policies and logs denials.
type guard struct {
	policies *policy.Registry
	logger   *zerolog.Logger
}

func (g guard) authorize(action policy.Action, res model.OwnedResource, actor *auth.Actor, reason string) error {
	if err := g.policies.DenyUnlessGranted(action, res, actor, reason); err != nil {
		var actorID uint
		if actor != nil {
			actorID = actor.ID
		}
		g.logger.Debug().
			Str("action", string(action)).
			Str("resource", string(res.ResourceKind())).
			Uint("actor_id", actorID).
			Err(err).
			Msg("access denied")
		return err
	}
	return nil
}

func requireActor(actor *auth.Actor) error {
	if !actor.IsAuthenticated() {
		return apperrors.ErrUnauthenticated
	}
	return nil
}
