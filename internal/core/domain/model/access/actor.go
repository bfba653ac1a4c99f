package access

import (
	"errors"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/errs"
)

// Actor is the authenticated caller as supplied by the external
// authorization collaborator.
type Actor struct {
	UserID kernel.UUID
	Role   Role
}

func NewActor(userID kernel.UUID, role Role) (Actor, error) {
	if err := errors.Join(userID.Validate(), role.Validate()); err != nil {
		return Actor{}, err
	}
	return Actor{UserID: userID, Role: role}, nil
}

func (a Actor) Validate() error {
	if err := errors.Join(a.UserID.Validate(), a.Role.Validate()); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("actor", err)
	}
	return nil
}

// Owns reports whether the actor is the given user.
func (a Actor) Owns(userID kernel.UUID) bool {
	return a.UserID.IsEqual(userID)
}

// IsStaff reports whether the actor holds an administrative role.
func (a Actor) IsStaff() bool {
	return a.Role.AtLeast(Admin)
}

// Authorize reports whether role may perform action.
func Authorize(role Role, action Action) bool {
	minRole, ok := capabilities[action]
	return ok && role.AtLeast(minRole)
}

// Require returns a ForbiddenError unless the actor may perform action.
func Require(actor Actor, action Action) error {
	if !Authorize(actor.Role, action) {
		return errs.NewForbiddenError(actor.Role.String(), string(action))
	}
	return nil
}
