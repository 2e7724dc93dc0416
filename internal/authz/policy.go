// Package authz holds the pure authorization policy: decision functions
// mapping (actor, action, target) to allow or deny, with no store access
// and no side effects. Handlers consult it before touching persistence.
package authz

import "chirp/internal/models"

// Action is the operation an actor attempts on a resource. Policy decisions
// branch on this enum rather than on HTTP verbs, so the rules stay valid
// for any transport.
type Action int

const (
	ActionCreate Action = iota
	ActionRead
	ActionUpdate
	ActionDelete
	ActionList
)

// String returns the lowercase name of the action, for error messages.
func (a Action) String() string {
	switch a {
	case ActionCreate:
		return "create"
	case ActionRead:
		return "read"
	case ActionUpdate:
		return "update"
	case ActionDelete:
		return "delete"
	case ActionList:
		return "list"
	}
	return "unknown"
}

// Actor is the authenticated identity performing an action. A nil *Actor
// means the caller is unauthenticated.
type Actor struct {
	ID      uint
	IsStaff bool
}

// ActorFromUser builds an Actor from a persisted user record.
func ActorFromUser(u *models.User) *Actor {
	if u == nil {
		return nil
	}
	return &Actor{ID: u.ID, IsStaff: u.IsStaff}
}

// CanAccessUser decides whether actor may perform action on the user
// account identified by targetID.
//
// The user-profile rules follow the admin-only-list policy variant:
// anyone (including unauthenticated callers) may create an account, only
// staff may list accounts, and a specific profile may be read, updated or
// deleted by its owner or by staff. There is no safe-method fallback that
// would open profile reads to arbitrary authenticated users.
func CanAccessUser(actor *Actor, action Action, targetID uint) *models.AppError {
	if action == ActionCreate {
		return nil
	}
	if actor == nil {
		return models.NewUnauthenticatedError("Authentication required")
	}
	if actor.IsStaff {
		return nil
	}
	if action == ActionList {
		return models.NewForbiddenError("Staff access required to list users")
	}
	if actor.ID != targetID {
		return models.NewForbiddenError("You may only " + action.String() + " your own account")
	}
	return nil
}

// CanAccessPost decides whether actor may perform action on a post owned
// by authorID. Reads and creates are open to any authenticated actor;
// updates and deletes are reserved for the author.
func CanAccessPost(actor *Actor, action Action, authorID uint) *models.AppError {
	if actor == nil {
		return models.NewUnauthenticatedError("Authentication required")
	}
	switch action {
	case ActionUpdate, ActionDelete:
		if actor.ID != authorID {
			return models.NewForbiddenError("You may only " + action.String() + " your own posts")
		}
	}
	return nil
}

// CanAccessLike decides whether actor may read or toggle the like relation
// owned by ownerID. The relation is scoped to the actor; there is no
// cross-user like mutation, staff included.
func CanAccessLike(actor *Actor, ownerID uint) *models.AppError {
	if actor == nil {
		return models.NewUnauthenticatedError("Authentication required")
	}
	if actor.ID != ownerID {
		return models.NewForbiddenError("You may only manage your own likes")
	}
	return nil
}

// CanReadAnalytics decides whether actor may read per-user like analytics.
// Any authenticated actor may.
func CanReadAnalytics(actor *Actor) *models.AppError {
	if actor == nil {
		return models.NewUnauthenticatedError("Authentication required")
	}
	return nil
}

// CanReadActivity decides whether actor may read a user's last-login and
// last-request timestamps. Staff only.
func CanReadActivity(actor *Actor) *models.AppError {
	if actor == nil {
		return models.NewUnauthenticatedError("Authentication required")
	}
	if !actor.IsStaff {
		return models.NewForbiddenError("Staff access required")
	}
	return nil
}
