package entities

import "github.com/google/uuid"

// Actor is the explicit caller context passed into every operation.
type Actor struct {
	ID        uuid.UUID
	Role      UserRole
	Verified  bool
	Suspended bool
}

// ActorFromUser builds the actor context from the stored user record.
func ActorFromUser(u *User) Actor {
	return Actor{
		ID:        u.ID,
		Role:      u.Role,
		Verified:  u.IsVerified,
		Suspended: u.IsSuspended,
	}
}

func (a Actor) IsAdmin() bool  { return a.Role == UserRoleAdmin }
func (a Actor) IsDealer() bool { return a.Role == UserRoleDealer }
func (a Actor) IsBuyer() bool  { return a.Role == UserRoleBuyer }
