package service

import "github.com/MKhiriev/go-blog/models"

// ownedResource is anything with an owning user: blogs and comments.
type ownedResource interface {
	OwnerID() int64
}

// authorize allows actor to mutate resource when actor owns it, or when
// allowAdmin is set and actor is an admin.
func authorize(actor models.User, resource ownedResource, allowAdmin bool) error {
	if actor.ID <= 0 {
		return ErrUnauthenticated
	}
	if resource.OwnerID() == actor.ID {
		return nil
	}
	if allowAdmin && actor.IsAdmin() {
		return nil
	}
	return ErrUnauthorizedAccess
}
