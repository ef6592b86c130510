package service

import (
	"testing"

	"github.com/MKhiriev/go-blog/models"
	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	alice := models.User{ID: 1, Role: models.RoleUser}
	bob := models.User{ID: 2, Role: models.RoleUser}
	admin := models.User{ID: 3, Role: models.RoleAdmin}

	blog := models.Blog{ID: 10, AuthorID: alice.ID}
	comment := models.Comment{ID: 20, AuthorID: alice.ID}

	tests := []struct {
		name       string
		actor      models.User
		resource   ownedResource
		allowAdmin bool
		want       error
	}{
		{name: "owner updates own blog", actor: alice, resource: blog},
		{name: "stranger cannot touch blog", actor: bob, resource: blog, want: ErrUnauthorizedAccess},
		{name: "admin cannot edit foreign blog", actor: admin, resource: blog, want: ErrUnauthorizedAccess},
		{name: "owner deletes own comment", actor: alice, resource: comment, allowAdmin: true},
		{name: "admin deletes foreign comment", actor: admin, resource: comment, allowAdmin: true},
		{name: "stranger cannot delete comment", actor: bob, resource: comment, allowAdmin: true, want: ErrUnauthorizedAccess},
		{name: "anonymous actor", actor: models.User{}, resource: blog, want: ErrUnauthenticated},
		{name: "anonymous never matches ownerless resource", actor: models.User{}, resource: models.Blog{}, want: ErrUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := authorize(tt.actor, tt.resource, tt.allowAdmin)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
