package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/HimanshuNaik19/Blog-Platform/auth"
	"github.com/HimanshuNaik19/Blog-Platform/models"
)

func TestCanMutateCreate(t *testing.T) {
	admin := &models.User{ID: "u1", Role: models.RoleAdmin}
	author := &models.User{ID: "u2", Role: models.RoleAuthor}
	reader := &models.User{ID: "u3", Role: models.RoleUser}

	assert.True(t, auth.CanMutate(admin, nil, auth.ActionCreate))
	assert.True(t, auth.CanMutate(author, nil, auth.ActionCreate))
	assert.False(t, auth.CanMutate(reader, nil, auth.ActionCreate))
	assert.False(t, auth.CanMutate(nil, nil, auth.ActionCreate))
}

func TestCanMutateEditAndDelete(t *testing.T) {
	post := &models.Post{ID: "p1", Author: models.Author{ID: "u2", Username: "john"}}

	owner := &models.User{ID: "u2", Role: models.RoleAuthor}
	admin := &models.User{ID: "u1", Role: models.RoleAdmin}
	otherAuthor := &models.User{ID: "u9", Role: models.RoleAuthor}
	reader := &models.User{ID: "u3", Role: models.RoleUser}

	for _, action := range []auth.Action{auth.ActionEdit, auth.ActionDelete} {
		assert.True(t, auth.CanMutate(owner, post, action), "owner may %s", action)
		assert.True(t, auth.CanMutate(admin, post, action), "admin may %s", action)
		assert.False(t, auth.CanMutate(otherAuthor, post, action), "non-owner author may not %s", action)
		assert.False(t, auth.CanMutate(reader, post, action), "reader may not %s", action)
		assert.False(t, auth.CanMutate(nil, post, action), "unauthenticated may not %s", action)
		assert.False(t, auth.CanMutate(admin, nil, action), "missing post denies %s", action)
	}
}

// A reader who happens to own the post can still edit it: ownership is
// checked against the author snapshot, not the role.
func TestCanMutateOwnershipBeatsRole(t *testing.T) {
	post := &models.Post{ID: "p1", Author: models.Author{ID: "u3"}}
	demoted := &models.User{ID: "u3", Role: models.RoleUser}

	assert.True(t, auth.CanMutate(demoted, post, auth.ActionEdit))
	assert.False(t, auth.CanMutate(demoted, nil, auth.ActionCreate))
}

func TestCanMutateUnknownAction(t *testing.T) {
	admin := &models.User{ID: "u1", Role: models.RoleAdmin}
	assert.False(t, auth.CanMutate(admin, &models.Post{}, auth.Action("publish")))
}
