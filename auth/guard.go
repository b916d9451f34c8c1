// Package auth holds the authorization guard and the session/identity
// provider. The guard is a pure predicate: route handlers consult it before
// calling a repository, and the repositories re-check it themselves, because
// UI-side gating is not a security boundary.
package auth

import "github.com/HimanshuNaik19/Blog-Platform/models"

// Action is a mutating operation a viewer may attempt on posts.
type Action string

const (
	ActionCreate Action = "create"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// CanMutate decides whether viewer may perform action. Creation is open to
// admins and authors; editing and deletion to the post's owner or an admin.
// A nil viewer (unauthenticated) is always denied. The post argument is
// ignored for ActionCreate.
func CanMutate(viewer *models.User, post *models.Post, action Action) bool {
	if viewer == nil {
		return false
	}
	switch action {
	case ActionCreate:
		return viewer.Role == models.RoleAdmin || viewer.Role == models.RoleAuthor
	case ActionEdit, ActionDelete:
		if post == nil {
			return false
		}
		return viewer.ID == post.Author.ID || viewer.Role == models.RoleAdmin
	}
	return false
}
