// Package access decides what a user may do with a pipeline.
//
// The policy is a pure function of the user and the pipeline. It is evaluated
// on every query and every mutation, so it allocates nothing and keeps no
// state.
package access

import "github.com/thenoetrevino/dealflow/internal/models"

// Level computes the access user has on pipeline. Rules are evaluated in
// order and the first match wins:
//  1. no user or no pipeline: none
//  2. admin role: full
//  3. pipeline owner: full
//  4. explicit permission entry: that entry's level
//  5. public pipeline: read
//  6. otherwise: none
func Level(user *models.User, pipeline *models.Pipeline) models.AccessLevel {
	if user == nil || pipeline == nil {
		return models.AccessNone
	}

	if user.Role == models.RoleAdmin {
		return models.AccessFull
	}

	if user.ID == pipeline.OwnerUserID {
		return models.AccessFull
	}

	if perm, ok := pipeline.PermissionFor(user.ID); ok {
		return perm.AccessLevel
	}

	if pipeline.IsPublic {
		return models.AccessRead
	}

	return models.AccessNone
}

// Allows reports whether user holds at least required on pipeline
func Allows(user *models.User, pipeline *models.Pipeline, required models.AccessLevel) bool {
	return Level(user, pipeline).AtLeast(required)
}

// CanView reports whether the pipeline should be listed for user at all
func CanView(user *models.User, pipeline *models.Pipeline) bool {
	return Level(user, pipeline) != models.AccessNone
}

// CanDelete reports whether user may delete companies. Deletion is gated on
// the admin role alone, independent of pipeline access.
func CanDelete(user *models.User) bool {
	return user.IsAdmin()
}
