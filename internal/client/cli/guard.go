package cli

import "github.com/olivecrm/olivecrm/internal/client/models"

// Allowed reports whether the user holds one of the given roles. Admins pass
// every check.
func Allowed(user *models.User, roles ...models.UserRole) bool {
	if user == nil {
		return false
	}
	if user.Role == models.RoleAdmin {
		return true
	}
	for _, role := range roles {
		if user.Role == role {
			return true
		}
	}
	return false
}

// canWrite reports whether the current user may create, change or delete
// records. Viewers are read-only.
func (a *App) canWrite() bool {
	return Allowed(a.session.CurrentUser(), models.RoleManager, models.RoleUser)
}

// warnReadOnly prints the standard refusal and returns false when the user
// may not modify data.
func (a *App) warnReadOnly() bool {
	if a.canWrite() {
		return true
	}
	printlnFn("Your role does not allow changing data.")
	return false
}
