package access

import "opsplatform-backend/internal/domain/permission"

// Actor is the authenticated caller, resolved against its role.
type Actor struct {
	UserID   string
	Name     string
	RoleCode string
	RoleID   string
	// Permission is the default row when the role has none yet.
	Permission permission.RolePermission
	TeamAccess bool
	Admin      bool
}

func (a Actor) CanApproveExpense() bool { return a.Permission.CanApproveExpense }

// CanManagePeople covers role and permission configuration.
func (a Actor) CanManagePeople() bool { return a.Admin || a.Permission.CanManagePeople }

// CanSee reports whether a may open a request owned by requesterID.
func (a Actor) CanSee(requesterID string) bool {
	return a.UserID == requesterID || a.TeamAccess || a.CanApproveExpense()
}
