package reconcile

// Policy tells a client how to recover its optimistic local state after a
// failed write. The choice is made per action, not globally.
type Policy string

const (
	// Rollback restores the snapshot taken before the optimistic patch.
	Rollback Policy = "rollback"
	// Refetch discards local state and reloads it from the server.
	Refetch Policy = "refetch"
	// Alert keeps local state and surfaces the error to the user.
	Alert Policy = "alert"
)

// Action keys used by the HTTP layer.
const (
	PermissionToggle     = "permission.toggle"
	PermissionVisibility = "permission.visibility"
	RoleSave             = "role.save"
	RoleDelete           = "role.delete"
	RoleReorder          = "role.reorder"
	FundingSave          = "funding.save"
	FundingActive        = "funding.active"
	FundingArchive       = "funding.archive"
	FundingDelete        = "funding.delete"
	FundingMove          = "funding.move"
	FundingTopUp         = "funding.top_up"
	RequestSave          = "request.save"
	RequestTransition    = "request.transition"
	RequestDelete        = "request.delete"
	ViewModeSet          = "view_mode.set"
)

var table = map[string]Policy{
	PermissionToggle:     Refetch,
	PermissionVisibility: Refetch,
	RoleSave:             Alert,
	RoleDelete:           Rollback,
	RoleReorder:          Refetch,
	FundingSave:          Alert,
	FundingActive:        Rollback,
	FundingArchive:       Refetch,
	FundingDelete:        Rollback,
	FundingMove:          Rollback,
	FundingTopUp:         Alert,
	RequestSave:          Alert,
	RequestTransition:    Alert,
	RequestDelete:        Rollback,
	ViewModeSet:          Rollback,
}

// For returns the policy registered for action, Alert when unknown.
func For(action string) Policy {
	if p, ok := table[action]; ok {
		return p
	}
	return Alert
}
