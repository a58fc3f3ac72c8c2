package permission

import "fmt"

// Line is one sentence of the effective-access view.
type Line struct {
	Key     string `json:"key"`
	Allowed bool   `json:"allowed"`
	Text    string `json:"text"`
}

var flagText = map[Flag][2]string{
	FlagViewDirectory:         {"can browse the people directory", "cannot browse the people directory"},
	FlagManagePeople:          {"can add and edit people records", "cannot add or edit people records"},
	FlagViewPerformanceSum:    {"can see performance summaries", "cannot see performance summaries"},
	FlagViewPerformanceDetail: {"can see detailed performance reviews", "cannot see detailed performance reviews"},
	FlagApproveLeave:          {"can approve leave requests", "cannot approve leave requests"},
	FlagApproveOvertime:       {"can approve overtime", "cannot approve overtime"},
	FlagApproveExpense:        {"can approve expenses and purchases", "cannot approve expenses or purchases"},
}

var scopeText = map[Scope]string{
	ScopeSelf:   "their own records",
	ScopeTeam:   "records of their team",
	ScopeGlobal: "records across the whole organization",
}

// EffectiveAccess renders p as plain sentences about roleName. It adds no
// rules of its own.
func EffectiveAccess(roleName string, p RolePermission) []Line {
	out := make([]Line, 0, len(Flags)+1)
	for _, f := range Flags {
		v, _ := p.Get(f)
		text := flagText[f][1]
		if v {
			text = flagText[f][0]
		}
		out = append(out, Line{Key: string(f), Allowed: v, Text: fmt.Sprintf("%s %s.", roleName, text)})
	}
	out = append(out, Line{
		Key:     "visibility",
		Allowed: true,
		Text: fmt.Sprintf("%s sees data up to %s sensitivity in %s.",
			roleName, p.VisibilityLevel.Label(), scopeText[p.VisibilityScope]),
	})
	return out
}
