package access

import (
	"testing"

	"opsplatform-backend/internal/domain/permission"
)

func TestActor(t *testing.T) {
	staff := Actor{UserID: "u1", Permission: permission.Default("r1")}
	if !staff.CanSee("u1") || staff.CanSee("u2") {
		t.Fatal("staff sees only their own requests")
	}
	if staff.CanApproveExpense() || staff.CanManagePeople() {
		t.Fatal("default permission grants no authority")
	}

	reviewer := staff
	reviewer.Permission.CanApproveExpense = true
	if !reviewer.CanSee("u2") {
		t.Fatal("reviewers see every request")
	}

	admin := Actor{UserID: "a", Admin: true}
	if !admin.CanManagePeople() {
		t.Fatal("admins manage people")
	}
}
