package role

import "testing"

func TestNormalize(t *testing.T) {
	r := &SystemRole{Code: " site manager ", Name: " Site Manager "}
	if v := r.Normalize(); len(v) != 0 {
		t.Fatalf("violations: %v", v)
	}
	if r.Code != "SITE_MANAGER" || r.Name != "Site Manager" || r.Status != StatusActive {
		t.Fatalf("unexpected %+v", r)
	}

	bad := &SystemRole{Code: "1abc", Status: "X"}
	if v := bad.Normalize(); len(v) != 3 {
		t.Fatalf("want 3 violations, got %v", v)
	}
}

func TestReorder(t *testing.T) {
	roles := []SystemRole{{ID: "a", OrderIndex: 1}, {ID: "b", OrderIndex: 2}, {ID: "c", OrderIndex: 9}}
	out, err := Reorder(roles, []string{"c", "a", "b"})
	if err != nil {
		t.Fatalf("Reorder: %v", err)
	}
	want := []struct {
		id  string
		idx int
	}{{"c", 1}, {"a", 2}, {"b", 3}}
	for i, w := range want {
		if out[i].ID != w.id || out[i].OrderIndex != w.idx {
			t.Fatalf("pos %d = %s/%d", i, out[i].ID, out[i].OrderIndex)
		}
	}

	bad := [][]string{{"a", "b"}, {"a", "a", "b"}, {"a", "b", "x"}}
	for _, ids := range bad {
		if _, err := Reorder(roles, ids); err == nil {
			t.Fatalf("%v must be rejected", ids)
		}
	}
}
