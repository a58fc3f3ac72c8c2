package permission

import (
	"errors"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	p := Default("r1")
	if p.RoleID != "r1" || !p.CanViewDirectory || p.VisibilityLevel != LevelInternal || p.VisibilityScope != ScopeTeam {
		t.Fatalf("unexpected default %+v", p)
	}
	for _, f := range Flags[1:] {
		if v, _ := p.Get(f); v {
			t.Fatalf("%s must default to false", f)
		}
	}
	if p.Persisted {
		t.Fatal("default must not be marked persisted")
	}
}

func TestSetFlag(t *testing.T) {
	p := Default("r1")
	if err := p.Set(FlagApproveExpense, true); err != nil || !p.CanApproveExpense {
		t.Fatalf("Set: %v", err)
	}
	if err := p.Set("can_fly", true); !errors.Is(err, ErrUnknownFlag) {
		t.Fatalf("want ErrUnknownFlag, got %v", err)
	}
}

func TestOrdinals(t *testing.T) {
	if !LevelSensitive.Covers(LevelPublic) || LevelPublic.Covers(LevelInternal) {
		t.Fatal("level ordering broken")
	}
	if !(ScopeSelf.Rank() < ScopeTeam.Rank() && ScopeTeam.Rank() < ScopeGlobal.Rank()) {
		t.Fatal("scope ordering broken")
	}
	if l, err := ParseLevel(" restricted "); err != nil || l != LevelRestricted {
		t.Fatalf("ParseLevel = %s, %v", l, err)
	}
	if _, err := ParseScope("planet"); err == nil {
		t.Fatal("unknown scope must fail")
	}
}

func TestEffectiveAccess(t *testing.T) {
	p := Default("r1")
	p.CanApproveExpense = true
	p.VisibilityScope = ScopeGlobal
	lines := EffectiveAccess("Finance", p)
	if len(lines) != len(Flags)+1 {
		t.Fatalf("lines = %d", len(lines))
	}
	if lines[0].Text != "Finance can browse the people directory." {
		t.Fatalf("first line %q", lines[0].Text)
	}
	if lines[1].Allowed || !strings.Contains(lines[1].Text, "cannot") {
		t.Fatalf("manage people line %+v", lines[1])
	}
	last := lines[len(lines)-1]
	if !strings.Contains(last.Text, "Internal") || !strings.Contains(last.Text, "whole organization") {
		t.Fatalf("visibility line %q", last.Text)
	}
}
