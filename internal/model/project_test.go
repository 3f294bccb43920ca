package model

import "testing"

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusTodo, StatusInProgress, StatusDone} {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = false", s)
		}
	}
	for _, s := range []string{"", "archived", "TODO", "Done"} {
		if ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = true", s)
		}
	}
}

func TestHasMember(t *testing.T) {
	p := &Project{
		OwnerID: 1,
		Members: []ProjectMember{{UserID: 2}, {UserID: 3}},
	}
	if !p.HasMember(2) || !p.HasMember(3) {
		t.Error("loaded members not found")
	}
	if p.HasMember(1) {
		t.Error("owner must not count as a member row")
	}
	if p.HasMember(9) {
		t.Error("unknown user reported as member")
	}
}
