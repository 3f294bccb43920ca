package authz

import (
	"testing"

	"github.com/Ordy-97/GestionProjet/internal/model"
)

func projectWithMembers(ownerID uint, memberIDs ...uint) *model.Project {
	p := &model.Project{ID: 1, OwnerID: ownerID, Status: model.StatusTodo}
	for _, id := range memberIDs {
		p.Members = append(p.Members, model.ProjectMember{ProjectID: 1, UserID: id})
	}
	return p
}

func TestCanViewProject(t *testing.T) {
	owner := &model.User{ID: 1}
	member := &model.User{ID: 2}
	stranger := &model.User{ID: 3}
	project := projectWithMembers(1, 2)

	tests := []struct {
		name string
		user *model.User
		want bool
	}{
		{"owner", owner, true},
		{"team member", member, true},
		{"stranger", stranger, false},
		{"unauthenticated", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanViewProject(tt.user, project); got != tt.want {
				t.Errorf("CanViewProject = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanViewProject_FailsClosed(t *testing.T) {
	user := &model.User{ID: 1}

	if CanViewProject(user, nil) {
		t.Error("nil project must be denied")
	}
	// Owner reference not yet resolved: deny rather than crash.
	if CanViewProject(user, &model.Project{ID: 1}) {
		t.Error("project with unresolved owner must be denied")
	}
}

func TestCanEditProject_OwnerOnly(t *testing.T) {
	owner := &model.User{ID: 1}
	member := &model.User{ID: 2}
	project := projectWithMembers(1, 2)

	if !CanEditProject(owner, project) {
		t.Error("owner must be able to edit")
	}
	if CanEditProject(member, project) {
		t.Error("team member must not be able to edit")
	}
	if CanEditProject(nil, project) {
		t.Error("unauthenticated must not be able to edit")
	}
	if !CanDeleteProject(owner, project) || CanDeleteProject(member, project) {
		t.Error("delete must follow the same owner-only rule as edit")
	}
	if !CanManageMembers(owner, project) || CanManageMembers(member, project) {
		t.Error("member management must follow the same owner-only rule as edit")
	}
}

func TestCanUploadDocument(t *testing.T) {
	project := projectWithMembers(1, 2)

	if !CanUploadDocument(&model.User{ID: 1}, project) {
		t.Error("owner must be able to upload")
	}
	if !CanUploadDocument(&model.User{ID: 2}, project) {
		t.Error("team member must be able to upload")
	}
	if CanUploadDocument(&model.User{ID: 3}, project) {
		t.Error("stranger must not be able to upload")
	}
	if CanUploadDocument(nil, project) {
		t.Error("unauthenticated must not be able to upload")
	}
}

// Document uploaded by a team member: deletable by the project owner and the
// uploader, by nobody else.
func TestCanDeleteDocument(t *testing.T) {
	owner := &model.User{ID: 1}
	uploader := &model.User{ID: 2}
	otherMember := &model.User{ID: 3}
	project := projectWithMembers(1, 2, 3)
	doc := &model.Document{ID: 10, ProjectID: 1, UploadedBy: 2}

	if !CanDeleteDocument(owner, doc, project) {
		t.Error("project owner must be able to delete the document")
	}
	if !CanDeleteDocument(uploader, doc, project) {
		t.Error("uploader must be able to delete the document")
	}
	if CanDeleteDocument(otherMember, doc, project) {
		t.Error("another team member must not be able to delete the document")
	}
	if CanDeleteDocument(nil, doc, project) {
		t.Error("unauthenticated must not be able to delete the document")
	}
	if CanDeleteDocument(owner, doc, &model.Project{ID: 1}) {
		t.Error("unresolved owner must deny document deletion")
	}
}

// Removing a member revokes view access; the owner keeps it throughout.
func TestMembershipLifecycle(t *testing.T) {
	owner := &model.User{ID: 1}
	member := &model.User{ID: 2}

	project := projectWithMembers(1)
	if CanViewProject(member, project) {
		t.Fatal("user must not see the project before being added")
	}

	project = projectWithMembers(1, 2)
	if !CanViewProject(member, project) {
		t.Fatal("added member must see the project")
	}
	if CanEditProject(member, project) {
		t.Fatal("added member must not be able to edit")
	}

	project = projectWithMembers(1)
	if CanViewProject(member, project) {
		t.Fatal("removed member must no longer see the project")
	}
	if !CanViewProject(owner, project) {
		t.Fatal("owner must keep access")
	}
}
