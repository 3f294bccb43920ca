// Package authz decides what the current user may do with a project or a
// document. Every check is a pure function of (user, entity): no database
// access, no side effects. Handlers run these before any mutation; the
// database constraints are the server-side backstop.
//
// All checks fail closed: a nil user (unauthenticated) or a project without a
// resolved owner is denied everything.
package authz

import "github.com/Ordy-97/GestionProjet/internal/model"

// CanViewProject reports whether user is the owner of project or one of its
// team members. project.Members must be loaded by the caller.
func CanViewProject(user *model.User, project *model.Project) bool {
	if user == nil || project == nil || project.OwnerID == 0 {
		return false
	}
	if user.ID == project.OwnerID {
		return true
	}
	return project.HasMember(user.ID)
}

// CanEditProject reports whether user may change project fields. Only the
// owner may: team members have read access only.
func CanEditProject(user *model.User, project *model.Project) bool {
	if user == nil || project == nil || project.OwnerID == 0 {
		return false
	}
	return user.ID == project.OwnerID
}

// CanDeleteProject is owner-only, same as editing.
func CanDeleteProject(user *model.User, project *model.Project) bool {
	return CanEditProject(user, project)
}

// CanManageMembers reports whether user may add or remove team members.
// Owner-only.
func CanManageMembers(user *model.User, project *model.Project) bool {
	return CanEditProject(user, project)
}

// CanUploadDocument reports whether user may attach documents to project.
// Anyone with view access (owner or team member) may upload.
func CanUploadDocument(user *model.User, project *model.Project) bool {
	return CanViewProject(user, project)
}

// CanDeleteDocument reports whether user may delete document. The project
// owner and the original uploader may; other team members may not.
func CanDeleteDocument(user *model.User, document *model.Document, project *model.Project) bool {
	if user == nil || document == nil || project == nil || project.OwnerID == 0 {
		return false
	}
	return user.ID == project.OwnerID || user.ID == document.UploadedBy
}
