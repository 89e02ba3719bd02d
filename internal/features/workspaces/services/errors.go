package workspaces_services

import "errors"

var (
	// ErrAccessDenied covers every denial during workspace resolution:
	// unknown slug, inactive workspace, and missing or inactive membership
	// all look the same to the caller.
	ErrAccessDenied = errors.New("access to workspace denied")

	ErrWorkspaceExists   = errors.New("workspace with this slug already exists")
	ErrWorkspaceNotFound = errors.New("workspace not found")
	ErrMemberNotFound    = errors.New("member not found in workspace")
	ErrMemberExists      = errors.New("user is already a member of this workspace")
	ErrLastOwner         = errors.New("workspace must keep at least one owner")
)
