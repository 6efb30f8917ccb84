// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Reserved names used to recognise app-owned lists and sentinel tasks on the
// remote task service.
const (
	// FolderPrefix is prepended to every list name created by the application.
	// Lists without the prefix belong to the user and are never touched.
	FolderPrefix = "[MIUI_Notes]"

	// FolderDefault is the suffix of the list paired with the root folder.
	FolderDefault = "Default"

	// FolderCallNote is the suffix of the list paired with the call-record folder.
	FolderCallNote = "Call_Note"

	// FolderMeta is the suffix of the list holding all MetaData sentinels.
	FolderMeta = "METADATA"

	// MetaNoteName is the display name of every MetaData sentinel task.
	MetaNoteName = "[META INFO] DON'T UPDATE AND DELETE"
)

// ActionType is the tag of a single remote action inside a batch.
type ActionType string

const (
	ActionTypeCreate ActionType = "create"
	ActionTypeGetAll ActionType = "get_all"
	ActionTypeMove   ActionType = "move"
	ActionTypeUpdate ActionType = "update"
)

// EntityType distinguishes lists from tasks on the wire.
type EntityType string

const (
	EntityTypeGroup EntityType = "GROUP"
	EntityTypeTask  EntityType = "TASK"
)

// RemoteName returns the remote list name for a local folder name.
func RemoteName(folderName string) string {
	return FolderPrefix + folderName
}

// IsReservedFolderName reports whether a local folder name would map onto one
// of the lists the application keeps for itself.
func IsReservedFolderName(folderName string) bool {
	switch folderName {
	case FolderDefault, FolderCallNote, FolderMeta:
		return true
	}
	return false
}
