package models

// SyncAction is the per-entity decision computed on every sync pass. It is
// never persisted.
type SyncAction int

const (
	SyncActionNone SyncAction = iota
	SyncActionAddRemote
	SyncActionAddLocal
	SyncActionDeleteRemote
	SyncActionDeleteLocal
	SyncActionUpdateRemote
	SyncActionUpdateLocal
	SyncActionUpdateConflict
	SyncActionError
)

var syncActionNames = [...]string{
	SyncActionNone:           "none",
	SyncActionAddRemote:      "add_remote",
	SyncActionAddLocal:       "add_local",
	SyncActionDeleteRemote:   "delete_remote",
	SyncActionDeleteLocal:    "delete_local",
	SyncActionUpdateRemote:   "update_remote",
	SyncActionUpdateLocal:    "update_local",
	SyncActionUpdateConflict: "update_conflict",
	SyncActionError:          "error",
}

func (a SyncAction) String() string {
	if a < 0 || int(a) >= len(syncActionNames) {
		return "unknown"
	}
	return syncActionNames[a]
}

// ClassifyAction decides what to do with a local row given the remote node
// paired with it, or nil when the row has no remote counterpart.
//
// The rules are evaluated in order:
//   - a trashed row is deleted remotely when it has a created remote
//     counterpart and left alone otherwise;
//   - no remote node: a row that was never synced is pushed when it carries
//     local edits, a previously synced row was deleted remotely;
//   - a node without gid has never been created remotely and is pushed;
//   - otherwise the node compares its own state with the row.
func ClassifyAction(row NoteRow, node SyncNode) SyncAction {
	if row.IsTrashed() {
		if node == nil || node.GID() == "" {
			return SyncActionNone
		}
		return SyncActionDeleteRemote
	}

	if node == nil {
		switch {
		case row.GTaskID == "" && row.LocalModified:
			return SyncActionAddRemote
		case row.GTaskID == "":
			return SyncActionNone
		default:
			return SyncActionDeleteLocal
		}
	}

	if node.GID() == "" {
		return SyncActionAddRemote
	}

	return node.ClassifyAction(row)
}

// remoteChanged reports whether the remote entity was modified after the
// last time the row was synchronised.
func remoteChanged(row NoteRow, lastModified int64) bool {
	return lastModified > row.SyncID
}
