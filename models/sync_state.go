package models

import "time"

// SyncState is a stage of the sync state machine. The last four values are
// terminal: every pass ends in exactly one of them.
type SyncState int

const (
	SyncStateIdle SyncState = iota
	SyncStateLogin
	SyncStateFetchRemoteLists
	SyncStateWalkLocal
	SyncStateReconcile
	SyncStateCommit
	SyncStateSuccess
	SyncStateNetworkError
	SyncStateInternalError
	SyncStateCancelled
)

var syncStateNames = [...]string{
	SyncStateIdle:             "idle",
	SyncStateLogin:            "login",
	SyncStateFetchRemoteLists: "fetch_remote_lists",
	SyncStateWalkLocal:        "walk_local",
	SyncStateReconcile:        "reconcile",
	SyncStateCommit:           "commit",
	SyncStateSuccess:          "success",
	SyncStateNetworkError:     "network_error",
	SyncStateInternalError:    "internal_error",
	SyncStateCancelled:        "cancelled",
}

func (s SyncState) String() string {
	if s < 0 || int(s) >= len(syncStateNames) {
		return "unknown"
	}
	return syncStateNames[s]
}

// IsTerminal reports whether s ends a sync pass.
func (s SyncState) IsTerminal() bool {
	return s >= SyncStateSuccess
}

// Message returns the user facing text of a terminal state.
func (s SyncState) Message() string {
	switch s {
	case SyncStateSuccess:
		return "Sync finished successfully"
	case SyncStateNetworkError:
		return "Sync failed: network error, check the connection and try again"
	case SyncStateInternalError:
		return "Sync failed: internal error"
	case SyncStateCancelled:
		return "Sync cancelled"
	default:
		return "Sync in progress"
	}
}

// SyncProgress is one event of the progress side channel.
type SyncProgress struct {
	State   SyncState `json:"state"`
	Message string    `json:"message"`
}

// ConflictRecord describes an entity changed on both sides since the last
// sync. The remote version was kept.
type ConflictRecord struct {
	LocalID int64  `json:"local_id"`
	GID     string `json:"gid"`
	Name    string `json:"name"`
}

// SyncSummary collects what a pass did.
type SyncSummary struct {
	Actions   map[SyncAction]int `json:"actions"`
	Conflicts []ConflictRecord   `json:"conflicts,omitempty"`

	// Skipped holds local ids of rows that vanished between classification
	// and commit.
	Skipped []int64 `json:"skipped,omitempty"`
}

// NewSyncSummary returns an empty summary ready to be filled.
func NewSyncSummary() SyncSummary {
	return SyncSummary{Actions: make(map[SyncAction]int)}
}

// Count records one dispatched action.
func (s *SyncSummary) Count(action SyncAction) {
	if s.Actions == nil {
		s.Actions = make(map[SyncAction]int)
	}
	s.Actions[action]++
}

// SyncResult is the outcome of a single sync pass.
type SyncResult struct {
	State      SyncState   `json:"state"`
	Summary    SyncSummary `json:"summary"`
	Err        error       `json:"-"`
	StartedAt  time.Time   `json:"started_at"`
	FinishedAt time.Time   `json:"finished_at"`
}
