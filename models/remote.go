package models

// Action is one tagged entry of a batch sent to the remote task service.
// ActionID is assigned by the gateway and echoed back in [ActionResult] so
// that results can be correlated with the request.
type Action struct {
	ActionID   int        `json:"action_id"`
	ActionType ActionType `json:"action_type"`

	// ID identifies the entity for update and move actions.
	ID string `json:"id,omitempty"`

	CreatorID   string       `json:"creator_id,omitempty"`
	EntityDelta *EntityDelta `json:"entity_delta,omitempty"`

	// Index is the position of a created entity inside its parent.
	Index int `json:"index,omitempty"`

	ParentID       string     `json:"parent_id,omitempty"`
	DestParentType EntityType `json:"dest_parent_type,omitempty"`
	ListID         string     `json:"list_id,omitempty"`
	PriorSiblingID string     `json:"prior_sibling_id,omitempty"`

	// SourceList, DestParent and DestList are only set for move actions.
	SourceList string `json:"source_list,omitempty"`
	DestParent string `json:"dest_parent,omitempty"`
	DestList   string `json:"dest_list,omitempty"`

	// GetDeleted asks a get_all action to include soft-deleted tasks.
	GetDeleted bool `json:"get_deleted,omitempty"`
}

// EntityDelta carries the mutable fields of a created or updated entity.
type EntityDelta struct {
	Name       string     `json:"name"`
	CreatorID  string     `json:"creator_id,omitempty"`
	EntityType EntityType `json:"entity_type,omitempty"`
	Notes      string     `json:"notes"`
	Deleted    bool       `json:"deleted"`
}

// ActionResult is the server answer for one action of a batch.
type ActionResult struct {
	ActionID int    `json:"action_id"`
	NewID    string `json:"new_id,omitempty"`
	Error    string `json:"error,omitempty"`
}

// BatchRequest is the body of POST /api/tasks/batch. Hash is the hex
// HMAC-SHA256 of the JSON encoded action list keyed with the account
// secret.
type BatchRequest struct {
	Actions       []Action `json:"action_list"`
	ClientVersion int64    `json:"client_version"`
	Hash          string   `json:"hash"`
}

// BatchResponse is the answer of POST /api/tasks/batch. Tasks is filled only
// when the batch contained a get_all action.
type BatchResponse struct {
	Results []ActionResult `json:"results"`
	Tasks   []RemoteEntity `json:"tasks,omitempty"`
}

// ListsResponse is the answer of GET /api/tasks/lists.
type ListsResponse struct {
	Lists []RemoteEntity `json:"lists"`
}

// RemoteEntity is a list or a task as the remote service serialises it.
type RemoteEntity struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Notes          string     `json:"notes,omitempty"`
	Type           EntityType `json:"type"`
	Completed      bool       `json:"completed"`
	Deleted        bool       `json:"deleted"`
	LastModified   int64      `json:"last_modified"`
	ListID         string     `json:"list_id,omitempty"`
	ParentID       string     `json:"parent_id,omitempty"`
	PriorSiblingID string     `json:"prior_sibling_id,omitempty"`
}

// Account identifies the remote user whose task lists are synchronised.
type Account struct {
	Name   string `json:"user"`
	Secret string `json:"secret,omitempty"`
}

// LoginResponse is the body returned by POST /api/auth/login. The session
// token itself travels in the Authorization header.
type LoginResponse struct {
	User          string `json:"user"`
	ClientVersion int64  `json:"client_version"`
}
