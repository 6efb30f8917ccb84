// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// Node is a syncable entity mirrored on the remote task service. The set of
// implementations is closed: [Task], [TaskList] and [MetaData].
//
// Only [Task] and [TaskList] round-trip through the local store and therefore
// implement [SyncNode]. A [MetaData] sentinel is rebuilt from remote state
// alone, so its method set has no local operations at all.
type Node interface {
	// GID returns the remote identifier, empty before the first create.
	GID() string
	Name() string
	LastModified() int64
	Deleted() bool

	// AssignGID records the identifier returned by a remote create. A gid
	// is immutable once assigned.
	AssignGID(gid string) error
	SetDeleted(deleted bool)

	// CreateAction builds the wire payload creating the node remotely.
	CreateAction(actionID int) (Action, error)

	// UpdateAction builds the wire payload updating the node remotely.
	UpdateAction(actionID int) (Action, error)

	// ApplyRemote loads a server payload. Applying the same payload twice
	// leaves the node in the same state as applying it once.
	ApplyRemote(entity RemoteEntity) error

	// PopulatedFrom reports which schema last filled the node.
	PopulatedFrom() Source

	base() *nodeBase
}

// SyncNode is a node that is paired with a local row.
type SyncNode interface {
	Node

	// ApplyLocal loads the local JSON of the paired row.
	ApplyLocal(content NoteContent) error

	// LocalContent renders the node as local JSON.
	LocalContent() (NoteContent, error)

	// ClassifyAction decides the sync action for the paired row.
	ClassifyAction(row NoteRow) SyncAction
}

// ListItem is a node that lives inside a [TaskList]: a [Task] or a [MetaData].
type ListItem interface {
	Node
	Parent() *TaskList
	core() *taskCore
}

// Source tells which schema a node was last populated from.
type Source int

const (
	SourceNone Source = iota
	SourceRemote
	SourceLocal
)

type nodeBase struct {
	gid          string
	name         string
	lastModified int64
	deleted      bool
	source       Source
}

func (n *nodeBase) base() *nodeBase { return n }

func (n *nodeBase) GID() string { return n.gid }

func (n *nodeBase) Name() string { return n.name }

func (n *nodeBase) LastModified() int64 { return n.lastModified }

func (n *nodeBase) Deleted() bool { return n.deleted }

func (n *nodeBase) SetDeleted(deleted bool) { n.deleted = deleted }

func (n *nodeBase) PopulatedFrom() Source { return n.source }

func (n *nodeBase) AssignGID(gid string) error {
	if gid == "" {
		return fmt.Errorf("%w: empty gid", ErrMalformedRemoteEntity)
	}
	if n.gid != "" && n.gid != gid {
		return fmt.Errorf("%w: have %s, got %s", ErrGIDAlreadyAssigned, n.gid, gid)
	}
	n.gid = gid
	return nil
}

func (n *nodeBase) applyRemote(entity RemoteEntity) error {
	if err := n.AssignGID(entity.ID); err != nil {
		return err
	}
	n.name = entity.Name
	n.lastModified = entity.LastModified
	n.deleted = entity.Deleted
	n.source = SourceRemote
	return nil
}
