package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-notes-sync/internal/store"
	"github.com/MKhiriev/go-notes-sync/models"
)

// planItem is one classified entity waiting for dispatch. row is the zero
// value for entities that only exist remotely.
type planItem struct {
	action models.SyncAction
	node   models.SyncNode
	row    models.NoteRow
	hasRow bool

	// paired is the remote list a never-synced folder was matched with by
	// name during the walk.
	paired *models.TaskList
}

func (i planItem) label() string {
	switch {
	case i.hasRow && i.row.IsFolder():
		return fmt.Sprintf("folder %d", i.row.ID)
	case i.hasRow:
		return fmt.Sprintf("note %d", i.row.ID)
	case i.node != nil:
		return fmt.Sprintf("remote %q", i.node.Name())
	default:
		return "unknown entity"
	}
}

// walkLocal classifies every entity in the order the dispatch relies on:
// trashed rows, system folders, user folders, lists that only exist
// remotely, notes and finally tasks that only exist remotely. Parents are
// always planned before their children.
func (p *syncPass) walkLocal() error {
	steps := []func() error{
		p.walkTrash,
		p.walkSystemFolders,
		p.walkFolders,
		p.walkRemoteLists,
		p.walkNotes,
		p.walkRemoteTasks,
	}
	for _, step := range steps {
		if err := p.checkCancelled(); err != nil {
			return err
		}
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func (p *syncPass) walkTrash() error {
	rows, err := p.notes.Query(p.work, store.NoteFilter{
		ParentIDs: []int64{models.TrashFolderID},
		Types:     []models.NoteType{models.NoteTypeNote, models.NoteTypeFolder},
	})
	if err != nil {
		return fmt.Errorf("query trash: %w", err)
	}

	for _, row := range rows {
		if node := p.take(row.GTaskID); node != nil {
			p.plan = append(p.plan, planItem{
				action: models.ClassifyAction(row, node),
				node:   node,
				row:    row,
				hasRow: true,
			})
		}
		p.localDeletes = append(p.localDeletes, row.ID)
	}
	return nil
}

// walkSystemFolders pairs the root and call-record folders. Their lists are
// only ever renamed remotely, never classified.
func (p *syncPass) walkSystemFolders() error {
	folders := []struct {
		id   int64
		name string
	}{
		{models.RootFolderID, models.RemoteName(models.FolderDefault)},
		{models.CallRecordFolderID, models.RemoteName(models.FolderCallNote)},
	}

	for _, f := range folders {
		row, err := p.notes.Get(p.work, f.id)
		if errors.Is(err, store.ErrNoteNotFound) {
			p.log.Warn().Int64("note_id", f.id).Msg("system folder is missing")
			continue
		}
		if err != nil {
			return fmt.Errorf("load system folder %d: %w", f.id, err)
		}

		item := planItem{row: row, hasRow: true}
		node := p.take(row.GTaskID)
		switch {
		case node == nil:
			item.action = models.SyncActionAddRemote
			item.paired = p.claimByName(f.name, row.ID)
		case node.Name() != f.name:
			p.pair(node.GID(), row.ID)
			item.action = models.SyncActionUpdateRemote
			item.node = node
		default:
			p.pair(node.GID(), row.ID)
			item.action = models.SyncActionNone
			item.node = node
		}
		p.plan = append(p.plan, item)
	}
	return nil
}

func (p *syncPass) walkFolders() error {
	rows, err := p.notes.Query(p.work, store.NoteFilter{
		Types:            []models.NoteType{models.NoteTypeFolder},
		ExcludeParentIDs: []int64{models.TrashFolderID},
	})
	if err != nil {
		return fmt.Errorf("query folders: %w", err)
	}

	for _, row := range rows {
		if models.IsReservedFolderName(row.Snippet) {
			p.skip(row, "folder name is reserved for the remote lists of the application")
			continue
		}

		item := p.classifyRow(row)
		if item.node == nil && row.GTaskID == "" {
			// folders carry the structure, they are pushed even untouched
			item.action = models.SyncActionAddRemote
		}
		if item.action == models.SyncActionAddRemote && item.node == nil {
			item.paired = p.claimByName(models.RemoteName(row.Snippet), row.ID)
		}
		p.plan = append(p.plan, item)
	}
	return nil
}

func (p *syncPass) walkRemoteLists() error {
	for _, list := range p.lists {
		if _, ok := p.nodes[list.GID()]; !ok {
			continue
		}
		delete(p.nodes, list.GID())
		p.plan = append(p.plan, planItem{action: models.SyncActionAddLocal, node: list})
	}
	return nil
}

func (p *syncPass) walkNotes() error {
	rows, err := p.notes.Query(p.work, store.NoteFilter{
		Types:            []models.NoteType{models.NoteTypeNote},
		ExcludeParentIDs: []int64{models.TrashFolderID, models.TempFolderID},
	})
	if err != nil {
		return fmt.Errorf("query notes: %w", err)
	}

	for _, row := range rows {
		if _, ok := p.skipped[row.ParentID]; ok {
			p.skip(row, "note is kept in a folder that is not synchronised")
			continue
		}
		p.plan = append(p.plan, p.classifyRow(row))
	}
	return nil
}

// skip leaves a local row out of the pass. Its remote counterpart, if any, is
// consumed too so that it is neither recreated locally nor reported missing.
func (p *syncPass) skip(row models.NoteRow, reason string) {
	p.log.Warn().
		Int64("note_id", row.ID).
		Str("gid", row.GTaskID).
		Str("name", row.Snippet).
		Msg(reason)

	p.skipped[row.ID] = struct{}{}
	if _, ok := p.take(row.GTaskID).(*models.TaskList); ok {
		p.skippedLists[row.GTaskID] = struct{}{}
	}
}

func (p *syncPass) walkRemoteTasks() error {
	for _, list := range p.lists {
		if _, ok := p.skippedLists[list.GID()]; ok {
			continue
		}
		for _, child := range list.Children() {
			task, ok := child.(*models.Task)
			if !ok {
				continue
			}
			if _, ok = p.nodes[task.GID()]; !ok {
				continue
			}
			delete(p.nodes, task.GID())
			p.plan = append(p.plan, planItem{action: models.SyncActionAddLocal, node: task})
		}
	}
	return nil
}

// classifyRow pairs a note or folder row with its remote node and runs the
// classifier. A row whose gid points at a node of the other kind has a
// corrupted identity mapping.
func (p *syncPass) classifyRow(row models.NoteRow) planItem {
	item := planItem{row: row, hasRow: true}

	node := p.take(row.GTaskID)
	if node == nil {
		item.action = models.ClassifyAction(row, nil)
		return item
	}

	_, isList := node.(*models.TaskList)
	if isList != row.IsFolder() {
		item.action = models.SyncActionError
		item.node = node
		return item
	}

	p.pair(node.GID(), row.ID)
	item.node = node
	item.action = models.ClassifyAction(row, node)
	return item
}

// take removes and returns the unpaired remote node with the given gid.
func (p *syncPass) take(gid string) models.SyncNode {
	if gid == "" {
		return nil
	}
	node, ok := p.nodes[gid]
	if !ok {
		return nil
	}
	delete(p.nodes, gid)
	return node
}

// claimByName pairs a never-synced folder with the first unpaired remote
// list carrying its reserved name. Lists sharing a name are reported since
// only the first of them is ever used.
func (p *syncPass) claimByName(name string, noteID int64) *models.TaskList {
	var claimed *models.TaskList
	matches := 0
	for _, list := range p.lists {
		if list.Name() != name {
			continue
		}
		matches++
		if claimed != nil {
			continue
		}
		if _, free := p.nodes[list.GID()]; free {
			claimed = list
		}
	}

	if matches > 1 {
		p.log.Warn().
			Str("name", name).
			Int("lists", matches).
			Int64("note_id", noteID).
			Msg("several remote lists share the folder name, using the first one")
	}
	if claimed == nil {
		return nil
	}

	delete(p.nodes, claimed.GID())
	p.pair(claimed.GID(), noteID)
	return claimed
}

func (p *syncPass) pair(gid string, noteID int64) {
	p.gidToNid[gid] = noteID
	p.nidToGid[noteID] = gid
}
