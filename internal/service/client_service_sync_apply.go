package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-notes-sync/internal/store"
	"github.com/MKhiriev/go-notes-sync/models"
)

// reconcile dispatches the plan. A row that vanished since the walk is
// skipped, every other failure aborts the pass.
func (p *syncPass) reconcile() error {
	total := len(p.plan)
	for i, item := range p.plan {
		if err := p.checkCancelled(); err != nil {
			return err
		}
		if item.action != models.SyncActionNone {
			p.report(models.SyncStateReconcile, fmt.Sprintf("Synchronizing %s (%d/%d)", item.label(), i+1, total))
		}

		err := p.dispatch(item)
		if errors.Is(err, store.ErrNoteNotFound) {
			p.log.Warn().
				Err(err).
				Str("action", item.action.String()).
				Int64("note_id", item.row.ID).
				Msg("note disappeared while syncing, skipping it")
			p.summary.Skipped = append(p.summary.Skipped, item.row.ID)
			continue
		}
		if err != nil {
			return fmt.Errorf("%s %s: %w", item.action, item.label(), err)
		}
		p.summary.Count(item.action)
	}
	return nil
}

func (p *syncPass) dispatch(item planItem) error {
	switch item.action {
	case models.SyncActionNone:
		return nil

	case models.SyncActionAddLocal:
		return p.addLocalNode(item.node)

	case models.SyncActionAddRemote:
		return p.addRemoteNode(item)

	case models.SyncActionDeleteLocal:
		if meta, ok := p.metas[item.row.GTaskID]; ok {
			if err := p.gateway.DeleteNode(p.work, meta); err != nil {
				return err
			}
		}
		p.localDeletes = append(p.localDeletes, item.row.ID)
		return nil

	case models.SyncActionDeleteRemote:
		if meta, ok := p.metas[item.node.GID()]; ok {
			if err := p.gateway.DeleteNode(p.work, meta); err != nil {
				return err
			}
		}
		return p.gateway.DeleteNode(p.work, item.node)

	case models.SyncActionUpdateLocal:
		return p.updateLocalNode(item.node, item.row)

	case models.SyncActionUpdateRemote:
		return p.updateRemoteNode(item.node, item.row)

	case models.SyncActionUpdateConflict:
		// remote wins, the local diff is dropped
		if err := p.updateLocalNode(item.node, item.row); err != nil {
			return err
		}
		p.log.Info().
			Int64("note_id", item.row.ID).
			Str("gid", item.node.GID()).
			Msg("conflict resolved in favour of the remote version")
		p.summary.Conflicts = append(p.summary.Conflicts, models.ConflictRecord{
			LocalID: item.row.ID,
			GID:     item.node.GID(),
			Name:    item.node.Name(),
		})
		return nil

	default:
		return fmt.Errorf("%w: %s", ErrUnknownSyncAction, item.action)
	}
}

// addLocalNode creates the local row of a remote list or task.
func (p *syncPass) addLocalNode(node models.SyncNode) error {
	var note *store.SQLNote

	switch n := node.(type) {
	case *models.TaskList:
		var err error
		switch n.Name() {
		case models.RemoteName(models.FolderDefault):
			note, err = store.LoadSQLNote(p.work, p.stores, models.RootFolderID)
		case models.RemoteName(models.FolderCallNote):
			note, err = store.LoadSQLNote(p.work, p.stores, models.CallRecordFolderID)
		default:
			note, err = p.newLocalNote(n, models.RootFolderID)
		}
		if err != nil {
			return err
		}

	case *models.Task:
		parentID, ok := p.gidToNid[n.Parent().GID()]
		if !ok {
			return fmt.Errorf("%w: no local folder for list %q", ErrParentNotFound, n.Parent().Name())
		}
		var err error
		if note, err = p.newLocalNote(n, parentID); err != nil {
			return err
		}

	default:
		return fmt.Errorf("%w: cannot add %T locally", ErrUnknownSyncAction, node)
	}

	note.SetGTaskID(node.GID())
	if err := note.Commit(p.work, false); err != nil {
		return fmt.Errorf("save local copy of %s: %w", node.GID(), err)
	}
	p.pair(node.GID(), note.ID())

	return p.updateRemoteMeta(node.GID(), note)
}

func (p *syncPass) newLocalNote(node models.SyncNode, parentID int64) (*store.SQLNote, error) {
	content, err := node.LocalContent()
	if err != nil {
		return nil, err
	}

	note := store.NewSQLNote(p.stores)
	if err = note.SetContent(p.work, content); err != nil {
		return nil, err
	}
	note.SetParentID(parentID)
	return note, nil
}

// addRemoteNode creates the remote counterpart of a row and records its gid.
// Folders matched by name during the walk reuse the existing list.
func (p *syncPass) addRemoteNode(item planItem) error {
	note, err := store.LoadSQLNote(p.work, p.stores, item.row.ID)
	if err != nil {
		return err
	}
	content, err := note.Content()
	if err != nil {
		return err
	}

	var node models.Node
	if note.IsNoteType() {
		list, err := p.remoteParent(note.ParentID())
		if err != nil {
			return err
		}

		task := models.NewTask()
		if err = task.ApplyLocal(content); err != nil {
			return err
		}
		list.AddChild(task)
		if err = p.gateway.CreateTask(p.work, task); err != nil {
			return err
		}
		if err = p.updateRemoteMeta(task.GID(), note); err != nil {
			return err
		}
		node = task
	} else {
		list := item.paired
		if list == nil {
			list = models.NewTaskList()
			if err = list.ApplyLocal(content); err != nil {
				return err
			}
			if err = p.gateway.CreateTaskList(p.work, list); err != nil {
				return err
			}
			p.lists = append(p.lists, list)
			p.listByGID[list.GID()] = list
		}
		node = list
	}

	note.SetGTaskID(node.GID())
	if err = note.Commit(p.work, false); err != nil {
		return fmt.Errorf("save gid of note %d: %w", note.ID(), err)
	}
	note.ResetLocalModified()
	if err = note.Commit(p.work, true); err != nil {
		return fmt.Errorf("reset local flag of note %d: %w", note.ID(), err)
	}

	p.pair(node.GID(), note.ID())
	return nil
}

// updateLocalNode overwrites the row with the remote state. The write is
// guarded by the row version, an edit landing meanwhile wins and the remote
// state is applied on a later pass.
func (p *syncPass) updateLocalNode(node models.SyncNode, row models.NoteRow) error {
	note, err := store.LoadSQLNote(p.work, p.stores, row.ID)
	if err != nil {
		return err
	}

	content, err := node.LocalContent()
	if err != nil {
		return err
	}
	if err = note.SetContent(p.work, content); err != nil {
		return err
	}

	switch n := node.(type) {
	case *models.Task:
		parentID, ok := p.gidToNid[n.Parent().GID()]
		if !ok {
			return fmt.Errorf("%w: no local folder for list %q", ErrParentNotFound, n.Parent().Name())
		}
		note.SetParentID(parentID)
	case *models.TaskList:
		if row.Type == models.NoteTypeFolder {
			note.SetParentID(models.RootFolderID)
		}
	}

	note.ResetLocalModified()
	if err = note.Commit(p.work, true); err != nil {
		return fmt.Errorf("update local note %d: %w", row.ID, err)
	}

	return p.updateRemoteMeta(node.GID(), note)
}

// updateRemoteNode pushes the row to its remote node and moves the task
// when its folder changed locally.
func (p *syncPass) updateRemoteNode(node models.SyncNode, row models.NoteRow) error {
	note, err := store.LoadSQLNote(p.work, p.stores, row.ID)
	if err != nil {
		return err
	}
	content, err := note.Content()
	if err != nil {
		return err
	}

	if err = node.ApplyLocal(content); err != nil {
		return err
	}
	if err = p.gateway.AddUpdateNode(p.work, node); err != nil {
		return err
	}
	if err = p.updateRemoteMeta(node.GID(), note); err != nil {
		return err
	}

	if task, ok := node.(*models.Task); ok && note.IsNoteType() {
		current, err := p.remoteParent(note.ParentID())
		if err != nil {
			return err
		}
		if previous := task.Parent(); previous != current {
			if previous != nil {
				previous.RemoveChild(task)
			}
			current.AddChild(task)
			if err = p.gateway.MoveTask(p.work, task, previous, current); err != nil {
				return err
			}
		}
	}

	note.ResetLocalModified()
	if err = note.Commit(p.work, true); err != nil {
		return fmt.Errorf("reset local flag of note %d: %w", row.ID, err)
	}
	return nil
}

// updateRemoteMeta refreshes the sentinel of a note, creating it on first
// sync. Folders have no sentinel.
func (p *syncPass) updateRemoteMeta(gid string, note *store.SQLNote) error {
	if !note.IsNoteType() {
		return nil
	}

	content, err := note.Content()
	if err != nil {
		return err
	}
	info := models.MetaInfo{Note: content.Note, Data: content.Data}

	if meta, ok := p.metas[gid]; ok {
		if err = meta.SetMeta(gid, info); err != nil {
			return err
		}
		return p.gateway.AddUpdateNode(p.work, meta)
	}

	meta := models.NewMetaData()
	if err = meta.SetMeta(gid, info); err != nil {
		return err
	}
	p.metaList.AddChild(meta)
	p.metas[gid] = meta
	return p.gateway.CreateTask(p.work, meta)
}

func (p *syncPass) remoteParent(folderID int64) (*models.TaskList, error) {
	gid, ok := p.nidToGid[folderID]
	if !ok {
		return nil, fmt.Errorf("%w: folder %d has no remote list", ErrParentNotFound, folderID)
	}
	list, ok := p.listByGID[gid]
	if !ok {
		return nil, fmt.Errorf("%w: list %s is not loaded", ErrParentNotFound, gid)
	}
	return list, nil
}
