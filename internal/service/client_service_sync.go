package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-notes-sync/internal/adapter"
	"github.com/MKhiriev/go-notes-sync/internal/config"
	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/internal/store"
	"github.com/MKhiriev/go-notes-sync/models"
)

type clientSyncService struct {
	gateway   adapter.TaskGateway
	notes     store.NoteRepository
	syncState store.SyncStateRepository
	stores    store.NoteStores
	account   models.Account

	logger *logger.Logger
	now    func() time.Time
}

// NewClientSyncService wires the orchestrator to the local storages and the
// remote gateway. account is the remote account every pass logs in with.
func NewClientSyncService(storages *store.ClientStorages, gateway adapter.TaskGateway, account config.ClientAccount, logger *logger.Logger) ClientSyncService {
	return &clientSyncService{
		gateway:   gateway,
		notes:     storages.Notes,
		syncState: storages.SyncState,
		stores:    storages.NoteStores(),
		account:   models.Account{Name: account.Name, Secret: account.Secret},
		logger:    logger,
		now:       time.Now,
	}
}

// Sync implements [ClientSyncService].
func (s *clientSyncService) Sync(ctx context.Context, observer ProgressObserver) models.SyncResult {
	ctx = s.logger.WithContext(ctx)
	log := logger.FromContext(ctx)

	result := models.SyncResult{StartedAt: s.now()}
	p := s.newPass(ctx, observer)

	err := p.run()
	if err != nil {
		p.abort(err)
	}

	result.State = syncStateFromError(err)
	result.Summary = p.summary
	result.Err = err
	result.FinishedAt = s.now()

	event := log.Info()
	if result.State != models.SyncStateSuccess {
		event = log.Warn().AnErr("reason", err)
	}
	event.
		Str("state", result.State.String()).
		Str("stage", p.state.String()).
		Any("actions", p.summary.Actions).
		Int("conflicts", len(p.summary.Conflicts)).
		Int("skipped", len(p.summary.Skipped)).
		Dur("took", result.FinishedAt.Sub(result.StartedAt)).
		Msg("sync pass finished")

	p.report(result.State, result.State.Message())
	return result
}

// syncPass holds everything a single pass learns about both sides.
type syncPass struct {
	*clientSyncService

	// ctx is only checked for cancellation, work carries the calls that
	// must be allowed to finish once issued
	ctx      context.Context
	work     context.Context
	log      *logger.Logger
	observer ProgressObserver
	state    models.SyncState

	metaList *models.TaskList
	metas    map[string]*models.MetaData

	// app-owned lists in remote order
	lists     []*models.TaskList
	listByGID map[string]*models.TaskList

	// remote lists and tasks not yet paired with a local row
	nodes map[string]models.SyncNode

	gidToNid map[string]int64
	nidToGid map[int64]string

	// local folders with a reserved name and the notes inside them stay
	// out of the pass, together with the remote lists paired to them
	skipped      map[int64]struct{}
	skippedLists map[string]struct{}

	plan         []planItem
	localDeletes []int64
	summary      models.SyncSummary
}

func (s *clientSyncService) newPass(ctx context.Context, observer ProgressObserver) *syncPass {
	return &syncPass{
		clientSyncService: s,
		ctx:               ctx,
		work:              context.WithoutCancel(ctx),
		log:               logger.FromContext(ctx),
		observer:          observer,
		state:             models.SyncStateIdle,
		metas:             make(map[string]*models.MetaData),
		listByGID:         make(map[string]*models.TaskList),
		nodes:             make(map[string]models.SyncNode),
		gidToNid:          make(map[string]int64),
		nidToGid:          make(map[int64]string),
		skipped:           make(map[int64]struct{}),
		skippedLists:      make(map[string]struct{}),
		summary:           models.NewSyncSummary(),
	}
}

func (p *syncPass) run() error {
	p.gateway.ResetUpdateArray()

	if err := p.enter(models.SyncStateLogin, "Logging in"); err != nil {
		return err
	}
	if err := p.login(); err != nil {
		return err
	}

	if err := p.enter(models.SyncStateFetchRemoteLists, "Fetching remote task lists"); err != nil {
		return err
	}
	if err := p.fetchRemote(); err != nil {
		return err
	}

	if err := p.enter(models.SyncStateWalkLocal, "Reading local notes"); err != nil {
		return err
	}
	if err := p.walkLocal(); err != nil {
		return err
	}

	if err := p.enter(models.SyncStateReconcile, "Synchronizing notes"); err != nil {
		return err
	}
	if err := p.reconcile(); err != nil {
		return err
	}

	if err := p.enter(models.SyncStateCommit, "Committing changes"); err != nil {
		return err
	}
	return p.commit()
}

// abort settles the gateway queue of a failed pass. After a cancellation the
// queued updates belong to rows whose local flags were already cleared, so
// they are flushed as part of the unit of work in flight.
func (p *syncPass) abort(err error) {
	if !errors.Is(err, ErrSyncCancelled) {
		p.gateway.ResetUpdateArray()
		return
	}

	if flushErr := p.gateway.CommitUpdate(p.work); flushErr != nil {
		p.log.Err(flushErr).
			Str("func", "syncPass.abort").
			Msg("failed to flush queued updates of a cancelled pass")
		p.gateway.ResetUpdateArray()
	}
}

func (p *syncPass) enter(state models.SyncState, message string) error {
	if err := p.checkCancelled(); err != nil {
		return err
	}
	p.report(state, message)
	return nil
}

func (p *syncPass) report(state models.SyncState, message string) {
	p.state = state
	if p.observer != nil {
		p.observer(models.SyncProgress{State: state, Message: message})
	}
}

func (p *syncPass) checkCancelled() error {
	if err := p.ctx.Err(); err != nil {
		return fmt.Errorf("%w in %s: %w", ErrSyncCancelled, p.state, err)
	}
	return nil
}

// login authenticates and forgets every gid when the rows were last synced
// with a different account.
func (p *syncPass) login() error {
	if err := p.gateway.Login(p.work, p.account); err != nil {
		return fmt.Errorf("login as %q: %w", p.account.Name, err)
	}

	previous, err := p.syncState.SyncAccount(p.work)
	if err != nil {
		return fmt.Errorf("read sync account: %w", err)
	}
	if previous == p.account.Name {
		return nil
	}

	if previous != "" {
		p.log.Info().
			Str("previous", previous).
			Str("account", p.account.Name).
			Msg("sync account changed, clearing sync marks")
		if err = p.notes.ClearSyncMarks(p.work); err != nil {
			return fmt.Errorf("clear sync marks: %w", err)
		}
		if err = p.syncState.SetLastSyncTime(p.work, 0); err != nil {
			return fmt.Errorf("reset last sync time: %w", err)
		}
	}

	if err = p.syncState.SetSyncAccount(p.work, p.account.Name); err != nil {
		return fmt.Errorf("save sync account: %w", err)
	}
	return nil
}

// fetchRemote loads the metadata list first, creating it when absent, and
// then every app-owned list with its tasks. Sentinels are attached to the
// tasks they describe before a task is judged worth saving.
func (p *syncPass) fetchRemote() error {
	entities, err := p.gateway.GetTaskLists(p.work)
	if err != nil {
		return fmt.Errorf("get task lists: %w", err)
	}

	metaName := models.RemoteName(models.FolderMeta)
	owned := make([]models.RemoteEntity, 0, len(entities))
	for _, entity := range entities {
		switch {
		case entity.Deleted:
			continue
		case entity.Name == metaName && p.metaList == nil:
			if err = p.loadMetaList(entity); err != nil {
				return err
			}
		case entity.Name == metaName:
			p.log.Warn().Str("gid", entity.ID).Msg("ignoring duplicate metadata list")
		case strings.HasPrefix(entity.Name, models.FolderPrefix):
			owned = append(owned, entity)
		}
	}

	if p.metaList == nil {
		p.metaList = models.NewNamedTaskList(metaName)
		if err = p.gateway.CreateTaskList(p.work, p.metaList); err != nil {
			return fmt.Errorf("create metadata list: %w", err)
		}
	}

	for _, entity := range owned {
		if err = p.checkCancelled(); err != nil {
			return err
		}
		if err = p.loadList(entity); err != nil {
			return err
		}
	}
	return nil
}

func (p *syncPass) loadMetaList(entity models.RemoteEntity) error {
	list := models.NewTaskList()
	if err := list.ApplyRemote(entity); err != nil {
		return fmt.Errorf("load metadata list: %w", err)
	}

	tasks, err := p.gateway.GetTaskList(p.work, list.GID())
	if err != nil {
		return fmt.Errorf("get metadata tasks: %w", err)
	}

	for _, t := range tasks {
		meta := models.NewMetaData()
		if err = meta.ApplyRemote(t); err != nil {
			return fmt.Errorf("load sentinel: %w", err)
		}
		list.AddChild(meta)
		if meta.RelatedGID() == "" {
			p.log.Warn().Str("gid", meta.GID()).Msg("sentinel without a related gid")
			continue
		}
		p.metas[meta.RelatedGID()] = meta
	}

	p.metaList = list
	return nil
}

func (p *syncPass) loadList(entity models.RemoteEntity) error {
	list := models.NewTaskList()
	if err := list.ApplyRemote(entity); err != nil {
		return fmt.Errorf("load list: %w", err)
	}

	tasks, err := p.gateway.GetTaskList(p.work, list.GID())
	if err != nil {
		return fmt.Errorf("get tasks of %q: %w", list.Name(), err)
	}

	for _, t := range tasks {
		if t.Deleted {
			continue
		}
		task := models.NewTask()
		if err = task.ApplyRemote(t); err != nil {
			return fmt.Errorf("load task of %q: %w", list.Name(), err)
		}
		if meta, ok := p.metas[task.GID()]; ok {
			task.SetMetaInfo(meta.Info())
		}
		if !task.IsWorthSaving() {
			continue
		}
		list.AddChild(task)
		p.nodes[task.GID()] = task
	}

	p.lists = append(p.lists, list)
	p.listByGID[list.GID()] = list
	p.nodes[list.GID()] = list
	return nil
}

// commit flushes queued remote updates, purges local rows scheduled for
// deletion, refreshes sync ids from a second fetch and finally advances the
// last sync time.
func (p *syncPass) commit() error {
	if err := p.gateway.CommitUpdate(p.work); err != nil {
		return fmt.Errorf("commit remote updates: %w", err)
	}

	if err := p.checkCancelled(); err != nil {
		return err
	}
	if len(p.localDeletes) > 0 {
		if _, err := p.notes.Delete(p.work, p.localDeletes...); err != nil {
			return fmt.Errorf("delete local notes: %w", err)
		}
	}

	if err := p.checkCancelled(); err != nil {
		return err
	}
	if err := p.refreshSyncIDs(); err != nil {
		return err
	}

	if err := p.syncState.SetLastSyncTime(p.work, p.now().UnixMilli()); err != nil {
		return fmt.Errorf("save last sync time: %w", err)
	}
	return nil
}

// refreshSyncIDs records the remote last-modified stamp of every synced row
// so that the next pass sees them as unchanged.
func (p *syncPass) refreshSyncIDs() error {
	p.metaList = nil
	p.metas = make(map[string]*models.MetaData)
	p.lists = nil
	p.listByGID = make(map[string]*models.TaskList)
	p.nodes = make(map[string]models.SyncNode)

	if err := p.fetchRemote(); err != nil {
		return fmt.Errorf("refresh remote state: %w", err)
	}

	rows, err := p.notes.Query(p.work, store.NoteFilter{
		Types:            []models.NoteType{models.NoteTypeNote, models.NoteTypeFolder},
		ExcludeParentIDs: []int64{models.TrashFolderID},
	})
	if err != nil {
		return fmt.Errorf("query synced notes: %w", err)
	}

	for _, row := range rows {
		if _, ok := p.skipped[row.ID]; ok {
			continue
		}
		if row.GTaskID == "" {
			p.log.Warn().Int64("note_id", row.ID).Msg("note was not synced in this pass")
			continue
		}
		node, ok := p.nodes[row.GTaskID]
		if !ok {
			return fmt.Errorf("%w: note %d (gid %s)", ErrMissedAfterSync, row.ID, row.GTaskID)
		}
		delete(p.nodes, row.GTaskID)

		if row.SyncID == node.LastModified() {
			continue
		}
		if _, err = p.notes.Update(p.work, row.ID, store.Fields{store.NoteColumnSyncID: node.LastModified()}, nil); err != nil {
			return fmt.Errorf("refresh sync id of note %d: %w", row.ID, err)
		}
	}
	return nil
}
