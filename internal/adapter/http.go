package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-notes-sync/internal/config"
	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/internal/utils"
	"github.com/MKhiriev/go-notes-sync/models"
	"github.com/go-resty/resty/v2"
)

// loginTTL is how long a session is reused for the same account.
const loginTTL = 5 * time.Minute

type httpTaskGateway struct {
	client    *utils.HTTPClient
	batchSize int
	logger    *logger.Logger
	now       func() time.Time

	mu            sync.RWMutex
	token         string
	account       models.Account
	loggedInAt    time.Time
	clientVersion int64

	// only touched by the goroutine running the sync pass
	actionID int
	pending  []models.Action
}

// NewHTTPTaskGateway constructs the resty implementation of [TaskGateway].
// It normalises the base URL from adapterCfg.HTTPAddress and applies the
// request timeout to every call.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as
// a valid URL.
func NewHTTPTaskGateway(adapterCfg config.ClientAdapter, logger *logger.Logger) (TaskGateway, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout)

	batchSize := adapterCfg.BatchSize
	if batchSize <= 0 {
		batchSize = config.DefaultBatchSize
	}

	return &httpTaskGateway{
		client:    client,
		batchSize: batchSize,
		logger:    logger,
		now:       time.Now,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Login implements [TaskGateway]. It POSTs the credentials to
// POST /api/auth/login and keeps the bearer token from the Authorization
// response header together with the client version of the account.
func (g *httpTaskGateway) Login(ctx context.Context, account models.Account) error {
	log := logger.FromContext(ctx)

	g.mu.RLock()
	fresh := g.token != "" && g.account.Name == account.Name && g.now().Sub(g.loggedInAt) < loginTTL
	g.mu.RUnlock()
	if fresh {
		log.Debug().Str("func", "*httpTaskGateway.Login").Msg("reusing session")
		return nil
	}

	var loginResp models.LoginResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(account).
		SetResult(&loginResp).
		Post("/api/auth/login")
	if err != nil {
		return fmt.Errorf("%w: login request: %w", ErrNetworkFailure, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return fmt.Errorf("%w: login parse bearer token: %w", ErrNetworkFailure, err)
	}

	g.mu.Lock()
	g.token = token
	g.account = account
	g.loggedInAt = g.now()
	g.clientVersion = loginResp.ClientVersion
	g.mu.Unlock()

	log.Info().Str("func", "*httpTaskGateway.Login").Str("account", account.Name).Msg("logged in")
	return nil
}

// GetTaskLists implements [TaskGateway] with GET /api/tasks/lists.
func (g *httpTaskGateway) GetTaskLists(ctx context.Context) ([]models.RemoteEntity, error) {
	req, err := g.authedRequest(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := req.Get("/api/tasks/lists")
	if err != nil {
		return nil, fmt.Errorf("%w: get task lists request: %w", ErrNetworkFailure, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var lists models.ListsResponse
	if err = json.Unmarshal(resp.Body(), &lists); err != nil {
		return nil, fmt.Errorf("%w: decode task lists: %w", ErrActionFailure, err)
	}
	return lists.Lists, nil
}

// GetTaskList implements [TaskGateway] with a get_all action.
func (g *httpTaskGateway) GetTaskList(ctx context.Context, listGID string) ([]models.RemoteEntity, error) {
	if err := g.CommitUpdate(ctx); err != nil {
		return nil, err
	}

	resp, err := g.Execute(ctx, []models.Action{{
		ActionID:   g.nextActionID(),
		ActionType: models.ActionTypeGetAll,
		ListID:     listGID,
	}})
	if err != nil {
		return nil, err
	}
	return resp.Tasks, nil
}

func (g *httpTaskGateway) CreateTask(ctx context.Context, item models.ListItem) error {
	if err := g.CommitUpdate(ctx); err != nil {
		return err
	}

	action, err := item.CreateAction(g.nextActionID())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrActionFailure, err)
	}
	return g.create(ctx, item, action)
}

func (g *httpTaskGateway) CreateTaskList(ctx context.Context, list *models.TaskList) error {
	if err := g.CommitUpdate(ctx); err != nil {
		return err
	}

	action, err := list.CreateAction(g.nextActionID())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrActionFailure, err)
	}
	return g.create(ctx, list, action)
}

func (g *httpTaskGateway) create(ctx context.Context, node models.Node, action models.Action) error {
	resp, err := g.Execute(ctx, []models.Action{action})
	if err != nil {
		return err
	}

	result := resp.Results[0]
	if result.NewID == "" {
		return fmt.Errorf("%w: create action %d returned no id", ErrActionFailure, action.ActionID)
	}
	if err = node.AssignGID(result.NewID); err != nil {
		return fmt.Errorf("%w: %w", ErrActionFailure, err)
	}
	return nil
}

func (g *httpTaskGateway) AddUpdateNode(ctx context.Context, node models.Node) error {
	// keep batches small, the service rejects huge action lists
	if len(g.pending) > g.batchSize {
		if err := g.CommitUpdate(ctx); err != nil {
			return err
		}
	}

	action, err := node.UpdateAction(g.nextActionID())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrActionFailure, err)
	}
	g.pending = append(g.pending, action)
	return nil
}

func (g *httpTaskGateway) MoveTask(ctx context.Context, task *models.Task, preParent, curParent *models.TaskList) error {
	if err := g.CommitUpdate(ctx); err != nil {
		return err
	}

	action := models.Action{
		ActionID:   g.nextActionID(),
		ActionType: models.ActionTypeMove,
		ID:         task.GID(),
		SourceList: preParent.GID(),
		DestParent: curParent.GID(),
	}
	if preParent == curParent {
		// only reordering inside the list needs the sibling
		if prior := curParent.PriorSibling(task); prior != nil {
			action.PriorSiblingID = prior.GID()
		}
	} else {
		action.DestList = curParent.GID()
	}

	_, err := g.Execute(ctx, []models.Action{action})
	return err
}

func (g *httpTaskGateway) DeleteNode(ctx context.Context, node models.Node) error {
	if err := g.CommitUpdate(ctx); err != nil {
		return err
	}

	node.SetDeleted(true)
	action, err := node.UpdateAction(g.nextActionID())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrActionFailure, err)
	}

	_, err = g.Execute(ctx, []models.Action{action})
	return err
}

func (g *httpTaskGateway) CommitUpdate(ctx context.Context) error {
	if len(g.pending) == 0 {
		return nil
	}

	if _, err := g.Execute(ctx, g.pending); err != nil {
		return err
	}
	g.pending = nil
	return nil
}

func (g *httpTaskGateway) ResetUpdateArray() {
	g.pending = nil
}

// Execute implements [TaskGateway]. It POSTs the actions to
// POST /api/tasks/batch with an integrity hash of the action list and
// checks that every action got exactly one result.
func (g *httpTaskGateway) Execute(ctx context.Context, actions []models.Action) (models.BatchResponse, error) {
	log := logger.FromContext(ctx)

	req, err := g.authedRequest(ctx)
	if err != nil {
		return models.BatchResponse{}, err
	}

	g.mu.RLock()
	body := models.BatchRequest{
		Actions:       actions,
		ClientVersion: g.clientVersion,
		Hash:          computeBatchHash(actions, g.account.Secret),
	}
	g.mu.RUnlock()

	resp, err := req.
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post("/api/tasks/batch")
	if err != nil {
		return models.BatchResponse{}, fmt.Errorf("%w: batch request: %w", ErrNetworkFailure, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.BatchResponse{}, err
	}

	var batchResp models.BatchResponse
	if err = json.Unmarshal(resp.Body(), &batchResp); err != nil {
		return models.BatchResponse{}, fmt.Errorf("%w: decode batch response: %w", ErrActionFailure, err)
	}
	if err = alignResults(actions, batchResp.Results); err != nil {
		log.Err(err).Str("func", "*httpTaskGateway.Execute").Int("actions", len(actions)).Msg("unexpected batch response")
		return models.BatchResponse{}, err
	}

	log.Debug().Str("func", "*httpTaskGateway.Execute").Int("actions", len(actions)).Msg("batch executed")
	return batchResp, nil
}

// alignResults reorders results so that results[i] answers actions[i].
func alignResults(actions []models.Action, results []models.ActionResult) error {
	if len(results) != len(actions) {
		return fmt.Errorf("%w: %d results for %d actions", ErrActionFailure, len(results), len(actions))
	}

	byID := make(map[int]models.ActionResult, len(results))
	for _, r := range results {
		byID[r.ActionID] = r
	}

	for i, a := range actions {
		r, ok := byID[a.ActionID]
		if !ok {
			return fmt.Errorf("%w: no result for action %d", ErrActionFailure, a.ActionID)
		}
		if r.Error != "" {
			return fmt.Errorf("%w: action %d: %s", ErrActionFailure, a.ActionID, r.Error)
		}
		results[i] = r
	}
	return nil
}

func (g *httpTaskGateway) authedRequest(ctx context.Context) (*resty.Request, error) {
	g.mu.RLock()
	token := g.token
	g.mu.RUnlock()

	if token == "" {
		return nil, fmt.Errorf("%w: %w", ErrNetworkFailure, ErrNotLoggedIn)
	}
	return g.client.R().SetContext(ctx).SetHeader("Authorization", "Bearer "+token), nil
}

func (g *httpTaskGateway) nextActionID() int {
	g.actionID++
	return g.actionID
}

func computeBatchHash(actions []models.Action, secret string) string {
	h, err := utils.BatchHash(actions, secret)
	if err != nil {
		return ""
	}
	return h
}
