// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client side gateway to the remote task-list
// service.
//
// The primary abstraction is [TaskGateway], which decouples the sync
// orchestrator from the wire protocol. Every remote write is expressed as a
// tagged [models.Action]; [TaskGateway.Execute] is the single batched
// primitive all other operations are built on.
//
// Errors are split in two classes checked with [errors.Is]:
// [ErrNetworkFailure] for transport, authentication and HTTP status
// failures, and [ErrActionFailure] for responses that do not have the
// expected shape (for example a create without a new id).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-notes-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/task_gateway_mock.go -package=mock

// TaskGateway talks to the remote task-list service on behalf of one
// account. A gateway keeps the session and a queue of pending update
// actions, so one instance serves one sync pass at a time.
type TaskGateway interface {
	// Login authenticates account. A session of the same account younger
	// than five minutes is reused without a request.
	Login(ctx context.Context, account models.Account) error

	// GetTaskLists returns every list of the account, including lists that
	// do not belong to the application.
	GetTaskLists(ctx context.Context) ([]models.RemoteEntity, error)

	// GetTaskList returns the tasks of one list in display order. Pending
	// updates are flushed first.
	GetTaskList(ctx context.Context, listGID string) ([]models.RemoteEntity, error)

	// CreateTask creates item remotely and assigns the returned gid to it.
	// Pending updates are flushed first.
	CreateTask(ctx context.Context, item models.ListItem) error

	// CreateTaskList creates list remotely and assigns the returned gid.
	CreateTaskList(ctx context.Context, list *models.TaskList) error

	// AddUpdateNode queues the update action of node. The queue is flushed
	// automatically once it grows past the configured batch size.
	AddUpdateNode(ctx context.Context, node models.Node) error

	// MoveTask moves task from preParent to curParent. The task must
	// already sit in curParent at its final position.
	MoveTask(ctx context.Context, task *models.Task, preParent, curParent *models.TaskList) error

	// DeleteNode marks node deleted and sends the update at once.
	DeleteNode(ctx context.Context, node models.Node) error

	// CommitUpdate sends the queued update actions.
	CommitUpdate(ctx context.Context) error

	// ResetUpdateArray drops the queued update actions.
	ResetUpdateArray()

	// Execute sends actions as one batch and returns the results aligned
	// by action id.
	Execute(ctx context.Context, actions []models.Action) (models.BatchResponse, error)
}
