package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangeNotifier_RoutesByCollection(t *testing.T) {
	n := NewChangeNotifier()

	notes, cancelNotes := n.Subscribe(EntityNote)
	defer cancelNotes()
	data, cancelData := n.Subscribe(EntityData)
	defer cancelData()

	n.Publish(ChangeEvent{Entity: EntityData, Op: ChangeDelete, IDs: []int64{1}})

	assert.Empty(t, notes)
	require.Len(t, data, 1)
	assert.Equal(t, ChangeDelete, (<-data).Op)
}

func TestChangeNotifier_SkipsEmptyEvents(t *testing.T) {
	n := NewChangeNotifier()
	ch, cancel := n.Subscribe(EntityNote)
	defer cancel()

	n.Publish(ChangeEvent{Entity: EntityNote, Op: ChangeInsert})
	assert.Empty(t, ch)
}

func TestChangeNotifier_FullBufferDoesNotBlock(t *testing.T) {
	n := NewChangeNotifier()
	ch, cancel := n.Subscribe(EntityNote)
	defer cancel()

	for i := 0; i < subscriberBuffer+10; i++ {
		n.Publish(ChangeEvent{Entity: EntityNote, Op: ChangeUpdate, IDs: []int64{int64(i)}})
	}
	assert.Len(t, ch, subscriberBuffer)
}

func TestChangeNotifier_CancelClosesChannel(t *testing.T) {
	n := NewChangeNotifier()
	ch, cancel := n.Subscribe(EntityNote)

	cancel()
	cancel() // second call is a no-op

	_, ok := <-ch
	assert.False(t, ok)

	// publishing after unsubscribe must not panic
	n.Publish(ChangeEvent{Entity: EntityNote, Op: ChangeInsert, IDs: []int64{1}})
}

func TestChangeNotifier_NilIsSafe(t *testing.T) {
	var n *ChangeNotifier
	assert.NotPanics(t, func() {
		n.Publish(ChangeEvent{Entity: EntityNote, IDs: []int64{1}})
	})
}

func TestChangeOp_String(t *testing.T) {
	assert.Equal(t, "insert", ChangeInsert.String())
	assert.Equal(t, "update", ChangeUpdate.String())
	assert.Equal(t, "delete", ChangeDelete.String())
	assert.Equal(t, "unknown", ChangeOp(9).String())
}

func TestChangeNotifier_UnknownCollection(t *testing.T) {
	n := NewChangeNotifier()
	other := EntityData + 1

	// Act
	ch, cancel := n.Subscribe(other)
	n.Publish(ChangeEvent{Entity: other, Op: ChangeInsert, IDs: []int64{3}})

	// Assert
	require.Len(t, ch, 1)
	assert.Equal(t, []int64{3}, (<-ch).IDs)
	cancel()
}
