package store

import "sync"

// ChangeOp is the kind of write a [ChangeEvent] reports.
type ChangeOp int

const (
	ChangeInsert ChangeOp = iota
	ChangeUpdate
	ChangeDelete
)

func (op ChangeOp) String() string {
	switch op {
	case ChangeInsert:
		return "insert"
	case ChangeUpdate:
		return "update"
	case ChangeDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// ChangeEvent reports a committed write against one collection.
type ChangeEvent struct {
	Entity EntityKind
	Op     ChangeOp
	IDs    []int64
}

const subscriberBuffer = 64

// ChangeNotifier fans committed writes out to observers. The note and the
// data collections have separate subscriber sets.
//
// Publishing never blocks: an event for a subscriber whose buffer is full is
// dropped for that subscriber only.
type ChangeNotifier struct {
	mu     sync.RWMutex
	nextID int
	subs   map[EntityKind]map[int]chan ChangeEvent
}

// NewChangeNotifier returns a notifier without subscribers.
func NewChangeNotifier() *ChangeNotifier {
	return &ChangeNotifier{
		subs: map[EntityKind]map[int]chan ChangeEvent{
			EntityNote: {},
			EntityData: {},
		},
	}
}

// Subscribe registers an observer of one collection. The returned function
// removes the subscription and closes the channel.
func (n *ChangeNotifier) Subscribe(entity EntityKind) (<-chan ChangeEvent, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	ch := make(chan ChangeEvent, subscriberBuffer)
	if n.subs[entity] == nil {
		n.subs[entity] = map[int]chan ChangeEvent{}
	}
	n.subs[entity][id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			n.mu.Lock()
			defer n.mu.Unlock()
			delete(n.subs[entity], id)
			close(ch)
		})
	}
}

// Publish delivers event to the observers of its collection.
func (n *ChangeNotifier) Publish(event ChangeEvent) {
	if n == nil || len(event.IDs) == 0 {
		return
	}

	n.mu.RLock()
	defer n.mu.RUnlock()

	for _, ch := range n.subs[event.Entity] {
		select {
		case ch <- event:
		default:
		}
	}
}
