package testutil

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/junioryono/mockcoll/collection"
)

// ErrTest is a generic test error.
var ErrTest = errors.New("test error")

// Listener receives events from an EventBus.
type Listener interface {
	Notify(event string)
}

// MockListener is a testify mock of Listener.
type MockListener struct {
	mock.Mock
	ID string
}

// NewMockListener creates a MockListener that accepts any event.
func NewMockListener() *MockListener {
	m := &MockListener{ID: uuid.NewString()}
	m.On("Notify", mock.Anything).Return()
	return m
}

func (m *MockListener) Notify(event string) {
	m.Called(event)
}

// Sink stores events.
type Sink interface {
	Write(event string) error
}

// MockSink is a testify mock of Sink.
type MockSink struct {
	mock.Mock
}

func (m *MockSink) Write(event string) error {
	return m.Called(event).Error(0)
}

// RecordingListener records the events it receives, in order, into a shared
// journal.
type RecordingListener struct {
	Name    string
	Journal *Journal
}

func (l *RecordingListener) Notify(event string) {
	l.Journal.Record(l.Name + ":" + event)
}

// Journal is a concurrency safe event log.
type Journal struct {
	mu      sync.Mutex
	entries []string
}

func (j *Journal) Record(entry string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, entry)
}

func (j *Journal) Entries() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string(nil), j.entries...)
}

// EventBus is an object under test that fans events out to its listeners.
type EventBus struct {
	Listeners collection.Set[Listener]
	Ordered   []Listener
	Pending   collection.Queue[Listener]
	Sinks     []Sink

	internal []Listener
}

// Publish notifies every listener of the set, then every ordered listener.
func (b *EventBus) Publish(event string) {
	if b.Listeners != nil {
		for l := range b.Listeners.All() {
			l.Notify(event)
		}
	}
	for _, l := range b.Ordered {
		l.Notify(event)
	}
}

// Internal returns the unexported listeners, which are never injected.
func (b *EventBus) Internal() []Listener {
	return b.internal
}
