// Package state holds the widget's single source of truth. Every change goes
// through Store.Perform, which runs the modifiers on a copy of the current
// Data, stamps per-field versions and signals subscribers of changed fields.
package state

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
)

// Any subscribes to every field.
const Any = "any"

// ErrUnknownField is returned by Subscribe for a name that is not a Data field.
var ErrUnknownField = errors.New("unknown state field")

// State is a committed snapshot of the store.
type State struct {
	// Version increments on every commit that changed at least one field.
	Version uint64
	// FieldVersions holds the version each field is at.
	FieldVersions map[string]uint64
	Data          Data
}

// Signal notifies a subscriber that a field changed.
type Signal struct {
	// Version is the field's version, or the store version for Any.
	Version uint64
	// Fields lists the changed fields. It has a single entry unless Any was used.
	Fields []string
	State  State
}

// FieldChanged reports whether f is in s.Fields.
func (s Signal) FieldChanged(f string) bool {
	for _, field := range s.Fields {
		if field == f {
			return true
		}
	}
	return false
}

// CancelFunc ends a subscription and closes its channel.
type CancelFunc func()

// Middleware sees an action and the proposed data before commit. It returns
// the data to commit, or an error to drop the action.
type Middleware func(a Action, proposed Data, current State) (Data, error)

type subscriber struct {
	id int
	ch chan Signal
}

// Store serializes all state changes.
type Store struct {
	pmu    sync.Mutex
	state  atomic.Value
	mods   []Modifier
	middle []Middleware

	smu         sync.RWMutex
	subscribers map[string][]subscriber
	sid         int
}

// New returns a Store holding initial.
func New(initial Data, mods []Modifier, middle ...Middleware) *Store {
	s := &Store{
		mods:        mods,
		middle:      middle,
		subscribers: map[string][]subscriber{},
	}
	fv := make(map[string]uint64, len(fieldNames))
	for _, f := range fieldNames {
		fv[f] = 0
	}
	s.state.Store(State{FieldVersions: fv, Data: initial})
	return s
}

// NewWidgetStore returns a Store with the widget modifiers and an empty state.
func NewWidgetStore(middle ...Middleware) *Store {
	return New(Data{}, Modifiers, middle...)
}

// State returns the current committed state.
func (s *Store) State() State {
	return s.state.Load().(State)
}

// Perform applies a to the state. Actions are applied one at a time in call
// order, and subscribers are signalled before Perform returns.
func (s *Store) Perform(a Action) error {
	s.pmu.Lock()
	defer s.pmu.Unlock()

	cur := s.State()
	next := cur.Data
	for _, m := range s.mods {
		next = m(next, a)
	}

	var err error
	for _, mw := range s.middle {
		next, err = mw(a, next, cur)
		if err != nil {
			return fmt.Errorf("perform %s: %w", a.Type, err)
		}
	}

	changed := fieldsChanged(cur.Data, next)
	if len(changed) == 0 {
		return nil
	}

	fv := make(map[string]uint64, len(cur.FieldVersions))
	for k, v := range cur.FieldVersions {
		fv[k] = v
	}
	for _, f := range changed {
		fv[f]++
	}
	st := State{Version: cur.Version + 1, FieldVersions: fv, Data: next}
	s.state.Store(st)
	s.cast(st, changed)
	return nil
}

// Subscribe returns a channel signalled whenever field changes. Pass Any to
// hear about every change. The channel holds one pending signal; later
// signals are dropped while it is full, so readers should treat a signal as
// "something changed" and read the State it carries or the Store.
func (s *Store) Subscribe(field string) (<-chan Signal, CancelFunc, error) {
	if field != Any && !fieldExists(field) {
		return nil, nil, fmt.Errorf("subscribe %q: %w", field, ErrUnknownField)
	}

	ch := make(chan Signal, 1)

	s.smu.Lock()
	defer s.smu.Unlock()
	id := s.sid
	s.sid++
	s.subscribers[field] = append(s.subscribers[field], subscriber{id: id, ch: ch})

	var once sync.Once
	cancel := func() {
		once.Do(func() { s.unsubscribe(field, id) })
	}
	return ch, cancel, nil
}

func (s *Store) unsubscribe(field string, id int) {
	s.smu.Lock()
	defer s.smu.Unlock()

	v := s.subscribers[field]
	l := make([]subscriber, 0, len(v))
	for _, sub := range v {
		if sub.id == id {
			close(sub.ch)
			continue
		}
		l = append(l, sub)
	}
	if len(l) == 0 {
		delete(s.subscribers, field)
		return
	}
	s.subscribers[field] = l
}

func (s *Store) cast(st State, changed []string) {
	s.smu.RLock()
	defer s.smu.RUnlock()

	for _, field := range changed {
		for _, sub := range s.subscribers[field] {
			send(sub.ch, Signal{Version: st.FieldVersions[field], Fields: []string{field}, State: st})
		}
	}
	for _, sub := range s.subscribers[Any] {
		send(sub.ch, Signal{Version: st.Version, Fields: changed, State: st})
	}
}

func send(ch chan Signal, sig Signal) {
	select {
	case ch <- sig:
	default:
	}
}

var fieldNames = func() []string {
	t := reflect.TypeOf(Data{})
	names := make([]string, t.NumField())
	for i := range names {
		names[i] = t.Field(i).Name
	}
	return names
}()

func fieldExists(f string) bool {
	for _, n := range fieldNames {
		if n == f {
			return true
		}
	}
	return false
}

// fieldsChanged lists the Data fields that differ between a and z.
func fieldsChanged(a, z Data) []string {
	var r []string
	av := reflect.ValueOf(a)
	zv := reflect.ValueOf(z)
	for i, name := range fieldNames {
		if !reflect.DeepEqual(av.Field(i).Interface(), zv.Field(i).Interface()) {
			r = append(r, name)
		}
	}
	return r
}
