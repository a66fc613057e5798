package ui

import (
	"github.com/emirpasic/gods/maps/treemap"
)

// tabKey orders the tab registry: explicit order first, then the sequence
// in which ids were registered.
type tabKey struct {
	order int
	seq   uint64
}

func tabKeyComparator(aArg, bArg any) int {
	a := aArg.(tabKey)
	b := bArg.(tabKey)
	switch {
	case a.order < b.order:
		return -1
	case a.order > b.order:
		return 1
	case a.seq < b.seq:
		return -1
	case a.seq > b.seq:
		return 1
	}
	return 0
}

// FocusManager tracks the single focused component id and the tab order.
//
// Focus transitions are not delivered directly: RequestFocus and Blur queue
// FocusLost/FocusGained events which the router drains after each dispatch
// and delivers by id. The loss of the old id is always queued before the
// gain of the new one.
type FocusManager struct {
	focused  string
	registry *treemap.Map     // tabKey -> id
	keys     map[string]tabKey // id -> current key, for last-wins registration
	seq      uint64
	outbox   []Event
}

// NewFocusManager creates a manager with nothing focused.
func NewFocusManager() *FocusManager {
	return &FocusManager{
		registry: treemap.NewWith(tabKeyComparator),
		keys:     make(map[string]tabKey),
	}
}

// Focused returns the focused id, or "" when nothing is focused.
func (f *FocusManager) Focused() string {
	return f.focused
}

// IsFocused reports whether id currently holds focus.
func (f *FocusManager) IsFocused(id string) bool {
	return id != "" && f.focused == id
}

// RequestFocus moves focus to id. Requesting the focused id, or an empty id,
// does nothing.
func (f *FocusManager) RequestFocus(id string) {
	if id == "" || id == f.focused {
		return
	}
	old := f.focused
	if old != "" {
		f.outbox = append(f.outbox, Event{Kind: EventFocusLost, ID: old})
	}
	f.outbox = append(f.outbox, Event{Kind: EventFocusGained, ID: id})
	f.focused = id
	Logger().Debug("focus changed", "from", old, "to", id)
}

// Blur clears focus, notifying the component that had it.
func (f *FocusManager) Blur() {
	if f.focused == "" {
		return
	}
	f.outbox = append(f.outbox, Event{Kind: EventFocusLost, ID: f.focused})
	Logger().Debug("focus cleared", "from", f.focused)
	f.focused = ""
}

// Register adds id to the tab registry. Registering an id again replaces its
// previous entry, so the last registration in a frame wins.
func (f *FocusManager) Register(id string, order int) {
	if id == "" {
		return
	}
	if old, ok := f.keys[id]; ok {
		f.registry.Remove(old)
	}
	f.seq++
	k := tabKey{order: order, seq: f.seq}
	f.keys[id] = k
	f.registry.Put(k, id)
}

// Unregister removes id from the tab registry. Unknown ids are ignored.
func (f *FocusManager) Unregister(id string) {
	if k, ok := f.keys[id]; ok {
		f.registry.Remove(k)
		delete(f.keys, id)
	}
}

// ClearRegistry empties the tab registry. Focus itself is kept.
func (f *FocusManager) ClearRegistry() {
	f.registry.Clear()
	clear(f.keys)
	f.seq = 0
}

// Registered returns the registered ids in tab order.
func (f *FocusManager) Registered() []string {
	vals := f.registry.Values()
	ids := make([]string, len(vals))
	for i, v := range vals {
		ids[i] = v.(string)
	}
	return ids
}

// FocusNext moves focus to the next registered id, wrapping at the end.
// With nothing focused (or a focused id that is not registered) it focuses
// the first entry.
func (f *FocusManager) FocusNext() {
	f.cycle(1)
}

// FocusPrevious moves focus to the previous registered id, wrapping at the
// start. With nothing focused it focuses the last entry.
func (f *FocusManager) FocusPrevious() {
	f.cycle(-1)
}

func (f *FocusManager) cycle(dir int) {
	ids := f.Registered()
	n := len(ids)
	if n == 0 {
		return
	}
	cur := -1
	for i, id := range ids {
		if id == f.focused {
			cur = i
			break
		}
	}
	var next int
	switch {
	case cur < 0 && dir > 0:
		next = 0
	case cur < 0:
		next = n - 1
	default:
		next = ((cur+dir)%n + n) % n
	}
	f.RequestFocus(ids[next])
}

// HasPending reports whether focus events are waiting to be delivered.
func (f *FocusManager) HasPending() bool {
	return len(f.outbox) > 0
}

// DrainEvents returns queued focus events in emission order and clears them.
func (f *FocusManager) DrainEvents() []Event {
	if len(f.outbox) == 0 {
		return nil
	}
	out := f.outbox
	f.outbox = nil
	return out
}

// Reset clears focus, the registry and any undelivered events.
func (f *FocusManager) Reset() {
	f.focused = ""
	f.outbox = nil
	f.ClearRegistry()
}
