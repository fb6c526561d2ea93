package ramlog

import "fmt"

// Store is a circular log of Entries slots. The zero value is unusable
// until Init records a tick source; appends before that are dropped.
//
// Chronological order is not physical order once the buffer has
// wrapped: the oldest surviving entry sits at physical slot
// (head + Entries - count) % Entries.
type Store struct {
	head  uint16
	count uint16
	now   TickFunc
	buf   [Entries]Entry
}

// Init resets the store and records the tick source. A nil tick source
// is accepted but disables Event until Init is called again with one.
// Calling Init on a nil store does nothing.
func (s *Store) Init(now TickFunc) {
	if s == nil {
		return
	}
	s.head = 0
	s.count = 0
	s.now = now
	s.buf = [Entries]Entry{}
}

// Event appends one formatted entry, overwriting the oldest when the
// store is full. The call is a silent no-op when the store is nil, no
// tick source is set, or format is empty; a rejected call never reads
// the tick source. Renderings longer than MsgLen-1 bytes are truncated.
func (s *Store) Event(level Level, format string, args ...any) {
	if s == nil || s.now == nil || format == "" {
		return
	}

	e := &s.buf[s.head]
	e.Timestamp = s.now()
	e.Level = level

	var scratch [MsgLen]byte
	setMsg(&e.Msg, fmt.Appendf(scratch[:0], format, args...))

	s.head = (s.head + 1) % Entries
	if s.count < Entries {
		s.count++
	}
}

// Count returns the number of valid entries, 0 for a nil store.
func (s *Store) Count() uint16 {
	if s == nil {
		return 0
	}
	return s.count
}

// Head returns the next physical slot Event will write, 0 for a nil
// store. Exposed for capture tooling; readers use EntryAt.
func (s *Store) Head() uint16 {
	if s == nil {
		return 0
	}
	return s.head
}

// EntryAt returns the idx-th oldest entry, or nil when idx >= Count()
// or the store is nil. The returned entry is a borrowed view into the
// store and must be treated as read-only; it is overwritten once the
// buffer wraps back around to its slot.
func (s *Store) EntryAt(idx uint16) *Entry {
	if s == nil || idx >= s.count {
		return nil
	}
	phys := (s.head + Entries - s.count + idx) % Entries
	return &s.buf[phys]
}

// Buffer returns the entire backing array in physical slot order plus
// the valid-entry count, for bulk inspection. Slots beyond the count
// hold zeroed or stale data when the buffer has not wrapped;
// chronological reconstruction is the caller's responsibility. Returns
// nil, 0 for a nil store.
func (s *Store) Buffer() ([]Entry, uint16) {
	if s == nil {
		return nil, 0
	}
	return s.buf[:], s.count
}

// setMsg copies b into dst truncated to MsgLen-1 bytes and zeroes the
// remainder, so the slot always holds NUL-terminated text regardless
// of what it held before.
func setMsg(dst *[MsgLen]byte, b []byte) {
	n := copy(dst[:MsgLen-1], b)
	for i := n; i < MsgLen; i++ {
		dst[i] = 0
	}
}
