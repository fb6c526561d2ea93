package ramlog

// Once is a one-shot latch for EventOnce. Declare one per call site,
// typically next to the state the call site belongs to:
//
//	type motor struct {
//		log      *ramlog.Store
//		stallLog ramlog.Once
//	}
//
//	func (m *motor) tick() {
//		m.log.EventOnce(&m.stallLog, ramlog.Warn, "stall detected")
//	}
//
// The latch belongs to the call site, not the store: it stays set
// across Store.Init and even when the same site logs to a different
// store instance.
type Once struct {
	fired bool
}

// Fired reports whether the latch has been consumed.
func (o *Once) Fired() bool {
	return o != nil && o.fired
}

// EventOnce appends via Event the first time it is called with a given
// latch, then latches shut. Later calls do nothing at all, including
// no tick source read. The latch is consumed even when Event rejects
// the append (nil store, no tick source, empty format), matching the
// fire-once-per-code-path intent. A nil latch is a no-op.
func (s *Store) EventOnce(once *Once, level Level, format string, args ...any) {
	if once == nil || once.fired {
		return
	}
	s.Event(level, format, args...)
	once.fired = true
}
