// Package ramlog is a fixed-capacity, in-RAM circular event log for
// firmware without a console or file system. Entries live in a flat
// array inside the Store so an attached debugger can walk the structure
// (head, count, entries) without calling into the running program.
//
// The append path does not allocate, take locks, or block. The store
// provides no mutual exclusion: callers logging from more than one
// execution context must serialize access themselves.
package ramlog

import "bytes"

// MsgLen is the message capacity in bytes, including the NUL terminator.
const MsgLen = 48

// Entries is the slot count of a Store. Memory footprint is
// Entries * (4 + 2 + MsgLen) bytes plus the two cursor fields.
const Entries = 128

// Level classifies an entry. Values are stable and part of the layout
// contract consumed by debugger tooling.
type Level uint16

const (
	Info  Level = 0
	Warn  Level = 1
	Fault Level = 2
)

// String returns the display name for a level.
func (l Level) String() string {
	switch l {
	case Info:
		return "INFO"
	case Warn:
		return "WARN"
	case Fault:
		return "FAULT"
	default:
		return "UNKNOWN"
	}
}

// TickFunc supplies timestamps for appended entries. The store treats
// the value as an opaque tick counter in caller-defined units; it is
// monotonic only insofar as the supplier is.
type TickFunc func() uint32

// Entry is one recorded event. Msg always holds NUL-terminated text;
// renderings longer than MsgLen-1 bytes are truncated.
type Entry struct {
	Timestamp uint32
	Level     Level
	Msg       [MsgLen]byte
}

// Message returns the rendered text, up to the first NUL.
func (e *Entry) Message() string {
	if e == nil {
		return ""
	}
	i := bytes.IndexByte(e.Msg[:], 0)
	if i < 0 {
		i = len(e.Msg)
	}
	return string(e.Msg[:i])
}
