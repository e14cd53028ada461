package main

import "fmt"

const defaultStatusCapacity = 20

// StatusLog is an append-only bounded log of short descriptions of recent
// user actions. When full, the oldest entry is dropped. It also tracks the
// last key sequence and command id for the status strip. All access happens
// from Update, so no locking is needed.
type StatusLog struct {
	capacity    int
	entries     []string
	lastKeyseq  string
	lastCommand string
}

func NewStatusLog(capacity int) *StatusLog {
	if capacity <= 0 {
		capacity = defaultStatusCapacity
	}
	return &StatusLog{capacity: capacity}
}

func (l *StatusLog) Push(msg string) {
	if msg == "" {
		return
	}
	l.entries = append(l.entries, msg)
	if len(l.entries) > l.capacity {
		l.entries = l.entries[len(l.entries)-l.capacity:]
	}
}

func (l *StatusLog) Pushf(format string, args ...any) {
	l.Push(fmt.Sprintf(format, args...))
}

func (l *StatusLog) Len() int {
	return len(l.entries)
}

// Tail returns up to n of the most recent entries in insertion order
func (l *StatusLog) Tail(n int) []string {
	if n <= 0 || len(l.entries) == 0 {
		return nil
	}
	if n > len(l.entries) {
		n = len(l.entries)
	}
	out := make([]string, n)
	copy(out, l.entries[len(l.entries)-n:])
	return out
}

func (l *StatusLog) Last() string {
	if len(l.entries) == 0 {
		return ""
	}
	return l.entries[len(l.entries)-1]
}

func (l *StatusLog) SetLastKeyseq(keyseq string) {
	l.lastKeyseq = keyseq
}

func (l *StatusLog) LastKeyseq() string {
	return l.lastKeyseq
}

func (l *StatusLog) SetLastCommand(id string) {
	l.lastCommand = id
}

func (l *StatusLog) LastCommand() string {
	return l.lastCommand
}
