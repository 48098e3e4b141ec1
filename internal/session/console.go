package session

import (
	"strings"
	"sync"
	"time"
)

// ConsoleEntry is one captured console message or thrown page exception.
type ConsoleEntry struct {
	Level string
	Text  string
	When  time.Time
}

// ConsoleLog collects console output from the live page. Event listeners
// append from their own goroutines, so access is mutex-guarded.
type ConsoleLog struct {
	mu      sync.Mutex
	entries []ConsoleEntry
}

func (l *ConsoleLog) Add(e ConsoleEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, e)
}

// Entries returns a copy of all captured entries in arrival order.
func (l *ConsoleLog) Entries() []ConsoleEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]ConsoleEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Filter returns entries matching the given level ("" or "all" matches
// everything) and case-insensitive substring search, keeping only the last
// limit entries when limit > 0.
func (l *ConsoleLog) Filter(level, search string, limit int) []ConsoleEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	level = strings.ToLower(strings.TrimSpace(level))
	search = strings.ToLower(search)

	var out []ConsoleEntry
	for _, e := range l.entries {
		if level != "" && level != "all" && strings.ToLower(e.Level) != level {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(e.Text), search) {
			continue
		}
		out = append(out, e)
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}

func (l *ConsoleLog) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func (l *ConsoleLog) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}
