// Package activity records what the pipeline did, most recent first.
package activity

import (
	"sync"
	"time"

	"solana-token-scope/internal/observability"
)

// Status values used by the pipeline.
const (
	StatusPending = "正在获取..."
	StatusSuccess = "成功"
	StatusFailed  = "失败"
	StatusError   = "错误"
)

// Entry is one activity log line.
type Entry struct {
	Seq        uint64    `json:"seq"`
	Time       time.Time `json:"time"`
	Generation uint64    `json:"generation"`
	Operation  string    `json:"operation"`
	Status     string    `json:"status"`
	Link       string    `json:"link,omitempty"`
}

// TokenLink is the explorer page of a token.
func TokenLink(mint string) string { return "https://gmgn.ai/sol/token/" + mint }

// AddressLink is the explorer page of a wallet.
func AddressLink(address string) string { return "https://gmgn.ai/sol/address/" + address }

// ChainFMLink is the transaction provider's home page.
const ChainFMLink = "https://chain.fm"

// Log is an append-only activity log. Entries are ordered by insertion,
// never by timestamp. Safe for concurrent use.
type Log struct {
	mu      sync.RWMutex
	entries []Entry // oldest first; readers reverse
	seq     uint64
	now     func() time.Time
	subs    map[chan Entry]struct{}
}

// New creates an empty log. A nil now uses time.Now.
func New(now func() time.Time) *Log {
	if now == nil {
		now = time.Now
	}
	return &Log{now: now, subs: make(map[chan Entry]struct{})}
}

// Append stamps e with a sequence number and, when unset, the current time,
// then inserts it at the head and notifies subscribers.
// Subscribers that are not keeping up miss entries rather than block the writer.
func (l *Log) Append(e Entry) Entry {
	l.mu.Lock()
	l.seq++
	e.Seq = l.seq
	if e.Time.IsZero() {
		e.Time = l.now()
	}
	l.entries = append(l.entries, e)
	for ch := range l.subs {
		select {
		case ch <- e:
		default:
		}
	}
	l.mu.Unlock()

	observability.RecordActivityEntry()
	return e
}

// Add is Append for the common fields.
func (l *Log) Add(generation uint64, operation, status, link string) Entry {
	return l.Append(Entry{Generation: generation, Operation: operation, Status: status, Link: link})
}

// Entries returns a copy of all entries, most recent first.
func (l *Log) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Entry, len(l.entries))
	for i, e := range l.entries {
		out[len(l.entries)-1-i] = e
	}
	return out
}

// Len returns the number of entries.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Subscribe returns a channel receiving every subsequent entry and a cancel
// func that closes it.
func (l *Log) Subscribe(buffer int) (<-chan Entry, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan Entry, buffer)
	l.mu.Lock()
	l.subs[ch] = struct{}{}
	l.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.subs, ch)
			close(ch)
			l.mu.Unlock()
		})
	}
	return ch, cancel
}
