package xp

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// MaxHistory caps the award log; the oldest entries are evicted first.
const MaxHistory = 10

type Category string

const (
	CategoryFocus      Category = "focus"
	CategoryTask       Category = "task"
	CategoryCompletion Category = "completion"
	CategoryTest       Category = "test"
	CategoryGeneric    Category = "generic"
)

type Entry struct {
	ID          string
	Description string
	Amount      int
	Category    Category
	At          time.Time
}

type classifyRule struct {
	prefix   string
	exact    bool
	category Category
}

// Classification is cosmetic (icon selection only); sources are free text
// and the prefix match is first-rule-wins.
var classifyRules = []classifyRule{
	{prefix: "Pomodoro", category: CategoryFocus},
	{prefix: "Task:", category: CategoryTask},
	{prefix: "Complete:", category: CategoryCompletion},
	{prefix: "Test XP", exact: true, category: CategoryTest},
}

func Classify(source string) Category {
	for _, rule := range classifyRules {
		if rule.exact {
			if source == rule.prefix {
				return rule.category
			}
			continue
		}
		if strings.HasPrefix(source, rule.prefix) {
			return rule.category
		}
	}
	return CategoryGeneric
}

// Log is a bounded, newest-first record of XP awards.
type Log struct {
	entries []Entry
	nextID  int
	now     func() time.Time
}

func NewLog() *Log {
	return &Log{now: time.Now}
}

// SetNowFunc overrides the log clock. Passing nil resets it to time.Now.
func (l *Log) SetNowFunc(now func() time.Time) {
	if now == nil {
		l.now = time.Now
		return
	}
	l.now = now
}

// Record prepends an entry for the award and trims the log to MaxHistory.
func (l *Log) Record(source string, amount float64) Entry {
	l.nextID++
	entry := Entry{
		ID:          fmt.Sprintf("xp-%d", l.nextID),
		Description: source,
		Amount:      int(math.Round(amount)),
		Category:    Classify(source),
		At:          l.now().UTC(),
	}
	l.entries = append([]Entry{entry}, l.entries...)
	if len(l.entries) > MaxHistory {
		l.entries = l.entries[:MaxHistory]
	}
	return entry
}

// Entries returns the log newest-first. The slice is a copy.
func (l *Log) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Restore seeds the log from persisted entries (given newest-first) and
// resumes id generation past the highest restored id.
func (l *Log) Restore(entries []Entry) {
	if len(entries) > MaxHistory {
		entries = entries[:MaxHistory]
	}
	l.entries = make([]Entry, len(entries))
	copy(l.entries, entries)
	for _, e := range l.entries {
		var n int
		if _, err := fmt.Sscanf(e.ID, "xp-%d", &n); err == nil && n > l.nextID {
			l.nextID = n
		}
	}
}
