package game

import (
	"fmt"
	"strings"
)

// SimLogEntry is one recorded event during a game.
type SimLogEntry struct {
	Tick     int
	Role     string  // "A", "E", or "--" for game-wide events
	Category string  // checkpoint, tunnel, capture, move, end
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] E    checkpoint visit            A (3,4)
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-4s %-10s %-16s %s",
		e.Tick, e.Role, e.Category, e.Key, e.Value)
}

// SimLog collects structured game events. It is unbounded and
// machine-readable; tests assert against it and the report binary prints it.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. If verbose is true, per-tick position entries
// are also recorded.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Verbose reports whether per-tick entries are kept.
func (sl *SimLog) Verbose() bool { return sl.verbose }

// Add records a new entry.
func (sl *SimLog) Add(tick int, role, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Tick:     tick,
		Role:     role,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(tick int, role, category, key, value string, numVal float64) {
	if !sl.verbose {
		return
	}
	sl.Add(tick, role, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// matches reports whether e has the given category and key; an empty
// argument matches anything.
func (e SimLogEntry) matches(category, key string) bool {
	return (category == "" || e.Category == category) && (key == "" || e.Key == key)
}

// Filter returns entries matching category and key, oldest first.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.matches(category, key) {
			out = append(out, e)
		}
	}
	return out
}

// FilterRole returns entries for one role label ("A", "E").
func (sl *SimLog) FilterRole(label string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Role == label {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory counts entries matching category and key.
func (sl *SimLog) CountCategory(category, key string) int {
	n := 0
	for _, e := range sl.entries {
		if e.matches(category, key) {
			n++
		}
	}
	return n
}

// LastOf returns the newest entry matching category and key.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	for i := len(sl.entries) - 1; i >= 0; i-- {
		if sl.entries[i].matches(category, key) {
			return sl.entries[i], true
		}
	}
	return SimLogEntry{}, false
}

// HasEntry reports whether some entry matches category and key and its
// value contains valueSubstr.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.entries {
		if e.matches(category, key) && strings.Contains(e.Value, valueSubstr) {
			return true
		}
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (sl *SimLog) Format() string {
	var sb strings.Builder
	for _, e := range sl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns a short human-readable summary of the game state.
func (sl *SimLog) Summary(p *Pursuit) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%03d ---\n", p.TickCount())
	fmt.Fprintf(&sb, "Agent %v  Enemy %v  distance=%d\n",
		p.Agent.Pos, p.Enemy.Pos, Manhattan(p.Agent.Pos, p.Enemy.Pos))
	fmt.Fprintf(&sb, "Steps: %d  good: %d\n", p.Steps(), p.GoodSteps())
	fmt.Fprintf(&sb, "Checkpoints: %s\n", p.CheckpointFlags())
	fmt.Fprintf(&sb, "Fog coverage: agent=%.0f%%  enemy=%.0f%%\n",
		p.Agent.Fog.Coverage()*100, p.Enemy.Fog.Coverage()*100)
	fmt.Fprintf(&sb, "Events: visits=%d teleports=%d blocked=%d bumps=%d\n",
		sl.CountCategory("checkpoint", "visit"),
		sl.CountCategory("tunnel", "teleport"),
		sl.CountCategory("capture", "blocked"),
		sl.CountCategory("move", "bump"))
	return sb.String()
}
