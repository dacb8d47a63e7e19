package sim

import (
	"fmt"
	"strings"
)

// SimLogEntry is one recorded trace event during a run.
type SimLogEntry struct {
	Tick     int
	Category string  // player, score, hazard, gen, run
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=00042] player   capture          planet 7 orbit=65
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%05d] %-8s %-16s %s", e.Tick, e.Category, e.Key, e.Value)
}

// SimLog collects structured trace entries. Unlike the on-screen flight
// log it is unbounded and machine-readable.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. If verbose is true, per-tick position
// entries are also recorded.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Add records a new entry.
func (sl *SimLog) Add(tick int, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Tick:     tick,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(tick int, category, key, value string, numVal float64) {
	if !sl.verbose {
		return
	}
	sl.Add(tick, category, key, value, numVal)
}

// Verbose reports whether per-tick entries are recorded.
func (sl *SimLog) Verbose() bool {
	return sl.verbose
}

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// matches reports whether e has the given category and key. An empty
// argument matches anything.
func (e SimLogEntry) matches(category, key string) bool {
	return (category == "" || e.Category == category) && (key == "" || e.Key == key)
}

// Filter returns entries matching category and key ("" matches any).
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.matches(category, key) {
			out = append(out, e)
		}
	}
	return out
}

// FilterTickRange returns entries within [fromTick, toTick] inclusive.
func (sl *SimLog) FilterTickRange(fromTick, toTick int) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Tick >= fromTick && e.Tick <= toTick {
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

// HasEntry reports whether an entry matches category and key and carries
// valueSubstr in its detail.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.entries {
		if e.matches(category, key) && strings.Contains(e.Value, valueSubstr) {
			return true
		}
	}
	return false
}

func formatEntries(entries []SimLogEntry) string {
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Format renders the whole log, one entry per line.
func (sl *SimLog) Format() string {
	return formatEntries(sl.entries)
}

// FormatRange renders the entries within [fromTick, toTick].
func (sl *SimLog) FormatRange(fromTick, toTick int) string {
	return formatEntries(sl.FilterTickRange(fromTick, toTick))
}

// Summary returns a short human-readable summary of the run state.
func (sl *SimLog) Summary(s *State) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%05d ---\n", s.Tick)
	fmt.Fprintf(&sb, "mode=%s active=%v cause=%s\n", s.Mode, s.Active, s.Cause)
	fmt.Fprintf(&sb, "score=%d (altitude=%d bonus=%d) leaps=%d combo=%d max_combo=%d\n",
		s.Score(), s.Altitude, s.Bonus, s.Leaps, s.Combo, s.MaxCombo)
	fmt.Fprintf(&sb, "player %s at (%.0f,%.0f)", s.Player.State, s.Player.X, s.Player.Y)
	if s.Player.Current != nil {
		fmt.Fprintf(&sb, " around planet %d", s.Player.Current.ID)
	}
	sb.WriteByte('\n')
	fmt.Fprintf(&sb, "planets=%d asteroids=%d falling=%d pickups=%d black_holes=%d\n",
		len(s.Planets), len(s.Asteroids), len(s.Falling), len(s.Collectibles), len(s.BlackHoles))
	fmt.Fprintf(&sb, "captures=%d leaps=%d consumed=%d\n",
		sl.CountCategory("player", "capture"), sl.CountCategory("player", "leap"), sl.CountCategory("hazard", "consume"))
	return sb.String()
}
