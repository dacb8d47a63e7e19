package sim

import (
	"fmt"
	"strings"
)

// RunReport is the end-of-run (or so-far) summary of one run.
type RunReport struct {
	RunID     string
	Seed      int64
	Mode      Mode
	Ticks     int
	Score     int
	Altitude  int
	Bonus     int
	Leaps     int
	Captures  int
	MaxCombo  int
	Combos    int
	Pickups   int
	Smashes   int
	Bashes    int
	Consumed  int
	Bosses    int
	Cause     DeathCause
	NewBest   bool
	Active    bool
	ComboPts  int
	PickupPts int
}

// Reporter tallies events into a RunReport. Feed it every tick's events.
type Reporter struct {
	captures int
	combos   int
	comboPts int
	pickups  int
	smashes  int
	bashes   int
	consumed int
	bosses   int
	newBest  bool
}

// NewReporter creates an empty reporter.
func NewReporter() *Reporter {
	return &Reporter{}
}

// Collect tallies a batch of events.
func (r *Reporter) Collect(events []Event) {
	for _, e := range events {
		switch e.Kind {
		case EventCapture:
			r.captures++
		case EventCombo:
			r.combos++
			r.comboPts += int(e.Value)
		case EventPickup:
			r.pickups++
		case EventSmash:
			r.smashes++
		case EventBash:
			r.bashes++
		case EventConsume:
			r.consumed++
		case EventBoss:
			r.bosses++
		case EventDeath:
			r.newBest = e.NewBest
		}
	}
}

// Reset clears all counters for a new run.
func (r *Reporter) Reset() {
	*r = Reporter{}
}

// Report combines the tallies with the run's final state.
func (r *Reporter) Report(s *State) RunReport {
	return RunReport{
		RunID:     s.RunID,
		Seed:      s.Seed,
		Mode:      s.Mode,
		Ticks:     s.Tick,
		Score:     s.Score(),
		Altitude:  s.Altitude,
		Bonus:     s.Bonus,
		Leaps:     s.Leaps,
		Captures:  r.captures,
		MaxCombo:  s.MaxCombo,
		Combos:    r.combos,
		Pickups:   r.pickups,
		Smashes:   r.smashes,
		Bashes:    r.bashes,
		Consumed:  r.consumed,
		Bosses:    r.bosses,
		Cause:     s.Cause,
		NewBest:   r.newBest,
		Active:    s.Active,
		ComboPts:  r.comboPts,
		PickupPts: r.pickups * CollectiblePoints,
	}
}

// Seconds is the run length at 60 ticks per second.
func (rr RunReport) Seconds() float64 {
	return float64(rr.Ticks) / 60
}

// String renders the report as the multi-line text copied to the clipboard.
func (rr RunReport) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "--- Sticky Orbit run report ---\n")
	fmt.Fprintf(&b, "run=%s mode=%s seed=%d\n", rr.RunID, rr.Mode, rr.Seed)
	status := "ended: " + rr.Cause.String()
	if rr.Active {
		status = "in progress"
	}
	fmt.Fprintf(&b, "ticks=%d (%.1fs) %s\n", rr.Ticks, rr.Seconds(), status)
	fmt.Fprintf(&b, "score=%dm altitude=%dm bonus=%d", rr.Score, rr.Altitude, rr.Bonus)
	if rr.NewBest {
		b.WriteString(" NEW BEST")
	}
	b.WriteByte('\n')
	fmt.Fprintf(&b, "leaps=%d captures=%d combos=%d (+%d) max_combo=x%d\n",
		rr.Leaps, rr.Captures, rr.Combos, rr.ComboPts, rr.MaxCombo)
	fmt.Fprintf(&b, "pickups=%d (+%d) smashes=%d bashes=%d\n", rr.Pickups, rr.PickupPts, rr.Smashes, rr.Bashes)
	if rr.Mode == ModeSurvival || rr.Consumed > 0 {
		fmt.Fprintf(&b, "planets consumed=%d\n", rr.Consumed)
	}
	if rr.Bosses > 0 {
		fmt.Fprintf(&b, "solar flares=%d\n", rr.Bosses)
	}
	return b.String()
}
