package main

import (
	"flag"
	"fmt"
	"sort"
	"strings"

	"github.com/Garsondee/sticky-orbit/internal/sim"
)

type runStats struct {
	runIndex int
	seed     int64
	report   sim.RunReport

	firstLeapTick    int
	firstComboTick   int
	firstBossTick    int
	firstConsumeTick int

	comboResets int
	blackHoles  int
	planets     int

	trace string // verbose log, empty unless -verbose
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var modeName string
	var verbose bool

	flag.IntVar(&runs, "runs", 5, "number of headless autopilot runs")
	flag.IntVar(&ticks, "ticks", 36000, "tick limit per run (60 ticks = 1s)")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&modeName, "mode", "classic", "game mode: classic or survival")
	flag.BoolVar(&verbose, "verbose", false, "print the simulation log of every run")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	mode, err := sim.ParseMode(modeName)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	fmt.Printf("=== Headless Orbit Report ===\n")
	fmt.Printf("mode=%s runs=%d ticks=%d seed_base=%d seed_step=%d\n\n", mode, runs, ticks, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runAutopilot(i+1, seed, ticks, mode, verbose)
		all = append(all, stats)
		printRun(stats)
	}

	printAggregate(all)
}

// runAutopilot plays one run with the bot until it ends or hits the tick limit.
func runAutopilot(runIndex int, seed int64, ticks int, mode sim.Mode, verbose bool) runStats {
	ts := sim.NewTestSim(
		sim.WithSeed(seed),
		sim.WithMode(mode),
		sim.WithAutopilot(),
		sim.WithVerbose(verbose),
	)
	ts.RunTicks(ticks)

	entries := ts.SimLog.Entries()
	rs := runStats{
		runIndex:         runIndex,
		seed:             seed,
		report:           ts.Report(),
		firstLeapTick:    firstTick(entries, "player", "leap"),
		firstComboTick:   firstTick(entries, "score", "combo"),
		firstBossTick:    firstTick(entries, "gen", "boss"),
		firstConsumeTick: firstTick(entries, "hazard", "consume"),
		comboResets:      ts.SimLog.CountCategory("score", "combo_reset"),
		blackHoles:       ts.SimLog.CountCategory("gen", "black_hole"),
		planets:          ts.State.PlanetsGenerated(),
	}
	if verbose {
		rs.trace = ts.SimLog.Format()
	}
	return rs
}

func firstTick(entries []sim.SimLogEntry, category, key string) int {
	for _, e := range entries {
		if e.Category == category && e.Key == key {
			return e.Tick
		}
	}
	return -1
}

func printRun(rs runStats) {
	r := rs.report
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Print(r.String())
	fmt.Printf("phase_markers: first_leap=%d first_combo=%d first_boss=%d first_consume=%d\n",
		rs.firstLeapTick, rs.firstComboTick, rs.firstBossTick, rs.firstConsumeTick)
	fmt.Printf("world: planets_generated=%d black_holes=%d combo_resets=%d\n",
		rs.planets, rs.blackHoles, rs.comboResets)
	if rs.trace != "" {
		fmt.Println(rs.trace)
	}
	fmt.Println()
}

// aggregate holds the cross-run totals printed at the end.
type aggregate struct {
	runs       int
	finished   int
	totalScore int
	totalLeaps int
	totalTicks int
	bestScore  int
	bestRun    int
	maxCombo   int
	pickups    int
	smashes    int
	bashes     int
	consumed   int
	bosses     int
	causes     map[sim.DeathCause]int
	bossTicks  []int
}

func summarize(all []runStats) aggregate {
	ag := aggregate{runs: len(all), causes: map[sim.DeathCause]int{}}
	for _, rs := range all {
		r := rs.report
		ag.totalScore += r.Score
		ag.totalLeaps += r.Leaps
		ag.totalTicks += r.Ticks
		if r.Score > ag.bestScore || ag.bestRun == 0 {
			ag.bestScore = r.Score
			ag.bestRun = rs.runIndex
		}
		if r.MaxCombo > ag.maxCombo {
			ag.maxCombo = r.MaxCombo
		}
		ag.pickups += r.Pickups
		ag.smashes += r.Smashes
		ag.bashes += r.Bashes
		ag.consumed += r.Consumed
		ag.bosses += r.Bosses
		if !r.Active {
			ag.finished++
			ag.causes[r.Cause]++
		}
		if rs.firstBossTick >= 0 {
			ag.bossTicks = append(ag.bossTicks, rs.firstBossTick)
		}
	}
	return ag
}

func printAggregate(all []runStats) {
	ag := summarize(all)
	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d finished=%d still_alive=%d\n", ag.runs, ag.finished, ag.runs-ag.finished)
	fmt.Printf("avg_per_run: score=%.1fm leaps=%.1f seconds=%.1f\n",
		avg(ag.totalScore, ag.runs), avg(ag.totalLeaps, ag.runs), avg(ag.totalTicks, ag.runs)/60)
	fmt.Printf("best: score=%dm run=%d max_combo=x%d\n", ag.bestScore, ag.bestRun, ag.maxCombo)
	fmt.Printf("totals: pickups=%d smashes=%d bashes=%d consumed=%d bosses=%d\n",
		ag.pickups, ag.smashes, ag.bashes, ag.consumed, ag.bosses)
	fmt.Printf("first_boss_avg_tick=%s\n", avgTickString(ag.bossTicks))
	fmt.Printf("causes: %s\n", formatCauses(ag.causes))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

// formatCauses renders the death-cause histogram, most common first.
func formatCauses(counts map[sim.DeathCause]int) string {
	if len(counts) == 0 {
		return "none"
	}
	causes := make([]sim.DeathCause, 0, len(counts))
	for c := range counts {
		causes = append(causes, c)
	}
	sort.Slice(causes, func(i, j int) bool {
		if counts[causes[i]] != counts[causes[j]] {
			return counts[causes[i]] > counts[causes[j]]
		}
		return causes[i] < causes[j]
	})
	parts := make([]string, len(causes))
	for i, c := range causes {
		parts[i] = fmt.Sprintf("%s=%d", c, counts[c])
	}
	return strings.Join(parts, " ")
}
