package main

import (
	"flag"
	"fmt"
	"sort"
	"strings"

	"github.com/geologgia/digging/internal/game"
)

type runStats struct {
	runIndex int
	seed     int64
	ticks    int

	firstCollectTick int
	firstPopTick     int
	firstHitTick     int
	firstLevelTick   int
	gameOverTick     int

	digs     int
	collects int
	inflates int
	deflates int
	pops     int
	hits     int
	levels   int

	poppedKinds map[string]struct{}
	summary     game.Summary
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var lives int
	var every int

	flag.IntVar(&runs, "runs", 5, "number of headless runs")
	flag.IntVar(&ticks, "ticks", 3600, "ticks per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.IntVar(&lives, "lives", 3, "starting lives")
	flag.IntVar(&every, "every", 8, "ticks between autopilot actions")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	if lives <= 0 {
		fmt.Println("error: -lives must be > 0")
		return
	}

	fmt.Printf("=== Headless Dig Report ===\n")
	fmt.Printf("runs=%d ticks=%d seed_base=%d seed_step=%d lives=%d every=%d\n\n", runs, ticks, seedBase, seedStep, lives, every)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		rs, err := runAutopilot(i+1, seed, ticks, lives, every)
		if err != nil {
			fmt.Printf("error: run %d: %v\n", i+1, err)
			return
		}
		all = append(all, rs)
		printRun(rs)
	}

	printAggregate(all)
}

func runAutopilot(runIndex int, seed int64, ticks, lives, every int) (runStats, error) {
	ts, err := game.NewTestSim(game.WithHarnessSeed(seed), game.WithLives(lives))
	if err != nil {
		return runStats{}, err
	}
	bot := game.NewAutopilot(every)
	for i := 0; i < ticks && !ts.Sim.State().GameOver; i++ {
		bot.Step(ts.Sim)
		ts.RunTicks(1)
	}
	return collectStats(runIndex, seed, ts.SimLog, ts.Sim.Summary()), nil
}

func collectStats(runIndex int, seed int64, log *game.SimLog, sum game.Summary) runStats {
	entries := log.Entries()
	popped := map[string]struct{}{}
	for _, e := range log.Filter("enemy", "explode") {
		kind, _, _ := strings.Cut(e.Value, " ")
		popped[kind] = struct{}{}
	}
	return runStats{
		runIndex:         runIndex,
		seed:             seed,
		ticks:            sum.Ticks,
		firstCollectTick: firstTick(entries, "collect", "", ""),
		firstPopTick:     firstTick(entries, "enemy", "explode", ""),
		firstHitTick:     firstTick(entries, "hit", "player", ""),
		firstLevelTick:   firstTick(entries, "level", "complete", ""),
		gameOverTick:     firstTick(entries, "state", "game_over", ""),
		digs:             log.CountCategory("dig", "tile"),
		collects:         log.CountCategory("collect", ""),
		inflates:         log.CountCategory("enemy", "inflate"),
		deflates:         log.CountCategory("enemy", "deflate"),
		pops:             log.CountCategory("enemy", "explode"),
		hits:             log.CountCategory("hit", "player"),
		levels:           log.CountCategory("level", "complete"),
		poppedKinds:      popped,
		summary:          sum,
	}
}

// firstTick finds the first entry matching category, key (empty matches any)
// and an optional value substring, or -1.
func firstTick(entries []game.SimLogEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || (key != "" && e.Key != key) {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("phase_markers: first_collect=%d first_pop=%d first_hit=%d first_level=%d game_over=%d\n",
		rs.firstCollectTick, rs.firstPopTick, rs.firstHitTick, rs.firstLevelTick, rs.gameOverTick)
	fmt.Printf("event_totals: dig=%d collect=%d inflate=%d deflate=%d pop=%d hit=%d level=%d\n",
		rs.digs, rs.collects, rs.inflates, rs.deflates, rs.pops, rs.hits, rs.levels)
	fmt.Printf("popped_kinds: %s\n", joinSet(rs.poppedKinds))
	fmt.Print(game.FormatSummary(rs.summary))
	fmt.Printf("grade    %s\n", game.ScoreLetter(rs.summary.Score))
	fmt.Println()
}

func printAggregate(all []runStats) {
	totalScore := 0
	totalLevel := 0
	totalCollects := 0
	totalPops := 0
	totalHits := 0
	totalTicks := 0
	gameOvers := 0

	collectTicks := make([]int, 0, len(all))
	popTicks := make([]int, 0, len(all))
	hitTicks := make([]int, 0, len(all))
	grades := map[string]int{}
	poppedGlobal := map[string]struct{}{}

	best := -1
	for i, rs := range all {
		totalScore += rs.summary.Score
		totalLevel += rs.summary.Level
		totalCollects += rs.collects
		totalPops += rs.pops
		totalHits += rs.hits
		totalTicks += rs.ticks
		if rs.gameOverTick >= 0 {
			gameOvers++
		}
		if rs.firstCollectTick >= 0 {
			collectTicks = append(collectTicks, rs.firstCollectTick)
		}
		if rs.firstPopTick >= 0 {
			popTicks = append(popTicks, rs.firstPopTick)
		}
		if rs.firstHitTick >= 0 {
			hitTicks = append(hitTicks, rs.firstHitTick)
		}
		grades[game.ScoreLetter(rs.summary.Score)]++
		for k := range rs.poppedKinds {
			poppedGlobal[k] = struct{}{}
		}
		if best < 0 || rs.summary.Score > all[best].summary.Score {
			best = i
		}
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d game_overs=%d\n", len(all), gameOvers)
	fmt.Printf("avg_per_run: score=%.1f level=%.1f collect=%.1f pop=%.1f hit=%.1f ticks=%.1f\n",
		avg(totalScore, len(all)), avg(totalLevel, len(all)), avg(totalCollects, len(all)),
		avg(totalPops, len(all)), avg(totalHits, len(all)), avg(totalTicks, len(all)))
	fmt.Printf("phase_marker_avg_ticks: first_collect=%s first_pop=%s first_hit=%s\n",
		avgTickString(collectTicks), avgTickString(popTicks), avgTickString(hitTicks))
	fmt.Printf("grades: %s\n", gradeLine(grades))
	fmt.Printf("popped_kinds=%s\n", joinSet(poppedGlobal))
	if best >= 0 {
		fmt.Printf("best_run=%d seed=%d score=%d\n", all[best].runIndex, all[best].seed, all[best].summary.Score)
	}
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

// gradeLine prints grade counts best first.
func gradeLine(counts map[string]int) string {
	if len(counts) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(counts))
	for _, g := range []string{"S", "A", "B", "C", "D"} {
		if n := counts[g]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", g, n))
		}
	}
	return strings.Join(parts, " ")
}

func joinSet(s map[string]struct{}) string {
	if len(s) == 0 {
		return "none"
	}
	labels := make([]string, 0, len(s))
	for k := range s {
		labels = append(labels, k)
	}
	sort.Strings(labels)
	return strings.Join(labels, ",")
}
