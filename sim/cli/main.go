package main

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"sort"

	game "laneglide-server/src"

	"github.com/spf13/cobra"
)

// Command-line flags.
var (
	ticks      int
	seed       int64
	minDt      float64
	maxDt      float64
	autoDodge  bool
	autoRetry  bool
	reportEach int
)

var rootCmd = &cobra.Command{
	Use:   "laneglide-sim",
	Short: "Headless soak runner for the lane-runner world",
	Long: `Runs the game world without a client for a configurable number of ticks,
driving it with random frame times and an optional dodging autopilot, and
verifies the track ring and obstacle cleanup invariants on every tick.`,
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(run())
	},
}

func run() int {
	rng := rand.New(rand.NewSource(seed))
	w := game.NewWorld(rng)
	tap(w) // READY -> PLAYING

	var (
		violations int
		games      int
		best       float64
	)

	for i := 0; i < ticks; i++ {
		if autoDodge {
			dodge(w)
		}
		dt := minDt + rng.Float64()*(maxDt-minDt)
		w.Step(dt)

		if err := checkInvariants(w); err != nil {
			violations++
			fmt.Printf("tick %d: INVARIANT VIOLATION: %v\n", i, err)
		}

		if w.State == game.StateGameOver {
			games++
			if w.Score > best {
				best = w.Score
			}
			if !autoRetry {
				break
			}
			tap(w)
		}

		if reportEach > 0 && i%reportEach == 0 {
			fmt.Printf("tick %d: state=%s score=%.1f speed=%.2f obstacles=%d\n",
				i, w.State, w.Score, w.ForwardSpeed, len(w.Obstacles))
		}
	}

	if w.Score > best {
		best = w.Score
	}
	fmt.Printf("done: ticks=%d games=%d best=%.1f high=%.1f violations=%d\n",
		ticks, games, best, w.HighScore, violations)
	if violations > 0 {
		return 1
	}
	return 0
}

// tap simulates a sub-threshold press/release, the start trigger.
func tap(w *game.World) {
	w.PointerPress(100)
	w.PointerRelease()
}

// dodge swipes away from the nearest obstacle ahead in the player's lane.
func dodge(w *game.World) {
	const lookAhead = 6.0
	threat := false
	for _, o := range w.Obstacles {
		if o.Lane == w.TargetLane && o.Z < w.Player.Z && o.Z > w.Player.Z-lookAhead {
			threat = true
			break
		}
	}
	if !threat {
		return
	}
	dir := 120.0 // swipe right
	if w.TargetLane == game.LaneCount-1 {
		dir = -120.0
	}
	w.PointerPress(200)
	w.PointerMove(200 + dir)
	w.PointerRelease()
}

// checkInvariants verifies the ring spacing and cleanup laws.
func checkInvariants(w *game.World) error {
	zs := make([]float64, 0, game.SegmentCount)
	for _, s := range w.Segments {
		zs = append(zs, s.Z)
	}
	sort.Float64s(zs)
	for i := 1; i < len(zs); i++ {
		if math.Abs((zs[i]-zs[i-1])-game.SegmentLength) > 1e-6 {
			return fmt.Errorf("segment gap %f between ring slots", zs[i]-zs[i-1])
		}
	}
	for _, o := range w.Obstacles {
		if o.Z > game.CameraZ+game.ObstacleCullMargin {
			return fmt.Errorf("obstacle %d survived past the cull margin at z=%f", o.ID, o.Z)
		}
	}
	return nil
}

func init() {
	rootCmd.Flags().IntVar(&ticks, "ticks", 10000, "number of simulation ticks to run")
	rootCmd.Flags().Int64Var(&seed, "seed", 1, "RNG seed for deterministic runs")
	rootCmd.Flags().Float64Var(&minDt, "min-dt", 0.0, "minimum per-tick delta time (seconds)")
	rootCmd.Flags().Float64Var(&maxDt, "max-dt", 0.05, "maximum per-tick delta time (seconds)")
	rootCmd.Flags().BoolVar(&autoDodge, "dodge", true, "autopilot swipes away from obstacles")
	rootCmd.Flags().BoolVar(&autoRetry, "retry", true, "restart automatically after game over")
	rootCmd.Flags().IntVar(&reportEach, "report-every", 0, "print a progress line every N ticks (0 = off)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
