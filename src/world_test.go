package game

import (
	"math"
	"testing"
)

func TestNewWorldStartsReady(t *testing.T) {
	w := newTestWorld(1)
	if w.State != StateReady {
		t.Fatalf("new world state = %s, want READY", w.State)
	}
	if w.Score != 0 || w.Elapsed != 0 {
		t.Fatalf("new world carries score=%f elapsed=%f, want zero", w.Score, w.Elapsed)
	}
}

func TestScoreAccruesAtBaseRate(t *testing.T) {
	w := newTestWorld(2)
	startClean(w)

	// One simulated second in 10 ms ticks. The board is cleared up front and
	// recycle spawns land a full ring behind the player, so the run survives.
	for i := 0; i < 100; i++ {
		w.Step(0.01)
	}

	if w.State != StatePlaying {
		t.Fatalf("run ended early in state %s", w.State)
	}
	if math.Abs(w.Score-10.0) > 1e-6 {
		t.Fatalf("score after 1s = %f, want 10", w.Score)
	}
	if math.Abs(w.Elapsed-1.0) > 1e-6 {
		t.Fatalf("elapsed after 100 ticks = %f, want 1", w.Elapsed)
	}
}

func TestScoreMonotonicWhilePlaying(t *testing.T) {
	w := newTestWorld(3)
	startClean(w)

	prev := w.Score
	for i := 0; i < 500; i++ {
		w.Step(0.016)
		if w.State != StatePlaying {
			t.Fatalf("run ended early at tick %d", i)
		}
		if w.Score < prev {
			t.Fatalf("score decreased at tick %d: %f -> %f", i, prev, w.Score)
		}
		prev = w.Score
	}
}

func TestScoreFrozenAfterGameOver(t *testing.T) {
	w := newTestWorld(4)
	startClean(w)
	w.Step(0.05)

	w.Obstacles = append(w.Obstacles, Obstacle{
		ID: 1, Lane: CenterLane, X: w.Player.X, Z: w.Player.Z, Radius: ObstacleRadius,
	})
	w.Step(0.01)
	if w.State != StateGameOver {
		t.Fatalf("state after planted collision = %s, want GAME_OVER", w.State)
	}

	frozen := w.Score
	for i := 0; i < 50; i++ {
		w.Step(0.016)
	}
	if w.Score != frozen {
		t.Fatalf("score moved after game over: %f -> %f", frozen, w.Score)
	}
	if w.State != StateGameOver {
		t.Fatalf("idle ticks changed state to %s", w.State)
	}
}

func TestRestartResetsRunButKeepsHighScore(t *testing.T) {
	w := newTestWorld(5)
	startClean(w)
	for i := 0; i < 30; i++ {
		w.Step(0.016)
	}
	w.Obstacles = append(w.Obstacles, Obstacle{
		ID: 1, Lane: CenterLane, X: w.Player.X, Z: w.Player.Z, Radius: ObstacleRadius,
	})
	w.Step(0.01)
	if w.State != StateGameOver {
		t.Fatalf("state = %s, want GAME_OVER", w.State)
	}
	best := w.HighScore
	if best <= 0 {
		t.Fatalf("high score not committed on game over")
	}

	w.Start()
	if w.State != StatePlaying {
		t.Fatalf("restart left state %s", w.State)
	}
	if w.Score != 0 || w.Elapsed != 0 {
		t.Fatalf("restart carried score=%f elapsed=%f into new run", w.Score, w.Elapsed)
	}
	if w.HighScore != best {
		t.Fatalf("restart dropped high score: %f -> %f", best, w.HighScore)
	}
	if w.TargetLane != CenterLane {
		t.Fatalf("restart target lane = %d, want %d", w.TargetLane, CenterLane)
	}
}

func TestHighScoreOnlyImproves(t *testing.T) {
	w := newTestWorld(6)
	startClean(w)
	w.HighScore = 1000

	for i := 0; i < 10; i++ {
		w.Step(0.016)
	}
	w.Obstacles = append(w.Obstacles, Obstacle{
		ID: 1, Lane: CenterLane, X: w.Player.X, Z: w.Player.Z, Radius: ObstacleRadius,
	})
	w.Step(0.01)

	if w.State != StateGameOver {
		t.Fatalf("state = %s, want GAME_OVER", w.State)
	}
	if w.HighScore != 1000 {
		t.Fatalf("worse run overwrote high score: %f", w.HighScore)
	}
}

func TestStartWhilePlayingIsNoOp(t *testing.T) {
	w := newTestWorld(7)
	startClean(w)
	for i := 0; i < 20; i++ {
		w.Step(0.016)
	}
	score, elapsed, begun := w.Score, w.Elapsed, w.GamesBegun

	w.Start()

	if w.State != StatePlaying {
		t.Fatalf("state = %s, want PLAYING", w.State)
	}
	if w.Score != score || w.Elapsed != elapsed {
		t.Fatalf("start mid-run reset the run: score %f -> %f", score, w.Score)
	}
	if w.GamesBegun != begun {
		t.Fatalf("start mid-run counted a new game")
	}
}

func TestStepClampsLargeDeltaTimes(t *testing.T) {
	w := newTestWorld(8)
	startClean(w)

	// A backgrounded tab can hand the loop a multi-second gap; the world
	// advances at most MaxDeltaTime of it.
	w.Step(5.0)

	if math.Abs(w.Elapsed-MaxDeltaTime) > 1e-9 {
		t.Fatalf("elapsed after 5s stall = %f, want %f", w.Elapsed, MaxDeltaTime)
	}
	if math.Abs(w.Score-BaseScoreRate*MaxDeltaTime) > 1e-9 {
		t.Fatalf("score after 5s stall = %f, want %f", w.Score, BaseScoreRate*MaxDeltaTime)
	}
}

func TestStepIgnoresNonPositiveDeltaTimes(t *testing.T) {
	w := newTestWorld(9)
	startClean(w)
	w.Step(0)
	w.Step(-0.5)
	if w.Elapsed != 0 || w.Score != 0 {
		t.Fatalf("non-positive dt advanced the world: elapsed=%f score=%f", w.Elapsed, w.Score)
	}
}

func TestStepIdlesOutsideOfARun(t *testing.T) {
	w := newTestWorld(10)
	before := w.Segments
	w.Step(0.016)
	if w.State != StateReady {
		t.Fatalf("idle tick changed state to %s", w.State)
	}
	if w.Segments != before {
		t.Fatalf("idle tick moved the track in READY")
	}
}

func TestForwardSpeedRampFollowsElapsed(t *testing.T) {
	w := newTestWorld(11)
	startClean(w)
	for i := 0; i < 125; i++ {
		w.Step(0.016)
	}
	want := BaseForwardSpeed + SpeedRampPerSec*w.Elapsed
	if math.Abs(w.ForwardSpeed-want) > 1e-9 {
		t.Fatalf("forward speed = %f, want %f at elapsed %f", w.ForwardSpeed, want, w.Elapsed)
	}
}
