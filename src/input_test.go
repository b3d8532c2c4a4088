package game

import (
	"math/rand"
	"testing"
)

func newTestWorld(seed int64) *World {
	return NewWorld(rand.New(rand.NewSource(seed)))
}

// startClean begins a run and clears the board so track spawns cannot
// interfere with the behavior under test.
func startClean(w *World) {
	w.Start()
	w.Obstacles = w.Obstacles[:0]
}

func TestSwipeRightChangesLane(t *testing.T) {
	w := newTestWorld(1)
	startClean(w)

	w.PointerPress(100)
	w.PointerMove(100 + SwipeThresholdPx)
	w.PointerRelease()

	if w.TargetLane != CenterLane+1 {
		t.Fatalf("target lane = %d, want %d", w.TargetLane, CenterLane+1)
	}
}

func TestSwipeLeftChangesLane(t *testing.T) {
	w := newTestWorld(1)
	startClean(w)

	w.PointerPress(300)
	w.PointerMove(300 - SwipeThresholdPx - 5)
	w.PointerRelease()

	if w.TargetLane != CenterLane-1 {
		t.Fatalf("target lane = %d, want %d", w.TargetLane, CenterLane-1)
	}
}

func TestSwipesClampAtEdges(t *testing.T) {
	w := newTestWorld(1)
	startClean(w)

	for i := 0; i < 5; i++ {
		w.PointerPress(0)
		w.PointerMove(500)
		w.PointerRelease()
	}
	if w.TargetLane != LaneCount-1 {
		t.Fatalf("target lane = %d, want %d after repeated right swipes", w.TargetLane, LaneCount-1)
	}

	for i := 0; i < 5; i++ {
		w.PointerPress(500)
		w.PointerMove(0)
		w.PointerRelease()
	}
	if w.TargetLane != 0 {
		t.Fatalf("target lane = %d, want 0 after repeated left swipes", w.TargetLane)
	}
}

func TestSubThresholdDragIsNotASwipe(t *testing.T) {
	w := newTestWorld(1)
	startClean(w)

	w.PointerPress(100)
	w.PointerMove(100 + SwipeThresholdPx - 1)
	w.PointerRelease()

	if w.TargetLane != CenterLane {
		t.Fatalf("target lane changed on a sub-threshold drag")
	}
}

func TestTapStartsFromReady(t *testing.T) {
	w := newTestWorld(1)
	if w.State != StateReady {
		t.Fatalf("new world state = %s, want READY", w.State)
	}
	w.PointerPress(50)
	w.PointerRelease()
	if w.State != StatePlaying {
		t.Fatalf("state after tap = %s, want PLAYING", w.State)
	}
}

func TestTapRestartsFromGameOver(t *testing.T) {
	w := newTestWorld(1)
	startClean(w)
	w.Score = 42
	w.gameOver()
	if w.State != StateGameOver {
		t.Fatalf("state = %s, want GAME_OVER", w.State)
	}

	w.PointerPress(50)
	w.PointerRelease()
	if w.State != StatePlaying {
		t.Fatalf("state after restart tap = %s, want PLAYING", w.State)
	}
	if w.Score != 0 {
		t.Fatalf("score = %f after restart, want 0", w.Score)
	}
}

func TestSwipeOutsideRunIsANoOp(t *testing.T) {
	w := newTestWorld(1)

	w.PointerPress(0)
	w.PointerMove(500)
	w.PointerRelease()

	if w.State != StateReady {
		t.Fatalf("a swipe in READY started the game")
	}
	if w.TargetLane != CenterLane {
		t.Fatalf("a swipe in READY moved the target lane")
	}
}

func TestMoveWithoutPressIsIgnored(t *testing.T) {
	w := newTestWorld(1)
	startClean(w)

	w.PointerMove(500)
	w.PointerRelease()

	if w.TargetLane != CenterLane || w.State != StatePlaying {
		t.Fatalf("stray move/release mutated the world")
	}
}

func TestOnlyLatestIntentApplies(t *testing.T) {
	w := newTestWorld(1)
	startClean(w)

	// Drag right past the threshold, then back left past it: the release
	// sees only the net displacement.
	w.PointerPress(100)
	w.PointerMove(100 + 2*SwipeThresholdPx)
	w.PointerMove(100 - SwipeThresholdPx)
	w.PointerRelease()

	if w.TargetLane != CenterLane-1 {
		t.Fatalf("target lane = %d, want %d (net leftward swipe)", w.TargetLane, CenterLane-1)
	}
}
