package game

import (
	"math"
	"math/rand"
	"sort"
	"testing"
)

// ringSpacing checks that the sorted segment positions tile the forward axis
// with exactly SegmentLength between neighbors.
func ringSpacing(t *testing.T, w *World, tick int) {
	t.Helper()
	zs := make([]float64, 0, SegmentCount)
	for _, s := range w.Segments {
		zs = append(zs, s.Z)
	}
	sort.Float64s(zs)
	for i := 1; i < len(zs); i++ {
		if math.Abs((zs[i]-zs[i-1])-SegmentLength) > 1e-6 {
			t.Fatalf("tick %d: segment gap %f, want %f", tick, zs[i]-zs[i-1], SegmentLength)
		}
	}
}

func TestSegmentRingInvariantUnderRandomDeltaTimes(t *testing.T) {
	w := newTestWorld(7)
	w.Start()
	dtRng := rand.New(rand.NewSource(99))

	for tick := 0; tick < 10000; tick++ {
		w.Step(dtRng.Float64() * 0.05)
		if w.State == StateGameOver {
			w.Start() // keep the world advancing for the whole run
		}
		ringSpacing(t, w, tick)
	}
}

func TestObstaclesNeverSurviveBehindTheCamera(t *testing.T) {
	w := newTestWorld(3)
	w.Start()
	dtRng := rand.New(rand.NewSource(12))

	for tick := 0; tick < 1000; tick++ {
		w.Step(dtRng.Float64() * 0.05)
		if w.State == StateGameOver {
			w.Start()
		}
		for _, o := range w.Obstacles {
			if o.Z > CameraZ+ObstacleCullMargin {
				t.Fatalf("tick %d: obstacle %d at z=%f past the cull margin", tick, o.ID, o.Z)
			}
		}
	}
}

func TestRecycleIsModularNotAReset(t *testing.T) {
	w := newTestWorld(5)
	w.Start()

	// Segment 0 starts at the camera; a 3.7-unit advance pushes it past the
	// recycle threshold. The recycled position must be the advanced position
	// minus exactly one ring length, not a reset to a fixed far plane.
	const dz = 3.7
	before := w.Segments[0].Z
	w.advanceTrack(dz)

	want := before + dz - SegmentLength*SegmentCount
	if math.Abs(w.Segments[0].Z-want) > 1e-9 {
		t.Fatalf("recycled segment z = %f, want %f (modular translation)", w.Segments[0].Z, want)
	}
	if w.Segments[0].Z > CameraZ+RecycleMargin {
		t.Fatalf("advanceTrack left segment 0 past the recycle threshold")
	}
}

func TestRecyclePurgesStaleObstaclesInNewSpan(t *testing.T) {
	w := newTestWorld(11)
	w.Start()
	w.Obstacles = w.Obstacles[:0]

	// Plant an obstacle exactly where segment 0 will land after recycling.
	landing := w.Segments[0].Z + (CameraZ + RecycleMargin - w.Segments[0].Z) + 0.5 - SegmentLength*SegmentCount
	w.Obstacles = append(w.Obstacles, Obstacle{ID: 9999, Lane: 0, X: LaneX(0), Z: landing, Radius: ObstacleRadius})

	// Push segment 0 past the recycle threshold. The recycle may roll new
	// spawns of its own, but the planted obstacle must be purged.
	w.advanceTrack(CameraZ + RecycleMargin - w.Segments[0].Z + 0.5)

	for _, o := range w.Obstacles {
		if o.ID == 9999 {
			t.Fatalf("stale obstacle at z=%f survived a recycle landing at z=%f", o.Z, w.Segments[0].Z)
		}
	}
}

func TestForwardSpeedRampsMonotonically(t *testing.T) {
	w := newTestWorld(2)
	w.Start()
	w.Obstacles = w.Obstacles[:0]

	prev := 0.0
	for i := 0; i < 200; i++ {
		w.Step(0.01)
		if w.State != StatePlaying {
			t.Fatalf("run ended unexpectedly on an empty board")
		}
		if w.ForwardSpeed < BaseForwardSpeed {
			t.Fatalf("forward speed %f below base %f", w.ForwardSpeed, BaseForwardSpeed)
		}
		if w.ForwardSpeed < prev {
			t.Fatalf("forward speed decreased: %f -> %f", prev, w.ForwardSpeed)
		}
		prev = w.ForwardSpeed
	}
}

func TestPlayerEasesTowardTargetLaneWithoutOvershoot(t *testing.T) {
	w := newTestWorld(4)
	w.Start()
	w.Obstacles = w.Obstacles[:0]

	w.TargetLane = LaneCount - 1
	target := LaneX(w.TargetLane)

	prevDist := math.Abs(target - w.Player.X)
	for i := 0; i < 100; i++ {
		w.steerPlayer(0.016)
		dist := math.Abs(target - w.Player.X)
		if dist > prevDist+1e-9 {
			t.Fatalf("distance to target grew: %f -> %f", prevDist, dist)
		}
		prevDist = dist
	}
	if prevDist > 0.05 {
		t.Fatalf("player did not converge on the lane center: still %f away", prevDist)
	}

	// A huge delta time must clamp the step instead of overshooting.
	w.Player.X = 0
	w.steerPlayer(10)
	if w.Player.X > target+1e-9 {
		t.Fatalf("large delta time overshot the lane center: x=%f target=%f", w.Player.X, target)
	}
}

func TestObstacleSpawnRespectsLaneAndSpan(t *testing.T) {
	w := newTestWorld(6)
	for i := 0; i < 200; i++ {
		w.resetRun() // lays the track again, rolling fresh spawns
		for _, o := range w.Obstacles {
			if o.Lane < 0 || o.Lane > LaneCount-1 {
				t.Fatalf("obstacle spawned in lane %d", o.Lane)
			}
			if o.X != LaneX(o.Lane) {
				t.Fatalf("obstacle X %f does not match lane %d center %f", o.X, o.Lane, LaneX(o.Lane))
			}
		}
		if len(w.Obstacles) > SegmentCount {
			t.Fatalf("more than one obstacle per segment: %d", len(w.Obstacles))
		}
	}
}
