package game

import "math/rand"

// Track ring and obstacle pool. The world slides toward the camera plane at
// CameraZ; segments past CameraZ+RecycleMargin are translated backward by the
// exact ring length so the ring tiles the forward axis without gaps or
// overlaps under any sequence of frame times.

// NewWorld builds a world in the READY state with a freshly laid track.
// The RNG drives obstacle spawning; pass a seeded source for determinism.
func NewWorld(rng *rand.Rand) *World {
	w := &World{
		State:     StateReady,
		Obstacles: make([]Obstacle, 0, SegmentCount*2),
		rng:       rng,
	}
	w.resetRun()
	return w
}

// resetRun lays out the track and player for a fresh run. Shared by world
// construction and the READY/GAME_OVER -> PLAYING transition.
func (w *World) resetRun() {
	w.Elapsed = 0
	w.Score = 0
	w.ForwardSpeed = BaseForwardSpeed
	w.TargetLane = CenterLane
	w.Player = Player{
		X:      LaneX(CenterLane),
		Y:      PlayerY,
		Z:      PlayerZ,
		Radius: PlayerRadius,
	}
	w.Obstacles = w.Obstacles[:0]
	for i := range w.Segments {
		w.Segments[i].Z = CameraZ - float64(i)*SegmentLength
		w.spawnObstacle(w.Segments[i].Z)
	}
}

// spawnObstacle probabilistically places zero or one obstacle within the
// span of the segment whose leading edge sits at segZ.
func (w *World) spawnObstacle(segZ float64) {
	if w.rng.Float64() >= ObstacleSpawnChance {
		return
	}
	lane := w.rng.Intn(LaneCount)
	w.nextObsID++
	w.Obstacles = append(w.Obstacles, Obstacle{
		ID:     w.nextObsID,
		Lane:   lane,
		X:      LaneX(lane),
		Z:      segZ - w.rng.Float64()*SegmentLength,
		Radius: ObstacleRadius,
	})
}

// advanceTrack moves every segment and obstacle forward by dz, recycles
// segments that passed the camera, and sweeps obstacles that fell behind the
// visibility margin.
func (w *World) advanceTrack(dz float64) {
	for i := range w.Obstacles {
		w.Obstacles[i].Z += dz
	}
	for i := range w.Segments {
		w.Segments[i].Z += dz
		if w.Segments[i].Z > CameraZ+RecycleMargin {
			w.recycleSegment(i)
		}
	}
	w.sweepObstacles()
}

// recycleSegment translates segment i backward by the ring length, purges
// stale obstacles that would bleed into its new span, and rolls a fresh
// spawn for it.
func (w *World) recycleSegment(i int) {
	w.Segments[i].Z -= SegmentLength * SegmentCount
	newZ := w.Segments[i].Z

	span := SegmentLength * StaleObstacleSpan
	for j := 0; j < len(w.Obstacles); {
		d := w.Obstacles[j].Z - newZ
		if d < 0 {
			d = -d
		}
		if d <= span {
			w.removeObstacle(j)
			continue
		}
		j++
	}

	w.spawnObstacle(newZ)
}

// sweepObstacles removes obstacles behind the camera regardless of which
// segment they were spawned on. Lazy per-tick sweep, not tied to recycling.
func (w *World) sweepObstacles() {
	for i := 0; i < len(w.Obstacles); {
		if w.Obstacles[i].Z > CameraZ+ObstacleCullMargin {
			w.removeObstacle(i)
			continue
		}
		i++
	}
}

// removeObstacle swap-removes index i, keeping the backing array in place so
// the steady state allocates nothing per frame.
func (w *World) removeObstacle(i int) {
	last := len(w.Obstacles) - 1
	w.Obstacles[i] = w.Obstacles[last]
	w.Obstacles = w.Obstacles[:last]
}

// steerPlayer eases the player's lane-axis position toward the pending
// target lane with an exponential approach; the step is clamped so one large
// delta time cannot overshoot the lane center.
func (w *World) steerPlayer(dt float64) {
	target := LaneX(w.TargetLane)
	step := LaneLerpFactor * dt
	if step > 1 {
		step = 1
	}
	w.Player.X += (target - w.Player.X) * step
}
