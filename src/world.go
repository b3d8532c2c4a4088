package game

import "log"

// State machine and tick pipeline. Transitions:
//
//	READY     --(tap)-->       PLAYING   (reset run)
//	PLAYING   --(collision)--> GAME_OVER (freeze world, commit high score)
//	GAME_OVER --(tap)-->       PLAYING   (reset run)
//
// Anything else is a logged no-op.

// Start begins a run from READY or GAME_OVER. Illegal from PLAYING.
func (w *World) Start() {
	switch w.State {
	case StateReady, StateGameOver:
		w.resetRun()
		w.State = StatePlaying
		w.GamesBegun++
	case StatePlaying:
		log.Printf("World: ignoring start trigger while already playing")
	}
}

// gameOver freezes the run and commits the high score. Only legal from
// PLAYING; the collision phase is the sole caller.
func (w *World) gameOver() {
	if w.State != StatePlaying {
		log.Printf("World: ignoring game-over trigger in state %s", w.State)
		return
	}
	w.State = StateGameOver
	w.GamesFinished++
	if w.Score > w.HighScore {
		w.HighScore = w.Score
	}
}

// Step advances the simulation by dt seconds. Outside PLAYING the world
// idles: the tick keeps arriving but nothing moves, spawns, or scores.
// Within a tick the order is fixed: speed ramp, track advance and recycling,
// player steering, collision, then scoring — so a death on this tick freezes
// the score before it would accrue.
func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}
	if dt > MaxDeltaTime {
		dt = MaxDeltaTime
	}
	if w.State != StatePlaying {
		return
	}

	w.Elapsed += dt
	w.ForwardSpeed = BaseForwardSpeed + SpeedRampPerSec*w.Elapsed

	w.advanceTrack(w.ForwardSpeed * dt)
	w.steerPlayer(dt)

	if w.detectCollision() {
		w.gameOver()
		return
	}

	w.Score += BaseScoreRate * dt
}
