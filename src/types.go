package game

import (
	"math/rand"
)

// 1. Data Structures

// GameState gates which systems run on a tick.
type GameState int

const (
	StateReady GameState = iota
	StatePlaying
	StateGameOver
)

// String returns the wire name of the state, as the browser client expects it.
func (s GameState) String() string {
	switch s {
	case StateReady:
		return "READY"
	case StatePlaying:
		return "PLAYING"
	case StateGameOver:
		return "GAME_OVER"
	default:
		return "UNKNOWN"
	}
}

// Player is the sphere the session controls. Created once per world,
// repositioned on reset, never destroyed during a session.
type Player struct {
	X      float64
	Y      float64
	Z      float64
	Radius float64
}

// Segment is one slab of the fixed track ring. Z is the leading edge on the
// forward axis; the slab spans [Z-SegmentLength, Z].
type Segment struct {
	Z float64
}

// Obstacle is a box the player must dodge. Obstacles advance with the track
// and are removed once they fall behind the camera.
type Obstacle struct {
	ID     uint64
	Lane   int
	X      float64
	Z      float64
	Radius float64
}

// gesture tracks one press-drag-release in screen space.
type gesture struct {
	dragging bool
	originX  float64
	lastX    float64
}

// World owns every piece of mutable game state for one session: no package
// globals, so the server can run many isolated worlds and tests can run
// deterministic ones.
type World struct {
	State        GameState
	Player       Player
	Segments     [SegmentCount]Segment
	Obstacles    []Obstacle
	Elapsed      float64 // seconds survived this run
	ForwardSpeed float64 // current world advance speed
	Score        float64
	HighScore    float64
	TargetLane   int

	GamesBegun    int // runs started since the world was created
	GamesFinished int // runs ended since the world was created

	gesture   gesture
	rng       *rand.Rand
	nextObsID uint64
}
