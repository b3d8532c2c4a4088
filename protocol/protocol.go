package protocol

import (
	"encoding/json"
)

// Message types exchanged over the websocket. Client to server: hello,
// pointer. Server to client: init, state, gameover.
const (
	MsgHello    = "hello"
	MsgPointer  = "pointer"
	MsgInit     = "init"
	MsgState    = "state"
	MsgGameOver = "gameover"
)

// Pointer phases.
const (
	PhasePress   = "press"
	PhaseMove    = "move"
	PhaseRelease = "release"
)

const (
	SimTickHz   = 20 // server simulation cadence
	BroadcastHz = 10 // state snapshots sent to the client
)

// Envelope wraps every websocket frame: a type tag and raw payload bytes.
type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p"`
}

// Hello is the first client frame: protocol version and an optional display
// name attached to persisted scores.
type Hello struct {
	V    int    `json:"v"`
	Name string `json:"name,omitempty"`
}

// Pointer carries one raw press/move/release event in screen pixels. Y is
// forwarded but unused by the resolver; the client sends it so the policy
// can change without a protocol bump.
type Pointer struct {
	Phase string  `json:"phase"`
	X     float64 `json:"x"`
	Y     float64 `json:"y,omitempty"`
}

// Init is sent once after hello: everything the render collaborator needs to
// set the scene up, plus the player's persisted high score.
type Init struct {
	PlayerID      string             `json:"playerId"`
	TickHz        int                `json:"tickHz"`
	LaneCount     int                `json:"laneCount"`
	LaneSpacing   float64            `json:"laneSpacing"`
	SegmentCount  int                `json:"segmentCount"`
	SegmentLength float64            `json:"segmentLength"`
	TrackWidth    float64            `json:"trackWidth"`
	CameraZ       float64            `json:"cameraZ"`
	PlayerRadius  float64            `json:"playerRadius"`
	HighScore     float64            `json:"highScore"`
	Colors        map[string][4]int  `json:"colors"`             // solid-color fallbacks
	Textures      map[string]string  `json:"textures,omitempty"` // present only if the asset exists
}

// State is the per-tick snapshot of everything visible.
type State struct {
	Tick      int                `json:"tick"`
	GameState string             `json:"gameState"`
	Score     float64            `json:"score"`
	HighScore float64            `json:"highScore"`
	Speed     float64            `json:"speed"`
	Elapsed   float64            `json:"elapsed"`
	Player    PlayerSnapshot     `json:"player"`
	Segments  []float64          `json:"segments"` // leading-edge Z per ring slot
	Obstacles []ObstacleSnapshot `json:"obstacles"`
}

type PlayerSnapshot struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Z    float64 `json:"z"`
	Lane int     `json:"lane"`
}

type ObstacleSnapshot struct {
	ID   uint64  `json:"id"`
	Lane int     `json:"lane"`
	X    float64 `json:"x"`
	Z    float64 `json:"z"`
}

// GameOver is sent once on the PLAYING -> GAME_OVER transition.
type GameOver struct {
	Score     float64 `json:"score"`
	HighScore float64 `json:"highScore"`
	Elapsed   float64 `json:"elapsed"`
	NewBest   bool    `json:"newBest"`
}
