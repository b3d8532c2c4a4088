package config

import "time"

// --- Server Loop Constants ---
const (
	// SIM_TICK_INTERVAL is the session update cadence (20 simulation frames
	// per second; the browser interpolates between snapshots at its own
	// display rate).
	SIM_TICK_INTERVAL = 50 * time.Millisecond

	// BROADCAST_EVERY sends a state snapshot every Nth simulation tick.
	BROADCAST_EVERY = 2

	// MAX_SESSIONS caps concurrent worlds; further websocket upgrades are
	// refused until a slot frees up.
	MAX_SESSIONS = 512
)

// Color is a simplified RGBA representation; clients interpret these values
// for rendering.
type Color [4]int

// Palette holds the solid-color fallbacks the client paints with whenever a
// texture is missing. Keys match the client's material names.
var Palette = map[string]Color{
	"BACKGROUND": {10, 10, 26, 255},
	"TRACK":      {52, 58, 86, 255},
	"TRACK_EDGE": {92, 98, 132, 255},
	"PLAYER":     {0, 200, 255, 255},
	"OBSTACLE":   {255, 82, 82, 255},
	"HUD_TEXT":   {255, 255, 255, 255},
	"PROMPT":     {255, 214, 64, 255},
}

// TextureManifest maps material names to texture paths relative to the
// static directory. Entries whose file is missing on disk are dropped from
// the init payload; the client then falls back to Palette.
var TextureManifest = map[string]string{
	"TRACK":    "assets/track.png",
	"PLAYER":   "assets/sphere.png",
	"OBSTACLE": "assets/crate.png",
}
