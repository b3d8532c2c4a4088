package game

// Gameplay tuning. World units are the same units the browser client feeds
// into its scene graph; the forward axis is Z and grows toward the camera.
const (
	LaneCount   = 3
	LaneSpacing = 1.5 // X distance between adjacent lane centers
	CenterLane  = 1   // starting lane index

	SegmentCount  = 8    // fixed ring size
	SegmentLength = 12.0 // forward-axis pitch of one track slab
	TrackWidth    = 6.0  // cosmetic, forwarded to the client

	CameraZ            = 5.0  // camera plane on the forward axis
	RecycleMargin      = 2.0  // segment recycles once past CameraZ + this
	ObstacleCullMargin = 10.0 // obstacles are swept once past CameraZ + this
	StaleObstacleSpan  = 0.6  // fraction of SegmentLength purged around a recycled segment

	ObstacleSpawnChance = 0.5 // per segment (re)spawn
	ObstacleRadius      = 0.5
	PlayerRadius        = 0.5
	PlayerY             = 0.5 // sphere resting on the track
	PlayerZ             = 0.0 // player holds this forward position; the world slides past

	BaseForwardSpeed = 8.0 // world units per second at start
	SpeedRampPerSec  = 0.5 // forward speed gained per second of survival

	LaneLerpFactor = 10.0 // exponential approach rate toward the target lane X

	BaseScoreRate = 10.0 // points per second while playing

	SwipeThresholdPx = 40.0 // screen-space X displacement that counts as a swipe

	MaxDeltaTime = 0.1 // seconds; clamp against stalls (tab backgrounding)
)
