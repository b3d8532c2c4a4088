package game

// LaneX maps a lane index to its world X coordinate. Lanes are centered on
// X=0, LaneSpacing apart; index 0 is the leftmost lane. Out-of-range indices
// are clamped first, so the result is always a real lane center.
func LaneX(index int) float64 {
	index = ClampLane(index)
	return (float64(index) - float64(LaneCount-1)/2) * LaneSpacing
}

// ClampLane clamps a lane index into [0, LaneCount-1].
func ClampLane(index int) int {
	if index < 0 {
		return 0
	}
	if index > LaneCount-1 {
		return LaneCount - 1
	}
	return index
}
