package game

import "laneglide-server/protocol"

// buildStateSnapshot projects a session's world into the wire snapshot the
// render collaborator draws from.
func buildStateSnapshot(sess *Session) protocol.State {
	w := sess.world
	snap := protocol.State{
		Tick:      sess.tick,
		GameState: w.State.String(),
		Score:     w.Score,
		HighScore: w.HighScore,
		Speed:     w.ForwardSpeed,
		Elapsed:   w.Elapsed,
		Player: protocol.PlayerSnapshot{
			X:    w.Player.X,
			Y:    w.Player.Y,
			Z:    w.Player.Z,
			Lane: w.TargetLane,
		},
		Segments:  make([]float64, 0, SegmentCount),
		Obstacles: make([]protocol.ObstacleSnapshot, 0, len(w.Obstacles)),
	}
	for i := range w.Segments {
		snap.Segments = append(snap.Segments, w.Segments[i].Z)
	}
	for i := range w.Obstacles {
		o := &w.Obstacles[i]
		snap.Obstacles = append(snap.Obstacles, protocol.ObstacleSnapshot{
			ID:   o.ID,
			Lane: o.Lane,
			X:    o.X,
			Z:    o.Z,
		})
	}
	return snap
}
