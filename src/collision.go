package game

// checkSphereCollision reports whether two spheres overlap, comparing squared
// center distance against the combined radius squared.
func checkSphereCollision(x1, y1, z1, r1, x2, y2, z2, r2 float64) bool {
	dx := x1 - x2
	dy := y1 - y2
	dz := z1 - z2
	rr := r1 + r2
	return dx*dx+dy*dy+dz*dz < rr*rr
}

// detectCollision tests the player against every live obstacle and returns
// true on the first hit, short-circuiting the remaining checks. Obstacles sit
// on the track at the player's height, so the Y term is constant zero here
// but kept in the sphere test for the general case.
func (w *World) detectCollision() bool {
	p := &w.Player
	for i := range w.Obstacles {
		o := &w.Obstacles[i]
		if checkSphereCollision(p.X, p.Y, p.Z, p.Radius, o.X, PlayerY, o.Z, o.Radius) {
			return true
		}
	}
	return false
}
