package game

// Input resolution policy: lane changes resolve at pointer release only.
// Move events just record the latest screen X; nothing is applied mid-drag.
// The resolver mutates a single pending target lane, so only the latest
// intent matters and repeated swipes in the same tick do not stack.

// PointerPress begins a drag at screen X.
func (w *World) PointerPress(x float64) {
	w.gesture.dragging = true
	w.gesture.originX = x
	w.gesture.lastX = x
}

// PointerMove records the latest drag position. No effect until release.
func (w *World) PointerMove(x float64) {
	if !w.gesture.dragging {
		return
	}
	w.gesture.lastX = x
}

// PointerRelease resolves the gesture: a swipe past the threshold while
// playing requests a lane change; a sub-threshold tap while READY or
// GAME_OVER (re)starts the run. Anything else is a no-op.
func (w *World) PointerRelease() {
	if !w.gesture.dragging {
		return
	}
	w.gesture.dragging = false

	dx := w.gesture.lastX - w.gesture.originX
	swipe := dx >= SwipeThresholdPx || dx <= -SwipeThresholdPx

	switch w.State {
	case StatePlaying:
		if !swipe {
			return
		}
		if dx > 0 {
			w.TargetLane = ClampLane(w.TargetLane + 1)
		} else {
			w.TargetLane = ClampLane(w.TargetLane - 1)
		}
	case StateReady, StateGameOver:
		if swipe {
			return // a swipe outside a run triggers nothing
		}
		w.Start()
	}
}
