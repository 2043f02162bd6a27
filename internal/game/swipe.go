package game

import "math"

// DirectionFromSwipe infers a move direction from a drag displacement.
// The dominant axis wins; ties go to the vertical axis. Positive dy points
// down. Gestures whose dominant magnitude is below threshold are ignored.
func DirectionFromSwipe(dx, dy, threshold float64) (Direction, bool) {
	ax, ay := math.Abs(dx), math.Abs(dy)

	if max(ax, ay) < threshold {
		return 0, false
	}

	if ax > ay {
		if dx > 0 {
			return DirRight, true
		}
		return DirLeft, true
	}
	if dy > 0 {
		return DirDown, true
	}
	return DirUp, true
}
