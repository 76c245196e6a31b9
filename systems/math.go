package systems

import "math"

// minDistance replaces an exactly-zero pointer distance in force laws that
// divide by it.
const minDistance = 0.0001

// safeDist returns d, or minDistance when d is zero.
func safeDist(d float64) float64 {
	if d == 0 {
		return minDistance
	}
	return d
}

// distance returns the length of (dx, dy).
func distance(dx, dy float64) float64 {
	return math.Sqrt(dx*dx + dy*dy)
}

// clampSpeed rescales (vx, vy) so its length does not exceed limit.
func clampSpeed(vx, vy, limit float64) (float64, float64) {
	speed := distance(vx, vy)
	if speed > limit {
		return vx / speed * limit, vy / speed * limit
	}
	return vx, vy
}
