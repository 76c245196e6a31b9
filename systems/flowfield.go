package systems

import "math"

// FlowScale is the spatial frequency of the optimization flow field.
const FlowScale = 0.003

// FlowAngle samples the flow field at (x, y) and simulation time t, returning
// a direction in radians. It is pure: equal arguments give bit-identical results.
func FlowAngle(x, y, t float64) float64 {
	v := math.Sin(x*FlowScale) +
		math.Cos(y*FlowScale) +
		math.Sin((x+y)*FlowScale*0.5+t) +
		math.Cos((x-y)*FlowScale*0.5)
	return v * math.Pi
}

// FlowVector returns the unit direction of the flow field at (x, y, t).
func FlowVector(x, y, t float64) (fx, fy float64) {
	a := FlowAngle(x, y, t)
	return math.Cos(a), math.Sin(a)
}
