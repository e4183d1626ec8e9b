// Package astro provides astrometric coordinate transformations and vector math.
package astro

import (
	"math"
)

// Vec3 represents a 3D vector in any reference frame.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Norm returns the magnitude of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalized returns a unit vector in the same direction.
func (v Vec3) Normalized() Vec3 {
	n := v.Norm()
	if n == 0 {
		return Vec3{}
	}
	return Vec3{X: v.X / n, Y: v.Y / n, Z: v.Z / n}
}

// Scale returns the vector scaled by a factor.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Add returns the sum of two vectors.
func (v Vec3) Add(u Vec3) Vec3 {
	return Vec3{X: v.X + u.X, Y: v.Y + u.Y, Z: v.Z + u.Z}
}

// Sub returns the difference of two vectors.
func (v Vec3) Sub(u Vec3) Vec3 {
	return Vec3{X: v.X - u.X, Y: v.Y - u.Y, Z: v.Z - u.Z}
}

// Dot returns the scalar product of two vectors.
func (v Vec3) Dot(u Vec3) float64 {
	return v.X*u.X + v.Y*u.Y + v.Z*u.Z
}

// Cross returns the vector product v × u.
func (v Vec3) Cross(u Vec3) Vec3 {
	return Vec3{
		X: v.Y*u.Z - v.Z*u.Y,
		Y: v.Z*u.X - v.X*u.Z,
		Z: v.X*u.Y - v.Y*u.X,
	}
}

// Dist returns the Euclidean distance between two points.
func (v Vec3) Dist(u Vec3) float64 {
	return v.Sub(u).Norm()
}

// IsFinite reports whether every component is a finite number.
func (v Vec3) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

// Array returns the components as a 3-tuple.
func (v Vec3) Array() [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// ProjectedPoint represents a 2D projected position with metadata.
type ProjectedPoint struct {
	X float64 // Screen X coordinate in display units
	Y float64 // Screen Y coordinate in display units
	R float64 // Original 3D distance from the origin
	Z float64 // Original Z offset (height above the plane)
}

// ScaleMode defines how radial distances are mapped to screen space.
type ScaleMode int

const (
	// ScaleLinear maps parsecs to display units one to one.
	ScaleLinear ScaleMode = iota

	// ScaleLogR uses logarithmic scaling: r_display = log10(r + 1) * scale
	ScaleLogR
)

// String returns the scale mode name.
func (m ScaleMode) String() string {
	switch m {
	case ScaleLinear:
		return "linear"
	case ScaleLogR:
		return "log"
	default:
		return "unknown"
	}
}

// ProjectionConfig configures the top-down map projection.
type ProjectionConfig struct {
	Scale  float64   // Base scale factor
	Mode   ScaleMode // Scaling mode
	YawDeg float64   // Rotation about the Z axis, degrees
}

// DefaultProjectionConfig returns a reasonable default configuration.
func DefaultProjectionConfig() ProjectionConfig {
	return ProjectionConfig{
		Scale: 1.0,
		Mode:  ScaleLinear,
	}
}

// ProjectTopDown projects a 3D vector onto the XY plane as seen from +Z.
// X points right and Y points up before the yaw rotation is applied.
func ProjectTopDown(v Vec3, cfg ProjectionConfig) ProjectedPoint {
	r := math.Sqrt(v.X*v.X + v.Y*v.Y)
	rDisplay := scaleRadius(r, cfg.Mode)

	angle := math.Atan2(v.Y, v.X) + degToRad(cfg.YawDeg)

	return ProjectedPoint{
		X: rDisplay * math.Cos(angle) * cfg.Scale,
		Y: rDisplay * math.Sin(angle) * cfg.Scale,
		R: v.Norm(),
		Z: v.Z,
	}
}

// scaleRadius applies the configured scaling mode to a radial distance.
func scaleRadius(r float64, mode ScaleMode) float64 {
	switch mode {
	case ScaleLogR:
		// log10(r + 1): ~1.04 at 10 pc, ~2.0 at 100 pc
		return math.Log10(r + 1)
	default:
		return r
	}
}
