// Package astro provides astrometric coordinate transformations and vector math.
package astro

import (
	"math"
)

// Equatorial holds J2000 equatorial coordinates.
type Equatorial struct {
	RAdeg  float64 `json:"ra"`  // Right Ascension in degrees (0-360)
	DecDeg float64 `json:"dec"` // Declination in degrees (-90 to +90)
}

// Galactic holds galactic coordinates centered on Sol.
type Galactic struct {
	LDeg float64 `json:"l"` // Galactic longitude in degrees (0-360)
	BDeg float64 `json:"b"` // Galactic latitude in degrees (-90 to +90)
}

// EquatorialToCartesian converts RA/Dec (degrees) and a distance in parsecs to
// Cartesian coordinates with the origin at the catalog reference point.
//
// Axes follow the equatorial frame:
//   - X toward RA 0°, Dec 0° (vernal equinox)
//   - Y toward RA 90°, Dec 0°
//   - Z toward the north celestial pole
func EquatorialToCartesian(raDeg, decDeg, distancePc float64) (Vec3, error) {
	const op = "EquatorialToCartesian"
	if err := checkEquatorial(op, raDeg, decDeg); err != nil {
		return Vec3{}, err
	}
	if err := RequirePositive(op, "distance", distancePc); err != nil {
		return Vec3{}, err
	}

	return unitVector(raDeg, decDeg).Scale(distancePc), nil
}

// CartesianToEquatorial is the inverse of EquatorialToCartesian. It returns the
// direction and the distance of v from the origin.
func CartesianToEquatorial(v Vec3) (Equatorial, float64, error) {
	const op = "CartesianToEquatorial"
	if !v.IsFinite() {
		return Equatorial{}, 0, NewInvalidInput(op, "", math.NaN(), "coordinates must be finite")
	}
	r := v.Norm()
	if r == 0 {
		return Equatorial{}, 0, NewInvalidInput(op, "distance", 0, "point coincides with the origin")
	}

	ra, dec := sphericalAngles(v.Scale(1 / r))
	return Equatorial{RAdeg: ra, DecDeg: dec}, r, nil
}

func checkEquatorial(op string, raDeg, decDeg float64) error {
	if err := RequireFinite(op, "ra", raDeg); err != nil {
		return err
	}
	if err := RequireFinite(op, "dec", decDeg); err != nil {
		return err
	}
	if decDeg < -90 || decDeg > 90 {
		return NewInvalidInput(op, "dec", decDeg, "must be within [-90, 90]")
	}
	return nil
}

// unitVector returns the unit direction for a longitude/latitude pair in degrees.
func unitVector(lonDeg, latDeg float64) Vec3 {
	lon := degToRad(lonDeg)
	lat := degToRad(latDeg)
	cosLat := math.Cos(lat)
	return Vec3{
		X: cosLat * math.Cos(lon),
		Y: cosLat * math.Sin(lon),
		Z: math.Sin(lat),
	}
}

// sphericalAngles returns longitude (0-360) and latitude in degrees for a unit vector.
func sphericalAngles(u Vec3) (float64, float64) {
	z := u.Z
	// Clamp to [-1, 1] to handle floating point errors
	if z > 1 {
		z = 1
	} else if z < -1 {
		z = -1
	}
	lon := normalizeDegrees(radToDeg(math.Atan2(u.Y, u.X)))
	lat := radToDeg(math.Asin(z))
	return lon, lat
}

// normalizeDegrees wraps an angle into [0, 360).
func normalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg -= 360
	}
	return deg
}

// degToRad converts degrees to radians.
func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// radToDeg converts radians to degrees.
func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
