package astro

// IAU reference directions for the galactic frame (J2000, degrees).
const (
	GalacticCenterRA  = 266.4
	GalacticCenterDec = -28.9
	GalacticPoleRA    = 192.9
	GalacticPoleDec   = 27.1
)

// galacticBasis holds the galactic X/Y/Z axes expressed in equatorial
// coordinates. X points at the galactic centre, Z at the north galactic pole,
// Y completes a right-handed frame (toward l = 90°).
type galacticBasis struct {
	x, y, z Vec3
}

// The rounded reference directions are not quite orthogonal. The centre is
// kept exact and the pole is orthogonalised against it, so (0, 0) maps to the
// centre constants and the transpose stays a true inverse. The pole lands
// within 0.07° of its constants.
var galactic = newGalacticBasis()

func newGalacticBasis() galacticBasis {
	x := unitVector(GalacticCenterRA, GalacticCenterDec)
	pole := unitVector(GalacticPoleRA, GalacticPoleDec)
	z := pole.Sub(x.Scale(pole.Dot(x))).Normalized()
	y := z.Cross(x)
	return galacticBasis{x: x, y: y, z: z}
}

// toEquatorial rotates a galactic-frame vector into the equatorial frame.
func (g galacticBasis) toEquatorial(v Vec3) Vec3 {
	return g.x.Scale(v.X).Add(g.y.Scale(v.Y)).Add(g.z.Scale(v.Z))
}

// toGalactic rotates an equatorial-frame vector into the galactic frame.
func (g galacticBasis) toGalactic(v Vec3) Vec3 {
	return Vec3{X: v.Dot(g.x), Y: v.Dot(g.y), Z: v.Dot(g.z)}
}

// GalacticToEquatorial converts galactic longitude/latitude (degrees) to
// J2000 RA/Dec (degrees).
func GalacticToEquatorial(lDeg, bDeg float64) (Equatorial, error) {
	const op = "GalacticToEquatorial"
	if err := checkGalactic(op, lDeg, bDeg); err != nil {
		return Equatorial{}, err
	}

	eq := galactic.toEquatorial(unitVector(lDeg, bDeg))
	ra, dec := sphericalAngles(eq)
	return Equatorial{RAdeg: ra, DecDeg: dec}, nil
}

// EquatorialToGalactic converts J2000 RA/Dec (degrees) to galactic l/b (degrees).
func EquatorialToGalactic(raDeg, decDeg float64) (Galactic, error) {
	const op = "EquatorialToGalactic"
	if err := checkEquatorial(op, raDeg, decDeg); err != nil {
		return Galactic{}, err
	}

	g := galactic.toGalactic(unitVector(raDeg, decDeg))
	l, b := sphericalAngles(g)
	return Galactic{LDeg: l, BDeg: b}, nil
}

// GalacticToCartesian converts l/b (degrees) and a distance in parsecs to
// galactic Cartesian coordinates centered on Sol:
//   - X toward the galactic centre (coreward)
//   - Y toward l = 90° (spinward)
//   - Z toward the north galactic pole
func GalacticToCartesian(lDeg, bDeg, distancePc float64) (Vec3, error) {
	const op = "GalacticToCartesian"
	if err := checkGalactic(op, lDeg, bDeg); err != nil {
		return Vec3{}, err
	}
	if err := RequirePositive(op, "distance", distancePc); err != nil {
		return Vec3{}, err
	}

	return unitVector(lDeg, bDeg).Scale(distancePc), nil
}

// EquatorialToGalacticCartesian places a catalog entry given in RA/Dec and
// parsecs into galactic Cartesian coordinates.
func EquatorialToGalacticCartesian(raDeg, decDeg, distancePc float64) (Vec3, error) {
	eq, err := EquatorialToCartesian(raDeg, decDeg, distancePc)
	if err != nil {
		return Vec3{}, err
	}
	return galactic.toGalactic(eq), nil
}

// GalacticCartesianToEquatorialCartesian rotates a galactic Cartesian position
// back into the equatorial frame. The distance is preserved.
func GalacticCartesianToEquatorialCartesian(v Vec3) Vec3 {
	return galactic.toEquatorial(v)
}

func checkGalactic(op string, lDeg, bDeg float64) error {
	if err := RequireFinite(op, "l", lDeg); err != nil {
		return err
	}
	if err := RequireFinite(op, "b", bDeg); err != nil {
		return err
	}
	if bDeg < -90 || bDeg > 90 {
		return NewInvalidInput(op, "b", bDeg, "must be within [-90, 90]")
	}
	return nil
}
