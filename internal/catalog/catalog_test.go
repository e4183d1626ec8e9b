package catalog

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/litescript/ls-starmap/internal/astro"
)

func loadDefault(t *testing.T) *Catalog {
	t.Helper()
	c, err := Default(1.0)
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}
	return c
}

func TestDefault_NonEmpty(t *testing.T) {
	c := loadDefault(t)

	if len(c.Points) < 30 {
		t.Errorf("Expected at least 30 stars, got %d", len(c.Points))
	}
	if len(c.Polities) == 0 {
		t.Error("Default() returned no polities")
	}
}

func TestDefault_KnownStars(t *testing.T) {
	c := loadDefault(t)

	knownStars := map[string]struct {
		minDist, maxDist float64
		spectral         string
	}{
		"Proxima Centauri": {1.2, 1.4, "M5.5Ve"},
		"Alpha Centauri":   {1.3, 1.4, "G2V+K1V"},
		"Sirius":           {2.5, 2.8, "A1V+DA2"},
		"Tau Ceti":         {3.5, 3.8, "G8V"},
		"Vega":             {7.5, 7.9, "A0V"},
	}

	for name, expected := range knownStars {
		p, found := c.Lookup(name)
		if !found {
			t.Errorf("Expected star %s not in catalog", name)
			continue
		}
		if p.DistancePc < expected.minDist || p.DistancePc > expected.maxDist {
			t.Errorf("%s distance=%v, expected %v-%v", name, p.DistancePc, expected.minDist, expected.maxDist)
		}
		if p.Spectral != expected.spectral {
			t.Errorf("%s spectral=%q, expected %q", name, p.Spectral, expected.spectral)
		}
		if math.Abs(p.Position.Norm()-p.DistancePc) > 1e-9 {
			t.Errorf("%s |position|=%v, expected %v", name, p.Position.Norm(), p.DistancePc)
		}
	}
}

func TestDefault_ValidCoordinates(t *testing.T) {
	c := loadDefault(t)

	for _, p := range c.Points {
		if p.Equatorial.RAdeg < 0 || p.Equatorial.RAdeg >= 360 {
			t.Errorf("Star %s has invalid RA: %v", p.Name, p.Equatorial.RAdeg)
		}
		if p.Equatorial.DecDeg < -90 || p.Equatorial.DecDeg > 90 {
			t.Errorf("Star %s has invalid Dec: %v", p.Name, p.Equatorial.DecDeg)
		}
		if p.Galactic.LDeg < 0 || p.Galactic.LDeg >= 360 {
			t.Errorf("Star %s has invalid l: %v", p.Name, p.Galactic.LDeg)
		}
		if p.Luminosity <= 0 {
			t.Errorf("Star %s has non-positive luminosity: %v", p.Name, p.Luminosity)
		}
		if !p.Position.IsFinite() {
			t.Errorf("Star %s has non-finite position: %v", p.Name, p.Position)
		}
	}
}

func TestDefault_GalacticPlacement(t *testing.T) {
	c := loadDefault(t)

	// Alpha Centauri sits near l=316, b=-1: coreward, anti-spinward, in the plane
	p, _ := c.Lookup("Alpha Centauri")
	if p.Position.X <= 0 || p.Position.Y >= 0 {
		t.Errorf("Alpha Centauri position %v, expected +X -Y", p.Position)
	}
	if math.Abs(p.Position.Z) > 0.1 {
		t.Errorf("Alpha Centauri Z=%v, expected near the galactic plane", p.Position.Z)
	}
	if math.Abs(p.Galactic.LDeg-315.7) > 0.3 {
		t.Errorf("Alpha Centauri l=%v, expected ~315.7", p.Galactic.LDeg)
	}
}

func TestDefault_NearestFirst(t *testing.T) {
	c := loadDefault(t)

	if c.Points[0].Name != "Proxima Centauri" {
		t.Errorf("First star should be Proxima Centauri, got %s", c.Points[0].Name)
	}
	for i := 1; i < len(c.Points); i++ {
		if c.Points[i].DistancePc < c.Points[i-1].DistancePc {
			t.Errorf("Star %d (%s) is nearer than its predecessor", i, c.Points[i].Name)
		}
	}
}

func TestDefault_DeterministicOrder(t *testing.T) {
	c1 := loadDefault(t)
	c2 := loadDefault(t)

	if len(c1.Points) != len(c2.Points) {
		t.Fatal("Catalog length differs between loads")
	}
	for i := range c1.Points {
		if c1.Points[i].Name != c2.Points[i].Name {
			t.Errorf("Star order differs at index %d: %s vs %s", i, c1.Points[i].Name, c2.Points[i].Name)
		}
	}
}

func TestDefault_MissingLuminosity(t *testing.T) {
	c, err := Default(0.8)
	if err != nil {
		t.Fatal(err)
	}

	p, _ := c.Lookup("Kruger 60")
	if !p.LuminosityDefaulted || p.Luminosity != 0.8 {
		t.Errorf("Kruger 60 luminosity=%v defaulted=%v, expected 0.8 defaulted", p.Luminosity, p.LuminosityDefaulted)
	}
	p, _ = c.Lookup("Vega")
	if p.LuminosityDefaulted {
		t.Error("Vega luminosity should not be defaulted")
	}
}

func TestLookup_CaseInsensitive(t *testing.T) {
	c := loadDefault(t)

	for _, name := range []string{"tau ceti", "  TAU CETI ", "Tau Ceti"} {
		if _, ok := c.Lookup(name); !ok {
			t.Errorf("Lookup(%q) failed", name)
		}
	}
	if _, ok := c.Lookup("Nowhere"); ok {
		t.Error("Lookup(Nowhere) should fail")
	}
}

func TestPolities(t *testing.T) {
	c := loadDefault(t)

	pol, ok := c.Polity("eridani compact")
	if !ok {
		t.Fatal("Eridani Compact not found")
	}
	if !pol.Compact {
		t.Error("Eridani Compact should be compact")
	}

	members, err := c.Members(pol)
	if err != nil {
		t.Fatal(err)
	}
	if len(members) != len(pol.Members) {
		t.Errorf("Members() returned %d points, expected %d", len(members), len(pol.Members))
	}
	if members[0].Name != pol.Members[0] {
		t.Errorf("Members() order: got %s first, expected %s", members[0].Name, pol.Members[0])
	}

	got := c.Claimants("Tau Ceti")
	if len(got) != 1 || got[0] != "Eridani Compact" {
		t.Errorf("Claimants(Tau Ceti) = %v", got)
	}
	if got := c.Claimants("Sirius"); len(got) != 0 {
		t.Errorf("Claimants(Sirius) = %v, expected none", got)
	}
}

func TestDefaultPolities_ReturnsCopies(t *testing.T) {
	p := DefaultPolities()
	p[0].Members[0] = "mutated"

	if DefaultPolities()[0].Members[0] == "mutated" {
		t.Error("DefaultPolities() shares member slices")
	}
}

func TestLoad_Errors(t *testing.T) {
	good := Entry{Name: "A", RAdeg: 10, DecDeg: 10, DistancePc: 5, Spectral: "G2V", Luminosity: 1}

	tests := []struct {
		name     string
		entries  []Entry
		polities []Polity
		lum      float64
		invalid  bool
		unknown  bool
	}{
		{"zero distance", []Entry{{Name: "A", RAdeg: 1, DecDeg: 1}}, nil, 1, true, false},
		{"NaN RA", []Entry{{Name: "A", RAdeg: math.NaN(), DistancePc: 1}}, nil, 1, true, false},
		{"bad default luminosity", []Entry{good}, nil, 0, true, false},
		{"empty name", []Entry{{RAdeg: 1, DistancePc: 1}}, nil, 1, false, false},
		{"duplicate", []Entry{good, good}, nil, 1, false, false},
		{"unknown member", []Entry{good}, []Polity{{Name: "P", Members: []string{"B"}}}, 1, false, true},
		{"empty polity", []Entry{good}, []Polity{{Name: "P"}}, 1, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.entries, tt.polities, tt.lum)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.invalid && !errors.Is(err, astro.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
			if tt.unknown && !errors.Is(err, ErrUnknownStar) {
				t.Errorf("expected ErrUnknownStar, got %v", err)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stars.yaml")
	data := `stars:
  - name: Tau Ceti
    ra: 26.017
    dec: -15.937
    dist: 3.65
    mag: 3.5
    spectral: G8V
    lum: 0.52
  - name: Epsilon Eridani
    ra: 53.233
    dec: -9.458
    dist: 3.22
    mag: 3.73
    spectral: K2V
polities:
  - name: Cetian League
    members: [Tau Ceti, Epsilon Eridani]
    compact: true
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	c, err := LoadFile(path, 1.0)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if len(c.Points) != 2 || c.Points[0].Name != "Epsilon Eridani" {
		t.Errorf("unexpected points: %+v", c.Points)
	}
	eps, _ := c.Lookup("Epsilon Eridani")
	if !eps.LuminosityDefaulted {
		t.Error("Epsilon Eridani luminosity should be defaulted")
	}
	pol, ok := c.Polity("Cetian League")
	if !ok || !pol.Compact || len(pol.Members) != 2 {
		t.Errorf("unexpected polity: %+v", pol)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"), 1); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWatchFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stars.yaml")
	write := func(body string) {
		t.Helper()
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	write("stars:\n  - {name: Vega, ra: 279.235, dec: 38.784, dist: 7.68, spectral: A0V, lum: 40.1}\n")

	got := make(chan *Catalog, 4)
	stop, err := WatchFile(path, 1.0, func(c *Catalog, err error) {
		if err == nil {
			got <- c
		}
	})
	if err != nil {
		t.Fatalf("WatchFile() error: %v", err)
	}
	defer stop()

	write("stars:\n  - {name: Vega, ra: 279.235, dec: 38.784, dist: 7.68, spectral: A0V, lum: 40.1}\n" +
		"  - {name: Altair, ra: 297.696, dec: 8.868, dist: 5.13, spectral: A7V, lum: 10.6}\n")

	select {
	case c := <-got:
		if len(c.Points) != 2 {
			t.Errorf("reloaded %d stars, want 2", len(c.Points))
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after the file changed")
	}
}

func TestPositions(t *testing.T) {
	pts := []Point{{Position: astro.Vec3{X: 1}}, {Position: astro.Vec3{Y: 2}}}
	got := Positions(pts)
	if len(got) != 2 || got[1].Y != 2 {
		t.Errorf("Positions() = %v", got)
	}
}
