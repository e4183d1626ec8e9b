package astro

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestEquatorialToCartesian(t *testing.T) {
	tests := []struct {
		name     string
		ra, dec  float64
		dist     float64
		expected Vec3
	}{
		{"vernal equinox", 0, 0, 1, Vec3{1, 0, 0}},
		{"RA 90", 90, 0, 2, Vec3{0, 2, 0}},
		{"RA 180", 180, 0, 3, Vec3{-3, 0, 0}},
		{"north pole", 0, 90, 4, Vec3{0, 0, 4}},
		{"south pole", 123, -90, 5, Vec3{0, 0, -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EquatorialToCartesian(tt.ra, tt.dec, tt.dist)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Dist(tt.expected) > 1e-9 {
				t.Errorf("EquatorialToCartesian(%v, %v, %v) = %v, want %v",
					tt.ra, tt.dec, tt.dist, got, tt.expected)
			}
		})
	}
}

func TestEquatorialToCartesian_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		ra, dec float64
		dist    float64
		field   string
	}{
		{"zero distance", 10, 10, 0, "distance"},
		{"negative distance", 10, 10, -1, "distance"},
		{"NaN distance", 10, 10, math.NaN(), "distance"},
		{"NaN RA", math.NaN(), 10, 1, "ra"},
		{"Inf Dec", 10, math.Inf(1), 1, "dec"},
		{"Dec out of range", 10, 91, 1, "dec"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EquatorialToCartesian(tt.ra, tt.dec, tt.dist)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("error = %v, want ErrInvalidInput", err)
			}
			var inv *InvalidInputError
			if !errors.As(err, &inv) {
				t.Fatalf("error should be *InvalidInputError, got %T", err)
			}
			if inv.Field != tt.field {
				t.Errorf("Field = %q, want %q", inv.Field, tt.field)
			}
		})
	}
}

func TestCartesianRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 1000; i++ {
		v := Vec3{
			X: rng.Float64()*400 - 200,
			Y: rng.Float64()*400 - 200,
			Z: rng.Float64()*400 - 200,
		}
		if v.Norm() == 0 {
			continue
		}

		eq, dist, err := CartesianToEquatorial(v)
		if err != nil {
			t.Fatalf("CartesianToEquatorial(%v): %v", v, err)
		}
		back, err := EquatorialToCartesian(eq.RAdeg, eq.DecDeg, dist)
		if err != nil {
			t.Fatalf("EquatorialToCartesian: %v", err)
		}

		if math.Abs(back.X-v.X) > 1e-6 || math.Abs(back.Y-v.Y) > 1e-6 || math.Abs(back.Z-v.Z) > 1e-6 {
			t.Fatalf("roundtrip %v -> %+v,%v -> %v", v, eq, dist, back)
		}
	}
}

func TestCartesianToEquatorial_Origin(t *testing.T) {
	_, _, err := CartesianToEquatorial(Vec3{})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("origin should be rejected, got %v", err)
	}
}

func TestNormalizeDegrees(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{0, 0},
		{359.5, 359.5},
		{360, 0},
		{-10, 350},
		{725, 5},
		{-725, 355},
	}

	for _, tt := range tests {
		got := normalizeDegrees(tt.input)
		if math.Abs(got-tt.expected) > 1e-9 {
			t.Errorf("normalizeDegrees(%v) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestDegToRad(t *testing.T) {
	tests := []struct {
		deg float64
		rad float64
	}{
		{0, 0},
		{90, math.Pi / 2},
		{180, math.Pi},
		{360, 2 * math.Pi},
		{-90, -math.Pi / 2},
	}

	for _, tt := range tests {
		got := degToRad(tt.deg)
		if math.Abs(got-tt.rad) > 1e-10 {
			t.Errorf("degToRad(%v) = %v, want %v", tt.deg, got, tt.rad)
		}
	}
}

func TestRadToDeg(t *testing.T) {
	tests := []struct {
		rad float64
		deg float64
	}{
		{0, 0},
		{math.Pi / 2, 90},
		{math.Pi, 180},
		{2 * math.Pi, 360},
	}

	for _, tt := range tests {
		got := radToDeg(tt.rad)
		if math.Abs(got-tt.deg) > 1e-10 {
			t.Errorf("radToDeg(%v) = %v, want %v", tt.rad, got, tt.deg)
		}
	}
}

func TestInvalidInputError_Message(t *testing.T) {
	err := NewInvalidInput("EquatorialToCartesian", "distance", -2, "must be > 0")
	want := "EquatorialToCartesian: invalid input distance=-2: must be > 0"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
