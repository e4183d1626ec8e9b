package stellar

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-starmap/internal/astro"
)

func TestResolve_Binary(t *testing.T) {
	d, err := Resolve("G2V+M4V", 10)
	require.NoError(t, err)

	assert.True(t, d.IsBinary)
	require.Len(t, d.Components, 2)
	assert.Equal(t, "A", d.Components[0].Label)
	assert.Equal(t, "G2V", d.Components[0].SpectralType)
	assert.Equal(t, "B", d.Components[1].Label)
	assert.Equal(t, "M4V", d.Components[1].SpectralType)

	require.NotNil(t, d.SeparationAU)
	assert.InDelta(t, 5.0, *d.SeparationAU, 1e-12)
	assert.True(t, d.Approximate)
	assert.NotEmpty(t, d.Note)

	assert.Nil(t, d.Components[0].SeparationAU)
	require.NotNil(t, d.Components[1].AngularSeparationArcsec)
	assert.Equal(t, 0.5, *d.Components[1].AngularSeparationArcsec)
}

func TestResolve_Single(t *testing.T) {
	d, err := Resolve("G2V", 1.3)
	require.NoError(t, err)

	assert.False(t, d.IsBinary)
	require.Len(t, d.Components, 1)
	assert.Equal(t, "A", d.Components[0].Label)
	assert.Equal(t, "G2V", d.Components[0].SpectralType)
	assert.Nil(t, d.SeparationAU)
	assert.False(t, d.Approximate)
	assert.Empty(t, d.Note)
}

func TestResolve_Separators(t *testing.T) {
	tests := []struct {
		in    string
		parts []string
	}{
		{"G2V + K1V", []string{"G2V", "K1V"}},
		{"A1V/DA2", []string{"A1V", "DA2"}},
		{"M3.5Ve&M4Ve", []string{"M3.5Ve", "M4Ve"}},
		{"G2V+K1V+M5.5Ve", []string{"G2V", "K1V", "M5.5Ve"}},
		{"F5IV-V++G0", []string{"F5IV-V", "G0"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := Resolve(tt.in, 5)
			require.NoError(t, err)
			assert.True(t, d.IsBinary)

			got := make([]string, len(d.Components))
			for i, c := range d.Components {
				got[i] = c.SpectralType
				assert.Equal(t, string(rune('A'+i)), c.Label)
			}
			assert.Equal(t, tt.parts, got)
		})
	}
}

func TestResolve_DegenerateSplitIsSingle(t *testing.T) {
	for _, in := range []string{"G2V+", "+M4V", " / ", ""} {
		d, err := Resolve(in, 10)
		require.NoError(t, err, "in=%q", in)
		assert.False(t, d.IsBinary, "in=%q", in)
		require.Len(t, d.Components, 1)
		assert.Equal(t, in, d.Components[0].SpectralType)
	}
}

func TestResolve_StraySeparatorParsesPiece(t *testing.T) {
	for _, in := range []string{"G2V+", "+G2V", " G2V / "} {
		d, err := Resolve(in, 10)
		require.NoError(t, err, "in=%q", in)
		require.Len(t, d.Components, 1)

		st := d.Components[0].Parsed
		assert.Equal(t, in, d.Components[0].SpectralType, "raw string kept")
		assert.True(t, st.Valid, "in=%q", in)
		assert.Equal(t, "G2V", st.Raw, "in=%q", in)
		assert.Equal(t, "G", st.Class)
		assert.Equal(t, "V", st.LuminosityClass)
		assert.Empty(t, st.Peculiarity, "in=%q", in)
	}
}

func TestResolve_SeparationBuckets(t *testing.T) {
	tests := []struct {
		secondary string
		arcsec    float64
	}{
		{"M4V", 0.5},
		{"G8V", 1.0},
		{"K2V", 1.0},
		{"A0V", 2.0},
		{"F5V", 2.0},
		{"DB", 1.0},
		{"??", 1.0},
		// M wins over every later bucket
		{"K7/M0V", 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.secondary, func(t *testing.T) {
			assert.Equal(t, tt.arcsec, AngularSeparationArcsec(tt.secondary))
		})
	}
}

func TestResolve_SeparationFloor(t *testing.T) {
	d, err := Resolve("G2V+M4V", 0.01)
	require.NoError(t, err)
	require.NotNil(t, d.SeparationAU)
	assert.Equal(t, MinSeparationAU, *d.SeparationAU)
}

func TestResolve_InvalidDistance(t *testing.T) {
	for _, dist := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := Resolve("G2V+M4V", dist)
		assert.ErrorIs(t, err, astro.ErrInvalidInput, "dist=%v", dist)

		// Distance is checked even for single stars
		_, err = Resolve("G2V", dist)
		assert.ErrorIs(t, err, astro.ErrInvalidInput, "dist=%v", dist)
	}
}

func TestResolve_ManyComponentLabels(t *testing.T) {
	assert.Equal(t, "A", componentLabel(0))
	assert.Equal(t, "Z", componentLabel(25))
	assert.Equal(t, "AA", componentLabel(26))
	assert.Equal(t, "AZ", componentLabel(51))
	assert.Equal(t, "BA", componentLabel(52))

	parts := make([]string, 28)
	for i := range parts {
		parts[i] = "M4V"
	}
	d, err := Resolve(strings.Join(parts, "+"), 5)
	require.NoError(t, err)
	assert.Equal(t, "Z", d.Components[25].Label)
	assert.Equal(t, "AB", d.Components[27].Label)
}
