package stellar

import (
	"regexp"
	"strconv"
	"strings"
)

// SpectralType is a decomposed MK spectral classification such as "G2V" or
// "M4.5Ve". Strings the parser does not understand keep Raw and report
// Valid=false.
type SpectralType struct {
	Raw             string  `json:"raw"`
	Prefix          string  `json:"prefix,omitempty"` // sd, d, esd, usd
	Class           string  `json:"class,omitempty"`  // O, B, A, F, G, K, M, L, T, Y, D*, C, S, W*
	Subclass        float64 `json:"subclass,omitempty"`
	HasSubclass     bool    `json:"-"`
	LuminosityClass string  `json:"luminosity_class,omitempty"`
	Peculiarity     string  `json:"peculiarity,omitempty"`
	Valid           bool    `json:"valid"`
}

var spectralPattern = regexp.MustCompile(
	`^(esd|usd|sd|d)?` +
		`([OBAFGKMLTY]|D[ABOQZCX]?|C|S|W[NCR]?)` +
		`(\d+(?:\.\d+)?)?` +
		`\s*(Ia\+|Iab|Ia|Ib|III|II|IV|VII|VI|V|I|0)?` +
		`(.*)$`)

// ParseSpectralType decomposes a single-star spectral string.
func ParseSpectralType(s string) SpectralType {
	st := SpectralType{Raw: s}
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return st
	}

	m := spectralPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return st
	}

	st.Prefix = m[1]
	st.Class = m[2]
	if m[3] != "" {
		if v, err := strconv.ParseFloat(m[3], 64); err == nil {
			st.Subclass = v
			st.HasSubclass = true
		}
	}
	st.LuminosityClass = m[4]
	st.Peculiarity = strings.TrimSpace(m[5])
	st.Valid = true
	return st
}

// Letter returns the primary class letter, or 0 when unparsed.
func (st SpectralType) Letter() byte {
	if !st.Valid || st.Class == "" {
		return 0
	}
	return st.Class[0]
}

// IsDwarf reports whether the luminosity class marks a main-sequence or
// sub-dwarf star.
func (st SpectralType) IsDwarf() bool {
	return st.LuminosityClass == "V" || st.LuminosityClass == "VI" || st.Prefix == "sd" || st.Prefix == "d"
}

// IsGiant reports whether the luminosity class marks a giant or supergiant.
func (st SpectralType) IsGiant() bool {
	switch st.LuminosityClass {
	case "0", "Ia+", "Ia", "Iab", "Ib", "I", "II", "III":
		return true
	}
	return false
}
