package catalog

// DefaultEntries returns the built-in catalog of stars and systems within
// roughly 100 pc of Sol. Coordinates are J2000; distances in parsecs.
// Multiple systems carry their combined spectral string.
// A luminosity of 0 marks a record with no published value.
func DefaultEntries() []Entry {
	out := make([]Entry, len(defaultEntries))
	copy(out, defaultEntries)
	return out
}

// DefaultPolities returns the sample polities that claim stars from
// DefaultEntries.
func DefaultPolities() []Polity {
	out := make([]Polity, len(defaultPolities))
	for i, p := range defaultPolities {
		out[i] = p
		out[i].Members = append([]string(nil), p.Members...)
	}
	return out
}

var defaultEntries = []Entry{
	// Within 3 pc
	{"Proxima Centauri", 217.429, -62.680, 1.30, 11.13, "M5.5Ve", 0.0017},
	{"Alpha Centauri", 219.902, -60.834, 1.34, -0.27, "G2V+K1V", 2.0},
	{"Barnard's Star", 269.452, 4.693, 1.83, 9.51, "M4Ve", 0.0035},
	{"Wolf 359", 164.120, 7.015, 2.41, 13.54, "M6V", 0.0014},
	{"Lalande 21185", 165.834, 35.970, 2.55, 7.52, "M2V", 0.021},
	{"Sirius", 101.287, -16.716, 2.64, -1.46, "A1V+DA2", 25.4},
	{"Luyten 726-8", 24.756, -17.950, 2.68, 12.5, "M5.5Ve+M6Ve", 0.00016},
	{"Ross 154", 282.456, -23.836, 2.97, 10.43, "M3.5Ve", 0.0038},

	// 3-4 pc
	{"Ross 248", 355.480, 44.178, 3.16, 12.29, "M6Ve", 0.0018},
	{"Epsilon Eridani", 53.233, -9.458, 3.22, 3.73, "K2V", 0.34},
	{"Lacaille 9352", 346.467, -35.853, 3.29, 7.34, "M0.5V", 0.033},
	{"Ross 128", 176.935, 0.804, 3.37, 11.13, "M4V", 0.0036},
	{"EZ Aquarii", 339.690, -15.300, 3.40, 13.03, "M5V+M5V+M6V", 0},
	{"61 Cygni", 316.725, 38.749, 3.49, 5.20, "K5V+K7V", 0.24},
	{"Procyon", 114.826, 5.225, 3.51, 0.34, "F5IV-V+DQZ", 6.93},
	{"Struve 2398", 280.690, 59.630, 3.52, 8.90, "M3V+M3.5V", 0.05},
	{"Groombridge 34", 4.595, 44.023, 3.56, 8.08, "M1.5V+M3.5V", 0.0064},
	{"Epsilon Indi", 330.840, -56.786, 3.64, 4.69, "K5V", 0.22},
	{"Tau Ceti", 26.017, -15.937, 3.65, 3.50, "G8V", 0.52},
	{"Luyten's Star", 111.852, 5.226, 3.79, 9.85, "M3.5V", 0.009},
	{"Kapteyn's Star", 77.919, -45.018, 3.93, 8.85, "sdM1", 0.012},
	{"Lacaille 8760", 319.313, -38.867, 3.97, 6.67, "M0V", 0.072},

	// 4-10 pc
	{"Kruger 60", 337.000, 57.700, 4.01, 9.59, "M3V+M4V", 0},
	{"Altair", 297.696, 8.868, 5.13, 0.76, "A7V", 10.6},
	{"Eta Cassiopeiae", 12.276, 57.815, 5.95, 3.44, "G0V+K7V", 1.23},
	{"82 Eridani", 49.982, -43.070, 6.04, 4.25, "G8V", 0.74},
	{"Delta Pavonis", 302.182, -66.182, 6.10, 3.55, "G8IV", 1.22},
	{"Gliese 581", 229.862, -7.722, 6.30, 10.56, "M3V", 0.012},
	{"Vega", 279.235, 38.784, 7.68, 0.03, "A0V", 40.1},
	{"Fomalhaut", 344.413, -29.622, 7.70, 1.16, "A3V", 16.6},

	// Beyond 10 pc
	{"Pollux", 116.329, 28.026, 10.34, 1.14, "K0III", 32.7},
	{"Arcturus", 213.915, 19.182, 11.26, -0.05, "K1.5III", 170},
	{"TRAPPIST-1", 346.622, -5.041, 12.43, 18.80, "M8V", 0.00055},
	{"Capella", 79.172, 45.998, 13.12, 0.08, "G8III+G0III", 78.7},
	{"Castor", 113.650, 31.889, 15.60, 1.58, "A1V+A2Vm", 30.0},
	{"Aldebaran", 68.980, 16.509, 20.00, 0.85, "K5III", 439},
	{"Regulus", 152.093, 11.967, 24.30, 1.35, "B8IVn", 288},
	{"Achernar", 24.429, -57.237, 42.70, 0.46, "B6Vep", 3150},
	{"Spica", 201.298, -11.161, 77.00, 0.97, "B1III-IV+B2V", 20500},
	{"Canopus", 95.988, -52.696, 95.00, -0.74, "A9II", 10700},
}

var defaultPolities = []Polity{
	{
		Name:    "Centauri Accord",
		Members: []string{"Alpha Centauri", "Proxima Centauri", "Barnard's Star", "Wolf 359", "Ross 128"},
	},
	{
		Name:    "Eridani Compact",
		Members: []string{"Epsilon Eridani", "Tau Ceti", "Luyten 726-8", "82 Eridani"},
		Compact: true,
	},
	{
		Name:    "Cygnus Reach",
		Members: []string{"61 Cygni", "Vega", "Altair", "Struve 2398", "Groombridge 34", "Kruger 60", "Ross 248", "Eta Cassiopeiae"},
	},
	{
		Name:    "Indus Frontier",
		Members: []string{"Epsilon Indi", "Lacaille 9352", "Lacaille 8760", "Fomalhaut", "Delta Pavonis"},
	},
	{
		Name:    "Lalande Enclave",
		Members: []string{"Lalande 21185"},
	},
}
