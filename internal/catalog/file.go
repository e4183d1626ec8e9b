package catalog

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// fileLayout is the on-disk shape of a catalog file:
//
//	stars:
//	  - name: Tau Ceti
//	    ra: 26.017
//	    dec: -15.937
//	    dist: 3.65
//	    mag: 3.5
//	    spectral: G8V
//	    lum: 0.52
//	polities:
//	  - name: Cetian League
//	    members: [Tau Ceti]
type fileLayout struct {
	Stars    []Entry  `koanf:"stars"`
	Polities []Polity `koanf:"polities"`
}

// LoadFile reads a YAML catalog file and ingests it like Load.
func LoadFile(path string, defaultLum float64) (*Catalog, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	var layout fileLayout
	if err := k.Unmarshal("", &layout); err != nil {
		return nil, fmt.Errorf("failed to decode catalog file %s: %w", path, err)
	}
	if len(layout.Stars) == 0 {
		return nil, fmt.Errorf("catalog file %s: no stars", path)
	}

	c, err := Load(layout.Stars, layout.Polities, defaultLum)
	if err != nil {
		return nil, fmt.Errorf("catalog file %s: %w", path, err)
	}
	return c, nil
}

// WatchFile reloads the catalog file whenever it changes and hands the
// result to onChange. Call the returned function to stop watching.
func WatchFile(path string, defaultLum float64, onChange func(*Catalog, error)) (func() error, error) {
	fp := file.Provider(path)
	err := fp.Watch(func(_ interface{}, err error) {
		if err != nil {
			onChange(nil, fmt.Errorf("watch catalog file %s: %w", path, err))
			return
		}
		onChange(LoadFile(path, defaultLum))
	})
	if err != nil {
		return nil, fmt.Errorf("watch catalog file %s: %w", path, err)
	}
	return fp.Unwatch, nil
}
