package art

import (
	_ "embed"
	"fmt"

	"go.uber.org/zap"
)

//go:embed default.yaml
var defaultManifest []byte

// Default returns the built-in manifest of generated sprites.
func Default() *Manifest {
	m, err := ParseManifest(defaultManifest, ".")
	if err != nil {
		panic(fmt.Sprintf("art: built-in manifest: %v", err))
	}
	return m
}

// Open builds a catalog holding every image of the manifest at path, or of
// the built-in manifest when path is empty.
func Open(path string, log *zap.Logger) (*Catalog, error) {
	m := Default()
	if path != "" {
		loaded, err := LoadManifest(path)
		if err != nil {
			return nil, err
		}
		m = loaded
	}
	c := NewCatalog(log)
	c.Add(m.Names()...)
	if err := c.Load(m); err != nil {
		return nil, err
	}
	return c, nil
}
