package scene

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Open loads a JSON scene or a .msh terrain tile, chosen by extension.
func Open(path string) (*Scene, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return Load(path)
	case ".msh":
		return LoadTile(path)
	default:
		return nil, fmt.Errorf("scene: unknown extension %q: %s", ext, path)
	}
}
