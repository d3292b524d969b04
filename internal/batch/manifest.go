package batch

import (
	"encoding/json"
	"os"
)

// ManifestEntry represents one rendered scene in the output manifest.
type ManifestEntry struct {
	Name      string `json:"name"`
	Scene     string `json:"scene"`
	Image     string `json:"image"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Triangles int    `json:"triangles"`
	Culled    int    `json:"culled"`
	Pixels    int    `json:"pixels"`
}

// WriteManifest writes the successful results as a JSON array.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, 0, len(results))
	for _, r := range results {
		if !r.Success {
			continue
		}
		entries = append(entries, ManifestEntry{
			Name:      r.Name,
			Scene:     r.Path,
			Image:     r.Image,
			Width:     r.Width,
			Height:    r.Height,
			Triangles: r.Stats.Triangles,
			Culled:    r.Stats.Culled,
			Pixels:    r.Stats.Pixels,
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
