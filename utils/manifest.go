package utils

import (
	"encoding/json"
	"os"
)

// ManifestEntry locates one saved sprite on the source sheet.
type ManifestEntry struct {
	X, Y, W, H int
	Row        int      `json:"row"`
	Col        int      `json:"col"`
	Palette    []string `json:"palette,omitempty"`
}

// SaveManifest writes entries keyed by sprite filename as indented JSON.
func SaveManifest(entries map[string]ManifestEntry, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func LoadManifest(filename string) (map[string]ManifestEntry, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var entries map[string]ManifestEntry
	if err := json.NewDecoder(f).Decode(&entries); err != nil {
		return nil, err
	}
	return entries, nil
}
