// Package prefs provides JSON-based application preferences.
package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"pixelmask/internal/quantize"
)

const prefsFile = "preferences.json"

// Prefs stores the settings that survive between sessions.
type Prefs struct {
	mu   sync.Mutex
	path string

	LastDirectory string          `json:"last_directory,omitempty"`
	BrushRadius   float64         `json:"brush_radius,omitempty"`
	Quantize      quantize.Params `json:"quantize"`
}

// Load reads preferences from ~/.config/pixelmask/preferences.json.
// Returns defaults if the file doesn't exist or can't be parsed.
func Load() *Prefs {
	p := &Prefs{
		BrushRadius: 25,
		Quantize:    quantize.DefaultParams(),
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	p.path = filepath.Join(configDir, "pixelmask", prefsFile)

	data, err := os.ReadFile(p.path)
	if err != nil {
		return p
	}
	_ = json.Unmarshal(data, p)
	if p.Quantize.Validate() != nil {
		p.Quantize = quantize.DefaultParams()
	}
	return p
}

// Save writes preferences to disk.
func (p *Prefs) Save() error {
	p.mu.Lock()
	data, err := json.MarshalIndent(p, "", "  ")
	p.mu.Unlock()
	if err != nil {
		return err
	}

	dir := filepath.Dir(p.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(p.path, data, 0o644)
}
