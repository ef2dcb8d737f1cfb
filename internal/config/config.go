package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// DefaultPath is the path to the prefs file, relative to the process working directory.
const DefaultPath = "config/ar.json"

// Environment variables that override paths from the prefs file.
const (
	EnvConfigPath = "AR_CONFIG"
	EnvCatalog    = "AR_CATALOG"
	EnvAssetRoot  = "AR_ASSET_ROOT"
	EnvLogPath    = "AR_LOG"
)

// Prefs holds runtime preferences for the desktop AR runtime. Persisted across runs.
// CatalogPath empty means the embedded default catalog is used.
type Prefs struct {
	CatalogPath  string  `json:"catalog_path,omitempty"`
	AssetRoot    string  `json:"asset_root"`
	LogPath      string  `json:"log_path"`
	WindowWidth  int     `json:"window_width"`
	WindowHeight int     `json:"window_height"`
	Fullscreen   bool    `json:"fullscreen"`
	ShowFPS      bool    `json:"show_fps"`
	ShowMemAlloc bool    `json:"show_memalloc"`
	GridVisible  bool    `json:"grid_visible"`
	HitRange     float32 `json:"hit_range"`
	FontPath     string  `json:"font_path,omitempty"`

	// Simulated platform switches, used to exercise the unsupported and rejected-session paths.
	SimulateUnsupported  bool `json:"simulate_unsupported"`
	SimulateStartFailure bool `json:"simulate_start_failure"`
}

// Default returns default prefs (windowed 1280x720, overlays off, floor grid on, assets under the
// working directory).
func Default() Prefs {
	return Prefs{
		AssetRoot:    ".",
		LogPath:      "logs/ar.txt",
		WindowWidth:  1280,
		WindowHeight: 720,
		GridVisible:  true,
		HitRange:     10,
	}
}

// Load reads prefs from path. If the file is missing or invalid, returns Default() and does not
// create a file. Fields absent from the file keep their default values.
func Load(path string) (Prefs, error) {
	p := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return p, nil
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return Default(), nil
	}
	p.normalize()
	return p, nil
}

// Save writes prefs to path, creating the directory if needed.
func Save(path string, p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadEnv loads KEY=VALUE pairs from the given dotenv files into the process environment.
// Missing files are skipped; variables already set are not overwritten.
func LoadEnv(files ...string) error {
	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	return godotenv.Load(present...)
}

// Path returns the prefs path: AR_CONFIG when set, otherwise DefaultPath.
func Path() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return DefaultPath
}

// ApplyEnv overrides path fields with AR_CATALOG, AR_ASSET_ROOT and AR_LOG when set.
func (p *Prefs) ApplyEnv() {
	if v := os.Getenv(EnvCatalog); v != "" {
		p.CatalogPath = v
	}
	if v := os.Getenv(EnvAssetRoot); v != "" {
		p.AssetRoot = v
	}
	if v := os.Getenv(EnvLogPath); v != "" {
		p.LogPath = v
	}
}

func (p *Prefs) normalize() {
	d := Default()
	if p.AssetRoot == "" {
		p.AssetRoot = d.AssetRoot
	}
	if p.WindowWidth <= 0 || p.WindowHeight <= 0 {
		p.WindowWidth, p.WindowHeight = d.WindowWidth, d.WindowHeight
	}
	if p.HitRange <= 0 {
		p.HitRange = d.HitRange
	}
}
