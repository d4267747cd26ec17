package config

import "sort"

// Preset bundles render settings that are usually changed together.
type Preset struct {
	FPS         int
	DPI         int
	VideoDPI    int
	ImageFormat string
}

var Presets = map[string]Preset{
	"draft":    {FPS: 15, DPI: 100, VideoDPI: 72, ImageFormat: "png"},
	"standard": {FPS: DefaultFPS, DPI: DefaultDPI, VideoDPI: DefaultVideoDPI, ImageFormat: "png"},
	"print":    {FPS: DefaultFPS, DPI: 600, VideoDPI: 150, ImageFormat: "svg"},
}

func GetPreset(name string) *Preset {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return &p
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply copies the preset onto cfg.
func (p *Preset) Apply(cfg *Config) {
	cfg.FPS = p.FPS
	cfg.DPI = p.DPI
	cfg.VideoDPI = p.VideoDPI
	cfg.ImageFormat = p.ImageFormat
}
