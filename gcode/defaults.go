package gcode

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Defaults holds the fallback timing and bootstrap-temperature constants
// used when a tool's start-filament block doesn't override them. Loaded
// once from the embedded defaults.yaml, the way the teacher's own
// config.go loads its server config — except this one ships inside the
// binary, since the CLI takes no config flag (spec §6).
type Defaults struct {
	WarmupTimeS           int `yaml:"warmup_time_s"`
	WarmupFromOffTimeS    int `yaml:"warmup_from_off_time_s"`
	DormantTimeS          int `yaml:"dormant_time_s"`
	PreStartBootstrapTemp int `yaml:"pre_start_bootstrap_temp"`
}

var defaults = mustLoadDefaults()

func mustLoadDefaults() Defaults {
	var d Defaults
	if err := yaml.Unmarshal(defaultsYAML, &d); err != nil {
		panic(fmt.Errorf("gcode: parsing embedded defaults.yaml: %w", err))
	}
	return d
}
