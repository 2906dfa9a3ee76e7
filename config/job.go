// job.go - render job configuration

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

// Package config loads a render job's settings from a TOML file. It never
// fatals: cmd/photonray-render decides how to react to a load failure.
package config

import (
	"fmt"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Job holds everything a render invocation needs beyond the scene itself.
type Job struct {
	Width        int
	Height       int
	Antialiasing int
	Threads      int
	Seed         uint64
	OutputPath   string
	Display      string // "ebiten", "headless", or "terminal"
}

// Default returns the job settings used when no config file is present.
func Default() Job {
	return Job{
		Width:        800,
		Height:       600,
		Antialiasing: 1,
		Threads:      runtime.NumCPU(),
		Seed:         1,
		OutputPath:   "render.png",
		Display:      "terminal",
	}
}

// Load decodes path over Default(), so a config file only needs to mention
// the fields it wants to override.
func Load(path string) (Job, error) {
	job := Default()
	if _, err := toml.DecodeFile(path, &job); err != nil {
		return Job{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return job, nil
}
